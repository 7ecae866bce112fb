package queries

import (
	"context"
)

// GetAvailableDeliveryPersonsQueryHandler exposes CandidateDiscovery without an order,
// so no cash-on-delivery filter applies.
type GetAvailableDeliveryPersonsQueryHandler struct {
	discovery CandidateDiscovery
}

func NewGetAvailableDeliveryPersonsQueryHandler(discovery CandidateDiscovery) GetAvailableDeliveryPersonsQueryHandler {
	return GetAvailableDeliveryPersonsQueryHandler{discovery: discovery}
}

// Handle runs discovery without an order, so the cash-on-delivery filter is not applied.
func (h GetAvailableDeliveryPersonsQueryHandler) Handle(
	ctx context.Context,
	query GetAvailableDeliveryPersonsQuery,
) ([]AvailableDeliveryPersonResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	candidates, err := h.discovery.FindCandidates(ctx, query.restaurantID, query.radiusKm, nil)
	if err != nil {
		return nil, err
	}

	response := make([]AvailableDeliveryPersonResponse, 0, len(candidates))
	for _, c := range candidates {
		dp := c.DeliveryPerson
		item := AvailableDeliveryPersonResponse{
			ID:                  dp.ID(),
			Name:                dp.Name(),
			Phone:               dp.Phone(),
			DistanceKm:          c.DistanceKm,
			Rating:              c.Rating,
			ActiveOrders:        c.ActiveOrders,
			CompletedDeliveries: c.CompletedDeliveries,
			AcceptsCOD:          c.AcceptsCOD,
			CashBalance:         c.CashBalance,
			MaxCashLimit:        c.MaxCashLimit,
		}
		if position := dp.Position(); position != nil {
			item.Latitude = position.Point.Latitude()
			item.Longitude = position.Point.Longitude()
			item.LocationUpdatedAt = position.UpdatedAt
		}
		response = append(response, item)
	}

	return response, nil
}

package http

import (
	"net/http"
	"strconv"

	"fooddelivery/internal/core/application/usecases/commands"
	"fooddelivery/internal/core/application/usecases/queries"
	"fooddelivery/internal/core/domain/model/kernel"

	"github.com/labstack/echo/v4"
)

// CreateRestaurant handles POST /api/v1/restaurants.
func (s *Server) CreateRestaurant(c echo.Context) error {
	var req CreateRestaurantRequest
	if err := bindAndValidate(c, &req); err != nil {
		return badRequest(c, err)
	}

	var ownerID kernel.UUID
	if req.OwnerID != "" {
		id, err := kernel.UUIDFromString(req.OwnerID)
		if err != nil {
			return badRequest(c, err)
		}
		ownerID = id
	}

	var address *kernel.Address
	if req.Address != nil {
		a, err := req.Address.toAddress()
		if err != nil {
			return badRequest(c, err)
		}
		address = &a
	}

	cmd, err := commands.NewCreateRestaurantCommand(actorFrom(c), ownerID, req.Name, address)
	if err != nil {
		return badRequest(c, err)
	}

	result, err := s.h.CreateRestaurant.Handle(c.Request().Context(), cmd)
	return respond(c, http.StatusCreated, result, err)
}

// GetAvailableDeliveryPersons handles GET /api/v1/restaurants/:id/delivery-persons/available.
func (s *Server) GetAvailableDeliveryPersons(c echo.Context) error {
	actor := actorFrom(c)
	if !actor.Is(commands.RoleOwner) && !actor.Is(commands.RoleAdmin) {
		return forbidden(c)
	}

	restaurantID, err := pathID(c)
	if err != nil {
		return badRequest(c, err)
	}

	var radiusKm float64
	if raw := c.QueryParam("radius_km"); raw != "" {
		radiusKm, err = strconv.ParseFloat(raw, 64)
		if err != nil {
			return badRequest(c, err)
		}
	}

	query, err := queries.NewGetAvailableDeliveryPersonsQuery(restaurantID, radiusKm)
	if err != nil {
		return badRequest(c, err)
	}

	candidates, err := s.h.GetAvailableCouriers.Handle(c.Request().Context(), query)
	if err != nil {
		return queryError(c, err)
	}

	response := make([]AvailableDeliveryPersonResponse, len(candidates))
	for i, dp := range candidates {
		response[i] = AvailableDeliveryPersonResponse{
			ID:                  dp.ID.String(),
			Name:                dp.Name,
			Phone:               dp.Phone,
			Latitude:            dp.Latitude,
			Longitude:           dp.Longitude,
			LocationUpdatedAt:   dp.LocationUpdatedAt,
			DistanceKm:          dp.DistanceKm,
			Rating:              dp.Rating,
			ActiveOrders:        dp.ActiveOrders,
			CompletedDeliveries: dp.CompletedDeliveries,
			AcceptsCOD:          dp.AcceptsCOD,
			CashBalance:         dp.CashBalance,
			MaxCashLimit:        dp.MaxCashLimit,
		}
	}
	return c.JSON(http.StatusOK, response)
}

// CreateDeliveryPerson handles POST /api/v1/delivery-persons. A courier registers
// itself; an admin may pass an id or get a new one.
func (s *Server) CreateDeliveryPerson(c echo.Context) error {
	var req CreateDeliveryPersonRequest
	if err := bindAndValidate(c, &req); err != nil {
		return badRequest(c, err)
	}

	actor := actorFrom(c)
	deliveryPersonID := actor.ID()
	switch {
	case req.ID != "":
		id, err := kernel.UUIDFromString(req.ID)
		if err != nil {
			return badRequest(c, err)
		}
		deliveryPersonID = id
	case actor.Is(commands.RoleAdmin):
		deliveryPersonID = kernel.NewUUID()
	}

	cmd, err := commands.NewCreateDeliveryPersonCommand(
		actor, deliveryPersonID, req.Name, req.Phone, req.AcceptsCOD, req.MaxCashLimit)
	if err != nil {
		return badRequest(c, err)
	}

	result, err := s.h.CreateDeliveryPerson.Handle(c.Request().Context(), cmd)
	return respond(c, http.StatusCreated, result, err)
}

// UpdateDeliveryPersonLocation handles PUT /api/v1/delivery-persons/:id/location.
func (s *Server) UpdateDeliveryPersonLocation(c echo.Context) error {
	deliveryPersonID, err := pathID(c)
	if err != nil {
		return badRequest(c, err)
	}
	var req UpdateLocationRequest
	if err = bindAndValidate(c, &req); err != nil {
		return badRequest(c, err)
	}

	cmd, err := commands.NewUpdateDeliveryPersonLocationCommand(
		actorFrom(c), deliveryPersonID, *req.Latitude, *req.Longitude, req.Available)
	if err != nil {
		return badRequest(c, err)
	}

	result, err := s.h.UpdateLocation.Handle(c.Request().Context(), cmd)
	return respond(c, http.StatusOK, result, err)
}

// SettleCashBalance handles POST /api/v1/delivery-persons/:id/settlements.
func (s *Server) SettleCashBalance(c echo.Context) error {
	deliveryPersonID, err := pathID(c)
	if err != nil {
		return badRequest(c, err)
	}
	var req SettleCashRequest
	if err = bindAndValidate(c, &req); err != nil {
		return badRequest(c, err)
	}

	cmd, err := commands.NewSettleCashBalanceCommand(actorFrom(c), deliveryPersonID, req.Amount)
	if err != nil {
		return badRequest(c, err)
	}

	result, err := s.h.SettleCashBalance.Handle(c.Request().Context(), cmd)
	return respond(c, http.StatusOK, result, err)
}

package queries

import (
	"context"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/order"
	"fooddelivery/internal/core/domain/model/restaurant"
	"fooddelivery/internal/core/domain/services"
	"fooddelivery/internal/core/ports"
)

// DiscoveryRepositories are the repositories candidate discovery reads from. Discovery
// runs outside a transaction, so the unit of work is never begun.
type DiscoveryRepositories interface {
	OrderRepository() ports.OrderRepository
	DeliveryPersonRepository() ports.DeliveryPersonRepository
	RestaurantRepository() ports.RestaurantRepository
}

type DiscoveryRepositoriesFactory interface {
	Create() DiscoveryRepositories
}

// CandidateDiscovery finds delivery persons who could take an order from a restaurant.
// The list is advisory: assignment checks the chosen courier again.
type CandidateDiscovery struct {
	repositories DiscoveryRepositoriesFactory
	cashChecker  ports.CashBalanceChecker
	selector     services.CandidateSelector
}

// NewCandidateDiscovery builds discovery over the repositories the factory creates.
// cashChecker is consulted only for cash-on-delivery orders. A nil ratings provider
// falls back to services.DefaultRating.
func NewCandidateDiscovery(
	repositories DiscoveryRepositoriesFactory,
	cashChecker ports.CashBalanceChecker,
	ratings services.RatingProvider,
) CandidateDiscovery {
	return CandidateDiscovery{
		repositories: repositories,
		cashChecker:  cashChecker,
		selector:     services.NewCandidateSelector(ratings),
	}
}

// FindCandidates returns the ranked couriers within radiusKm of the restaurant.
// When o is a cash-on-delivery order, couriers who refuse cash or cannot carry its
// total are dropped as well. Fails with restaurant.ErrAddressMissing when the
// restaurant has no geocoded address.
func (d CandidateDiscovery) FindCandidates(
	ctx context.Context,
	restaurantID kernel.UUID,
	radiusKm float64,
	o *order.Order,
) ([]services.Candidate, error) {
	repos := d.repositories.Create()

	r, err := repos.RestaurantRepository().Get(ctx, restaurantID)
	if err != nil {
		return nil, err
	}
	origin, ok := r.Location()
	if !ok {
		return nil, restaurant.ErrAddressMissing
	}

	people, err := repos.DeliveryPersonRepository().GetAll(ctx)
	if err != nil {
		return nil, err
	}
	active, err := repos.OrderRepository().CountActiveByDeliveryPerson(ctx)
	if err != nil {
		return nil, err
	}

	var filters []services.CandidateFilter
	if o != nil && o.IsCashOnDelivery() {
		total := o.Total()
		filters = append(filters, func(c services.Candidate) (bool, error) {
			if !c.AcceptsCOD {
				return false, nil
			}
			return d.cashChecker.HasSufficientCashBalance(ctx, c.DeliveryPerson.ID(), total)
		})
	}

	return d.selector.Select(origin, radiusKm, people, active, filters...)
}

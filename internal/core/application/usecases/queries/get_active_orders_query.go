package queries

import (
	"errors"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/pkg/guard"
)

var ErrGetActiveOrdersQueryIsNotConstructed = errors.New(
	"GetActiveOrdersQuery must be created via NewGetActiveOrdersQuery constructor",
)

// ActiveOrdersScope narrows the orders returned. Unset fields do not filter; an empty
// scope returns every active order and is meant for admins.
type ActiveOrdersScope struct {
	CustomerID       *kernel.UUID
	RestaurantOwner  *kernel.UUID
	RestaurantID     *kernel.UUID
	DeliveryPersonID *kernel.UUID
}

// GetActiveOrdersQuery lists orders that are neither delivered nor cancelled, oldest first.
type GetActiveOrdersQuery struct {
	scope ActiveOrdersScope
	limit int
	guard guard.ConstructorGuard
}

const DefaultActiveOrdersLimit = 200

func NewGetActiveOrdersQuery(scope ActiveOrdersScope, limit int) (GetActiveOrdersQuery, error) {
	var err error
	for _, id := range []*kernel.UUID{scope.CustomerID, scope.RestaurantOwner, scope.RestaurantID, scope.DeliveryPersonID} {
		if id != nil {
			err = errors.Join(err, id.Validate())
		}
	}
	if err != nil {
		return GetActiveOrdersQuery{}, err
	}

	if limit <= 0 {
		limit = DefaultActiveOrdersLimit
	}
	return GetActiveOrdersQuery{scope: scope, limit: limit, guard: guard.NewConstructorGuard()}, nil
}

func (q GetActiveOrdersQuery) Validate() error {
	return q.guard.Validate(ErrGetActiveOrdersQueryIsNotConstructed)
}

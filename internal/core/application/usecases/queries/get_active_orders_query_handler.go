package queries

import (
	"context"

	"fooddelivery/internal/core/domain/model/order"

	"gorm.io/gorm"
)

// GetActiveOrdersQueryHandler lists non-terminal orders within an ActiveOrdersScope,
// oldest first.
type GetActiveOrdersQueryHandler struct {
	db *gorm.DB
}

func NewGetActiveOrdersQueryHandler(db *gorm.DB) GetActiveOrdersQueryHandler {
	return GetActiveOrdersQueryHandler{db: db}
}

func (h GetActiveOrdersQueryHandler) Handle(ctx context.Context, query GetActiveOrdersQuery) ([]OrderView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	sql := `
		SELECT ` + orderViewColumns + `
		FROM orders o
		LEFT JOIN restaurants r ON r.id = o.restaurant_id
		WHERE o.status NOT IN ?`
	args := []any{[]order.Status{order.Delivered, order.Cancelled}}

	scope := query.scope
	if scope.CustomerID != nil {
		sql += ` AND o.customer_id = ?`
		args = append(args, scope.CustomerID.Bytes())
	}
	if scope.RestaurantOwner != nil {
		sql += ` AND r.owner_id = ?`
		args = append(args, scope.RestaurantOwner.Bytes())
	}
	if scope.RestaurantID != nil {
		sql += ` AND o.restaurant_id = ?`
		args = append(args, scope.RestaurantID.Bytes())
	}
	if scope.DeliveryPersonID != nil {
		sql += ` AND o.delivery_person_id = ?`
		args = append(args, scope.DeliveryPersonID.Bytes())
	}
	sql += ` ORDER BY o.created_at, o.id LIMIT ?`
	args = append(args, query.limit)

	rows, err := h.db.WithContext(ctx).Raw(sql, args...).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	views := make([]OrderView, 0)
	for rows.Next() {
		view, scanErr := scanOrderView(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		views = append(views, view)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}

	if err = loadItems(ctx, h.db, views); err != nil {
		return nil, err
	}
	return views, nil
}

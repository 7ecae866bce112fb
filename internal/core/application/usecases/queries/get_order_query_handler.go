package queries

import (
	"context"
	"database/sql"
	"errors"

	"fooddelivery/internal/pkg/errs"

	"gorm.io/gorm"
)

// GetOrderQueryHandler reads one order view straight from the database, bypassing the
// aggregate. Visibility is checked by the caller with OrderView.IsVisibleTo.
type GetOrderQueryHandler struct {
	db *gorm.DB
}

// NewGetOrderQueryHandler uses db for raw read queries only.
func NewGetOrderQueryHandler(db *gorm.DB) GetOrderQueryHandler {
	return GetOrderQueryHandler{db: db}
}

// Handle returns the order with its items or errs.ErrObjectNotFound.
func (h GetOrderQueryHandler) Handle(ctx context.Context, query GetOrderQuery) (OrderView, error) {
	if err := query.Validate(); err != nil {
		return OrderView{}, err
	}

	row := h.db.WithContext(ctx).Raw(`
		SELECT `+orderViewColumns+`
		FROM orders o
		LEFT JOIN restaurants r ON r.id = o.restaurant_id
		WHERE o.id = ?
	`, query.orderID.Bytes()).Row()

	view, err := scanOrderView(row)
	if errors.Is(err, sql.ErrNoRows) {
		return OrderView{}, errs.NewObjectNotFoundError("order", query.orderID.String())
	}
	if err != nil {
		return OrderView{}, err
	}

	views := []OrderView{view}
	if err = loadItems(ctx, h.db, views); err != nil {
		return OrderView{}, err
	}
	return views[0], nil
}

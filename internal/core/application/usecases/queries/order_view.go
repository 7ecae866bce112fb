package queries

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/order"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// OrderView is the read model of an order. RestaurantOwnerID lets callers decide
// whether the requesting owner may see it.
type OrderView struct {
	ID                kernel.UUID
	RestaurantID      kernel.UUID
	RestaurantOwnerID kernel.UUID
	CustomerID        kernel.UUID
	DeliveryPersonID  *kernel.UUID
	Status            order.Status
	Subtotal          decimal.Decimal
	DeliveryFee       decimal.Decimal
	Tax               decimal.Decimal
	Total             decimal.Decimal
	Street            string
	City              string
	Latitude          *float64
	Longitude         *float64
	PaymentMethod     order.PaymentMethod
	PaymentStatus     order.PaymentStatus
	EstimatedMinutes  int
	CreatedAt         time.Time
	UpdatedAt         time.Time
	Items             []OrderItemView
}

// OrderItemView is a line item as stored at checkout.
type OrderItemView struct {
	MenuItemID kernel.UUID
	Name       string
	Quantity   int
	UnitPrice  decimal.Decimal
	Options    []string
}

// IsVisibleTo reports whether the user with the given role may read the order.
func (v OrderView) IsVisibleTo(userID kernel.UUID, role string) bool {
	switch role {
	case "admin":
		return true
	case "customer":
		return v.CustomerID.IsEqual(userID)
	case "owner":
		return v.RestaurantOwnerID.IsEqual(userID)
	case "delivery":
		return v.DeliveryPersonID != nil && v.DeliveryPersonID.IsEqual(userID)
	}
	return false
}

const orderViewColumns = `
	o.id,
	o.restaurant_id,
	COALESCE(r.owner_id, '00000000-0000-0000-0000-000000000000'::uuid),
	o.customer_id,
	o.delivery_person_id,
	o.status,
	o.subtotal,
	o.delivery_fee,
	o.tax,
	o.total,
	o.address_street,
	o.address_city,
	o.address_latitude,
	o.address_longitude,
	o.payment_method,
	o.payment_status,
	o.estimated_minutes,
	o.created_at,
	o.updated_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanOrderView(rows rowScanner) (OrderView, error) {
	var (
		view                              OrderView
		id, restaurantID, ownerID, custID uuid.UUID
		deliveryPersonID                  uuid.NullUUID
	)

	if err := rows.Scan(
		&id,
		&restaurantID,
		&ownerID,
		&custID,
		&deliveryPersonID,
		&view.Status,
		&view.Subtotal,
		&view.DeliveryFee,
		&view.Tax,
		&view.Total,
		&view.Street,
		&view.City,
		&view.Latitude,
		&view.Longitude,
		&view.PaymentMethod,
		&view.PaymentStatus,
		&view.EstimatedMinutes,
		&view.CreatedAt,
		&view.UpdatedAt,
	); err != nil {
		return OrderView{}, err
	}

	var err error
	if view.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
		return OrderView{}, err
	}
	if view.RestaurantID, err = kernel.UUIDFromBytes(restaurantID[:]); err != nil {
		return OrderView{}, err
	}
	if view.CustomerID, err = kernel.UUIDFromBytes(custID[:]); err != nil {
		return OrderView{}, err
	}
	if ownerID != uuid.Nil {
		if view.RestaurantOwnerID, err = kernel.UUIDFromBytes(ownerID[:]); err != nil {
			return OrderView{}, err
		}
	}
	if deliveryPersonID.Valid {
		dp, dpErr := kernel.UUIDFromBytes(deliveryPersonID.UUID[:])
		if dpErr != nil {
			return OrderView{}, dpErr
		}
		view.DeliveryPersonID = &dp
	}

	view.CreatedAt = view.CreatedAt.UTC()
	view.UpdatedAt = view.UpdatedAt.UTC()
	view.Items = []OrderItemView{}
	return view, nil
}

// loadItems attaches line items to views, keeping each order's item order.
func loadItems(ctx context.Context, db *gorm.DB, views []OrderView) error {
	if len(views) == 0 {
		return nil
	}

	ids := make([]uuid.UUID, 0, len(views))
	byID := make(map[uuid.UUID]int, len(views))
	for i, v := range views {
		id := v.ID.Bytes()
		ids = append(ids, id)
		byID[id] = i
	}

	rows, err := db.WithContext(ctx).Raw(`
		SELECT
			order_id,
			menu_item_id,
			name,
			quantity,
			unit_price,
			options
		FROM order_items
		WHERE order_id IN ?
		ORDER BY order_id, position
	`, ids).Rows()
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			item            OrderItemView
			orderID, menuID uuid.UUID
			options         []byte
		)
		if err = rows.Scan(&orderID, &menuID, &item.Name, &item.Quantity, &item.UnitPrice, &options); err != nil {
			return err
		}

		if item.MenuItemID, err = kernel.UUIDFromBytes(menuID[:]); err != nil {
			return err
		}
		item.Options = []string{}
		if len(options) > 0 {
			if err = json.Unmarshal(options, &item.Options); err != nil {
				return fmt.Errorf("decode options of order %s: %w", orderID, err)
			}
		}

		i := byID[orderID]
		views[i].Items = append(views[i].Items, item)
	}

	return rows.Err()
}

package courier

import (
	"errors"
	"strings"
	"time"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/pkg/errs"
	"fooddelivery/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var (
	ErrNameIsRequired                 = errs.NewValueIsRequiredError("name")
	ErrDeliveryPersonIsNotConstructed = errors.New("DeliveryPerson must be created via NewDeliveryPerson constructor")
)

// Position is the last location reported by the courier's device.
type Position struct {
	Point     kernel.GeoPoint
	UpdatedAt time.Time
}

// DeliveryPerson is a user with the delivery role.
//
// The cash limit is not enforced here: dispatch checks HasSufficientCashBalance
// before assigning a cash-on-delivery order, and RecordDelivery always accepts
// the cash that was actually collected.
type DeliveryPerson struct {
	id                  kernel.UUID
	name                string
	phone               string
	position            *Position
	status              DeliveryStatus
	completedDeliveries int
	guard               guard.ConstructorGuard
}

// NewDeliveryPerson registers a courier with no known location. New couriers are
// unavailable until their device reports a position.
func NewDeliveryPerson(id kernel.UUID, name, phone string, acceptsCOD bool, maxCashLimit decimal.Decimal) (*DeliveryPerson, error) {
	status, statusErr := NewDeliveryStatus(false, acceptsCOD, decimal.Zero, maxCashLimit)

	dp := &DeliveryPerson{guard: guard.NewConstructorGuard()}
	if err := errors.Join(
		dp.setID(id),
		dp.setName(name),
		statusErr,
	); err != nil {
		return nil, err
	}

	dp.phone = strings.TrimSpace(phone)
	dp.status = status
	return dp, nil
}

// RestoreDeliveryPerson rebuilds a delivery person from storage. Unlike NewDeliveryPerson
// it accepts any availability, a last position and a completed-delivery count.
//
// Errors are joined: an invalid id, an empty name, an unconstructed position point, an
// unconstructed status and a negative count are all reported at once.
func RestoreDeliveryPerson(
	id kernel.UUID,
	name, phone string,
	position *Position,
	status DeliveryStatus,
	completedDeliveries int,
) (*DeliveryPerson, error) {
	dp := &DeliveryPerson{guard: guard.NewConstructorGuard()}

	var countErr error
	if completedDeliveries < 0 {
		countErr = errs.NewValueIsOutOfRangeError("completed deliveries", completedDeliveries, 0, "+inf")
	}

	if err := errors.Join(
		dp.setID(id),
		dp.setName(name),
		dp.setPosition(position),
		status.Validate(),
		countErr,
	); err != nil {
		return nil, err
	}

	dp.phone = phone
	dp.status = status
	dp.completedDeliveries = completedDeliveries
	return dp, nil
}

// Validate returns ErrDeliveryPersonIsNotConstructed for nil or zero-value instances.
func (d *DeliveryPerson) Validate() error {
	if d == nil {
		return ErrDeliveryPersonIsNotConstructed
	}
	return d.guard.Validate(ErrDeliveryPersonIsNotConstructed)
}

// IsEqual compares delivery persons by id.
func (d *DeliveryPerson) IsEqual(other *DeliveryPerson) bool {
	return other != nil && d.id.IsEqual(other.id)
}

// ID is the courier's user id; the same id appears in the JWT subject.
func (d *DeliveryPerson) ID() kernel.UUID        { return d.id }
func (d *DeliveryPerson) Name() string           { return d.name }
func (d *DeliveryPerson) Phone() string          { return d.phone }
func (d *DeliveryPerson) Status() DeliveryStatus { return d.status }

// CompletedDeliveries counts orders this courier brought to Delivered.
func (d *DeliveryPerson) CompletedDeliveries() int { return d.completedDeliveries }

// IsAvailable reports whether the courier is on shift and may receive new orders.
func (d *DeliveryPerson) IsAvailable() bool { return d.status.IsAvailable() }

// AcceptsCOD reports whether the courier takes cash-on-delivery orders at all.
func (d *DeliveryPerson) AcceptsCOD() bool { return d.status.AcceptsCOD() }

// CashBalance is the cash collected on delivery and not yet settled.
func (d *DeliveryPerson) CashBalance() decimal.Decimal { return d.status.CashBalance() }

// Position returns the last reported location, or nil when the courier never reported one.
func (d *DeliveryPerson) Position() *Position {
	if d.position == nil {
		return nil
	}
	p := *d.position
	return &p
}

// DistanceTo returns the distance in km from the courier's last position to point.
// ok is false when the courier has no position.
func (d *DeliveryPerson) DistanceTo(point kernel.GeoPoint) (distance float64, ok bool, err error) {
	if d.position == nil {
		return 0, false, nil
	}
	distance, err = d.position.Point.DistanceTo(point)
	if err != nil {
		return 0, false, err
	}
	return distance, true, nil
}

// UpdateLocation stores the position reported by the courier's device. at is kept in UTC
// and only informs clients; discovery does not reject old positions.
func (d *DeliveryPerson) UpdateLocation(point kernel.GeoPoint, at time.Time) error {
	return d.setPosition(&Position{Point: point, UpdatedAt: at.UTC()})
}

// SetAvailability toggles whether the courier receives new assignments. Orders already
// assigned are unaffected.
func (d *DeliveryPerson) SetAvailability(available bool) {
	d.status = d.status.withAvailability(available)
}

// ConfigureCOD sets whether the courier accepts cash-on-delivery orders and the most cash
// they may carry. Lowering the limit below the current balance is allowed; the courier
// then gets no COD orders until a settlement.
func (d *DeliveryPerson) ConfigureCOD(accepts bool, maxCashLimit decimal.Decimal) error {
	limit, err := kernel.NewAmount("max cash limit", maxCashLimit)
	if err != nil {
		return err
	}
	d.status = d.status.withCOD(accepts, limit)
	return nil
}

// HasSufficientCashBalance reports whether the courier can collect amount without exceeding the limit.
func (d *DeliveryPerson) HasSufficientCashBalance(amount decimal.Decimal) bool {
	return d.status.HasCapacityFor(amount)
}

// RecordDelivery counts a completed delivery and adds the cash collected at the door.
func (d *DeliveryPerson) RecordDelivery(cashCollected decimal.Decimal) error {
	cash, err := kernel.NewAmount("cash collected", cashCollected)
	if err != nil {
		return err
	}
	d.completedDeliveries++
	d.status = d.status.withBalance(d.status.CashBalance().Add(cash))
	return nil
}

// SettleCash records cash handed over to the platform. The balance never goes below zero;
// the settled amount is returned.
func (d *DeliveryPerson) SettleCash(amount decimal.Decimal) (decimal.Decimal, error) {
	settled, err := kernel.NewAmount("settled amount", amount)
	if err != nil {
		return decimal.Zero, err
	}
	settled = decimal.Min(settled, d.status.CashBalance())
	d.status = d.status.withBalance(d.status.CashBalance().Sub(settled))
	return settled, nil
}

func (d *DeliveryPerson) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	d.id = id
	return nil
}

func (d *DeliveryPerson) setName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrNameIsRequired
	}
	d.name = name
	return nil
}

func (d *DeliveryPerson) setPosition(position *Position) error {
	if position == nil {
		d.position = nil
		return nil
	}
	if err := position.Point.Validate(); err != nil {
		return err
	}
	p := *position
	d.position = &p
	return nil
}

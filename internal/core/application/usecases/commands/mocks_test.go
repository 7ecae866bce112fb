package commands_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"fooddelivery/internal/core/application/usecases/commands"
	"fooddelivery/internal/core/domain/model/courier"
	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/order"
	"fooddelivery/internal/core/domain/model/restaurant"
	"fooddelivery/internal/core/domain/services"
	"fooddelivery/internal/core/ports"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(ctx context.Context, o *order.Order) error {
	return m.Called(ctx, o).Error(0)
}

func (m *MockOrderRepository) Update(ctx context.Context, o *order.Order) error {
	return m.Called(ctx, o).Error(0)
}

func (m *MockOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) CountActiveByDeliveryPerson(ctx context.Context) (map[kernel.UUID]int, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[kernel.UUID]int), args.Error(1)
}

func (m *MockOrderRepository) CountActiveForDeliveryPerson(ctx context.Context, id kernel.UUID) (int, error) {
	args := m.Called(ctx, id)
	return args.Int(0), args.Error(1)
}

func (m *MockOrderRepository) GetReadyForDeliveryBefore(ctx context.Context, t time.Time, limit int) ([]*order.Order, error) {
	args := m.Called(ctx, t, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*order.Order), args.Error(1)
}

type MockDeliveryPersonRepository struct{ mock.Mock }

func (m *MockDeliveryPersonRepository) Add(ctx context.Context, dp *courier.DeliveryPerson) error {
	return m.Called(ctx, dp).Error(0)
}

func (m *MockDeliveryPersonRepository) Update(ctx context.Context, dp *courier.DeliveryPerson) error {
	return m.Called(ctx, dp).Error(0)
}

func (m *MockDeliveryPersonRepository) Get(ctx context.Context, id kernel.UUID) (*courier.DeliveryPerson, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*courier.DeliveryPerson), args.Error(1)
}

func (m *MockDeliveryPersonRepository) GetAll(ctx context.Context) ([]*courier.DeliveryPerson, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*courier.DeliveryPerson), args.Error(1)
}

type MockRestaurantRepository struct{ mock.Mock }

func (m *MockRestaurantRepository) Add(ctx context.Context, r *restaurant.Restaurant) error {
	return m.Called(ctx, r).Error(0)
}

func (m *MockRestaurantRepository) Get(ctx context.Context, id kernel.UUID) (*restaurant.Restaurant, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*restaurant.Restaurant), args.Error(1)
}

type MockOutboxRepository struct{ mock.Mock }

func (m *MockOutboxRepository) GetUnpublished(ctx context.Context, limit int) ([]ports.OutboxMessage, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]ports.OutboxMessage), args.Error(1)
}

func (m *MockOutboxRepository) MarkPublished(ctx context.Context, id kernel.UUID, at time.Time) error {
	return m.Called(ctx, id, at).Error(0)
}

// MockUoW satisfies every unit of work interface of the package.
type MockUoW struct{ mock.Mock }

func (m *MockUoW) Begin(ctx context.Context) error    { return m.Called(ctx).Error(0) }
func (m *MockUoW) Commit(ctx context.Context) error   { return m.Called(ctx).Error(0) }
func (m *MockUoW) Rollback(ctx context.Context) error { return m.Called(ctx).Error(0) }

func (m *MockUoW) OrderRepository() ports.OrderRepository {
	return m.Called().Get(0).(ports.OrderRepository)
}

func (m *MockUoW) DeliveryPersonRepository() ports.DeliveryPersonRepository {
	return m.Called().Get(0).(ports.DeliveryPersonRepository)
}

func (m *MockUoW) RestaurantRepository() ports.RestaurantRepository {
	return m.Called().Get(0).(ports.RestaurantRepository)
}

func (m *MockUoW) OutboxRepository() ports.OutboxRepository {
	return m.Called().Get(0).(ports.OutboxRepository)
}

type uowFactory struct{ uow *MockUoW }

func (f uowFactory) Create() commands.UoW { return f.uow }

type orderUoWFactory struct{ uow *MockUoW }

func (f orderUoWFactory) Create() commands.OrderUoW { return f.uow }

type deliveryPersonUoWFactory struct{ uow *MockUoW }

func (f deliveryPersonUoWFactory) Create() commands.DeliveryPersonUoW { return f.uow }

type restaurantUoWFactory struct{ uow *MockUoW }

func (f restaurantUoWFactory) Create() commands.RestaurantUoW { return f.uow }

type outboxUoWFactory struct{ uow *MockUoW }

func (f outboxUoWFactory) Create() commands.OutboxUoW { return f.uow }

type MockCashBalanceChecker struct{ mock.Mock }

func (m *MockCashBalanceChecker) HasSufficientCashBalance(ctx context.Context, id kernel.UUID, amount decimal.Decimal) (bool, error) {
	args := m.Called(ctx, id, amount)
	return args.Bool(0), args.Error(1)
}

type MockCandidateFinder struct{ mock.Mock }

func (m *MockCandidateFinder) FindCandidates(
	ctx context.Context,
	restaurantID kernel.UUID,
	radiusKm float64,
	o *order.Order,
) ([]services.Candidate, error) {
	args := m.Called(ctx, restaurantID, radiusKm, o)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]services.Candidate), args.Error(1)
}

type MockEventPublisher struct{ mock.Mock }

func (m *MockEventPublisher) Publish(ctx context.Context, msg ports.OutboxMessage) error {
	return m.Called(ctx, msg).Error(0)
}

// fakeLocker is an in-memory AssignmentLocker. Keys listed in held are reported as taken.
type fakeLocker struct {
	mu       sync.Mutex
	held     map[string]bool
	locked   []string
	unlocked []string
	err      error
}

func newFakeLocker(held ...string) *fakeLocker {
	l := &fakeLocker{held: make(map[string]bool)}
	for _, key := range held {
		l.held[key] = true
	}
	return l
}

func (l *fakeLocker) TryLock(_ context.Context, key string) (func(context.Context) error, bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.err != nil {
		return nil, false, l.err
	}
	if l.held[key] {
		return nil, false, nil
	}
	l.held[key] = true
	l.locked = append(l.locked, key)

	return func(context.Context) error {
		l.mu.Lock()
		defer l.mu.Unlock()
		delete(l.held, key)
		l.unlocked = append(l.unlocked, key)
		return nil
	}, true, nil
}

// Damascus city centre; the couriers in the scenarios are placed around it.
const (
	restaurantLat = 33.5138
	restaurantLng = 36.2765
)

func newActor(t *testing.T, role commands.Role) commands.Actor {
	t.Helper()
	actor, err := commands.NewActor(kernel.NewUUID(), role)
	require.NoError(t, err)
	return actor
}

func actorWithID(t *testing.T, id kernel.UUID, role commands.Role) commands.Actor {
	t.Helper()
	actor, err := commands.NewActor(id, role)
	require.NoError(t, err)
	return actor
}

func newPoint(t *testing.T, lat, lng float64) kernel.GeoPoint {
	t.Helper()
	point, err := kernel.NewGeoPoint(lat, lng)
	require.NoError(t, err)
	return point
}

func newRestaurant(t *testing.T, ownerID kernel.UUID) *restaurant.Restaurant {
	t.Helper()
	point := newPoint(t, restaurantLat, restaurantLng)
	address, err := kernel.NewAddress("Straight Street 1", "Damascus", &point)
	require.NoError(t, err)
	r, err := restaurant.NewRestaurant(kernel.NewUUID(), ownerID, "Bab Sharqi Grill", &address)
	require.NoError(t, err)
	return r
}

func newItems(t *testing.T) []order.LineItem {
	t.Helper()
	item, err := order.NewLineItem(kernel.NewUUID(), "Shawarma", 2, decimal.RequireFromString("12.50"), []string{"garlic"})
	require.NoError(t, err)
	return []order.LineItem{item}
}

func newDeliveryAddress(t *testing.T) kernel.Address {
	t.Helper()
	point := newPoint(t, 33.5100, 36.2900)
	address, err := kernel.NewAddress("Baghdad Street 7", "Damascus", &point)
	require.NoError(t, err)
	return address
}

// newOrder restores an order with total 30.00: 25.00 of items, 3.00 delivery and 2.00 tax.
func newOrder(
	t *testing.T,
	restaurantID kernel.UUID,
	method order.PaymentMethod,
	status order.Status,
	deliveryPersonID *kernel.UUID,
) *order.Order {
	t.Helper()
	o, err := order.RestoreOrder(
		kernel.NewUUID(), restaurantID, kernel.NewUUID(),
		newItems(t),
		order.Charges{DeliveryFee: kernel.MustAmount("3.00"), Tax: kernel.MustAmount("2.00")},
		newDeliveryAddress(t),
		method,
		order.PaymentStatusPending,
		30,
		time.Now().UTC().Add(-time.Minute),
		status,
		time.Time{},
		deliveryPersonID,
	)
	require.NoError(t, err)
	return o
}

type courierFixture struct {
	lat, lng     float64
	available    bool
	acceptsCOD   bool
	cashBalance  string
	maxCashLimit string
}

func availableCourier(lat, lng float64) courierFixture {
	return courierFixture{lat: lat, lng: lng, available: true, cashBalance: "0", maxCashLimit: "0"}
}

func newDeliveryPerson(t *testing.T, fixture courierFixture) *courier.DeliveryPerson {
	t.Helper()
	status, err := courier.NewDeliveryStatus(fixture.available, fixture.acceptsCOD,
		decimal.RequireFromString(fixture.cashBalance), decimal.RequireFromString(fixture.maxCashLimit))
	require.NoError(t, err)

	dp, err := courier.RestoreDeliveryPerson(
		kernel.NewUUID(), "Sami", "+963000000",
		&courier.Position{Point: newPoint(t, fixture.lat, fixture.lng), UpdatedAt: time.Now().UTC()},
		status,
		0,
	)
	require.NoError(t, err)
	return dp
}

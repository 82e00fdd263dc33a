package commands_test

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"ordertrack/internal/core/application/usecases/commands"
	"ordertrack/internal/core/domain/model/catalog"
	"ordertrack/internal/core/domain/model/event"
	"ordertrack/internal/core/domain/model/kernel"
	"ordertrack/internal/core/domain/model/notification"
	"ordertrack/internal/core/domain/model/order"
	"ordertrack/internal/core/ports"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)

func fixedClock() kernel.Clock {
	return kernel.ClockFunc(func() time.Time { return testNow })
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) ListIDs(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	ids, _ := args.Get(0).([]string)
	return ids, args.Error(1)
}

func (m *MockOrderRepository) Add(ctx context.Context, o *order.Order) error {
	return m.Called(ctx, o).Error(0)
}

func (m *MockOrderRepository) Update(ctx context.Context, o *order.Order) error {
	return m.Called(ctx, o).Error(0)
}

func (m *MockOrderRepository) Get(ctx context.Context, id string) (*order.Order, error) {
	args := m.Called(ctx, id)
	o, _ := args.Get(0).(*order.Order)
	return o, args.Error(1)
}

func (m *MockOrderRepository) ListActive(ctx context.Context) ([]*order.Order, error) {
	args := m.Called(ctx)
	orders, _ := args.Get(0).([]*order.Order)
	return orders, args.Error(1)
}

func (m *MockOrderRepository) ListByStatus(ctx context.Context, status order.Status) ([]*order.Order, error) {
	args := m.Called(ctx, status)
	orders, _ := args.Get(0).([]*order.Order)
	return orders, args.Error(1)
}

type MockItemRepository struct{ mock.Mock }

func (m *MockItemRepository) ListByOrder(ctx context.Context, orderID string) ([]*order.Item, error) {
	args := m.Called(ctx, orderID)
	items, _ := args.Get(0).([]*order.Item)
	return items, args.Error(1)
}

func (m *MockItemRepository) MaxOrdinal(ctx context.Context, orderID string) (int, error) {
	args := m.Called(ctx, orderID)
	return args.Int(0), args.Error(1)
}

func (m *MockItemRepository) Add(ctx context.Context, item *order.Item) error {
	return m.Called(ctx, item).Error(0)
}

func (m *MockItemRepository) SoftDelete(ctx context.Context, itemID string) error {
	return m.Called(ctx, itemID).Error(0)
}

type MockArchiveRepository struct{ mock.Mock }

func (m *MockArchiveRepository) Add(ctx context.Context, archived *order.ArchivedOrder) error {
	return m.Called(ctx, archived).Error(0)
}

func (m *MockArchiveRepository) ExistsForOrder(ctx context.Context, orderID string) (bool, error) {
	args := m.Called(ctx, orderID)
	return args.Bool(0), args.Error(1)
}

func (m *MockArchiveRepository) List(ctx context.Context) ([]*order.ArchivedOrder, error) {
	args := m.Called(ctx)
	archived, _ := args.Get(0).([]*order.ArchivedOrder)
	return archived, args.Error(1)
}

type MockNotificationRepository struct{ mock.Mock }

func (m *MockNotificationRepository) Add(ctx context.Context, n *notification.Notification) error {
	return m.Called(ctx, n).Error(0)
}

func (m *MockNotificationRepository) Update(ctx context.Context, n *notification.Notification) error {
	return m.Called(ctx, n).Error(0)
}

func (m *MockNotificationRepository) Get(ctx context.Context, id kernel.UUID) (*notification.Notification, error) {
	args := m.Called(ctx, id)
	n, _ := args.Get(0).(*notification.Notification)
	return n, args.Error(1)
}

func (m *MockNotificationRepository) ListBroadcast(ctx context.Context) ([]*notification.Notification, error) {
	args := m.Called(ctx)
	list, _ := args.Get(0).([]*notification.Notification)
	return list, args.Error(1)
}

func (m *MockNotificationRepository) ListForUser(ctx context.Context, userID string) ([]*notification.Notification, error) {
	args := m.Called(ctx, userID)
	list, _ := args.Get(0).([]*notification.Notification)
	return list, args.Error(1)
}

// MockSession satisfies both session interfaces.
type MockSession struct {
	orders        *MockOrderRepository
	items         *MockItemRepository
	archives      *MockArchiveRepository
	notifications *MockNotificationRepository
}

func newMockSession() *MockSession {
	return &MockSession{
		orders:        new(MockOrderRepository),
		items:         new(MockItemRepository),
		archives:      new(MockArchiveRepository),
		notifications: new(MockNotificationRepository),
	}
}

func (s *MockSession) OrderRepository() ports.OrderRepository { return s.orders }

func (s *MockSession) ItemRepository() ports.ItemRepository { return s.items }

func (s *MockSession) ArchiveRepository() ports.ArchiveRepository { return s.archives }

func (s *MockSession) NotificationRepository() ports.NotificationRepository { return s.notifications }

func (s *MockSession) assertExpectations(t *testing.T) {
	t.Helper()
	s.orders.AssertExpectations(t)
	s.items.AssertExpectations(t)
	s.archives.AssertExpectations(t)
	s.notifications.AssertExpectations(t)
}

type MockOrderSessionFactory struct{ mock.Mock }

func (m *MockOrderSessionFactory) Open(ctx context.Context) (commands.OrderSession, error) {
	args := m.Called(ctx)
	s, _ := args.Get(0).(commands.OrderSession)
	return s, args.Error(1)
}

type MockNotificationSessionFactory struct{ mock.Mock }

func (m *MockNotificationSessionFactory) Open(ctx context.Context) (commands.NotificationSession, error) {
	args := m.Called(ctx)
	s, _ := args.Get(0).(commands.NotificationSession)
	return s, args.Error(1)
}

type MockDispatcher struct{ mock.Mock }

func (m *MockDispatcher) Dispatch(ctx context.Context, ev event.Event) *notification.Notification {
	m.Called(ctx, ev)
	return nil
}

// dispatched returns the events passed to Dispatch, in call order.
func (m *MockDispatcher) dispatched() []event.Event {
	var events []event.Event
	for _, call := range m.Calls {
		if call.Method == "Dispatch" {
			events = append(events, call.Arguments.Get(1).(event.Event))
		}
	}
	return events
}

type MockCatalogReader struct{ mock.Mock }

func (m *MockCatalogReader) GetCatalogItems(ctx context.Context) ([]*catalog.Item, error) {
	args := m.Called(ctx)
	items, _ := args.Get(0).([]*catalog.Item)
	return items, args.Error(1)
}

func testCatalog(t *testing.T) []*catalog.Item {
	t.Helper()
	floor, err := catalog.NewItem(catalog.Params{
		ID: "CAT-FLOOR", Name: "Flooring", BasePrice: kernel.MustMoney(9900), Active: true,
		Tiers: []catalog.AreaTier{
			{Label: "A", Price: kernel.MustMoney(8800)},
			{Label: "B", Price: kernel.MustMoney(11000)},
			{Label: "C", Price: kernel.MustMoney(15400)},
		},
	})
	require.NoError(t, err)
	lock, err := catalog.NewItem(catalog.Params{
		ID: "CAT-LOCK", Name: "Lock change", BasePrice: kernel.MustMoney(1200), Active: true, QuantitySelectable: true,
	})
	require.NoError(t, err)
	retired, err := catalog.NewItem(catalog.Params{ID: "CAT-OLD", Name: "Retired", BasePrice: kernel.MustMoney(1)})
	require.NoError(t, err)
	return []*catalog.Item{floor, lock, retired}
}

func mustActor(t *testing.T, userID string, role order.Role) order.Actor {
	t.Helper()
	a, err := order.NewActor(userID, role)
	require.NoError(t, err)
	return a
}

func storedOrder(t *testing.T, status order.Status, area float64) *order.Order {
	t.Helper()
	var roomArea *kernel.RoomArea
	if area > 0 {
		a, err := kernel.NewRoomArea(area)
		require.NoError(t, err)
		roomArea = &a
	}
	o, err := order.RestoreOrder(order.Snapshot{
		ID:        "ORD001",
		OwnerID:   "U1",
		OrderDate: testNow,
		RoomArea:  roomArea,
		KeyStatus: order.KeyHanded,
		Status:    status,
		CreatedAt: testNow,
		UpdatedAt: testNow,
	})
	require.NoError(t, err)
	return o
}

func storedItem(t *testing.T, orderID, catalogID string, ordinal, qty int, price int64) *order.Item {
	t.Helper()
	item, err := order.NewItem(orderID, catalogID, ordinal, qty, kernel.MustMoney(price), "")
	require.NoError(t, err)
	return item
}

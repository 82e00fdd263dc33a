package commands_test

import (
	"errors"
	"testing"

	"ordertrack/internal/core/application/usecases/commands"
	"ordertrack/internal/core/domain/model/event"
	"ordertrack/internal/core/domain/model/kernel"
	"ordertrack/internal/core/domain/model/order"
	"ordertrack/internal/core/domain/services"
	"ordertrack/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newCreateHandler(
	session *MockSession, catalogReader *MockCatalogReader, dispatcher *MockDispatcher,
) commands.CreateOrderCommandHandler {
	factory := new(MockOrderSessionFactory)
	factory.On("Open", mock.Anything).Return(session, nil)

	return commands.NewCreateOrderCommandHandler(
		factory,
		commands.NewIdentifierAllocator(commands.OrderIDPrefix, fixedClock(), discardLogger()),
		commands.NewOrderItemsManager(catalogReader, services.NewPricingResolver()),
		dispatcher,
		fixedClock(),
		discardLogger(),
	)
}

func TestCreateOrderCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	area, err := kernel.NewRoomArea(45)
	require.NoError(t, err)
	cmd, err := commands.NewCreateOrderCommand(
		order.Intake{OwnerID: "U1", OrderDate: testNow, RoomArea: &area},
		[]commands.RequestedItem{
			{CatalogItemID: "CAT-FLOOR", Quantity: 1},
			{CatalogItemID: "CAT-LOCK", Quantity: 2},
		},
	)
	require.NoError(t, err)

	session := newMockSession()
	catalogReader := new(MockCatalogReader)
	dispatcher := new(MockDispatcher)

	var added []*order.Item
	mock.InOrder(
		session.orders.On("ListIDs", mock.Anything).Return([]string{"ORD001", "ORD007"}, nil).Once(),
		catalogReader.On("GetCatalogItems", mock.Anything).Return(testCatalog(t), nil).Once(),
		session.orders.On("Add", mock.Anything, mock.AnythingOfType("*order.Order")).Return(nil).Once(),
	)
	session.items.On("MaxOrdinal", mock.Anything, "ORD008").Return(0, nil).Once()
	session.items.On("ListByOrder", mock.Anything, "ORD008").Return([]*order.Item{}, nil).Once()
	session.items.On("Add", mock.Anything, mock.AnythingOfType("*order.Item")).
		Run(func(args mock.Arguments) { added = append(added, args.Get(1).(*order.Item)) }).
		Return(nil).Twice()
	dispatcher.On("Dispatch", mock.Anything, mock.Anything).Once()

	h := newCreateHandler(session, catalogReader, dispatcher)
	o, err := h.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, "ORD008", o.ID())
	assert.Equal(t, order.AwaitingSchedule, o.Status())
	require.Len(t, added, 2)
	assert.Equal(t, "ORD008-CAT-FLOOR-1", added[0].ID())
	assert.True(t, added[0].UnitPrice().IsEqual(kernel.MustMoney(11000)))
	assert.Equal(t, "ORD008-CAT-LOCK-2", added[1].ID())
	assert.True(t, order.TotalOf(added).IsEqual(kernel.MustMoney(13400)))

	events := dispatcher.dispatched()
	require.Len(t, events, 1)
	assert.Equal(t, event.OrderCreated, events[0].Kind)
	session.assertExpectations(t)
	catalogReader.AssertExpectations(t)
}

func TestCreateOrderCommandHandler_Handle_InactiveItemWritesNothing(t *testing.T) {
	cmd, err := commands.NewCreateOrderCommand(
		order.Intake{OwnerID: "U1", OrderDate: testNow},
		[]commands.RequestedItem{{CatalogItemID: "CAT-OLD", Quantity: 1}, {CatalogItemID: "CAT-NONE", Quantity: 1}},
	)
	require.NoError(t, err)

	session := newMockSession()
	catalogReader := new(MockCatalogReader)
	dispatcher := new(MockDispatcher)
	session.orders.On("ListIDs", mock.Anything).Return([]string{}, nil).Once()
	catalogReader.On("GetCatalogItems", mock.Anything).Return(testCatalog(t), nil).Once()

	h := newCreateHandler(session, catalogReader, dispatcher)
	o, err := h.Handle(t.Context(), cmd)

	require.Error(t, err)
	assert.Nil(t, o)
	assert.True(t, errs.IsValidation(err))
	assert.ErrorIs(t, err, commands.ErrCatalogItemIsInactive)
	assert.ErrorIs(t, err, commands.ErrCatalogItemIsUnknown)
	session.orders.AssertNotCalled(t, "Add", mock.Anything, mock.Anything)
	session.items.AssertNotCalled(t, "Add", mock.Anything, mock.Anything)
	dispatcher.AssertNotCalled(t, "Dispatch", mock.Anything, mock.Anything)
}

func TestCreateOrderCommandHandler_Handle_AddError(t *testing.T) {
	cmd, err := commands.NewCreateOrderCommand(order.Intake{OwnerID: "U1", OrderDate: testNow}, nil)
	require.NoError(t, err)

	session := newMockSession()
	dispatcher := new(MockDispatcher)
	storeErr := errs.NewStoreError("append", "orders", errors.New("unreachable"))
	session.orders.On("ListIDs", mock.Anything).Return([]string{}, nil).Once()
	session.orders.On("Add", mock.Anything, mock.Anything).Return(storeErr).Once()

	h := newCreateHandler(session, new(MockCatalogReader), dispatcher)
	_, err = h.Handle(t.Context(), cmd)

	assert.ErrorIs(t, err, errs.ErrStore)
	dispatcher.AssertNotCalled(t, "Dispatch", mock.Anything, mock.Anything)
}

func TestCreateOrderCommandHandler_Handle_LineWriteErrorReturnsOrder(t *testing.T) {
	cmd, err := commands.NewCreateOrderCommand(
		order.Intake{OwnerID: "U1", OrderDate: testNow},
		[]commands.RequestedItem{{CatalogItemID: "CAT-LOCK", Quantity: 1}},
	)
	require.NoError(t, err)

	session := newMockSession()
	catalogReader := new(MockCatalogReader)
	dispatcher := new(MockDispatcher)
	storeErr := errs.NewTransientStoreError("append", "order_items", errors.New("timeout"))
	session.orders.On("ListIDs", mock.Anything).Return([]string{}, nil).Once()
	catalogReader.On("GetCatalogItems", mock.Anything).Return(testCatalog(t), nil).Once()
	session.orders.On("Add", mock.Anything, mock.AnythingOfType("*order.Order")).Return(nil).Once()
	session.items.On("MaxOrdinal", mock.Anything, "ORD001").Return(0, nil).Once()
	session.items.On("ListByOrder", mock.Anything, "ORD001").Return([]*order.Item{}, nil).Once()
	session.items.On("Add", mock.Anything, mock.AnythingOfType("*order.Item")).Return(storeErr).Once()
	dispatcher.On("Dispatch", mock.Anything, mock.Anything).Once()

	o, err := newCreateHandler(session, catalogReader, dispatcher).Handle(t.Context(), cmd)

	require.ErrorIs(t, err, errs.ErrStore)
	require.NotNil(t, o)
	assert.Equal(t, "ORD001", o.ID())
	events := dispatcher.dispatched()
	require.Len(t, events, 1)
	assert.Equal(t, event.OrderCreated, events[0].Kind)
	session.assertExpectations(t)
}

func TestCreateOrderCommandHandler_Handle_SessionError(t *testing.T) {
	cmd, err := commands.NewCreateOrderCommand(order.Intake{OwnerID: "U1", OrderDate: testNow}, nil)
	require.NoError(t, err)

	factory := new(MockOrderSessionFactory)
	factory.On("Open", mock.Anything).Return(nil, errors.New("connect failed")).Once()
	h := commands.NewCreateOrderCommandHandler(
		factory,
		commands.NewIdentifierAllocator(commands.OrderIDPrefix, fixedClock(), discardLogger()),
		commands.NewOrderItemsManager(new(MockCatalogReader), services.NewPricingResolver()),
		new(MockDispatcher), fixedClock(), discardLogger(),
	)

	_, err = h.Handle(t.Context(), cmd)
	assert.EqualError(t, err, "connect failed")
}

func TestCreateOrderCommandHandler_Handle_NotConstructed(t *testing.T) {
	h := newCreateHandler(newMockSession(), new(MockCatalogReader), new(MockDispatcher))

	_, err := h.Handle(t.Context(), commands.CreateOrderCommand{})
	assert.ErrorIs(t, err, commands.ErrCreateOrderCommandIsNotConstructed)
}

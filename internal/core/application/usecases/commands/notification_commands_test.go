package commands_test

import (
	"testing"

	"ordertrack/internal/core/application/usecases/commands"
	"ordertrack/internal/core/domain/model/event"
	"ordertrack/internal/core/domain/model/kernel"
	"ordertrack/internal/core/domain/model/notification"
	"ordertrack/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestToggleNotificationReadCommandHandler_Handle(t *testing.T) {
	session := newMockSession()
	n, err := notification.New("", event.OrderCreated, "New order", "ORD001", testNow)
	require.NoError(t, err)
	session.notifications.On("Get", mock.Anything, n.ID()).Return(n, nil).Twice()
	session.notifications.On("Update", mock.Anything, n).Return(nil).Twice()
	factory := new(MockNotificationSessionFactory)
	factory.On("Open", mock.Anything).Return(session, nil)
	h := commands.NewToggleNotificationReadCommandHandler(factory)

	cmd, err := commands.NewToggleNotificationReadCommand(n.ID())
	require.NoError(t, err)

	read, err := h.Handle(t.Context(), cmd)
	require.NoError(t, err)
	assert.True(t, read)

	read, err = h.Handle(t.Context(), cmd)
	require.NoError(t, err)
	assert.False(t, read)
	session.assertExpectations(t)
}

func TestToggleNotificationReadCommandHandler_Handle_NotFound(t *testing.T) {
	session := newMockSession()
	id := kernel.NewUUID()
	session.notifications.On("Get", mock.Anything, id).Return(nil, errs.NewObjectNotFoundError("notification", id)).Once()
	factory := new(MockNotificationSessionFactory)
	factory.On("Open", mock.Anything).Return(session, nil)

	cmd, err := commands.NewToggleNotificationReadCommand(id)
	require.NoError(t, err)

	_, err = commands.NewToggleNotificationReadCommandHandler(factory).Handle(t.Context(), cmd)
	assert.True(t, errs.IsNotFound(err))
}

func TestNewToggleNotificationReadCommand_InvalidID(t *testing.T) {
	_, err := commands.NewToggleNotificationReadCommand(kernel.UUID{})
	assert.ErrorIs(t, err, kernel.ErrUUIDIsNotConstructed)
}

func TestRegisterUserNotificationCommandHandler_Handle(t *testing.T) {
	dispatcher := new(MockDispatcher)
	dispatcher.On("Dispatch", mock.Anything, mock.Anything).Once()

	cmd, err := commands.NewRegisterUserNotificationCommand("U9")
	require.NoError(t, err)

	err = commands.NewRegisterUserNotificationCommandHandler(dispatcher, fixedClock()).Handle(t.Context(), cmd)

	require.NoError(t, err)
	events := dispatcher.dispatched()
	require.Len(t, events, 1)
	assert.Equal(t, event.UserRegistered, events[0].Kind)
	assert.Equal(t, "U9", events[0].UserID)
	assert.Equal(t, testNow, events[0].OccurredAt)

	_, err = commands.NewRegisterUserNotificationCommand("")
	assert.Error(t, err)
}

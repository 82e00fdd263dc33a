package notify_test

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"ordertrack/internal/core/application/notify"
	"ordertrack/internal/core/application/usecases/commands"
	"ordertrack/internal/core/domain/model/event"
	"ordertrack/internal/core/domain/model/kernel"
	"ordertrack/internal/core/domain/model/notification"
	"ordertrack/internal/core/ports"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)

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

func (m *MockNotificationRepository) ListForUser(
	ctx context.Context, userID string,
) ([]*notification.Notification, error) {
	args := m.Called(ctx, userID)
	list, _ := args.Get(0).([]*notification.Notification)
	return list, args.Error(1)
}

type sessions struct {
	repo *MockNotificationRepository
	err  error
}

func (s sessions) Open(context.Context) (commands.NotificationSession, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s, nil
}

func (s sessions) NotificationRepository() ports.NotificationRepository { return s.repo }

type MockUserDirectory struct{ mock.Mock }

func (m *MockUserDirectory) ActiveAdminEmails(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	emails, _ := args.Get(0).([]string)
	return emails, args.Error(1)
}

func (m *MockUserDirectory) EmailOf(ctx context.Context, userID string) (string, error) {
	args := m.Called(ctx, userID)
	return args.String(0), args.Error(1)
}

type recordingQueue struct {
	mails []ports.Mail
	full  bool
}

func (q *recordingQueue) Enqueue(mail ports.Mail) bool {
	if q.full {
		return false
	}
	q.mails = append(q.mails, mail)
	return true
}

func newDispatcher(repo *MockNotificationRepository, users *MockUserDirectory, queue *recordingQueue) *notify.Dispatcher {
	return notify.NewDispatcher(
		sessions{repo: repo},
		users,
		queue,
		nil,
		kernel.ClockFunc(func() time.Time { return now }),
		slog.New(slog.NewTextHandler(io.Discard, nil)),
	)
}

func statusChanged(from, to string) event.Event {
	return event.Event{
		Kind: event.StatusChanged, OrderID: "ORD001", OwnerID: "U1", Old: from, New: to, OccurredAt: now,
	}
}

func TestDispatcher_AdminSchedulesOrder(t *testing.T) {
	repo := new(MockNotificationRepository)
	repo.On("Add", mock.Anything, mock.MatchedBy(func(n *notification.Notification) bool {
		return n.IsBroadcast() && n.Kind() == event.StatusChanged
	})).Return(nil).Once()
	users := new(MockUserDirectory)
	users.On("ActiveAdminEmails", mock.Anything).Return([]string{"a1@example.com", "a2@example.com"}, nil).Once()
	queue := &recordingQueue{}

	n := newDispatcher(repo, users, queue).Dispatch(t.Context(), statusChanged("awaiting_schedule", "scheduled"))

	require.NotNil(t, n)
	assert.Empty(t, n.TargetUserID())
	assert.Equal(t, "Order ORD001 scheduled", n.Title())
	require.Len(t, queue.mails, 1)
	assert.Equal(t, []string{"a1@example.com", "a2@example.com"}, queue.mails[0].To)
	assert.Equal(t, n.Title(), queue.mails[0].Subject)
	users.AssertNotCalled(t, "EmailOf", mock.Anything, mock.Anything)
	repo.AssertExpectations(t)
	users.AssertExpectations(t)
}

func TestDispatcher_SystemCompletesOrder(t *testing.T) {
	repo := new(MockNotificationRepository)
	repo.On("Add", mock.Anything, mock.MatchedBy(func(n *notification.Notification) bool {
		return n.TargetUserID() == "U1"
	})).Return(nil).Once()
	users := new(MockUserDirectory)
	users.On("EmailOf", mock.Anything, "U1").Return("u1@example.com", nil).Once()
	queue := &recordingQueue{}

	n := newDispatcher(repo, users, queue).Dispatch(t.Context(), statusChanged("scheduled", "completed"))

	require.NotNil(t, n)
	assert.Equal(t, "U1", n.TargetUserID())
	assert.Equal(t, "Construction for order ORD001 has been completed.", n.Message())
	require.Len(t, queue.mails, 1)
	assert.Equal(t, []string{"u1@example.com"}, queue.mails[0].To)
	users.AssertNotCalled(t, "ActiveAdminEmails", mock.Anything)
	repo.AssertExpectations(t)
}

func TestDispatcher_PaidSendsNoEmail(t *testing.T) {
	repo := new(MockNotificationRepository)
	repo.On("Add", mock.Anything, mock.Anything).Return(nil).Once()
	users := new(MockUserDirectory)
	queue := &recordingQueue{}

	n := newDispatcher(repo, users, queue).Dispatch(t.Context(), statusChanged("invoiced", "paid"))

	require.NotNil(t, n)
	assert.Equal(t, "U1", n.TargetUserID())
	assert.Empty(t, queue.mails)
	users.AssertExpectations(t)
}

func TestDispatcher_StoreFailureStillEmails(t *testing.T) {
	repo := new(MockNotificationRepository)
	repo.On("Add", mock.Anything, mock.Anything).Return(errors.New("store is down")).Once()
	users := new(MockUserDirectory)
	users.On("ActiveAdminEmails", mock.Anything).Return([]string{"a1@example.com"}, nil).Once()
	queue := &recordingQueue{}

	n := newDispatcher(repo, users, queue).Dispatch(t.Context(), event.Event{
		Kind: event.OrderCreated, OrderID: "ORD002", OwnerID: "U2", OccurredAt: now,
	})

	assert.Nil(t, n)
	require.Len(t, queue.mails, 1)
	assert.Equal(t, "New order ORD002", queue.mails[0].Subject)
}

func TestDispatcher_RecipientLookupFailure(t *testing.T) {
	repo := new(MockNotificationRepository)
	repo.On("Add", mock.Anything, mock.Anything).Return(nil).Once()
	users := new(MockUserDirectory)
	users.On("EmailOf", mock.Anything, "U1").Return("", errors.New("user is inactive")).Once()
	queue := &recordingQueue{}

	n := newDispatcher(repo, users, queue).Dispatch(t.Context(), statusChanged("completed", "invoiced"))

	require.NotNil(t, n)
	assert.Equal(t, "Order ORD001 updated", n.Title())
	assert.Empty(t, queue.mails)
}

func TestDispatcher_FullQueueDropIsLoggedOnce(t *testing.T) {
	repo := new(MockNotificationRepository)
	repo.On("Add", mock.Anything, mock.Anything).Return(nil).Once()
	users := new(MockUserDirectory)
	users.On("ActiveAdminEmails", mock.Anything).Return([]string{"a1@example.com"}, nil).Once()
	var logs bytes.Buffer
	d := notify.NewDispatcher(
		sessions{repo: repo},
		users,
		&recordingQueue{full: true},
		nil,
		kernel.ClockFunc(func() time.Time { return now }),
		slog.New(slog.NewJSONHandler(&logs, nil)),
	)

	n := d.Dispatch(t.Context(), statusChanged("awaiting_schedule", "scheduled"))

	require.NotNil(t, n)
	assert.Equal(t, 1, strings.Count(logs.String(), "email dropped"))
	assert.Contains(t, logs.String(), `"order_id":"ORD001"`)
	repo.AssertExpectations(t)
}

func TestDispatcher_UnroutableEvent(t *testing.T) {
	repo := new(MockNotificationRepository)
	users := new(MockUserDirectory)
	queue := &recordingQueue{}

	n := newDispatcher(repo, users, queue).Dispatch(t.Context(), event.Event{Kind: event.Unknown})

	assert.Nil(t, n)
	assert.Empty(t, queue.mails)
	repo.AssertNotCalled(t, "Add", mock.Anything, mock.Anything)
}

func TestTemplates_Render(t *testing.T) {
	templates := notify.DefaultTemplates()

	title, message, err := templates.Render(event.Event{
		Kind: event.ScheduleChanged, OrderID: "ORD003", New: "2025-04-01",
	})
	require.NoError(t, err)
	assert.Equal(t, "Construction date changed for ORD003", title)
	assert.Equal(t, "The construction date of order ORD003 moved from unscheduled to 2025-04-01.", message)

	title, _, err = templates.Render(event.Event{Kind: event.UserRegistered, UserID: "U9"})
	require.NoError(t, err)
	assert.Equal(t, "New user registered", title)

	_, _, err = templates.Render(event.Event{Kind: event.Unknown})
	assert.ErrorIs(t, err, notify.ErrTemplateIsMissing)
}

func TestParseTemplates_Malformed(t *testing.T) {
	_, err := notify.ParseTemplates([]byte("order_created:\n  title: \"{{.OrderID\"\n"))
	assert.Error(t, err)
}

package email

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ordertrack/internal/core/ports"
)

type recordingGateway struct {
	mu    sync.Mutex
	sent  []ports.Mail
	fail  bool
	block chan struct{}
}

func (g *recordingGateway) Send(ctx context.Context, mail ports.Mail) error {
	if g.block != nil {
		select {
		case <-g.block:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	if g.fail {
		return errors.New("smtp relay is down")
	}

	g.mu.Lock()
	defer g.mu.Unlock()
	g.sent = append(g.sent, mail)
	return nil
}

func (g *recordingGateway) count() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.sent)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func mail(subject string) ports.Mail {
	return ports.Mail{To: []string{"a@example.com"}, Subject: subject, Body: "body"}
}

func TestOutbox_DeliversEverythingBeforeClose(t *testing.T) {
	gateway := &recordingGateway{}
	outbox := NewOutbox(gateway, OutboxConfig{QueueSize: 10, Workers: 3}, discardLogger())
	outbox.Start()

	for i := 0; i < 10; i++ {
		require.True(t, outbox.Enqueue(mail("s")))
	}
	outbox.Close()

	assert.Equal(t, 10, gateway.count())
}

func TestOutbox_EnqueueNeverBlocks(t *testing.T) {
	gateway := &recordingGateway{}
	outbox := NewOutbox(gateway, OutboxConfig{QueueSize: 1, Workers: 1}, discardLogger())

	// workers are not started, so the second mail finds the queue full
	assert.True(t, outbox.Enqueue(mail("first")))
	assert.False(t, outbox.Enqueue(mail("second")))

	outbox.Start()
	outbox.Close()
	assert.Equal(t, 1, gateway.count())
}

func TestOutbox_EnqueueAfterClose(t *testing.T) {
	outbox := NewOutbox(&recordingGateway{}, OutboxConfig{}, discardLogger())
	outbox.Start()
	outbox.Close()
	outbox.Close()

	assert.False(t, outbox.Enqueue(mail("late")))
}

func TestOutbox_FailuresAreSwallowed(t *testing.T) {
	gateway := &recordingGateway{fail: true}
	outbox := NewOutbox(gateway, OutboxConfig{Workers: 1}, discardLogger())
	outbox.Start()

	assert.True(t, outbox.Enqueue(mail("s")))
	outbox.Close()

	assert.Zero(t, gateway.count())
}

func TestOutbox_SendTimeout(t *testing.T) {
	gateway := &recordingGateway{block: make(chan struct{})}
	outbox := NewOutbox(gateway, OutboxConfig{Workers: 1, SendTimeout: 20 * time.Millisecond}, discardLogger())
	outbox.Start()

	assert.True(t, outbox.Enqueue(mail("slow")))

	done := make(chan struct{})
	go func() {
		outbox.Close()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Close did not return after the send timeout")
	}
	assert.Zero(t, gateway.count())
}

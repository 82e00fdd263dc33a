// Package email delivers outbound mail off the request path.
//
// Outbox is the in-process queue between the notification dispatcher and an EmailGateway:
// Enqueue never blocks, workers send with a per-message timeout and every failure is
// logged and dropped.
package email

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"ordertrack/internal/core/ports"
)

var _ ports.MailQueue = (*Outbox)(nil)

const (
	DefaultQueueSize   = 256
	DefaultWorkers     = 2
	DefaultSendTimeout = 10 * time.Second
)

type OutboxConfig struct {
	QueueSize   int
	Workers     int
	SendTimeout time.Duration
}

// Outbox queues mail for a fixed pool of sender goroutines.
//
// Example:
//
//	outbox := email.NewOutbox(gateway, email.OutboxConfig{}, logger)
//	outbox.Start()
//	defer outbox.Close()
//	outbox.Enqueue(ports.Mail{To: []string{"a@example.com"}, Subject: "s", Body: "b"})
type Outbox struct {
	gateway ports.EmailGateway
	cfg     OutboxConfig
	logger  *slog.Logger

	queue chan ports.Mail
	wg    sync.WaitGroup

	mu     sync.RWMutex
	closed bool
}

func NewOutbox(gateway ports.EmailGateway, cfg OutboxConfig, logger *slog.Logger) *Outbox {
	if cfg.QueueSize <= 0 {
		cfg.QueueSize = DefaultQueueSize
	}
	if cfg.Workers <= 0 {
		cfg.Workers = DefaultWorkers
	}
	if cfg.SendTimeout <= 0 {
		cfg.SendTimeout = DefaultSendTimeout
	}

	return &Outbox{
		gateway: gateway,
		cfg:     cfg,
		logger:  logger.With("component", "email_outbox"),
		queue:   make(chan ports.Mail, cfg.QueueSize),
	}
}

// Start launches the workers.
func (o *Outbox) Start() {
	for i := range o.cfg.Workers {
		o.wg.Add(1)
		go o.work(i)
	}
}

// Enqueue reports false when the mail was dropped because the queue is full or closed.
func (o *Outbox) Enqueue(mail ports.Mail) bool {
	o.mu.RLock()
	defer o.mu.RUnlock()

	if o.closed {
		return false
	}

	select {
	case o.queue <- mail:
		return true
	default:
		return false
	}
}

// Close stops accepting mail and waits until the workers drained the queue.
func (o *Outbox) Close() {
	o.mu.Lock()
	if o.closed {
		o.mu.Unlock()
		return
	}
	o.closed = true
	close(o.queue)
	o.mu.Unlock()

	o.wg.Wait()
}

func (o *Outbox) work(id int) {
	defer o.wg.Done()

	for mail := range o.queue {
		o.send(id, mail)
	}
}

func (o *Outbox) send(worker int, mail ports.Mail) {
	ctx, cancel := context.WithTimeout(context.Background(), o.cfg.SendTimeout)
	defer cancel()

	if err := o.gateway.Send(ctx, mail); err != nil {
		o.logger.ErrorContext(ctx, "email delivery failed",
			"worker", worker, "recipients", len(mail.To), "subject", mail.Subject, "error", err)
		return
	}
	o.logger.DebugContext(ctx, "email sent", "worker", worker, "recipients", len(mail.To))
}

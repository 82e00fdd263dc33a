package email

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"

	"ordertrack/internal/core/domain/model/kernel"
	"ordertrack/internal/core/ports"
)

var _ ports.EmailGateway = (*KafkaGateway)(nil)

// MailRequest is the message the mail relay consumes from the email topic.
type MailRequest struct {
	ID          string    `json:"id"`
	To          []string  `json:"to"`
	Subject     string    `json:"subject"`
	Body        string    `json:"body"`
	RequestedAt time.Time `json:"requested_at"`
}

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaGateway hands mail to the relay by publishing a MailRequest. A successful Send only
// means the broker accepted the request.
type KafkaGateway struct {
	writer messageWriter
	clock  kernel.Clock
}

func NewKafkaGateway(brokers []string, topic string, clock kernel.Clock) *KafkaGateway {
	return newKafkaGateway(&kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  topic,
		Balancer:               &kafka.Hash{},
		RequiredAcks:           kafka.RequireAll,
		AllowAutoTopicCreation: true,
	}, clock)
}

func newKafkaGateway(writer messageWriter, clock kernel.Clock) *KafkaGateway {
	return &KafkaGateway{writer: writer, clock: clock}
}

func (g *KafkaGateway) Send(ctx context.Context, mail ports.Mail) error {
	if len(mail.To) == 0 {
		return nil
	}

	req := MailRequest{
		ID:          uuid.NewString(),
		To:          mail.To,
		Subject:     mail.Subject,
		Body:        mail.Body,
		RequestedAt: g.clock.Now(),
	}
	value, err := json.Marshal(req)
	if err != nil {
		return fmt.Errorf("encode mail request: %w", err)
	}

	msg := kafka.Message{
		Key:   []byte(strings.Join(mail.To, ",")),
		Value: value,
		Time:  req.RequestedAt,
		Headers: []kafka.Header{
			{Key: "content-type", Value: []byte("application/json")},
		},
	}
	if err := g.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("publish mail request %s: %w", req.ID, err)
	}
	return nil
}

func (g *KafkaGateway) Close() error {
	return g.writer.Close()
}

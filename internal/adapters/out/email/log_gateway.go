package email

import (
	"context"
	"log/slog"

	"ordertrack/internal/core/ports"
)

var _ ports.EmailGateway = (*LogGateway)(nil)

// LogGateway writes mail to the log instead of sending it. Used when no broker is configured.
type LogGateway struct {
	logger *slog.Logger
}

func NewLogGateway(logger *slog.Logger) *LogGateway {
	return &LogGateway{logger: logger.With("component", "email_log_gateway")}
}

func (g *LogGateway) Send(ctx context.Context, mail ports.Mail) error {
	g.logger.InfoContext(ctx, "email", "to", mail.To, "subject", mail.Subject, "body", mail.Body)
	return nil
}

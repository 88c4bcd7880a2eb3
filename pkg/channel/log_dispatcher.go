package channel

import (
	"context"
	"time"

	"guest-concierge-be/internal/pkg/logger"

	"github.com/google/uuid"
)

// LogDispatcher is the development transport: it records the send instead
// of delivering it.
type LogDispatcher struct {
	logger logger.ILogger
}

var _ Dispatcher = &LogDispatcher{}

func NewLogDispatcher(l logger.ILogger) *LogDispatcher {
	return &LogDispatcher{logger: l}
}

func (d *LogDispatcher) Send(ctx context.Context, from, to, body string) (*Receipt, error) {
	d.logger.Info("channel", "outbound message (log transport)", map[string]interface{}{
		"from": from,
		"to":   to,
		"body": body,
	})
	return &Receipt{
		ProviderMessageId: "log-" + uuid.NewString(),
		AcceptedAt:        time.Now(),
	}, nil
}

package channel

import (
	"context"
	"errors"
	"time"
)

// ErrTransport wraps any provider-side send rejection (bad address, outage).
// Dispatch failures are non-fatal to persisted state; callers log and
// surface them without retrying here.
var ErrTransport = errors.New("channel transport error")

// Receipt is the provider's acknowledgement of an accepted send.
type Receipt struct {
	ProviderMessageId string
	AcceptedAt        time.Time
}

// Dispatcher delivers one text reply to a guest over the channel transport.
type Dispatcher interface {
	Send(ctx context.Context, from, to, body string) (*Receipt, error)
}

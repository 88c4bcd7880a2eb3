package factory

import (
	"fmt"

	"guest-concierge-be/internal/config"
	"guest-concierge-be/internal/pkg/logger"
	"guest-concierge-be/pkg/channel"
	"guest-concierge-be/pkg/channel/twilio"
)

func NewDispatcher(cfg config.ChannelConfig, l logger.ILogger) (channel.Dispatcher, error) {
	switch cfg.Provider {
	case "twilio":
		if cfg.AccountSID == "" || cfg.AuthToken == "" {
			return nil, fmt.Errorf("twilio provider requires CHANNEL_ACCOUNT_SID and CHANNEL_AUTH_TOKEN")
		}
		return twilio.NewProvider(cfg.BaseURL, cfg.AccountSID, cfg.AuthToken), nil
	case "log", "":
		return channel.NewLogDispatcher(l), nil
	default:
		return nil, fmt.Errorf("unsupported channel provider: %s", cfg.Provider)
	}
}

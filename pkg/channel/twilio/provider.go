package twilio

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"guest-concierge-be/pkg/channel"
)

// Provider sends messages through a Twilio-compatible messages REST API.
type Provider struct {
	BaseURL    string
	AccountSID string
	AuthToken  string
	Client     *http.Client
}

var _ channel.Dispatcher = &Provider{}

func NewProvider(baseURL, accountSID, authToken string) *Provider {
	if baseURL == "" {
		baseURL = "https://api.twilio.com"
	}
	return &Provider{
		BaseURL:    baseURL,
		AccountSID: accountSID,
		AuthToken:  authToken,
		Client: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

type messageResponse struct {
	Sid         string `json:"sid"`
	Status      string `json:"status"`
	ErrorCode   *int   `json:"error_code"`
	Message     string `json:"message"` // error body field
	DateCreated string `json:"date_created"`
}

func (p *Provider) Send(ctx context.Context, from, to, body string) (*channel.Receipt, error) {
	form := url.Values{}
	form.Set("From", from)
	form.Set("To", to)
	form.Set("Body", body)

	endpoint := fmt.Sprintf("%s/2010-04-01/Accounts/%s/Messages.json", p.BaseURL, p.AccountSID)
	req, err := http.NewRequestWithContext(ctx, "POST", endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.SetBasicAuth(p.AccountSID, p.AuthToken)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := p.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", channel.ErrTransport, err)
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("%w: status %d, body: %s", channel.ErrTransport, resp.StatusCode, string(bodyBytes))
	}

	var msgResp messageResponse
	if err := json.Unmarshal(bodyBytes, &msgResp); err != nil {
		return nil, fmt.Errorf("unmarshal response: %w", err)
	}
	if msgResp.ErrorCode != nil {
		return nil, fmt.Errorf("%w: provider error %d", channel.ErrTransport, *msgResp.ErrorCode)
	}

	return &channel.Receipt{
		ProviderMessageId: msgResp.Sid,
		AcceptedAt:        time.Now(),
	}, nil
}

package controller

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"guest-concierge-be/internal/dto"
	"guest-concierge-be/internal/pkg/logger"
	"guest-concierge-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubMessageService struct {
	processed  []*dto.InboundMessageEvent
	processErr error
}

func (s *stubMessageService) ProcessInbound(ctx context.Context, event *dto.InboundMessageEvent) error {
	s.processed = append(s.processed, event)
	return s.processErr
}

func (s *stubMessageService) SendManual(ctx context.Context, accountId uuid.UUID, request *dto.ManualSendRequest) (*dto.MessageResponse, error) {
	return nil, nil
}

func (s *stubMessageService) InvalidateProperty(channelAddress string) {}

func newWebhookApp(svc service.IMessageService) *fiber.App {
	app := fiber.New()
	NewWebhookController(svc, logger.NewNopLogger()).RegisterRoutes(app.Group("/api"))
	return app
}

func postForm(t *testing.T, app *fiber.App, values url.Values) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/webhook/v1/inbound", strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	resp, err := app.Test(req)
	require.NoError(t, err)
	return resp
}

func TestWebhookInboundAck(t *testing.T) {
	svc := &stubMessageService{}
	app := newWebhookApp(svc)

	resp := postForm(t, app, url.Values{
		"From":        {"+15550199999"},
		"To":          {"+15550100100"},
		"Body":        {"When is check-in?"},
		"ProfileName": {"Alex"},
	})

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Empty(t, body, "webhook acknowledges with an empty body")

	require.Len(t, svc.processed, 1)
	assert.Equal(t, "+15550199999", svc.processed[0].From)
	assert.Equal(t, "Alex", svc.processed[0].ProfileName)
}

func TestWebhookInboundAcksProcessingFailure(t *testing.T) {
	svc := &stubMessageService{processErr: errors.New("store down")}
	app := newWebhookApp(svc)

	resp := postForm(t, app, url.Values{
		"From": {"+15550199999"},
		"To":   {"+15550100100"},
		"Body": {"hello"},
	})

	assert.Equal(t, http.StatusOK, resp.StatusCode, "provider retries on non-2xx, so failures are swallowed")
}

func TestWebhookInboundAcksUnknownProperty(t *testing.T) {
	svc := &stubMessageService{processErr: service.ErrPropertyNotFound}
	app := newWebhookApp(svc)

	resp := postForm(t, app, url.Values{
		"From": {"+15550199999"},
		"To":   {"+19990000000"},
		"Body": {"hello"},
	})

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestWebhookInboundMissingFields(t *testing.T) {
	svc := &stubMessageService{}
	app := newWebhookApp(svc)

	resp := postForm(t, app, url.Values{
		"From": {"+15550199999"},
	})

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Empty(t, svc.processed, "incomplete events are dropped, not processed")
}

func TestWebhookInboundJSONPayload(t *testing.T) {
	svc := &stubMessageService{}
	app := newWebhookApp(svc)

	req := httptest.NewRequest(http.MethodPost, "/api/webhook/v1/inbound",
		strings.NewReader(`{"from":"+15550199999","to":"+15550100100","body":"hi"}`))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	require.Len(t, svc.processed, 1)
	assert.Equal(t, "hi", svc.processed[0].Body)
}

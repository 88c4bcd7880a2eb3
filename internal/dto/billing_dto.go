package dto

type CheckoutRequest struct {
	Plan string `json:"plan" validate:"required,oneof=starter pro"`
}

type CheckoutResponse struct {
	OrderId     string `json:"order_id"`
	Token       string `json:"token"`
	RedirectURL string `json:"redirect_url"`
}

// MidtransWebhookRequest carries the notification fields this service
// consumes; the full raw payload is stored alongside for audit.
type MidtransWebhookRequest struct {
	OrderId           string `json:"order_id"`
	TransactionStatus string `json:"transaction_status"`
	FraudStatus       string `json:"fraud_status"`
	GrossAmount       string `json:"gross_amount"`
	SignatureKey      string `json:"signature_key"`
	StatusCode        string `json:"status_code"`
}

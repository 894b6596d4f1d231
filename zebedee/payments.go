package zebedee

import (
	"context"
	"net/http"
	"time"
)

// PaymentRequest pays a BOLT11 invoice from the project wallet.
type PaymentRequest struct {
	Description string `json:"description"`
	InternalID  string `json:"internalId"`
	Invoice     string `json:"invoice"`
}

// Payment is an outgoing Lightning payment.
type Payment struct {
	ID          string     `json:"id"`
	Fee         *string    `json:"fee,omitempty"`
	Unit        Unit       `json:"unit"`
	Amount      string     `json:"amount"`
	Invoice     *string    `json:"invoice,omitempty"`
	Preimage    *string    `json:"preimage,omitempty"`
	InternalID  *string    `json:"internalId,omitempty"`
	ProcessedAt *time.Time `json:"processedAt,omitempty"`
	ConfirmedAt *time.Time `json:"confirmedAt,omitempty"`
	Description string     `json:"description"`
	Status      string     `json:"status"`
}

// PayInvoice pays a Lightning invoice.
func (c *Client) PayInvoice(ctx context.Context, payment PaymentRequest) (*Payment, error) {
	return call[*Payment](ctx, c, http.MethodPost, "/v0/payments", payment)
}

// ListPayments retrieves all outgoing payments.
func (c *Client) ListPayments(ctx context.Context) ([]Payment, error) {
	return call[[]Payment](ctx, c, http.MethodGet, "/v0/payments", nil)
}

// GetPayment retrieves a single payment by id.
func (c *Client) GetPayment(ctx context.Context, id string) (*Payment, error) {
	id, err := pathParam("id", id)
	if err != nil {
		return nil, err
	}
	return call[*Payment](ctx, c, http.MethodGet, "/v0/payments/"+id, nil)
}

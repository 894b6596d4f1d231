package zebedee

import (
	"context"
	"net/http"
	"time"
)

// WithdrawalRequestInput creates an LNURL-withdraw QR code. ExpiresIn is in
// seconds and defaults to 300.
type WithdrawalRequestInput struct {
	ExpiresIn   int    `json:"expiresIn"`
	Amount      string `json:"amount"`
	Description string `json:"description"`
	InternalID  string `json:"internalId"`
	CallbackURL string `json:"callbackUrl"`
}

// WithdrawalInvoice carries the LNURL plus its fast variants.
type WithdrawalInvoice struct {
	Request     string `json:"request"`
	FastRequest string `json:"fastRequest"`
	URI         string `json:"uri"`
	FastURI     string `json:"fastUri"`
}

type WithdrawalRequest struct {
	ID          string            `json:"id"`
	Unit        Unit              `json:"unit"`
	Amount      string            `json:"amount"`
	CreatedAt   time.Time         `json:"createdAt"`
	ExpiresAt   time.Time         `json:"expiresAt"`
	InternalID  string            `json:"internalId"`
	Description string            `json:"description"`
	CallbackURL string            `json:"callbackUrl"`
	Status      string            `json:"status"`
	Invoice     WithdrawalInvoice `json:"invoice"`
}

func (c *Client) CreateWithdrawalRequest(ctx context.Context, input WithdrawalRequestInput) (*WithdrawalRequest, error) {
	if input.ExpiresIn == 0 {
		input.ExpiresIn = defaultExpiresIn
	}
	return call[*WithdrawalRequest](ctx, c, http.MethodPost, "/v0/withdrawal-requests", input)
}

func (c *Client) ListWithdrawalRequests(ctx context.Context) ([]WithdrawalRequest, error) {
	return call[[]WithdrawalRequest](ctx, c, http.MethodGet, "/v0/withdrawal-requests", nil)
}

func (c *Client) GetWithdrawalRequest(ctx context.Context, id string) (*WithdrawalRequest, error) {
	id, err := pathParam("id", id)
	if err != nil {
		return nil, err
	}
	return call[*WithdrawalRequest](ctx, c, http.MethodGet, "/v0/withdrawal-requests/"+id, nil)
}

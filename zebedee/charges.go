package zebedee

import (
	"context"
	"net/http"
	"time"
)

// ChargeRequest is the body of a create charge call. ExpiresIn is in
// seconds and defaults to 300.
type ChargeRequest struct {
	ExpiresIn   int    `json:"expiresIn"`
	Amount      string `json:"amount"`
	Description string `json:"description"`
	InternalID  string `json:"internalId"`
	CallbackURL string `json:"callbackUrl"`
}

// Charge is a Lightning payment request issued by the project wallet.
type Charge struct {
	ID          string     `json:"id"`
	Unit        Unit       `json:"unit"`
	Amount      string     `json:"amount"`
	CreatedAt   time.Time  `json:"createdAt"`
	InternalID  string     `json:"internalId"`
	CallbackURL string     `json:"callbackUrl"`
	Description string     `json:"description"`
	ExpiresAt   time.Time  `json:"expiresAt"`
	ConfirmedAt *time.Time `json:"confirmedAt,omitempty"`
	Status      string     `json:"status"`
	Invoice     Invoice    `json:"invoice"`
}

// CreateCharge creates a new Charge. The returned pointer is nil when the
// provider reports success without a payload.
func (c *Client) CreateCharge(ctx context.Context, charge ChargeRequest) (*Charge, error) {
	if charge.ExpiresIn == 0 {
		charge.ExpiresIn = defaultExpiresIn
	}
	return call[*Charge](ctx, c, http.MethodPost, "/v0/charges", charge)
}

// ListCharges retrieves all charges of the project wallet.
func (c *Client) ListCharges(ctx context.Context) ([]Charge, error) {
	return call[[]Charge](ctx, c, http.MethodGet, "/v0/charges", nil)
}

// GetCharge retrieves a single charge by id.
func (c *Client) GetCharge(ctx context.Context, id string) (*Charge, error) {
	id, err := pathParam("id", id)
	if err != nil {
		return nil, err
	}
	return call[*Charge](ctx, c, http.MethodGet, "/v0/charges/"+id, nil)
}

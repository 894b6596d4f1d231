package zebedee

import (
	"context"
	"net/http"
	"time"
)

// minGamertagAmountLength is the shortest accepted amount string. Amounts
// are in millisatoshis so anything shorter is below one sat.
const minGamertagAmountLength = 4

// GamertagPayment is the body of both the send payment and the fetch
// charge gamertag calls.
type GamertagPayment struct {
	Gamertag    string `json:"gamertag"`
	Amount      string `json:"amount"`
	Description string `json:"description"`
}

// Validate checks the gamertag is set and the amount is long enough.
func (p GamertagPayment) Validate() []Violation {
	return collect(
		required("gamertag", p.Gamertag),
		minLength("amount", p.Amount, minGamertagAmountLength),
	)
}

type GamertagPaymentData struct {
	ReceiverID    string    `json:"receiverId"`
	TransactionID string    `json:"transactionId"`
	Amount        string    `json:"amount"`
	Comment       string    `json:"comment"`
	SettledAt     time.Time `json:"settledAt"`
	Status        string    `json:"status"`
	ID            string    `json:"id"`
}

type GamertagChargeData struct {
	InvoiceRequest   string    `json:"invoiceRequest"`
	InvoiceExpiresAt time.Time `json:"invoiceExpiresAt"`
	Unit             Unit      `json:"unit"`
	CreatedAt        time.Time `json:"createdAt"`
	Status           string    `json:"status"`
	InternalID       *string   `json:"internalId,omitempty"`
	Amount           string    `json:"amount"`
	Description      string    `json:"description"`
}

type GamertagTransaction struct {
	ID          string     `json:"id"`
	ReceiverID  string     `json:"receiverId"`
	Amount      string     `json:"amount"`
	Fee         string     `json:"fee"`
	Unit        Unit       `json:"unit"`
	ProcessedAt *time.Time `json:"processedAt,omitempty"`
	ConfirmedAt *time.Time `json:"confirmedAt,omitempty"`
	Comment     string     `json:"comment"`
	Status      string     `json:"status"`
}

// PayGamertag sends sats to a ZBD user by gamertag. The payment is
// validated locally first and never dispatched when invalid.
func (c *Client) PayGamertag(ctx context.Context, payment GamertagPayment) (*GamertagPaymentData, error) {
	if err := check(payment); err != nil {
		return nil, err
	}
	data, err := call[GamertagPaymentData](ctx, c, http.MethodPost, "/v0/gamertag/send-payment", payment)
	if err != nil {
		return nil, err
	}
	return &data, nil
}

// FetchChargeFromGamertag creates a charge payable to the given gamertag.
func (c *Client) FetchChargeFromGamertag(ctx context.Context, payment GamertagPayment) (*GamertagChargeData, error) {
	if err := check(payment); err != nil {
		return nil, err
	}
	return call[*GamertagChargeData](ctx, c, http.MethodPost, "/v0/gamertag/charges", payment)
}

func (c *Client) GetGamertagTransaction(ctx context.Context, transactionID string) (*GamertagTransaction, error) {
	transactionID, err := pathParam("transactionId", transactionID)
	if err != nil {
		return nil, err
	}
	return call[*GamertagTransaction](ctx, c, http.MethodGet, "/v0/gamertag/transaction/"+transactionID, nil)
}

// GetUserIDByGamertag resolves a gamertag to a ZBD user id.
func (c *Client) GetUserIDByGamertag(ctx context.Context, gamertag string) (map[string]string, error) {
	gamertag, err := pathParam("gamertag", gamertag)
	if err != nil {
		return nil, err
	}
	return call[map[string]string](ctx, c, http.MethodGet, "/v0/user-id/gamertag/"+gamertag, nil)
}

// GetGamertagByUserID resolves a ZBD user id to its gamertag.
func (c *Client) GetGamertagByUserID(ctx context.Context, userID string) (map[string]string, error) {
	userID, err := pathParam("userId", userID)
	if err != nil {
		return nil, err
	}
	return call[map[string]string](ctx, c, http.MethodGet, "/v0/gamertag/user-id/"+userID, nil)
}

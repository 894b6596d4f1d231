package zebedee

import (
	"context"
	"net/http"
	"time"
)

// TLVRecord is a custom record attached to a keysend payment. Value is
// hex encoded.
type TLVRecord struct {
	Type  uint64 `json:"type"`
	Value string `json:"value"`
}

// KeysendRequest sends sats straight to a node public key.
type KeysendRequest struct {
	Amount      string      `json:"amount"`
	Pubkey      string      `json:"pubkey"`
	TLVRecords  []TLVRecord `json:"tlvRecords"`
	Metadata    string      `json:"metadata"`
	CallbackURL string      `json:"callbackUrl"`
}

type KeysendTransaction struct {
	ID          string     `json:"id"`
	WalletID    string     `json:"walletId"`
	Type        *string    `json:"type,omitempty"`
	TotalAmount string     `json:"totalAmount"`
	Fee         string     `json:"fee"`
	Amount      string     `json:"amount"`
	Description *string    `json:"description,omitempty"`
	Status      string     `json:"status"`
	ConfirmedAt *time.Time `json:"confirmedAt,omitempty"`
}

type KeysendData struct {
	KeysendID   string             `json:"keysendId"`
	PaymentID   string             `json:"paymentId"`
	Transaction KeysendTransaction `json:"transaction"`
}

// Keysend makes a spontaneous payment to a node.
func (c *Client) Keysend(ctx context.Context, payment KeysendRequest) (*KeysendData, error) {
	if payment.TLVRecords == nil {
		payment.TLVRecords = []TLVRecord{}
	}
	return call[*KeysendData](ctx, c, http.MethodPost, "/v0/keysend-payment", payment)
}

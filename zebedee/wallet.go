package zebedee

import (
	"context"
	"net/http"
	"time"
)

// WalletData is the project wallet balance.
type WalletData struct {
	Unit    Unit   `json:"unit"`
	Balance string `json:"balance"`
}

// InternalTransferRequest moves funds between two project wallets owned by
// the same account.
type InternalTransferRequest struct {
	Amount           string `json:"amount"`
	ReceiverWalletID string `json:"receiverWalletId"`
}

type InternalTransferData struct {
	ID               string     `json:"id"`
	Status           string     `json:"status"`
	Amount           string     `json:"amount"`
	SenderWalletID   string     `json:"senderWalletId"`
	ReceiverWalletID string     `json:"receiverWalletId"`
	UserID           string     `json:"userId"`
	SendTxID         string     `json:"sendTxId"`
	ReceiveTxID      string     `json:"receiveTxId"`
	CreatedAt        *time.Time `json:"createdAt,omitempty"`
	UpdatedAt        *time.Time `json:"updatedAt,omitempty"`
}

// GetWallet retrieves the total balance of the project wallet.
func (c *Client) GetWallet(ctx context.Context) (*WalletData, error) {
	return call[*WalletData](ctx, c, http.MethodGet, "/v0/wallet", nil)
}

// InternalTransfer performs a transfer between project wallets.
func (c *Client) InternalTransfer(ctx context.Context, transfer InternalTransferRequest) (*InternalTransferData, error) {
	data, err := call[InternalTransferData](ctx, c, http.MethodPost, "/v0/internal-transfer", transfer)
	if err != nil {
		return nil, err
	}
	return &data, nil
}

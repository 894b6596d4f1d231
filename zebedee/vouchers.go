package zebedee

import (
	"context"
	"net/http"
	"time"
)

// Voucher is a redeemable code worth a fixed amount of sats.
type Voucher struct {
	Amount              string    `json:"amount"`
	Code                string    `json:"code"`
	CreatedAt           time.Time `json:"createdAt"`
	CreateTransactionID string    `json:"createTransactionId"`
	Description         string    `json:"description"`
	Fee                 *string   `json:"fee,omitempty"`
	ID                  string    `json:"id"`
	Unit                Unit      `json:"unit"`
	WalletID            string    `json:"walletId"`
}

type CreateVoucherRequest struct {
	Amount      string `json:"amount"`
	Description string `json:"description"`
}

type voucherCode struct {
	Code string `json:"code"`
}

func (v voucherCode) Validate() []Violation {
	return required("code", v.Code)
}

// CreateVoucher issues a voucher funded by the project wallet.
func (c *Client) CreateVoucher(ctx context.Context, voucher CreateVoucherRequest) (*Voucher, error) {
	return call[*Voucher](ctx, c, http.MethodPost, "/v0/create-voucher", voucher)
}

func (c *Client) GetVoucher(ctx context.Context, id string) (*Voucher, error) {
	id, err := pathParam("id", id)
	if err != nil {
		return nil, err
	}
	return call[*Voucher](ctx, c, http.MethodGet, "/v0/vouchers/"+id, nil)
}

// RedeemVoucher credits the voucher amount to the project wallet.
func (c *Client) RedeemVoucher(ctx context.Context, code string) (*Voucher, error) {
	body := voucherCode{Code: code}
	if err := check(body); err != nil {
		return nil, err
	}
	return call[*Voucher](ctx, c, http.MethodPost, "/v0/redeem-voucher", body)
}

// RevokeVoucher cancels an unredeemed voucher and returns its funds.
func (c *Client) RevokeVoucher(ctx context.Context, code string) (*Voucher, error) {
	body := voucherCode{Code: code}
	if err := check(body); err != nil {
		return nil, err
	}
	return call[*Voucher](ctx, c, http.MethodPost, "/v0/revoke-voucher", body)
}

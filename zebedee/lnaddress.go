package zebedee

import (
	"context"
	"net/http"
	"net/url"
	"time"
)

// LnAddress is a Lightning Address to validate, e.g. "andre@zbd.gg".
type LnAddress struct {
	Address string `json:"address"`
}

func (a LnAddress) Validate() []Violation {
	return emailShaped("address", a.Address)
}

// LnPayment pays a Lightning Address.
type LnPayment struct {
	LnAddress string `json:"lnAddress"`
	Amount    string `json:"amount"`
	Comment   string `json:"comment"`
}

func (p LnPayment) Validate() []Violation {
	return emailShaped("lnAddress", p.LnAddress)
}

// LnFetchCharge requests an invoice from a Lightning Address without
// paying it.
type LnFetchCharge struct {
	LnAddress   string `json:"lnaddress"`
	Amount      string `json:"amount"`
	Description string `json:"description"`
}

func (f LnFetchCharge) Validate() []Violation {
	return emailShaped("lnaddress", f.LnAddress)
}

type LnSendPaymentData struct {
	ID            string    `json:"id"`
	Fee           *string   `json:"fee,omitempty"`
	Unit          Unit      `json:"unit"`
	Amount        string    `json:"amount"`
	Preimage      *string   `json:"preimage,omitempty"`
	Status        string    `json:"status"`
	Invoice       string    `json:"invoice"`
	WalletID      string    `json:"walletId"`
	TransactionID string    `json:"transactionId"`
	CreatedAt     time.Time `json:"createdAt"`
	ProcessedAt   time.Time `json:"processedAt"`
	CallbackURL   *string   `json:"callbackURL,omitempty"`
	InternalID    *string   `json:"internalId,omitempty"`
}

type LnFetchChargeData struct {
	LnAddress string  `json:"lnaddress"`
	Amount    string  `json:"amount"`
	Invoice   Invoice `json:"invoice"`
}

// LnPayerData lists which payer identity fields the recipient accepts.
type LnPayerData struct {
	Name       map[string]bool `json:"name"`
	Identifier map[string]bool `json:"identifier"`
}

// LnValidateMetadata mirrors the LNURL-pay parameters of the address.
type LnValidateMetadata struct {
	MinSendable    uint64      `json:"minSendable"`
	MaxSendable    uint64      `json:"maxSendable"`
	CommentAllowed uint64      `json:"commentAllowed"`
	Tag            string      `json:"tag"`
	Metadata       string      `json:"metadata"`
	Callback       string      `json:"callback"`
	PayerData      LnPayerData `json:"payerData"`
	Disposable     bool        `json:"disposable"`
}

type LnValidateData struct {
	Valid    bool               `json:"valid"`
	Metadata LnValidateMetadata `json:"metadata"`
}

// PayLightningAddress sends a payment to a Lightning Address.
func (c *Client) PayLightningAddress(ctx context.Context, payment LnPayment) (*LnSendPaymentData, error) {
	if err := check(payment); err != nil {
		return nil, err
	}
	return call[*LnSendPaymentData](ctx, c, http.MethodPost, "/v0/ln-address/send-payment", payment)
}

// FetchChargeFromLightningAddress fetches an invoice from a Lightning Address.
func (c *Client) FetchChargeFromLightningAddress(ctx context.Context, charge LnFetchCharge) (*LnFetchChargeData, error) {
	if err := check(charge); err != nil {
		return nil, err
	}
	return call[*LnFetchChargeData](ctx, c, http.MethodPost, "/v0/ln-address/fetch-charge", charge)
}

// ValidateLightningAddress asks the provider whether addr can receive
// payments. Addresses that are not email-shaped fail locally.
func (c *Client) ValidateLightningAddress(ctx context.Context, addr LnAddress) (*LnValidateData, error) {
	if err := check(addr); err != nil {
		return nil, err
	}
	return call[*LnValidateData](ctx, c, http.MethodGet, "/v0/ln-address/validate/"+url.PathEscape(addr.Address), nil)
}

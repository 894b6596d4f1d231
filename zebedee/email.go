package zebedee

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"
)

// EmailPaymentKind tells which shape an email payment resolved to.
type EmailPaymentKind string

const (
	// EmailPaymentExistingAccount means the email belongs to a ZBD account,
	// which was credited directly.
	EmailPaymentExistingAccount EmailPaymentKind = "existing_account"
	// EmailPaymentVoucher means no account matched, so a voucher redeemable
	// in the ZBD app was issued to the email instead.
	EmailPaymentVoucher EmailPaymentKind = "voucher"
)

// Keys that must be present, and non-null, for each variant to match.
// Each list holds at least one key the other lacks.
var (
	emailAccountKeys = []string{"id", "status", "amount", "comment", "receiverId", "senderTxId", "settledAt", "transactionId"}
	voucherKeys      = []string{"amount", "code", "createdAt", "createTransactionId", "description", "id", "unit", "walletId"}
)

var errEmailPaymentShape = errors.New("email payment matches neither the account nor the voucher shape")

// EmailPaymentRequest sends sats to an email address.
type EmailPaymentRequest struct {
	Email   string `json:"email"`
	Amount  string `json:"amount"`
	Comment string `json:"comment"`
}

// EmailAccountPayment is the result when the email belongs to a ZBD user.
type EmailAccountPayment struct {
	ID            string    `json:"id"`
	Status        string    `json:"status"`
	Amount        string    `json:"amount"`
	Comment       string    `json:"comment"`
	ReceiverID    string    `json:"receiverId"`
	SenderTxID    string    `json:"senderTxId"`
	SettledAt     time.Time `json:"settledAt"`
	TransactionID string    `json:"transactionId"`
}

// EmailPaymentResult holds exactly one of Account or Voucher, selected by
// Kind.
type EmailPaymentResult struct {
	Kind    EmailPaymentKind
	Account *EmailAccountPayment
	Voucher *Voucher
}

// UnmarshalJSON picks the variant from the keys present in the object. The
// account shape is tried first.
func (r *EmailPaymentResult) UnmarshalJSON(b []byte) error {
	var keys map[string]json.RawMessage
	if err := json.Unmarshal(b, &keys); err != nil {
		return fmt.Errorf("failed to decode email payment: %w", err)
	}

	if hasKeys(keys, emailAccountKeys) {
		var account EmailAccountPayment
		if err := json.Unmarshal(b, &account); err == nil {
			*r = EmailPaymentResult{Kind: EmailPaymentExistingAccount, Account: &account}
			return nil
		}
	}

	if hasKeys(keys, voucherKeys) {
		var voucher Voucher
		if err := json.Unmarshal(b, &voucher); err == nil {
			*r = EmailPaymentResult{Kind: EmailPaymentVoucher, Voucher: &voucher}
			return nil
		}
	}

	return errEmailPaymentShape
}

// MarshalJSON writes the active variant's own shape.
func (r EmailPaymentResult) MarshalJSON() ([]byte, error) {
	switch r.Kind {
	case EmailPaymentExistingAccount:
		return json.Marshal(r.Account)
	case EmailPaymentVoucher:
		return json.Marshal(r.Voucher)
	default:
		return nil, errEmailPaymentShape
	}
}

func hasKeys(obj map[string]json.RawMessage, keys []string) bool {
	for _, k := range keys {
		if isJSONNull(obj[k]) {
			return false
		}
	}
	return true
}

// PayEmail sends sats to an email address. Depending on whether the email
// is linked to a ZBD account the result carries an account payment or a
// voucher.
func (c *Client) PayEmail(ctx context.Context, payment EmailPaymentRequest) (*EmailPaymentResult, error) {
	data, err := call[EmailPaymentResult](ctx, c, http.MethodPost, "/v0/email/send-payment", payment)
	if err != nil {
		return nil, err
	}
	return &data, nil
}

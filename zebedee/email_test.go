package zebedee

import (
	"context"
	"encoding/json"
	"net/http"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	accountPaymentJSON = `{"id":"e1","status":"completed","amount":"1000","comment":"thanks","receiverId":"r1","senderTxId":"s1","settledAt":"2023-05-01T10:00:00Z","transactionId":"t1"}`
	voucherJSON        = `{"amount":"1000","code":"ABC123","createdAt":"2023-05-01T10:00:00Z","createTransactionId":"ct1","description":"gift","fee":"0","id":"v1","unit":"msats","walletId":"w1"}`
)

func TestEmailPaymentVariants(t *testing.T) {
	tests := []struct {
		name string
		body string
		kind EmailPaymentKind
	}{
		{name: "existing account", body: accountPaymentJSON, kind: EmailPaymentExistingAccount},
		{name: "voucher", body: voucherJSON, kind: EmailPaymentVoucher},
		{
			name: "voucher without fee",
			body: `{"amount":"1000","code":"X","createdAt":"2023-05-01T10:00:00Z","createTransactionId":"ct","description":"","id":"v","unit":"sats","walletId":"w"}`,
			kind: EmailPaymentVoucher,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var res EmailPaymentResult
			require.NoError(t, json.Unmarshal([]byte(tt.body), &res))
			assert.Equal(t, tt.kind, res.Kind)

			switch tt.kind {
			case EmailPaymentExistingAccount:
				require.NotNil(t, res.Account)
				assert.Nil(t, res.Voucher)
				assert.Equal(t, "r1", res.Account.ReceiverID)
				assert.Equal(t, "s1", res.Account.SenderTxID)
			case EmailPaymentVoucher:
				require.NotNil(t, res.Voucher)
				assert.Nil(t, res.Account)
				assert.NotEmpty(t, res.Voucher.Code)
				assert.NotEmpty(t, res.Voucher.WalletID)
			}
		})
	}
}

func TestEmailPaymentNeitherShape(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "empty object", body: `{}`},
		{name: "partial account", body: `{"id":"e1","status":"completed","receiverId":"r1"}`},
		{name: "partial voucher", body: `{"code":"ABC","walletId":"w1"}`},
		{name: "null required key", body: `{"amount":"1000","code":null,"createdAt":"2023-05-01T10:00:00Z","createTransactionId":"ct1","description":"gift","id":"v1","unit":"msats","walletId":"w1"}`},
		{name: "array", body: `[]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var res EmailPaymentResult
			assert.Error(t, json.Unmarshal([]byte(tt.body), &res))
		})
	}
}

// Each variant must have a required key the other lacks, otherwise the
// selection order would decide ambiguous payloads.
func TestEmailPaymentKeysDisjoint(t *testing.T) {
	onlyAccount := slices.DeleteFunc(slices.Clone(emailAccountKeys), func(k string) bool {
		return slices.Contains(voucherKeys, k)
	})
	onlyVoucher := slices.DeleteFunc(slices.Clone(voucherKeys), func(k string) bool {
		return slices.Contains(emailAccountKeys, k)
	})

	assert.NotEmpty(t, onlyAccount)
	assert.NotEmpty(t, onlyVoucher)
	assert.Contains(t, onlyAccount, "receiverId")
	assert.Contains(t, onlyAccount, "senderTxId")
	assert.Contains(t, onlyVoucher, "code")
	assert.Contains(t, onlyVoucher, "walletId")
}

func TestEmailPaymentBothShapesPrefersAccount(t *testing.T) {
	var merged map[string]any
	require.NoError(t, json.Unmarshal([]byte(voucherJSON), &merged))
	var account map[string]any
	require.NoError(t, json.Unmarshal([]byte(accountPaymentJSON), &account))
	for k, v := range account {
		merged[k] = v
	}
	body, err := json.Marshal(merged)
	require.NoError(t, err)

	var res EmailPaymentResult
	require.NoError(t, json.Unmarshal(body, &res))
	assert.Equal(t, EmailPaymentExistingAccount, res.Kind)
}

func TestEmailPaymentFallsBackWhenAccountDecodeFails(t *testing.T) {
	// settledAt is present but not a timestamp, so the account shape fails
	// while the voucher shape still matches.
	var merged map[string]any
	require.NoError(t, json.Unmarshal([]byte(voucherJSON), &merged))
	merged["status"] = "completed"
	merged["comment"] = ""
	merged["receiverId"] = "r"
	merged["senderTxId"] = "s"
	merged["settledAt"] = "yesterday"
	merged["transactionId"] = "t"
	body, err := json.Marshal(merged)
	require.NoError(t, err)

	var res EmailPaymentResult
	require.NoError(t, json.Unmarshal(body, &res))
	assert.Equal(t, EmailPaymentVoucher, res.Kind)
}

func TestEmailPaymentMarshalRoundTrip(t *testing.T) {
	var res EmailPaymentResult
	require.NoError(t, json.Unmarshal([]byte(voucherJSON), &res))

	out, err := json.Marshal(res)
	require.NoError(t, err)
	assert.JSONEq(t, voucherJSON, string(out))

	_, err = json.Marshal(EmailPaymentResult{})
	assert.Error(t, err)
}

func TestPayEmail(t *testing.T) {
	t.Run("voucher issued", func(t *testing.T) {
		client, _, _ := newTestClient(t, http.StatusOK, `{"success":true,"data":`+voucherJSON+`,"message":"Payment sent as voucher."}`)

		res, err := client.PayEmail(context.Background(), EmailPaymentRequest{Email: "new@user.com", Amount: "1000"})
		require.NoError(t, err)
		assert.Equal(t, EmailPaymentVoucher, res.Kind)
		assert.Equal(t, "ABC123", res.Voucher.Code)
	})

	t.Run("unknown shape is malformed", func(t *testing.T) {
		client, _, _ := newTestClient(t, http.StatusOK, `{"success":true,"data":{"id":"x"}}`)

		_, err := client.PayEmail(context.Background(), EmailPaymentRequest{Email: "a@b.com", Amount: "1000"})
		assert.ErrorIs(t, err, ErrMalformedResponse)
	})
}

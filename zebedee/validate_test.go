package zebedee

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fields(violations []Violation) []string {
	out := make([]string, 0, len(violations))
	for _, v := range violations {
		out = append(out, v.Field)
	}
	return out
}

func TestGamertagPaymentValidate(t *testing.T) {
	tests := []struct {
		name    string
		payment GamertagPayment
		want    []string
	}{
		{name: "valid", payment: GamertagPayment{Gamertag: "santos", Amount: "1000"}, want: []string{}},
		{name: "empty gamertag", payment: GamertagPayment{Amount: "1000"}, want: []string{"gamertag"}},
		{name: "short amount", payment: GamertagPayment{Gamertag: "santos", Amount: "999"}, want: []string{"amount"}},
		{name: "both", payment: GamertagPayment{}, want: []string{"gamertag", "amount"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, fields(tt.payment.Validate()))
		})
	}
}

func TestLightningAddressValidate(t *testing.T) {
	tests := []struct {
		address string
		valid   bool
	}{
		{"andre@zbd.gg", true},
		{"first.last+tag@example.co.uk", true},
		{"", false},
		{"not-an-address", false},
		{"@zbd.gg", false},
		{"andre@", false},
		{"Andre <andre@zbd.gg>", false},
		{"<andre@zbd.gg>", false},
		{" andre@zbd.gg", false},
	}

	for _, tt := range tests {
		t.Run(tt.address, func(t *testing.T) {
			violations := LnAddress{Address: tt.address}.Validate()
			if tt.valid {
				assert.Empty(t, violations)
				return
			}
			require.Len(t, violations, 1)
			assert.Equal(t, RuleEmail, violations[0].Rule)
		})
	}

	assert.Equal(t, "lnAddress", LnPayment{LnAddress: "bad"}.Validate()[0].Field)
	assert.Equal(t, "lnaddress", LnFetchCharge{LnAddress: "bad"}.Validate()[0].Field)
}

func TestValidationShortCircuits(t *testing.T) {
	client, _, hits := newTestClient(t, http.StatusOK, `{"success":true,"data":null}`)
	ctx := context.Background()

	tests := []struct {
		name string
		call func() error
	}{
		{
			name: "pay gamertag empty gamertag",
			call: func() error {
				_, err := client.PayGamertag(ctx, GamertagPayment{Amount: "1000"})
				return err
			},
		},
		{
			name: "pay gamertag short amount",
			call: func() error {
				_, err := client.PayGamertag(ctx, GamertagPayment{Gamertag: "santos", Amount: "10"})
				return err
			},
		},
		{
			name: "gamertag charge",
			call: func() error {
				_, err := client.FetchChargeFromGamertag(ctx, GamertagPayment{})
				return err
			},
		},
		{
			name: "validate address",
			call: func() error {
				_, err := client.ValidateLightningAddress(ctx, LnAddress{Address: "nope"})
				return err
			},
		},
		{
			name: "pay address",
			call: func() error {
				_, err := client.PayLightningAddress(ctx, LnPayment{LnAddress: "nope", Amount: "1000"})
				return err
			},
		},
		{
			name: "fetch address charge",
			call: func() error {
				_, err := client.FetchChargeFromLightningAddress(ctx, LnFetchCharge{LnAddress: "nope"})
				return err
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.call()
			require.ErrorIs(t, err, ErrValidation)

			zerr, ok := AsError(err)
			require.True(t, ok)
			assert.NotEmpty(t, zerr.Violations)
			assert.Zero(t, zerr.StatusCode)
		})
	}

	assert.Zero(t, hits.Load(), "validation failures must not reach the network")
}

func TestViolationString(t *testing.T) {
	v := minLength("amount", "1", 4)
	require.Len(t, v, 1)
	assert.Equal(t, "amount: must be at least 4 characters", v[0].String())

	assert.Empty(t, exactLength("state", "abc", 3))
	assert.Len(t, exactLength("state", "abcd", 3), 1)
	assert.Empty(t, absoluteURL("redirect_uri", "http://localhost:8080/callback"))
	assert.Len(t, absoluteURL("redirect_uri", "/callback"), 1)
	assert.Len(t, absoluteURL("redirect_uri", "::"), 1)
}

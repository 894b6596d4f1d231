package zebedee

import (
	"bytes"
	"errors"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newResponse(status int, body string) *http.Response {
	return &http.Response{
		StatusCode: status,
		Body:       io.NopCloser(strings.NewReader(body)),
		Header:     make(http.Header),
	}
}

func TestParseEnvelopeSuccess(t *testing.T) {
	body := `{"success":true,"data":{"id":"abc","unit":"sats","amount":"1000","status":"pending","invoice":{"request":"lnbc1","uri":"lightning:lnbc1"}},"message":null}`

	charge, err := parseEnvelope[*Charge](newResponse(http.StatusOK, body), zerolog.Nop())
	require.NoError(t, err)
	require.NotNil(t, charge)

	assert.Equal(t, "abc", charge.ID)
	assert.Equal(t, UnitSats, charge.Unit)
	assert.Equal(t, "1000", charge.Amount)
	assert.Equal(t, "lnbc1", charge.Invoice.Request)
	assert.Nil(t, charge.ConfirmedAt)
}

func TestParseEnvelopeOptionalData(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "absent data", body: `{"success":true}`},
		{name: "null data", body: `{"success":true,"data":null,"message":"nothing here"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			charge, err := parseEnvelope[*Charge](newResponse(http.StatusOK, tt.body), zerolog.Nop())
			require.NoError(t, err)
			assert.Nil(t, charge)

			charges, err := parseEnvelope[[]Charge](newResponse(http.StatusOK, tt.body), zerolog.Nop())
			require.NoError(t, err)
			assert.Nil(t, charges)
		})
	}
}

func TestParseEnvelopeRequiredData(t *testing.T) {
	_, err := parseEnvelope[GamertagPaymentData](newResponse(http.StatusOK, `{"success":true,"data":null}`), zerolog.Nop())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMalformedResponse)
	assert.ErrorIs(t, err, errMissingField)
}

func TestParseEnvelopeSuccessFalse(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		parse   func(*http.Response) error
		message string
	}{
		{
			name: "optional data",
			body: `{"success":false,"data":null,"message":"Charge not found"}`,
			parse: func(r *http.Response) error {
				_, err := parseEnvelope[*Charge](r, zerolog.Nop())
				return err
			},
			message: "Charge not found",
		},
		{
			name: "optional list",
			body: `{"success":false,"message":"Charge not found"}`,
			parse: func(r *http.Response) error {
				_, err := parseEnvelope[[]Charge](r, zerolog.Nop())
				return err
			},
			message: "Charge not found",
		},
		{
			name: "required data present",
			body: `{"success":false,"data":{"id":"e1","status":"failed"},"message":"Payment failed"}`,
			parse: func(r *http.Response) error {
				_, err := parseEnvelope[EmailPaymentResult](r, zerolog.Nop())
				return err
			},
			message: "Payment failed",
		},
		{
			name: "no message",
			body: `{"success":false,"data":null}`,
			parse: func(r *http.Response) error {
				_, err := parseEnvelope[*WalletData](r, zerolog.Nop())
				return err
			},
			message: noMessageReturned,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.parse(newResponse(http.StatusOK, tt.body))
			require.ErrorIs(t, err, ErrAPI)

			zerr, ok := AsError(err)
			require.True(t, ok)
			assert.Equal(t, KindAPI, zerr.Kind)
			assert.Equal(t, http.StatusOK, zerr.StatusCode)
			assert.Equal(t, tt.message, zerr.Message)
			assert.Equal(t, tt.body, zerr.Body)
		})
	}
}

func TestParseEnvelopeLogsMessage(t *testing.T) {
	var buf bytes.Buffer
	log := zerolog.New(&buf).Level(zerolog.DebugLevel)

	_, err := parseEnvelope[*Charge](newResponse(http.StatusOK, `{"success":true,"data":null,"message":"No charges yet"}`), log)
	require.NoError(t, err)
	assert.Contains(t, buf.String(), `"message":"No charges yet"`)

	buf.Reset()
	_, err = parseEnvelope[*Charge](newResponse(http.StatusOK, `{"success":true,"data":null}`), log)
	require.NoError(t, err)
	assert.Empty(t, buf.String())
}

func TestParseEnvelopeAPIError(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		message string
	}{
		{
			name:    "provider message",
			status:  http.StatusPaymentRequired,
			body:    `{"success":false,"message":"Insufficient balance"}`,
			message: "Insufficient balance",
		},
		{
			name:    "absent message",
			status:  http.StatusInternalServerError,
			body:    `{"success":false}`,
			message: noMessageReturned,
		},
		{
			name:    "null message",
			status:  http.StatusBadRequest,
			body:    `{"success":false,"message":null}`,
			message: noMessageReturned,
		},
		{
			name:    "empty object",
			status:  http.StatusNotFound,
			body:    `{}`,
			message: noMessageReturned,
		},
		{
			name:    "empty message kept verbatim",
			status:  http.StatusBadRequest,
			body:    `{"success":false,"message":""}`,
			message: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parseEnvelope[*Charge](newResponse(tt.status, tt.body), zerolog.Nop())
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrAPI)

			zerr, ok := AsError(err)
			require.True(t, ok)
			assert.Equal(t, KindAPI, zerr.Kind)
			assert.Equal(t, tt.status, zerr.StatusCode)
			assert.Equal(t, tt.message, zerr.Message)
			assert.Equal(t, tt.body, zerr.Body)
		})
	}
}

func TestParseEnvelopeMalformed(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
	}{
		{name: "success not json", status: http.StatusOK, body: "not json"},
		{name: "error not json", status: http.StatusBadGateway, body: "<html>bad gateway</html>"},
		{name: "empty body", status: http.StatusOK, body: ""},
		{name: "truncated", status: http.StatusOK, body: `{"success":true,"data":{"id":"abc"`},
		{name: "missing success", status: http.StatusOK, body: `{"data":{"id":"abc"}}`},
		{name: "success wrong type", status: http.StatusOK, body: `{"success":"yes","data":{"id":"abc"}}`},
		{name: "data wrong shape", status: http.StatusOK, body: `{"success":true,"data":{"id":42}}`},
		{name: "top level array", status: http.StatusOK, body: `[{"id":"abc"}]`},
		{name: "null body", status: http.StatusOK, body: `null`},
		{name: "message wrong type", status: http.StatusOK, body: `{"success":true,"data":null,"message":7}`},
		{name: "error body array", status: http.StatusBadRequest, body: `["bad"]`},
		{name: "error body string", status: http.StatusBadRequest, body: `"bad"`},
		{name: "error body null", status: http.StatusBadRequest, body: `null`},
		{name: "error message wrong type", status: http.StatusBadRequest, body: `{"success":false,"message":{"text":"x"}}`},
		{name: "error success wrong type", status: http.StatusBadRequest, body: `{"success":"no"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parseEnvelope[*Charge](newResponse(tt.status, tt.body), zerolog.Nop())
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrMalformedResponse)
			assert.NotErrorIs(t, err, ErrAPI)

			zerr, ok := AsError(err)
			require.True(t, ok)
			assert.Equal(t, tt.status, zerr.StatusCode)
			assert.Equal(t, tt.body, zerr.Body)
			assert.NotNil(t, zerr.Err)
		})
	}
}

func TestParseEnvelopeInvalidJSONCause(t *testing.T) {
	_, err := parseEnvelope[*Charge](newResponse(http.StatusOK, "not json"), zerolog.Nop())
	assert.True(t, errors.Is(err, errInvalidJSON))
}

func TestParseRaw(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		body := `{"access_token":"at","token_type":"Bearer","expires_in":300,"refresh_token":"rt","scope":"user"}`
		tok, err := parseRaw[Token](newResponse(http.StatusOK, body), "access_token")
		require.NoError(t, err)
		assert.Equal(t, "at", tok.AccessToken)
		assert.Equal(t, int64(300), tok.ExpiresIn)
		assert.Zero(t, tok.RefreshTokenExpiresIn)
	})

	t.Run("missing required key", func(t *testing.T) {
		_, err := parseRaw[Token](newResponse(http.StatusOK, `{"token_type":"Bearer"}`), "access_token")
		assert.ErrorIs(t, err, ErrMalformedResponse)
	})

	t.Run("api error", func(t *testing.T) {
		_, err := parseRaw[Token](newResponse(http.StatusUnauthorized, `{"success":false,"message":"invalid_grant"}`), "access_token")
		require.ErrorIs(t, err, ErrAPI)
		zerr, _ := AsError(err)
		assert.Equal(t, "invalid_grant", zerr.Message)
		assert.True(t, zerr.IsUnauthorized())
	})
}

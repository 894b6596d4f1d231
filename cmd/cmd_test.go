package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const chargesJSON = `{"success":true,"data":[
	{"id":"c1","unit":"msats","amount":"1000","status":"pending","description":"coffee","createdAt":"2024-01-01T00:00:00Z","expiresAt":"2024-01-01T00:05:00Z","internalId":"","callbackUrl":"","invoice":{"request":"lnbc1","uri":"lightning:lnbc1"}},
	{"id":"c2","unit":"msats","amount":"250000","status":"completed","description":"game pass","createdAt":"2024-01-01T00:00:00Z","expiresAt":"2024-01-01T00:05:00Z","internalId":"","callbackUrl":"","invoice":{"request":"lnbc2","uri":"lightning:lnbc2"}}
]}`

// newAPI serves canned ZEBEDEE responses by path and points the CLI at it
// through the environment.
func newAPI(t *testing.T, routes map[string]string) (*atomic.Int32, *atomic.Value) {
	t.Helper()

	var hits atomic.Int32
	var lastAPIKey atomic.Value
	lastAPIKey.Store("")

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		lastAPIKey.Store(r.Header.Get("apikey"))
		body, ok := routes[r.URL.Path]
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"success":false,"message":"not found"}`))
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)

	t.Chdir(t.TempDir())
	t.Setenv("HOME", t.TempDir())
	t.Setenv("ZBD_ZEBEDEE_BASE_URL", srv.URL)
	t.Setenv("ZBD_ZEBEDEE_API_KEY", "test-key")
	t.Setenv("ZBD_LOGGING_LEVEL", "error")

	return &hits, &lastAPIKey
}

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()

	filterExpr = ""
	priceSats = ""
	keysendAmount, keysendSats = "", ""

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs(args)
	t.Cleanup(func() { rootCmd.SetOut(nil) })

	err := rootCmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestChargeListFilter(t *testing.T) {
	newAPI(t, map[string]string{"/v0/charges": chargesJSON})

	out, err := runCLI(t, "charge", "list", "--filter", `status == "completed"`)
	require.NoError(t, err)

	var charges []map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &charges))
	require.Len(t, charges, 1)
	assert.Equal(t, "c2", charges[0]["id"])
}

func TestChargeListBadFilter(t *testing.T) {
	newAPI(t, map[string]string{"/v0/charges": chargesJSON})

	_, err := runCLI(t, "charge", "list", "--filter", `status ==`)
	assert.ErrorContains(t, err, "invalid filter expression")
}

func TestChargeGetMany(t *testing.T) {
	hits, lastKey := newAPI(t, map[string]string{
		"/v0/charges/c1": `{"success":true,"data":{"id":"c1","status":"pending"}}`,
		"/v0/charges/c2": `{"success":true,"data":{"id":"c2","status":"completed"}}`,
	})

	out, err := runCLI(t, "charge", "get", "c1", "c2")
	require.NoError(t, err)

	var charges []map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &charges))
	require.Len(t, charges, 2)
	assert.Equal(t, "c1", charges[0]["id"])
	assert.Equal(t, "c2", charges[1]["id"])
	assert.Equal(t, int32(2), hits.Load())
	assert.Equal(t, "test-key", lastKey.Load())
}

func TestChargeGetAPIError(t *testing.T) {
	newAPI(t, map[string]string{})

	_, err := runCLI(t, "charge", "get", "missing")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "zbdctl charge get failed")
	assert.Contains(t, err.Error(), "not found")
}

func TestPriceWithSats(t *testing.T) {
	_, lastKey := newAPI(t, map[string]string{
		"/v0/btcusd": `{"success":true,"data":{"btcUsdPrice":"50000","btcUsdTimestamp":"1700000000"}}`,
	})

	out, err := runCLI(t, "utils", "price", "--sats", "21000")
	require.NoError(t, err)

	var price priceOutput
	require.NoError(t, json.Unmarshal([]byte(out), &price))
	assert.Equal(t, "50000", price.BTCUSDPrice)
	assert.Equal(t, "10.50", price.USD)
	assert.Empty(t, lastKey.Load(), "the price endpoint is public")
}

func TestKeysendRejectsBadPubkey(t *testing.T) {
	hits, _ := newAPI(t, map[string]string{})

	_, err := runCLI(t, "keysend", "02abcd", "--amount", "1000")
	assert.ErrorContains(t, err, "secp256k1")
	assert.Zero(t, hits.Load())
}

func TestKeysendSends(t *testing.T) {
	hits, _ := newAPI(t, map[string]string{
		"/v0/keysend-payment": `{"success":true,"data":{"keysendId":"k1","paymentId":"p1","transaction":{"id":"t1","walletId":"w1","totalAmount":"1000","fee":"0","amount":"1000","status":"completed"}}}`,
	})

	out, err := runCLI(t, "keysend", generatorPubkey, "--sats", "1")
	require.NoError(t, err)
	assert.Contains(t, out, `"keysendId": "k1"`)
	assert.Equal(t, int32(1), hits.Load())
}

func TestVersionNeedsNoConfig(t *testing.T) {
	t.Setenv("ZBD_LOGGING_LEVEL", "nonsense")

	out, err := runCLI(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, `"version"`)
}

func TestOAuthRequiresConfig(t *testing.T) {
	newAPI(t, map[string]string{})

	_, err := runCLI(t, "oauth", "url")
	assert.ErrorContains(t, err, "oauth.client_id")
}

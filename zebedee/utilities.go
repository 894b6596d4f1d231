package zebedee

import (
	"context"
	"net/http"
)

type RegionData struct {
	IPAddress   string `json:"ipAddress"`
	IsSupported bool   `json:"isSupported"`
	IPCountry   string `json:"ipCountry"`
	IPRegion    string `json:"ipRegion"`
}

type ProdIPsData struct {
	IPs []string `json:"ips"`
}

// BTCUSDData is the spot price. Both fields are strings on the wire.
type BTCUSDData struct {
	BTCUSDPrice     string `json:"btcUsdPrice"`
	BTCUSDTimestamp string `json:"btcUsdTimestamp"`
}

// IsSupportedRegion checks whether an IP address is in a supported region.
func (c *Client) IsSupportedRegion(ctx context.Context, ip string) (*RegionData, error) {
	ip, err := pathParam("ip", ip)
	if err != nil {
		return nil, err
	}
	return call[*RegionData](ctx, c, http.MethodGet, "/v0/is-supported-region/"+ip, nil)
}

// GetProdIPs lists the egress IPs production callbacks originate from.
func (c *Client) GetProdIPs(ctx context.Context) (*ProdIPsData, error) {
	return call[*ProdIPsData](ctx, c, http.MethodGet, "/v0/prod-ips", nil)
}

// GetBTCUSDPrice fetches the BTC/USD price. The endpoint is public so no
// API key is sent.
func (c *Client) GetBTCUSDPrice(ctx context.Context) (*BTCUSDData, error) {
	return call[*BTCUSDData](ctx, c, http.MethodGet, "/v0/btcusd", nil, withoutAPIKey())
}

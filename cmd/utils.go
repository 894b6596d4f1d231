package cmd

import (
	"context"

	"github.com/spf13/cobra"
)

var priceSats string

// utilsCmd groups the utility endpoints
var utilsCmd = &cobra.Command{
	Use:   "utils",
	Short: "Region checks, production IPs and the BTC/USD price",
}

var utilsRegionCmd = &cobra.Command{
	Use:   "region <ip>",
	Short: "Check whether an IP address is in a supported region",
	Args:  cobra.ExactArgs(1),
	RunE: apiRun(func(ctx context.Context, cmd *cobra.Command, args []string) (any, error) {
		return client.IsSupportedRegion(ctx, args[0])
	}),
}

var utilsIPsCmd = &cobra.Command{
	Use:   "ips",
	Short: "List the IPs production callbacks originate from",
	Args:  cobra.NoArgs,
	RunE: apiRun(func(ctx context.Context, cmd *cobra.Command, args []string) (any, error) {
		return client.GetProdIPs(ctx)
	}),
}

// priceOutput adds the converted value when --sats is given
type priceOutput struct {
	BTCUSDPrice     string `json:"btcUsdPrice"`
	BTCUSDTimestamp string `json:"btcUsdTimestamp"`
	Sats            string `json:"sats,omitempty"`
	USD             string `json:"usd,omitempty"`
}

var utilsPriceCmd = &cobra.Command{
	Use:   "price",
	Short: "Show the current BTC/USD price",
	Args:  cobra.NoArgs,
	RunE: apiRun(func(ctx context.Context, cmd *cobra.Command, args []string) (any, error) {
		price, err := client.GetBTCUSDPrice(ctx)
		if err != nil || price == nil {
			return price, err
		}

		out := priceOutput{
			BTCUSDPrice:     price.BTCUSDPrice,
			BTCUSDTimestamp: price.BTCUSDTimestamp,
		}
		if priceSats != "" {
			usd, err := satsToUSD(priceSats, price.BTCUSDPrice)
			if err != nil {
				return nil, err
			}
			out.Sats = priceSats
			out.USD = usd.StringFixed(2)
		}
		return out, nil
	}),
}

func init() {
	rootCmd.AddCommand(utilsCmd)
	utilsCmd.AddCommand(utilsRegionCmd, utilsIPsCmd, utilsPriceCmd)

	utilsPriceCmd.Flags().StringVar(&priceSats, "sats", "", "also value this many sats in USD")
}

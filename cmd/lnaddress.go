package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/s0up4200/zbdctl/zebedee"
)

var (
	lnAmount  string
	lnSats    string
	lnComment string
)

// lnAddressCmd groups the Lightning Address subcommands
var lnAddressCmd = &cobra.Command{
	Use:     "lnaddress",
	Aliases: []string{"ln"},
	Short:   "Pay and validate Lightning Addresses",
}

var lnPayCmd = &cobra.Command{
	Use:   "pay <address>",
	Short: "Send a payment to a Lightning Address",
	Args:  cobra.ExactArgs(1),
	RunE: apiRun(func(ctx context.Context, cmd *cobra.Command, args []string) (any, error) {
		amount, err := resolveAmount(lnAmount, lnSats)
		if err != nil {
			return nil, err
		}
		return client.PayLightningAddress(ctx, zebedee.LnPayment{
			LnAddress: args[0],
			Amount:    amount,
			Comment:   lnComment,
		})
	}),
}

var lnChargeCmd = &cobra.Command{
	Use:   "charge <address>",
	Short: "Fetch an invoice from a Lightning Address without paying it",
	Args:  cobra.ExactArgs(1),
	RunE: apiRun(func(ctx context.Context, cmd *cobra.Command, args []string) (any, error) {
		amount, err := resolveAmount(lnAmount, lnSats)
		if err != nil {
			return nil, err
		}
		return client.FetchChargeFromLightningAddress(ctx, zebedee.LnFetchCharge{
			LnAddress:   args[0],
			Amount:      amount,
			Description: lnComment,
		})
	}),
}

var lnValidateCmd = &cobra.Command{
	Use:   "validate <address>",
	Short: "Check that a Lightning Address resolves",
	Args:  cobra.ExactArgs(1),
	RunE: apiRun(func(ctx context.Context, cmd *cobra.Command, args []string) (any, error) {
		return client.ValidateLightningAddress(ctx, zebedee.LnAddress{Address: args[0]})
	}),
}

func init() {
	rootCmd.AddCommand(lnAddressCmd)
	lnAddressCmd.AddCommand(lnPayCmd, lnChargeCmd, lnValidateCmd)

	for _, c := range []*cobra.Command{lnPayCmd, lnChargeCmd} {
		c.Flags().StringVar(&lnAmount, "amount", "", "amount in msats")
		c.Flags().StringVar(&lnSats, "sats", "", "amount in sats")
		c.Flags().StringVar(&lnComment, "comment", "", "comment or description sent with the payment")
	}
}

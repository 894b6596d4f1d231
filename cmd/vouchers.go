package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/s0up4200/zbdctl/zebedee"
)

var (
	voucherAmount      string
	voucherSats        string
	voucherDescription string
)

// voucherCmd groups the voucher subcommands
var voucherCmd = &cobra.Command{
	Use:   "voucher",
	Short: "Create, inspect, redeem and revoke vouchers",
}

var voucherCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a voucher funded by the project wallet",
	Args:  cobra.NoArgs,
	RunE: apiRun(func(ctx context.Context, cmd *cobra.Command, args []string) (any, error) {
		amount, err := resolveAmount(voucherAmount, voucherSats)
		if err != nil {
			return nil, err
		}
		return client.CreateVoucher(ctx, zebedee.CreateVoucherRequest{
			Amount:      amount,
			Description: voucherDescription,
		})
	}),
}

var voucherGetCmd = &cobra.Command{
	Use:   "get <id>...",
	Short: "Get one or more vouchers by id",
	Args:  cobra.MinimumNArgs(1),
	RunE: apiRun(func(ctx context.Context, cmd *cobra.Command, args []string) (any, error) {
		return getMany(ctx, cfg.Concurrency, args, client.GetVoucher)
	}),
}

var voucherRedeemCmd = &cobra.Command{
	Use:   "redeem <code>",
	Short: "Redeem a voucher into the project wallet",
	Args:  cobra.ExactArgs(1),
	RunE: apiRun(func(ctx context.Context, cmd *cobra.Command, args []string) (any, error) {
		return client.RedeemVoucher(ctx, args[0])
	}),
}

var voucherRevokeCmd = &cobra.Command{
	Use:   "revoke <code>",
	Short: "Revoke an unredeemed voucher",
	Args:  cobra.ExactArgs(1),
	RunE: apiRun(func(ctx context.Context, cmd *cobra.Command, args []string) (any, error) {
		return client.RevokeVoucher(ctx, args[0])
	}),
}

func init() {
	rootCmd.AddCommand(voucherCmd)
	voucherCmd.AddCommand(voucherCreateCmd, voucherGetCmd, voucherRedeemCmd, voucherRevokeCmd)

	voucherCreateCmd.Flags().StringVar(&voucherAmount, "amount", "", "amount in msats")
	voucherCreateCmd.Flags().StringVar(&voucherSats, "sats", "", "amount in sats")
	voucherCreateCmd.Flags().StringVar(&voucherDescription, "description", "", "voucher description")
}

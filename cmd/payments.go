package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/s0up4200/zbdctl/zebedee"
)

var (
	payDescription string
	payInternalID  string
)

// paymentCmd groups the payment subcommands
var paymentCmd = &cobra.Command{
	Use:   "payment",
	Short: "Pay BOLT11 invoices and inspect outgoing payments",
}

var paymentPayCmd = &cobra.Command{
	Use:   "pay <invoice>",
	Short: "Pay a Lightning invoice from the project wallet",
	Args:  cobra.ExactArgs(1),
	RunE: apiRun(func(ctx context.Context, cmd *cobra.Command, args []string) (any, error) {
		return client.PayInvoice(ctx, zebedee.PaymentRequest{
			Description: payDescription,
			InternalID:  internalID(payInternalID),
			Invoice:     args[0],
		})
	}),
}

var paymentListCmd = &cobra.Command{
	Use:   "list",
	Short: "List payments",
	Args:  cobra.NoArgs,
	RunE: apiRun(func(ctx context.Context, cmd *cobra.Command, args []string) (any, error) {
		payments, err := client.ListPayments(ctx)
		if err != nil {
			return nil, err
		}
		return applyFilter(payments)
	}),
}

var paymentGetCmd = &cobra.Command{
	Use:   "get <id>...",
	Short: "Get one or more payments by id",
	Args:  cobra.MinimumNArgs(1),
	RunE: apiRun(func(ctx context.Context, cmd *cobra.Command, args []string) (any, error) {
		return getMany(ctx, cfg.Concurrency, args, client.GetPayment)
	}),
}

func init() {
	rootCmd.AddCommand(paymentCmd)
	paymentCmd.AddCommand(paymentPayCmd, paymentListCmd, paymentGetCmd)

	paymentPayCmd.Flags().StringVar(&payDescription, "description", "", "payment description")
	paymentPayCmd.Flags().StringVar(&payInternalID, "internal-id", "", "your correlation id (default: random UUID)")

	addFilterFlag(paymentListCmd)
}

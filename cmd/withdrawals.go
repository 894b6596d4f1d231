package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/s0up4200/zbdctl/zebedee"
)

var (
	withdrawalAmount      string
	withdrawalSats        string
	withdrawalDescription string
	withdrawalInternalID  string
	withdrawalCallbackURL string
	withdrawalExpiresIn   int
)

// withdrawalCmd groups the LNURL-withdraw subcommands
var withdrawalCmd = &cobra.Command{
	Use:   "withdrawal",
	Short: "Create and inspect LNURL withdrawal requests",
}

var withdrawalCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a withdrawal request",
	Args:  cobra.NoArgs,
	RunE: apiRun(func(ctx context.Context, cmd *cobra.Command, args []string) (any, error) {
		amount, err := resolveAmount(withdrawalAmount, withdrawalSats)
		if err != nil {
			return nil, err
		}
		return client.CreateWithdrawalRequest(ctx, zebedee.WithdrawalRequestInput{
			ExpiresIn:   withdrawalExpiresIn,
			Amount:      amount,
			Description: withdrawalDescription,
			InternalID:  internalID(withdrawalInternalID),
			CallbackURL: withdrawalCallbackURL,
		})
	}),
}

var withdrawalListCmd = &cobra.Command{
	Use:   "list",
	Short: "List withdrawal requests",
	Args:  cobra.NoArgs,
	RunE: apiRun(func(ctx context.Context, cmd *cobra.Command, args []string) (any, error) {
		requests, err := client.ListWithdrawalRequests(ctx)
		if err != nil {
			return nil, err
		}
		return applyFilter(requests)
	}),
}

var withdrawalGetCmd = &cobra.Command{
	Use:   "get <id>...",
	Short: "Get one or more withdrawal requests by id",
	Args:  cobra.MinimumNArgs(1),
	RunE: apiRun(func(ctx context.Context, cmd *cobra.Command, args []string) (any, error) {
		return getMany(ctx, cfg.Concurrency, args, client.GetWithdrawalRequest)
	}),
}

func init() {
	rootCmd.AddCommand(withdrawalCmd)
	withdrawalCmd.AddCommand(withdrawalCreateCmd, withdrawalListCmd, withdrawalGetCmd)

	withdrawalCreateCmd.Flags().StringVar(&withdrawalAmount, "amount", "", "amount in msats")
	withdrawalCreateCmd.Flags().StringVar(&withdrawalSats, "sats", "", "amount in sats")
	withdrawalCreateCmd.Flags().StringVar(&withdrawalDescription, "description", "", "withdrawal description")
	withdrawalCreateCmd.Flags().StringVar(&withdrawalInternalID, "internal-id", "", "your correlation id (default: random UUID)")
	withdrawalCreateCmd.Flags().StringVar(&withdrawalCallbackURL, "callback-url", "", "URL notified on status changes")
	withdrawalCreateCmd.Flags().IntVar(&withdrawalExpiresIn, "expires-in", 0, "expiry in seconds (default 300)")

	addFilterFlag(withdrawalListCmd)
}

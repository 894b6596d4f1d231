package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/s0up4200/zbdctl/zebedee"
)

var (
	transferAmount   string
	transferSats     string
	transferReceiver string
)

// walletCmd represents the wallet command
var walletCmd = &cobra.Command{
	Use:   "wallet",
	Short: "Show the project wallet balance",
	Args:  cobra.NoArgs,
	RunE: apiRun(func(ctx context.Context, cmd *cobra.Command, args []string) (any, error) {
		return client.GetWallet(ctx)
	}),
}

// transferCmd represents the transfer command
var transferCmd = &cobra.Command{
	Use:   "transfer",
	Short: "Move funds to another project wallet",
	Long:  `Perform an internal transfer between two project wallets owned by the same account.`,
	Args:  cobra.NoArgs,
	RunE: apiRun(func(ctx context.Context, cmd *cobra.Command, args []string) (any, error) {
		amount, err := resolveAmount(transferAmount, transferSats)
		if err != nil {
			return nil, err
		}
		logger.Info().Str("receiver", transferReceiver).Str("amount", amount).Msg("Sending internal transfer")
		return client.InternalTransfer(ctx, zebedee.InternalTransferRequest{
			Amount:           amount,
			ReceiverWalletID: transferReceiver,
		})
	}),
}

func init() {
	rootCmd.AddCommand(walletCmd)
	rootCmd.AddCommand(transferCmd)

	transferCmd.Flags().StringVar(&transferAmount, "amount", "", "amount in msats")
	transferCmd.Flags().StringVar(&transferSats, "sats", "", "amount in sats")
	transferCmd.Flags().StringVar(&transferReceiver, "to", "", "receiving wallet id")
	_ = transferCmd.MarkFlagRequired("to")
}

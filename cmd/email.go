package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/s0up4200/zbdctl/zebedee"
)

var (
	emailAmount  string
	emailSats    string
	emailComment string
)

// emailCmd groups the email payment subcommands
var emailCmd = &cobra.Command{
	Use:   "email",
	Short: "Send sats to an email address",
}

var emailPayCmd = &cobra.Command{
	Use:   "pay <email>",
	Short: "Pay an email address",
	Long: `Pay an email address. If the address belongs to a ZBD account the funds land
there; otherwise the provider issues a voucher and the output has kind "voucher".`,
	Args: cobra.ExactArgs(1),
	RunE: apiRun(func(ctx context.Context, cmd *cobra.Command, args []string) (any, error) {
		amount, err := resolveAmount(emailAmount, emailSats)
		if err != nil {
			return nil, err
		}
		res, err := client.PayEmail(ctx, zebedee.EmailPaymentRequest{
			Email:   args[0],
			Amount:  amount,
			Comment: emailComment,
		})
		if err != nil {
			return nil, err
		}
		logger.Info().Str("kind", string(res.Kind)).Msg("Email payment sent")
		return emailOutput{Kind: res.Kind, Result: res}, nil
	}),
}

// emailOutput tags the printed payload with the variant that was decoded
type emailOutput struct {
	Kind   zebedee.EmailPaymentKind    `json:"kind"`
	Result *zebedee.EmailPaymentResult `json:"result"`
}

func init() {
	rootCmd.AddCommand(emailCmd)
	emailCmd.AddCommand(emailPayCmd)

	emailPayCmd.Flags().StringVar(&emailAmount, "amount", "", "amount in msats")
	emailPayCmd.Flags().StringVar(&emailSats, "sats", "", "amount in sats")
	emailPayCmd.Flags().StringVar(&emailComment, "comment", "", "comment sent with the payment")
}

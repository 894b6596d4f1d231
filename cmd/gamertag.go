package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/s0up4200/zbdctl/zebedee"
)

var (
	gamertagAmount      string
	gamertagSats        string
	gamertagDescription string
)

// gamertagCmd groups the ZBD gamertag subcommands
var gamertagCmd = &cobra.Command{
	Use:   "gamertag",
	Short: "Pay and look up ZBD gamertags",
}

var gamertagPayCmd = &cobra.Command{
	Use:   "pay <gamertag>",
	Short: "Send a payment to a ZBD gamertag",
	Args:  cobra.ExactArgs(1),
	RunE: apiRun(func(ctx context.Context, cmd *cobra.Command, args []string) (any, error) {
		payment, err := gamertagPayment(args[0])
		if err != nil {
			return nil, err
		}
		return client.PayGamertag(ctx, payment)
	}),
}

var gamertagChargeCmd = &cobra.Command{
	Use:   "charge <gamertag>",
	Short: "Fetch an invoice that pays a ZBD gamertag",
	Args:  cobra.ExactArgs(1),
	RunE: apiRun(func(ctx context.Context, cmd *cobra.Command, args []string) (any, error) {
		payment, err := gamertagPayment(args[0])
		if err != nil {
			return nil, err
		}
		return client.FetchChargeFromGamertag(ctx, payment)
	}),
}

var gamertagTxCmd = &cobra.Command{
	Use:   "tx <transaction-id>...",
	Short: "Get gamertag transactions by id",
	Args:  cobra.MinimumNArgs(1),
	RunE: apiRun(func(ctx context.Context, cmd *cobra.Command, args []string) (any, error) {
		return getMany(ctx, cfg.Concurrency, args, client.GetGamertagTransaction)
	}),
}

var gamertagIDCmd = &cobra.Command{
	Use:   "id <gamertag>",
	Short: "Resolve a gamertag to its user id",
	Args:  cobra.ExactArgs(1),
	RunE: apiRun(func(ctx context.Context, cmd *cobra.Command, args []string) (any, error) {
		return client.GetUserIDByGamertag(ctx, args[0])
	}),
}

var gamertagNameCmd = &cobra.Command{
	Use:   "name <user-id>",
	Short: "Resolve a user id to its gamertag",
	Args:  cobra.ExactArgs(1),
	RunE: apiRun(func(ctx context.Context, cmd *cobra.Command, args []string) (any, error) {
		return client.GetGamertagByUserID(ctx, args[0])
	}),
}

func gamertagPayment(gamertag string) (zebedee.GamertagPayment, error) {
	amount, err := resolveAmount(gamertagAmount, gamertagSats)
	if err != nil {
		return zebedee.GamertagPayment{}, err
	}
	return zebedee.GamertagPayment{
		Gamertag:    gamertag,
		Amount:      amount,
		Description: gamertagDescription,
	}, nil
}

func init() {
	rootCmd.AddCommand(gamertagCmd)
	gamertagCmd.AddCommand(gamertagPayCmd, gamertagChargeCmd, gamertagTxCmd, gamertagIDCmd, gamertagNameCmd)

	for _, c := range []*cobra.Command{gamertagPayCmd, gamertagChargeCmd} {
		c.Flags().StringVar(&gamertagAmount, "amount", "", "amount in msats")
		c.Flags().StringVar(&gamertagSats, "sats", "", "amount in sats")
		c.Flags().StringVar(&gamertagDescription, "description", "", "payment description")
	}
}

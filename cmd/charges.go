package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/s0up4200/zbdctl/zebedee"
)

var (
	chargeAmount      string
	chargeSats        string
	chargeDescription string
	chargeInternalID  string
	chargeCallbackURL string
	chargeExpiresIn   int

	waitInterval time.Duration
	waitTimeout  time.Duration
)

// chargeCmd groups the charge subcommands
var chargeCmd = &cobra.Command{
	Use:   "charge",
	Short: "Create and inspect Lightning charges",
}

var chargeCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a charge (a Lightning invoice payable to the project wallet)",
	Args:  cobra.NoArgs,
	RunE: apiRun(func(ctx context.Context, cmd *cobra.Command, args []string) (any, error) {
		amount, err := resolveAmount(chargeAmount, chargeSats)
		if err != nil {
			return nil, err
		}
		return client.CreateCharge(ctx, zebedee.ChargeRequest{
			ExpiresIn:   chargeExpiresIn,
			Amount:      amount,
			Description: chargeDescription,
			InternalID:  internalID(chargeInternalID),
			CallbackURL: chargeCallbackURL,
		})
	}),
}

var chargeListCmd = &cobra.Command{
	Use:   "list",
	Short: "List charges",
	Args:  cobra.NoArgs,
	RunE: apiRun(func(ctx context.Context, cmd *cobra.Command, args []string) (any, error) {
		charges, err := client.ListCharges(ctx)
		if err != nil {
			return nil, err
		}
		return applyFilter(charges)
	}),
}

var chargeGetCmd = &cobra.Command{
	Use:   "get <id>...",
	Short: "Get one or more charges by id",
	Args:  cobra.MinimumNArgs(1),
	RunE: apiRun(func(ctx context.Context, cmd *cobra.Command, args []string) (any, error) {
		return getMany(ctx, cfg.Concurrency, args, client.GetCharge)
	}),
}

var chargeWaitCmd = &cobra.Command{
	Use:   "wait <id>",
	Short: "Poll a charge until it leaves the pending state",
	Args:  cobra.ExactArgs(1),
	RunE: apiRun(func(ctx context.Context, cmd *cobra.Command, args []string) (any, error) {
		return waitForCharge(ctx, client, args[0], waitInterval, waitTimeout)
	}),
}

// waitForCharge polls until the charge is no longer pending or timeout
// elapses. Both durations must be positive.
func waitForCharge(ctx context.Context, c *zebedee.Client, id string, interval, timeout time.Duration) (*zebedee.Charge, error) {
	if interval <= 0 {
		return nil, fmt.Errorf("--interval must be positive, got %s", interval)
	}
	if timeout <= 0 {
		return nil, fmt.Errorf("--timeout must be positive, got %s", timeout)
	}

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		charge, err := c.GetCharge(ctx, id)
		if err != nil {
			return nil, err
		}
		if charge != nil && charge.Status != "pending" {
			return charge, nil
		}
		logger.Debug().Str("charge", id).Msg("Charge still pending")

		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("charge %s still pending: %w", id, ctx.Err())
		case <-ticker.C:
		}
	}
}

func init() {
	rootCmd.AddCommand(chargeCmd)
	chargeCmd.AddCommand(chargeCreateCmd, chargeListCmd, chargeGetCmd, chargeWaitCmd)

	chargeCreateCmd.Flags().StringVar(&chargeAmount, "amount", "", "amount in msats")
	chargeCreateCmd.Flags().StringVar(&chargeSats, "sats", "", "amount in sats")
	chargeCreateCmd.Flags().StringVar(&chargeDescription, "description", "", "charge description")
	chargeCreateCmd.Flags().StringVar(&chargeInternalID, "internal-id", "", "your correlation id (default: random UUID)")
	chargeCreateCmd.Flags().StringVar(&chargeCallbackURL, "callback-url", "", "URL notified on status changes")
	chargeCreateCmd.Flags().IntVar(&chargeExpiresIn, "expires-in", 0, "expiry in seconds (default 300)")

	addFilterFlag(chargeListCmd)

	chargeWaitCmd.Flags().DurationVar(&waitInterval, "interval", 2*time.Second, "poll interval")
	chargeWaitCmd.Flags().DurationVar(&waitTimeout, "timeout", 5*time.Minute, "give up after this long")
}

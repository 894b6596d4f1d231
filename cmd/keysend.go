package cmd

import (
	"context"
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/s0up4200/zbdctl/zebedee"
)

var (
	keysendAmount      string
	keysendSats        string
	keysendMetadata    string
	keysendCallbackURL string
	keysendTLVs        []string
)

// keysendCmd represents the keysend command
var keysendCmd = &cobra.Command{
	Use:   "keysend <pubkey>",
	Short: "Send sats directly to a Lightning node public key",
	Long: `Send a spontaneous keysend payment to a node.

The public key is checked to be a valid secp256k1 point before anything is
sent. Custom TLV records are given as type=hexvalue, e.g. --tlv 5482373484=0a0b.`,
	Args: cobra.ExactArgs(1),
	RunE: apiRun(func(ctx context.Context, cmd *cobra.Command, args []string) (any, error) {
		pubkey := strings.TrimSpace(args[0])
		if err := validatePubkey(pubkey); err != nil {
			return nil, err
		}

		amount, err := resolveAmount(keysendAmount, keysendSats)
		if err != nil {
			return nil, err
		}

		records, err := parseTLVRecords(keysendTLVs)
		if err != nil {
			return nil, err
		}

		logger.Info().Str("pubkey", pubkey).Str("amount", amount).Int("tlv_records", len(records)).Msg("Sending keysend")
		return client.Keysend(ctx, zebedee.KeysendRequest{
			Amount:      amount,
			Pubkey:      pubkey,
			TLVRecords:  records,
			Metadata:    keysendMetadata,
			CallbackURL: keysendCallbackURL,
		})
	}),
}

// parseTLVRecords parses type=hexvalue pairs
func parseTLVRecords(specs []string) ([]zebedee.TLVRecord, error) {
	records := make([]zebedee.TLVRecord, 0, len(specs))
	for _, spec := range specs {
		typ, value, ok := strings.Cut(spec, "=")
		if !ok {
			return nil, fmt.Errorf("invalid TLV record %q: expected type=value", spec)
		}
		t, err := strconv.ParseUint(strings.TrimSpace(typ), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid TLV type %q: %w", typ, err)
		}
		value = strings.TrimSpace(value)
		if value == "" {
			return nil, fmt.Errorf("invalid TLV record %q: empty value", spec)
		}
		if _, err := hex.DecodeString(value); err != nil {
			return nil, fmt.Errorf("invalid TLV value %q: not hex: %w", value, err)
		}
		records = append(records, zebedee.TLVRecord{Type: t, Value: value})
	}
	return records, nil
}

func init() {
	rootCmd.AddCommand(keysendCmd)

	keysendCmd.Flags().StringVar(&keysendAmount, "amount", "", "amount in msats")
	keysendCmd.Flags().StringVar(&keysendSats, "sats", "", "amount in sats")
	keysendCmd.Flags().StringVar(&keysendMetadata, "metadata", "", "free-form metadata stored with the payment")
	keysendCmd.Flags().StringVar(&keysendCallbackURL, "callback-url", "", "URL notified on status changes")
	keysendCmd.Flags().StringArrayVar(&keysendTLVs, "tlv", nil, "custom TLV record as type=hexvalue (repeatable)")
}

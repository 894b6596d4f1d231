package cmd

import (
	"context"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

var msatsPerSat = decimal.NewFromInt(1000)

// getMany fetches every id concurrently, bounded by limit, and returns the
// results in argument order. One id yields the bare object.
func getMany[T any](ctx context.Context, limit int, ids []string, fetch func(context.Context, string) (T, error)) (any, error) {
	if len(ids) == 1 {
		return fetch(ctx, ids[0])
	}

	results := make([]T, len(ids))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(max(limit, 1))

	for i, id := range ids {
		g.Go(func() error {
			res, err := fetch(ctx, id)
			if err != nil {
				return fmt.Errorf("%s: %w", id, err)
			}
			results[i] = res
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// resolveAmount returns the millisatoshi amount from either flag. Sats may
// carry up to three decimals since 1 sat is 1000 msats.
func resolveAmount(msats, sats string) (string, error) {
	switch {
	case msats != "" && sats != "":
		return "", fmt.Errorf("use either --amount or --sats, not both")
	case sats != "":
		d, err := decimal.NewFromString(strings.TrimSpace(sats))
		if err != nil {
			return "", fmt.Errorf("invalid sats amount %q: %w", sats, err)
		}
		m := d.Mul(msatsPerSat)
		if !m.IsInteger() || m.IsNegative() {
			return "", fmt.Errorf("sats amount %q does not convert to whole msats", sats)
		}
		return m.String(), nil
	case msats != "":
		d, err := decimal.NewFromString(strings.TrimSpace(msats))
		if err != nil || !d.IsInteger() || d.IsNegative() {
			return "", fmt.Errorf("invalid msats amount %q", msats)
		}
		return d.String(), nil
	default:
		return "", fmt.Errorf("an amount is required (--amount in msats or --sats)")
	}
}

// satsToUSD values sats at a BTC/USD price, rounded to cents.
func satsToUSD(sats, btcUSD string) (decimal.Decimal, error) {
	amount, err := decimal.NewFromString(sats)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid sats amount %q: %w", sats, err)
	}
	price, err := decimal.NewFromString(btcUSD)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid BTC/USD price %q: %w", btcUSD, err)
	}
	return amount.Mul(price).Div(decimal.NewFromInt(100_000_000)).Round(2), nil
}

// validatePubkey checks that s is a hex encoded secp256k1 point, compressed
// or not, before any funds are sent to it.
func validatePubkey(s string) error {
	raw, err := hex.DecodeString(s)
	if err != nil {
		return fmt.Errorf("pubkey is not hex: %w", err)
	}
	if _, err := secp256k1.ParsePubKey(raw); err != nil {
		return fmt.Errorf("pubkey is not a valid secp256k1 key: %w", err)
	}
	return nil
}

// oauthState keeps a configured state or generates a UUID, which has the
// 36 characters the provider expects.
func oauthState(configured string) string {
	if configured != "" {
		return configured
	}
	return uuid.NewString()
}

// internalID fills in a UUID when the caller gave no correlation id.
func internalID(given string) string {
	if given != "" {
		return given
	}
	return uuid.NewString()
}

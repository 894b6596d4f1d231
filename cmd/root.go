package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/s0up4200/zbdctl/config"
	"github.com/s0up4200/zbdctl/filter"
	"github.com/s0up4200/zbdctl/metrics"
	"github.com/s0up4200/zbdctl/zebedee"
)

var (
	cfgFile   string
	cfg       *config.Config
	logger    zerolog.Logger
	client    *zebedee.Client
	apiHTTP   *http.Client
	filters   *filter.Manager
	collector *metrics.Metrics

	// Command flags
	filterExpr string
	apiKeyFlag string
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "zbdctl",
	Short: "A command line client for the ZEBEDEE Lightning payments API",
	Long: `zbdctl talks to the ZEBEDEE API to create charges, pay invoices, Lightning
addresses and gamertags, manage vouchers and withdrawals, and drive the
"Login with ZBD" OAuth2 flow.

Every command prints the API response as indented JSON on stdout.`,
	PersistentPreRunE: initializeApp,
	SilenceUsage:      true,
	SilenceErrors:     true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		stop()
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./config.yaml)")
	rootCmd.PersistentFlags().StringVar(&apiKeyFlag, "api-key", "", "ZEBEDEE API key (overrides zebedee.api_key)")
}

// initializeApp loads the configuration and builds the API client
func initializeApp(cmd *cobra.Command, args []string) error {
	var err error
	cfg, err = config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logger = setupLogger(cfg.Logging, os.Stderr)

	if cmd.Flags().Changed("api-key") {
		cfg.Zebedee.APIKey = apiKeyFlag
	}

	filters = filter.NewManager()
	if err := filters.RegisterFilters(cfg.Filters); err != nil {
		return fmt.Errorf("failed to load filter presets: %w", err)
	}

	var transport http.RoundTripper = http.DefaultTransport
	if cfg.Metrics.Enabled {
		collector = metrics.New()
		transport = collector.RoundTripper(transport)
		go func() {
			if err := collector.Serve(cmd.Context(), cfg.Metrics.Listen, logger); err != nil {
				logger.Error().Err(err).Msg("Metrics listener stopped")
			}
		}()
	}

	apiHTTP = &http.Client{Transport: transport, Timeout: cfg.Zebedee.Timeout}
	client = newClient(cfg, apiHTTP, logger)

	if cfg.Zebedee.APIKey == "" {
		logger.Debug().Msg("No API key configured, only public endpoints will succeed")
	}

	return nil
}

// newClient builds the API client from configuration. OAuth settings are
// attached only when present; a missing state is filled with a fresh UUID.
func newClient(cfg *config.Config, httpClient *http.Client, log zerolog.Logger) *zebedee.Client {
	opts := []zebedee.Option{
		zebedee.WithBaseURL(cfg.Zebedee.BaseURL),
		zebedee.WithAPIKey(cfg.Zebedee.APIKey),
		zebedee.WithHTTPClient(httpClient),
		zebedee.WithUserAgent("zbdctl/" + version),
		zebedee.WithLogger(log),
	}

	if cfg.OAuth.Enabled() {
		opts = append(opts, zebedee.WithOAuth(zebedee.OAuthConfig{
			ClientID:    cfg.OAuth.ClientID,
			Secret:      cfg.OAuth.Secret,
			RedirectURI: cfg.OAuth.RedirectURI,
			State:       oauthState(cfg.OAuth.State),
			Scope:       cfg.OAuth.Scope,
		}))
	}

	return zebedee.New(opts...)
}

// setupLogger configures the zerolog logger. Color needs both the config
// flag and a terminal.
func setupLogger(cfg config.LoggingConfig, out *os.File) zerolog.Logger {
	// Set log level
	level := zerolog.InfoLevel
	switch strings.ToLower(cfg.Level) {
	case "debug":
		level = zerolog.DebugLevel
	case "warn":
		level = zerolog.WarnLevel
	case "error":
		level = zerolog.ErrorLevel
	}

	zerolog.SetGlobalLevel(level)

	// Configure output format
	if cfg.Format == "json" {
		return zerolog.New(out).With().Timestamp().Logger()
	}

	isTTY := isatty.IsTerminal(out.Fd()) || isatty.IsCygwinTerminal(out.Fd())
	output := zerolog.ConsoleWriter{
		Out:        out,
		TimeFormat: time.RFC3339,
		NoColor:    !cfg.Color || !isTTY,
	}

	return zerolog.New(output).With().Timestamp().Logger()
}

// printJSON writes v as indented JSON
func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("failed to encode output: %w", err)
	}
	return nil
}

// apiRun adapts an API call to cobra's RunE, counting failures by kind when
// metrics are enabled.
func apiRun(fn func(ctx context.Context, cmd *cobra.Command, args []string) (any, error)) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		out, err := fn(cmd.Context(), cmd, args)
		if err != nil {
			observeError(err)
			return fmt.Errorf("%s failed: %w", cmd.CommandPath(), err)
		}
		return printJSON(cmd.OutOrStdout(), out)
	}
}

func observeError(err error) {
	if collector == nil {
		return
	}
	kind := "other"
	if zerr, ok := zebedee.AsError(err); ok {
		kind = zerr.Kind.String()
	}
	collector.RecordError(kind)
}

// applyFilter narrows a list result with the --filter expression or preset
func applyFilter[T any](items []T) ([]T, error) {
	f, err := filters.Resolve(filterExpr)
	if err != nil {
		return nil, fmt.Errorf("invalid filter expression: %w", err)
	}
	if f != nil {
		logger.Debug().Str("filter", f.Expression()).Int("items", len(items)).Msg("Filtering results")
	}
	return filter.Apply(f, items)
}

func addFilterFlag(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&filterExpr, "filter", "f", "", "filter expression or preset name from config")
}

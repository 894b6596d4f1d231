package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/s0up4200/zbdctl/pkce"
	"github.com/s0up4200/zbdctl/zebedee"
)

var (
	oauthChallenge    string
	oauthCode         string
	oauthVerifier     string
	oauthRefreshToken string
	oauthAccessToken  string
	oauthStateFlag    string
)

// oauthCmd groups the "Login with ZBD" subcommands
var oauthCmd = &cobra.Command{
	Use:   "oauth",
	Short: "Drive the Login with ZBD OAuth2 flow",
	Long: `Drive the "Login with ZBD" OAuth2 authorization code flow with PKCE.

A typical session:
  zbdctl oauth url                     # prints the consent URL, state and verifier
  zbdctl oauth callback <redirect-url> --state <state>
  zbdctl oauth token --code <code> --verifier <verifier>
  zbdctl oauth user --token <access-token>

The oauth.* settings (client_id, secret, redirect_uri) must be configured.`,
}

var oauthPKCECmd = &cobra.Command{
	Use:   "pkce",
	Short: "Generate a PKCE verifier and its S256 challenge",
	Args:  cobra.NoArgs,
	RunE: apiRun(func(ctx context.Context, cmd *cobra.Command, args []string) (any, error) {
		p, err := pkce.New()
		if err != nil {
			return nil, err
		}
		return pkceOutput{Verifier: p.Verifier, Challenge: p.Challenge, Method: p.Method()}, nil
	}),
}

type pkceOutput struct {
	Verifier  string `json:"verifier"`
	Challenge string `json:"challenge"`
	Method    string `json:"method"`
}

// authURLOutput carries only the verifier when it was generated here
type authURLOutput struct {
	URL      string `json:"url"`
	State    string `json:"state"`
	Verifier string `json:"verifier,omitempty"`
}

var oauthURLCmd = &cobra.Command{
	Use:   "url",
	Short: "Build the consent URL to send the user to",
	Args:  cobra.NoArgs,
	RunE: apiRun(func(ctx context.Context, cmd *cobra.Command, args []string) (any, error) {
		c, err := oauthClient()
		if err != nil {
			return nil, err
		}

		out := authURLOutput{State: c.OAuth().State}
		challenge := oauthChallenge
		if challenge == "" {
			p, err := pkce.New()
			if err != nil {
				return nil, err
			}
			challenge = p.Challenge
			out.Verifier = p.Verifier
		}

		out.URL, err = c.AuthorizationURL(challenge)
		if err != nil {
			return nil, err
		}
		return out, nil
	}),
}

var oauthCallbackCmd = &cobra.Command{
	Use:   "callback <redirect-url>",
	Short: "Extract the authorization code from the redirect URL",
	Args:  cobra.ExactArgs(1),
	RunE: apiRun(func(ctx context.Context, cmd *cobra.Command, args []string) (any, error) {
		c, err := oauthClient()
		if err != nil {
			return nil, err
		}
		code, err := c.ParseAuthorizationCallback(args[0])
		if err != nil {
			return nil, err
		}
		return map[string]string{"code": code}, nil
	}),
}

var oauthTokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Exchange an authorization code for tokens",
	Args:  cobra.NoArgs,
	RunE: apiRun(func(ctx context.Context, cmd *cobra.Command, args []string) (any, error) {
		c, err := oauthClient()
		if err != nil {
			return nil, err
		}
		return c.ExchangeToken(ctx, oauthCode, oauthVerifier)
	}),
}

var oauthRefreshCmd = &cobra.Command{
	Use:   "refresh",
	Short: "Obtain a new access token from a refresh token",
	Args:  cobra.NoArgs,
	RunE: apiRun(func(ctx context.Context, cmd *cobra.Command, args []string) (any, error) {
		c, err := oauthClient()
		if err != nil {
			return nil, err
		}
		return c.RefreshToken(ctx, oauthRefreshToken)
	}),
}

var oauthUserCmd = &cobra.Command{
	Use:   "user",
	Short: "Fetch the profile of the user who granted access",
	Args:  cobra.NoArgs,
	RunE: apiRun(func(ctx context.Context, cmd *cobra.Command, args []string) (any, error) {
		return client.GetOAuthUser(ctx, oauthAccessToken)
	}),
}

var oauthWalletCmd = &cobra.Command{
	Use:   "wallet",
	Short: "Fetch the wallet of the user who granted access",
	Args:  cobra.NoArgs,
	RunE: apiRun(func(ctx context.Context, cmd *cobra.Command, args []string) (any, error) {
		return client.GetOAuthUserWallet(ctx, oauthAccessToken)
	}),
}

// oauthClient returns the shared client, rebuilt when --state overrides
// the configured one.
func oauthClient() (*zebedee.Client, error) {
	if !cfg.OAuth.Enabled() {
		return nil, fmt.Errorf("oauth.client_id, oauth.secret and oauth.redirect_uri must be configured: %w", zebedee.ErrOAuthNotConfigured)
	}
	if oauthStateFlag == "" {
		return client, nil
	}

	overridden := *cfg
	overridden.OAuth.State = oauthStateFlag
	return newClient(&overridden, apiHTTP, logger), nil
}

func init() {
	rootCmd.AddCommand(oauthCmd)
	oauthCmd.AddCommand(oauthPKCECmd, oauthURLCmd, oauthCallbackCmd, oauthTokenCmd, oauthRefreshCmd, oauthUserCmd, oauthWalletCmd)

	oauthCmd.PersistentFlags().StringVar(&oauthStateFlag, "state", "", "OAuth state (default: oauth.state or a random UUID)")

	oauthURLCmd.Flags().StringVar(&oauthChallenge, "challenge", "", "PKCE challenge (default: generate a new pair)")

	oauthTokenCmd.Flags().StringVar(&oauthCode, "code", "", "authorization code from the callback")
	oauthTokenCmd.Flags().StringVar(&oauthVerifier, "verifier", "", "PKCE verifier matching the challenge")
	_ = oauthTokenCmd.MarkFlagRequired("code")
	_ = oauthTokenCmd.MarkFlagRequired("verifier")

	oauthRefreshCmd.Flags().StringVar(&oauthRefreshToken, "refresh-token", "", "refresh token")
	_ = oauthRefreshCmd.MarkFlagRequired("refresh-token")

	for _, c := range []*cobra.Command{oauthUserCmd, oauthWalletCmd} {
		c.Flags().StringVar(&oauthAccessToken, "token", "", "user access token")
		_ = c.MarkFlagRequired("token")
	}
}

package zebedee

import (
	"context"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/oauth2"
)

const (
	oauthAuthorizePath = "/v1/oauth2/authorize"
	oauthTokenPath     = "/v1/oauth2/token"

	grantAuthorizationCode = "authorization_code"
	grantRefreshToken      = "refresh_token"

	oauthIDLength       = 36
	codeVerifierLength  = 43
	codeChallengeLength = 43
)

// OAuthConfig holds the credentials of a "Login with ZBD" application.
type OAuthConfig struct {
	ClientID    string
	Secret      string
	RedirectURI string
	State       string
	Scope       string
}

// Validate checks the identifiers are 36 characters and the redirect URI
// is absolute.
func (o OAuthConfig) Validate() []Violation {
	return collect(
		exactLength("client_id", o.ClientID, oauthIDLength),
		exactLength("secret", o.Secret, oauthIDLength),
		absoluteURL("redirect_uri", o.RedirectURI),
		exactLength("state", o.State, oauthIDLength),
	)
}

// Token is the raw token endpoint response. Refresh responses omit
// RefreshTokenExpiresIn.
type Token struct {
	AccessToken           string `json:"access_token"`
	TokenType             string `json:"token_type"`
	ExpiresIn             int64  `json:"expires_in"`
	RefreshToken          string `json:"refresh_token"`
	RefreshTokenExpiresIn int64  `json:"refresh_token_expires_in,omitempty"`
	Scope                 string `json:"scope"`
}

// OAuth2Token converts t for use with golang.org/x/oauth2, taking issuedAt
// as the start of the expiry window.
func (t Token) OAuth2Token(issuedAt time.Time) *oauth2.Token {
	tok := &oauth2.Token{
		AccessToken:  t.AccessToken,
		TokenType:    t.TokenType,
		RefreshToken: t.RefreshToken,
	}
	if t.ExpiresIn > 0 {
		tok.Expiry = issuedAt.Add(time.Duration(t.ExpiresIn) * time.Second)
	}
	return tok
}

type OAuthUser struct {
	ID                 string  `json:"id"`
	Email              string  `json:"email"`
	Gamertag           string  `json:"gamertag"`
	Image              *string `json:"image,omitempty"`
	IsVerified         bool    `json:"isVerified"`
	LightningAddress   string  `json:"lightningAddress"`
	PublicBio          string  `json:"publicBio"`
	PublicStaticCharge string  `json:"publicStaticCharge"`
}

type OAuthWalletLimits struct {
	Daily     string `json:"daily"`
	MaxCredit string `json:"maxCredit"`
	Monthly   string `json:"monthly"`
	Weekly    string `json:"weekly"`
}

type OAuthWallet struct {
	Balance               string            `json:"balance"`
	RemainingAmountLimits OAuthWalletLimits `json:"remainingAmountLimits"`
}

type tokenExchangeRequest struct {
	ClientID     string `json:"client_id"`
	ClientSecret string `json:"client_secret"`
	Code         string `json:"code"`
	CodeVerifier string `json:"code_verifier"`
	GrantType    string `json:"grant_type"`
	RedirectURI  string `json:"redirect_uri"`
}

func (r tokenExchangeRequest) Validate() []Violation {
	return collect(
		exactLength("code", r.Code, oauthIDLength),
		exactLength("code_verifier", r.CodeVerifier, codeVerifierLength),
		required("grant_type", r.GrantType),
	)
}

type tokenRefreshRequest struct {
	ClientID     string `json:"client_id"`
	ClientSecret string `json:"client_secret"`
	RefreshToken string `json:"refresh_token"`
	GrantType    string `json:"grant_type"`
	RedirectURI  string `json:"redirect_uri"`
}

func (r tokenRefreshRequest) Validate() []Violation {
	return collect(
		exactLength("refresh_token", r.RefreshToken, oauthIDLength),
		required("grant_type", r.GrantType),
	)
}

type userToken string

func (t userToken) Validate() []Violation {
	return required("usertoken", string(t))
}

// oauthConfig returns the validated OAuth settings of the client.
func (c *Client) oauthConfig() (*OAuthConfig, error) {
	if c.oauth == nil {
		return nil, &Error{Kind: KindValidation, Err: ErrOAuthNotConfigured}
	}
	if err := check(c.oauth); err != nil {
		return nil, err
	}
	return c.oauth, nil
}

func (c *Client) oauth2Config(o *OAuthConfig) *oauth2.Config {
	cfg := &oauth2.Config{
		ClientID:     o.ClientID,
		ClientSecret: o.Secret,
		RedirectURL:  o.RedirectURI,
		Endpoint: oauth2.Endpoint{
			AuthURL:  c.baseURL + oauthAuthorizePath,
			TokenURL: c.baseURL + oauthTokenPath,
		},
	}
	if o.Scope != "" {
		cfg.Scopes = []string{o.Scope}
	}
	return cfg
}

// AuthorizationURL builds the consent page URL for the authorization code
// flow with a S256 PKCE challenge. No request is sent; the user opens the
// URL out of band.
func (c *Client) AuthorizationURL(challenge string) (string, error) {
	o, err := c.oauthConfig()
	if err != nil {
		return "", err
	}
	if v := exactLength("code_challenge", challenge, codeChallengeLength); len(v) > 0 {
		return "", validationError(v)
	}

	authURL := c.oauth2Config(o).AuthCodeURL(o.State,
		oauth2.SetAuthURLParam("code_challenge_method", "S256"),
		oauth2.SetAuthURLParam("code_challenge", challenge),
	)
	if v := absoluteURL("authorization_url", authURL); len(v) > 0 {
		return "", validationError(v)
	}
	return authURL, nil
}

// ExchangeToken trades an authorization code and its PKCE verifier for
// user tokens.
func (c *Client) ExchangeToken(ctx context.Context, code, verifier string) (*Token, error) {
	o, err := c.oauthConfig()
	if err != nil {
		return nil, err
	}
	body := tokenExchangeRequest{
		ClientID:     o.ClientID,
		ClientSecret: o.Secret,
		Code:         code,
		CodeVerifier: verifier,
		GrantType:    grantAuthorizationCode,
		RedirectURI:  o.RedirectURI,
	}
	if err := check(body); err != nil {
		return nil, err
	}
	return c.postToken(ctx, body)
}

// RefreshToken fetches a new access token for a ZBD user.
func (c *Client) RefreshToken(ctx context.Context, refreshToken string) (*Token, error) {
	o, err := c.oauthConfig()
	if err != nil {
		return nil, err
	}
	body := tokenRefreshRequest{
		ClientID:     o.ClientID,
		ClientSecret: o.Secret,
		RefreshToken: refreshToken,
		GrantType:    grantRefreshToken,
		RedirectURI:  o.RedirectURI,
	}
	if err := check(body); err != nil {
		return nil, err
	}
	return c.postToken(ctx, body)
}

func (c *Client) postToken(ctx context.Context, body any) (*Token, error) {
	resp, err := c.doRequest(ctx, http.MethodPost, oauthTokenPath, body, withoutAPIKey())
	if err != nil {
		return nil, err
	}
	tok, err := parseRaw[Token](resp, "access_token")
	if err != nil {
		return nil, err
	}
	return &tok, nil
}

// GetOAuthUser fetches the profile of the user the access token belongs to.
func (c *Client) GetOAuthUser(ctx context.Context, accessToken string) (*OAuthUser, error) {
	if err := check(userToken(accessToken)); err != nil {
		return nil, err
	}
	data, err := call[OAuthUser](ctx, c, http.MethodGet, "/v1/oauth2/user", nil, withUserToken(accessToken))
	if err != nil {
		return nil, err
	}
	return &data, nil
}

// GetOAuthUserWallet fetches the wallet balance and limits of the user.
func (c *Client) GetOAuthUserWallet(ctx context.Context, accessToken string) (*OAuthWallet, error) {
	if err := check(userToken(accessToken)); err != nil {
		return nil, err
	}
	data, err := call[OAuthWallet](ctx, c, http.MethodGet, "/v1/oauth2/wallet", nil, withUserToken(accessToken))
	if err != nil {
		return nil, err
	}
	return &data, nil
}

// ParseAuthorizationCallback extracts the code from the redirect the user
// lands on after consent and checks its state matches the client's.
func (c *Client) ParseAuthorizationCallback(callbackURL string) (string, error) {
	o, err := c.oauthConfig()
	if err != nil {
		return "", err
	}
	u, err := url.Parse(callbackURL)
	if err != nil {
		return "", validationError([]Violation{{Field: "callback_url", Rule: RuleURL, Message: "must be a valid URL"}})
	}
	q := u.Query()
	if e := q.Get("error"); e != "" {
		return "", &Error{Kind: KindAPI, Message: e, Body: callbackURL}
	}
	var violations []Violation
	if q.Get("state") != o.State {
		violations = append(violations, Violation{Field: "state", Rule: RuleMatch, Message: "does not match the configured state"})
	}
	violations = append(violations, required("code", q.Get("code"))...)
	if len(violations) > 0 {
		return "", validationError(violations)
	}
	return q.Get("code"), nil
}

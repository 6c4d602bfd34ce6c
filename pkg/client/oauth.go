package client

import (
	"context"
	"fmt"

	"golang.org/x/oauth2"
)

// OAuthSettings carries the application-side half of an OAuth flow against
// the repository. The repository-side endpoints come from the bootstrap
// envelope.
type OAuthSettings struct {
	ClientID     string
	ClientSecret string
	RedirectURL  string
	Scopes       []string
}

// OAuthConfig builds an oauth2 configuration from the repository's
// advertised endpoints. Requires a completed Refresh.
func (c *Client) OAuthConfig(settings OAuthSettings) (*oauth2.Config, error) {
	if err := c.requireData("oauth"); err != nil {
		return nil, err
	}
	if c.data.OAuthInitiate == "" || c.data.OAuthToken == "" {
		return nil, fmt.Errorf("repository does not advertise OAuth endpoints")
	}
	if settings.ClientID == "" {
		return nil, fmt.Errorf("OAuth client ID is required")
	}

	return &oauth2.Config{
		ClientID:     settings.ClientID,
		ClientSecret: settings.ClientSecret,
		RedirectURL:  settings.RedirectURL,
		Scopes:       settings.Scopes,
		Endpoint: oauth2.Endpoint{
			AuthURL:  c.data.OAuthInitiate,
			TokenURL: c.data.OAuthToken,
		},
	}, nil
}

// OAuthInitiateURL returns the URL to send the user to for authorization.
// The state value is echoed back on the redirect and must be verified by
// the caller.
func (c *Client) OAuthInitiateURL(settings OAuthSettings, state string) (string, error) {
	cfg, err := c.OAuthConfig(settings)
	if err != nil {
		return "", err
	}
	return cfg.AuthCodeURL(state), nil
}

// OAuthExchange trades an authorization code for an access token and
// installs it on the client.
func (c *Client) OAuthExchange(ctx context.Context, settings OAuthSettings, code string) (*oauth2.Token, error) {
	cfg, err := c.OAuthConfig(settings)
	if err != nil {
		return nil, err
	}

	token, err := cfg.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("OAuth code exchange failed: %w", err)
	}

	c.SetAccessToken(token.AccessToken)
	return token, nil
}

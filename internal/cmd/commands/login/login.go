package login

import (
	"context"
	"flag"
	"fmt"

	"github.com/google/uuid"
	"github.com/pkg/browser"

	"github.com/hashicorp-forge/formkit/internal/cmd/base"
	"github.com/hashicorp-forge/formkit/internal/config"
	"github.com/hashicorp-forge/formkit/pkg/client"
)

type Command struct {
	*base.Command

	flagConfig   string
	flagNoLaunch bool
}

func (c *Command) Synopsis() string {
	return "Obtain an access token via the repository's OAuth flow"
}

func (c *Command) Help() string {
	return `Usage: formkit login [options]

  This command opens the repository's authorization page in a browser,
  then exchanges the pasted authorization code for an access token. Add
  the printed token to the config file as "access_token".` +
		c.Flags().Help()
}

func (c *Command) Flags() *base.FlagSet {
	f := base.NewFlagSet(flag.NewFlagSet("login", flag.ExitOnError))

	f.StringVar(
		&c.flagConfig, "config", "", "(Required) Path to formkit config file",
	)
	f.BoolVar(
		&c.flagNoLaunch, "no-launch-browser", false,
		"Print the authorization URL instead of opening a browser.",
	)

	return f
}

func (c *Command) Run(args []string) int {
	ui := c.UI

	flags := c.Flags()
	if err := flags.Parse(args); err != nil {
		ui.Error(fmt.Sprintf("error parsing flags: %v", err))
		return 1
	}
	if c.flagConfig == "" {
		ui.Error("config flag is required")
		return 1
	}

	cfg, err := config.FromFile(c.flagConfig)
	if err != nil {
		ui.Error(fmt.Sprintf("error parsing config file: %v", err))
		return 1
	}
	c.SetLogLevel(cfg.LogLevel)
	if cfg.OAuth.ClientID == "" {
		ui.Error("config is missing oauth.client_id")
		return 1
	}

	cl, err := client.New(client.Config{
		Endpoint: cfg.Endpoint,
		Logger:   c.Log,
	})
	if err != nil {
		ui.Error(fmt.Sprintf("error creating client: %v", err))
		return 1
	}

	ctx := context.Background()
	if err := cl.Refresh(ctx); err != nil {
		ui.Error(fmt.Sprintf("error fetching repository metadata: %v", err))
		return 1
	}

	settings := client.OAuthSettings{
		ClientID:     cfg.OAuth.ClientID,
		ClientSecret: cfg.OAuth.ClientSecret,
		RedirectURL:  cfg.OAuth.RedirectURL,
	}

	state := uuid.NewString()
	authURL, err := cl.OAuthInitiateURL(settings, state)
	if err != nil {
		ui.Error(fmt.Sprintf("error building authorization URL: %v", err))
		return 1
	}

	if c.flagNoLaunch {
		ui.Output("Open this URL to authorize:")
		ui.Output(authURL)
	} else if err := browser.OpenURL(authURL); err != nil {
		ui.Warn(fmt.Sprintf("could not open browser: %v", err))
		ui.Output("Open this URL to authorize:")
		ui.Output(authURL)
	}
	ui.Output(fmt.Sprintf("Verify the state parameter matches: %s", state))

	code, err := ui.Ask("Paste the authorization code:")
	if err != nil {
		ui.Error(fmt.Sprintf("error reading authorization code: %v", err))
		return 1
	}

	token, err := cl.OAuthExchange(ctx, settings, code)
	if err != nil {
		ui.Error(fmt.Sprintf("token exchange failed: %v", err))
		return 1
	}

	ui.Output("Access token granted:")
	ui.Output(token.AccessToken)
	return 0
}

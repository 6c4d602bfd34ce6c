package refs

import (
	"context"
	"flag"
	"fmt"
	"time"

	"github.com/hashicorp-forge/formkit/internal/cmd/base"
	"github.com/hashicorp-forge/formkit/internal/config"
	"github.com/hashicorp-forge/formkit/pkg/client"
)

type Command struct {
	*base.Command

	flagConfig string
}

func (c *Command) Synopsis() string {
	return "List the repository's refs"
}

func (c *Command) Help() string {
	return `Usage: formkit refs [options]

  This command lists the repository's refs: the master ref plus any
  release refs with their scheduled activation times.` +
		c.Flags().Help()
}

func (c *Command) Flags() *base.FlagSet {
	f := base.NewFlagSet(flag.NewFlagSet("refs", flag.ExitOnError))

	f.StringVar(
		&c.flagConfig, "config", "", "(Required) Path to formkit config file",
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

	cl, err := client.New(client.Config{
		Endpoint:    cfg.Endpoint,
		AccessToken: cfg.AccessToken,
		Logger:      c.Log,
	})
	if err != nil {
		ui.Error(fmt.Sprintf("error creating client: %v", err))
		return 1
	}

	if err := cl.Refresh(context.Background()); err != nil {
		ui.Error(fmt.Sprintf("error fetching repository metadata: %v", err))
		return 1
	}

	for _, r := range cl.Refs() {
		line := fmt.Sprintf("%-24s  %s", r.Label, r.Ref)
		if r.IsMaster {
			line += "  (master)"
		}
		if r.ScheduledAt != nil {
			line += "  scheduled " + r.ScheduledAt.Format(time.RFC3339)
		}
		ui.Output(line)
	}
	return 0
}

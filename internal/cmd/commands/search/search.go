package search

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"

	"github.com/hashicorp/go-hclog"

	"github.com/hashicorp-forge/formkit/internal/cmd/base"
	"github.com/hashicorp-forge/formkit/internal/config"
	"github.com/hashicorp-forge/formkit/pkg/cache"
	"github.com/hashicorp-forge/formkit/pkg/client"
)

type Command struct {
	*base.Command

	flagConfig   string
	flagForm     string
	flagRef      string
	flagQuery    string
	flagOrder    string
	flagPage     int
	flagPageSize int
	flagRaw      bool
}

func (c *Command) Synopsis() string {
	return "Run a query form against the repository"
}

func (c *Command) Help() string {
	return `Usage: formkit search [options]

  This command submits a query form and prints the resulting documents.
  The query is passed in wire form, e.g.
  '[[:d = at(document.type, "article")]]'.` +
		c.Flags().Help()
}

func (c *Command) Flags() *base.FlagSet {
	f := base.NewFlagSet(flag.NewFlagSet("search", flag.ExitOnError))

	f.StringVar(
		&c.flagConfig, "config", "", "(Required) Path to formkit config file",
	)
	f.StringVar(
		&c.flagForm, "form", "everything", "Name of the query form to submit.",
	)
	f.StringVar(
		&c.flagRef, "ref", "",
		"Ref label or token to query against. Defaults to the master ref.",
	)
	f.StringVar(
		&c.flagQuery, "query", "", "Query string in wire form.",
	)
	f.StringVar(
		&c.flagOrder, "orderings", "", "Result ordering expression.",
	)
	f.IntVar(
		&c.flagPage, "page", 0, "Result page (1-based).",
	)
	f.IntVar(
		&c.flagPageSize, "page-size", 0, "Results per page.",
	)
	f.BoolVar(
		&c.flagRaw, "raw", false, "Print the raw response body instead of a summary.",
	)

	return f
}

func (c *Command) Run(args []string) int {
	logger, ui := c.Log, c.UI

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

	cl, err := newClient(cfg, logger)
	if err != nil {
		ui.Error(fmt.Sprintf("error creating client: %v", err))
		return 1
	}

	ctx := context.Background()
	if err := cl.Refresh(ctx); err != nil {
		ui.Error(fmt.Sprintf("error fetching repository metadata: %v", err))
		return 1
	}

	sf, err := cl.Form(c.flagForm)
	if err != nil {
		ui.Error(err.Error())
		return 1
	}

	ref, err := resolveRef(cl, c.flagRef)
	if err != nil {
		ui.Error(err.Error())
		return 1
	}
	sf.Ref(ref)

	if c.flagQuery != "" {
		sf.QueryRaw(c.flagQuery)
	}
	if c.flagOrder != "" {
		sf.Orderings(c.flagOrder)
	}
	if c.flagPage > 0 {
		sf.Page(c.flagPage)
	}
	if c.flagPageSize > 0 {
		sf.PageSize(c.flagPageSize)
	}

	if c.flagRaw {
		body, err := sf.SubmitRaw(ctx)
		if err != nil {
			ui.Error(fmt.Sprintf("query failed: %v", err))
			return 1
		}
		ui.Output(string(body))
		return 0
	}

	resp, err := sf.Submit(ctx)
	if err != nil {
		ui.Error(fmt.Sprintf("query failed: %v", err))
		return 1
	}

	ui.Output(fmt.Sprintf("page %d/%d, %d of %d results",
		resp.Page, resp.TotalPages, resp.ResultsSize, resp.TotalResultsSize))
	for _, doc := range resp.Results {
		line := fmt.Sprintf("%s  %-12s  %s", doc.ID, doc.Type, doc.Slug())
		if len(doc.Tags) > 0 {
			tags, _ := json.Marshal(doc.Tags)
			line += "  " + string(tags)
		}
		ui.Output(line)
	}
	return 0
}

// newClient builds a repository client from the CLI config, with an
// on-disk cache when one is configured.
func newClient(cfg *config.Config, logger hclog.Logger) (*client.Client, error) {
	var store cache.Cache = cache.NewMemory()
	if cfg.CacheDir != "" {
		fileCache, err := cache.NewFile(cache.FileConfig{
			Dir:    cfg.CacheDir,
			Logger: logger,
		})
		if err != nil {
			return nil, err
		}
		store = fileCache
	}

	return client.New(client.Config{
		Endpoint:    cfg.Endpoint,
		AccessToken: cfg.AccessToken,
		Cache:       store,
		Logger:      logger,
	})
}

// resolveRef turns the -ref flag into a ref token: empty means master, a
// known label resolves to its token, anything else is taken as a token.
func resolveRef(cl *client.Client, flagRef string) (string, error) {
	if flagRef == "" {
		master, ok := cl.MasterRef()
		if !ok {
			return "", fmt.Errorf("repository has no master ref")
		}
		return master.Ref, nil
	}
	if r, ok := cl.RefByLabel(flagRef); ok {
		return r.Ref, nil
	}
	return flagRef, nil
}

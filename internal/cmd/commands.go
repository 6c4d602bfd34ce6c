package cmd

import (
	"github.com/hashicorp/go-hclog"
	"github.com/mitchellh/cli"

	"github.com/hashicorp-forge/formkit/internal/cmd/base"
	"github.com/hashicorp-forge/formkit/internal/cmd/commands/login"
	"github.com/hashicorp-forge/formkit/internal/cmd/commands/refs"
	"github.com/hashicorp-forge/formkit/internal/cmd/commands/search"
)

// Commands is the CLI command factory map.
var Commands map[string]cli.CommandFactory

func initCommands(log hclog.Logger, ui cli.Ui) {
	baseCommand := &base.Command{
		Log: log,
		UI:  ui,
	}

	Commands = map[string]cli.CommandFactory{
		"search": func() (cli.Command, error) {
			return &search.Command{Command: baseCommand}, nil
		},
		"refs": func() (cli.Command, error) {
			return &refs.Command{Command: baseCommand}, nil
		},
		"login": func() (cli.Command, error) {
			return &login.Command{Command: baseCommand}, nil
		},
	}
}

// Package base carries the state shared by all CLI commands.
package base

import (
	"bytes"
	"flag"

	"github.com/hashicorp/go-hclog"
	"github.com/mitchellh/cli"
)

// Command is embedded by every CLI command.
type Command struct {
	Log hclog.Logger
	UI  cli.Ui
}

// SetLogLevel applies a configured log level to the command logger.
// Empty or unrecognized levels leave the logger unchanged.
func (c *Command) SetLogLevel(level string) {
	if level == "" {
		return
	}
	if l := hclog.LevelFromString(level); l != hclog.NoLevel {
		c.Log.SetLevel(l)
	}
}

// FlagSet wraps flag.FlagSet with help rendering.
type FlagSet struct {
	*flag.FlagSet
}

// NewFlagSet wraps a flag set.
func NewFlagSet(f *flag.FlagSet) *FlagSet {
	return &FlagSet{FlagSet: f}
}

// Help renders the flag defaults as an options block for command help
// text.
func (f *FlagSet) Help() string {
	var buf bytes.Buffer
	f.SetOutput(&buf)
	f.PrintDefaults()
	return "\n\nOptions:\n" + buf.String()
}

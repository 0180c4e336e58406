package main

import (
	"context"
	"flag"
	"log/slog"

	"github.com/google/subcommands"

	"core-editor/internal/world"
)

type convertCmd struct {
	dims   dimFlags
	to     string
	logger *slog.Logger
}

func (c *convertCmd) Name() string     { return "convert-raw" }
func (c *convertCmd) Synopsis() string { return "rewrite a world file as raw or v1" }
func (c *convertCmd) Usage() string {
	return "worldtool convert-raw [-to v1|raw] <in> <out>\n"
}
func (c *convertCmd) SetFlags(f *flag.FlagSet) {
	c.dims.register(f)
	f.StringVar(&c.to, "to", "", "output `format`: v1 or raw (default: the other one)")
}

func (c *convertCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...any) subcommands.ExitStatus {
	if f.NArg() != 2 {
		f.Usage()
		return subcommands.ExitUsageError
	}
	res, err := c.dims.load(f.Arg(0))
	if err != nil {
		c.logger.Error("convert failed", "error", err)
		return subcommands.ExitFailure
	}

	to := world.FormatV1
	if res.Format == world.FormatV1 {
		to = world.FormatRaw
	}
	if c.to != "" {
		if to, err = world.ParseFormat(c.to); err != nil {
			c.logger.Error("convert failed", "error", err)
			return subcommands.ExitUsageError
		}
	}

	if err := world.Write(f.Arg(1), res.World, to, c.dims.gridW, c.dims.gridH); err != nil {
		c.logger.Error("convert failed", "error", err)
		return subcommands.ExitFailure
	}
	c.logger.Info("converted world", "from", res.Format, "to", to, "path", f.Arg(1))
	return subcommands.ExitSuccess
}

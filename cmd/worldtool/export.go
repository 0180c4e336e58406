package main

import (
	"context"
	"flag"
	"log/slog"

	"github.com/google/subcommands"

	"core-editor/internal/config"
	"core-editor/internal/convert"
)

type exportCmd struct {
	dims      dimFlags
	converter string
	appVar    string
	noDims    bool
	logger    *slog.Logger
}

func (c *exportCmd) Name() string     { return "export" }
func (c *exportCmd) Synopsis() string { return "convert a world file with the external converter" }
func (c *exportCmd) Usage() string {
	return "worldtool export [-x <converter> -a <name> -nodims] <file> <out>\n"
}
func (c *exportCmd) SetFlags(f *flag.FlagSet) {
	c.dims.register(f)
	f.StringVar(&c.converter, "x", config.DefaultConverter, "converter `binary`")
	f.StringVar(&c.appVar, "a", config.DefaultAppVar, "variable `name` passed to the converter")
	f.BoolVar(&c.noDims, "nodims", false, "omit the world width and height bytes")
}

func (c *exportCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...any) subcommands.ExitStatus {
	if f.NArg() != 2 || c.appVar == "" {
		f.Usage()
		return subcommands.ExitUsageError
	}
	res, err := c.dims.load(f.Arg(0))
	if err != nil {
		c.logger.Error("export failed", "error", err)
		return subcommands.ExitFailure
	}
	conv := convert.Converter{Bin: c.converter}
	if err := convert.Export(ctx, conv, res.World, f.Arg(1), c.appVar, !c.noDims); err != nil {
		c.logger.Error("export failed", "error", err)
		return subcommands.ExitFailure
	}
	c.logger.Info("exported world", "from", f.Arg(0), "to", f.Arg(1), "appvar", c.appVar)
	return subcommands.ExitSuccess
}

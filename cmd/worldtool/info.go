package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"

	"github.com/google/subcommands"
)

type infoCmd struct {
	dims   dimFlags
	logger *slog.Logger
	out    io.Writer
}

func (c *infoCmd) Name() string     { return "info" }
func (c *infoCmd) Synopsis() string { return "print header and per-room usage of a world file" }
func (c *infoCmd) Usage() string {
	return "worldtool info [-r -R -w -W] <file>\n"
}
func (c *infoCmd) SetFlags(f *flag.FlagSet) { c.dims.register(f) }

func (c *infoCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...any) subcommands.ExitStatus {
	if f.NArg() != 1 {
		f.Usage()
		return subcommands.ExitUsageError
	}
	path := f.Arg(0)
	res, err := c.dims.load(path)
	if err != nil {
		c.logger.Error("info failed", "error", err)
		return subcommands.ExitFailure
	}

	w := res.World
	g := w.Geometry()
	fmt.Fprintf(c.out, "file:    %s\n", path)
	fmt.Fprintf(c.out, "format:  %s\n", res.Format)
	if h := res.Header; h != nil {
		fmt.Fprintf(c.out, "grid:    %dx%d px\n", h.GridW, h.GridH)
	}
	fmt.Fprintf(c.out, "room:    %dx%d tiles\n", g.RoomW, g.RoomH)
	fmt.Fprintf(c.out, "world:   %dx%d rooms\n", g.WorldW, g.WorldH)
	fmt.Fprintf(c.out, "payload: %d bytes\n", w.Len())
	if res.Extra > 0 {
		fmt.Fprintf(c.out, "extra:   %d bytes ignored\n", res.Extra)
	}

	fmt.Fprintln(c.out, "used tiles per room:")
	for ry := 0; ry < g.WorldH; ry++ {
		for rx := 0; rx < g.WorldW; rx++ {
			fmt.Fprintf(c.out, " %3d", w.Room(rx, ry).Used())
		}
		fmt.Fprintln(c.out)
	}
	return subcommands.ExitSuccess
}

// worldtool inspects and converts core-editor world files without the
// interactive editor.
//
//	worldtool info autosave.core
//	worldtool export -x to8xv autosave.core HCMT.8xv
//	worldtool convert-raw autosave.core autosave.raw
package main

import (
	"context"
	"flag"
	"io"
	"log/slog"
	"os"

	"github.com/google/subcommands"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	cmdr := newCommander(flag.CommandLine, os.Stdout, logger)

	flag.Parse()
	os.Exit(int(cmdr.Execute(context.Background())))
}

// newCommander registers every worldtool command on top of fs. Reports go
// to out.
func newCommander(fs *flag.FlagSet, out io.Writer, logger *slog.Logger) *subcommands.Commander {
	cmdr := subcommands.NewCommander(fs, "worldtool")
	cmdr.Register(cmdr.HelpCommand(), "")
	cmdr.Register(cmdr.FlagsCommand(), "")
	cmdr.Register(&infoCmd{logger: logger, out: out}, "")
	cmdr.Register(&exportCmd{logger: logger}, "")
	cmdr.Register(&convertCmd{logger: logger}, "")
	return cmdr
}

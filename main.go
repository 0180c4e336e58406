// core-editor is a terminal tile-map editor for Hero Core worlds.
//
//	core-editor [-i world] [-o world] [-t tileset.bmp] [-e out.8xv]
//
// Run core-editor -h for every flag.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/gdamore/tcell/v2"

	"core-editor/internal/config"
	"core-editor/internal/convert"
	"core-editor/internal/editor"
	"core-editor/internal/logging"
	"core-editor/internal/tileset"
	"core-editor/internal/world"
)

func main() {
	cfg, err := config.Parse(os.Args[1:], os.Stderr)
	if errors.Is(err, config.ErrUsage) {
		os.Exit(1)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	logger, closer, err := logging.New(logging.Options{
		Path:      cfg.LogFile,
		Level:     cfg.LogLevel,
		MaxSizeMB: cfg.LogMaxMB,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: open log: %v\n", err)
		os.Exit(1)
	}

	code := 0
	if err := run(cfg, logger, os.Stderr); err != nil {
		logger.Error("fatal", "error", err)
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		code = 1
	}
	closer.Close()
	os.Exit(code)
}

// warn reports a non-fatal problem on both stderr and the log.
func warn(logger *slog.Logger, stderr io.Writer, msg string, args ...any) {
	logger.Warn(msg, args...)
	fmt.Fprintf(stderr, "warning: %s", msg)
	for i := 0; i+1 < len(args); i += 2 {
		fmt.Fprintf(stderr, " %v=%v", args[i], args[i+1])
	}
	fmt.Fprintln(stderr)
}

func run(cfg config.Config, logger *slog.Logger, stderr io.Writer) error {
	if cfg.ConfigFile != "" {
		logger.Info("using config file", "path", cfg.ConfigFile)
	}

	tiles, err := tileset.Load(cfg.TilesetPath, cfg.GridW, cfg.GridH)
	if err != nil {
		return err
	}
	if tiles.Count() > tileset.MaxTiles {
		warn(logger, stderr, "tileset has more cells than a tile byte can address",
			"cells", tiles.Count(), "usable", tileset.MaxTiles)
	}
	mapTiles := tiles
	if cfg.MapTilesetPath != cfg.TilesetPath {
		if mapTiles, err = tileset.Load(cfg.MapTilesetPath, cfg.GridW, cfg.GridH); err != nil {
			return err
		}
	}

	res, err := world.Read(cfg.InputPath, cfg.Geometry)
	if err != nil {
		return err
	}
	if res.Extra > 0 {
		warn(logger, stderr, "world file longer than the world; extra bytes ignored",
			"path", cfg.InputPath, "extra", res.Extra)
	}
	logger.Info("loaded world", "path", cfg.InputPath, "found", res.Found, "format", res.Format)

	save := func() error {
		return world.Write(cfg.OutputPath, res.World, cfg.Format, cfg.GridW, cfg.GridH)
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("init screen: %w", err)
	}
	screen.EnableMouse()

	ed := editor.New(editor.Options{
		Screen:   screen,
		World:    res.World,
		Tiles:    tiles,
		MapTiles: mapTiles,
		Logger:   logger,
		Save:     save,
	})
	ed.Run()

	s := ed.Stats()
	logger.Info("session ended", "placed", s.Placed, "erased", s.Erased,
		"picks", s.Picks, "scrolls", s.Scrolls, "saves", s.Saves)

	if err := save(); err != nil {
		return fmt.Errorf("save world: %w", err)
	}
	logger.Info("saved world", "path", cfg.OutputPath, "format", cfg.Format)

	if cfg.ExportPath == "" {
		return nil
	}
	conv := convert.Converter{Bin: cfg.Converter}
	err = convert.Export(context.Background(), conv, res.World, cfg.ExportPath, cfg.AppVar, cfg.ExportDims)
	if err != nil {
		warn(logger, stderr, "export failed", "error", err)
		return nil
	}
	logger.Info("exported world", "path", cfg.ExportPath, "appvar", cfg.AppVar)
	return nil
}

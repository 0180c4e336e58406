// Package config builds the immutable editor configuration from built-in
// defaults, an optional config file, COREEDIT_* environment variables and
// command-line flags, in increasing order of precedence.
package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"core-editor/internal/grid"
	"core-editor/internal/world"
)

// ErrUsage is returned when help was requested or the flags did not parse.
// Usage has already been printed.
var ErrUsage = errors.New("usage requested")

// Config is created once at startup and passed by value afterwards.
type Config struct {
	Geometry     grid.Geometry
	GridW, GridH int // tileset cell size in pixels

	InputPath      string
	OutputPath     string
	ExportPath     string // empty disables export
	AppVar         string
	TilesetPath    string
	MapTilesetPath string // empty reuses TilesetPath
	Converter      string
	ExportDims     bool
	Format         world.Format

	LogFile    string // empty selects the default under the XDG data dir
	LogLevel   slog.Level
	LogMaxMB   int
	ConfigFile string // config file that supplied defaults, if any
}

// Defaults match the Hero Core map layout.
const (
	DefaultGrid       = 16
	DefaultRoomW      = 11
	DefaultRoomH      = 8
	DefaultWorldW     = 9
	DefaultWorldH     = 8
	DefaultView       = 3
	DefaultOutput     = "autosave.core"
	DefaultAppVar     = "HCMT"
	DefaultTileset    = "tileset.bmp"
	DefaultConverter  = "to8xv"
	DefaultLogMaxMB   = 5
	envPrefix         = "COREEDIT"
	configName        = "coreedit"
	configEnvOverride = "COREEDIT_CONFIG"
	appDirName        = "core-editor"
)

// newViper returns a viper instance seeded with built-in defaults and, when
// present, a config file and environment overrides.
func newViper() (*viper.Viper, error) {
	v := viper.New()
	v.SetDefault("grid.width", DefaultGrid)
	v.SetDefault("grid.height", DefaultGrid)
	v.SetDefault("room.width", DefaultRoomW)
	v.SetDefault("room.height", DefaultRoomH)
	v.SetDefault("world.width", DefaultWorldW)
	v.SetDefault("world.height", DefaultWorldH)
	v.SetDefault("view.width", DefaultView)
	v.SetDefault("view.height", DefaultView)
	v.SetDefault("files.input", "")
	v.SetDefault("files.output", DefaultOutput)
	v.SetDefault("files.export", "")
	v.SetDefault("files.tileset", DefaultTileset)
	v.SetDefault("files.mapscreen", "")
	v.SetDefault("files.format", world.FormatV1.String())
	v.SetDefault("export.appvar", DefaultAppVar)
	v.SetDefault("export.converter", DefaultConverter)
	v.SetDefault("export.dims", true)
	v.SetDefault("log.file", "")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.max_size_mb", DefaultLogMaxMB)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path := os.Getenv(configEnvOverride); path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName(configName)
		v.AddConfigPath(".")
		if dir, err := configDir(); err == nil {
			v.AddConfigPath(dir)
		}
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}
	return v, nil
}

// configDir is $XDG_CONFIG_HOME/core-editor, defaulting to ~/.config.
func configDir() (string, error) {
	home := os.Getenv("XDG_CONFIG_HOME")
	if home == "" {
		h, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		home = filepath.Join(h, ".config")
	}
	return filepath.Join(home, appDirName), nil
}

// Parse builds a Config from args (without the program name). Usage and
// parse errors are written to stderr.
func Parse(args []string, stderr io.Writer) (Config, error) {
	v, err := newViper()
	if err != nil {
		return Config{}, err
	}

	var (
		c      Config
		help   bool
		format string
	)
	fs := flag.NewFlagSet("core-editor", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&c.InputPath, "i", v.GetString("files.input"), "world `file` to load (defaults to the output file)")
	fs.StringVar(&c.OutputPath, "o", v.GetString("files.output"), "world `file` to save on exit")
	fs.StringVar(&c.ExportPath, "e", v.GetString("files.export"), "export the world to `file` with the converter on exit")
	fs.StringVar(&c.AppVar, "a", v.GetString("export.appvar"), "variable `name` passed to the converter")
	fs.StringVar(&c.TilesetPath, "t", v.GetString("files.tileset"), "tileset `image`")
	fs.StringVar(&c.MapTilesetPath, "m", v.GetString("files.mapscreen"), "minimap tileset `image` (defaults to the tileset)")
	fs.StringVar(&c.Converter, "x", v.GetString("export.converter"), "converter `binary`")
	fs.StringVar(&format, "f", v.GetString("files.format"), "world file `format`: v1 or raw")
	fs.IntVar(&c.GridW, "g", v.GetInt("grid.width"), "tileset cell `width` in pixels")
	fs.IntVar(&c.GridH, "G", v.GetInt("grid.height"), "tileset cell `height` in pixels")
	fs.IntVar(&c.Geometry.RoomW, "r", v.GetInt("room.width"), "room `width` in tiles")
	fs.IntVar(&c.Geometry.RoomH, "R", v.GetInt("room.height"), "room `height` in tiles")
	fs.IntVar(&c.Geometry.WorldW, "w", v.GetInt("world.width"), "world `width` in rooms")
	fs.IntVar(&c.Geometry.WorldH, "W", v.GetInt("world.height"), "world `height` in rooms")
	fs.IntVar(&c.Geometry.ViewW, "v", v.GetInt("view.width"), "view `width` in rooms")
	fs.IntVar(&c.Geometry.ViewH, "V", v.GetInt("view.height"), "view `height` in rooms")
	fs.BoolVar(&help, "?", false, "print this help")

	// flag prints its own message and usage on failure.
	if err := fs.Parse(args); err != nil {
		return Config{}, ErrUsage
	}
	if help || fs.NArg() > 0 {
		fs.Usage()
		return Config{}, ErrUsage
	}

	c.ExportDims = v.GetBool("export.dims")
	c.LogFile = v.GetString("log.file")
	c.LogMaxMB = v.GetInt("log.max_size_mb")
	c.ConfigFile = v.ConfigFileUsed()
	level := v.GetString("log.level")

	if c.Format, err = world.ParseFormat(format); err != nil {
		return Config{}, fmt.Errorf("-f: %w", err)
	}
	if err := c.LogLevel.UnmarshalText([]byte(level)); err != nil {
		return Config{}, fmt.Errorf("log.level: %w", err)
	}
	if err := c.validate(); err != nil {
		return Config{}, err
	}
	c.Geometry.ViewW = min(c.Geometry.ViewW, c.Geometry.WorldW)
	c.Geometry.ViewH = min(c.Geometry.ViewH, c.Geometry.WorldH)
	if c.InputPath == "" {
		c.InputPath = c.OutputPath
	}
	if c.MapTilesetPath == "" {
		c.MapTilesetPath = c.TilesetPath
	}
	return c, nil
}

func (c Config) validate() error {
	dims := []struct {
		flag string
		val  int
		min  int
	}{
		{"g", c.GridW, 2},
		{"G", c.GridH, 2},
		{"r", c.Geometry.RoomW, 1},
		{"R", c.Geometry.RoomH, 1},
		{"w", c.Geometry.WorldW, 1},
		{"W", c.Geometry.WorldH, 1},
		{"v", c.Geometry.ViewW, 1},
		{"V", c.Geometry.ViewH, 1},
	}
	for _, d := range dims {
		if d.val < d.min || d.val > 255 {
			return fmt.Errorf("-%s: %d out of range %d-255", d.flag, d.val, d.min)
		}
	}
	if c.OutputPath == "" {
		return errors.New("-o: output file must not be empty")
	}
	if c.ExportPath != "" && c.AppVar == "" {
		return errors.New("-a: export needs a variable name")
	}
	return nil
}

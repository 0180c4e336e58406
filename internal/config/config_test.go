package config

import (
	"bytes"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"core-editor/internal/grid"
	"core-editor/internal/world"
)

// isolate keeps user config files and COREEDIT_* variables out of the test.
func isolate(t *testing.T) {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv(configEnvOverride, "")
	for _, kv := range os.Environ() {
		if k, _, _ := strings.Cut(kv, "="); strings.HasPrefix(k, envPrefix+"_") && k != configEnvOverride {
			t.Setenv(k, "")
		}
	}
}

func TestParseDefaults(t *testing.T) {
	isolate(t)
	c, err := Parse(nil, &bytes.Buffer{})
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	want := Config{
		Geometry:       grid.Geometry{RoomW: 11, RoomH: 8, WorldW: 9, WorldH: 8, ViewW: 3, ViewH: 3},
		GridW:          16,
		GridH:          16,
		InputPath:      "autosave.core",
		OutputPath:     "autosave.core",
		AppVar:         "HCMT",
		TilesetPath:    "tileset.bmp",
		MapTilesetPath: "tileset.bmp",
		Converter:      "to8xv",
		ExportDims:     true,
		Format:         world.FormatV1,
		LogLevel:       slog.LevelInfo,
		LogMaxMB:       DefaultLogMaxMB,
	}
	if diff := cmp.Diff(want, c); diff != "" {
		t.Errorf("defaults mismatch (-want +got):\n%s", diff)
	}
}

func TestParseFlags(t *testing.T) {
	isolate(t)
	args := []string{
		"-i", "in.core", "-o", "out.core", "-e", "out.8xv", "-a", "MAP",
		"-t", "set.png", "-g", "8", "-G", "12", "-r", "16", "-R", "10",
		"-w", "4", "-W", "5", "-v", "2", "-V", "1", "-f", "raw",
	}
	c, err := Parse(args, &bytes.Buffer{})
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	wantGeom := grid.Geometry{RoomW: 16, RoomH: 10, WorldW: 4, WorldH: 5, ViewW: 2, ViewH: 1}
	if c.Geometry != wantGeom {
		t.Errorf("Geometry = %+v; want %+v", c.Geometry, wantGeom)
	}
	if c.GridW != 8 || c.GridH != 12 {
		t.Errorf("grid = %dx%d; want 8x12", c.GridW, c.GridH)
	}
	if c.InputPath != "in.core" || c.OutputPath != "out.core" || c.ExportPath != "out.8xv" || c.AppVar != "MAP" {
		t.Errorf("paths = %q %q %q %q", c.InputPath, c.OutputPath, c.ExportPath, c.AppVar)
	}
	if c.TilesetPath != "set.png" || c.MapTilesetPath != "set.png" {
		t.Errorf("tilesets = %q %q", c.TilesetPath, c.MapTilesetPath)
	}
	if c.Format != world.FormatRaw {
		t.Errorf("format = %v; want raw", c.Format)
	}
}

func TestParseClampsViewToWorld(t *testing.T) {
	isolate(t)
	c, err := Parse([]string{"-w", "2", "-W", "1", "-v", "5", "-V", "5"}, &bytes.Buffer{})
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if c.Geometry.ViewW != 2 || c.Geometry.ViewH != 1 {
		t.Errorf("view = %dx%d; want 2x1", c.Geometry.ViewW, c.Geometry.ViewH)
	}
}

func TestParseHelp(t *testing.T) {
	for _, arg := range []string{"-h", "-?", "-nosuchflag"} {
		t.Run(arg, func(t *testing.T) {
			isolate(t)
			var out bytes.Buffer
			_, err := Parse([]string{arg}, &out)
			if !errors.Is(err, ErrUsage) {
				t.Fatalf("err = %v; want ErrUsage", err)
			}
			if !strings.Contains(out.String(), "room width in tiles") {
				t.Errorf("usage not printed: %q", out.String())
			}
		})
	}
}

func TestParseRejectsOutOfRange(t *testing.T) {
	cases := []struct {
		args []string
		flag string
	}{
		{[]string{"-g", "1"}, "-g"},
		{[]string{"-G", "256"}, "-G"},
		{[]string{"-r", "0"}, "-r"},
		{[]string{"-W", "300"}, "-W"},
		{[]string{"-v", "0"}, "-v"},
	}
	for _, tc := range cases {
		t.Run(strings.Join(tc.args, " "), func(t *testing.T) {
			isolate(t)
			_, err := Parse(tc.args, &bytes.Buffer{})
			if err == nil || !strings.HasPrefix(err.Error(), tc.flag+":") {
				t.Errorf("err = %v; want an error naming %s", err, tc.flag)
			}
		})
	}
}

func TestParseConfigFileAndEnv(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "coreedit.yaml")
	yaml := "room:\n  width: 20\n  height: 6\nexport:\n  converter: /opt/bin/convbin\n  dims: false\nlog:\n  level: debug\n"
	if err := os.WriteFile(path, []byte(yaml), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv(configEnvOverride, path)
	t.Setenv("COREEDIT_WORLD_WIDTH", "12")

	c, err := Parse([]string{"-R", "7"}, &bytes.Buffer{})
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if c.Geometry.RoomW != 20 {
		t.Errorf("room width = %d; want 20 from the file", c.Geometry.RoomW)
	}
	if c.Geometry.RoomH != 7 {
		t.Errorf("room height = %d; want 7 from the flag", c.Geometry.RoomH)
	}
	if c.Geometry.WorldW != 12 {
		t.Errorf("world width = %d; want 12 from the environment", c.Geometry.WorldW)
	}
	if c.Converter != "/opt/bin/convbin" || c.ExportDims {
		t.Errorf("converter = %q dims = %v", c.Converter, c.ExportDims)
	}
	if c.LogLevel != slog.LevelDebug {
		t.Errorf("log level = %v; want debug", c.LogLevel)
	}
	if c.ConfigFile != path {
		t.Errorf("ConfigFile = %q; want %q", c.ConfigFile, path)
	}
}

func TestParseBrokenConfigFile(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "coreedit.yaml")
	if err := os.WriteFile(path, []byte("room: [unterminated"), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv(configEnvOverride, path)
	if _, err := Parse(nil, &bytes.Buffer{}); err == nil {
		t.Error("a malformed config file should be reported")
	}
}

// Package convert exports a world to a device-loadable file by running an
// external converter (to8xv and compatible tools) on the flattened payload.
package convert

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"core-editor/internal/world"
)

// Payload is the converter input for w: the world width and height as two
// bytes followed by the tiles, or the tiles alone when withDims is false.
func Payload(w *world.World, withDims bool) []byte {
	tiles := w.Payload()
	if !withDims {
		return tiles
	}
	g := w.Geometry()
	return append([]byte{byte(g.WorldW), byte(g.WorldH)}, tiles...)
}

// Error reports a converter that could not be started or exited non-zero.
type Error struct {
	Bin      string
	ExitCode int // -1 when the process did not run to completion
	Output   string
	Err      error
}

func (e *Error) Error() string {
	msg := fmt.Sprintf("converter %s", e.Bin)
	if e.ExitCode >= 0 {
		msg += fmt.Sprintf(" exited with status %d", e.ExitCode)
	} else {
		msg += fmt.Sprintf(": %v", e.Err)
	}
	if out := strings.TrimSpace(e.Output); out != "" {
		msg += ": " + out
	}
	return msg
}

func (e *Error) Unwrap() error { return e.Err }

// Converter runs the external conversion binary.
type Converter struct {
	Bin string
}

// Run invokes `Bin in out name` and waits for it.
func (c Converter) Run(ctx context.Context, in, out, name string) error {
	cmd := exec.CommandContext(ctx, c.Bin, in, out, name)
	var buf bytes.Buffer
	cmd.Stdout = &buf
	cmd.Stderr = &buf
	err := cmd.Run()
	if err == nil {
		return nil
	}
	cerr := &Error{Bin: c.Bin, ExitCode: -1, Output: buf.String(), Err: err}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) && exitErr.Exited() {
		cerr.ExitCode = exitErr.ExitCode()
	}
	return cerr
}

// Export writes the payload of w to a temporary file and converts it into
// outPath under the variable name. The temporary file is always removed.
func Export(ctx context.Context, c Converter, w *world.World, outPath, name string, withDims bool) error {
	tmp, err := os.CreateTemp("", "core-export-*.cedit")
	if err != nil {
		return fmt.Errorf("create export file: %w", err)
	}
	defer os.Remove(tmp.Name()) //nolint:errcheck

	if _, err := tmp.Write(Payload(w, withDims)); err != nil {
		tmp.Close()
		return fmt.Errorf("write export file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close export file: %w", err)
	}
	return c.Run(ctx, tmp.Name(), outPath, name)
}

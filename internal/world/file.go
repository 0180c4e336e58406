package world

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"core-editor/internal/grid"
)

// Format selects the on-disk layout of a world file.
type Format uint8

const (
	// FormatV1 prefixes the payload with a HeaderLength byte header.
	FormatV1 Format = iota
	// FormatRaw is the bare payload.
	FormatRaw
)

func (f Format) String() string {
	switch f {
	case FormatV1:
		return "v1"
	case FormatRaw:
		return "raw"
	}
	return fmt.Sprintf("Format(%d)", uint8(f))
}

// ParseFormat accepts "v1" and "raw".
func ParseFormat(s string) (Format, error) {
	switch s {
	case "v1", "":
		return FormatV1, nil
	case "raw":
		return FormatRaw, nil
	}
	return 0, fmt.Errorf("unknown world file format %q", s)
}

const (
	Version1     = 1
	HeaderLength = 200
)

var (
	ErrInvalidHeader     = errors.New("invalid world file header")
	ErrDimensionMismatch = errors.New("world file dimensions do not match configuration")
)

// Header is the fixed-size v1 header. Dimensions are single bytes.
type Header struct {
	Version        uint8
	GridW, GridH   uint8
	RoomW, RoomH   uint8
	WorldW, WorldH uint8
	_              [HeaderLength - 7]byte
}

// NewHeader describes a world of geometry g painted with a gridW × gridH
// pixel tileset.
func NewHeader(g grid.Geometry, gridW, gridH int) Header {
	return Header{
		Version: Version1,
		GridW:   uint8(gridW),
		GridH:   uint8(gridH),
		RoomW:   uint8(g.RoomW),
		RoomH:   uint8(g.RoomH),
		WorldW:  uint8(g.WorldW),
		WorldH:  uint8(g.WorldH),
	}
}

// Geometry returns the room and world dimensions stored in the header. View
// dimensions are not persisted and are left zero.
func (h Header) Geometry() grid.Geometry {
	return grid.Geometry{
		RoomW:  int(h.RoomW),
		RoomH:  int(h.RoomH),
		WorldW: int(h.WorldW),
		WorldH: int(h.WorldH),
	}
}

// PayloadLen is the payload size the header announces.
func (h Header) PayloadLen() int { return h.Geometry().PayloadLen() }

func (h Header) matches(g grid.Geometry) error {
	if int(h.RoomW) != g.RoomW || int(h.RoomH) != g.RoomH ||
		int(h.WorldW) != g.WorldW || int(h.WorldH) != g.WorldH {
		return fmt.Errorf("%w: file has room %dx%d world %dx%d, want room %dx%d world %dx%d",
			ErrDimensionMismatch,
			h.RoomW, h.RoomH, h.WorldW, h.WorldH,
			g.RoomW, g.RoomH, g.WorldW, g.WorldH)
	}
	return nil
}

// SerializeHeader encodes h into exactly HeaderLength bytes.
func SerializeHeader(h Header) []byte {
	var buf bytes.Buffer
	binary.Write(&buf, binary.LittleEndian, &h) //nolint:errcheck // bytes.Buffer never fails
	return buf.Bytes()
}

// DeserializeHeader decodes the leading HeaderLength bytes of data.
func DeserializeHeader(data []byte) (Header, error) {
	var h Header
	if err := binary.Read(bytes.NewReader(data), binary.LittleEndian, &h); err != nil {
		return Header{}, fmt.Errorf("%w: %w", ErrInvalidHeader, err)
	}
	if h.Version != Version1 {
		return Header{}, fmt.Errorf("%w: version %d", ErrInvalidHeader, h.Version)
	}
	if h.RoomW == 0 || h.RoomH == 0 || h.WorldW == 0 || h.WorldH == 0 {
		return Header{}, fmt.Errorf("%w: zero dimension", ErrInvalidHeader)
	}
	return h, nil
}

// PeekHeader returns the v1 header at the start of data, if it has one. It
// does not check the payload length; see Decode for the full rule.
func PeekHeader(data []byte) (Header, bool) {
	if len(data) < HeaderLength || data[0] != Version1 {
		return Header{}, false
	}
	for _, b := range data[7:HeaderLength] {
		if b != 0 {
			return Header{}, false
		}
	}
	h, err := DeserializeHeader(data)
	return h, err == nil
}

// looksLikeHeader reports whether data starts with a v1 header. A file whose
// length is exactly payloadLen is always raw.
func looksLikeHeader(data []byte, payloadLen int) bool {
	if len(data) == payloadLen {
		return false
	}
	_, ok := PeekHeader(data)
	return ok
}

// ReadResult describes a loaded world file.
type ReadResult struct {
	World  *World
	Format Format
	Header *Header // nil for raw files
	Found  bool    // false when the file did not exist
	Extra  int     // payload bytes beyond the world size that were ignored
}

// Read loads the world file at path. A missing file is not an error: the
// world stays zero-filled and Found is false.
func Read(path string, g grid.Geometry) (ReadResult, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return ReadResult{World: New(g), Format: FormatV1}, nil
	}
	if err != nil {
		return ReadResult{}, fmt.Errorf("read world file: %w", err)
	}
	res, err := Decode(data, g)
	if err != nil {
		return ReadResult{}, fmt.Errorf("%s: %w", path, err)
	}
	res.Found = true
	return res, nil
}

// Decode parses a world file image. Short payloads are zero-filled.
func Decode(data []byte, g grid.Geometry) (ReadResult, error) {
	res := ReadResult{World: New(g), Format: FormatRaw}
	if looksLikeHeader(data, g.PayloadLen()) {
		h, err := DeserializeHeader(data)
		if err != nil {
			return ReadResult{}, err
		}
		if err := h.matches(g); err != nil {
			return ReadResult{}, err
		}
		res.Format = FormatV1
		res.Header = &h
		data = data[HeaderLength:]
	}
	res.Extra = res.World.Load(data)
	return res, nil
}

// Encode renders w in format f. gridW and gridH only matter for FormatV1.
func Encode(w *World, f Format, gridW, gridH int) []byte {
	if f == FormatRaw {
		return w.Payload()
	}
	out := SerializeHeader(NewHeader(w.Geometry(), gridW, gridH))
	return append(out, w.tiles...)
}

// Write stores w at path. The file is written next to its destination and
// renamed into place so an interrupted save leaves the old file intact.
func Write(path string, w *World, f Format, gridW, gridH int) error {
	return WriteFile(path, Encode(w, f, gridW, gridH))
}

// WriteFile atomically replaces path with data.
func WriteFile(path string, data []byte) error {
	dir, base := filepath.Split(path)
	if dir == "" {
		dir = "."
	}
	tmp, err := os.CreateTemp(dir, base+".tmp*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer os.Remove(tmp.Name()) //nolint:errcheck // gone after a successful rename

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close %s: %w", path, err)
	}
	if err := os.Chmod(tmp.Name(), 0o644); err != nil {
		return fmt.Errorf("chmod %s: %w", path, err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("rename into %s: %w", path, err)
	}
	return nil
}

package geometry

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidFormat is returned when a coordinate format name cannot be parsed.
var ErrInvalidFormat = errors.New("invalid bounding box format")

// Format identifies the coordinate convention of a bounding box.
type Format string

// The supported coordinate formats.
const (
	// XYXY stores the min and max corners: (xmin, ymin, xmax, ymax).
	XYXY Format = "xyxy"
	// XYWH stores the top-left corner plus extents: (x, y, width, height).
	XYWH Format = "xywh"
	// CXCYWH stores the center plus extents: (cx, cy, width, height).
	CXCYWH Format = "cxcywh"
)

// Formats returns all supported formats.
func Formats() []Format {
	return []Format{XYXY, XYWH, CXCYWH}
}

// IsValid reports whether f is one of the supported formats.
func (f Format) IsValid() bool {
	switch f {
	case XYXY, XYWH, CXCYWH:
		return true
	}
	return false
}

// String returns the canonical lowercase name of the format.
func (f Format) String() string {
	return string(f)
}

// ParseFormat parses a format name. Matching is case-insensitive and ignores
// surrounding whitespace, so "XYXY" and " xyxy " both parse to XYXY.
func ParseFormat(s string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(s)))
	if !f.IsValid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidFormat, s)
	}
	return f, nil
}

// Package version carries the QR version table — error-correction block
// layout and data capacity per version 1 through 40 — that the minimal
// segmentation encoder consults when sizing a result.
package version

import (
	"errors"
	"fmt"
)

var errInvalidVersion = errors.New("qrcode/version: version number out of range")

// ErrorCorrectionLevel represents the four QR code error correction levels.
type ErrorCorrectionLevel int

const (
	LevelL ErrorCorrectionLevel = iota // ~7% correction
	LevelM                             // ~15% correction
	LevelQ                             // ~25% correction
	LevelH                             // ~30% correction
)

// Ordinal returns the ordinal position (L=0, M=1, Q=2, H=3), the index into
// Version.ECBlocksArray.
func (ecl ErrorCorrectionLevel) Ordinal() int {
	return int(ecl)
}

// String returns the level name.
func (ecl ErrorCorrectionLevel) String() string {
	switch ecl {
	case LevelL:
		return "L"
	case LevelM:
		return "M"
	case LevelQ:
		return "Q"
	case LevelH:
		return "H"
	}
	return "?"
}

// ParseLevel converts "L", "M", "Q", or "H" into the matching level.
func ParseLevel(s string) (ErrorCorrectionLevel, error) {
	switch s {
	case "L":
		return LevelL, nil
	case "M":
		return LevelM, nil
	case "Q":
		return LevelQ, nil
	case "H":
		return LevelH, nil
	}
	return 0, fmt.Errorf("qrcode/version: invalid error correction level %q", s)
}

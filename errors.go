// Package geocore holds the shared types and error values used by the
// geometry detectors and the QR minimal-segmentation encoder: the read-only
// binary image contract, the floating-point result point, and the error
// values each component returns by value.
package geocore

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned by the geometry detectors when no candidate
// rectangle, guard pattern, or edge point could be located.
var ErrNotFound = errors.New("geocore: not found")

// ErrDataTooBig is returned by the QR encoder when the minimal segmentation
// of the input does not fit any version at the requested error-correction
// level.
var ErrDataTooBig = errors.New("geocore: data too big")

// UnencodableError is returned by the QR encoder when no registered charset
// encoder, including the UTF-16BE fallback, can encode the rune at Offset.
type UnencodableError struct {
	Offset int
	Rune   rune
}

func (e *UnencodableError) Error() string {
	return fmt.Sprintf("geocore: no charset can encode rune %q at offset %d", e.Rune, e.Offset)
}

// InternalError marks a contract violation in one of the detectors, such as
// calling isCornerPoint with two points that do not share an axis. It is
// never returned for recoverable conditions.
type InternalError struct {
	Reason string
}

func (e *InternalError) Error() string {
	return "geocore: internal error: " + e.Reason
}

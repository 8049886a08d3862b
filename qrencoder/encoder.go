package qrencoder

import (
	"github.com/ericlevine/geocore"
	"github.com/ericlevine/geocore/charset"
	"github.com/ericlevine/geocore/qrcode/version"
)

// Options carries the inputs of a single encoding call.
type Options struct {
	// Version pins the QR version (1-40). Zero means "choose automatically".
	Version int
	// PriorityCharset, when non-nil, restricts Byte-mode emission to that
	// charset wherever it can encode the current character.
	PriorityCharset *charset.ECI
	IsGS1           bool
	ECLevel         version.ErrorCorrectionLevel
}

// Result is the outcome of a successful Encode: the version the segments
// were sized for, the segments themselves in encoding order, and their
// total bit length.
type Result struct {
	Version  *version.Version
	Segments []Segment
	Size     int
	// Encoders is the charset list Segments' CharsetIndex fields index
	// into, in the order buildEncoders admitted them.
	Encoders []*charset.CharsetEncoder
}

// versionClassMax are the three version classes' largest members, the ones
// Version selection solves against when no version is pinned: their
// character-count-bit widths represent every version in the class, since
// that table only varies by class, not by individual version number.
var versionClassMax = [3]int{9, 26, 40}

// Encode computes the minimum-bit-length segmentation of input and, unless
// opts.Version pins one, the smallest version it fits in.
func Encode(input string, opts Options) (*Result, error) {
	runes := []rune(input)

	encoders, priorityIndex, err := buildEncoders(runes, opts.PriorityCharset)
	if err != nil {
		return nil, err
	}

	if opts.Version != 0 {
		v, err := version.ForNumber(opts.Version)
		if err != nil {
			return nil, err
		}
		result, err := segmentFor(runes, encoders, priorityIndex, opts, v)
		if err != nil {
			return nil, err
		}
		if result.Size > v.DataCapacityBits(opts.ECLevel) {
			return nil, geocore.ErrDataTooBig
		}
		return result, nil
	}

	var best *Result
	for _, maxInClass := range versionClassMax {
		v, err := version.ForNumber(maxInClass)
		if err != nil {
			return nil, err
		}
		result, err := segmentFor(runes, encoders, priorityIndex, opts, v)
		if err != nil {
			return nil, err
		}
		if result.Size > v.DataCapacityBits(opts.ECLevel) {
			continue // doesn't fit even at this class's largest version
		}
		if best == nil || result.Size < best.Size {
			best = result
		}
	}
	if best == nil {
		return nil, geocore.ErrDataTooBig
	}
	return shrinkToFit(best, opts.ECLevel)
}

// segmentFor runs the graph search and post-processing for a single version
// and reports the resulting segments' total bit size.
func segmentFor(runes []rune, encoders []*charset.CharsetEncoder, priorityIndex int, opts Options, v *version.Version) (*Result, error) {
	arena, best, ok := buildGraph(runes, encoders, priorityIndex, v)
	if !ok {
		return nil, geocore.ErrDataTooBig
	}
	segments := postProcess(reconstructSegments(arena, best), opts.IsGS1)
	size := bitSize(segments, runes, encoders, v)
	return &Result{Version: v, Segments: segments, Size: size, Encoders: encoders}, nil
}

// shrinkToFit implements ResultList::version: result already fits at its
// (class-maximum) version; walk downward to the smallest version in the
// same class that still fits. Character-count-bit widths are identical
// across a class, so result.Segments and result.Size carry over unchanged —
// only the capacity test varies per version.
func shrinkToFit(result *Result, ecLevel version.ErrorCorrectionLevel) (*Result, error) {
	lo, _ := versionClassRange(result.Version.Number)

	current := result
	for current.Version.Number > lo {
		candidate, err := version.ForNumber(current.Version.Number - 1)
		if err != nil {
			break
		}
		if current.Size > candidate.DataCapacityBits(ecLevel) {
			break
		}
		current = &Result{Version: candidate, Segments: result.Segments, Size: result.Size, Encoders: result.Encoders}
	}
	return current, nil
}

func versionClassRange(n int) (lo, hi int) {
	switch {
	case n <= 9:
		return 1, 9
	case n <= 26:
		return 10, 26
	default:
		return 27, 40
	}
}

// bitSize recomputes the total encoded bit length of segments directly from
// their character spans, independent of whatever cost bookkeeping produced
// them. Collapsing adjacent graph edges into one segment does not change
// the total payload bits a mode contributes, since the standard per-mode
// packing formulas are additive over runs.
func bitSize(segments []Segment, runes []rune, encoders []*charset.CharsetEncoder, v *version.Version) int {
	total := 0
	for _, s := range segments {
		switch s.Mode {
		case ModeEci:
			total += 4 + 8
		case ModeFnc1First, ModeTerminator:
			total += 4
		case ModeKanji:
			total += 4 + characterCountBits(ModeKanji, v) + 13*s.CharacterLength
		case ModeAlphanumeric:
			n := s.CharacterLength
			total += 4 + characterCountBits(ModeAlphanumeric, v) + (n/2)*11 + (n%2)*6
		case ModeNumeric:
			n := s.CharacterLength
			rem := n % 3
			remBits := 0
			if rem == 1 {
				remBits = 4
			} else if rem == 2 {
				remBits = 7
			}
			total += 4 + characterCountBits(ModeNumeric, v) + (n/3)*10 + remBits
		case ModeByte:
			substring := string(runes[s.FromPosition : s.FromPosition+s.CharacterLength])
			encoded, _ := encoders[s.CharsetIndex].Encode(substring)
			total += 4 + characterCountBits(ModeByte, v) + 8*len(encoded)
		}
	}
	return total
}

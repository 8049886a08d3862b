// Package qrencoder computes a minimum-bit-length partition of a Unicode
// string into QR code segments: a shortest-path search over a lattice of
// (position, charset, mode) vertices, mirroring the teacher's single-mode
// encoder.go but generalized from "pick one mode for the whole string" to
// "pick the cheapest mode and charset at every position".
package qrencoder

import "github.com/ericlevine/geocore/qrcode/version"

// Mode is a QR segment's encoding family. The first four are data modes
// chosen by the graph search; the remaining three are control segments
// introduced only during post-processing.
type Mode int

const (
	ModeNumeric Mode = iota
	ModeAlphanumeric
	ModeByte
	ModeKanji
	ModeEci
	ModeFnc1First
	ModeTerminator
)

func (m Mode) String() string {
	switch m {
	case ModeNumeric:
		return "Numeric"
	case ModeAlphanumeric:
		return "Alphanumeric"
	case ModeByte:
		return "Byte"
	case ModeKanji:
		return "Kanji"
	case ModeEci:
		return "Eci"
	case ModeFnc1First:
		return "Fnc1First"
	case ModeTerminator:
		return "Terminator"
	}
	return "?"
}

// modeOrdinal returns the lattice ordinal used to index and order vertices
// at a given position: Kanji=0, Alphanumeric=1, Numeric=2, Byte=3. Only the
// four data modes occupy lattice vertices.
func modeOrdinal(m Mode) int {
	switch m {
	case ModeKanji:
		return 0
	case ModeAlphanumeric:
		return 1
	case ModeNumeric:
		return 2
	case ModeByte:
		return 3
	}
	return -1
}

// characterCountBits returns the width, in bits, of the character-count
// indicator that follows a mode's 4-bit header at the given version. The
// three version classes (1-9, 10-26, 27-40) each have their own table per
// the QR code standard.
func characterCountBits(m Mode, v *version.Version) int {
	class := 0
	switch {
	case v.Number <= 9:
		class = 0
	case v.Number <= 26:
		class = 1
	default:
		class = 2
	}
	switch m {
	case ModeNumeric:
		return [3]int{10, 12, 14}[class]
	case ModeAlphanumeric:
		return [3]int{9, 11, 13}[class]
	case ModeByte:
		return [3]int{8, 16, 16}[class]
	case ModeKanji:
		return [3]int{8, 10, 12}[class]
	}
	return 0
}

// alphanumericTable maps ASCII code points to their QR alphanumeric value,
// or -1 if the character has none. Adapted from the teacher's single-mode
// table, which this encoder's graph search consults one rune at a time
// instead of for the whole string at once.
var alphanumericTable = [128]int{
	-1, -1, -1, -1, -1, -1, -1, -1, -1, -1, -1, -1, -1, -1, -1, -1,
	-1, -1, -1, -1, -1, -1, -1, -1, -1, -1, -1, -1, -1, -1, -1, -1,
	36, -1, -1, -1, 37, 38, -1, -1, -1, -1, 39, 40, -1, 41, 42, 43,
	0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 44, -1, -1, -1, -1, -1,
	-1, 10, 11, 12, 13, 14, 15, 16, 17, 18, 19, 20, 21, 22, 23, 24,
	25, 26, 27, 28, 29, 30, 31, 32, 33, 34, 35, -1, -1, -1, -1, -1,
	-1, -1, -1, -1, -1, -1, -1, -1, -1, -1, -1, -1, -1, -1, -1, -1,
	-1, -1, -1, -1, -1, -1, -1, -1, -1, -1, -1, -1, -1, -1, -1, -1,
}

// isAlphanumeric reports whether r has a QR alphanumeric code.
func isAlphanumeric(r rune) bool {
	return r >= 0 && r < 128 && alphanumericTable[r] != -1
}

// isDigit reports whether r is an ASCII decimal digit.
func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

package qrencoder

import (
	"github.com/ericlevine/geocore"
	"github.com/ericlevine/geocore/charset"
)

// isoWalkOrder is the try-order for admitting a new single-byte encoder
// while walking the input string: ISO-8859-1 is always present as the seed,
// so the walk only ever reaches for -2 through -16, skipping -11 (no Thai
// code page in this core's charset package, see charset.Encoders) and -12
// (never existed).
var isoWalkOrder = []*charset.ECI{
	charset.ECIISO8859_2, charset.ECIISO8859_3, charset.ECIISO8859_4,
	charset.ECIISO8859_5, charset.ECIISO8859_6, charset.ECIISO8859_7,
	charset.ECIISO8859_8, charset.ECIISO8859_9, charset.ECIISO8859_10,
	charset.ECIISO8859_13, charset.ECIISO8859_14, charset.ECIISO8859_15,
	charset.ECIISO8859_16,
}

// buildEncoders walks runes once to decide the minimal set of CharsetEncoders
// the graph search needs to consider, then returns that set together with
// the index of priority (if it names one of them, -1 otherwise).
//
// The walk seeds the set with ISO-8859-1, admits additional ISO-8859-*
// encoders only as the string actually demands them, and falls back to
// UTF-16BE when no single-byte charset can represent a rune. UTF-8 and
// UTF-16BE tails are appended at the end unless exactly one ISO charset was
// ever needed and no Unicode fallback was required, in which case
// ISO-8859-1 alone is returned.
func buildEncoders(runes []rune, priority *charset.ECI) ([]*charset.CharsetEncoder, int, error) {
	iso1 := charset.EncoderFor(charset.ECIISO8859_1)
	admitted := []*charset.CharsetEncoder{iso1}
	needUnicode := false

	for i, r := range runes {
		if canEncodeAny(admitted, r) {
			continue
		}
		found := false
		for _, eci := range isoWalkOrder {
			enc := charset.EncoderFor(eci)
			if enc != nil && enc.CanEncode(r) {
				admitted = append(admitted, enc)
				found = true
				break
			}
		}
		if found {
			continue
		}
		utf16be := charset.EncoderFor(charset.ECIUTF16BE)
		if !utf16be.CanEncode(r) {
			return nil, 0, &geocore.UnencodableError{Offset: i, Rune: r}
		}
		needUnicode = true
	}

	final := admitted
	if len(admitted) > 1 || needUnicode {
		final = append(final, charset.EncoderFor(charset.ECIUTF8), charset.EncoderFor(charset.ECIUTF16BE))
	}

	priorityIndex := -1
	if priority != nil {
		for i, enc := range final {
			if enc.ECI() == priority {
				priorityIndex = i
				break
			}
		}
	}
	return final, priorityIndex, nil
}

func canEncodeAny(encoders []*charset.CharsetEncoder, r rune) bool {
	for _, enc := range encoders {
		if enc.CanEncode(r) {
			return true
		}
	}
	return false
}

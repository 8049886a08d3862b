package charset

import (
	"unicode/utf16"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
)

// CharsetEncoder wraps a single ECI's encoding so the QR segmenter can probe
// rune encodability and produce encoded bytes without caring which concrete
// charset backs it.
type CharsetEncoder struct {
	eci *ECI
	enc encoding.Encoding // nil for the two charsets handled natively below
}

// Name returns the ECI name the encoder was built for.
func (c *CharsetEncoder) Name() string { return c.eci.Name }

// ECI returns the ECI this encoder implements.
func (c *CharsetEncoder) ECI() *ECI { return c.eci }

// CanEncode reports whether r has a representation in this charset.
func (c *CharsetEncoder) CanEncode(r rune) bool {
	switch c.eci {
	case ECIUTF8:
		return r >= 0 && r <= 0x10FFFF
	case ECIUTF16BE:
		return !utf16.IsSurrogate(r) && r >= 0 && r <= 0x10FFFF
	}
	_, err := c.enc.NewEncoder().String(string(r))
	return err == nil
}

// Encode converts s into this charset's byte representation. It returns an
// error if any rune in s cannot be represented.
func (c *CharsetEncoder) Encode(s string) ([]byte, error) {
	switch c.eci {
	case ECIUTF8:
		return []byte(s), nil
	case ECIUTF16BE:
		runes := []rune(s)
		out := make([]byte, 0, len(runes)*2)
		for _, r := range runes {
			for _, u := range utf16.Encode([]rune{r}) {
				out = append(out, byte(u>>8), byte(u))
			}
		}
		return out, nil
	}
	out, err := c.enc.NewEncoder().String(s)
	if err != nil {
		return nil, err
	}
	return []byte(out), nil
}

// encoders holds the encoder for every ECI this core can actually encode
// to, keyed by ECI; the map itself has no order (Encoders gives the
// preference order). ISO-8859-11 (Thai) has an assigned ECI value but
// golang.org/x/text/encoding/charmap carries no Thai code page, so — like
// the nonexistent ISO-8859-12 — it has no entry here: it is never offered
// to the segmenter, and EncoderFor returns nil for it.
var encoders = buildEncoders()

func buildEncoders() map[*ECI]*CharsetEncoder {
	table := map[*ECI]encoding.Encoding{
		ECICp437:      charmap.CodePage437,
		ECIISO8859_1:  charmap.ISO8859_1,
		ECIISO8859_2:  charmap.ISO8859_2,
		ECIISO8859_3:  charmap.ISO8859_3,
		ECIISO8859_4:  charmap.ISO8859_4,
		ECIISO8859_5:  charmap.ISO8859_5,
		ECIISO8859_6:  charmap.ISO8859_6,
		ECIISO8859_7:  charmap.ISO8859_7,
		ECIISO8859_8:  charmap.ISO8859_8,
		ECIISO8859_9:  charmap.ISO8859_9,
		ECIISO8859_10: charmap.ISO8859_10,
		ECIISO8859_13: charmap.ISO8859_13,
		ECIISO8859_14: charmap.ISO8859_14,
		ECIISO8859_15: charmap.ISO8859_15,
		ECIISO8859_16: charmap.ISO8859_16,
		ECICp1250:     charmap.Windows1250,
		ECICp1251:     charmap.Windows1251,
		ECICp1252:     charmap.Windows1252,
		ECICp1256:     charmap.Windows1256,
	}
	out := make(map[*ECI]*CharsetEncoder, len(table)+2)
	for eci, enc := range table {
		out[eci] = &CharsetEncoder{eci: eci, enc: enc}
	}
	out[ECIUTF8] = &CharsetEncoder{eci: ECIUTF8}
	out[ECIUTF16BE] = &CharsetEncoder{eci: ECIUTF16BE}
	return out
}

// Encoders returns every CharsetEncoder available to the segmenter, in a
// fixed, deterministic preference order (single-byte charsets first, then
// the two universal fallbacks).
func Encoders() []*CharsetEncoder {
	order := []*ECI{
		ECICp437, ECIISO8859_1, ECIISO8859_2, ECIISO8859_3, ECIISO8859_4,
		ECIISO8859_5, ECIISO8859_6, ECIISO8859_7, ECIISO8859_8, ECIISO8859_9,
		ECIISO8859_10, ECIISO8859_13, ECIISO8859_14, ECIISO8859_15,
		ECIISO8859_16, ECICp1250, ECICp1251, ECICp1252, ECICp1256,
		ECIUTF8, ECIUTF16BE,
	}
	out := make([]*CharsetEncoder, 0, len(order))
	for _, eci := range order {
		if enc, ok := encoders[eci]; ok {
			out = append(out, enc)
		}
	}
	return out
}

// EncoderFor returns the CharsetEncoder for eci, or nil if this core does
// not support it (see the ISO-8859-11 note on encoders above).
func EncoderFor(eci *ECI) *CharsetEncoder {
	return encoders[eci]
}

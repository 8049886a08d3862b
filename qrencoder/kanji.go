package qrencoder

import "golang.org/x/text/encoding/japanese"

// isOnlyDoubleByteKanji reports whether r is representable in Shift_JIS as a
// single two-byte sequence with a lead byte in the double-byte Kanji ranges
// (0x81-0x9F, 0xE0-0xEB) — the same condition the original QR encoder's
// Kanji-mode detector checks, here delegated to golang.org/x/text's Japanese
// codec rather than hand-rolling a Shift_JIS table.
func isOnlyDoubleByteKanji(r rune) bool {
	encoded, err := japanese.ShiftJIS.NewEncoder().String(string(r))
	if err != nil || len(encoded) != 2 {
		return false
	}
	lead := encoded[0]
	return (lead >= 0x81 && lead <= 0x9F) || (lead >= 0xE0 && lead <= 0xEB)
}

package charset

import "testing"

func TestEncoderForISO8859Roundtrip(t *testing.T) {
	enc := EncoderFor(ECIISO8859_7) // Greek
	if enc == nil {
		t.Fatal("EncoderFor(ISO8859_7) = nil")
	}
	greekAlpha := 'Ξ'
	if !enc.CanEncode(greekAlpha) {
		t.Fatalf("CanEncode(%q) = false, want true", greekAlpha)
	}
	encoded, err := enc.Encode(string(greekAlpha))
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if len(encoded) != 1 {
		t.Errorf("ISO-8859-7 encoding of a single rune should be one byte, got %d", len(encoded))
	}
	if enc.CanEncode('あ') {
		t.Error("ISO-8859-7 should not encode a Hiragana character")
	}
}

func TestEncoderForUTF16BERejectsSurrogates(t *testing.T) {
	enc := EncoderFor(ECIUTF16BE)
	if enc == nil {
		t.Fatal("EncoderFor(UTF16BE) = nil")
	}
	if !enc.CanEncode('A') {
		t.Error("UTF-16BE should encode ASCII")
	}
	if enc.CanEncode(0xD800) {
		t.Error("UTF-16BE should reject a lone surrogate code point")
	}
	encoded, err := enc.Encode("A")
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if len(encoded) != 2 || encoded[0] != 0x00 || encoded[1] != 'A' {
		t.Errorf("Encode(\"A\") = %v, want [0x00 0x41]", encoded)
	}
}

func TestEncoderForUTF8AcceptsEverything(t *testing.T) {
	enc := EncoderFor(ECIUTF8)
	if enc == nil {
		t.Fatal("EncoderFor(UTF8) = nil")
	}
	if !enc.CanEncode('あ') {
		t.Error("UTF-8 should encode any valid rune")
	}
	encoded, err := enc.Encode("あ")
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if len(encoded) != 3 {
		t.Errorf("UTF-8 encoding of U+3042 should be 3 bytes, got %d", len(encoded))
	}
}

// ISO-8859-11 has an assigned ECI value but no Thai code page in
// golang.org/x/text/encoding/charmap, so this core deliberately never offers
// it to the segmenter.
func TestEncoderForExcludesISO8859_11(t *testing.T) {
	if enc := EncoderFor(ECIISO8859_11); enc != nil {
		t.Errorf("EncoderFor(ISO8859_11) = %v, want nil", enc)
	}
	for _, enc := range Encoders() {
		if enc.ECI() == ECIISO8859_11 {
			t.Error("Encoders() should not include ISO-8859-11")
		}
	}
}

func TestEncodersOrderIsDeterministic(t *testing.T) {
	first := Encoders()
	second := Encoders()
	if len(first) != len(second) {
		t.Fatalf("Encoders() returned different lengths: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i].ECI() != second[i].ECI() {
			t.Errorf("Encoders()[%d] differs between calls: %s vs %s", i, first[i].Name(), second[i].Name())
		}
	}
}

package version

import "testing"

func TestErrorCorrectionLevelOrdinalAndString(t *testing.T) {
	cases := []struct {
		level ErrorCorrectionLevel
		ord   int
		str   string
	}{
		{LevelL, 0, "L"},
		{LevelM, 1, "M"},
		{LevelQ, 2, "Q"},
		{LevelH, 3, "H"},
	}
	for _, c := range cases {
		if got := c.level.Ordinal(); got != c.ord {
			t.Errorf("%v.Ordinal() = %d, want %d", c.level, got, c.ord)
		}
		if got := c.level.String(); got != c.str {
			t.Errorf("%v.String() = %q, want %q", c.level, got, c.str)
		}
	}
}

func TestParseLevel(t *testing.T) {
	for _, s := range []string{"L", "M", "Q", "H"} {
		level, err := ParseLevel(s)
		if err != nil {
			t.Errorf("ParseLevel(%q): %v", s, err)
			continue
		}
		if level.String() != s {
			t.Errorf("ParseLevel(%q).String() = %q", s, level.String())
		}
	}
	if _, err := ParseLevel("X"); err == nil {
		t.Error("ParseLevel(\"X\") should fail")
	}
}

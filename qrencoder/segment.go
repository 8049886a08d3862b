package qrencoder

// Segment is one post-processed unit of the encoded output: mode header,
// starting rune offset (meaningless for the three control modes), charset
// index (meaningless outside Byte and Eci), and character count.
type Segment struct {
	Mode            Mode
	FromPosition    int
	CharsetIndex    int
	CharacterLength int
}

// reconstructSegments walks the winning edge's prev chain back to the start
// of the string, then builds the forward list of data segments, collapsing
// consecutive same-mode-same-charset edges into a single segment.
func reconstructSegments(arena []edge, best int) []Segment {
	var chain []edge
	for idx := best; idx != -1; idx = arena[idx].prev {
		chain = append(chain, arena[idx])
	}
	// chain is end-to-start; reverse it.
	for i, j := 0, len(chain)-1; i < j; i, j = i+1, j-1 {
		chain[i], chain[j] = chain[j], chain[i]
	}

	var segments []Segment
	for _, e := range chain {
		if n := len(segments); n > 0 {
			last := &segments[n-1]
			sameRun := last.Mode == e.mode &&
				(e.mode != ModeByte || last.CharsetIndex == e.charsetIndex) &&
				last.FromPosition+last.CharacterLength == e.fromPosition
			if sameRun {
				last.CharacterLength += e.length
				continue
			}
		}
		segments = append(segments, Segment{
			Mode:            e.mode,
			FromPosition:    e.fromPosition,
			CharsetIndex:    e.charsetIndex,
			CharacterLength: e.length,
		})
	}
	return segments
}

// postProcess inserts ECI segments ahead of Byte runs that change the active
// charset, optionally prepends/injects an FNC1_FIRST_POSITION segment for
// GS1 symbols, and appends the closing Terminator segment.
func postProcess(segments []Segment, isGS1 bool) []Segment {
	out := make([]Segment, 0, len(segments)+3)
	runningCharset := 0
	sawByte := false

	for _, s := range segments {
		if s.Mode == ModeByte {
			needECI := !sawByte && s.CharsetIndex != 0 || sawByte && s.CharsetIndex != runningCharset
			if needECI {
				out = append(out, Segment{Mode: ModeEci, CharsetIndex: s.CharsetIndex})
			}
			runningCharset = s.CharsetIndex
			sawByte = true
		}
		out = append(out, s)
	}

	if isGS1 {
		containsECI := false
		for _, s := range out {
			if s.Mode == ModeEci {
				containsECI = true
				break
			}
		}
		startsWithECI := len(out) > 0 && out[0].Mode == ModeEci
		if containsECI && !startsWithECI {
			out = append([]Segment{{Mode: ModeEci, CharsetIndex: 0}}, out...)
			startsWithECI = true
		}

		fnc1Pos := 0
		if startsWithECI {
			fnc1Pos = 1
		}
		tail := append([]Segment{{Mode: ModeFnc1First}}, out[fnc1Pos:]...)
		out = append(out[:fnc1Pos:fnc1Pos], tail...)
	}

	out = append(out, Segment{Mode: ModeTerminator})
	return out
}

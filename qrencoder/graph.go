package qrencoder

import (
	"sort"

	"github.com/ericlevine/geocore/charset"
	"github.com/ericlevine/geocore/qrcode/version"
)

// edge is one arena-indexed node of the shortest-path lattice: a run of
// character_length runes consumed in mode starting at fromPosition, using
// charsetIndex (always 0 for non-Byte modes' own identity, though the value
// is inherited from prev so a later Byte edge can still detect an ECI
// switch), with prev pointing at its predecessor edge's arena index (-1 at
// the start of the string).
type edge struct {
	mode         Mode
	fromPosition int
	charsetIndex int
	length       int
	prev         int
	totalSize    int
}

// bucketKey identifies a lattice vertex (position implied by the frontier
// slice index). Non-Byte modes collapse to charset 0 so that only the
// cheapest inherited-charset variant of a given mode survives at each
// position — matching the reduced vertex space the mode ordinals imply.
type bucketKey struct {
	charset int
	mode    int
}

func bucketFor(e edge) bucketKey {
	if e.mode == ModeByte {
		return bucketKey{charset: e.charsetIndex, mode: modeOrdinal(e.mode)}
	}
	return bucketKey{charset: 0, mode: modeOrdinal(e.mode)}
}

// buildGraph runs the single relaxation sweep described for
// encode_specific_version: for each position in increasing order, emit
// every outgoing edge from every surviving predecessor, immediately pruning
// each destination bucket to its minimum-cost edge (ties keep the
// first-seen edge, which the iteration order below guarantees matches the
// position / charset-ascending / mode-ordinal-ascending / discovery-order
// rule).
//
// It returns the edge arena and the index of the best terminal edge, or
// false if no path reaches the end of the string. buildEncoders leaves every
// rune encodable by at least one encoder, so this happens only for an empty
// input, where no edge is ever emitted.
func buildGraph(runes []rune, encoders []*charset.CharsetEncoder, priorityIndex int, v *version.Version) ([]edge, int, bool) {
	n := len(runes)
	arena := make([]edge, 0, n*len(encoders)*4)
	frontier := make([]map[bucketKey]int, n+1)
	for i := range frontier {
		frontier[i] = make(map[bucketKey]int)
	}

	type source struct {
		mode      Mode
		hasPrev   bool
		charset   int
		totalSize int
		prevIdx   int
	}

	emit := func(pos int, src source) {
		r := runes[pos]

		consider := func(cand edge) {
			cand.totalSize = edgeCost(src.hasPrev, src.mode, src.charset, src.totalSize, cand, v, runes, encoders)
			dest := pos + cand.length
			key := bucketFor(cand)
			idx := len(arena)
			arena = append(arena, cand)
			if existing, ok := frontier[dest][key]; ok {
				if cand.totalSize < arena[existing].totalSize {
					frontier[dest][key] = idx
				}
				return
			}
			frontier[dest][key] = idx
		}

		if isOnlyDoubleByteKanji(r) {
			consider(edge{mode: ModeKanji, fromPosition: pos, charsetIndex: src.charset, length: 1, prev: src.prevIdx})
		}
		if isAlphanumeric(r) {
			length := 1
			if pos+1 < n && isAlphanumeric(runes[pos+1]) {
				length = 2
			}
			consider(edge{mode: ModeAlphanumeric, fromPosition: pos, charsetIndex: src.charset, length: length, prev: src.prevIdx})
		}
		if isDigit(r) {
			length := 1
			for length < 3 && pos+length < n && isDigit(runes[pos+length]) {
				length++
			}
			consider(edge{mode: ModeNumeric, fromPosition: pos, charsetIndex: src.charset, length: length, prev: src.prevIdx})
		}

		byteIndexes := candidateByteEncoders(encoders, priorityIndex, r)
		for _, idx := range byteIndexes {
			consider(edge{mode: ModeByte, fromPosition: pos, charsetIndex: idx, length: 1, prev: src.prevIdx})
		}
	}

	for pos := 0; pos < n; pos++ {
		if pos == 0 {
			emit(0, source{hasPrev: false, charset: 0, totalSize: 0, prevIdx: -1})
			continue
		}
		for _, key := range orderedKeys(frontier[pos]) {
			idx := frontier[pos][key]
			e := arena[idx]
			emit(pos, source{mode: e.mode, hasPrev: true, charset: e.charsetIndex, totalSize: e.totalSize, prevIdx: idx})
		}
	}

	best := -1
	for _, key := range orderedKeys(frontier[n]) {
		idx := frontier[n][key]
		if best == -1 || arena[idx].totalSize < arena[best].totalSize {
			best = idx
		}
	}
	return arena, best, best != -1
}

// orderedKeys returns a bucket map's keys sorted charset-ascending then
// mode-ordinal-ascending, the traversal order the ordering guarantee names.
func orderedKeys(m map[bucketKey]int) []bucketKey {
	keys := make([]bucketKey, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].charset != keys[j].charset {
			return keys[i].charset < keys[j].charset
		}
		return keys[i].mode < keys[j].mode
	})
	return keys
}

// candidateByteEncoders returns, in ascending index order, which encoders
// can represent r as a Byte edge. When priorityIndex names an encoder that
// can encode r, it alone is returned.
func candidateByteEncoders(encoders []*charset.CharsetEncoder, priorityIndex int, r rune) []int {
	if priorityIndex >= 0 && encoders[priorityIndex].CanEncode(r) {
		return []int{priorityIndex}
	}
	var out []int
	for i, enc := range encoders {
		if enc.CanEncode(r) {
			out = append(out, i)
		}
	}
	return out
}

// eciSwitchNeeded reports whether emitting cand (already known to be a Byte
// edge) from a predecessor with the given presence/charset requires an ECI
// control segment ahead of it.
func eciSwitchNeeded(hasPrev bool, prevCharset int, cand edge) bool {
	if cand.mode != ModeByte {
		return false
	}
	if !hasPrev {
		return cand.charsetIndex != 0
	}
	return cand.charsetIndex != prevCharset
}

// edgeCost computes cand's cached_total_size given the predecessor state it
// was emitted from.
func edgeCost(hasPrev bool, prevMode Mode, prevCharset, prevTotal int, cand edge, v *version.Version, runes []rune, encoders []*charset.CharsetEncoder) int {
	switchNeeded := eciSwitchNeeded(hasPrev, prevCharset, cand)
	total := prevTotal

	headerNeeded := !hasPrev || prevMode != cand.mode || switchNeeded
	if headerNeeded {
		total += 4 + characterCountBits(cand.mode, v)
	}

	switch cand.mode {
	case ModeKanji:
		total += 13
	case ModeAlphanumeric:
		if cand.length == 1 {
			total += 6
		} else {
			total += 11
		}
	case ModeNumeric:
		total += [4]int{0, 4, 7, 10}[cand.length]
	case ModeByte:
		encoder := encoders[cand.charsetIndex]
		substring := string(runes[cand.fromPosition : cand.fromPosition+cand.length])
		encoded, _ := encoder.Encode(substring)
		total += 8 * len(encoded)
		if switchNeeded {
			total += 4 + 8
		}
	}
	return total
}

// Package pattern scores how closely a run of observed bar/space widths
// matches a target guard pattern. It is the fixed-point counterpart of the
// float variance used by the teacher's one-dimensional and PDF417 readers:
// the scale factor is an ABI constant, not a tuning knob, so every caller
// that compares raw scores (the PDF417 guard-pattern search) sees the same
// numbers regardless of platform float behavior.
package pattern

import "math"

// IntegerMathShift is the fixed-point scale applied to every returned
// variance: a score of 1<<IntegerMathShift represents 100% variance.
const IntegerMathShift = 8

const unit = 1 << IntegerMathShift

// NoMatch is returned by Variance when counters cannot match pattern: too
// few pixels, or a counter outside the given individual-counter tolerance.
const NoMatch = math.MaxUint32

// Variance reports the average variance between the observed run lengths in
// counters and the target pattern, scaled by 1<<IntegerMathShift. It returns
// NoMatch when the total pixel count is smaller than the pattern's module
// count, or when any single counter's variance exceeds
// maxIndividual*unitBarWidth.
//
// counters and pattern must have equal, positive length.
func Variance(counters, pattern []uint32, maxIndividual uint32) uint32 {
	var total, patternLength uint64
	for i := range counters {
		total += uint64(counters[i])
		patternLength += uint64(pattern[i])
	}
	if total < patternLength {
		// Fewer pixels than modules: not enough resolution to match reliably.
		return NoMatch
	}

	unitBarWidth := (total << IntegerMathShift) / patternLength
	maxIndividualVariance := (uint64(maxIndividual) * unitBarWidth) >> IntegerMathShift

	var totalVariance uint64
	for i := range counters {
		scaledCounter := uint64(counters[i]) << IntegerMathShift
		scaledPattern := uint64(pattern[i]) * unitBarWidth
		variance := scaledCounter - scaledPattern
		if scaledPattern > scaledCounter {
			variance = scaledPattern - scaledCounter
		}
		if variance > maxIndividualVariance {
			return NoMatch
		}
		totalVariance += variance
	}

	return uint32(totalVariance / total)
}

// Package pdf417vertex locates the four vertices of a PDF417 symbol's start
// and stop guard patterns in a binary image. It is grounded on the teacher's
// one-shot row-stepping scanner, reduced to the single-symbol, two-rotation
// contract this core exposes: try upright, then retry once against a 180°
// rotated view of the same bitmap.
package pdf417vertex

import (
	"github.com/ericlevine/geocore"
	"github.com/ericlevine/geocore/pattern"
)

var (
	maxAvgVariance        = uint32(42 * (1 << pattern.IntegerMathShift) / 100)
	maxIndividualVariance = uint32(8 * (1 << pattern.IntegerMathShift) / 10)
)

const (
	maxStopPatternHeightVariance = 0.5
	maxPixelDrift                = 3
	maxPatternDrift              = 5
	skippedRowCountMax           = 50
	rowStep                      = 5
	barcodeMinHeight             = 10

	// modulesInCodeword is the minimum codeword width, in modules, below
	// which a detected symbol is rejected as unreliable.
	modulesInCodeword = 17

	// stopPatternModules is the module count of the stop guard pattern,
	// used to rescale its measured pixel width onto the codeword's
	// 17-module unit before averaging with the start pattern's width.
	stopPatternModules = 18
)

// startPattern is the bar/space run-length sequence bounding the top of a
// PDF417 symbol: 8 black, 1 white, 1 black, 1 white, 1 black, 1 white, 1
// black, 3 white.
var startPattern = [8]uint32{8, 1, 1, 1, 1, 1, 1, 3}

// stopPattern is the bar/space run-length sequence bounding the bottom of a
// PDF417 symbol.
var stopPattern = [9]uint32{7, 1, 1, 3, 1, 1, 1, 2, 1}

var (
	indexesStartPattern = [4]int{0, 4, 1, 5}
	indexesStopPattern  = [4]int{6, 2, 7, 3}
)

// Result is the outcome of a successful Detect: eight vertex points and the
// estimated width, in pixels, of a single 17-module codeword column.
//
// Vertex index map: 0 top-left, 1 bottom-left, 2 top-right, 3 bottom-right —
// the barcode's outer corners; 4-7 are the corresponding inner corners of
// the codeword area, in the same order.
type Result struct {
	Vertices      [8]geocore.Point
	CodewordWidth float64
}

// rotatedView virtualises a 180° rotation of image without copying it.
type rotatedView struct {
	image geocore.BinaryImage
}

func (r rotatedView) Get(x, y int) bool {
	return r.image.Get(r.image.Width()-1-x, r.image.Height()-1-y)
}
func (r rotatedView) Width() int  { return r.image.Width() }
func (r rotatedView) Height() int { return r.image.Height() }

// Detect locates a PDF417 symbol's vertices in image. When tryHarder is set,
// short candidate matches that fall below the minimum guard-pattern height
// are treated as noise and the scan resumes past them rather than failing
// outright.
//
// If the upright scan fails to find a top-left vertex, Detect retries once
// against a 180°-rotated view of image; the returned vertices are expressed
// in whichever view actually matched; the caller cannot tell which view
// matched from the result alone, only from the vertex layout itself being
// self-consistent.
func Detect(image geocore.BinaryImage, tryHarder bool) (Result, error) {
	vertices, width, ok := findVertices(image, 0, 0, tryHarder)
	if vertices[0] == nil {
		vertices, width, ok = findVertices(rotatedView{image}, 0, 0, tryHarder)
		if vertices[0] == nil {
			return Result{}, geocore.ErrNotFound
		}
	}

	if !ok || width < modulesInCodeword {
		return Result{}, geocore.ErrNotFound
	}

	var out [8]geocore.Point
	for i, p := range vertices {
		if p == nil {
			return Result{}, geocore.ErrNotFound
		}
		out[i] = *p
	}
	return Result{Vertices: out, CodewordWidth: width}, nil
}

// rowWidth derives the horizontal pixel span of a single guard-pattern
// sighting from the outer-to-inner distance measured on its top and bottom
// rows (tmp[0..3] as returned by findRowsWithPattern), averaging the two
// when both are present.
func rowWidth(tmp [4]*geocore.Point) (float64, bool) {
	switch {
	case tmp[0] != nil && tmp[1] != nil && tmp[2] != nil && tmp[3] != nil:
		return (geocore.Distance(*tmp[0], *tmp[1]) + geocore.Distance(*tmp[2], *tmp[3])) / 2, true
	case tmp[0] != nil && tmp[1] != nil:
		return geocore.Distance(*tmp[0], *tmp[1]), true
	default:
		return 0, false
	}
}

// computeCodewordWidth averages the start pattern's measured row width with
// the stop pattern's, the latter rescaled from its own 18-module span onto
// the 17-module codeword unit.
func computeCodewordWidth(wStart float64, wStartOK bool, wStop float64, wStopOK bool) (float64, bool) {
	if !wStartOK {
		return 0, false
	}
	if !wStopOK {
		return wStart, true
	}
	return (wStart + wStop*modulesInCodeword/stopPatternModules) / 2, true
}

// findVertices locates the eight vertices of a symbol's start and stop
// guard patterns using them as locators, along with the measured codeword
// width. Vertex entries are nil for any corner that could not be found.
func findVertices(image geocore.BinaryImage, startRow, startColumn int, tryHarder bool) ([8]*geocore.Point, float64, bool) {
	height := image.Height()
	width := image.Width()

	var result [8]*geocore.Point
	minHeight := barcodeMinHeight

	startTmp := findRowsWithPattern(image, height, width, startRow, startColumn, minHeight, startPattern[:], tryHarder)
	copyToResult(&result, startTmp, indexesStartPattern)
	wStart, wStartOK := rowWidth(startTmp)

	if result[4] != nil {
		startColumn = int(result[4].X)
		startRow = int(result[4].Y)
		if result[5] != nil {
			startPatternHeight := result[5].Y - result[4].Y
			minHeight = maxInt(int(startPatternHeight*maxStopPatternHeightVariance), barcodeMinHeight)
		}
	}

	stopTmp := findRowsWithPattern(image, height, width, startRow, startColumn, minHeight, stopPattern[:], tryHarder)
	copyToResult(&result, stopTmp, indexesStopPattern)
	wStop, wStopOK := rowWidth(stopTmp)

	width64, ok := computeCodewordWidth(wStart, wStartOK, wStop, wStopOK)
	return result, width64, ok
}

func copyToResult(result *[8]*geocore.Point, tmpResult [4]*geocore.Point, destinationIndexes [4]int) {
	for i, idx := range destinationIndexes {
		result[idx] = tmpResult[i]
	}
}

// findRowsWithPattern finds the topmost and bottommost rows in which pattern
// occurs starting near (startColumn, startRow), returning the pattern's
// horizontal offsets on each of those two rows.
func findRowsWithPattern(image geocore.BinaryImage, height, width, startRow, startColumn, minHeight int, targetPattern []uint32, tryHarder bool) [4]*geocore.Point {
	var result [4]*geocore.Point
	found := false
	counters := make([]uint32, len(targetPattern))

	for ; startRow < height; startRow += rowStep {
		loc := findGuardPattern(image, startColumn, startRow, width, targetPattern, counters)
		if loc != nil {
			for startRow > 0 {
				startRow--
				previousRowLoc := findGuardPattern(image, startColumn, startRow, width, targetPattern, counters)
				if previousRowLoc != nil {
					loc = previousRowLoc
				} else {
					startRow++
					break
				}
			}
			result[0] = &geocore.Point{X: float64(loc[0]), Y: float64(startRow)}
			result[1] = &geocore.Point{X: float64(loc[1]), Y: float64(startRow)}
			found = true
			break
		}
	}

	stopRow := startRow + 1
	if found {
		skippedRowCount := 0
		previousRowLoc := [2]int{int(result[0].X), int(result[1].X)}
		for ; stopRow < height; stopRow++ {
			loc := findGuardPattern(image, previousRowLoc[0], stopRow, width, targetPattern, counters)
			if loc != nil &&
				iabs(previousRowLoc[0]-loc[0]) < maxPatternDrift &&
				iabs(previousRowLoc[1]-loc[1]) < maxPatternDrift {
				previousRowLoc = [2]int{loc[0], loc[1]}
				skippedRowCount = 0
			} else {
				if skippedRowCount > skippedRowCountMax {
					break
				}
				skippedRowCount++
			}
		}
		stopRow -= skippedRowCount + 1
		result[2] = &geocore.Point{X: float64(previousRowLoc[0]), Y: float64(stopRow)}
		result[3] = &geocore.Point{X: float64(previousRowLoc[1]), Y: float64(stopRow)}
	}

	if stopRow-startRow < minHeight {
		if tryHarder && found {
			// Likely noise rather than a real guard pattern: resume the
			// search past the rejected match instead of failing outright.
			return findRowsWithPattern(image, height, width, stopRow+1+rowStep, startColumn, minHeight, targetPattern, tryHarder)
		}
		return [4]*geocore.Point{}
	}

	return result
}

// findGuardPattern searches row for targetPattern starting at column,
// returning its horizontal [start, end] pixel offsets, or nil if no window
// in the row matches within tolerance.
func findGuardPattern(image geocore.BinaryImage, column, row, width int, targetPattern []uint32, counters []uint32) []int {
	for i := range counters {
		counters[i] = 0
	}
	patternStart := column
	pixelDrift := 0

	for patternStart > 0 && pixelDrift < maxPixelDrift && image.Get(patternStart, row) {
		patternStart--
		pixelDrift++
	}

	x := patternStart
	counterPosition := 0
	patternLength := len(targetPattern)
	isWhite := false

	for ; x < width; x++ {
		pixel := image.Get(x, row)
		if pixel != isWhite {
			counters[counterPosition]++
		} else {
			if counterPosition == patternLength-1 {
				if pattern.Variance(counters, targetPattern, maxIndividualVariance) < maxAvgVariance {
					return []int{patternStart, x}
				}
				patternStart += int(counters[0] + counters[1])
				copy(counters, counters[2:counterPosition+1])
				counters[counterPosition-1] = 0
				counters[counterPosition] = 0
				counterPosition--
			} else {
				counterPosition++
			}
			counters[counterPosition] = 1
			isWhite = !isWhite
		}
	}

	if counterPosition == patternLength-1 &&
		pattern.Variance(counters, targetPattern, maxIndividualVariance) < maxAvgVariance {
		return []int{patternStart, x - 1}
	}

	return nil
}

func iabs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

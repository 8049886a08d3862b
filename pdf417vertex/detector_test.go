package pdf417vertex

import (
	"testing"

	"github.com/ericlevine/geocore/bitutil"
)

// drawGuardPattern paints a single guard pattern's bar/space runs, scaled by
// moduleSize pixels per module, into row y starting at column xStart.
func drawGuardPattern(bm *bitutil.BitMatrix, y, xStart, moduleSize int, modules []uint32) {
	black := true
	x := xStart
	for _, m := range modules {
		if black {
			for px := x; px < x+int(m)*moduleSize; px++ {
				bm.Set(px, y)
			}
		}
		x += int(m) * moduleSize
		black = !black
	}
}

// syntheticSymbol builds a bitmap containing just the start and stop guard
// patterns, rendered pixel-accurate at the given module size, replicated
// down every row — the constant-column guard bars of a real PDF417 symbol,
// without any codeword content between them. The stop pattern follows the
// start pattern directly, so the start pattern's closing space keeps its
// 3-module width, and a 2-module quiet zone follows the stop pattern.
func syntheticSymbol(moduleSize, height int) *bitutil.BitMatrix {
	startWidth := 0
	for _, m := range startPattern {
		startWidth += int(m)
	}
	stopWidth := 0
	for _, m := range stopPattern {
		stopWidth += int(m)
	}
	quietModules := 2
	width := (startWidth + stopWidth + quietModules) * moduleSize

	bm := bitutil.NewBitMatrixWithSize(width, height)
	stopStart := startWidth * moduleSize
	for y := 0; y < height; y++ {
		drawGuardPattern(bm, y, 0, moduleSize, startPattern[:])
		drawGuardPattern(bm, y, stopStart, moduleSize, stopPattern[:])
	}
	return bm
}

func TestDetectFindsUprightSymbol(t *testing.T) {
	bm := syntheticSymbol(3, 30)
	result, err := Detect(bm, false)
	if err != nil {
		t.Fatalf("Detect: %v", err)
	}
	if result.CodewordWidth < 17*3 {
		t.Errorf("CodewordWidth = %v, want >= 51", result.CodewordWidth)
	}
	for i, v := range result.Vertices {
		if v.X < 0 || v.Y < 0 || v.X >= float64(bm.Width()) || v.Y >= float64(bm.Height()) {
			t.Errorf("vertex %d out of bounds: %+v", i, v)
		}
	}
}

func TestDetectFindsRotatedSymbol(t *testing.T) {
	bm := syntheticSymbol(3, 30)
	bm.Rotate90()
	bm.Rotate90()

	result, err := Detect(bm, false)
	if err != nil {
		t.Fatalf("Detect on 180-rotated symbol: %v", err)
	}
	if result.CodewordWidth < 17*3 {
		t.Errorf("CodewordWidth = %v, want >= 51", result.CodewordWidth)
	}
}

func TestDetectFailsOnBlankImage(t *testing.T) {
	bm := bitutil.NewBitMatrixWithSize(100, 30)
	if _, err := Detect(bm, false); err == nil {
		t.Error("Detect on blank image: expected error")
	}
}

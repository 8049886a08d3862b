package geometry

import (
	"testing"

	"github.com/ericlevine/geocore"
)

// boolImage is a minimal geocore.BinaryImage backed by a 2D bool slice, used
// to build small synthetic fixtures without pulling in bitutil.BitMatrix.
type boolImage [][]bool

func (b boolImage) Get(x, y int) bool { return b[y][x] }
func (b boolImage) Width() int        { return len(b[0]) }
func (b boolImage) Height() int       { return len(b) }

// squareFixture returns a 30x30 white image with a black square border from
// (margin, margin) to (30-margin-1, 30-margin-1), all-white inside.
func squareFixture(margin int) boolImage {
	const n = 30
	img := make(boolImage, n)
	for y := range img {
		img[y] = make([]bool, n)
	}
	for y := margin; y < n-margin; y++ {
		for x := margin; x < n-margin; x++ {
			onBorder := x == margin || x == n-margin-1 || y == margin || y == n-margin-1
			img[y][x] = onBorder
		}
	}
	return img
}

func TestDetectFindsSquareBorder(t *testing.T) {
	img := squareFixture(5)
	d, err := New(img, false)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	corners, err := d.Detect()
	if err != nil {
		t.Fatalf("Detect: %v", err)
	}
	for i, c := range corners {
		if c.X < 0 || c.Y < 0 || c.X >= 30 || c.Y >= 30 {
			t.Errorf("corner %d out of bounds: %+v", i, c)
		}
	}
	// Corners should roughly straddle the drawn 5..24 border.
	top, left, right, bottom := corners[0], corners[1], corners[2], corners[3]
	if !(top.Y < bottom.Y) {
		t.Errorf("expected topmost corner above bottommost: top=%+v bottom=%+v", top, bottom)
	}
	if !(left.X < right.X) {
		t.Errorf("expected leftmost corner left of rightmost: left=%+v right=%+v", left, right)
	}
}

func TestDetectFailsOnBlankImage(t *testing.T) {
	const n = 30
	img := make(boolImage, n)
	for y := range img {
		img[y] = make([]bool, n)
	}
	d, err := New(img, false)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if _, err := d.Detect(); err != geocore.ErrNotFound {
		t.Errorf("Detect on blank image = %v, want ErrNotFound", err)
	}
}

func TestNewWithInitRejectsOutOfBoundsStart(t *testing.T) {
	img := squareFixture(5)
	if _, err := NewWithInit(img, 10, 1, 1, false); err != geocore.ErrNotFound {
		t.Errorf("NewWithInit near edge = %v, want ErrNotFound", err)
	}
}

func TestIsCornerPointPanicsOnMismatchedAxis(t *testing.T) {
	img := squareFixture(5)
	d, err := New(img, false)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer func() {
		r := recover()
		if r == nil {
			t.Fatal("expected panic for mismatched axis points")
		}
		if _, ok := r.(*geocore.InternalError); !ok {
			t.Errorf("recovered value = %#v, want *geocore.InternalError", r)
		}
	}()
	d.isCornerPoint(geocore.Point{X: 1, Y: 1}, geocore.Point{X: 2, Y: 2})
}

// noisyBorderFixture returns an (n x n) white image with a black square
// border from (margin, margin) to (n-margin-1, n-margin-1), plus
// deterministic stray black pixels scattered through the white interior at
// roughly 1-in-period density (period=50 gives ~2%) on every row and column
// a border-expansion scan line can cross, simulating the per-side scan noise
// try-harder mode must tolerate.
func noisyBorderFixture(n, margin, period int) boolImage {
	img := make(boolImage, n)
	for y := range img {
		img[y] = make([]bool, n)
	}
	for y := margin; y < n-margin; y++ {
		for x := margin; x < n-margin; x++ {
			onBorder := x == margin || x == n-margin-1 || y == margin || y == n-margin-1
			img[y][x] = onBorder
		}
	}
	for y := margin + 2; y < n-margin-2; y++ {
		for x := margin + 2; x < n-margin-2; x++ {
			if (x+y*7)%period == 0 {
				img[y][x] = true
			}
		}
	}
	return img
}

func TestTryHarderTolerance(t *testing.T) {
	const n = 60
	img := noisyBorderFixture(n, 8, 50)

	d, err := New(img, true)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	corners, err := d.Detect()
	if err != nil {
		t.Fatalf("Detect with try-harder on ~2%%-noisy borders: %v", err)
	}
	for i, c := range corners {
		if c.X < 0 || c.Y < 0 || c.X >= n || c.Y >= n {
			t.Errorf("corner %d out of bounds: %+v", i, c)
		}
	}
	top, left, right, bottom := corners[0], corners[1], corners[2], corners[3]
	if !(top.Y < bottom.Y) {
		t.Errorf("expected topmost corner above bottommost: top=%+v bottom=%+v", top, bottom)
	}
	if !(left.X < right.X) {
		t.Errorf("expected leftmost corner left of rightmost: left=%+v right=%+v", left, right)
	}
}

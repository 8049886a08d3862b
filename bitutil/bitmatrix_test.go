package bitutil

import "testing"

func TestBitMatrixGetSet(t *testing.T) {
	bm := NewBitMatrixWithSize(10, 10)
	bm.Set(3, 5)
	if !bm.Get(3, 5) {
		t.Error("bit (3,5) should be set")
	}
	if bm.Get(5, 3) {
		t.Error("bit (5,3) should not be set")
	}
}

func TestBitMatrixFlip(t *testing.T) {
	bm := NewBitMatrixWithSize(4, 4)
	bm.Flip(1, 2)
	if !bm.Get(1, 2) {
		t.Error("bit should be set after flip")
	}
	bm.Flip(1, 2)
	if bm.Get(1, 2) {
		t.Error("bit should be unset after double flip")
	}
}

func TestBitMatrixUnset(t *testing.T) {
	bm := NewBitMatrixWithSize(4, 4)
	bm.Set(2, 3)
	bm.Unset(2, 3)
	if bm.Get(2, 3) {
		t.Error("bit should be unset")
	}
}

func TestBitMatrixSetRegion(t *testing.T) {
	bm := NewBitMatrixWithSize(8, 8)
	bm.SetRegion(2, 2, 4, 4)
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			expected := x >= 2 && x < 6 && y >= 2 && y < 6
			if bm.Get(x, y) != expected {
				t.Errorf("(%d,%d) = %v, want %v", x, y, bm.Get(x, y), expected)
			}
		}
	}
}

func TestBitMatrixRotate90(t *testing.T) {
	bm := NewBitMatrixWithSize(4, 3)
	bm.Set(3, 0) // top-right
	bm.Rotate90()
	// After 90 CCW: (3,0) -> (0,0) for a 3x4 matrix
	if bm.Width() != 3 || bm.Height() != 4 {
		t.Errorf("dimensions after 90 rotation: %dx%d, want 3x4", bm.Width(), bm.Height())
	}
	if !bm.Get(0, 0) {
		t.Error("(0,0) should be set after 90 rotation")
	}
}

func TestBitMatrixEnclosingRectangle(t *testing.T) {
	bm := NewBitMatrixWithSize(10, 10)
	bm.Set(3, 2)
	bm.Set(7, 8)
	rect := bm.EnclosingRectangle()
	if rect == nil {
		t.Fatal("rect should not be nil")
	}
	if rect[0] != 3 || rect[1] != 2 || rect[2] != 5 || rect[3] != 7 {
		t.Errorf("rect = %v, want [3 2 5 7]", rect)
	}
}

func TestBitMatrixTopLeftOnBit(t *testing.T) {
	bm := NewBitMatrixWithSize(10, 10)
	bm.Set(5, 3)
	pt := bm.TopLeftOnBit()
	if pt == nil || pt[0] != 5 || pt[1] != 3 {
		t.Errorf("TopLeftOnBit = %v, want [5 3]", pt)
	}
}

func TestBitMatrixClone(t *testing.T) {
	bm := NewBitMatrixWithSize(8, 8)
	bm.Set(1, 1)
	clone := bm.Clone()
	clone.Set(2, 2)
	if bm.Get(2, 2) {
		t.Error("modifying clone should not affect original")
	}
}

func TestBitMatrixEquals(t *testing.T) {
	a := NewBitMatrixWithSize(4, 4)
	b := NewBitMatrixWithSize(4, 4)
	a.Set(1, 2)
	b.Set(1, 2)
	if !a.Equals(b) {
		t.Error("equal matrices should be equal")
	}
	b.Set(3, 3)
	if a.Equals(b) {
		t.Error("different matrices should not be equal")
	}
}

func TestParseBoolMatrix(t *testing.T) {
	image := [][]bool{
		{false, true, false},
		{false, false, true},
	}
	bm := ParseBoolMatrix(image)
	if bm.Width() != 3 || bm.Height() != 2 {
		t.Fatalf("dimensions = %dx%d, want 3x2", bm.Width(), bm.Height())
	}
	for y, row := range image {
		for x, want := range row {
			if got := bm.Get(x, y); got != want {
				t.Errorf("(%d,%d) = %v, want %v", x, y, got, want)
			}
		}
	}
}

func TestParseStringMatrix(t *testing.T) {
	repr := "X . \n. X \n"
	bm := ParseStringMatrix(repr, "X ", ". ")
	if bm.Width() != 2 || bm.Height() != 2 {
		t.Fatalf("dimensions = %dx%d, want 2x2", bm.Width(), bm.Height())
	}
	if !bm.Get(0, 0) || bm.Get(1, 0) || bm.Get(0, 1) || !bm.Get(1, 1) {
		t.Errorf("parsed matrix does not match diagonal pattern in %q", repr)
	}
}

func TestBitMatrixFlipAll(t *testing.T) {
	bm := NewBitMatrixWithSize(4, 4)
	bm.Set(1, 1)
	bm.FlipAll()
	if bm.Get(1, 1) {
		t.Error("previously set bit should be unset after FlipAll")
	}
	if !bm.Get(0, 0) {
		t.Error("previously unset bit should be set after FlipAll")
	}
}

func TestBitMatrixBottomRightOnBit(t *testing.T) {
	bm := NewBitMatrixWithSize(10, 10)
	bm.Set(2, 1)
	bm.Set(7, 8)
	pt := bm.BottomRightOnBit()
	if pt == nil || pt[0] != 7 || pt[1] != 8 {
		t.Errorf("BottomRightOnBit = %v, want [7 8]", pt)
	}
}

func TestBitMatrixRowSize(t *testing.T) {
	bm := NewBitMatrixWithSize(40, 2)
	if bm.RowSize() != 2 {
		t.Errorf("RowSize = %d, want 2 (ceil(40/32))", bm.RowSize())
	}
}

func TestBitMatrixString(t *testing.T) {
	bm := NewBitMatrixWithSize(2, 1)
	bm.Set(0, 0)
	if got, want := bm.String(), "X   \n"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
	if got, want := bm.StringWithChars("#", "."), "#.\n"; got != want {
		t.Errorf("StringWithChars = %q, want %q", got, want)
	}
}

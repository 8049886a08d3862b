// Package geometry locates the smallest white-bordered axis-aligned
// rectangle surrounding a candidate symbol in a binary image and refines its
// four corners. It is a generalization of the teacher's Data Matrix and
// Aztec white-rectangle expansion: those callers hard-code a quick,
// single-pixel-tolerant border test; this one also supports a try-harder
// mode that tolerates a percentage of stray black pixels per side and
// validates refined corners with a linear black-pixel census.
package geometry

import (
	"math"

	"github.com/ericlevine/geocore"
)

// InitSize is the default side length of the initial search square, which
// extends InitSize/2 pixels from the center in each direction.
const InitSize = 10

// corr nudges refined corners slightly inward, off the quiet-zone border.
const corr = 1.0

// WhiteRectangleDetector expands a centered axis-aligned rectangle outward
// until every side meets a (possibly noisy) white border, then refines four
// diagonal probes into corner points.
type WhiteRectangleDetector struct {
	image     geocore.BinaryImage
	width     int
	height    int
	tryHarder bool

	leftInit, rightInit, upInit, downInit int
}

// New constructs a detector with the default initial search size, centered
// on the image. It fails immediately if that initial square falls outside
// the image bounds.
func New(image geocore.BinaryImage, tryHarder bool) (*WhiteRectangleDetector, error) {
	return NewWithInit(image, InitSize, image.Width()/2, image.Height()/2, tryHarder)
}

// NewWithInit constructs a detector with an explicit initial size and
// center point.
func NewWithInit(image geocore.BinaryImage, initSize, cx, cy int, tryHarder bool) (*WhiteRectangleDetector, error) {
	half := initSize / 2
	w, h := image.Width(), image.Height()

	left := cx - half
	right := cx + half
	up := cy - half
	down := cy + half

	if up < 0 || left < 0 || down >= h || right >= w {
		return nil, geocore.ErrNotFound
	}
	return &WhiteRectangleDetector{
		image: image, width: w, height: h, tryHarder: tryHarder,
		leftInit: left, rightInit: right, upInit: up, downInit: down,
	}, nil
}

// Detect expands the search rectangle until each side meets white, then
// returns the four corners ordered [topmost, leftmost, rightmost,
// bottommost]. Points 0 and 3 are diagonal opposites, as are 1 and 2.
func (d *WhiteRectangleDetector) Detect() ([4]geocore.Point, error) {
	var zero [4]geocore.Point

	left, right, up, down := d.leftInit, d.rightInit, d.upInit, d.downInit

	var blackSeenOnRight, blackSeenOnBottom, blackSeenOnLeft, blackSeenOnTop bool
	sizeExceeded := false

	for {
		anyBlackOnBorder := false

		// Right side: expand while black seen, or not yet sticky.
		for (d.containsBlack(up, down, right, false) || !blackSeenOnRight) && right < d.width {
			if d.containsBlack(up, down, right, false) {
				right++
				anyBlackOnBorder = true
				blackSeenOnRight = true
			} else {
				right++
			}
		}
		if right >= d.width {
			sizeExceeded = true
			break
		}

		// Bottom side.
		for (d.containsBlack(left, right, down, true) || !blackSeenOnBottom) && down < d.height {
			if d.containsBlack(left, right, down, true) {
				down++
				anyBlackOnBorder = true
				blackSeenOnBottom = true
			} else {
				down++
			}
		}
		if down >= d.height {
			sizeExceeded = true
			break
		}

		// Left side.
		for (d.containsBlack(up, down, left, false) || !blackSeenOnLeft) && left >= 0 {
			if d.containsBlack(up, down, left, false) {
				left--
				anyBlackOnBorder = true
				blackSeenOnLeft = true
			} else {
				left--
			}
		}
		if left < 0 {
			sizeExceeded = true
			break
		}

		// Top side.
		for (d.containsBlack(left, right, up, true) || !blackSeenOnTop) && up >= 0 {
			if d.containsBlack(left, right, up, true) {
				up--
				anyBlackOnBorder = true
				blackSeenOnTop = true
			} else {
				up--
			}
		}
		if up < 0 {
			sizeExceeded = true
			break
		}

		if !anyBlackOnBorder {
			break
		}
	}

	anySticky := blackSeenOnRight || blackSeenOnBottom || blackSeenOnLeft || blackSeenOnTop
	if sizeExceeded || !anySticky {
		return zero, geocore.ErrNotFound
	}

	upRight, ok := d.findEdgePoint(left, down, right, up)
	if !ok {
		return zero, geocore.ErrNotFound
	}
	downRight, ok := d.findEdgePoint(left, up, right, down)
	if !ok {
		return zero, geocore.ErrNotFound
	}
	downLeft, ok := d.findEdgePoint(right, up, left, down)
	if !ok {
		return zero, geocore.ErrNotFound
	}
	upLeft, ok := d.findEdgePoint(right, down, left, up)
	if !ok {
		return zero, geocore.ErrNotFound
	}

	return d.centerEdges(upLeft, upRight, downLeft, downRight), nil
}

// containsBlack scans the closed pixel range [a..b] along the fixed axis
// for a black pixel. When horizontal is true, fixed is the y coordinate and
// a..b are x values; otherwise fixed is x and a..b are y values. In
// try-harder mode a side only counts as "not white" once the cumulative
// black count exceeds 2% of the side's length.
func (d *WhiteRectangleDetector) containsBlack(a, b, fixed int, horizontal bool) bool {
	tolerance := 0
	if d.tryHarder {
		tolerance = int(math.Round(float64(iabs(b-a)) * 2.0 / 100.0))
	}
	count := 0
	for v := a; v <= b; v++ {
		var x, y int
		if horizontal {
			x, y = v, fixed
		} else {
			x, y = fixed, v
		}
		if x < 0 || x >= d.width || y < 0 || y >= d.height {
			continue
		}
		if d.image.Get(x, y) {
			count++
			if count > tolerance {
				return true
			}
		}
	}
	return false
}

// findEdgePoint walks parallel diagonals from edge toward opp, stepping i =
// 1, 2, 3, ... along the x axis and j = 2, 4, 6, ... along the y axis (j
// covers twice the slope of i — the geometric rationale is not documented
// upstream, and the step pattern is preserved literally rather than
// simplified to a single step size). It returns the first point found that
// satisfies the mode's acceptance rule.
func (d *WhiteRectangleDetector) findEdgePoint(edgeX, edgeY, oppX, oppY int) (geocore.Point, bool) {
	maxSize := iabs(oppX - edgeX)
	verticalMaxSize := iabs(oppY - edgeY)
	sx := sign(oppX - edgeX)
	sy := sign(oppY - edgeY)

	var precheckDone bool

	for i, j := 1, 2; j < maxSize/2 && j < verticalMaxSize/2; i, j = i+1, j+2 {
		if d.tryHarder && !precheckDone {
			precheckDone = true
			if !d.precheckEdges(edgeX, edgeY, sx, sy) {
				return geocore.Point{}, false
			}
		}

		// Diagonal probe: from (edge shifted i on x) toward (edge shifted j on y).
		a, aFound := d.getBlackPointOnSegment(
			float64(edgeX+i*sx), float64(edgeY),
			float64(edgeX), float64(edgeY+j*sy),
		)
		// Short horizontal probe at the far row.
		a1, a1Found := d.getBlackPointOnSegment(
			float64(edgeX), float64(edgeY+j*sy),
			float64(edgeX+i*sx), float64(edgeY+j*sy),
		)
		// Short vertical probe at the far column.
		a2, a2Found := d.getBlackPointOnSegment(
			float64(edgeX+i*sx), float64(edgeY),
			float64(edgeX+i*sx), float64(edgeY+j*sy),
		)

		if !d.tryHarder {
			if aFound {
				return a, true
			}
			continue
		}

		if a1Found && a2Found {
			if !d.inBlackModule(a1, a2) {
				return d.decentralise(geocore.Midpoint(a1, a2), float64(edgeX), float64(edgeY), sx, sy), true
			}
			if a1.X == float64(edgeX) || a1.Y == float64(edgeY) {
				return a1, true
			}
			if a2.X == float64(edgeX) || a2.Y == float64(edgeY) {
				return a2, true
			}
			return geocore.Point{
				X: math.Max(math.Min(a1.X, a2.X), math.Min(float64(edgeX), float64(oppX))),
				Y: math.Max(math.Min(a1.Y, a2.Y), math.Min(float64(edgeY), float64(oppY))),
			}, true
		}
		if aFound {
			return a, true
		}
	}
	return geocore.Point{}, false
}

// precheckEdges validates, in try-harder mode, that the border black points
// nearest edge on the two edges emanating from it are genuine corners
// rather than scan noise.
func (d *WhiteRectangleDetector) precheckEdges(edgeX, edgeY, sx, sy int) bool {
	horizontalNeighbor, hOK := d.getBlackPointOnSegment(
		float64(edgeX), float64(edgeY), float64(edgeX+4*sx), float64(edgeY))
	verticalNeighbor, vOK := d.getBlackPointOnSegment(
		float64(edgeX), float64(edgeY), float64(edgeX), float64(edgeY+4*sy))
	if !hOK || !vOK {
		return true
	}
	return d.isCornerPoint(geocore.Point{X: float64(edgeX), Y: float64(edgeY)}, horizontalNeighbor) &&
		d.isCornerPoint(geocore.Point{X: float64(edgeX), Y: float64(edgeY)}, verticalNeighbor)
}

// isCornerPoint validates that b, sampled near a, looks like a real corner:
// along a short (5%) span of the axis perpendicular to a-b no more than 10%
// of sampled points may be black, and along the full length of a-b no more
// than 15% may be black. a and b must share an axis; otherwise this is a
// contract violation and is fatal.
func (d *WhiteRectangleDetector) isCornerPoint(a, b geocore.Point) bool {
	sameX := a.X == b.X
	sameY := a.Y == b.Y
	if !sameX && !sameY {
		panic(&geocore.InternalError{Reason: "isCornerPoint: points do not share an axis"})
	}

	length := geocore.Distance(a, b)
	if length == 0 {
		return true
	}

	shortSpan := int(math.Round(length * 0.05))
	if shortSpan < 1 {
		shortSpan = 1
	}

	perpBlack, perpTotal := 0, 0
	for k := -shortSpan; k <= shortSpan; k++ {
		var nx, ny int
		if sameX {
			nx, ny = int(b.X)+k, int(b.Y)
		} else {
			nx, ny = int(b.X), int(b.Y)+k
		}
		if nx < 0 || nx >= d.width || ny < 0 || ny >= d.height {
			continue
		}
		perpTotal++
		if d.image.Get(nx, ny) {
			perpBlack++
		}
	}
	if perpTotal > 0 && float64(perpBlack)/float64(perpTotal) > 0.10 {
		return false
	}

	longBlack, longTotal := d.countBlackOnSegment(a, b)
	if longTotal > 0 && float64(longBlack)/float64(longTotal) > 0.15 {
		return false
	}
	return true
}

// countBlackOnSegment samples the segment a-b at unit steps and returns the
// number of black pixels and the total samples taken.
func (d *WhiteRectangleDetector) countBlackOnSegment(a, b geocore.Point) (black, total int) {
	dist := int(math.Round(geocore.Distance(a, b)))
	if dist < 1 {
		if d.inBounds(int(a.X), int(a.Y)) {
			total = 1
			if d.image.Get(int(a.X), int(a.Y)) {
				black = 1
			}
		}
		return
	}
	xStep := (b.X - a.X) / float64(dist)
	yStep := (b.Y - a.Y) / float64(dist)
	for i := 0; i <= dist; i++ {
		x := int(a.X + float64(i)*xStep)
		y := int(a.Y + float64(i)*yStep)
		if !d.inBounds(x, y) {
			continue
		}
		total++
		if d.image.Get(x, y) {
			black++
		}
	}
	return
}

// getBlackPointOnSegment walks from a toward b and returns the first black
// pixel found.
func (d *WhiteRectangleDetector) getBlackPointOnSegment(ax, ay, bx, by float64) (geocore.Point, bool) {
	dist := math.Round(math.Hypot(bx-ax, by-ay))
	if dist < 1 {
		return geocore.Point{}, false
	}
	xStep := (bx - ax) / dist
	yStep := (by - ay) / dist
	for i := 0.0; i < dist; i++ {
		x := int(ax + i*xStep)
		y := int(ay + i*yStep)
		if d.inBounds(x, y) && d.image.Get(x, y) {
			return geocore.Point{X: float64(x), Y: float64(y)}, true
		}
	}
	return geocore.Point{}, false
}

// inBlackModule reports whether the segment a1-a2 lies (almost) entirely in
// a black module: all-black when the two points coincide, or more than 90%
// black pixels along the segment otherwise.
func (d *WhiteRectangleDetector) inBlackModule(a1, a2 geocore.Point) bool {
	dist := math.Round(geocore.Distance(a1, a2))
	if dist == 0 {
		return d.inBounds(int(a1.X), int(a1.Y)) && d.image.Get(int(a1.X), int(a1.Y))
	}
	black, total := d.countBlackOnSegment(a1, a2)
	if total == 0 {
		return false
	}
	return float64(black)/dist > 0.9 && total > 0
}

// decentralise shifts a out of the black module it sits in, one pixel at a
// time on each axis back toward the edge corner (away from the opposite
// corner), then two more pixels in the same direction so the result sits
// cleanly outside the module.
func (d *WhiteRectangleDetector) decentralise(a geocore.Point, edgeX, edgeY float64, sx, sy int) geocore.Point {
	x, y := a.X, a.Y
	awayX := -float64(sign(sx))
	awayY := -float64(sign(sy))

	for d.inBounds(int(x), int(y)) && d.image.Get(int(x), int(y)) {
		x += awayX
		y += awayY
	}
	x += 2 * awayX
	y += 2 * awayY
	return geocore.Point{X: x, Y: y}
}

// centerEdges nudges the four refined corners slightly inward (by corr
// pixels) relative to the image's horizontal center, so sample points land
// inside the symbol rather than on its quiet-zone border.
func (d *WhiteRectangleDetector) centerEdges(upLeft, upRight, downLeft, downRight geocore.Point) [4]geocore.Point {
	var corners [4]geocore.Point
	if upLeft.X < float64(d.width)/2 {
		corners = [4]geocore.Point{
			{X: downRight.X - corr, Y: downRight.Y + corr},
			{X: upRight.X + corr, Y: upRight.Y + corr},
			{X: downLeft.X - corr, Y: downLeft.Y - corr},
			{X: upLeft.X + corr, Y: upLeft.Y - corr},
		}
	} else {
		corners = [4]geocore.Point{
			{X: downRight.X + corr, Y: downRight.Y + corr},
			{X: upRight.X + corr, Y: upRight.Y - corr},
			{X: downLeft.X - corr, Y: downLeft.Y + corr},
			{X: upLeft.X - corr, Y: upLeft.Y - corr},
		}
	}
	return orderByVerticalPosition(corners)
}

// orderByVerticalPosition returns the four corners ordered [topmost,
// leftmost, rightmost, bottommost], with 0/3 and 1/2 diagonal opposites.
// c must hold diagonal partners at 0/3 and 1/2, as centerEdges builds it:
// the topmost corner (the first one on a tie) is followed by the other pair
// ordered by x, and its own diagonal partner comes last.
func orderByVerticalPosition(c [4]geocore.Point) [4]geocore.Point {
	top := 0
	for i := 1; i < 4; i++ {
		if c[i].Y < c[top].Y {
			top = i
		}
	}
	bottom := 3 - top
	var left, right int = -1, -1
	for i := 0; i < 4; i++ {
		if i == top || i == bottom {
			continue
		}
		if left == -1 {
			left = i
		} else {
			right = i
		}
	}
	if c[left].X > c[right].X {
		left, right = right, left
	}
	return [4]geocore.Point{c[top], c[left], c[right], c[bottom]}
}

func (d *WhiteRectangleDetector) inBounds(x, y int) bool {
	return x >= 0 && x < d.width && y >= 0 && y < d.height
}

func iabs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

func sign(x int) int {
	if x < 0 {
		return -1
	}
	if x > 0 {
		return 1
	}
	return 0
}


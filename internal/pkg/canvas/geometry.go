// Package canvas implements the annotation drawing engine: gesture
// sampling, the drawing-action model, deterministic raster replay and
// full-resolution export compositing.
package canvas

import (
	"math"

	"github.com/ds124wfegd/fieldinspect/internal/entity"
)

// wingAngle is the deviation of each arrowhead wing from the reversed
// shaft direction.
const wingAngle = math.Pi / 6

// Ellipse is an axis-aligned ellipse in canvas coordinates.
type Ellipse struct {
	CX, CY float64
	RX, RY float64
}

// EllipseFromBox returns the ellipse inscribed in the bounding box spanned
// by start and end. Degenerate radii (zero span on an axis) are valid and
// collapse to a line or point.
func EllipseFromBox(start, end entity.Point) Ellipse {
	return Ellipse{
		CX: (start.X + end.X) / 2,
		CY: (start.Y + end.Y) / 2,
		RX: math.Abs(end.X-start.X) / 2,
		RY: math.Abs(end.Y-start.Y) / 2,
	}
}

// Flatten converts the ellipse outline into a closed polyline. The number
// of segments depends only on the radii, so the result is deterministic
// for a given ellipse.
func (e Ellipse) Flatten() []entity.Point {
	// roughly one segment per two pixels of circumference, clamped so
	// tiny and huge ellipses both stay smooth without unbounded point
	// counts
	n := int(math.Ceil(math.Pi * (e.RX + e.RY) / 2))
	if n < 16 {
		n = 16
	}
	if n > 256 {
		n = 256
	}

	pts := make([]entity.Point, 0, n+1)
	for i := 0; i <= n; i++ {
		a := 2 * math.Pi * float64(i) / float64(n)
		pts = append(pts, entity.Point{
			X: e.CX + e.RX*math.Cos(a),
			Y: e.CY + e.RY*math.Sin(a),
		})
	}
	return pts
}

// ArrowheadWings returns the two wing endpoints of an arrowhead at end,
// each headLength away from end and rotated ±wingAngle from the reversed
// shaft direction. ok is false for a zero-length shaft, where the angle is
// undefined and no arrowhead must be drawn.
func ArrowheadWings(start, end entity.Point, headLength float64) (wing1, wing2 entity.Point, ok bool) {
	dx := end.X - start.X
	dy := end.Y - start.Y
	if dx == 0 && dy == 0 {
		return entity.Point{}, entity.Point{}, false
	}

	angle := math.Atan2(dy, dx)
	wing1 = entity.Point{
		X: end.X - headLength*math.Cos(angle-wingAngle),
		Y: end.Y - headLength*math.Sin(angle-wingAngle),
	}
	wing2 = entity.Point{
		X: end.X - headLength*math.Cos(angle+wingAngle),
		Y: end.Y - headLength*math.Sin(angle+wingAngle),
	}
	return wing1, wing2, true
}

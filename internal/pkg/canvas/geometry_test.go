package canvas

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ds124wfegd/fieldinspect/internal/entity"
)

func TestEllipseFromBox(t *testing.T) {
	tests := []struct {
		name       string
		start, end entity.Point
		want       Ellipse
	}{
		{
			name:  "simple box",
			start: entity.Point{X: 10, Y: 20},
			end:   entity.Point{X: 50, Y: 60},
			want:  Ellipse{CX: 30, CY: 40, RX: 20, RY: 20},
		},
		{
			name:  "reversed corners",
			start: entity.Point{X: 50, Y: 60},
			end:   entity.Point{X: 10, Y: 20},
			want:  Ellipse{CX: 30, CY: 40, RX: 20, RY: 20},
		},
		{
			name:  "degenerate zero width",
			start: entity.Point{X: 25, Y: 10},
			end:   entity.Point{X: 25, Y: 30},
			want:  Ellipse{CX: 25, CY: 20, RX: 0, RY: 10},
		},
		{
			name:  "degenerate point",
			start: entity.Point{X: 7, Y: 7},
			end:   entity.Point{X: 7, Y: 7},
			want:  Ellipse{CX: 7, CY: 7, RX: 0, RY: 0},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := EllipseFromBox(tt.start, tt.end)
			assert.InDelta(t, tt.want.CX, got.CX, 1e-9)
			assert.InDelta(t, tt.want.CY, got.CY, 1e-9)
			assert.InDelta(t, tt.want.RX, got.RX, 1e-9)
			assert.InDelta(t, tt.want.RY, got.RY, 1e-9)
		})
	}
}

func TestEllipseFlatten(t *testing.T) {
	e := Ellipse{CX: 100, CY: 50, RX: 40, RY: 20}
	pts := e.Flatten()

	require.GreaterOrEqual(t, len(pts), 17)

	// closed outline
	assert.Equal(t, pts[0], pts[len(pts)-1])

	// every vertex lies on the ellipse
	for _, p := range pts {
		dx := (p.X - e.CX) / e.RX
		dy := (p.Y - e.CY) / e.RY
		assert.InDelta(t, 1.0, dx*dx+dy*dy, 1e-6)
	}

	// deterministic
	assert.Equal(t, pts, e.Flatten())
}

func TestArrowheadWings(t *testing.T) {
	tests := []struct {
		name       string
		start, end entity.Point
	}{
		{
			name:  "horizontal shaft",
			start: entity.Point{X: 0, Y: 0},
			end:   entity.Point{X: 100, Y: 0},
		},
		{
			name:  "vertical shaft",
			start: entity.Point{X: 30, Y: 80},
			end:   entity.Point{X: 30, Y: 10},
		},
		{
			name:  "diagonal shaft",
			start: entity.Point{X: 10, Y: 10},
			end:   entity.Point{X: 60, Y: 90},
		},
	}

	const headLength = 12.0

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w1, w2, ok := ArrowheadWings(tt.start, tt.end, headLength)
			require.True(t, ok)

			// wings sit exactly headLength away from the tip
			assert.InDelta(t, headLength, math.Hypot(w1.X-tt.end.X, w1.Y-tt.end.Y), 1e-9)
			assert.InDelta(t, headLength, math.Hypot(w2.X-tt.end.X, w2.Y-tt.end.Y), 1e-9)

			// wings are symmetric about the shaft axis: the angle between
			// each wing and the reversed shaft direction is the same
			shaft := math.Atan2(tt.start.Y-tt.end.Y, tt.start.X-tt.end.X)
			a1 := math.Atan2(w1.Y-tt.end.Y, w1.X-tt.end.X)
			a2 := math.Atan2(w2.Y-tt.end.Y, w2.X-tt.end.X)
			assert.InDelta(t, math.Pi/6, math.Abs(normalizeAngle(a1-shaft)), 1e-9)
			assert.InDelta(t, math.Pi/6, math.Abs(normalizeAngle(a2-shaft)), 1e-9)
		})
	}
}

func TestArrowheadWingsDegenerateShaft(t *testing.T) {
	p := entity.Point{X: 42, Y: 42}
	_, _, ok := ArrowheadWings(p, p, 12)
	assert.False(t, ok, "zero-length shaft must not produce an arrowhead")
}

func normalizeAngle(a float64) float64 {
	for a > math.Pi {
		a -= 2 * math.Pi
	}
	for a < -math.Pi {
		a += 2 * math.Pi
	}
	return a
}

package canvas

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"math"
	"sync"

	"github.com/disintegration/imaging"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"
	"golang.org/x/image/vector"

	"github.com/ds124wfegd/fieldinspect/internal/entity"
)

const (
	// arrowHeadLength is the arrowhead wing length in pixels at unit
	// scale, independent of stroke width.
	arrowHeadLength = 12.0

	// fontSizeFactor converts stroke width to text font size.
	fontSizeFactor = 5.0

	// capSegments is the number of polygon segments used for the round
	// caps and joins stamped at stroke vertices.
	capSegments = 24
)

// ParseHexColor parses "#rgb" or "#rrggbb" into an opaque color.
func ParseHexColor(s string) (color.RGBA, error) {
	c := color.RGBA{A: 0xff}

	hex := func(b byte) (uint8, bool) {
		switch {
		case b >= '0' && b <= '9':
			return b - '0', true
		case b >= 'a' && b <= 'f':
			return b - 'a' + 10, true
		case b >= 'A' && b <= 'F':
			return b - 'A' + 10, true
		}
		return 0, false
	}

	if len(s) == 0 || s[0] != '#' {
		return c, fmt.Errorf("color %q: missing '#' prefix", s)
	}
	switch len(s) {
	case 4:
		for i, dst := range []*uint8{&c.R, &c.G, &c.B} {
			v, ok := hex(s[i+1])
			if !ok {
				return c, fmt.Errorf("color %q: bad hex digit", s)
			}
			*dst = v*16 + v
		}
	case 7:
		for i, dst := range []*uint8{&c.R, &c.G, &c.B} {
			hi, ok1 := hex(s[i*2+1])
			lo, ok2 := hex(s[i*2+2])
			if !ok1 || !ok2 {
				return c, fmt.Errorf("color %q: bad hex digit", s)
			}
			*dst = hi*16 + lo
		}
	default:
		return c, fmt.Errorf("color %q: bad length", s)
	}
	return c, nil
}

// Render replays actions in z-order onto a fresh raster of the given
// size. The base image, when present, is stretched to exactly fill the
// target surface; a nil base leaves the background transparent (the
// signature pad case). scale multiplies the fixed unit-scale constants
// (the arrowhead length); action coordinates and stroke widths are used
// as given. The output is deterministic for identical inputs.
func Render(base image.Image, size entity.Size, actions []entity.DrawAction, scale float64) *image.RGBA {
	dst := image.NewRGBA(image.Rect(0, 0, size.Width, size.Height))
	if base != nil {
		if b := base.Bounds(); b.Dx() == size.Width && b.Dy() == size.Height {
			draw.Draw(dst, dst.Bounds(), base, b.Min, draw.Src)
		} else {
			scaled := imaging.Resize(base, size.Width, size.Height, imaging.Lanczos)
			draw.Draw(dst, dst.Bounds(), scaled, image.Point{}, draw.Src)
		}
	}

	for _, a := range actions {
		renderAction(dst, a, scale)
	}
	return dst
}

// renderAction burns one action into dst. Geometry degeneracies render as
// their degenerate form; nothing at this layer returns an error.
func renderAction(dst *image.RGBA, a entity.DrawAction, scale float64) {
	// The model layer validates colors; a bad color that slips through
	// paints opaque black rather than failing the whole replay.
	col, _ := ParseHexColor(a.Color)

	switch a.Tool {
	case entity.ToolPen:
		if len(a.Points) < 2 {
			return
		}
		strokePolyline(dst, a.Points, col, a.Width)

	case entity.ToolLine:
		strokePolyline(dst, []entity.Point{a.Start, a.End}, col, a.Width)

	case entity.ToolEllipse:
		strokePolyline(dst, EllipseFromBox(a.Start, a.End).Flatten(), col, a.Width)

	case entity.ToolArrow:
		strokePolyline(dst, []entity.Point{a.Start, a.End}, col, a.Width)
		if w1, w2, ok := ArrowheadWings(a.Start, a.End, arrowHeadLength*scale); ok {
			strokePolyline(dst, []entity.Point{w1, a.End}, col, a.Width)
			strokePolyline(dst, []entity.Point{w2, a.End}, col, a.Width)
		}

	case entity.ToolText:
		drawText(dst, a.Start, a.Text, col, a.Width*fontSizeFactor)
	}
}

// strokePolyline strokes a polyline with round caps and joins. The stroke
// outline is built as filled geometry: one quad per segment plus a disc at
// every vertex, all with matching winding, rasterized in a single pass. A
// polyline with no extent (all points coincide) renders nothing, matching
// the zero-length stroke behavior of 2D canvas implementations.
func strokePolyline(dst *image.RGBA, pts []entity.Point, col color.Color, width float64) {
	if len(pts) < 2 || width <= 0 {
		return
	}

	hasExtent := false
	for i := 1; i < len(pts); i++ {
		if pts[i] != pts[i-1] {
			hasExtent = true
			break
		}
	}
	if !hasExtent {
		return
	}

	b := dst.Bounds()
	r := vector.NewRasterizer(b.Dx(), b.Dy())
	half := width / 2

	for i := 1; i < len(pts); i++ {
		addSegmentQuad(r, pts[i-1], pts[i], half)
	}
	for _, p := range pts {
		addDisc(r, p, half)
	}

	r.Draw(dst, b, image.NewUniform(col), image.Point{})
}

// addSegmentQuad adds the rectangle covering a segment swept by the
// stroke width. Zero-length segments are skipped; the vertex discs cover
// those joins.
func addSegmentQuad(r *vector.Rasterizer, a, b entity.Point, half float64) {
	dx := b.X - a.X
	dy := b.Y - a.Y
	length := math.Hypot(dx, dy)
	if length == 0 {
		return
	}

	// Unit normal; orientation matches addDisc so overlapping geometry
	// accumulates winding with the same sign.
	nx := -dy / length * half
	ny := dx / length * half

	r.MoveTo(float32(a.X+nx), float32(a.Y+ny))
	r.LineTo(float32(b.X+nx), float32(b.Y+ny))
	r.LineTo(float32(b.X-nx), float32(b.Y-ny))
	r.LineTo(float32(a.X-nx), float32(a.Y-ny))
	r.ClosePath()
}

// addDisc adds a filled disc polygon centered at p.
func addDisc(r *vector.Rasterizer, p entity.Point, radius float64) {
	if radius <= 0 {
		return
	}
	r.MoveTo(float32(p.X+radius), float32(p.Y))
	for i := 1; i <= capSegments; i++ {
		a := 2 * math.Pi * float64(i) / capSegments
		r.LineTo(float32(p.X+radius*math.Cos(a)), float32(p.Y-radius*math.Sin(a)))
	}
	r.ClosePath()
}

var (
	fontOnce sync.Once
	fontErr  error
	regular  *sfnt.Font
)

// drawText fills text at the anchor baseline. Hinting is disabled so the
// glyph rasterization does not depend on the display environment.
func drawText(dst *image.RGBA, anchor entity.Point, text string, col color.Color, size float64) {
	if text == "" || size <= 0 {
		return
	}

	fontOnce.Do(func() {
		regular, fontErr = opentype.Parse(goregular.TTF)
	})
	if fontErr != nil {
		return
	}

	face, err := opentype.NewFace(regular, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingNone,
	})
	if err != nil {
		return
	}
	defer face.Close()

	d := &font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(col),
		Face: face,
		Dot: fixed.Point26_6{
			X: fixed.Int26_6(math.Round(anchor.X * 64)),
			Y: fixed.Int26_6(math.Round(anchor.Y * 64)),
		},
	}
	d.DrawString(text)
}

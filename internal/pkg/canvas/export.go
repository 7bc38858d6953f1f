package canvas

import (
	"image"
	"image/jpeg"
	"image/png"
	"io"

	"github.com/ds124wfegd/fieldinspect/internal/entity"
)

// jpegQuality is the encoding quality for flattened photo exports.
// Signature exports use PNG instead: transparency and sharp ink edges
// must survive the encoding.
const jpegQuality = 85

// ScaleActions returns a copy of actions with every point scaled per-axis
// by (sx, sy). Stroke widths are scaled by sx only, a single uniform
// scalar derived from the horizontal ratio. On non-square-aspect exports
// this is not a true 2D width scale; the behavior is kept as-is because
// changing it changes visual output (see the design notes).
func ScaleActions(actions []entity.DrawAction, sx, sy float64) []entity.DrawAction {
	out := make([]entity.DrawAction, len(actions))
	for i, a := range actions {
		b := a
		b.Width = a.Width * sx
		b.Start = entity.Point{X: a.Start.X * sx, Y: a.Start.Y * sy}
		b.End = entity.Point{X: a.End.X * sx, Y: a.End.Y * sy}
		if len(a.Points) > 0 {
			b.Points = make([]entity.Point, len(a.Points))
			for j, p := range a.Points {
				b.Points[j] = entity.Point{X: p.X * sx, Y: p.Y * sy}
			}
		}
		out[i] = b
	}
	return out
}

// ExportComposite flattens the committed actions over the original
// full-resolution image. Coordinates are rescaled from preview space by
// independent per-axis factors; the in-progress action is never included.
// An annotator session whose source image never decoded fails here rather
// than producing a blank export.
func (s *Session) ExportComposite() (*image.RGBA, error) {
	if s.base == nil && !s.transparent {
		return nil, entity.ErrImageNotReady
	}

	sx := float64(s.naturalSize.Width) / float64(s.previewSize.Width)
	sy := float64(s.naturalSize.Height) / float64(s.previewSize.Height)

	return Render(s.base, s.naturalSize, ScaleActions(s.actions, sx, sy), sx), nil
}

// Export composites and encodes the flattened raster: lossless PNG for
// transparent (signature) sessions, JPEG otherwise.
func (s *Session) Export(w io.Writer) error {
	img, err := s.ExportComposite()
	if err != nil {
		return err
	}
	if s.transparent {
		return EncodePNG(w, img)
	}
	return EncodeJPEG(w, img)
}

// EncodeJPEG writes img as JPEG at the flattened-photo quality.
func EncodeJPEG(w io.Writer, img image.Image) error {
	return jpeg.Encode(w, img, &jpeg.Options{Quality: jpegQuality})
}

// EncodePNG writes img as lossless PNG.
func EncodePNG(w io.Writer, img image.Image) error {
	return png.Encode(w, img)
}

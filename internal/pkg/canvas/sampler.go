package canvas

import "github.com/ds124wfegd/fieldinspect/internal/entity"

// ClientPosition extracts the viewport-space position of a gesture event.
// Mouse events carry the position directly. Touch events use the first
// active touch; on touch end/cancel the active list is empty and the
// terminating entry from ChangedTouches is used instead. ok is false when
// a touch-shaped event carries no usable entry at all.
func ClientPosition(ev entity.GestureEvent) (x, y float64, ok bool) {
	if len(ev.Touches) > 0 {
		return ev.Touches[0].ClientX, ev.Touches[0].ClientY, true
	}
	if len(ev.ChangedTouches) > 0 {
		last := ev.ChangedTouches[len(ev.ChangedTouches)-1]
		return last.ClientX, last.ClientY, true
	}
	return ev.ClientX, ev.ClientY, true
}

// ToCanvasPoint translates a viewport-space position into canvas-local
// pixel coordinates, compensating for the ratio between the canvas
// element's on-screen size and its backing pixel resolution. Pure
// function; callers sample once per move event, every move event yields
// exactly one point.
func ToCanvasPoint(clientX, clientY float64, box entity.BoundingBox, canvasSize entity.Size) entity.Point {
	p := entity.Point{X: clientX - box.Left, Y: clientY - box.Top}
	if box.Width > 0 {
		p.X *= float64(canvasSize.Width) / box.Width
	}
	if box.Height > 0 {
		p.Y *= float64(canvasSize.Height) / box.Height
	}
	return p
}

// FitPreviewSize scales natural into viewport preserving aspect ratio,
// never upscaling: the resulting scale factor is at most 1.
func FitPreviewSize(natural, viewport entity.Size) entity.Size {
	if natural.Width <= 0 || natural.Height <= 0 {
		return natural
	}

	scale := 1.0
	if viewport.Width > 0 {
		if s := float64(viewport.Width) / float64(natural.Width); s < scale {
			scale = s
		}
	}
	if viewport.Height > 0 {
		if s := float64(viewport.Height) / float64(natural.Height); s < scale {
			scale = s
		}
	}

	w := int(float64(natural.Width) * scale)
	h := int(float64(natural.Height) * scale)
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	return entity.Size{Width: w, Height: h}
}

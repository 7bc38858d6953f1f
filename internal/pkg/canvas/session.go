package canvas

import (
	"image"

	"github.com/ds124wfegd/fieldinspect/internal/entity"
)

// Style is the tool/color/width selection supplied by the host UI at the
// moment a gesture starts. The engine does not own selection controls.
type Style struct {
	Tool  entity.Tool
	Color string
	Width float64
}

// Session owns the editing state of one annotation canvas: the log of
// committed actions plus at most one in-progress action. A session is
// created per editor, mutated by gesture handlers and discarded on cancel,
// or consumed by export on save. It is not safe for concurrent use; the
// gesture model allows a single active gesture at a time.
type Session struct {
	base        image.Image // decoded source raster, nil for the signature pad
	naturalSize entity.Size
	previewSize entity.Size
	transparent bool

	enabled map[entity.Tool]bool
	actions []entity.DrawAction
	current *entity.DrawAction
}

// NewSession creates an annotator session over a decoded source image.
// The preview canvas size is derived once, fitting the image's natural
// dimensions into viewport without upscaling. base may be nil if the
// image failed to decode; the session still accepts gestures but export
// will fail rather than produce a blank raster.
func NewSession(base image.Image, natural, viewport entity.Size, tools []entity.Tool) *Session {
	enabled := make(map[entity.Tool]bool, len(tools))
	for _, t := range tools {
		enabled[t] = true
	}
	return &Session{
		base:        base,
		naturalSize: natural,
		previewSize: FitPreviewSize(natural, viewport),
		enabled:     enabled,
	}
}

// NewSignatureSession creates an ink-only session with a fixed internal
// resolution and a transparent base. Preview and export size coincide, so
// the export scale factor is exactly 1.
func NewSignatureSession(size entity.Size) *Session {
	return &Session{
		naturalSize: size,
		previewSize: size,
		transparent: true,
		enabled:     map[entity.Tool]bool{entity.ToolPen: true},
	}
}

func (s *Session) PreviewSize() entity.Size { return s.previewSize }
func (s *Session) NaturalSize() entity.Size { return s.naturalSize }

// ActionCount returns the number of committed actions.
func (s *Session) ActionCount() int { return len(s.actions) }

// Actions returns a copy of the committed action log in z-order.
func (s *Session) Actions() []entity.DrawAction {
	out := make([]entity.DrawAction, len(s.actions))
	copy(out, s.actions)
	return out
}

func (s *Session) validate(style Style) error {
	switch style.Tool {
	case entity.ToolPen, entity.ToolLine, entity.ToolEllipse, entity.ToolArrow, entity.ToolText:
	default:
		return entity.ErrInvalidTool
	}
	if !s.enabled[style.Tool] {
		return entity.ErrToolDisabled
	}
	if style.Width <= 0 {
		return entity.ErrInvalidWidth
	}
	if _, err := ParseHexColor(style.Color); err != nil {
		return entity.ErrInvalidColor
	}
	return nil
}

// StartGesture allocates a new in-progress action at p. A start while
// another gesture is active is ignored. The text tool never enters the
// active state; use CommitText instead.
func (s *Session) StartGesture(style Style, p entity.Point) error {
	if style.Tool == entity.ToolText {
		return entity.ErrInvalidGesture
	}
	if err := s.validate(style); err != nil {
		return err
	}
	if s.current != nil {
		return nil
	}

	a := entity.DrawAction{Tool: style.Tool, Color: style.Color, Width: style.Width}
	switch style.Tool {
	case entity.ToolPen:
		a.Points = []entity.Point{p}
	default:
		a.Start = p
		a.End = p
	}
	s.current = &a
	return nil
}

// MoveGesture advances the in-progress action: pen strokes append the
// sampled point as-is (no deduplication, no smoothing), shapes replace
// their end point. A move with no active gesture is a no-op.
func (s *Session) MoveGesture(p entity.Point) {
	if s.current == nil {
		return
	}
	switch s.current.Tool {
	case entity.ToolPen:
		s.current.Points = append(s.current.Points, p)
	default:
		s.current.End = p
	}
}

// EndGesture commits the in-progress action to the log. Degenerate
// actions (a tap without drag on a shape tool, a single-point pen stroke)
// are committed as-is; they render as their well-defined degenerate form.
func (s *Session) EndGesture() {
	if s.current == nil {
		return
	}
	s.actions = append(s.actions, *s.current)
	s.current = nil
}

// CommitText appends a fully-formed text action at anchor p, skipping the
// active state. Empty text (a cancelled prompt) yields no action.
func (s *Session) CommitText(style Style, p entity.Point, text string) error {
	if style.Tool != entity.ToolText {
		return entity.ErrInvalidGesture
	}
	if err := s.validate(style); err != nil {
		return err
	}
	if text == "" {
		return nil
	}
	s.actions = append(s.actions, entity.DrawAction{
		Tool:  entity.ToolText,
		Color: style.Color,
		Width: style.Width,
		Start: p,
		Text:  text,
	})
	return nil
}

// Undo removes the most recently committed action. LIFO, no redo.
func (s *Session) Undo() {
	if len(s.actions) == 0 {
		return
	}
	s.actions = s.actions[:len(s.actions)-1]
}

// RenderPreview replays the action log, including the in-progress action,
// onto a fresh raster at the preview size.
func (s *Session) RenderPreview() *image.RGBA {
	actions := s.actions
	if s.current != nil {
		actions = append(s.Actions(), *s.current)
	}
	return Render(s.base, s.previewSize, actions, 1)
}

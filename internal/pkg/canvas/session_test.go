package canvas

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ds124wfegd/fieldinspect/internal/entity"
)

func newTestSession() *Session {
	natural := entity.Size{Width: 600, Height: 400}
	viewport := entity.Size{Width: 300, Height: 300}
	return NewSession(nil, natural, viewport, entity.AnnotatorTools)
}

func penStyle() Style {
	return Style{Tool: entity.ToolPen, Color: "#ef4444", Width: 3}
}

func TestPenGestureLifecycle(t *testing.T) {
	s := newTestSession()

	require.NoError(t, s.StartGesture(penStyle(), entity.Point{X: 10, Y: 10}))
	s.MoveGesture(entity.Point{X: 20, Y: 20})
	s.MoveGesture(entity.Point{X: 30, Y: 10})
	assert.Equal(t, 0, s.ActionCount(), "in-progress action is not committed yet")

	s.EndGesture()
	require.Equal(t, 1, s.ActionCount())

	a := s.Actions()[0]
	assert.Equal(t, entity.ToolPen, a.Tool)
	assert.Equal(t, "#ef4444", a.Color)
	assert.Equal(t, []entity.Point{{X: 10, Y: 10}, {X: 20, Y: 20}, {X: 30, Y: 10}}, a.Points)
}

func TestShapeGestureMutatesOnlyEnd(t *testing.T) {
	s := newTestSession()
	style := Style{Tool: entity.ToolArrow, Color: "#22c55e", Width: 2}

	require.NoError(t, s.StartGesture(style, entity.Point{X: 5, Y: 5}))
	s.MoveGesture(entity.Point{X: 50, Y: 60})
	s.MoveGesture(entity.Point{X: 80, Y: 40})
	s.EndGesture()

	require.Equal(t, 1, s.ActionCount())
	a := s.Actions()[0]
	assert.Equal(t, entity.Point{X: 5, Y: 5}, a.Start, "start is immutable during the gesture")
	assert.Equal(t, entity.Point{X: 80, Y: 40}, a.End, "end tracks the latest sample")
	assert.Empty(t, a.Points)
}

func TestTapCommitsZeroSizeShape(t *testing.T) {
	s := newTestSession()
	style := Style{Tool: entity.ToolEllipse, Color: "#000000", Width: 4}

	require.NoError(t, s.StartGesture(style, entity.Point{X: 33, Y: 44}))
	s.EndGesture()

	require.Equal(t, 1, s.ActionCount())
	a := s.Actions()[0]
	assert.Equal(t, a.Start, a.End, "tap without drag commits a zero-size shape")
}

func TestSinglePointPenIsValidAndUndoable(t *testing.T) {
	s := newTestSession()

	require.NoError(t, s.StartGesture(penStyle(), entity.Point{X: 1, Y: 2}))
	s.EndGesture()

	require.Equal(t, 1, s.ActionCount())
	assert.Len(t, s.Actions()[0].Points, 1)

	s.Undo()
	assert.Equal(t, 0, s.ActionCount())
}

func TestSecondStartWhileActiveIsIgnored(t *testing.T) {
	s := newTestSession()

	require.NoError(t, s.StartGesture(penStyle(), entity.Point{X: 0, Y: 0}))
	require.NoError(t, s.StartGesture(Style{Tool: entity.ToolLine, Color: "#000", Width: 1}, entity.Point{X: 9, Y: 9}))

	s.MoveGesture(entity.Point{X: 1, Y: 1})
	s.EndGesture()

	require.Equal(t, 1, s.ActionCount())
	assert.Equal(t, entity.ToolPen, s.Actions()[0].Tool, "the first gesture keeps ownership")
}

func TestMoveAndEndWithoutActiveGesture(t *testing.T) {
	s := newTestSession()

	// input-state errors are silent no-ops
	s.MoveGesture(entity.Point{X: 1, Y: 1})
	s.EndGesture()
	s.Undo()

	assert.Equal(t, 0, s.ActionCount())
}

func TestUndoIsLIFO(t *testing.T) {
	s := newTestSession()

	colors := []string{"#111111", "#222222", "#333333"}
	for _, col := range colors {
		require.NoError(t, s.StartGesture(Style{Tool: entity.ToolLine, Color: col, Width: 1}, entity.Point{}))
		s.EndGesture()
	}
	require.Equal(t, 3, s.ActionCount())

	s.Undo()
	s.Undo()

	require.Equal(t, 1, s.ActionCount())
	assert.Equal(t, "#111111", s.Actions()[0].Color, "undo removes most recent actions first")
}

func TestTextCommitsDirectly(t *testing.T) {
	s := newTestSession()
	style := Style{Tool: entity.ToolText, Color: "#0000ff", Width: 3}

	require.NoError(t, s.CommitText(style, entity.Point{X: 50, Y: 80}, "leak at valve"))

	require.Equal(t, 1, s.ActionCount())
	a := s.Actions()[0]
	assert.Equal(t, entity.ToolText, a.Tool)
	assert.Equal(t, entity.Point{X: 50, Y: 80}, a.Start)
	assert.Equal(t, "leak at valve", a.Text)
}

func TestEmptyTextYieldsNoAction(t *testing.T) {
	s := newTestSession()
	style := Style{Tool: entity.ToolText, Color: "#0000ff", Width: 3}

	require.NoError(t, s.CommitText(style, entity.Point{X: 50, Y: 80}, ""))
	assert.Equal(t, 0, s.ActionCount(), "cancelled prompt commits nothing")
}

func TestTextToolNeverEntersActiveState(t *testing.T) {
	s := newTestSession()
	err := s.StartGesture(Style{Tool: entity.ToolText, Color: "#000", Width: 3}, entity.Point{})
	assert.ErrorIs(t, err, entity.ErrInvalidGesture)
}

func TestStyleValidation(t *testing.T) {
	tests := []struct {
		name    string
		session *Session
		style   Style
		wantErr error
	}{
		{
			name:    "unknown tool",
			session: newTestSession(),
			style:   Style{Tool: "spray", Color: "#000", Width: 1},
			wantErr: entity.ErrInvalidTool,
		},
		{
			name:    "tool outside the enabled set",
			session: NewSignatureSession(entity.Size{Width: 600, Height: 256}),
			style:   Style{Tool: entity.ToolArrow, Color: "#000", Width: 1},
			wantErr: entity.ErrToolDisabled,
		},
		{
			name:    "zero stroke width",
			session: newTestSession(),
			style:   Style{Tool: entity.ToolPen, Color: "#000", Width: 0},
			wantErr: entity.ErrInvalidWidth,
		},
		{
			name:    "unparseable color",
			session: newTestSession(),
			style:   Style{Tool: entity.ToolPen, Color: "red", Width: 1},
			wantErr: entity.ErrInvalidColor,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.session.StartGesture(tt.style, entity.Point{})
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Equal(t, 0, tt.session.ActionCount())
		})
	}
}

func TestSignatureSessionSizes(t *testing.T) {
	size := entity.Size{Width: 600, Height: 256}
	s := NewSignatureSession(size)

	assert.Equal(t, size, s.PreviewSize())
	assert.Equal(t, size, s.NaturalSize(), "signature pad renders at its fixed internal resolution")
	require.NoError(t, s.StartGesture(Style{Tool: entity.ToolPen, Color: "#000000", Width: 2}, entity.Point{X: 10, Y: 10}))
	s.EndGesture()
}

func TestActionsReturnsCopy(t *testing.T) {
	s := newTestSession()
	require.NoError(t, s.StartGesture(penStyle(), entity.Point{X: 1, Y: 1}))
	s.EndGesture()

	got := s.Actions()
	got[0].Color = "#ffffff"

	assert.Equal(t, "#ef4444", s.Actions()[0].Color)
}

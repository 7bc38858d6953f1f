package canvas

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ds124wfegd/fieldinspect/internal/entity"
)

func TestToCanvasPoint(t *testing.T) {
	tests := []struct {
		name             string
		clientX, clientY float64
		box              entity.BoundingBox
		canvasSize       entity.Size
		want             entity.Point
	}{
		{
			name:       "identity when canvas matches its CSS size",
			clientX:    120,
			clientY:    80,
			box:        entity.BoundingBox{Left: 20, Top: 30, Width: 300, Height: 200},
			canvasSize: entity.Size{Width: 300, Height: 200},
			want:       entity.Point{X: 100, Y: 50},
		},
		{
			name:       "fixed internal resolution larger than displayed size",
			clientX:    160,
			clientY:    85,
			box:        entity.BoundingBox{Left: 10, Top: 10, Width: 300, Height: 150},
			canvasSize: entity.Size{Width: 600, Height: 256},
			want:       entity.Point{X: 300, Y: 128},
		},
		{
			name:       "origin of the element maps to canvas origin",
			clientX:    55,
			clientY:    44,
			box:        entity.BoundingBox{Left: 55, Top: 44, Width: 500, Height: 400},
			canvasSize: entity.Size{Width: 250, Height: 200},
			want:       entity.Point{X: 0, Y: 0},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ToCanvasPoint(tt.clientX, tt.clientY, tt.box, tt.canvasSize)
			assert.InDelta(t, tt.want.X, got.X, 1e-9)
			assert.InDelta(t, tt.want.Y, got.Y, 1e-9)
		})
	}
}

func TestClientPosition(t *testing.T) {
	tests := []struct {
		name         string
		event        entity.GestureEvent
		wantX, wantY float64
	}{
		{
			name:  "mouse event",
			event: entity.GestureEvent{ClientX: 12, ClientY: 34},
			wantX: 12, wantY: 34,
		},
		{
			name: "first active touch wins",
			event: entity.GestureEvent{
				Touches: []entity.TouchPoint{{ClientX: 5, ClientY: 6}, {ClientX: 99, ClientY: 99}},
			},
			wantX: 5, wantY: 6,
		},
		{
			name: "touch end falls back to terminating touch",
			event: entity.GestureEvent{
				ChangedTouches: []entity.TouchPoint{{ClientX: 1, ClientY: 2}, {ClientX: 70, ClientY: 80}},
			},
			wantX: 70, wantY: 80,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			x, y, ok := ClientPosition(tt.event)
			assert.True(t, ok)
			assert.Equal(t, tt.wantX, x)
			assert.Equal(t, tt.wantY, y)
		})
	}
}

func TestFitPreviewSize(t *testing.T) {
	tests := []struct {
		name     string
		natural  entity.Size
		viewport entity.Size
		want     entity.Size
	}{
		{
			name:     "downscale landscape to viewport width",
			natural:  entity.Size{Width: 3000, Height: 2000},
			viewport: entity.Size{Width: 300, Height: 300},
			want:     entity.Size{Width: 300, Height: 200},
		},
		{
			name:     "downscale portrait to viewport height",
			natural:  entity.Size{Width: 1000, Height: 2000},
			viewport: entity.Size{Width: 800, Height: 500},
			want:     entity.Size{Width: 250, Height: 500},
		},
		{
			name:     "never upscale a small image",
			natural:  entity.Size{Width: 120, Height: 90},
			viewport: entity.Size{Width: 1200, Height: 900},
			want:     entity.Size{Width: 120, Height: 90},
		},
		{
			name:     "exact fit stays untouched",
			natural:  entity.Size{Width: 640, Height: 480},
			viewport: entity.Size{Width: 640, Height: 480},
			want:     entity.Size{Width: 640, Height: 480},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FitPreviewSize(tt.natural, tt.viewport)
			assert.Equal(t, tt.want, got)

			// the scale factor is never above 1
			assert.LessOrEqual(t, got.Width, tt.natural.Width)
			assert.LessOrEqual(t, got.Height, tt.natural.Height)
		})
	}
}

package entity

// Tool identifies a drawing tool of the annotation canvas.
type Tool string

const (
	ToolPen     Tool = "pen"
	ToolLine    Tool = "line"
	ToolEllipse Tool = "ellipse"
	ToolArrow   Tool = "arrow"
	ToolText    Tool = "text"
)

// AnnotatorTools is the tool set of the photo annotator.
var AnnotatorTools = []Tool{ToolPen, ToolLine, ToolEllipse, ToolArrow, ToolText}

// SignatureTools is the tool set of the signature pad.
var SignatureTools = []Tool{ToolPen}

// Point is a coordinate in canvas-local pixel space.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Size holds raster dimensions in pixels.
type Size struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// DrawAction is a single committed or in-flight drawing operation.
// Exactly one geometry payload is populated, matching Tool:
// pen uses Points, line/ellipse/arrow use Start/End, text uses Start and Text.
type DrawAction struct {
	Tool  Tool    `json:"tool"`
	Color string  `json:"color"`
	Width float64 `json:"width"`

	Points []Point `json:"points,omitempty"`
	Start  Point   `json:"start,omitempty"`
	End    Point   `json:"end,omitempty"`
	Text   string  `json:"text,omitempty"`
}

// GestureType identifies one event of a pointer/touch gesture stream.
type GestureType string

const (
	GestureStart GestureType = "start"
	GestureMove  GestureType = "move"
	GestureEnd   GestureType = "end"
	GestureText  GestureType = "text"
)

// TouchPoint is a single entry of a touch list, in viewport/client space.
type TouchPoint struct {
	ClientX float64 `json:"client_x"`
	ClientY float64 `json:"client_y"`
}

// GestureEvent is one raw input event as reported by the client device.
// Mouse events carry ClientX/ClientY directly; touch events carry the
// active-touch list and, on touch end/cancel, the terminating touches.
type GestureEvent struct {
	Type           GestureType  `json:"type"`
	ClientX        float64      `json:"client_x"`
	ClientY        float64      `json:"client_y"`
	Touches        []TouchPoint `json:"touches,omitempty"`
	ChangedTouches []TouchPoint `json:"changed_touches,omitempty"`

	// Style selected by the host UI at gesture start. Ignored for
	// move/end events.
	Tool  Tool    `json:"tool,omitempty"`
	Color string  `json:"color,omitempty"`
	Width float64 `json:"width,omitempty"`

	// Text content for text gestures, supplied by the host prompt.
	Text string `json:"text,omitempty"`
}

// BoundingBox is the on-screen rectangle of the canvas element, in
// viewport/client coordinates. Its size may differ from the canvas
// backing resolution (the signature pad renders at a fixed internal
// resolution regardless of displayed size).
type BoundingBox struct {
	Left   float64 `json:"left"`
	Top    float64 `json:"top"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

package entity

import "errors"

var (
	// Report errors
	ErrReportNotFound = errors.New("report not found")
	ErrPhotoNotFound  = errors.New("photo not found")

	// Session errors
	ErrSessionNotFound = errors.New("annotation session not found")

	// Canvas errors
	ErrImageNotReady  = errors.New("source image not loaded")
	ErrToolDisabled   = errors.New("tool not enabled for this session")
	ErrInvalidColor   = errors.New("invalid color value")
	ErrInvalidWidth   = errors.New("stroke width must be positive")
	ErrInvalidTool    = errors.New("unknown tool")
	ErrInvalidGesture = errors.New("unknown gesture type")

	// General errors
	ErrInvalidInput = errors.New("invalid input")
)

package entity

import "time"

type ReportStatus string

const (
	ReportStatusDraft  ReportStatus = "draft"
	ReportStatusSigned ReportStatus = "signed"
)

// Report is one field-inspection record.
type Report struct {
	ID        string       `json:"id"`
	Title     string       `json:"title"`
	Inspector string       `json:"inspector"`
	Location  string       `json:"location"`
	Notes     string       `json:"notes"`
	Status    ReportStatus `json:"status"`
	CreatedAt time.Time    `json:"created_at"`
	UpdatedAt time.Time    `json:"updated_at"`
	Photos    []Photo      `json:"photos"`

	// SignaturePath is set once the report has been signed.
	SignaturePath string `json:"signature_path,omitempty"`
}

// Photo is one photograph attached to a report.
type Photo struct {
	ID       string `json:"id"`
	Filename string `json:"filename"`
	Width    int    `json:"width"`
	Height   int    `json:"height"`

	// AnnotatedPath is set once annotations have been flattened into
	// a full-resolution raster.
	AnnotatedPath string `json:"annotated_path,omitempty"`
}

type CreateReportRequest struct {
	Title     string `json:"title" binding:"required"`
	Inspector string `json:"inspector" binding:"required"`
	Location  string `json:"location"`
	Notes     string `json:"notes"`
}

type UpdateReportRequest struct {
	Title     *string `json:"title"`
	Inspector *string `json:"inspector"`
	Location  *string `json:"location"`
	Notes     *string `json:"notes"`
}

type UploadPhotoResponse struct {
	ID     string `json:"id"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

// BeginSessionRequest opens an annotation or signature editing session.
// Viewport is the area available for the preview canvas on the device;
// BoundingBox is the on-screen rectangle of the canvas element.
type BeginSessionRequest struct {
	Viewport    Size        `json:"viewport" binding:"required"`
	BoundingBox BoundingBox `json:"bounding_box" binding:"required"`
}

type BeginSessionResponse struct {
	SessionID   string `json:"session_id"`
	PreviewSize Size   `json:"preview_size"`
}

type SessionStateResponse struct {
	SessionID   string `json:"session_id"`
	PreviewSize Size   `json:"preview_size"`
	Actions     int    `json:"actions"`
}

package service

import (
	"io"
	"mime/multipart"

	"github.com/ds124wfegd/fieldinspect/config"
	"github.com/ds124wfegd/fieldinspect/internal/database"
	"github.com/ds124wfegd/fieldinspect/internal/entity"
)

type ReportService interface {
	Create(req *entity.CreateReportRequest) (*entity.Report, error)
	GetAll() ([]*entity.Report, error)
	GetByID(id string) (*entity.Report, error)
	Update(id string, req *entity.UpdateReportRequest) (*entity.Report, error)
	Delete(id string) error

	AttachPhoto(reportID string, file *multipart.FileHeader) (*entity.Photo, error)
	PhotoReader(reportID, photoID string, annotated bool) (io.ReadCloser, string, error)

	ExportJSON(reportID string, w io.Writer) error
	ExportPDF(reportID string, w io.Writer) error
}

// AnnotationService manages live annotation and signature editing
// sessions. A session is created when the device opens an editor,
// mutated by gesture events, and discarded on save or cancel.
type AnnotationService interface {
	BeginPhotoSession(reportID, photoID string, req *entity.BeginSessionRequest) (*entity.BeginSessionResponse, error)
	BeginSignatureSession(reportID string, req *entity.BeginSessionRequest) (*entity.BeginSessionResponse, error)
	ApplyGestures(sessionID string, events []entity.GestureEvent) (*entity.SessionStateResponse, error)
	Undo(sessionID string) (*entity.SessionStateResponse, error)
	Preview(sessionID string, w io.Writer) error
	Save(sessionID string) error
	Cancel(sessionID string) error
}

type Service struct {
	Report     ReportService
	Annotation AnnotationService
}

func NewService(repo database.ReportRepository, cfg config.AppConfig) *Service {
	reports := NewReportService(repo)
	return &Service{
		Report:     reports,
		Annotation: NewAnnotationService(repo, cfg),
	}
}

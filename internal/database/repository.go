package database

import (
	"io"

	"github.com/ds124wfegd/fieldinspect/internal/entity"
	"github.com/ds124wfegd/fieldinspect/internal/pkg/storage"
)

type ReportRepository interface {
	Save(report *entity.Report) error
	FindByID(id string) (*entity.Report, error)
	FindAll() ([]*entity.Report, error)
	Delete(id string) error

	SavePhotoFile(reportID, photoID, kind string, data io.Reader) error
	GetPhotoFile(reportID, photoID, kind string) (io.ReadCloser, error)
	PhotoFilePath(reportID, photoID, kind string) string
	SaveSignatureFile(reportID string, data io.Reader) error
	GetSignatureFile(reportID string) (io.ReadCloser, error)
	SignatureFilePath(reportID string) string
}

// Photo file kinds stored per photo.
const (
	PhotoOriginal  = "original"
	PhotoAnnotated = "annotated"
)

type fileReportRepository struct {
	storage storage.FileStorage
}

func NewReportRepository(storage storage.FileStorage) ReportRepository {
	return &fileReportRepository{storage: storage}
}

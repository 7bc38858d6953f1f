package service

import (
	"bytes"
	"encoding/json"
	"fmt"
	"image"
	"io"
	"mime/multipart"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/ds124wfegd/fieldinspect/internal/database"
	"github.com/ds124wfegd/fieldinspect/internal/entity"
	"github.com/ds124wfegd/fieldinspect/internal/pkg/pdf"
)

type reportService struct {
	repo database.ReportRepository
}

func NewReportService(repo database.ReportRepository) ReportService {
	return &reportService{repo: repo}
}

func (s *reportService) Create(req *entity.CreateReportRequest) (*entity.Report, error) {
	now := time.Now()
	report := &entity.Report{
		ID:        uuid.New().String(),
		Title:     req.Title,
		Inspector: req.Inspector,
		Location:  req.Location,
		Notes:     req.Notes,
		Status:    entity.ReportStatusDraft,
		CreatedAt: now,
		UpdatedAt: now,
		Photos:    []entity.Photo{},
	}

	if err := s.repo.Save(report); err != nil {
		return nil, fmt.Errorf("failed to save report: %w", err)
	}
	return report, nil
}

func (s *reportService) GetAll() ([]*entity.Report, error) {
	return s.repo.FindAll()
}

func (s *reportService) GetByID(id string) (*entity.Report, error) {
	return s.repo.FindByID(id)
}

func (s *reportService) Update(id string, req *entity.UpdateReportRequest) (*entity.Report, error) {
	report, err := s.repo.FindByID(id)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		report.Title = *req.Title
	}
	if req.Inspector != nil {
		report.Inspector = *req.Inspector
	}
	if req.Location != nil {
		report.Location = *req.Location
	}
	if req.Notes != nil {
		report.Notes = *req.Notes
	}
	report.UpdatedAt = time.Now()

	if err := s.repo.Save(report); err != nil {
		return nil, fmt.Errorf("failed to save report: %w", err)
	}
	return report, nil
}

func (s *reportService) Delete(id string) error {
	return s.repo.Delete(id)
}

func (s *reportService) AttachPhoto(reportID string, file *multipart.FileHeader) (*entity.Photo, error) {
	report, err := s.repo.FindByID(reportID)
	if err != nil {
		return nil, err
	}

	src, err := file.Open()
	if err != nil {
		return nil, err
	}
	defer src.Close()

	data, err := io.ReadAll(src)
	if err != nil {
		return nil, err
	}

	// Natural dimensions are fixed at upload time; the annotation editor
	// derives its preview scale from them later.
	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", entity.ErrInvalidInput, err)
	}

	photo := entity.Photo{
		ID:       uuid.New().String() + strings.ToLower(filepath.Ext(file.Filename)),
		Filename: file.Filename,
		Width:    cfg.Width,
		Height:   cfg.Height,
	}

	if err := s.repo.SavePhotoFile(reportID, photo.ID, database.PhotoOriginal, bytes.NewReader(data)); err != nil {
		return nil, fmt.Errorf("failed to save photo file: %w", err)
	}

	report.Photos = append(report.Photos, photo)
	report.UpdatedAt = time.Now()
	if err := s.repo.Save(report); err != nil {
		return nil, fmt.Errorf("failed to save report: %w", err)
	}
	return &photo, nil
}

func (s *reportService) PhotoReader(reportID, photoID string, annotated bool) (io.ReadCloser, string, error) {
	report, err := s.repo.FindByID(reportID)
	if err != nil {
		return nil, "", err
	}

	found := false
	for _, p := range report.Photos {
		if p.ID == photoID {
			found = true
			break
		}
	}
	if !found {
		return nil, "", entity.ErrPhotoNotFound
	}

	kind := database.PhotoOriginal
	contentType := contentTypeByExt(photoID)
	if annotated {
		kind = database.PhotoAnnotated
		contentType = "image/jpeg"
	}

	reader, err := s.repo.GetPhotoFile(reportID, photoID, kind)
	if err != nil {
		return nil, "", err
	}
	return reader, contentType, nil
}

func (s *reportService) ExportJSON(reportID string, w io.Writer) error {
	report, err := s.repo.FindByID(reportID)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(report)
}

func (s *reportService) ExportPDF(reportID string, w io.Writer) error {
	report, err := s.repo.FindByID(reportID)
	if err != nil {
		return err
	}

	var photos []pdf.PhotoImage
	var closers []io.Closer
	defer func() {
		for _, c := range closers {
			c.Close()
		}
	}()

	for _, p := range report.Photos {
		// Prefer the flattened annotated raster; fall back to the
		// original upload.
		kind := database.PhotoOriginal
		imageType := imageTypeByExt(p.ID)
		if p.AnnotatedPath != "" {
			kind = database.PhotoAnnotated
			imageType = "JPG"
		}
		if imageType == "" {
			continue
		}

		reader, err := s.repo.GetPhotoFile(reportID, p.ID, kind)
		if err != nil {
			continue
		}
		closers = append(closers, reader)
		photos = append(photos, pdf.PhotoImage{
			Name:      p.Filename,
			ImageType: imageType,
			Reader:    reader,
			Width:     p.Width,
			Height:    p.Height,
		})
	}

	var signature *pdf.PhotoImage
	if report.SignaturePath != "" {
		reader, err := s.repo.GetSignatureFile(reportID)
		if err == nil {
			closers = append(closers, reader)
			signature = &pdf.PhotoImage{Name: "signature", ImageType: "PNG", Reader: reader}
		}
	}

	return pdf.Render(w, report, photos, signature)
}

func contentTypeByExt(name string) string {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".jpg", ".jpeg":
		return "image/jpeg"
	case ".png":
		return "image/png"
	case ".gif":
		return "image/gif"
	}
	return "application/octet-stream"
}

// imageTypeByExt maps a stored filename to a gofpdf image type. Formats
// gofpdf cannot embed return "".
func imageTypeByExt(name string) string {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".jpg", ".jpeg":
		return "JPG"
	case ".png":
		return "PNG"
	case ".gif":
		return "GIF"
	}
	return ""
}

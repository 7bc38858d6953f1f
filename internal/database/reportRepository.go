package database

import (
	"bytes"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/ds124wfegd/fieldinspect/internal/entity"
)

func (r *fileReportRepository) Save(report *entity.Report) error {
	data, err := json.Marshal(report)
	if err != nil {
		return err
	}
	return r.storage.Save(r.metadataPath(report.ID), bytes.NewReader(data))
}

func (r *fileReportRepository) FindByID(id string) (*entity.Report, error) {
	reader, err := r.storage.Get(r.metadataPath(id))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, entity.ErrReportNotFound
		}
		return nil, err
	}
	defer reader.Close()

	var report entity.Report
	if err := json.NewDecoder(reader).Decode(&report); err != nil {
		return nil, err
	}
	return &report, nil
}

func (r *fileReportRepository) FindAll() ([]*entity.Report, error) {
	names, err := r.storage.List("metadata")
	if err != nil {
		return nil, err
	}

	reports := make([]*entity.Report, 0, len(names))
	for _, name := range names {
		id := strings.TrimSuffix(name, ".json")
		if id == name {
			continue
		}
		report, err := r.FindByID(id)
		if err != nil {
			continue
		}
		reports = append(reports, report)
	}

	sort.Slice(reports, func(i, j int) bool {
		return reports[i].CreatedAt.After(reports[j].CreatedAt)
	})
	return reports, nil
}

func (r *fileReportRepository) Delete(id string) error {
	if err := r.storage.Delete(r.metadataPath(id)); err != nil {
		if os.IsNotExist(err) {
			return entity.ErrReportNotFound
		}
		return err
	}

	if err := r.storage.DeleteAll(filepath.Join("photos", id)); err != nil {
		return err
	}
	if err := r.storage.Delete(r.SignatureFilePath(id)); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

func (r *fileReportRepository) SavePhotoFile(reportID, photoID, kind string, data io.Reader) error {
	return r.storage.Save(r.PhotoFilePath(reportID, photoID, kind), data)
}

func (r *fileReportRepository) GetPhotoFile(reportID, photoID, kind string) (io.ReadCloser, error) {
	reader, err := r.storage.Get(r.PhotoFilePath(reportID, photoID, kind))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, entity.ErrPhotoNotFound
		}
		return nil, err
	}
	return reader, nil
}

func (r *fileReportRepository) PhotoFilePath(reportID, photoID, kind string) string {
	if kind == PhotoAnnotated {
		return filepath.Join("photos", reportID, photoID+"_annotated.jpg")
	}
	return filepath.Join("photos", reportID, photoID)
}

func (r *fileReportRepository) SaveSignatureFile(reportID string, data io.Reader) error {
	return r.storage.Save(r.SignatureFilePath(reportID), data)
}

func (r *fileReportRepository) GetSignatureFile(reportID string) (io.ReadCloser, error) {
	return r.storage.Get(r.SignatureFilePath(reportID))
}

func (r *fileReportRepository) SignatureFilePath(reportID string) string {
	return filepath.Join("signatures", reportID+".png")
}

func (r *fileReportRepository) metadataPath(id string) string {
	return filepath.Join("metadata", id+".json")
}

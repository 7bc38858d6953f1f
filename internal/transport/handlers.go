package transport

import (
	"github.com/ds124wfegd/fieldinspect/internal/service"
)

type ReportHandler struct {
	service        service.ReportService
	maxUploadBytes int64
}

func NewReportHandler(service service.ReportService, maxUploadSizeMB int64) *ReportHandler {
	return &ReportHandler{
		service:        service,
		maxUploadBytes: maxUploadSizeMB << 20,
	}
}

type AnnotationHandler struct {
	service service.AnnotationService
}

func NewAnnotationHandler(service service.AnnotationService) *AnnotationHandler {
	return &AnnotationHandler{service: service}
}

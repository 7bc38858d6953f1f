package transport

import (
	"errors"
	"io"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/ds124wfegd/fieldinspect/internal/entity"
)

func (h *ReportHandler) CreateReport(c *gin.Context) {
	var req entity.CreateReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	report, err := h.service.Create(&req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, report)
}

func (h *ReportHandler) GetAllReports(c *gin.Context) {
	reports, err := h.service.GetAll()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"reports": reports})
}

func (h *ReportHandler) GetReport(c *gin.Context) {
	report, err := h.service.GetByID(c.Param("id"))
	if err != nil {
		status(c, err)
		return
	}

	c.JSON(http.StatusOK, report)
}

func (h *ReportHandler) UpdateReport(c *gin.Context) {
	var req entity.UpdateReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	report, err := h.service.Update(c.Param("id"), &req)
	if err != nil {
		status(c, err)
		return
	}

	c.JSON(http.StatusOK, report)
}

func (h *ReportHandler) DeleteReport(c *gin.Context) {
	if err := h.service.Delete(c.Param("id")); err != nil {
		status(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Report deleted successfully"})
}

func (h *ReportHandler) UploadPhoto(c *gin.Context) {
	file, err := c.FormFile("photo")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No photo file provided"})
		return
	}

	if h.maxUploadBytes > 0 && file.Size > h.maxUploadBytes {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "Photo exceeds the upload size limit"})
		return
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	if !isValidImageType(ext) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid image type. Supported: jpg, jpeg, png, gif"})
		return
	}

	photo, err := h.service.AttachPhoto(c.Param("id"), file)
	if err != nil {
		status(c, err)
		return
	}

	c.JSON(http.StatusCreated, entity.UploadPhotoResponse{
		ID:     photo.ID,
		Width:  photo.Width,
		Height: photo.Height,
	})
}

func (h *ReportHandler) GetPhoto(c *gin.Context) {
	annotated := c.Query("variant") == "annotated"

	reader, contentType, err := h.service.PhotoReader(c.Param("id"), c.Param("photo_id"), annotated)
	if err != nil {
		status(c, err)
		return
	}
	defer reader.Close()

	c.Header("Content-Type", contentType)
	c.Status(http.StatusOK)
	if _, err := io.Copy(c.Writer, reader); err != nil {
		c.Abort()
	}
}

func (h *ReportHandler) ExportJSON(c *gin.Context) {
	c.Header("Content-Type", "application/json")
	c.Header("Content-Disposition", "attachment; filename=report.json")
	if err := h.service.ExportJSON(c.Param("id"), c.Writer); err != nil {
		status(c, err)
	}
}

func (h *ReportHandler) ExportPDF(c *gin.Context) {
	c.Header("Content-Type", "application/pdf")
	c.Header("Content-Disposition", "attachment; filename=report.pdf")
	if err := h.service.ExportPDF(c.Param("id"), c.Writer); err != nil {
		status(c, err)
	}
}

// status maps service errors onto HTTP status codes.
func status(c *gin.Context, err error) {
	switch {
	case errors.Is(err, entity.ErrReportNotFound),
		errors.Is(err, entity.ErrPhotoNotFound),
		errors.Is(err, entity.ErrSessionNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, entity.ErrInvalidInput),
		errors.Is(err, entity.ErrInvalidTool),
		errors.Is(err, entity.ErrInvalidColor),
		errors.Is(err, entity.ErrInvalidWidth),
		errors.Is(err, entity.ErrInvalidGesture),
		errors.Is(err, entity.ErrToolDisabled):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, entity.ErrImageNotReady):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}

func isValidImageType(ext string) bool {
	validTypes := map[string]bool{
		".jpg":  true,
		".jpeg": true,
		".png":  true,
		".gif":  true,
	}
	return validTypes[ext]
}

package transport

import (
	"bytes"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ds124wfegd/fieldinspect/internal/entity"
)

func (h *AnnotationHandler) BeginPhotoSession(c *gin.Context) {
	var req entity.BeginSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	resp, err := h.service.BeginPhotoSession(c.Param("id"), c.Param("photo_id"), &req)
	if err != nil {
		status(c, err)
		return
	}

	c.JSON(http.StatusCreated, resp)
}

func (h *AnnotationHandler) BeginSignatureSession(c *gin.Context) {
	var req entity.BeginSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	resp, err := h.service.BeginSignatureSession(c.Param("id"), &req)
	if err != nil {
		status(c, err)
		return
	}

	c.JSON(http.StatusCreated, resp)
}

func (h *AnnotationHandler) ApplyGestures(c *gin.Context) {
	var req struct {
		Events []entity.GestureEvent `json:"events" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	resp, err := h.service.ApplyGestures(c.Param("id"), req.Events)
	if err != nil {
		status(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *AnnotationHandler) Undo(c *gin.Context) {
	resp, err := h.service.Undo(c.Param("id"))
	if err != nil {
		status(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *AnnotationHandler) Preview(c *gin.Context) {
	var buf bytes.Buffer
	if err := h.service.Preview(c.Param("id"), &buf); err != nil {
		status(c, err)
		return
	}

	c.Data(http.StatusOK, "image/png", buf.Bytes())
}

func (h *AnnotationHandler) Save(c *gin.Context) {
	if err := h.service.Save(c.Param("id")); err != nil {
		status(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Annotations saved"})
}

func (h *AnnotationHandler) Cancel(c *gin.Context) {
	if err := h.service.Cancel(c.Param("id")); err != nil {
		status(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Session discarded"})
}

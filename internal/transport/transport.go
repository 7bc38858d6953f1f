package transport

import (
	"github.com/gin-gonic/gin"

	"github.com/ds124wfegd/fieldinspect/internal/transport/middleware"
)

func InitRoutes(reportHandler *ReportHandler, annotationHandler *AnnotationHandler) *gin.Engine {

	router := gin.New()

	// Middleware
	router.Use(gin.Recovery())
	router.Use(middleware.CORS())
	router.Use(middleware.Logger())
	router.Use(middleware.Timeout(30))

	// API routes
	api := router.Group("/api/v1")
	{
		// Report routes
		reports := api.Group("/reports")
		{
			reports.POST("", reportHandler.CreateReport)
			reports.GET("", reportHandler.GetAllReports)
			reports.GET("/:id", reportHandler.GetReport)
			reports.PUT("/:id", reportHandler.UpdateReport)
			reports.DELETE("/:id", reportHandler.DeleteReport)

			reports.POST("/:id/photos", reportHandler.UploadPhoto)
			reports.GET("/:id/photos/:photo_id", reportHandler.GetPhoto)

			reports.GET("/:id/export/json", reportHandler.ExportJSON)
			reports.GET("/:id/export/pdf", reportHandler.ExportPDF)

			reports.POST("/:id/photos/:photo_id/annotate", annotationHandler.BeginPhotoSession)
			reports.POST("/:id/sign", annotationHandler.BeginSignatureSession)
		}

		// Annotation session routes
		sessions := api.Group("/sessions")
		{
			sessions.POST("/:id/gestures", annotationHandler.ApplyGestures)
			sessions.POST("/:id/undo", annotationHandler.Undo)
			sessions.GET("/:id/preview", annotationHandler.Preview)
			sessions.POST("/:id/save", annotationHandler.Save)
			sessions.DELETE("/:id", annotationHandler.Cancel)
		}
	}

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"service": "field-inspection-service",
		})
	})

	return router
}

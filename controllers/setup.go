package controllers

import (
	"errors"
	"log"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"stat-reports-api/repository"
	"stat-reports-api/services"
)

var (
	store           repository.Store
	fileStore       services.FileStore
	notifications   *services.NotificationService
	deadlineService *services.DeadlineService
	reportService   *services.ReportService
	commentService  *services.CommentService
	templateService *services.TemplateService
)

// Setup wires the controllers to their services. Must be called once after
// the database is initialized.
func Setup(db *gorm.DB) {
	uploadPath := os.Getenv("UPLOAD_PATH")
	files, err := services.NewLocalFileStore(uploadPath)
	if err != nil {
		log.Fatal("Failed to initialize file store:", err)
	}

	store = repository.NewStore(db)
	fileStore = files
	notifications = services.NewNotificationService(store)
	deadlineService = services.NewDeadlineService(store, files)
	reportService = services.NewReportService(store, files, notifications)
	commentService = services.NewCommentService(store)
	templateService = services.NewTemplateService(store, files, deadlineService)
}

// abortWithServiceError translates the service error taxonomy into HTTP
// responses: not-found sentinels become 404, invalid-state sentinels 409,
// bad input 400, everything else 500.
func abortWithServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrDeadlineNotFound),
		errors.Is(err, services.ErrReportNotFound),
		errors.Is(err, services.ErrTemplateNotFound),
		errors.Is(err, services.ErrBranchNotFound),
		errors.Is(err, services.ErrCommentNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrInvalidStatusTransition),
		errors.Is(err, services.ErrNoLinkedReport):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrEmptyFile),
		errors.Is(err, services.ErrUnknownPeriodicity):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		log.Printf("internal error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}

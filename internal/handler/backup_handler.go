package handler

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/culiplan/culiplan-api/internal/models"
	appErrors "github.com/culiplan/culiplan-api/pkg/errors"
	"github.com/culiplan/culiplan-api/pkg/response"
)

type backupService interface {
	BuildBackup(ctx context.Context) (models.BackupDocument, error)
	ImportBackup(ctx context.Context, doc models.BackupDocument) error
}

// BackupHandler exposes the manual save/restore endpoints.
type BackupHandler struct {
	service backupService
}

// NewBackupHandler builds a new handler.
func NewBackupHandler(service backupService) *BackupHandler {
	return &BackupHandler{service: service}
}

// Download godoc
// @Summary Download a full JSON backup
// @Tags Backup
// @Produce json
// @Success 200 {object} models.BackupDocument
// @Security BearerAuth
// @Router /backup [get]
func (h *BackupHandler) Download(c *gin.Context) {
	doc, err := h.service.BuildBackup(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	filename := fmt.Sprintf("culiplan_backup_%s.json", doc.Timestamp)
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.JSON(http.StatusOK, doc)
}

// Import godoc
// @Summary Restore state from an uploaded backup
// @Tags Backup
// @Accept json
// @Produce json
// @Param payload body models.BackupDocument true "Backup document"
// @Success 204
// @Security BearerAuth
// @Router /backup [post]
func (h *BackupHandler) Import(c *gin.Context) {
	var doc models.BackupDocument
	if err := c.ShouldBindJSON(&doc); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid backup document"))
		return
	}
	if err := h.service.ImportBackup(c.Request.Context(), doc); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

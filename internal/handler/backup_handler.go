package handler

import (
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/bidyaloy/shikkha-api/internal/service"
	appErrors "github.com/bidyaloy/shikkha-api/pkg/errors"
	"github.com/bidyaloy/shikkha-api/pkg/response"
)

// maxRestoreBytes caps restore uploads at 25 MiB.
const maxRestoreBytes = 25 << 20

// BackupHandler exposes snapshot backup and restore endpoints.
type BackupHandler struct {
	backups *service.BackupService
}

// NewBackupHandler constructs BackupHandler.
func NewBackupHandler(backups *service.BackupService) *BackupHandler {
	return &BackupHandler{backups: backups}
}

// Create godoc
// @Summary Export the current snapshot to a backup file
// @Tags Backups
// @Produce json
// @Security BearerAuth
// @Success 201 {object} response.Envelope
// @Router /backups [post]
func (h *BackupHandler) Create(c *gin.Context) {
	info, token, err := h.backups.CreateBackup(c.Request.Context(), "manual")
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, gin.H{"backup": info, "downloadToken": token})
}

// List godoc
// @Summary List backup files on disk
// @Tags Backups
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Envelope
// @Router /backups [get]
func (h *BackupHandler) List(c *gin.Context) {
	backups, err := h.backups.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, backups, nil)
}

// Restore godoc
// @Summary Replace all state with an uploaded snapshot
// @Tags Backups
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 204
// @Router /backups/restore [post]
func (h *BackupHandler) Restore(c *gin.Context) {
	raw, err := io.ReadAll(io.LimitReader(c.Request.Body, maxRestoreBytes))
	if err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "unable to read upload"))
		return
	}
	if err := h.backups.Restore(c.Request.Context(), raw); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// Delete godoc
// @Summary Delete a backup file
// @Tags Backups
// @Produce json
// @Security BearerAuth
// @Param id path string true "Backup filename"
// @Success 204
// @Router /backups/{id} [delete]
func (h *BackupHandler) Delete(c *gin.Context) {
	if err := h.backups.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// DownloadToken godoc
// @Summary Mint a signed download token for a backup file
// @Tags Backups
// @Produce json
// @Security BearerAuth
// @Param id path string true "Backup filename"
// @Success 200 {object} response.Envelope
// @Router /backups/{id}/token [post]
func (h *BackupHandler) DownloadToken(c *gin.Context) {
	token, expiresAt, err := h.backups.SignedDownloadToken(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, gin.H{"token": token, "expiresAt": expiresAt}, nil)
}

// Download godoc
// @Summary Download a backup file with a signed token
// @Tags Backups
// @Produce application/json
// @Param token query string true "Signed download token"
// @Success 200 {file} file
// @Router /backups/download [get]
func (h *BackupHandler) Download(c *gin.Context) {
	data, filename, err := h.backups.ResolveDownload(c.Request.Context(), c.Query("token"))
	if err != nil {
		response.Error(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/json", data)
}

// Archived godoc
// @Summary List snapshots archived to the database
// @Tags Backups
// @Produce json
// @Security BearerAuth
// @Param limit query int false "Max records (default 20)"
// @Success 200 {object} response.Envelope
// @Router /backups/archive [get]
func (h *BackupHandler) Archived(c *gin.Context) {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if err != nil || limit < 1 {
		limit = 20
	}
	records, err := h.backups.ArchivedSnapshots(c.Request.Context(), limit)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, records, nil)
}

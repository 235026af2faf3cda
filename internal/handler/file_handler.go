package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"rugops/internal/service"
)

// FileHandler handles file upload and download endpoints.
type FileHandler struct {
	fileService service.FileService
}

// NewFileHandler creates a new FileHandler.
func NewFileHandler(fileService service.FileService) *FileHandler {
	return &FileHandler{fileService: fileService}
}

// Upload godoc
// @Summary      Upload a file
// @Description  Uploads a rug photo or document (pdf, jpg, png) to object storage
// @Tags         files
// @Accept       multipart/form-data
// @Produce      json
// @Param        file formData file true "File to upload"
// @Param        job_id formData string false "Job to attach the file to"
// @Success      201 {object} Response{data=domain.FileMeta}
// @Failure      400 {object} ErrorResponseBody
// @Failure      413 {object} ErrorResponseBody
// @Security     BearerAuth
// @Router       /api/v1/files [post]
func (h *FileHandler) Upload(c *gin.Context) {
	tenantID, userID, _, ok := extractAuthContext(c)
	if !ok {
		return
	}

	file, header, err := c.Request.FormFile("file")
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "missing file field")
		return
	}
	defer file.Close()

	var jobID *uuid.UUID
	if raw := c.PostForm("job_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "invalid job_id")
			return
		}
		jobID = &id
	}

	meta, err := h.fileService.Upload(c.Request.Context(), service.FileUploadInput{
		TenantID:   tenantID,
		JobID:      jobID,
		UploadedBy: userID,
		File:       file,
		Header:     header,
	})
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondCreated(c, meta)
}

// List godoc
// @Summary      List files
// @Tags         files
// @Produce      json
// @Param        offset query int false "Pagination offset" default(0)
// @Param        limit query int false "Page size" default(20)
// @Param        job_id query string false "Only files attached to this job"
// @Success      200 {object} Response{data=[]domain.FileMeta}
// @Failure      401 {object} ErrorResponseBody
// @Security     BearerAuth
// @Router       /api/v1/files [get]
func (h *FileHandler) List(c *gin.Context) {
	tenantID, _, _, ok := extractAuthContext(c)
	if !ok {
		return
	}
	offset, limit := parsePagination(c)

	if raw := c.Query("job_id"); raw != "" {
		jobID, err := uuid.Parse(raw)
		if err != nil {
			RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "invalid job_id")
			return
		}
		files, total, err := h.fileService.ListByJob(c.Request.Context(), tenantID, jobID, offset, limit)
		if err != nil {
			HandleError(c, err)
			return
		}
		RespondPaginated(c, files, PagMeta{Total: total, Offset: offset, Limit: limit})
		return
	}

	files, total, err := h.fileService.List(c.Request.Context(), tenantID, offset, limit)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondPaginated(c, files, PagMeta{Total: total, Offset: offset, Limit: limit})
}

// Get godoc
// @Summary      Get file metadata
// @Tags         files
// @Produce      json
// @Param        id path string true "File ID"
// @Success      200 {object} Response{data=domain.FileMeta}
// @Failure      404 {object} ErrorResponseBody
// @Security     BearerAuth
// @Router       /api/v1/files/{id} [get]
func (h *FileHandler) Get(c *gin.Context) {
	tenantID, _, _, ok := extractAuthContext(c)
	if !ok {
		return
	}
	fileID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "invalid file ID")
		return
	}

	meta, err := h.fileService.GetByID(c.Request.Context(), tenantID, fileID)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, meta)
}

// DownloadURL godoc
// @Summary      Get a presigned download URL
// @Tags         files
// @Produce      json
// @Param        id path string true "File ID"
// @Success      200 {object} Response{data=DownloadURLResponse}
// @Failure      404 {object} ErrorResponseBody
// @Security     BearerAuth
// @Router       /api/v1/files/{id}/download [get]
func (h *FileHandler) DownloadURL(c *gin.Context) {
	tenantID, _, _, ok := extractAuthContext(c)
	if !ok {
		return
	}
	fileID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "invalid file ID")
		return
	}

	url, err := h.fileService.GetDownloadURL(c.Request.Context(), tenantID, fileID)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, DownloadURLResponse{URL: url})
}

// Delete godoc
// @Summary      Delete a file
// @Description  Removes the object from storage and soft-deletes its metadata
// @Tags         files
// @Produce      json
// @Param        id path string true "File ID"
// @Success      200 {object} Response{data=MessageResponse}
// @Failure      404 {object} ErrorResponseBody
// @Security     BearerAuth
// @Router       /api/v1/files/{id} [delete]
func (h *FileHandler) Delete(c *gin.Context) {
	tenantID, _, _, ok := extractAuthContext(c)
	if !ok {
		return
	}
	fileID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "invalid file ID")
		return
	}

	if err := h.fileService.Delete(c.Request.Context(), tenantID, fileID); err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, MessageResponse{Message: "file deleted"})
}

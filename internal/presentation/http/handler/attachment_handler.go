package handler

import (
	"io"

	"github.com/aushadhi/pharmacy-api/internal/application/service"
	"github.com/aushadhi/pharmacy-api/internal/presentation/http/dto/response"
	"github.com/gin-gonic/gin"
)

// AttachmentHandler handles prescription and invoice scan uploads
type AttachmentHandler struct {
	attachmentService *service.AttachmentService
}

// NewAttachmentHandler creates a new attachment handler
func NewAttachmentHandler(attachmentService *service.AttachmentService) *AttachmentHandler {
	return &AttachmentHandler{attachmentService: attachmentService}
}

// Upload handles a multipart file upload
func (h *AttachmentHandler) Upload(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		response.BadRequest(c, "A file is required")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		response.BadRequest(c, "Could not read uploaded file")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		response.BadRequest(c, "Could not read uploaded file")
		return
	}

	attachment, err := h.attachmentService.Upload(c.Request.Context(), &service.UploadInput{
		FileName:    fileHeader.Filename,
		ContentType: fileHeader.Header.Get("Content-Type"),
		Data:        data,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "File uploaded successfully", attachment)
}

// Download handles streaming an attachment's bytes back to the caller
func (h *AttachmentHandler) Download(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid attachment ID")
		return
	}

	attachment, err := h.attachmentService.GetAttachment(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	contentType := attachment.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	c.Header("Content-Disposition", `attachment; filename="`+attachment.FileName+`"`)
	c.Data(200, contentType, attachment.Data)
}

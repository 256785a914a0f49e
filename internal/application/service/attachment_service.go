package service

import (
	"context"

	"github.com/aushadhi/pharmacy-api/internal/domain/entity"
	"github.com/aushadhi/pharmacy-api/internal/domain/repository"
	"github.com/aushadhi/pharmacy-api/pkg/apperror"
	"github.com/google/uuid"
)

// maxAttachmentSize caps uploads at 10 MiB
const maxAttachmentSize = 10 << 20

// AttachmentService stores prescription images and invoice scans as opaque
// blobs. Uploads happen before checkout; the sale or purchase flow links
// them by ID inside its transaction.
type AttachmentService struct {
	attachmentRepo repository.AttachmentRepository
}

// NewAttachmentService creates a new attachment service
func NewAttachmentService(attachmentRepo repository.AttachmentRepository) *AttachmentService {
	return &AttachmentService{attachmentRepo: attachmentRepo}
}

// UploadInput represents the attachment upload input
type UploadInput struct {
	FileName    string
	ContentType string
	Data        []byte
}

// Upload stores a blob and returns its record. The bytes are never
// interpreted.
func (s *AttachmentService) Upload(ctx context.Context, input *UploadInput) (*entity.Attachment, error) {
	if input.FileName == "" {
		return nil, apperror.NewValidationError("file name is required")
	}
	if len(input.Data) == 0 {
		return nil, apperror.NewValidationError("file is empty")
	}
	if len(input.Data) > maxAttachmentSize {
		return nil, apperror.NewValidationError("file exceeds the 10 MiB limit")
	}

	attachment := &entity.Attachment{
		FileName:    input.FileName,
		ContentType: input.ContentType,
		Size:        int64(len(input.Data)),
		Data:        input.Data,
	}
	if err := s.attachmentRepo.Create(ctx, attachment); err != nil {
		return nil, err
	}
	return attachment, nil
}

// GetAttachment retrieves an attachment with its bytes
func (s *AttachmentService) GetAttachment(ctx context.Context, id uuid.UUID) (*entity.Attachment, error) {
	attachment, err := s.attachmentRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if attachment == nil {
		return nil, apperror.NewNotFoundError("Attachment")
	}
	return attachment, nil
}

package repository

import (
	"context"

	"github.com/aushadhi/pharmacy-api/internal/domain/entity"
	"github.com/google/uuid"
)

// SettingsRepository defines the interface for GST settings storage
type SettingsRepository interface {
	Get(ctx context.Context) (*entity.GSTSettings, error)
	Update(ctx context.Context, settings *entity.GSTSettings) error
}

// UserRepository defines the interface for user data operations
type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	Update(ctx context.Context, user *entity.User) error
}

// AttachmentRepository defines the interface for the keyed blob store
type AttachmentRepository interface {
	Create(ctx context.Context, attachment *entity.Attachment) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Attachment, error)
	// AttachToSale links already-uploaded attachments to a sale
	AttachToSale(ctx context.Context, saleID uuid.UUID, ids []uuid.UUID) error
	// AttachToPurchase links already-uploaded attachments to a purchase
	AttachToPurchase(ctx context.Context, purchaseID uuid.UUID, ids []uuid.UUID) error
}

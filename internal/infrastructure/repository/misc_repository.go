package repository

import (
	"context"
	"errors"

	"github.com/aushadhi/pharmacy-api/internal/domain/entity"
	domainRepo "github.com/aushadhi/pharmacy-api/internal/domain/repository"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type settingsRepository struct {
	db *gorm.DB
}

// NewSettingsRepository creates a new settings repository
func NewSettingsRepository(db *gorm.DB) domainRepo.SettingsRepository {
	return &settingsRepository{db: db}
}

func (r *settingsRepository) Get(ctx context.Context) (*entity.GSTSettings, error) {
	var settings entity.GSTSettings
	err := dbFrom(ctx, r.db).First(&settings).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		// defaults until the first explicit update
		return &entity.GSTSettings{Subsidized: 5, General: 12, Food: 18}, nil
	}
	if err != nil {
		return nil, err
	}
	return &settings, nil
}

func (r *settingsRepository) Update(ctx context.Context, settings *entity.GSTSettings) error {
	return dbFrom(ctx, r.db).Save(settings).Error
}

type userRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *gorm.DB) domainRepo.UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(ctx context.Context, user *entity.User) error {
	return dbFrom(ctx, r.db).Create(user).Error
}

func (r *userRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	var user entity.User
	err := dbFrom(ctx, r.db).First(&user, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	var user entity.User
	err := dbFrom(ctx, r.db).First(&user, "email = ?", email).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) Update(ctx context.Context, user *entity.User) error {
	return dbFrom(ctx, r.db).Save(user).Error
}

type attachmentRepository struct {
	db *gorm.DB
}

// NewAttachmentRepository creates a new attachment repository
func NewAttachmentRepository(db *gorm.DB) domainRepo.AttachmentRepository {
	return &attachmentRepository{db: db}
}

func (r *attachmentRepository) Create(ctx context.Context, attachment *entity.Attachment) error {
	return dbFrom(ctx, r.db).Create(attachment).Error
}

func (r *attachmentRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Attachment, error) {
	var attachment entity.Attachment
	err := dbFrom(ctx, r.db).First(&attachment, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &attachment, nil
}

func (r *attachmentRepository) AttachToSale(ctx context.Context, saleID uuid.UUID, ids []uuid.UUID) error {
	return dbFrom(ctx, r.db).Model(&entity.Attachment{}).
		Where("id IN ?", ids).
		Update("sale_id", saleID).Error
}

func (r *attachmentRepository) AttachToPurchase(ctx context.Context, purchaseID uuid.UUID, ids []uuid.UUID) error {
	return dbFrom(ctx, r.db).Model(&entity.Attachment{}).
		Where("id IN ?", ids).
		Update("purchase_id", purchaseID).Error
}

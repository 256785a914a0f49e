package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Attachment is an opaque blob (prescription image, supplier invoice scan)
// referenced by sales and purchases. The engine never interprets the bytes.
type Attachment struct {
	ID          uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	FileName    string         `gorm:"size:255;not null" json:"file_name"`
	ContentType string         `gorm:"size:100" json:"content_type"`
	Size        int64          `gorm:"not null" json:"size"`
	Data        []byte         `gorm:"type:bytea" json:"-"`
	SaleID      *uuid.UUID     `gorm:"type:uuid;index" json:"sale_id,omitempty"`
	PurchaseID  *uuid.UUID     `gorm:"type:uuid;index" json:"purchase_id,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

// BeforeCreate generates a UUID before creating a new attachment
func (a *Attachment) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Attachment model
func (Attachment) TableName() string {
	return "attachments"
}

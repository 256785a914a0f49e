package entity

import (
	"time"

	"github.com/aushadhi/pharmacy-api/internal/domain/enum"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Purchase represents a stock receipt from a supplier
type Purchase struct {
	ID            uuid.UUID          `gorm:"type:uuid;primary_key" json:"id"`
	SupplierID    uuid.UUID          `gorm:"type:uuid;not null;index" json:"supplier_id"`
	InvoiceNumber *string            `gorm:"size:100" json:"invoice_number,omitempty"`
	Date          time.Time          `gorm:"not null;index" json:"date"`
	SubTotal      float64            `gorm:"type:decimal(15,2);default:0" json:"sub_total"`
	SGST          float64            `gorm:"type:decimal(15,2);default:0;column:sgst" json:"sgst"`
	CGST          float64            `gorm:"type:decimal(15,2);default:0;column:cgst" json:"cgst"`
	Total         float64            `gorm:"type:decimal(15,2);default:0" json:"total"`
	Status        enum.PaymentStatus `gorm:"size:20;not null" json:"status"`
	PaymentMethod *string            `gorm:"size:50" json:"payment_method,omitempty"`
	AmountPaid    float64            `gorm:"type:decimal(15,2);default:0" json:"amount_paid"`
	Due           float64            `gorm:"type:decimal(15,2);default:0" json:"due"`
	Notes         *string            `gorm:"type:text" json:"notes,omitempty"`
	SourceFileID  *uuid.UUID         `gorm:"type:uuid" json:"source_file_id,omitempty"`
	CreatedAt     time.Time          `json:"created_at"`
	UpdatedAt     time.Time          `json:"updated_at"`
	DeletedAt     gorm.DeletedAt     `gorm:"index" json:"-"`

	// Relationships
	Supplier Supplier       `gorm:"foreignKey:SupplierID" json:"supplier,omitempty"`
	Items    []PurchaseItem `gorm:"foreignKey:PurchaseID" json:"items,omitempty"`
}

// BeforeCreate generates a UUID before creating a new purchase
func (p *Purchase) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Purchase model
func (Purchase) TableName() string {
	return "purchases"
}

// PurchaseItem is one received line. Amount is the pre-tax line value
// (quantity x cost price less supplier discount).
type PurchaseItem struct {
	ID          uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	PurchaseID  uuid.UUID      `gorm:"type:uuid;not null;index" json:"purchase_id"`
	ProductID   uuid.UUID      `gorm:"type:uuid;not null;index" json:"product_id"`
	BatchID     uuid.UUID      `gorm:"type:uuid;not null;index" json:"batch_id"`
	ProductName string         `gorm:"size:255;not null" json:"product_name"`
	Quantity    int            `gorm:"not null" json:"quantity"`
	Price       float64        `gorm:"type:decimal(15,2);not null" json:"price"`
	Amount      float64        `gorm:"type:decimal(15,2);not null" json:"amount"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Purchase Purchase `gorm:"foreignKey:PurchaseID" json:"-"`
	Product  Product  `gorm:"foreignKey:ProductID" json:"-"`
}

// BeforeCreate generates a UUID before creating a new purchase item
func (pi *PurchaseItem) BeforeCreate(tx *gorm.DB) error {
	if pi.ID == uuid.Nil {
		pi.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the PurchaseItem model
func (PurchaseItem) TableName() string {
	return "purchase_items"
}

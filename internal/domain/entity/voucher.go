package entity

import (
	"time"

	"github.com/aushadhi/pharmacy-api/internal/domain/enum"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Voucher is store credit issued on a customer return. The balance only ever
// decreases; once it reaches zero the voucher is marked used and can no
// longer be applied to a bill.
type Voucher struct {
	ID            uuid.UUID          `gorm:"type:uuid;primary_key" json:"id"`
	VoucherNo     string             `gorm:"size:100;unique;not null" json:"voucher_no"`
	CustomerName  *string            `gorm:"size:255" json:"customer_name,omitempty"`
	InitialAmount float64            `gorm:"type:decimal(15,2);not null" json:"initial_amount"`
	Balance       float64            `gorm:"type:decimal(15,2);not null" json:"balance"`
	CreatedDate   time.Time          `gorm:"not null" json:"created_date"`
	Status        enum.VoucherStatus `gorm:"size:20;not null;default:'active'" json:"status"`
	CreatedAt     time.Time          `json:"created_at"`
	UpdatedAt     time.Time          `json:"updated_at"`
	DeletedAt     gorm.DeletedAt     `gorm:"index" json:"-"`
}

// BeforeCreate generates a UUID before creating a new voucher
func (v *Voucher) BeforeCreate(tx *gorm.DB) error {
	if v.ID == uuid.Nil {
		v.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Voucher model
func (Voucher) TableName() string {
	return "vouchers"
}

// Redeemable reports whether the voucher can still be applied to a bill
func (v *Voucher) Redeemable() bool {
	return v.Status == enum.VoucherStatusActive && v.Balance > 0
}

// CreditNote is supplier-side credit issued on a supplier return, offset
// against a future purchase payable.
type CreditNote struct {
	ID                uuid.UUID             `gorm:"type:uuid;primary_key" json:"id"`
	CreditNoteNo      string                `gorm:"size:100;unique;not null" json:"credit_note_no"`
	SupplierID        uuid.UUID             `gorm:"type:uuid;not null;index" json:"supplier_id"`
	SupplierReturnID  uuid.UUID             `gorm:"type:uuid;not null;index" json:"supplier_return_id"`
	Amount            float64               `gorm:"type:decimal(15,2);not null" json:"amount"`
	Date              time.Time             `gorm:"not null" json:"date"`
	Status            enum.CreditNoteStatus `gorm:"size:20;not null;default:'open'" json:"status"`
	AppliedPurchaseID *uuid.UUID            `gorm:"type:uuid" json:"applied_purchase_id,omitempty"`
	CreatedAt         time.Time             `json:"created_at"`
	UpdatedAt         time.Time             `json:"updated_at"`
	DeletedAt         gorm.DeletedAt        `gorm:"index" json:"-"`

	// Relationships
	Supplier Supplier `gorm:"foreignKey:SupplierID" json:"-"`
}

// BeforeCreate generates a UUID before creating a new credit note
func (cn *CreditNote) BeforeCreate(tx *gorm.DB) error {
	if cn.ID == uuid.Nil {
		cn.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the CreditNote model
func (CreditNote) TableName() string {
	return "credit_notes"
}

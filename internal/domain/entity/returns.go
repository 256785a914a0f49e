package entity

import (
	"time"

	"github.com/aushadhi/pharmacy-api/internal/domain/enum"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CustomerReturn records goods handed back by a customer against a prior
// sale. Settlement is either a cash refund (posted to the journal) or a
// store-credit voucher.
type CustomerReturn struct {
	ID           uuid.UUID               `gorm:"type:uuid;primary_key" json:"id"`
	ReturnNo     string                  `gorm:"size:100;unique;not null" json:"return_no"`
	SaleID       uuid.UUID               `gorm:"type:uuid;not null;index" json:"sale_id"`
	CustomerName *string                 `gorm:"size:255" json:"customer_name,omitempty"`
	TotalAmount  float64                 `gorm:"type:decimal(15,2);not null" json:"total_amount"`
	SGST         float64                 `gorm:"type:decimal(15,2);default:0;column:sgst" json:"sgst"`
	CGST         float64                 `gorm:"type:decimal(15,2);default:0;column:cgst" json:"cgst"`
	Settlement   enum.CustomerSettlement `gorm:"size:20;not null" json:"settlement"`
	VoucherID    *uuid.UUID              `gorm:"type:uuid" json:"voucher_id,omitempty"`
	Date         time.Time               `gorm:"not null;index" json:"date"`
	CreatedAt    time.Time               `json:"created_at"`
	UpdatedAt    time.Time               `json:"updated_at"`
	DeletedAt    gorm.DeletedAt          `gorm:"index" json:"-"`

	// Relationships
	Sale  Sale                 `gorm:"foreignKey:SaleID" json:"-"`
	Items []CustomerReturnItem `gorm:"foreignKey:ReturnID" json:"items,omitempty"`
}

// BeforeCreate generates a UUID before creating a new customer return
func (r *CustomerReturn) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the CustomerReturn model
func (CustomerReturn) TableName() string {
	return "customer_returns"
}

// CustomerReturnItem is one returned line restocked into its original batch
type CustomerReturnItem struct {
	ID          uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	ReturnID    uuid.UUID      `gorm:"type:uuid;not null;index" json:"return_id"`
	ProductID   uuid.UUID      `gorm:"type:uuid;not null;index" json:"product_id"`
	BatchID     uuid.UUID      `gorm:"type:uuid;not null" json:"batch_id"`
	ProductName string         `gorm:"size:255;not null" json:"product_name"`
	Quantity    int            `gorm:"not null" json:"quantity"`
	Price       float64        `gorm:"type:decimal(15,2);not null" json:"price"`
	Discount    float64        `gorm:"type:decimal(5,2);default:0" json:"discount"`
	Amount      float64        `gorm:"type:decimal(15,2);not null" json:"amount"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

// BeforeCreate generates a UUID before creating a new customer return item
func (ri *CustomerReturnItem) BeforeCreate(tx *gorm.DB) error {
	if ri.ID == uuid.Nil {
		ri.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the CustomerReturnItem model
func (CustomerReturnItem) TableName() string {
	return "customer_return_items"
}

// SupplierReturn records goods sent back to a supplier against a prior
// purchase. Settlement is either a credit note to offset a future payable or
// an immediate ledger adjustment against the supplier's account.
type SupplierReturn struct {
	ID           uuid.UUID               `gorm:"type:uuid;primary_key" json:"id"`
	ReturnNo     string                  `gorm:"size:100;unique;not null" json:"return_no"`
	PurchaseID   uuid.UUID               `gorm:"type:uuid;not null;index" json:"purchase_id"`
	SupplierID   uuid.UUID               `gorm:"type:uuid;not null;index" json:"supplier_id"`
	TotalAmount  float64                 `gorm:"type:decimal(15,2);not null" json:"total_amount"`
	Settlement   enum.SupplierSettlement `gorm:"size:30;not null" json:"settlement"`
	CreditNoteID *uuid.UUID              `gorm:"type:uuid" json:"credit_note_id,omitempty"`
	Date         time.Time               `gorm:"not null;index" json:"date"`
	CreatedAt    time.Time               `json:"created_at"`
	UpdatedAt    time.Time               `json:"updated_at"`
	DeletedAt    gorm.DeletedAt          `gorm:"index" json:"-"`

	// Relationships
	Purchase Purchase             `gorm:"foreignKey:PurchaseID" json:"-"`
	Supplier Supplier             `gorm:"foreignKey:SupplierID" json:"-"`
	Items    []SupplierReturnItem `gorm:"foreignKey:ReturnID" json:"items,omitempty"`
}

// BeforeCreate generates a UUID before creating a new supplier return
func (r *SupplierReturn) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the SupplierReturn model
func (SupplierReturn) TableName() string {
	return "supplier_returns"
}

// SupplierReturnItem is one returned line drawn back out of its batch
type SupplierReturnItem struct {
	ID          uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	ReturnID    uuid.UUID      `gorm:"type:uuid;not null;index" json:"return_id"`
	ProductID   uuid.UUID      `gorm:"type:uuid;not null;index" json:"product_id"`
	BatchID     uuid.UUID      `gorm:"type:uuid;not null" json:"batch_id"`
	ProductName string         `gorm:"size:255;not null" json:"product_name"`
	Quantity    int            `gorm:"not null" json:"quantity"`
	Price       float64        `gorm:"type:decimal(15,2);not null" json:"price"`
	Discount    float64        `gorm:"type:decimal(5,2);default:0" json:"discount"`
	Amount      float64        `gorm:"type:decimal(15,2);not null" json:"amount"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

// BeforeCreate generates a UUID before creating a new supplier return item
func (ri *SupplierReturnItem) BeforeCreate(tx *gorm.DB) error {
	if ri.ID == uuid.Nil {
		ri.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the SupplierReturnItem model
func (SupplierReturnItem) TableName() string {
	return "supplier_return_items"
}

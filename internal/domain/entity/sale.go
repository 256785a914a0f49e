package entity

import (
	"time"

	"github.com/aushadhi/pharmacy-api/internal/domain/enum"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Sale represents one checkout. It is append-only: created once and never
// mutated afterwards except for payment status transitions.
type Sale struct {
	ID              uuid.UUID          `gorm:"type:uuid;primary_key" json:"id"`
	BillNo          string             `gorm:"size:100;unique;not null" json:"bill_no"`
	CustomerID      *uuid.UUID         `gorm:"type:uuid;index" json:"customer_id,omitempty"`
	CustomerName    *string            `gorm:"size:255" json:"customer_name,omitempty"`
	DoctorName      *string            `gorm:"size:255" json:"doctor_name,omitempty"`
	DoctorRegNo     *string            `gorm:"size:100" json:"doctor_reg_no,omitempty"`
	IsRGHS          bool               `gorm:"default:false;column:is_rghs" json:"is_rghs"`
	Date            time.Time          `gorm:"not null;index" json:"date"`
	SubTotal        float64            `gorm:"type:decimal(15,2);default:0" json:"sub_total"`
	DiscountPercent float64            `gorm:"type:decimal(5,2);default:0" json:"discount_percent"`
	DiscountAmount  float64            `gorm:"type:decimal(15,2);default:0" json:"discount_amount"`
	VoucherID       *uuid.UUID         `gorm:"type:uuid;index" json:"voucher_id,omitempty"`
	VoucherAmount   float64            `gorm:"type:decimal(15,2);default:0" json:"voucher_amount"`
	TaxableValue    float64            `gorm:"type:decimal(15,2);default:0" json:"taxable_value"`
	SGST            float64            `gorm:"type:decimal(15,2);default:0;column:sgst" json:"sgst"`
	CGST            float64            `gorm:"type:decimal(15,2);default:0;column:cgst" json:"cgst"`
	Total           float64            `gorm:"type:decimal(15,2);default:0" json:"total"`
	Status          enum.PaymentStatus `gorm:"size:20;not null" json:"status"`
	PaymentMethod   *string            `gorm:"size:50" json:"payment_method,omitempty"`
	AmountPaid      float64            `gorm:"type:decimal(15,2);default:0" json:"amount_paid"`
	Due             float64            `gorm:"type:decimal(15,2);default:0" json:"due"`
	CreatedAt       time.Time          `json:"created_at"`
	UpdatedAt       time.Time          `json:"updated_at"`
	DeletedAt       gorm.DeletedAt     `gorm:"index" json:"-"`

	// Relationships
	Customer      *Customer    `gorm:"foreignKey:CustomerID" json:"customer,omitempty"`
	Items         []SaleItem   `gorm:"foreignKey:SaleID" json:"items,omitempty"`
	Prescriptions []Attachment `gorm:"foreignKey:SaleID" json:"prescriptions,omitempty"`
}

// BeforeCreate generates a UUID before creating a new sale
func (s *Sale) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Sale model
func (Sale) TableName() string {
	return "sales"
}

// SaleItem is one billed line: a quantity drawn from a specific batch at the
// MRP frozen at the time of sale.
type SaleItem struct {
	ID          uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	SaleID      uuid.UUID      `gorm:"type:uuid;not null;index" json:"sale_id"`
	ProductID   uuid.UUID      `gorm:"type:uuid;not null;index" json:"product_id"`
	BatchID     uuid.UUID      `gorm:"type:uuid;not null;index" json:"batch_id"`
	ProductName string         `gorm:"size:255;not null" json:"product_name"`
	Quantity    int            `gorm:"not null" json:"quantity"`
	Price       float64        `gorm:"type:decimal(15,2);not null" json:"price"`
	TaxRate     float64        `gorm:"type:decimal(5,2);default:0" json:"tax_rate"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Sale    Sale    `gorm:"foreignKey:SaleID" json:"-"`
	Product Product `gorm:"foreignKey:ProductID" json:"-"`
}

// BeforeCreate generates a UUID before creating a new sale item
func (si *SaleItem) BeforeCreate(tx *gorm.DB) error {
	if si.ID == uuid.Nil {
		si.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the SaleItem model
func (SaleItem) TableName() string {
	return "sale_items"
}

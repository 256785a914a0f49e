package entity

import (
	"time"

	"github.com/aushadhi/pharmacy-api/internal/domain/enum"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Product represents a drug or other retail item in the inventory.
// Pricing and stock live on batches; the product carries the tax
// classification (HSN code) and the prescription schedule.
type Product struct {
	ID           uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	HSNCode      string         `gorm:"size:20;not null;index;column:hsn_code" json:"hsn_code"`
	Name         string         `gorm:"size:255;not null;index" json:"name"`
	Pack         string         `gorm:"size:100" json:"pack"`
	Manufacturer string         `gorm:"size:255" json:"manufacturer"`
	Salts        *string        `gorm:"type:text" json:"salts,omitempty"`
	Schedule     enum.Schedule  `gorm:"size:20;default:'none'" json:"schedule"`
	Category     *string        `gorm:"size:100" json:"category,omitempty"`
	MinStock     int            `gorm:"default:0" json:"min_stock"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Batches []Batch `gorm:"foreignKey:ProductID" json:"batches,omitempty"`
}

// BeforeCreate generates a UUID before creating a new product
func (p *Product) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Product model
func (Product) TableName() string {
	return "products"
}

// TotalStock sums the stock across all batches of the product
func (p *Product) TotalStock() int {
	total := 0
	for _, b := range p.Batches {
		total += b.Stock
	}
	return total
}

// Batch represents one production lot of a product with its own expiry,
// stock count and pricing. Stock never goes below zero; the conditional
// UPDATE in the batch repository enforces this at the database level.
type Batch struct {
	ID           uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	ProductID    uuid.UUID      `gorm:"type:uuid;not null;index" json:"product_id"`
	BatchNumber  string         `gorm:"size:100;not null" json:"batch_number"`
	ExpiryDate   time.Time      `gorm:"type:date;not null;index" json:"expiry_date"`
	Stock        int            `gorm:"not null;default:0;check:stock >= 0" json:"stock"`
	MRP          float64        `gorm:"type:decimal(15,2);not null;column:mrp" json:"mrp"`
	Price        float64        `gorm:"type:decimal(15,2);not null" json:"price"`
	Discount     float64        `gorm:"type:decimal(5,2);default:0" json:"discount"`
	SaleDiscount *float64       `gorm:"type:decimal(5,2)" json:"sale_discount,omitempty"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Product Product `gorm:"foreignKey:ProductID" json:"-"`
}

// BeforeCreate generates a UUID before creating a new batch
func (b *Batch) BeforeCreate(tx *gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Batch model
func (Batch) TableName() string {
	return "batches"
}

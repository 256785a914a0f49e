package entity

import "time"

// GSTSettings holds the configurable GST rate bands, in percent. The HSN
// prefix of a product selects which band applies to it.
type GSTSettings struct {
	ID         uint      `gorm:"primary_key" json:"id"`
	Subsidized float64   `gorm:"type:decimal(5,2);not null" json:"subsidized"`
	General    float64   `gorm:"type:decimal(5,2);not null" json:"general"`
	Food       float64   `gorm:"type:decimal(5,2);not null" json:"food"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// TableName returns the table name for the GSTSettings model
func (GSTSettings) TableName() string {
	return "gst_settings"
}

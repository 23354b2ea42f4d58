package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Product is static reference data looked up by barcode before a scan. The
// per-unit Points here take precedence over the waste-type table when a
// barcode resolves.
type Product struct {
	ID          string    `gorm:"primaryKey;size:36" json:"id"`
	Barcode     string    `gorm:"uniqueIndex;not null" json:"barcode"`
	Name        string    `gorm:"not null" json:"name"`
	Brand       string    `json:"brand,omitempty"`
	Type        string    `gorm:"not null" json:"type"`
	Points      int       `gorm:"not null;default:10" json:"points"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}

func (p *Product) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}

// Package models contains the GORM models and error types for the EcoRed
// Comunal backend.
package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// EcotramaUser is an account in the EcoTrama companion app.
//
// Rank and League are denormalized from Points for query convenience; every
// points-mutating path recomputes them through the ranking package before
// persisting.
type EcotramaUser struct {
	ID               string    `gorm:"primaryKey;size:36" json:"id"`
	Email            string    `gorm:"uniqueIndex;not null" json:"email"`
	Password         string    `gorm:"not null" json:"-"`
	Name             string    `gorm:"not null" json:"name"`
	Points           int       `gorm:"not null;default:0" json:"points"`
	Level            int       `gorm:"not null;default:1" json:"level"`
	Rank             string    `gorm:"not null;default:EcoAliado" json:"rank"`
	League           string    `gorm:"not null;default:Local" json:"league"`
	CarbonSaved      int       `gorm:"not null;default:0" json:"carbonSaved"`
	HouseholdAddress string    `json:"householdAddress,omitempty"`
	TotalScans       int       `gorm:"not null;default:0" json:"totalScans"`
	CreatedAt        time.Time `json:"createdAt"`
}

func (EcotramaUser) TableName() string { return "ecotrama_users" }

// BeforeCreate assigns a generated unique id, matching the persisted layout
// where every record is keyed by one.
func (u *EcotramaUser) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	return nil
}

// Scan is an append-only record of one barcode/waste scan. Never updated or
// deleted; PointsEarned is immutable after creation.
type Scan struct {
	ID           string    `gorm:"primaryKey;size:36" json:"id"`
	UserID       string    `gorm:"size:36;not null;index" json:"userId"`
	WasteType    string    `gorm:"not null" json:"wasteType"`
	Quantity     int       `gorm:"not null;default:1" json:"quantity"`
	PointsEarned int       `gorm:"not null" json:"pointsEarned"`
	ScannedAt    time.Time `json:"scannedAt"`
}

func (s *Scan) BeforeCreate(tx *gorm.DB) error {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	return nil
}

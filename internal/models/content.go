package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// BlogPost is a marketing-site content record.
type BlogPost struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"`
	Title     string    `gorm:"not null" json:"title"`
	Slug      string    `gorm:"uniqueIndex;not null" json:"slug"`
	Excerpt   string    `gorm:"not null" json:"excerpt"`
	Content   string    `gorm:"not null" json:"content"`
	Category  string    `gorm:"not null" json:"category"`
	Image     string    `json:"image,omitempty"`
	Author    string    `gorm:"default:EcoRed Comunal" json:"author"`
	Published bool      `gorm:"default:false" json:"published"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (p *BlogPost) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}

// RecyclingStats holds the per-community aggregate counters shown on the
// dashboard. Seeded and updated manually, never derived.
type RecyclingStats struct {
	ID                      string    `gorm:"primaryKey;size:36" json:"id"`
	CommunityName           string    `gorm:"uniqueIndex;not null" json:"communityName"`
	MaterialsRecycled       int       `gorm:"default:0" json:"materialsRecycled"`
	HouseholdsParticipating int       `gorm:"default:0" json:"householdsParticipating"`
	CO2Reduced              int       `gorm:"column:co2_reduced;default:0" json:"co2Reduced"`
	GreenJobsCreated        int       `gorm:"default:0" json:"greenJobsCreated"`
	UpdatedAt               time.Time `json:"updatedAt"`
}

func (RecyclingStats) TableName() string { return "recycling_stats" }

func (s *RecyclingStats) BeforeCreate(tx *gorm.DB) error {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	return nil
}

// ContactMessage is a write-once record from the contact form.
type ContactMessage struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"`
	Name      string    `gorm:"not null" json:"name"`
	Email     string    `gorm:"not null" json:"email"`
	Message   string    `gorm:"not null" json:"message"`
	CreatedAt time.Time `json:"createdAt"`
}

func (m *ContactMessage) BeforeCreate(tx *gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	return nil
}

// NewsletterSubscriber is a write-once subscription record. Subscribing an
// already-subscribed email returns the existing record unchanged.
type NewsletterSubscriber struct {
	ID           string    `gorm:"primaryKey;size:36" json:"id"`
	Email        string    `gorm:"uniqueIndex;not null" json:"email"`
	SubscribedAt time.Time `gorm:"autoCreateTime" json:"subscribedAt"`
}

func (s *NewsletterSubscriber) BeforeCreate(tx *gorm.DB) error {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	return nil
}

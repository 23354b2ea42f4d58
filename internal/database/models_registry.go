package database

import "github.com/yomanino/EcoRed-EcoTrama/internal/models"

// PersistentModels returns the authoritative set of schema-managed GORM models.
func PersistentModels() []interface{} {
	return []interface{}{
		&models.EcotramaUser{},
		&models.Scan{},
		&models.Product{},
		&models.BlogPost{},
		&models.RecyclingStats{},
		&models.ContactMessage{},
		&models.NewsletterSubscriber{},
	}
}

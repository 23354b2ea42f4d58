// Package repository implements the data access layer for the application.
package repository

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/yomanino/EcoRed-EcoTrama/internal/cache"
	"github.com/yomanino/EcoRed-EcoTrama/internal/models"
	"github.com/yomanino/EcoRed-EcoTrama/internal/ranking"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ScanResult is the outcome of a recorded scan.
type ScanResult struct {
	PointsEarned int         `json:"pointsEarned"`
	NewPoints    int         `json:"newPoints"`
	Scan         models.Scan `json:"scan"`
}

// EcotramaUserRepository defines persistence operations for EcoTrama accounts.
type EcotramaUserRepository interface {
	GetByID(ctx context.Context, id string) (*models.EcotramaUser, error)
	// GetByEmail returns (nil, nil) when no account exists for the email.
	GetByEmail(ctx context.Context, email string) (*models.EcotramaUser, error)
	Create(ctx context.Context, user *models.EcotramaUser) error
	// RecordScan applies one scan atomically: points, scan count, derived
	// rank/league/carbon, and the appended scan row move together.
	RecordScan(ctx context.Context, userID, wasteType string, quantity, pointsPerUnit int) (*ScanResult, error)
	// AddPoints grants points outside the scan flow (education activities).
	AddPoints(ctx context.Context, userID string, points int) (*models.EcotramaUser, error)
	Leaderboard(ctx context.Context, limit int) ([]models.EcotramaUser, error)
	ScansByUser(ctx context.Context, userID string, limit int) ([]models.Scan, error)
}

type ecotramaUserRepository struct {
	db *gorm.DB
}

// NewEcotramaUserRepository returns a new EcotramaUserRepository implementation.
func NewEcotramaUserRepository(db *gorm.DB) EcotramaUserRepository {
	return &ecotramaUserRepository{db: db}
}

func (r *ecotramaUserRepository) GetByID(ctx context.Context, id string) (*models.EcotramaUser, error) {
	var user models.EcotramaUser
	key := cache.UserKey(id)

	err := cache.Aside(ctx, key, &user, cache.UserTTL, func() error {
		if err := r.db.WithContext(ctx).First(&user, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.NewNotFoundError("Usuario no encontrado")
			}
			return models.NewInternalError(err)
		}
		return nil
	})

	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *ecotramaUserRepository) GetByEmail(ctx context.Context, email string) (*models.EcotramaUser, error) {
	var user models.EcotramaUser
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, models.NewInternalError(err)
	}
	return &user, nil
}

func (r *ecotramaUserRepository) Create(ctx context.Context, user *models.EcotramaUser) error {
	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		if isUniqueConstraintError(err) {
			return models.NewConflictError("El usuario ya existe")
		}
		return models.NewInternalError(err)
	}
	return nil
}

func (r *ecotramaUserRepository) RecordScan(ctx context.Context, userID, wasteType string, quantity, pointsPerUnit int) (*ScanResult, error) {
	if quantity < 1 {
		quantity = 1
	}

	var result ScanResult
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		q := tx
		// Row lock prevents two concurrent scans from losing an update.
		// SQLite serialises writers inside the transaction already.
		if tx.Dialector.Name() == "postgres" {
			q = tx.Clauses(clause.Locking{Strength: "UPDATE"})
		}

		var user models.EcotramaUser
		if err := q.First(&user, "id = ?", userID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.NewNotFoundError("Usuario no encontrado")
			}
			return models.NewInternalError(err)
		}

		pointsEarned := pointsPerUnit * quantity
		user.Points += pointsEarned
		user.TotalScans++
		user.Rank = ranking.Rank(user.Points)
		user.League = ranking.League(user.Points)
		user.CarbonSaved = ranking.CarbonSaved(user.Points)

		if err := tx.Save(&user).Error; err != nil {
			return models.NewInternalError(err)
		}

		scan := models.Scan{
			UserID:       userID,
			WasteType:    wasteType,
			Quantity:     quantity,
			PointsEarned: pointsEarned,
			ScannedAt:    time.Now(),
		}
		if err := tx.Create(&scan).Error; err != nil {
			return models.NewInternalError(err)
		}

		result = ScanResult{
			PointsEarned: pointsEarned,
			NewPoints:    user.Points,
			Scan:         scan,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	cache.InvalidateUser(ctx, userID)
	cache.InvalidateLeaderboard(ctx)
	return &result, nil
}

func (r *ecotramaUserRepository) AddPoints(ctx context.Context, userID string, points int) (*models.EcotramaUser, error) {
	var user models.EcotramaUser
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		q := tx
		if tx.Dialector.Name() == "postgres" {
			q = tx.Clauses(clause.Locking{Strength: "UPDATE"})
		}

		if err := q.First(&user, "id = ?", userID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.NewNotFoundError("Usuario no encontrado")
			}
			return models.NewInternalError(err)
		}

		user.Points += points
		user.Rank = ranking.Rank(user.Points)
		user.League = ranking.League(user.Points)

		if err := tx.Save(&user).Error; err != nil {
			return models.NewInternalError(err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	cache.InvalidateUser(ctx, userID)
	cache.InvalidateLeaderboard(ctx)
	return &user, nil
}

func (r *ecotramaUserRepository) Leaderboard(ctx context.Context, limit int) ([]models.EcotramaUser, error) {
	var users []models.EcotramaUser
	// Ties break by registration order so positions stay stable across reads.
	if err := r.db.WithContext(ctx).
		Order("points DESC").
		Order("created_at ASC").
		Limit(limit).
		Find(&users).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return users, nil
}

func (r *ecotramaUserRepository) ScansByUser(ctx context.Context, userID string, limit int) ([]models.Scan, error) {
	var scans []models.Scan
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("scanned_at DESC").
		Limit(limit).
		Find(&scans).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return scans, nil
}

// isUniqueConstraintError checks if a DB error is a unique constraint violation.
func isUniqueConstraintError(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	// PostgreSQL unique violation SQLSTATE 23505; SQLite says "UNIQUE constraint failed"
	return strings.Contains(msg, "duplicate key") ||
		strings.Contains(msg, "unique constraint") ||
		strings.Contains(msg, "23505")
}

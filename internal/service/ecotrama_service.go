// Package service implements the business operations of the EcoTrama app
// on top of the repository layer.
package service

import (
	"context"

	"github.com/yomanino/EcoRed-EcoTrama/internal/cache"
	"github.com/yomanino/EcoRed-EcoTrama/internal/models"
	"github.com/yomanino/EcoRed-EcoTrama/internal/observability"
	"github.com/yomanino/EcoRed-EcoTrama/internal/ranking"
	"github.com/yomanino/EcoRed-EcoTrama/internal/repository"
)

// LeaderboardSize is the number of entries the public leaderboard exposes.
const LeaderboardSize = 10

// EcotramaService orchestrates scan recording, education rewards and the
// leaderboard.
type EcotramaService struct {
	userRepo    repository.EcotramaUserRepository
	productRepo repository.ProductRepository
}

// NewEcotramaService creates a new EcotramaService.
func NewEcotramaService(userRepo repository.EcotramaUserRepository, productRepo repository.ProductRepository) *EcotramaService {
	return &EcotramaService{userRepo: userRepo, productRepo: productRepo}
}

// RecordScanInput carries one scan request. The HTTP boundary rejects
// non-positive quantities; for other callers a quantity below 1 is treated
// as 1.
type RecordScanInput struct {
	UserID    string
	WasteType string
	Quantity  int
	Barcode   string
}

// RecordScan awards points for a scan. When a barcode resolves to a catalog
// product, its per-unit point value takes precedence over the waste-type
// table; otherwise the table (with its default) applies.
func (s *EcotramaService) RecordScan(ctx context.Context, in RecordScanInput) (*repository.ScanResult, error) {
	quantity := in.Quantity
	if quantity < 1 {
		quantity = 1
	}

	pointsPerUnit := ranking.PointsForWasteType(in.WasteType)
	if in.Barcode != "" {
		product, err := s.productRepo.GetByBarcode(ctx, in.Barcode)
		if err != nil {
			return nil, err
		}
		if product != nil {
			pointsPerUnit = product.Points
		}
	}

	result, err := s.userRepo.RecordScan(ctx, in.UserID, in.WasteType, quantity, pointsPerUnit)
	if err != nil {
		return nil, err
	}

	observability.ScansRecorded.WithLabelValues(in.WasteType).Inc()
	observability.PointsAwarded.WithLabelValues("scan").Add(float64(result.PointsEarned))
	return result, nil
}

// CompleteEducation grants the fixed education reward to the user.
func (s *EcotramaService) CompleteEducation(ctx context.Context, userID string) (*models.EcotramaUser, error) {
	user, err := s.userRepo.AddPoints(ctx, userID, ranking.EducationPoints)
	if err != nil {
		return nil, err
	}

	observability.PointsAwarded.WithLabelValues("education").Add(float64(ranking.EducationPoints))
	return user, nil
}

// Leaderboard returns the top users by points, cached briefly since it is
// read on every app dashboard load.
func (s *EcotramaService) Leaderboard(ctx context.Context) ([]models.EcotramaUser, error) {
	var users []models.EcotramaUser
	err := cache.Aside(ctx, cache.LeaderboardKey, &users, cache.LeaderboardTTL, func() error {
		var fetchErr error
		users, fetchErr = s.userRepo.Leaderboard(ctx, LeaderboardSize)
		return fetchErr
	})
	if err != nil {
		return nil, err
	}
	return users, nil
}

// ScanHistory returns the user's recent scans, newest first.
func (s *EcotramaService) ScanHistory(ctx context.Context, userID string, limit int) ([]models.Scan, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	return s.userRepo.ScansByUser(ctx, userID, limit)
}

package repository

import (
	"context"
	"errors"
	"time"

	"github.com/yomanino/EcoRed-EcoTrama/internal/models"

	"gorm.io/gorm"
)

// BlogRepository defines persistence operations for blog posts.
type BlogRepository interface {
	Create(ctx context.Context, post *models.BlogPost) error
	// ListPublished returns published posts, newest first.
	ListPublished(ctx context.Context) ([]models.BlogPost, error)
	// GetBySlug returns (nil, nil) when no post matches the slug.
	GetBySlug(ctx context.Context, slug string) (*models.BlogPost, error)
}

// ContactRepository stores write-once contact messages.
type ContactRepository interface {
	Create(ctx context.Context, message *models.ContactMessage) error
	List(ctx context.Context) ([]models.ContactMessage, error)
}

// NewsletterRepository stores newsletter subscriptions.
type NewsletterRepository interface {
	// Subscribe is idempotent: an already-subscribed email returns the
	// existing record unchanged.
	Subscribe(ctx context.Context, email string) (*models.NewsletterSubscriber, error)
	List(ctx context.Context) ([]models.NewsletterSubscriber, error)
}

// StatsRepository stores per-community recycling counters.
type StatsRepository interface {
	List(ctx context.Context) ([]models.RecyclingStats, error)
	// Upsert creates or updates the counters for a community by name.
	Upsert(ctx context.Context, stats *models.RecyclingStats) (*models.RecyclingStats, error)
}

type blogRepository struct {
	db *gorm.DB
}

// NewBlogRepository returns a new BlogRepository implementation.
func NewBlogRepository(db *gorm.DB) BlogRepository {
	return &blogRepository{db: db}
}

func (r *blogRepository) Create(ctx context.Context, post *models.BlogPost) error {
	if err := r.db.WithContext(ctx).Create(post).Error; err != nil {
		if isUniqueConstraintError(err) {
			return models.NewConflictError("Ya existe un post con ese slug")
		}
		return models.NewInternalError(err)
	}
	return nil
}

func (r *blogRepository) ListPublished(ctx context.Context) ([]models.BlogPost, error) {
	var posts []models.BlogPost
	if err := r.db.WithContext(ctx).
		Where("published = ?", true).
		Order("created_at DESC").
		Find(&posts).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return posts, nil
}

func (r *blogRepository) GetBySlug(ctx context.Context, slug string) (*models.BlogPost, error) {
	var post models.BlogPost
	if err := r.db.WithContext(ctx).Where("slug = ?", slug).First(&post).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, models.NewInternalError(err)
	}
	return &post, nil
}

type contactRepository struct {
	db *gorm.DB
}

// NewContactRepository returns a new ContactRepository implementation.
func NewContactRepository(db *gorm.DB) ContactRepository {
	return &contactRepository{db: db}
}

func (r *contactRepository) Create(ctx context.Context, message *models.ContactMessage) error {
	if err := r.db.WithContext(ctx).Create(message).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *contactRepository) List(ctx context.Context) ([]models.ContactMessage, error) {
	var messages []models.ContactMessage
	if err := r.db.WithContext(ctx).Order("created_at DESC").Find(&messages).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return messages, nil
}

type newsletterRepository struct {
	db *gorm.DB
}

// NewNewsletterRepository returns a new NewsletterRepository implementation.
func NewNewsletterRepository(db *gorm.DB) NewsletterRepository {
	return &newsletterRepository{db: db}
}

func (r *newsletterRepository) Subscribe(ctx context.Context, email string) (*models.NewsletterSubscriber, error) {
	var existing models.NewsletterSubscriber
	err := r.db.WithContext(ctx).Where("email = ?", email).First(&existing).Error
	if err == nil {
		return &existing, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, models.NewInternalError(err)
	}

	subscriber := models.NewsletterSubscriber{Email: email, SubscribedAt: time.Now()}
	if err := r.db.WithContext(ctx).Create(&subscriber).Error; err != nil {
		// Lost the race to a concurrent subscribe; return the winner.
		if isUniqueConstraintError(err) {
			if err := r.db.WithContext(ctx).Where("email = ?", email).First(&existing).Error; err == nil {
				return &existing, nil
			}
		}
		return nil, models.NewInternalError(err)
	}
	return &subscriber, nil
}

func (r *newsletterRepository) List(ctx context.Context) ([]models.NewsletterSubscriber, error) {
	var subscribers []models.NewsletterSubscriber
	if err := r.db.WithContext(ctx).Find(&subscribers).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return subscribers, nil
}

type statsRepository struct {
	db *gorm.DB
}

// NewStatsRepository returns a new StatsRepository implementation.
func NewStatsRepository(db *gorm.DB) StatsRepository {
	return &statsRepository{db: db}
}

func (r *statsRepository) List(ctx context.Context) ([]models.RecyclingStats, error) {
	var stats []models.RecyclingStats
	if err := r.db.WithContext(ctx).Order("community_name ASC").Find(&stats).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return stats, nil
}

func (r *statsRepository) Upsert(ctx context.Context, stats *models.RecyclingStats) (*models.RecyclingStats, error) {
	var existing models.RecyclingStats
	err := r.db.WithContext(ctx).Where("community_name = ?", stats.CommunityName).First(&existing).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		if err := r.db.WithContext(ctx).Create(stats).Error; err != nil {
			return nil, models.NewInternalError(err)
		}
		return stats, nil
	case err != nil:
		return nil, models.NewInternalError(err)
	default:
		existing.MaterialsRecycled = stats.MaterialsRecycled
		existing.HouseholdsParticipating = stats.HouseholdsParticipating
		existing.CO2Reduced = stats.CO2Reduced
		existing.GreenJobsCreated = stats.GreenJobsCreated
		if err := r.db.WithContext(ctx).Save(&existing).Error; err != nil {
			return nil, models.NewInternalError(err)
		}
		return &existing, nil
	}
}

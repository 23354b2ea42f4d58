package repository

import (
	"context"
	"testing"

	"github.com/yomanino/EcoRed-EcoTrama/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewsletterSubscribe_Idempotent(t *testing.T) {
	repo := NewNewsletterRepository(testDB(t))
	ctx := context.Background()

	first, err := repo.Subscribe(ctx, "ana@example.com")
	require.NoError(t, err)
	require.NotEmpty(t, first.ID)

	second, err := repo.Subscribe(ctx, "ana@example.com")
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)

	subscribers, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, subscribers, 1)
}

func TestBlogCreate_DuplicateSlug(t *testing.T) {
	repo := NewBlogRepository(testDB(t))
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &models.BlogPost{
		Title: "Original", Slug: "compostaje-casero", Excerpt: "x", Content: "x", Category: "Educación",
	}))

	err := repo.Create(ctx, &models.BlogPost{
		Title: "Copia", Slug: "compostaje-casero", Excerpt: "y", Content: "y", Category: "Educación",
	})
	require.Error(t, err)

	appErr, ok := err.(*models.AppError)
	require.True(t, ok)
	assert.Equal(t, "CONFLICT", appErr.Code)
}

func TestBlogListPublished_ExcludesDrafts(t *testing.T) {
	repo := NewBlogRepository(testDB(t))
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &models.BlogPost{
		Title: "Publicado", Slug: "publicado", Excerpt: "x", Content: "x", Category: "Noticias", Published: true,
	}))
	require.NoError(t, repo.Create(ctx, &models.BlogPost{
		Title: "Borrador", Slug: "borrador", Excerpt: "x", Content: "x", Category: "Noticias",
	}))

	posts, err := repo.ListPublished(ctx)
	require.NoError(t, err)
	require.Len(t, posts, 1)
	assert.Equal(t, "publicado", posts[0].Slug)
}

func TestStatsUpsert(t *testing.T) {
	repo := NewStatsRepository(testDB(t))
	ctx := context.Background()

	created, err := repo.Upsert(ctx, &models.RecyclingStats{
		CommunityName:     "Barrio Cuba",
		MaterialsRecycled: 100,
	})
	require.NoError(t, err)
	require.NotEmpty(t, created.ID)

	updated, err := repo.Upsert(ctx, &models.RecyclingStats{
		CommunityName:     "Barrio Cuba",
		MaterialsRecycled: 250,
		CO2Reduced:        80,
	})
	require.NoError(t, err)
	// Same record, new counters.
	assert.Equal(t, created.ID, updated.ID)
	assert.Equal(t, 250, updated.MaterialsRecycled)
	assert.Equal(t, 80, updated.CO2Reduced)

	stats, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, stats, 1)
}

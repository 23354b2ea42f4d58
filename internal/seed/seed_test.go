package seed

import (
	"context"
	"testing"

	"github.com/yomanino/EcoRed-EcoTrama/internal/database"
	"github.com/yomanino/EcoRed-EcoTrama/internal/models"
	"github.com/yomanino/EcoRed-EcoTrama/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRun_SeedsBaseData(t *testing.T) {
	db, err := database.ConnectTest()
	require.NoError(t, err)

	require.NoError(t, Run(db, Options{}))

	var blogCount, statsCount, productCount int64
	require.NoError(t, db.Model(&models.BlogPost{}).Count(&blogCount).Error)
	require.NoError(t, db.Model(&models.RecyclingStats{}).Count(&statsCount).Error)
	require.NoError(t, db.Model(&models.Product{}).Count(&productCount).Error)

	assert.EqualValues(t, 3, blogCount)
	assert.EqualValues(t, 3, statsCount)
	assert.EqualValues(t, 5, productCount)

	stats, err := repository.NewStatsRepository(db).List(context.Background())
	require.NoError(t, err)
	for _, s := range stats {
		assert.GreaterOrEqual(t, s.MaterialsRecycled, 1000)
		assert.GreaterOrEqual(t, s.HouseholdsParticipating, 50)
	}
}

// Re-running the seeder must leave existing records alone, including the
// randomized community counters.
func TestRun_Idempotent(t *testing.T) {
	db, err := database.ConnectTest()
	require.NoError(t, err)

	require.NoError(t, Run(db, Options{}))

	before, err := repository.NewStatsRepository(db).List(context.Background())
	require.NoError(t, err)
	require.Len(t, before, 3)

	require.NoError(t, Run(db, Options{}))

	after, err := repository.NewStatsRepository(db).List(context.Background())
	require.NoError(t, err)
	require.Len(t, after, 3)
	for i := range before {
		assert.Equal(t, before[i].ID, after[i].ID)
		assert.Equal(t, before[i].MaterialsRecycled, after[i].MaterialsRecycled)
	}

	var blogCount int64
	require.NoError(t, db.Model(&models.BlogPost{}).Count(&blogCount).Error)
	assert.EqualValues(t, 3, blogCount)
}

func TestRun_DemoUsers(t *testing.T) {
	db, err := database.ConnectTest()
	require.NoError(t, err)

	require.NoError(t, Run(db, Options{NumUsers: 3}))

	var userCount int64
	require.NoError(t, db.Model(&models.EcotramaUser{}).Count(&userCount).Error)
	assert.EqualValues(t, 3, userCount)

	// Demo accounts log in with the shared development password.
	user, err := repository.NewEcotramaUserRepository(db).GetByEmail(context.Background(), "demo00@ecored.test")
	require.NoError(t, err)
	require.NotNil(t, user)
	assert.NotEmpty(t, user.Password)
}

package recaprepo

import (
	"context"
	"testing"
	"time"

	"riftrewind/internal/testutil"
	"riftrewind/pkg/database/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

func TestNewRecapRepository(t *testing.T) {
	repository := NewRecapRepository(&gorm.DB{})
	assert.NotNil(t, repository)
}

func TestRecapRepository(t *testing.T) {
	db, cleanup := testutil.NewTestConnection(t)
	defer cleanup()

	repository := NewRecapRepository(db)
	ctx := context.Background()

	_, err := repository.GetByUniqueId(ctx, "faker_kr1_kr")
	assert.ErrorIs(t, err, ErrRecapNotFound)

	recap := &models.PlayerRecap{
		UniqueID:   "faker_kr1_kr",
		Puuid:      "faker-puuid",
		GameName:   "Faker",
		TagLine:    "KR1",
		Region:     "kr",
		TotalGames: 10,
		Summary:    datatypes.JSON(`{"total_games":10}`),
	}
	require.NoError(t, repository.Upsert(ctx, recap))

	// Regenerating replaces the summary of the player.
	updated := &models.PlayerRecap{
		UniqueID:       "faker_kr1_kr",
		Puuid:          "faker-puuid",
		GameName:       "Faker",
		TagLine:        "KR1",
		Region:         "kr",
		TotalGames:     20,
		SkippedMatches: 1,
		Summary:        datatypes.JSON(`{"total_games":20}`),
	}
	require.NoError(t, repository.Upsert(ctx, updated))

	stored, err := repository.GetByUniqueId(ctx, "faker_kr1_kr")
	require.NoError(t, err)
	assert.Equal(t, 20, stored.TotalGames)
	assert.Equal(t, 1, stored.SkippedMatches)
	assert.JSONEq(t, `{"total_games":20}`, string(stored.Summary))

	var count int64
	require.NoError(t, db.Model(&models.PlayerRecap{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)

	// Nothing older than an hour ago.
	deleted, err := repository.DeleteOlderThan(ctx, time.Now().Add(-time.Hour))
	require.NoError(t, err)
	assert.Equal(t, int64(0), deleted)

	deleted, err = repository.DeleteOlderThan(ctx, time.Now().Add(time.Hour))
	require.NoError(t, err)
	assert.Equal(t, int64(1), deleted)
}

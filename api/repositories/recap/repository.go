package recaprepo

import (
	"context"
	"errors"
	"time"

	"riftrewind/pkg/database/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ErrRecapNotFound is returned when no recap was stored for the player.
var ErrRecapNotFound = errors.New("recap not found")

// RecapRepository is the public interface for accessing the stored recaps.
type RecapRepository interface {
	GetByUniqueId(ctx context.Context, uniqueId string) (*models.PlayerRecap, error)
	Upsert(ctx context.Context, recap *models.PlayerRecap) error
	DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}

// recapRepository repository structure.
type recapRepository struct {
	db *gorm.DB
}

// NewRecapRepository creates a recap repository.
func NewRecapRepository(db *gorm.DB) RecapRepository {
	return &recapRepository{db: db}
}

// GetByUniqueId returns the recap of a player.
func (rr *recapRepository) GetByUniqueId(ctx context.Context, uniqueId string) (*models.PlayerRecap, error) {
	var recap models.PlayerRecap

	err := rr.db.WithContext(ctx).
		Where("unique_id = ?", uniqueId).
		First(&recap).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRecapNotFound
		}
		return nil, err
	}

	return &recap, nil
}

// Upsert saves the recap, replacing the previous one of the player.
func (rr *recapRepository) Upsert(ctx context.Context, recap *models.PlayerRecap) error {
	return rr.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "unique_id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"puuid",
				"game_name",
				"tag_line",
				"region",
				"total_games",
				"skipped_matches",
				"summary",
				"updated_at",
			}),
		}).
		Create(recap).Error
}

// DeleteOlderThan removes the recaps not updated since the cutoff.
func (rr *recapRepository) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	result := rr.db.WithContext(ctx).
		Where("updated_at < ?", cutoff).
		Delete(&models.PlayerRecap{})

	return result.RowsAffected, result.Error
}

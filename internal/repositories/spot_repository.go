package repositories

import (
	"context"
	"errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"spotcheck/internal/models/db_models"
)

type SpotRepository interface {
	Upsert(ctx context.Context, spot *db_models.Spot) error
	GetBySourceID(ctx context.Context, sourceID string) (*db_models.Spot, error)
	List(ctx context.Context, page, pageSize int) ([]db_models.Spot, error)
}

type spotRepository struct {
	db *gorm.DB
}

func NewSpotRepository(db *gorm.DB) SpotRepository {
	return &spotRepository{db: db}
}

// Upsert refreshes a cached spot by its upstream content id so periodic
// syncs do not duplicate rows.
func (r *spotRepository) Upsert(ctx context.Context, spot *db_models.Spot) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "source_id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"name", "category", "address", "latitude", "longitude", "coin_reward", "updated_at",
			}),
		}).
		Create(spot).Error
}

func (r *spotRepository) GetBySourceID(ctx context.Context, sourceID string) (*db_models.Spot, error) {
	var spot db_models.Spot
	err := r.db.WithContext(ctx).
		First(&spot, "source_id = ?", sourceID).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &spot, nil
}

func (r *spotRepository) List(ctx context.Context, page, pageSize int) ([]db_models.Spot, error) {
	var spots []db_models.Spot
	offset := (page - 1) * pageSize

	err := r.db.WithContext(ctx).
		Order("name").
		Offset(offset).
		Limit(pageSize).
		Find(&spots).Error

	if err != nil {
		return nil, err
	}
	return spots, nil
}

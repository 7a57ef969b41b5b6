package repositories

import (
	"context"
	"errors"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"spotcheck/internal/models/db_models"
)

type CheckInRepository interface {
	Create(ctx context.Context, checkIn *db_models.CheckIn) (uuid.UUID, error)
	UpdatePhotoURL(ctx context.Context, id uuid.UUID, photoURL string) error
	Delete(ctx context.Context, id uuid.UUID) error

	GetByUserAndSpot(ctx context.Context, userID uuid.UUID, spotID string) (*db_models.CheckIn, error)
	ListByUser(ctx context.Context, userID uuid.UUID, page, pageSize int) ([]db_models.CheckIn, error)
}

// ErrDuplicateCheckIn is returned by Create when the composite unique index
// on (user_id, spot_id) rejects the row. This is the authoritative duplicate
// signal; the service's pre-check is only an optimization.
var ErrDuplicateCheckIn = errors.New("duplicate check-in")

type checkInRepository struct {
	db *gorm.DB
}

func NewCheckInRepository(db *gorm.DB) CheckInRepository {
	return &checkInRepository{db: db}
}

func (r *checkInRepository) Create(ctx context.Context, checkIn *db_models.CheckIn) (uuid.UUID, error) {
	if err := r.db.WithContext(ctx).Create(checkIn).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return uuid.Nil, ErrDuplicateCheckIn
		}
		return uuid.Nil, err
	}
	return checkIn.ID, nil
}

func (r *checkInRepository) UpdatePhotoURL(ctx context.Context, id uuid.UUID, photoURL string) error {
	result := r.db.WithContext(ctx).
		Model(&db_models.CheckIn{}).
		Where("id = ?", id).
		Update("photo_url", photoURL)

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *checkInRepository) Delete(ctx context.Context, id uuid.UUID) error {
	// Hard delete: a rolled-back provisional row must not linger as a
	// soft-deleted tombstone that still trips the unique index.
	err := r.db.WithContext(ctx).Unscoped().Delete(&db_models.CheckIn{}, "id = ?", id).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	return nil
}

func (r *checkInRepository) GetByUserAndSpot(ctx context.Context, userID uuid.UUID, spotID string) (*db_models.CheckIn, error) {
	var checkIn db_models.CheckIn
	err := r.db.WithContext(ctx).
		First(&checkIn, "user_id = ? AND spot_id = ?", userID, spotID).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &checkIn, nil
}

func (r *checkInRepository) ListByUser(ctx context.Context, userID uuid.UUID, page, pageSize int) ([]db_models.CheckIn, error) {
	var checkIns []db_models.CheckIn
	offset := (page - 1) * pageSize

	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Offset(offset).
		Limit(pageSize).
		Find(&checkIns).Error

	if err != nil {
		return nil, err
	}
	return checkIns, nil
}

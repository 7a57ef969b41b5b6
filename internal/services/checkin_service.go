package services

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"

	"spotcheck/internal/models/db_models"
	"spotcheck/internal/models/response_models"
	"spotcheck/internal/repositories"
	"spotcheck/pkg/geo"
	"spotcheck/pkg/saga"
	"spotcheck/pkg/utils"
)

// DefaultCoinReward is credited when the spot cache has no reward configured.
const DefaultCoinReward = 10

var allowedPhotoTypes = map[string]string{
	"image/jpeg": "jpg",
	"image/png":  "png",
	"image/webp": "webp",
}

// CheckInSubmission carries the parsed multipart fields of one submission.
type CheckInSubmission struct {
	SpotID           string
	SpotName         string
	Location         geo.Coordinates
	Timestamp        string
	Photo            []byte
	PhotoContentType string
}

type CheckInServiceInterface interface {
	Submit(ctx context.Context, userID uuid.UUID, sub CheckInSubmission) (response_models.CheckInResult, error)
	AlreadyCheckedIn(ctx context.Context, userID uuid.UUID, spotID string) (bool, error)
}

type CheckInService struct {
	checkInRepo repositories.CheckInRepository
	accountRepo repositories.AccountRepository
	spotRepo    repositories.SpotRepository
	storage     PhotoStorage
}

func NewCheckInService(
	checkInRepo repositories.CheckInRepository,
	accountRepo repositories.AccountRepository,
	spotRepo repositories.SpotRepository,
	storage PhotoStorage,
) CheckInServiceInterface {
	return &CheckInService{
		checkInRepo: checkInRepo,
		accountRepo: accountRepo,
		spotRepo:    spotRepo,
		storage:     storage,
	}
}

// Submit runs the submission pipeline: validate, duplicate pre-check,
// provisional insert, photo upload, finalize. The insert/upload/finalize
// stretch spans two systems with no shared transaction, so it runs as a
// compensated sequence: any failure after the insert deletes the provisional
// row again and the request leaves no durable state behind.
func (s *CheckInService) Submit(ctx context.Context, userID uuid.UUID, sub CheckInSubmission) (response_models.CheckInResult, error) {
	if err := validateSubmission(sub); err != nil {
		return response_models.CheckInResult{}, err
	}
	if userID == uuid.Nil {
		return response_models.CheckInResult{}, utils.ErrUserAuthFailed
	}

	existing, err := s.checkInRepo.GetByUserAndSpot(ctx, userID, sub.SpotID)
	if err != nil {
		log.Printf("Error checking existing check-in: %v", err)
		return response_models.CheckInResult{}, utils.ErrDatabaseError
	}
	if existing != nil {
		return response_models.CheckInResult{}, utils.ErrAlreadyCheckedIn
	}

	reward := s.rewardFor(ctx, sub.SpotID)

	record := &db_models.CheckIn{
		AccountID:          userID,
		SpotID:             sub.SpotID,
		SpotName:           sub.SpotName,
		PhotoURL:           "",
		LocationLat:        sub.Location.Lat,
		LocationLng:        sub.Location.Lng,
		CoinsEarned:        reward,
		VerificationStatus: db_models.VerificationPending,
	}

	key := photoKey(sub.SpotID, sub.PhotoContentType)
	var photoURL string
	uploaded := false

	steps := []saga.Step{
		{
			Name: "insert provisional record",
			Run: func(ctx context.Context) error {
				_, err := s.checkInRepo.Create(ctx, record)
				return err
			},
			Compensate: func(ctx context.Context) error {
				return s.checkInRepo.Delete(ctx, record.ID)
			},
		},
		{
			Name: "upload photo",
			Run: func(ctx context.Context) error {
				url, err := s.storage.Upload(ctx, key, sub.PhotoContentType, bytes.NewReader(sub.Photo))
				if err != nil {
					return fmt.Errorf("%w: %v", utils.ErrStorageError, err)
				}
				photoURL = url
				uploaded = true
				return nil
			},
			Compensate: func(ctx context.Context) error {
				if !uploaded {
					return nil
				}
				return s.storage.Delete(ctx, key)
			},
		},
		{
			Name: "finalize photo url",
			Run: func(ctx context.Context) error {
				return s.checkInRepo.UpdatePhotoURL(ctx, record.ID, photoURL)
			},
		},
	}

	if err := saga.Execute(ctx, steps); err != nil {
		if errors.Is(err, repositories.ErrDuplicateCheckIn) {
			// Lost the race against a concurrent submission for the
			// same (user, spot); same outcome as the pre-check.
			return response_models.CheckInResult{}, utils.ErrAlreadyCheckedIn
		}
		log.Printf("Check-in submission failed for user %s spot %s: %v", userID, sub.SpotID, err)
		if errors.Is(err, utils.ErrStorageError) {
			return response_models.CheckInResult{}, utils.ErrStorageError
		}
		return response_models.CheckInResult{}, utils.ErrDatabaseError
	}

	if err := s.accountRepo.AddCoins(ctx, userID, reward); err != nil {
		// The check-in itself is durable; the balance catches up on the
		// next successful credit.
		log.Printf("Error crediting %d coins to account %s: %v", reward, userID, err)
	}

	return response_models.CheckInResult{
		CheckInID:   record.ID.String(),
		PhotoURL:    photoURL,
		CoinsEarned: reward,
	}, nil
}

func (s *CheckInService) AlreadyCheckedIn(ctx context.Context, userID uuid.UUID, spotID string) (bool, error) {
	if spotID == "" {
		return false, utils.ErrMissingField
	}
	existing, err := s.checkInRepo.GetByUserAndSpot(ctx, userID, spotID)
	if err != nil {
		log.Printf("Error checking existing check-in: %v", err)
		return false, utils.ErrDatabaseError
	}
	return existing != nil, nil
}

func (s *CheckInService) rewardFor(ctx context.Context, spotID string) int {
	spot, err := s.spotRepo.GetBySourceID(ctx, spotID)
	if err != nil {
		log.Printf("Error looking up spot %s reward: %v", spotID, err)
		return DefaultCoinReward
	}
	if spot == nil || spot.CoinReward <= 0 {
		return DefaultCoinReward
	}
	return spot.CoinReward
}

func validateSubmission(sub CheckInSubmission) error {
	if sub.SpotID == "" || sub.SpotName == "" || sub.Timestamp == "" || len(sub.Photo) == 0 {
		return utils.ErrMissingField
	}
	if err := sub.Location.Validate(); err != nil {
		return utils.ErrMissingField
	}

	if _, ok := allowedPhotoTypes[sub.PhotoContentType]; !ok {
		return utils.ErrUnsupportedPhotoType
	}
	// The declared content-type is client-controlled; sniff the actual
	// bytes as well.
	if _, ok := allowedPhotoTypes[mimetype.Detect(sub.Photo).String()]; !ok {
		return utils.ErrUnsupportedPhotoType
	}
	return nil
}

func photoKey(spotID, contentType string) string {
	ext := allowedPhotoTypes[contentType]
	if ext == "" {
		ext = "bin"
	}
	return fmt.Sprintf("%s/%d.%s", spotID, time.Now().UnixNano(), ext)
}

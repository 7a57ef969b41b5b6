package services

import (
	"context"
	"log"

	"spotcheck/internal/models/db_models"
	"spotcheck/internal/models/response_models"
	"spotcheck/internal/repositories"
	"spotcheck/pkg/utils"
)

type SpotServiceInterface interface {
	GetSpotByID(ctx context.Context, id string) (response_models.Spot, error)
	ListSpots(ctx context.Context, page, pageSize int, includeDemo bool) ([]response_models.Spot, error)
	SyncSpot(ctx context.Context, sourceID string) (response_models.Spot, error)
}

type SpotService struct {
	spotRepo repositories.SpotRepository
	tourAPI  TourAPIClientInterface
}

func NewSpotService(spotRepo repositories.SpotRepository, tourAPI TourAPIClientInterface) SpotServiceInterface {
	return &SpotService{
		spotRepo: spotRepo,
		tourAPI:  tourAPI,
	}
}

func (s *SpotService) GetSpotByID(ctx context.Context, id string) (response_models.Spot, error) {
	spot, err := s.spotRepo.GetBySourceID(ctx, id)
	if err != nil {
		log.Printf("Error fetching spot: %v", err)
		return response_models.Spot{}, utils.ErrDatabaseError
	}
	if spot == nil {
		// Cache miss: fall through to the tourism API and cache the result.
		return s.SyncSpot(ctx, id)
	}
	return toSpotResponse(spot), nil
}

// ListSpots serves the cached spot listing. In test mode the synthetic demo
// spots are appended so the check-in flow can be exercised without travel.
func (s *SpotService) ListSpots(ctx context.Context, page, pageSize int, includeDemo bool) ([]response_models.Spot, error) {
	if page < 1 {
		return nil, utils.ErrInvalidPage
	}
	if pageSize < 1 || pageSize > 100 {
		return nil, utils.ErrInvalidPageSize
	}

	spots, err := s.spotRepo.List(ctx, page, pageSize)
	if err != nil {
		log.Printf("Error listing spots: %v", err)
		return nil, utils.ErrDatabaseError
	}

	responses := make([]response_models.Spot, 0, len(spots))
	for i := range spots {
		responses = append(responses, toSpotResponse(&spots[i]))
	}

	if includeDemo {
		responses = append(responses, DemoSpots()...)
	}

	return responses, nil
}

// SyncSpot fetches a spot from the tourism API and upserts it into the cache.
func (s *SpotService) SyncSpot(ctx context.Context, sourceID string) (response_models.Spot, error) {
	detail, err := s.tourAPI.FetchSpot(ctx, sourceID)
	if err != nil {
		log.Printf("Error fetching spot %s from tourism API: %v", sourceID, err)
		return response_models.Spot{}, utils.ErrSpotNotFound
	}

	spot := &db_models.Spot{
		Name:       detail.Title,
		Category:   detail.Category,
		Address:    detail.Address,
		Latitude:   detail.MapY,
		Longitude:  detail.MapX,
		CoinReward: DefaultCoinReward,
		SourceID:   detail.ContentID,
	}

	if err := s.spotRepo.Upsert(ctx, spot); err != nil {
		log.Printf("Error caching spot %s: %v", sourceID, err)
		return response_models.Spot{}, utils.ErrDatabaseError
	}

	return toSpotResponse(spot), nil
}

// DemoSpots are the synthetic entries surfaced in test mode, placed within
// walking distance of the demo center coordinate.
func DemoSpots() []response_models.Spot {
	return []response_models.Spot{
		{
			ID:         "demo-1",
			Name:       "데모 관광지 1",
			Category:   "demo",
			Address:    "울산광역시 남구",
			Latitude:   demoCenter.Lat,
			Longitude:  demoCenter.Lng,
			CoinReward: DefaultCoinReward,
		},
		{
			ID:         "demo-2",
			Name:       "데모 관광지 2",
			Category:   "demo",
			Address:    "울산광역시 남구",
			Latitude:   demoCenter.Lat + 0.001,
			Longitude:  demoCenter.Lng + 0.001,
			CoinReward: DefaultCoinReward,
		},
	}
}

func toSpotResponse(spot *db_models.Spot) response_models.Spot {
	return response_models.Spot{
		ID:         spot.SourceID,
		Name:       spot.Name,
		Category:   spot.Category,
		Address:    spot.Address,
		Latitude:   spot.Latitude,
		Longitude:  spot.Longitude,
		CoinReward: spot.CoinReward,
	}
}

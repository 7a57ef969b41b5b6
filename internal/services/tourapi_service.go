package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"sync"
	"time"
)

// SpotDetail is the slice of the tourism API's detailCommon response the
// check-in flow needs.
type SpotDetail struct {
	ContentID string
	Title     string
	Category  string
	Address   string
	MapX      float64 // longitude
	MapY      float64 // latitude
}

// --------- In-memory cache per content id ---------

type spotCacheEntry struct {
	Detail    SpotDetail
	ExpiresAt time.Time
}

type SpotDetailCache interface {
	Get(contentID string) (SpotDetail, bool)
	Set(contentID string, detail SpotDetail, ttl time.Duration)
}

type inMemorySpotCache struct {
	mu    sync.RWMutex
	store map[string]spotCacheEntry
}

func NewInMemorySpotCache() SpotDetailCache {
	return &inMemorySpotCache{store: make(map[string]spotCacheEntry)}
}

func (c *inMemorySpotCache) Get(contentID string) (SpotDetail, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	it, ok := c.store[contentID]
	if !ok || time.Now().After(it.ExpiresAt) {
		return SpotDetail{}, false
	}
	return it.Detail, true
}

func (c *inMemorySpotCache) Set(contentID string, detail SpotDetail, ttl time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.store[contentID] = spotCacheEntry{Detail: detail, ExpiresAt: time.Now().Add(ttl)}
}

// -------------- Tourism API client (detail-only) ---------------

type TourAPIClientInterface interface {
	FetchSpot(ctx context.Context, contentID string) (SpotDetail, error)
}

type TourAPIClient struct {
	HTTP       *http.Client
	ServiceKey string
	BaseURL    string
	Cache      SpotDetailCache
	DefaultTTL time.Duration
}

func NewTourAPIClient(cache SpotDetailCache) *TourAPIClient {
	key := os.Getenv("TOURAPI_SERVICE_KEY")
	if key == "" {
		panic("TOURAPI_SERVICE_KEY is empty")
	}
	baseURL := os.Getenv("TOURAPI_BASE_URL")
	if baseURL == "" {
		baseURL = "https://apis.data.go.kr/B551011/KorService1"
	}
	return &TourAPIClient{
		HTTP:       &http.Client{Timeout: 15 * time.Second},
		ServiceKey: key,
		BaseURL:    baseURL,
		Cache:      cache,
		DefaultTTL: 24 * time.Hour,
	}
}

type tourAPIResponse struct {
	Response struct {
		Body struct {
			Items struct {
				Item []struct {
					ContentID string `json:"contentid"`
					Title     string `json:"title"`
					Cat1      string `json:"cat1"`
					Addr1     string `json:"addr1"`
					MapX      string `json:"mapx"`
					MapY      string `json:"mapy"`
				} `json:"item"`
			} `json:"items"`
		} `json:"body"`
	} `json:"response"`
}

func (c *TourAPIClient) FetchSpot(ctx context.Context, contentID string) (SpotDetail, error) {
	if contentID == "" {
		return SpotDetail{}, fmt.Errorf("empty content id")
	}

	if detail, ok := c.Cache.Get(contentID); ok {
		return detail, nil
	}

	q := url.Values{}
	q.Set("serviceKey", c.ServiceKey)
	q.Set("contentId", contentID)
	q.Set("MobileOS", "ETC")
	q.Set("MobileApp", "spotcheck")
	q.Set("_type", "json")
	q.Set("defaultYN", "Y")
	q.Set("addrinfoYN", "Y")
	q.Set("mapinfoYN", "Y")

	reqURL := fmt.Sprintf("%s/detailCommon1?%s", c.BaseURL, q.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return SpotDetail{}, err
	}

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return SpotDetail{}, fmt.Errorf("tourism api: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return SpotDetail{}, fmt.Errorf("tourism api: status %d", resp.StatusCode)
	}

	var parsed tourAPIResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return SpotDetail{}, fmt.Errorf("tourism api: %w", err)
	}

	items := parsed.Response.Body.Items.Item
	if len(items) == 0 {
		return SpotDetail{}, fmt.Errorf("tourism api: content %s not found", contentID)
	}

	item := items[0]
	detail := SpotDetail{
		ContentID: item.ContentID,
		Title:     item.Title,
		Category:  item.Cat1,
		Address:   item.Addr1,
		MapX:      parseCoord(item.MapX),
		MapY:      parseCoord(item.MapY),
	}

	c.Cache.Set(contentID, detail, c.DefaultTTL)
	return detail, nil
}

func parseCoord(s string) float64 {
	var v float64
	fmt.Sscanf(s, "%g", &v)
	return v
}

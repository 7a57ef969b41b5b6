package orchestrator

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"time"

	"spotcheck/internal/models/response_models"
)

// APIClient talks to the check-in endpoints over HTTP. It implements both
// SubmitClient and SpotLoader.
type APIClient struct {
	HTTP    *http.Client
	BaseURL string
	Token   string
}

func NewAPIClient(baseURL, token string) *APIClient {
	return &APIClient{
		HTTP:    &http.Client{Timeout: 30 * time.Second},
		BaseURL: baseURL,
		Token:   token,
	}
}

func (c *APIClient) SubmitCheckIn(ctx context.Context, sub Submission) (response_models.CheckInResult, error) {
	location, err := json.Marshal(sub.Location)
	if err != nil {
		return response_models.CheckInResult{}, err
	}

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	fields := map[string]string{
		"spotId":    sub.SpotID,
		"spotName":  sub.SpotName,
		"location":  string(location),
		"timestamp": sub.Timestamp,
	}
	for name, value := range fields {
		if err := writer.WriteField(name, value); err != nil {
			return response_models.CheckInResult{}, err
		}
	}

	header := textproto.MIMEHeader{}
	header.Set("Content-Disposition", `form-data; name="photo"; filename="photo"`)
	header.Set("Content-Type", sub.Photo.ContentType)
	part, err := writer.CreatePart(header)
	if err != nil {
		return response_models.CheckInResult{}, err
	}
	if _, err := part.Write(sub.Photo.Data); err != nil {
		return response_models.CheckInResult{}, err
	}
	if err := writer.Close(); err != nil {
		return response_models.CheckInResult{}, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+"/api/checkin", &body)
	if err != nil {
		return response_models.CheckInResult{}, err
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+c.Token)

	var result response_models.CheckInResult
	if err := c.do(req, &result); err != nil {
		return response_models.CheckInResult{}, err
	}
	return result, nil
}

func (c *APIClient) AlreadyCheckedIn(ctx context.Context, spotID string) (bool, error) {
	reqURL := fmt.Sprintf("%s/api/checkin/check?spotId=%s", c.BaseURL, url.QueryEscape(spotID))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return false, err
	}
	req.Header.Set("Authorization", "Bearer "+c.Token)

	var result response_models.DuplicateCheck
	if err := c.do(req, &result); err != nil {
		return false, err
	}
	return result.AlreadyCheckedIn, nil
}

func (c *APIClient) LoadSpot(ctx context.Context, spotID string) (response_models.Spot, error) {
	reqURL := fmt.Sprintf("%s/spots/%s", c.BaseURL, url.PathEscape(spotID))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return response_models.Spot{}, err
	}
	req.Header.Set("Authorization", "Bearer "+c.Token)

	var result response_models.Spot
	if err := c.do(req, &result); err != nil {
		return response_models.Spot{}, err
	}
	return result, nil
}

// do executes the request and unwraps the APIResponse envelope, surfacing
// the server's message on non-success responses.
func (c *APIClient) do(req *http.Request, data interface{}) error {
	resp, err := c.HTTP.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	var envelope struct {
		Status  string          `json:"status"`
		Message string          `json:"message"`
		Data    json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return fmt.Errorf("unexpected response (%d)", resp.StatusCode)
	}

	if resp.StatusCode != http.StatusOK || envelope.Status != "success" {
		if envelope.Message != "" {
			return fmt.Errorf("%s", envelope.Message)
		}
		return fmt.Errorf("request failed (%d)", resp.StatusCode)
	}

	if data != nil && len(envelope.Data) > 0 {
		return json.Unmarshal(envelope.Data, data)
	}
	return nil
}

var _ SubmitClient = (*APIClient)(nil)
var _ SpotLoader = (*APIClient)(nil)

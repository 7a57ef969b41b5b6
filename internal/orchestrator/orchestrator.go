// Package orchestrator drives the client-side check-in flow: load the spot,
// verify the device is within range, capture a photo, submit, done. It talks
// to the device and the API through injected ports so any front end (or
// test) can host it.
package orchestrator

import (
	"context"
	"errors"
	"time"

	"spotcheck/internal/models/response_models"
	"spotcheck/internal/services"
	"spotcheck/pkg/geo"
)

type State string

const (
	StateLoadingSpot   State = "loading_spot"
	StateLocationCheck State = "location_check"
	StatePhotoCapture  State = "photo_capture"
	StateSubmitting    State = "submitting"
	StateComplete      State = "complete"
	StateError         State = "error"
)

// Geolocation failures are classified so the UI can render distinct,
// retryable messages. None of them is fatal to the flow.
var (
	ErrLocationPermissionDenied = errors.New("location permission denied")
	ErrLocationUnavailable      = errors.New("location unavailable")
	ErrLocationTimeout          = errors.New("location acquisition timed out")
)

const locationTimeout = 10 * time.Second

type LocationSample struct {
	Coordinates    geo.Coordinates
	AccuracyMeters float64
	TakenAt        time.Time
}

type Photo struct {
	Data        []byte
	ContentType string
}

type SpotLoader interface {
	LoadSpot(ctx context.Context, spotID string) (response_models.Spot, error)
}

type LocationProvider interface {
	CurrentLocation(ctx context.Context) (LocationSample, error)
}

type PhotoSource interface {
	CapturePhoto(ctx context.Context) (Photo, error)
}

type SubmitClient interface {
	SubmitCheckIn(ctx context.Context, sub Submission) (response_models.CheckInResult, error)
	AlreadyCheckedIn(ctx context.Context, spotID string) (bool, error)
}

type Submission struct {
	SpotID    string
	SpotName  string
	Location  geo.Coordinates
	Timestamp string
	Photo     Photo
}

type LocationResult struct {
	Sample         LocationSample
	DistanceMeters float64
	WithinRange    bool
	Bypassed       bool
}

type Config struct {
	Spots    SpotLoader
	Location LocationProvider
	Photos   PhotoSource
	Client   SubmitClient
	Demo     *services.DemoManager

	// RadiusMeters defaults to geo.DefaultCheckInRadius.
	RadiusMeters float64
}

type Orchestrator struct {
	cfg   Config
	state State

	spot     response_models.Spot
	location LocationSample
	photo    Photo
	errMsg   string
}

func New(cfg Config) *Orchestrator {
	if cfg.RadiusMeters <= 0 {
		cfg.RadiusMeters = geo.DefaultCheckInRadius
	}
	return &Orchestrator{
		cfg:   cfg,
		state: StateLoadingSpot,
	}
}

func (o *Orchestrator) State() State { return o.state }

// ErrorMessage is the server- or device-provided message for StateError.
func (o *Orchestrator) ErrorMessage() string { return o.errMsg }

// LoadSpot fetches the target spot and moves to the location check.
func (o *Orchestrator) LoadSpot(ctx context.Context, spotID string) error {
	if o.state != StateLoadingSpot {
		return o.invalidTransition("LoadSpot")
	}

	spot, err := o.cfg.Spots.LoadSpot(ctx, spotID)
	if err != nil {
		return o.fail(err)
	}

	o.spot = spot
	o.state = StateLocationCheck
	return nil
}

// CheckLocation acquires the device position (bounded by a 10 second
// timeout) and gates on distance to the spot. Out of range is not an error:
// the machine stays in StateLocationCheck and the caller may retry. With the
// demo bypass active the gate always passes.
func (o *Orchestrator) CheckLocation(ctx context.Context) (LocationResult, error) {
	if o.state != StateLocationCheck {
		return LocationResult{}, o.invalidTransition("CheckLocation")
	}

	locCtx, cancel := context.WithTimeout(ctx, locationTimeout)
	defer cancel()

	sample, err := o.cfg.Location.CurrentLocation(locCtx)
	if err != nil {
		// Stay in StateLocationCheck; geolocation errors are retryable.
		return LocationResult{}, classifyLocationError(err)
	}

	distance := geo.Distance(sample.Coordinates, geo.Coordinates{
		Lat: o.spot.Latitude,
		Lng: o.spot.Longitude,
	})

	bypassed := o.cfg.Demo != nil && o.cfg.Demo.IsBypassLocationCheck()
	withinRange := bypassed || geo.IsWithinRange(distance, o.cfg.RadiusMeters)

	result := LocationResult{
		Sample:         sample,
		DistanceMeters: distance,
		WithinRange:    withinRange,
		Bypassed:       bypassed,
	}

	if withinRange {
		o.location = sample
		o.state = StatePhotoCapture
	}
	return result, nil
}

// CapturePhoto takes one image from the source and validates its declared
// type before submission is allowed.
func (o *Orchestrator) CapturePhoto(ctx context.Context) error {
	if o.state != StatePhotoCapture {
		return o.invalidTransition("CapturePhoto")
	}

	photo, err := o.cfg.Photos.CapturePhoto(ctx)
	if err != nil {
		return err
	}

	switch photo.ContentType {
	case "image/jpeg", "image/png", "image/webp":
	default:
		return errors.New("unsupported photo type: " + photo.ContentType)
	}

	o.photo = photo
	return nil
}

// Submit posts the check-in. Success lands in StateComplete; any failure
// lands in StateError with the server message, and no automatic retry is
// attempted.
func (o *Orchestrator) Submit(ctx context.Context) (response_models.CheckInResult, error) {
	if o.state != StatePhotoCapture || len(o.photo.Data) == 0 {
		return response_models.CheckInResult{}, o.invalidTransition("Submit")
	}

	o.state = StateSubmitting

	result, err := o.cfg.Client.SubmitCheckIn(ctx, Submission{
		SpotID:    o.spot.ID,
		SpotName:  o.spot.Name,
		Location:  o.location.Coordinates,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Photo:     o.photo,
	})
	if err != nil {
		return response_models.CheckInResult{}, o.fail(err)
	}

	o.state = StateComplete
	return result, nil
}

func (o *Orchestrator) fail(err error) error {
	o.state = StateError
	o.errMsg = err.Error()
	return err
}

func (o *Orchestrator) invalidTransition(op string) error {
	return errors.New(op + " not valid in state " + string(o.state))
}

func classifyLocationError(err error) error {
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return ErrLocationTimeout
	case errors.Is(err, ErrLocationPermissionDenied),
		errors.Is(err, ErrLocationUnavailable),
		errors.Is(err, ErrLocationTimeout):
		return err
	default:
		return ErrLocationUnavailable
	}
}

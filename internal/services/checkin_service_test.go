package services

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"spotcheck/internal/infra"
	"spotcheck/internal/models/db_models"
	"spotcheck/internal/repositories"
	"spotcheck/pkg/geo"
	"spotcheck/pkg/utils"
)

// Minimal valid file signatures for the MIME sniffer.
var (
	jpegBytes = []byte{0xFF, 0xD8, 0xFF, 0xE0, 0x00, 0x10, 'J', 'F', 'I', 'F', 0x00}
	gifBytes  = []byte("GIF89a\x01\x00\x01\x00")
)

func testDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("failed to open sqlite: %v", err)
	}
	if err := infra.Migrate(db); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	return db
}

type fakeStorage struct {
	uploads    int
	deletes    int
	deletedKey string
	failUpload bool
}

func (f *fakeStorage) Upload(ctx context.Context, key, contentType string, body io.Reader) (string, error) {
	if f.failUpload {
		return "", errors.New("bucket unavailable")
	}
	f.uploads++
	return "https://cdn.example.com/" + key, nil
}

func (f *fakeStorage) Delete(ctx context.Context, key string) error {
	f.deletes++
	f.deletedKey = key
	return nil
}

// failingCheckInRepo forces the finalize step to fail.
type failingCheckInRepo struct {
	repositories.CheckInRepository
}

func (r *failingCheckInRepo) UpdatePhotoURL(ctx context.Context, id uuid.UUID, photoURL string) error {
	return errors.New("connection reset")
}

func newTestService(t *testing.T, db *gorm.DB, storage PhotoStorage) (CheckInServiceInterface, repositories.CheckInRepository, uuid.UUID) {
	t.Helper()
	checkInRepo := repositories.NewCheckInRepository(db)
	accountRepo := repositories.NewAccountRepository(db)
	spotRepo := repositories.NewSpotRepository(db)

	account := &db_models.Account{Name: "tester", Email: "tester@example.com", PasswordHash: "x"}
	if err := accountRepo.Insert(context.Background(), account); err != nil {
		t.Fatalf("failed to insert account: %v", err)
	}

	svc := NewCheckInService(checkInRepo, accountRepo, spotRepo, storage)
	return svc, checkInRepo, account.ID
}

func validSubmission() CheckInSubmission {
	return CheckInSubmission{
		SpotID:           "s1",
		SpotName:         "Test Spot",
		Location:         geo.Coordinates{Lat: 35.5, Lng: 129.3},
		Timestamp:        "2024-01-01T00:00:00Z",
		Photo:            jpegBytes,
		PhotoContentType: "image/jpeg",
	}
}

func countCheckIns(t *testing.T, db *gorm.DB, userID uuid.UUID, spotID string) int64 {
	t.Helper()
	var n int64
	err := db.Model(&db_models.CheckIn{}).
		Where("user_id = ? AND spot_id = ?", userID, spotID).
		Count(&n).Error
	if err != nil {
		t.Fatalf("failed to count check-ins: %v", err)
	}
	return n
}

func TestSubmit_Success(t *testing.T) {
	db := testDB(t)
	storage := &fakeStorage{}
	svc, _, userID := newTestService(t, db, storage)

	result, err := svc.Submit(context.Background(), userID, validSubmission())
	if err != nil {
		t.Fatalf("Submit returned %v, want nil", err)
	}

	if result.CheckInID == "" {
		t.Error("CheckInID must be set")
	}
	if result.PhotoURL == "" {
		t.Error("PhotoURL must be a non-empty URL")
	}
	if result.CoinsEarned != DefaultCoinReward {
		t.Errorf("CoinsEarned = %d, want %d", result.CoinsEarned, DefaultCoinReward)
	}

	var record db_models.CheckIn
	if err := db.First(&record, "user_id = ? AND spot_id = ?", userID, "s1").Error; err != nil {
		t.Fatalf("expected one persisted record: %v", err)
	}
	if record.VerificationStatus != db_models.VerificationPending {
		t.Errorf("VerificationStatus = %q, want pending", record.VerificationStatus)
	}
	if record.PhotoURL != result.PhotoURL {
		t.Errorf("persisted PhotoURL = %q, want %q", record.PhotoURL, result.PhotoURL)
	}
	if storage.uploads != 1 {
		t.Errorf("uploads = %d, want 1", storage.uploads)
	}
}

func TestSubmit_SecondAttemptRejected(t *testing.T) {
	db := testDB(t)
	storage := &fakeStorage{}
	svc, _, userID := newTestService(t, db, storage)

	if _, err := svc.Submit(context.Background(), userID, validSubmission()); err != nil {
		t.Fatalf("first Submit returned %v, want nil", err)
	}

	_, err := svc.Submit(context.Background(), userID, validSubmission())
	if !errors.Is(err, utils.ErrAlreadyCheckedIn) {
		t.Fatalf("second Submit returned %v, want ErrAlreadyCheckedIn", err)
	}

	if n := countCheckIns(t, db, userID, "s1"); n != 1 {
		t.Errorf("record count = %d, want 1", n)
	}
	if storage.uploads != 1 {
		t.Errorf("uploads = %d, want 1 (no upload on rejected attempt)", storage.uploads)
	}
}

func TestSubmit_UploadFailureRollsBackProvisionalRecord(t *testing.T) {
	db := testDB(t)
	storage := &fakeStorage{failUpload: true}
	svc, _, userID := newTestService(t, db, storage)

	_, err := svc.Submit(context.Background(), userID, validSubmission())
	if !errors.Is(err, utils.ErrStorageError) {
		t.Fatalf("Submit returned %v, want ErrStorageError", err)
	}

	if n := countCheckIns(t, db, userID, "s1"); n != 0 {
		t.Errorf("record count after rollback = %d, want 0", n)
	}
}

func TestSubmit_FinalizeFailureRollsBackRecordAndUpload(t *testing.T) {
	db := testDB(t)
	storage := &fakeStorage{}
	checkInRepo := &failingCheckInRepo{repositories.NewCheckInRepository(db)}
	accountRepo := repositories.NewAccountRepository(db)
	spotRepo := repositories.NewSpotRepository(db)

	account := &db_models.Account{Name: "tester", Email: "tester@example.com", PasswordHash: "x"}
	if err := accountRepo.Insert(context.Background(), account); err != nil {
		t.Fatalf("failed to insert account: %v", err)
	}

	svc := NewCheckInService(checkInRepo, accountRepo, spotRepo, storage)

	_, err := svc.Submit(context.Background(), account.ID, validSubmission())
	if !errors.Is(err, utils.ErrDatabaseError) {
		t.Fatalf("Submit returned %v, want ErrDatabaseError", err)
	}

	if n := countCheckIns(t, db, account.ID, "s1"); n != 0 {
		t.Errorf("record count after rollback = %d, want 0", n)
	}
	if storage.deletes != 1 {
		t.Errorf("object deletes = %d, want 1 (uploaded photo must be removed)", storage.deletes)
	}
}

func TestSubmit_RollbackAllowsRetry(t *testing.T) {
	db := testDB(t)
	storage := &fakeStorage{failUpload: true}
	svc, _, userID := newTestService(t, db, storage)

	if _, err := svc.Submit(context.Background(), userID, validSubmission()); err == nil {
		t.Fatal("first Submit should have failed")
	}

	storage.failUpload = false
	if _, err := svc.Submit(context.Background(), userID, validSubmission()); err != nil {
		t.Fatalf("retry after rollback returned %v, want nil", err)
	}

	if n := countCheckIns(t, db, userID, "s1"); n != 1 {
		t.Errorf("record count = %d, want 1", n)
	}
}

func TestSubmit_MissingFields(t *testing.T) {
	db := testDB(t)
	storage := &fakeStorage{}
	svc, _, userID := newTestService(t, db, storage)

	cases := map[string]func(*CheckInSubmission){
		"spot id":   func(s *CheckInSubmission) { s.SpotID = "" },
		"spot name": func(s *CheckInSubmission) { s.SpotName = "" },
		"timestamp": func(s *CheckInSubmission) { s.Timestamp = "" },
		"photo":     func(s *CheckInSubmission) { s.Photo = nil },
		"location":  func(s *CheckInSubmission) { s.Location.Lat = 91 },
	}

	for name, mutate := range cases {
		sub := validSubmission()
		mutate(&sub)
		_, err := svc.Submit(context.Background(), userID, sub)
		if !errors.Is(err, utils.ErrMissingField) {
			t.Errorf("missing %s: Submit returned %v, want ErrMissingField", name, err)
		}
	}

	if n := countCheckIns(t, db, userID, "s1"); n != 0 {
		t.Errorf("record count = %d, want 0", n)
	}
	if storage.uploads != 0 {
		t.Errorf("uploads = %d, want 0", storage.uploads)
	}
}

func TestSubmit_UnsupportedPhotoType(t *testing.T) {
	db := testDB(t)
	storage := &fakeStorage{}
	svc, _, userID := newTestService(t, db, storage)

	sub := validSubmission()
	sub.Photo = gifBytes
	sub.PhotoContentType = "image/gif"

	_, err := svc.Submit(context.Background(), userID, sub)
	if !errors.Is(err, utils.ErrUnsupportedPhotoType) {
		t.Fatalf("Submit returned %v, want ErrUnsupportedPhotoType", err)
	}
	if n := countCheckIns(t, db, userID, "s1"); n != 0 {
		t.Errorf("record count = %d, want 0 (rejected before insert)", n)
	}
}

func TestSubmit_SpoofedContentTypeRejected(t *testing.T) {
	db := testDB(t)
	storage := &fakeStorage{}
	svc, _, userID := newTestService(t, db, storage)

	// Declared jpeg, actual bytes gif.
	sub := validSubmission()
	sub.Photo = gifBytes

	_, err := svc.Submit(context.Background(), userID, sub)
	if !errors.Is(err, utils.ErrUnsupportedPhotoType) {
		t.Fatalf("Submit returned %v, want ErrUnsupportedPhotoType", err)
	}
}

func TestSubmit_UsesSpotCoinReward(t *testing.T) {
	db := testDB(t)
	storage := &fakeStorage{}
	svc, _, userID := newTestService(t, db, storage)

	spotRepo := repositories.NewSpotRepository(db)
	err := spotRepo.Upsert(context.Background(), &db_models.Spot{
		Name: "Big Reward Spot", SourceID: "s1", CoinReward: 100,
	})
	if err != nil {
		t.Fatalf("failed to seed spot: %v", err)
	}

	result, err := svc.Submit(context.Background(), userID, validSubmission())
	if err != nil {
		t.Fatalf("Submit returned %v, want nil", err)
	}
	if result.CoinsEarned != 100 {
		t.Errorf("CoinsEarned = %d, want 100", result.CoinsEarned)
	}
}

func TestSubmit_CreditsAccountCoins(t *testing.T) {
	db := testDB(t)
	storage := &fakeStorage{}
	svc, _, userID := newTestService(t, db, storage)

	if _, err := svc.Submit(context.Background(), userID, validSubmission()); err != nil {
		t.Fatalf("Submit returned %v, want nil", err)
	}

	var account db_models.Account
	if err := db.First(&account, "id = ?", userID).Error; err != nil {
		t.Fatalf("failed to reload account: %v", err)
	}
	if account.Coins != DefaultCoinReward {
		t.Errorf("account coins = %d, want %d", account.Coins, DefaultCoinReward)
	}
}

func TestAlreadyCheckedIn(t *testing.T) {
	db := testDB(t)
	storage := &fakeStorage{}
	svc, _, userID := newTestService(t, db, storage)

	already, err := svc.AlreadyCheckedIn(context.Background(), userID, "s1")
	if err != nil {
		t.Fatalf("AlreadyCheckedIn returned %v, want nil", err)
	}
	if already {
		t.Error("AlreadyCheckedIn = true before any submission")
	}

	if _, err := svc.Submit(context.Background(), userID, validSubmission()); err != nil {
		t.Fatalf("Submit returned %v, want nil", err)
	}

	already, err = svc.AlreadyCheckedIn(context.Background(), userID, "s1")
	if err != nil {
		t.Fatalf("AlreadyCheckedIn returned %v, want nil", err)
	}
	if !already {
		t.Error("AlreadyCheckedIn = false after a successful submission")
	}
}

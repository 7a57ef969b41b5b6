package db_models

import "github.com/google/uuid"

type VerificationStatus string

const (
	VerificationPending  VerificationStatus = "pending"
	VerificationApproved VerificationStatus = "approved"
	VerificationRejected VerificationStatus = "rejected"
)

// CheckIn is one verified visit. Rows go through a two-phase lifecycle:
// inserted with an empty PhotoURL, then finalized with the storage URL or
// deleted when a later step of the submission fails. The composite unique
// index is the authoritative one-check-in-per-user-per-spot guard; the
// service-level existence check is only a fast path.
type CheckIn struct {
	BaseModel
	AccountID          uuid.UUID `gorm:"column:user_id;type:uuid;uniqueIndex:idx_checkins_user_spot"`
	SpotID             string    `gorm:"uniqueIndex:idx_checkins_user_spot"`
	SpotName           string
	PhotoURL           string
	LocationLat        float64
	LocationLng        float64
	CoinsEarned        int
	VerificationStatus VerificationStatus `gorm:"type:varchar(16);default:'pending'"`

	Account Account `gorm:"foreignKey:AccountID"`
}

func (CheckIn) TableName() string {
	return "checkins"
}

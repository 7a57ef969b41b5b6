package request_models

// CheckInForm mirrors the multipart fields of POST /api/checkin. The photo
// file itself is read from the multipart part, not bound here.
type CheckInForm struct {
	SpotID    string `form:"spotId" binding:"required"`
	SpotName  string `form:"spotName" binding:"required"`
	Location  string `form:"location" binding:"required"`
	Timestamp string `form:"timestamp" binding:"required"`
}

type SetBypassRequest struct {
	Bypass *bool `json:"bypass" binding:"required"`
}

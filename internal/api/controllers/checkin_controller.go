package controllers

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"spotcheck/internal/models/request_models"
	"spotcheck/internal/models/response_models"
	"spotcheck/internal/services"
	"spotcheck/pkg/geo"
	"spotcheck/pkg/utils"
)

// Photos above this size are rejected before buffering.
const maxPhotoBytes = 10 << 20

type CheckInController struct {
	checkInService services.CheckInServiceInterface
}

func NewCheckInController(checkInService services.CheckInServiceInterface) *CheckInController {
	return &CheckInController{
		checkInService: checkInService,
	}
}

// Submit godoc
// @Summary Submit a check-in
// @Description Verify a geolocated photo check-in and award coins
// @Tags CheckIns
// @Accept multipart/form-data
// @Produce json
// @Param spotId formData string true "Spot ID"
// @Param spotName formData string true "Spot name"
// @Param location formData string true "JSON {lat, lng}"
// @Param timestamp formData string true "Client timestamp"
// @Param photo formData file true "Check-in photo (jpeg/png/webp)"
// @Success 200 {object} utils.APIResponse
// @Failure 400 {object} utils.APIResponse
// @Failure 401 {object} utils.APIResponse
// @Failure 403 {object} utils.APIResponse
// @Security BearerAuth
// @Router /api/checkin [post]
func (ct *CheckInController) Submit(c *gin.Context) {
	userID, ok := authenticatedUserID(c)
	if !ok {
		utils.HandleServiceError(c, utils.ErrUserAuthFailed)
		return
	}

	var form request_models.CheckInForm
	if err := c.ShouldBind(&form); err != nil {
		utils.HandleServiceError(c, utils.ErrMissingField)
		return
	}

	var location geo.Coordinates
	if err := json.Unmarshal([]byte(form.Location), &location); err != nil {
		utils.HandleServiceError(c, utils.ErrMissingField)
		return
	}

	fileHeader, err := c.FormFile("photo")
	if err != nil {
		utils.HandleServiceError(c, utils.ErrMissingField)
		return
	}
	if fileHeader.Size > maxPhotoBytes {
		utils.RespondError(c, http.StatusBadRequest, "사진 용량이 너무 큽니다.")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		utils.HandleServiceError(c, utils.ErrMissingField)
		return
	}
	defer file.Close()

	photo, err := io.ReadAll(file)
	if err != nil {
		utils.HandleServiceError(c, utils.ErrMissingField)
		return
	}

	result, err := ct.checkInService.Submit(c.Request.Context(), userID, services.CheckInSubmission{
		SpotID:           form.SpotID,
		SpotName:         form.SpotName,
		Location:         location,
		Timestamp:        form.Timestamp,
		Photo:            photo,
		PhotoContentType: fileHeader.Header.Get("Content-Type"),
	})
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, result, "체크인이 완료되었습니다.")
}

// Check godoc
// @Summary Duplicate check
// @Description Report whether the authenticated user already checked in to a spot
// @Tags CheckIns
// @Produce json
// @Param spotId query string true "Spot ID"
// @Success 200 {object} utils.APIResponse
// @Failure 400 {object} utils.APIResponse
// @Failure 401 {object} utils.APIResponse
// @Security BearerAuth
// @Router /api/checkin/check [get]
func (ct *CheckInController) Check(c *gin.Context) {
	userID, ok := authenticatedUserID(c)
	if !ok {
		utils.HandleServiceError(c, utils.ErrUserAuthFailed)
		return
	}

	spotID := c.Query("spotId")
	if spotID == "" {
		utils.RespondError(c, http.StatusBadRequest, "Spot ID is required")
		return
	}

	already, err := ct.checkInService.AlreadyCheckedIn(c.Request.Context(), userID, spotID)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, response_models.DuplicateCheck{AlreadyCheckedIn: already}, "Duplicate check completed")
}

func authenticatedUserID(c *gin.Context) (uuid.UUID, bool) {
	raw := c.GetString("user_id")
	if raw == "" {
		return uuid.Nil, false
	}
	userID, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, false
	}
	return userID, true
}

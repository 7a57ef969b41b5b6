package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"spotcheck/internal/services"
	"spotcheck/pkg/utils"
)

type SpotsController struct {
	spotService services.SpotServiceInterface
	demoManager DemoManagerProvider
}

func NewSpotsController(spotService services.SpotServiceInterface, demoManager DemoManagerProvider) *SpotsController {
	return &SpotsController{
		spotService: spotService,
		demoManager: demoManager,
	}
}

// GetSpotById godoc
// @Summary Get a tourist spot
// @Tags Spots
// @Produce json
// @Param id path string true "Spot ID"
// @Success 200 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Router /spots/{id} [get]
func (s *SpotsController) GetSpotById(c *gin.Context) {
	spotID := c.Param("id")
	if spotID == "" {
		utils.RespondError(c, http.StatusBadRequest, "Spot ID is required")
		return
	}

	spot, err := s.spotService.GetSpotByID(c.Request.Context(), spotID)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, spot, "Spot fetched successfully")
}

// ListSpots godoc
// @Summary List tourist spots
// @Description Paged listing from the spot cache; demo spots appended in test mode
// @Tags Spots
// @Produce json
// @Param page query int false "Page number"
// @Param pageSize query int false "Page size (1-100)"
// @Success 200 {object} utils.APIResponse
// @Failure 400 {object} utils.APIResponse
// @Router /spots [get]
func (s *SpotsController) ListSpots(c *gin.Context) {
	pageStr := c.DefaultQuery("page", "1")
	pageSizeStr := c.DefaultQuery("pageSize", "20")

	page, err := strconv.Atoi(pageStr)
	if err != nil || page < 1 {
		utils.RespondError(c, http.StatusBadRequest, "Invalid page number")
		return
	}

	pageSize, err := strconv.Atoi(pageSizeStr)
	if err != nil || pageSize < 1 || pageSize > 100 {
		utils.RespondError(c, http.StatusBadRequest, "Invalid page size (must be 1-100)")
		return
	}

	includeDemo := s.demoManager(c).IsTestMode()

	spots, err := s.spotService.ListSpots(c.Request.Context(), page, pageSize, includeDemo)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, spots, "Spots fetched successfully")
}

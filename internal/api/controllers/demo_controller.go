package controllers

import (
	"github.com/gin-gonic/gin"

	"spotcheck/internal/models/request_models"
	"spotcheck/internal/models/response_models"
	"spotcheck/internal/services"
	mem "spotcheck/pkg/memcache"
	"spotcheck/pkg/utils"
)

// DemoManagerProvider resolves the demo manager bound to the caller's
// browsing session.
type DemoManagerProvider func(c *gin.Context) *services.DemoManager

// NewDemoManagerProvider keys demo state by the client-held session id, so
// toggles survive page reloads but not a new browsing session.
func NewDemoManagerProvider(store mem.DemoStateStore) DemoManagerProvider {
	return func(c *gin.Context) *services.DemoManager {
		sessionID := c.GetHeader("X-Session-ID")
		if sessionID == "" {
			sessionID = c.GetString("user_id")
		}
		if sessionID == "" {
			sessionID = c.ClientIP()
		}
		return services.NewDemoManager(sessionID, store)
	}
}

type DemoController struct {
	demoManager DemoManagerProvider
}

func NewDemoController(demoManager DemoManagerProvider) *DemoController {
	return &DemoController{
		demoManager: demoManager,
	}
}

// Toggle godoc
// @Summary Toggle test mode
// @Description Flip the session's test mode for demoing without travel
// @Tags Demo
// @Produce json
// @Success 200 {object} utils.APIResponse
// @Router /api/demo/toggle [post]
func (d *DemoController) Toggle(c *gin.Context) {
	manager := d.demoManager(c)
	enabled := manager.ToggleTestMode()

	utils.RespondSuccess(c, response_models.DemoState{
		TestModeEnabled:     enabled,
		BypassLocationCheck: manager.IsBypassLocationCheck(),
	}, "Test mode toggled")
}

// SetBypass godoc
// @Summary Set location-check bypass
// @Tags Demo
// @Accept json
// @Produce json
// @Param request body request_models.SetBypassRequest true "Bypass flag"
// @Success 200 {object} utils.APIResponse
// @Failure 400 {object} utils.APIResponse
// @Router /api/demo/bypass [put]
func (d *DemoController) SetBypass(c *gin.Context) {
	var req request_models.SetBypassRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, 400, "Invalid request format")
		return
	}

	manager := d.demoManager(c)
	manager.SetBypassLocationCheck(*req.Bypass)

	utils.RespondSuccess(c, response_models.DemoState{
		TestModeEnabled:     manager.IsTestMode(),
		BypassLocationCheck: manager.IsBypassLocationCheck(),
	}, "Bypass updated")
}

// State godoc
// @Summary Read demo state
// @Tags Demo
// @Produce json
// @Success 200 {object} utils.APIResponse
// @Router /api/demo [get]
func (d *DemoController) State(c *gin.Context) {
	manager := d.demoManager(c)

	utils.RespondSuccess(c, response_models.DemoState{
		TestModeEnabled:     manager.IsTestMode(),
		BypassLocationCheck: manager.IsBypassLocationCheck(),
	}, "Demo state fetched")
}

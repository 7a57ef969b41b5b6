package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"spotcheck/internal/models/request_models"
	"spotcheck/internal/models/response_models"
	"spotcheck/internal/services"
	"spotcheck/pkg/utils"
)

type AccountController struct {
	accountService services.AccountServiceInterface
	demoManager    DemoManagerProvider
}

func NewAccountController(accountService services.AccountServiceInterface, demoManager DemoManagerProvider) *AccountController {
	return &AccountController{
		accountService: accountService,
		demoManager:    demoManager,
	}
}

// Register godoc
// @Summary Register a new account
// @Description Create a new user account
// @Tags Accounts
// @Accept json
// @Produce json
// @Param request body request_models.SignUpRequest true "Account registration payload"
// @Success 200 {object} utils.APIResponse
// @Failure 400 {object} utils.APIResponse
// @Router /accounts/register [post]
func (a *AccountController) Register(c *gin.Context) {
	var req request_models.SignUpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := a.accountService.CreateAccount(c.Request.Context(), req); err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	// Fresh account, fresh session: demo toggles must not carry over.
	a.demoManager(c).Reset()

	utils.RespondSuccess(c, nil, "Account created successfully")
}

// Login godoc
// @Summary Login to an account
// @Description Authenticate a user and return a token
// @Tags Accounts
// @Accept json
// @Produce json
// @Param request body request_models.LoginRequest true "Login payload"
// @Success 200 {object} utils.APIResponse
// @Failure 400 {object} utils.APIResponse
// @Router /accounts/login [post]
func (a *AccountController) Login(c *gin.Context) {
	var req request_models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	token, err := a.accountService.Login(c.Request.Context(), req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	a.demoManager(c).Reset()

	utils.RespondSuccess(c, response_models.LoginResult{Token: token}, "Login successful")
}

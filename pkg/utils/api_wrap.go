package utils

import (
	"errors"
	"github.com/gin-gonic/gin"
	"log"
	"net/http"
)

type APIResponse struct {
	Status  string      `json:"status"`
	Code    int         `json:"code"`
	Message string      `json:"message,omitempty"`
	TraceID string      `json:"trace_id,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

func traceID(c *gin.Context) string {
	v, _ := c.Get("trace_id")
	id, _ := v.(string)
	return id
}

func RespondSuccess(c *gin.Context, data interface{}, message string) {
	c.JSON(http.StatusOK, APIResponse{
		Status:  "success",
		Code:    http.StatusOK,
		Message: message,
		TraceID: traceID(c),
		Data:    data,
	})
}

func RespondError(c *gin.Context, code int, message string) {
	c.JSON(code, APIResponse{
		Status:  "error",
		Code:    code,
		Message: message,
		TraceID: traceID(c),
	})
}

// HandleServiceError maps service sentinel errors onto the HTTP codes and
// user-facing messages of the check-in API. Messages for the submission
// pipeline are the Korean strings the mobile client renders verbatim.
func HandleServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrMissingField):
		RespondError(c, http.StatusBadRequest, "필수 필드 누락")
	case errors.Is(err, ErrUnsupportedPhotoType):
		RespondError(c, http.StatusBadRequest, "지원하지 않는 이미지 형식입니다.")
	case errors.Is(err, ErrUserAuthFailed):
		RespondError(c, http.StatusUnauthorized, "유저 인증 실패")
	case errors.Is(err, ErrAlreadyCheckedIn):
		RespondError(c, http.StatusForbidden, "이미 등록된 체크인입니다.")
	case errors.Is(err, ErrSpotNotFound):
		RespondError(c, http.StatusNotFound, "Spot not found")
	case errors.Is(err, ErrAccountNotFound):
		RespondError(c, http.StatusNotFound, "Account not found")
	case errors.Is(err, ErrEmailAlreadyExists):
		RespondError(c, http.StatusConflict, "Email already registered")
	case errors.Is(err, ErrInvalidCredentials):
		RespondError(c, http.StatusUnauthorized, "Invalid email or password")
	case errors.Is(err, ErrInvalidPage):
		RespondError(c, http.StatusBadRequest, "Page must be greater than 0")
	case errors.Is(err, ErrInvalidPageSize):
		RespondError(c, http.StatusBadRequest, "Page size must be between 1 and 100")
	case errors.Is(err, ErrStorageError), errors.Is(err, ErrDatabaseError):
		log.Printf("Internal error: %v", err)
		RespondError(c, http.StatusInternalServerError, "체크인 처리 중 오류가 발생했습니다.")
	default:
		log.Printf("Unknown error: %v", err)
		RespondError(c, http.StatusInternalServerError, "Internal server error")
	}
}

package apperrors

import (
	"github.com/gin-gonic/gin"

	"github.com/kunalaswar/HireFlow/internal/logger"
)

// ErrorResponse is the standard error envelope.
type ErrorResponse struct {
	Error *AppError `json:"error"`
}

// HandleError writes err as JSON. Unknown error types are wrapped as 500
// and logged; AppErrors with 5xx codes are logged too, everything else is
// the caller's problem and stays quiet.
func HandleError(c *gin.Context, err error) {
	var appErr *AppError
	if !As(err, &appErr) {
		appErr = InternalError(err)
	}

	if appErr.HTTPCode >= 500 {
		logger.CtxWithError(c.Request.Context(), "server error", appErr)
	}

	c.AbortWithStatusJSON(appErr.HTTPCode, ErrorResponse{Error: appErr})
}

package response

import (
	"github.com/gin-gonic/gin"
	domainerrors "shieldnest.backend/internal/domain/errors"
)

// Success sends a success response
func Success(c *gin.Context, status int, data interface{}) {
	c.JSON(status, data)
}

// Error sends an error response. Anything that is not an AppError is reported
// as a generic internal error; the original message travels only as the hint.
func Error(c *gin.Context, err error) {
	appErr, ok := err.(*domainerrors.AppError)
	if !ok {
		appErr = domainerrors.InternalError(err)
		if err != nil {
			appErr.Hint = err.Error()
		}
	}

	body := gin.H{
		"code":    appErr.Code,
		"message": appErr.Message,
	}
	if appErr.Hint != "" {
		body["hint"] = appErr.Hint
	}
	c.JSON(appErr.Status, body)
}

package response

import (
	domainerrors "brixium.backend/internal/domain/errors"
	"brixium.backend/pkg/logger"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Success sends a success response
func Success(c *gin.Context, status int, data interface{}) {
	c.JSON(status, data)
}

// Error sends an error response. Bare sentinel errors are mapped to their AppError.
func Error(c *gin.Context, err error) {
	appErr := domainerrors.FromError(err)
	if appErr.Status >= 500 {
		logger.Error(c.Request.Context(), "request failed", zap.Error(err), zap.String("path", c.FullPath()))
	}

	body := gin.H{
		"code":    appErr.Code,
		"message": appErr.Error(),
	}
	if appErr.Details != nil {
		body["details"] = appErr.Details
	}
	c.JSON(appErr.Status, body)
}

// Abort writes the error and stops the handler chain
func Abort(c *gin.Context, err error) {
	Error(c, err)
	c.Abort()
}

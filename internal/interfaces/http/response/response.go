package response

import (
	"github.com/gin-gonic/gin"

	domainerrors "gisteam.backend/internal/domain/errors"
)

// Success sends a success response
func Success(c *gin.Context, status int, data interface{}) {
	c.JSON(status, data)
}

// Error maps err onto an HTTP status and sends it
func Error(c *gin.Context, err error) {
	appErr := domainerrors.FromError(err)
	c.AbortWithStatusJSON(appErr.Code, gin.H{
		"code":    appErr.Code,
		"message": appErr.Message,
	})
}

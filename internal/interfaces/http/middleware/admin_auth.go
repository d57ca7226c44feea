package middleware

import (
	"crypto/subtle"
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	domainerrors "gisteam.backend/internal/domain/errors"
	"gisteam.backend/internal/interfaces/http/response"
	"gisteam.backend/pkg/jwt"
	"gisteam.backend/pkg/logger"
)

const OperatorKey = "operator"

// AdminAuthMiddleware admits "Authorization: Bearer <credential>" where the
// credential is either the static admin token or an operator JWT. With
// neither configured every admin route is closed. operators may be nil.
func AdminAuthMiddleware(staticToken string, operators *jwt.OperatorTokenService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if staticToken == "" && operators == nil {
			response.Error(c, domainerrors.Unauthorized("admin access is disabled"))
			return
		}

		presented, ok := strings.CutPrefix(c.GetHeader("Authorization"), "Bearer ")
		presented = strings.TrimSpace(presented)
		if !ok || presented == "" {
			response.Error(c, domainerrors.Unauthorized("missing bearer token"))
			return
		}

		if staticToken != "" && subtle.ConstantTimeCompare([]byte(presented), []byte(staticToken)) == 1 {
			c.Set(OperatorKey, "static-token")
			c.Next()
			return
		}

		if operators != nil {
			claims, err := operators.Validate(presented)
			if err == nil {
				c.Set(OperatorKey, claims.Subject)
				logger.Debug(c.Request.Context(), "Operator authenticated", zap.String("operator", claims.Subject))
				c.Next()
				return
			}
			if errors.Is(err, jwt.ErrExpiredToken) {
				response.Error(c, domainerrors.Unauthorized("operator token expired"))
				return
			}
		}
		response.Error(c, domainerrors.Unauthorized("invalid admin token"))
	}
}

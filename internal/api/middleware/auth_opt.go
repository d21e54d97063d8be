package middleware

import (
	"Arbor/internal/pkg/security"

	"github.com/gin-gonic/gin"
)

// AuthOptionalMiddleware 可选鉴权：token 有效时注入 UID，缺失或无效一律按匿名处理
func AuthOptionalMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c)
		if !ok {
			setViewer(c, 0)
			c.Next()
			return
		}

		claims, err := security.ValidateToken(token)
		if err != nil {
			setViewer(c, 0)
			c.Next()
			return
		}

		setViewer(c, claims.UserID)
		c.Next()
	}
}

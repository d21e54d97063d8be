package middleware

import (
	"Arbor/internal/pkg/logger"
	"Arbor/internal/pkg/redis"
	"Arbor/internal/pkg/response"
	"Arbor/internal/pkg/security"
	"context"
	"strings"

	"github.com/gin-gonic/gin"
)

// bearerToken 从 Authorization 头取出 Bearer 之后的部分
func bearerToken(c *gin.Context) (string, bool) {
	token, ok := strings.CutPrefix(c.GetHeader("Authorization"), "Bearer ")
	return token, ok && token != ""
}

// setViewer 把用户 ID 同时写入 gin Keys 和请求 ctx，日志链路从 ctx 读取
func setViewer(c *gin.Context, uid uint64) {
	c.Set(logger.UserIDKey, uid)
	ctx := context.WithValue(c.Request.Context(), logger.UserIDKey, uid)
	c.Request = c.Request.WithContext(ctx)
}

// AuthMiddleware 验证 JWT 并注入用户身份，注销过的 token 会被黑名单拦下
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c)
		if !ok {
			response.Fail(c, response.Unauthorized, "Token 缺失或格式错误")
			c.Abort()
			return
		}

		signature, err := security.ExtractSignature(token)
		if err != nil {
			response.Fail(c, response.Unauthorized, "Token 缺失或格式错误")
			c.Abort()
			return
		}

		// 黑名单键是注销 token 的原始签名
		value, err := redis.GetValue(c.Request.Context(), signature)
		if err != nil {
			response.Fail(c, response.InternalServerError, "未知错误")
			c.Abort()
			return
		}
		if value != "" {
			response.Fail(c, response.Unauthorized, "Token 无效或已过期")
			c.Abort()
			return
		}

		claims, err := security.ValidateToken(token)
		if err != nil {
			response.Fail(c, response.Unauthorized, "Token 无效或已过期")
			c.Abort()
			return
		}

		setViewer(c, claims.UserID)
		c.Next()
	}
}

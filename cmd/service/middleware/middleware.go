package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/memochat-ai/memochat/app/core"
	v1 "github.com/memochat-ai/memochat/app/logic/v1"
	"github.com/memochat-ai/memochat/pkg/errors"
)

const (
	AUTH_TOKEN_HEADER_KEY = "Authorization"
	AUTH_COOKIE_KEY       = "memochat_token"
)

func Cors(c *gin.Context) {
	method := c.Request.Method
	origin := c.Request.Header.Get("Origin")
	if origin != "" {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "POST, GET, OPTIONS, PUT, DELETE")
		c.Header("Access-Control-Allow-Headers", "Origin, X-Requested-With, Content-Type, Accept, Authorization")
		c.Header("Access-Control-Expose-Headers", "Content-Length, Access-Control-Allow-Origin, Access-Control-Allow-Headers, Cache-Control, Content-Language, Content-Type")
		c.Header("Access-Control-Allow-Credentials", "true")
	}
	if method == "OPTIONS" {
		c.AbortWithStatus(http.StatusNoContent)
	}
	c.Next()
}

// Authorization 校验 Bearer token（或登录回调种下的 cookie），未通过一律
// 返回 401 {"error":"Unauthorized"}，后续 handler 不会执行。
func Authorization(core *core.Core) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractToken(c)
		if token == "" {
			abortUnauthorized(c)
			return
		}

		claims, err := v1.NewAuthLogic(c, core).VerifyToken(token)
		if err != nil {
			abortUnauthorized(c)
			return
		}

		c.Set(v1.TOKEN_CONTEXT_KEY, claims)
		c.Next()
	}
}

func extractToken(c *gin.Context) string {
	raw := c.Request.Header.Get(AUTH_TOKEN_HEADER_KEY)
	if after, found := strings.CutPrefix(raw, "Bearer "); found {
		return after
	}
	if raw != "" {
		return raw
	}
	if cookie, err := c.Cookie(AUTH_COOKIE_KEY); err == nil {
		return cookie
	}
	return ""
}

func abortUnauthorized(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
		"error": errors.ERROR_UNAUTHORIZED,
	})
}

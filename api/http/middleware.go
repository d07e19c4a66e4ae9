// Package http provides the Gin HTTP surface of the storefront.
// It exposes the shopper-facing catalog, cart and checkout routes and the
// admin management routes, translating HTTP requests into service calls.
//
// Package http 提供店面的Gin HTTP接口。
// 它暴露面向购物者的目录、购物车和结账路由以及管理员管理路由，
// 将HTTP请求转换为服务调用。
package http

import (
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/achrafamalou77/ephedia-store/internal/admin"
)

const (
	// sessionCookie names the cookie carrying the shopper session id.
	// sessionCookie 是携带购物者会话id的cookie名称。
	sessionCookie = "shop_session"

	// sessionKey is the context key the session id is stored under.
	// sessionKey 是存储会话id的上下文键。
	sessionKey = "session_id"

	sessionMaxAge = 365 * 24 * 60 * 60
)

// Session returns a middleware that assigns every shopper a stable session id.
// A new visitor gets a generated id in a cookie; returning visitors keep theirs.
// The id keys the cart, the recently viewed list and the in-flight checkout guard.
//
// Session 返回为每个购物者分配稳定会话id的中间件。
// 新访客在cookie中获得生成的id；回访者保留他们的id。
// 该id作为购物车、最近浏览列表和结账进行中保护的键。
func Session() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := c.Cookie(sessionCookie)
		if err != nil || id == "" {
			id = uuid.NewString()
			c.SetCookie(sessionCookie, id, sessionMaxAge, "/", "", false, true)
		}
		c.Set(sessionKey, id)
		c.Next()
	}
}

// sessionID extracts the session id set by the Session middleware.
// sessionID 提取由Session中间件设置的会话id。
func sessionID(c *gin.Context) string {
	return c.GetString(sessionKey)
}

// RequestLogger returns a middleware that logs request information
// RequestLogger 返回记录请求信息的中间件
func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		// Start timer
		start := time.Now()
		path := c.Request.URL.Path
		method := c.Request.Method

		// Process request
		c.Next()

		// Log request details
		// 记录请求详情
		latency := time.Since(start)
		statusCode := c.Writer.Status()
		clientIP := c.ClientIP()
		log.Printf("[HTTP] %s %s %d %s %s",
			method,
			path,
			statusCode,
			latency,
			clientIP,
		)
	}
}

// AdminRequired returns a middleware that rejects requests unless the admin
// gate is open. Unauthorized callers get a 401 with a login hint; the request
// never reaches the management handlers.
//
// AdminRequired 返回一个中间件，除非管理员门禁已打开，否则拒绝请求。
// 未授权的调用者收到401和登录提示；请求永远不会到达管理处理程序。
func AdminRequired(gate *admin.Gate) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !gate.IsAuthenticated() {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "admin access required",
				"login": "/api/admin/login",
			})
			return
		}
		c.Next()
	}
}

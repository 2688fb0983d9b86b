package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// RequestIDMiddleware attaches a unique id to every request so log lines
// from concurrent pipelines can be told apart.
func (m *Middleware) RequestIDMiddleware(ctx *gin.Context) {
	requestID := ctx.GetHeader("X-Request-ID")
	if requestID == "" {
		requestID = uuid.NewString()
	}

	ctx.Header("X-Request-ID", requestID)
	ctx.Set("request_id", requestID)

	ctx.Next()
}

// GetRequestID gets the request ID from gin context.
func GetRequestID(ctx *gin.Context) string {
	if requestID, exists := ctx.Get("request_id"); exists {
		return requestID.(string)
	}
	return ""
}

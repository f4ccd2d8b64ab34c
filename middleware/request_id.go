package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// HeaderRequestID is the header carrying the request correlation id.
const HeaderRequestID = "X-Request-ID"

// RequestID tags every request with a correlation id, honoring one supplied
// by an upstream proxy, so access-log lines can be tied to client reports.
func RequestID() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		rid := ctx.GetHeader(HeaderRequestID)
		if rid == "" {
			rid = uuid.NewString()
		}
		ctx.Writer.Header().Set(HeaderRequestID, rid)
		ctx.Next()
	}
}

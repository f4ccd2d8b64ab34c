package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/serenspace/serenspace/utils"
)

const (
	// ContextUserIDKey is the key used to store the verified uid in Gin context.
	ContextUserIDKey = "user_id"
	// ContextDisplayNameKey stores the optional display name from the token.
	ContextDisplayNameKey = "display_name"
)

// AuthRequired ensures the request carries a valid bearer token from the
// identity provider. Token issuance and account management happen upstream;
// this only verifies the signature and extracts the uid.
func AuthRequired() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		authHeader := ctx.GetHeader("Authorization")
		if authHeader == "" {
			utils.Error(ctx, http.StatusUnauthorized, 40101, "authorization header missing")
			ctx.Abort()
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			utils.Error(ctx, http.StatusUnauthorized, 40102, "invalid authorization header format")
			ctx.Abort()
			return
		}

		tokenString := strings.TrimSpace(parts[1])
		if tokenString == "" {
			utils.Error(ctx, http.StatusUnauthorized, 40103, "empty bearer token")
			ctx.Abort()
			return
		}

		claims, err := utils.ParseToken(tokenString)
		if err != nil {
			utils.Error(ctx, http.StatusUnauthorized, 40105, "invalid token")
			ctx.Abort()
			return
		}

		ctx.Set(ContextUserIDKey, claims.UID)
		ctx.Set(ContextDisplayNameKey, claims.DisplayName)
		ctx.Next()
	}
}

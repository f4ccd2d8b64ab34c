package controllers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/serenspace/serenspace/middleware"
)

func getUserID(ctx *gin.Context) (string, bool) {
	value, exists := ctx.Get(middleware.ContextUserIDKey)
	if !exists {
		return "", false
	}
	uid, ok := value.(string)
	if !ok || uid == "" {
		return "", false
	}
	return uid, true
}

func getDisplayName(ctx *gin.Context) string {
	value, exists := ctx.Get(middleware.ContextDisplayNameKey)
	if !exists {
		return ""
	}
	name, _ := value.(string)
	return name
}

func parseID(raw string) (uint, bool) {
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}

package handlers

import (
	"fmt"
	"log"
	"net/http"
	"strconv"

	"github.com/baco-dev/baco/internal/services"
	"github.com/gin-gonic/gin"
)

// respondError maps service errors onto HTTP statuses. Anything outside
// the taxonomy is logged and hidden behind a generic 500.
func respondError(ctx *gin.Context, err error) {
	switch {
	case services.IsNotFound(err):
		ctx.JSON(http.StatusNotFound, gin.H{"message": err.Error()})
	case services.IsForbidden(err):
		ctx.JSON(http.StatusForbidden, gin.H{"message": err.Error()})
	case services.IsConflict(err):
		ctx.JSON(http.StatusConflict, gin.H{"message": err.Error()})
	default:
		log.Printf("internal error: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error"})
	}
}

func idParam(ctx *gin.Context, name string) (uint, error) {
	id, err := strconv.ParseUint(ctx.Param(name), 10, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid %s", name)
	}
	return uint(id), nil
}

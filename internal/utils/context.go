package utils

import (
	"errors"

	"github.com/baco-dev/baco/internal/middleware"
	"github.com/baco-dev/baco/internal/types"
	"github.com/gin-gonic/gin"
)

var ErrNotAuthenticated = errors.New("user not authenticated")

// GetCurrentUser pulls the user that AuthMiddleware resolved for this
// request. Handlers behind the middleware can rely on it succeeding.
func GetCurrentUser(ctx *gin.Context) (middleware.AuthenticatedUser, error) {
	value, exists := ctx.Get(types.ContextUserKey)
	if !exists {
		return middleware.AuthenticatedUser{}, ErrNotAuthenticated
	}

	user, ok := value.(middleware.AuthenticatedUser)
	if !ok {
		return middleware.AuthenticatedUser{}, ErrNotAuthenticated
	}
	return user, nil
}

func GetCurrentUserID(ctx *gin.Context) (uint, error) {
	user, err := GetCurrentUser(ctx)
	if err != nil {
		return 0, err
	}
	return user.ID, nil
}

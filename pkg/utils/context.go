package utils

import (
	"context"

	"github.com/khmelm/api-yamdb/internal/data/entity"
)

type contextKey string

const userKey contextKey = "current_user"

// SetUserContext menambahkan user yang sudah terautentikasi ke context
func SetUserContext(ctx context.Context, user *entity.User) context.Context {
	return context.WithValue(ctx, userKey, user)
}

// GetUserFromContext returns the authenticated user, or nil for anonymous requests
func GetUserFromContext(ctx context.Context) *entity.User {
	user, ok := ctx.Value(userKey).(*entity.User)
	if !ok {
		return nil
	}
	return user
}

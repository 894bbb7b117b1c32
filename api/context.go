package api

import (
	"context"
	"errors"
)

type keyType string

const (
	userIDKey keyType = "userID"
)

// ctxWithUserID adds the authenticated user's id to the context
func ctxWithUserID(ctx context.Context, userID int64) context.Context {
	return context.WithValue(ctx, userIDKey, userID)
}

// ctxGetUserID retrieves the authenticated user's id from the context
func ctxGetUserID(ctx context.Context) (int64, error) {
	if ctxValue := ctx.Value(userIDKey); ctxValue == nil {
		return 0, errors.New("key not found in context")
	} else if userID, ok := ctxValue.(int64); !ok {
		return 0, errors.New("value is not of type `int64`")
	} else {
		return userID, nil
	}
}

package auth

import "context"

type contextKey string

const userIDContextKey contextKey = "fittrack-user-id"

func ContextWithUserID(ctx context.Context, userID int) context.Context {
	return context.WithValue(ctx, userIDContextKey, userID)
}

// UserIDFromContext returns the ID of the logged in user making the request.
// The auth middleware sets it for every protected path, so handlers behind it
// can rely on ok being true.
func UserIDFromContext(ctx context.Context) (int, bool) {
	userID, ok := ctx.Value(userIDContextKey).(int)
	return userID, ok
}

package middleware

import "context"

type contextKey string

const authContextKey contextKey = "auth"

// AuthInfo carries the authenticated caller extracted from the access token.
type AuthInfo struct {
	UserID string
	Email  string
}

// WithAuth injects the authenticated caller into the context.
func WithAuth(ctx context.Context, userID, email string) context.Context {
	return context.WithValue(ctx, authContextKey, &AuthInfo{UserID: userID, Email: email})
}

// AuthFromContext returns the authenticated caller from the context, or nil.
func AuthFromContext(ctx context.Context) *AuthInfo {
	v := ctx.Value(authContextKey)
	if v == nil {
		return nil
	}
	a, _ := v.(*AuthInfo)
	return a
}

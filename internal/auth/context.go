package auth

import "context"

// contextKey is a custom type for context keys to avoid collisions.
type contextKey string

const sessionContextKey contextKey = "session_claims"

// ContextWithClaims adds verified session claims to the context.
func ContextWithClaims(ctx context.Context, claims *Claims) context.Context {
	return context.WithValue(ctx, sessionContextKey, claims)
}

// ClaimsFromContext retrieves session claims from the context.
// Returns nil if the request carried no valid token.
func ClaimsFromContext(ctx context.Context) *Claims {
	claims, ok := ctx.Value(sessionContextKey).(*Claims)
	if !ok {
		return nil
	}
	return claims
}

// EmailFromContext returns the signed-in email, or "" when anonymous.
func EmailFromContext(ctx context.Context) string {
	if claims := ClaimsFromContext(ctx); claims != nil {
		return claims.Email()
	}
	return ""
}

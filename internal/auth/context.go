package auth

import "context"

type contextKey string

const restaurantIDKey contextKey = "restaurant_id"

// WithRestaurantID stamps the authenticated tenant on the request context.
// The session/auth layer that produces the id is outside this core.
func WithRestaurantID(ctx context.Context, restaurantID string) context.Context {
	return context.WithValue(ctx, restaurantIDKey, restaurantID)
}

// GetRestaurantID returns the caller's tenant, or "" when the context carries
// none. Callers must treat "" as unauthenticated, never as a default tenant.
func GetRestaurantID(ctx context.Context) string {
	if val, ok := ctx.Value(restaurantIDKey).(string); ok {
		return val
	}
	return ""
}

package middleware

import (
	"context"
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v4"
)

// Имена JWT claims, которые выписывает AuthHandler.
const (
	ClaimSubject = "sub"
	ClaimRole    = "role"

	RoleAdmin = "admin"
)

var errNoClaims = errors.New("user claims not found in context or invalid type")

func GetSubjectFromContext(ctx context.Context) (string, error) {
	return stringClaim(ctx, ClaimSubject)
}

func GetRoleFromContext(ctx context.Context) (string, error) {
	role, err := stringClaim(ctx, ClaimRole)
	if err != nil {
		return "", err
	}
	if role != RoleAdmin {
		return "", fmt.Errorf("invalid role value in claim: %q", role)
	}
	return role, nil
}

// WithClaims кладёт claims в контекст так же, как Authenticate. Используется в тестах хендлеров.
func WithClaims(ctx context.Context, claims jwt.MapClaims) context.Context {
	return context.WithValue(ctx, userContextKey, claims)
}

func stringClaim(ctx context.Context, name string) (string, error) {
	claims, ok := ctx.Value(userContextKey).(jwt.MapClaims)
	if !ok {
		return "", errNoClaims
	}
	raw, ok := claims[name]
	if !ok {
		return "", fmt.Errorf("missing '%s' claim in token", name)
	}
	value, ok := raw.(string)
	if !ok || value == "" {
		return "", fmt.Errorf("invalid type for '%s' claim: expected string, got %T", name, raw)
	}
	return value, nil
}

package auth

import (
	"context"
	"strings"

	"github.com/dmitrijs2005/agencydesk/internal/common"
	"github.com/dmitrijs2005/agencydesk/internal/server/models"
)

type ctxKey struct{}

// WithIdentity returns a copy of ctx carrying the authenticated user.
func WithIdentity(ctx context.Context, u *models.User) context.Context {
	return context.WithValue(ctx, ctxKey{}, u)
}

// IdentityFromContext returns the user placed by WithIdentity, if any.
func IdentityFromContext(ctx context.Context) (*models.User, bool) {
	u, ok := ctx.Value(ctxKey{}).(*models.User)
	return u, ok && u != nil
}

// BearerToken extracts the token from an "Authorization: Bearer <token>"
// value. The scheme is matched case-insensitively.
func BearerToken(header string) (string, error) {
	scheme, token, ok := strings.Cut(strings.TrimSpace(header), " ")
	if !ok || !strings.EqualFold(scheme, common.BearerScheme) {
		return "", common.ErrInvalidToken
	}
	token = strings.TrimSpace(token)
	if token == "" {
		return "", common.ErrInvalidToken
	}
	return token, nil
}

package auth

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/account-service/internal/domain"
	apperrors "github.com/spec-kit/account-service/pkg/util"
)

const identityKey = "auth_identity"

// Identity represents the authenticated caller, derived entirely from
// validated token claims. The gate never consults storage, so a token is
// honored until expiry regardless of later account changes.
type Identity struct {
	ID    string
	Email string
	Role  domain.Role
}

// AuthMiddleware validates bearer tokens and enforces role policy.
type AuthMiddleware struct {
	tokens *TokenManager
}

// NewAuthMiddleware constructs the middleware.
func NewAuthMiddleware(tokens *TokenManager) *AuthMiddleware {
	return &AuthMiddleware{tokens: tokens}
}

// Authorize returns a handler allowing only callers whose role is in the
// allowed set. An empty set admits any authenticated caller with a known role.
func (m *AuthMiddleware) Authorize(allowed ...domain.Role) fiber.Handler {
	allowedSet := make(map[domain.Role]struct{}, len(allowed))
	for _, role := range allowed {
		allowedSet[role] = struct{}{}
	}

	return func(c *fiber.Ctx) error {
		header := c.Get(fiber.HeaderAuthorization)
		if header == "" {
			return apperrors.NewUnauthorized("authorization header is required")
		}

		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return apperrors.NewUnauthorized("bearer schema is required")
		}

		claims, err := m.tokens.Parse(parts[1])
		if err != nil {
			return apperrors.NewUnauthorized("invalid token")
		}

		if !claims.Role.Valid() {
			return apperrors.NewForbidden("insufficient credentials")
		}
		if len(allowedSet) > 0 {
			if _, ok := allowedSet[claims.Role]; !ok {
				return apperrors.NewForbidden("insufficient credentials")
			}
		}

		c.Locals(identityKey, &Identity{
			ID:    claims.Subject,
			Email: claims.Email,
			Role:  claims.Role,
		})
		return c.Next()
	}
}

// IdentityFromContext retrieves the authenticated caller, if any.
func IdentityFromContext(c *fiber.Ctx) (*Identity, bool) {
	val := c.Locals(identityKey)
	if val == nil {
		return nil, false
	}
	identity, ok := val.(*Identity)
	return identity, ok
}

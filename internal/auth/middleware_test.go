package auth_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	jwt "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/account-service/internal/auth"
	"github.com/spec-kit/account-service/internal/domain"
	apperrors "github.com/spec-kit/account-service/pkg/util"
)

func newGateApp(tm *auth.TokenManager) *fiber.App {
	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			domainErr := apperrors.ToDomainError(err)
			return c.Status(domainErr.HTTPStatus).JSON(fiber.Map{"errorCode": domainErr.Code})
		},
	})

	mw := auth.NewAuthMiddleware(tm)
	identityHandler := func(c *fiber.Ctx) error {
		identity, ok := auth.IdentityFromContext(c)
		if !ok {
			return apperrors.NewUnauthorized("no identity")
		}
		return c.JSON(fiber.Map{
			"id":    identity.ID,
			"email": identity.Email,
			"role":  string(identity.Role),
		})
	}

	app.Get("/any", mw.Authorize(), identityHandler)
	app.Get("/admin", mw.Authorize(domain.RoleAdmin), identityHandler)
	return app
}

func doRequest(t *testing.T, app *fiber.App, path, authHeader string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if authHeader != "" {
		req.Header.Set(fiber.HeaderAuthorization, authHeader)
	}
	resp, err := app.Test(req)
	require.NoError(t, err)
	return resp
}

func TestAuthorize(t *testing.T) {
	tm := newTestTokenManager()
	app := newGateApp(tm)

	userToken, _, err := tm.Generate("user-1", "user@x.com", domain.RoleUser)
	require.NoError(t, err)
	adminToken, _, err := tm.Generate("admin-1", "admin@x.com", domain.RoleAdmin)
	require.NoError(t, err)

	t.Run("missing header is unauthenticated", func(t *testing.T) {
		resp := doRequest(t, app, "/any", "")
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("missing header on admin route fails before any role check", func(t *testing.T) {
		resp := doRequest(t, app, "/admin", "")
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("non-bearer scheme is unauthenticated", func(t *testing.T) {
		resp := doRequest(t, app, "/any", "Basic dXNlcjpwYXNz")
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("invalid token is unauthenticated", func(t *testing.T) {
		resp := doRequest(t, app, "/any", "Bearer garbage")
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("expired token is unauthenticated", func(t *testing.T) {
		claims := &auth.Claims{
			Email: "user@x.com",
			Role:  domain.RoleUser,
			RegisteredClaims: jwt.RegisteredClaims{
				Subject:   "user-1",
				IssuedAt:  jwt.NewNumericDate(time.Now().Add(-time.Hour)),
				ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
			},
		}
		expired, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
		require.NoError(t, err)

		resp := doRequest(t, app, "/any", "Bearer "+expired)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("user role on admin route is forbidden", func(t *testing.T) {
		resp := doRequest(t, app, "/admin", "Bearer "+userToken)
		assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	})

	t.Run("unknown role is forbidden even without a role restriction", func(t *testing.T) {
		claims := &auth.Claims{
			Email: "user@x.com",
			Role:  domain.Role("superuser"),
			RegisteredClaims: jwt.RegisteredClaims{
				Subject:   "user-1",
				IssuedAt:  jwt.NewNumericDate(time.Now()),
				ExpiresAt: jwt.NewNumericDate(time.Now().Add(30 * time.Minute)),
			},
		}
		unknownRole, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
		require.NoError(t, err)

		resp := doRequest(t, app, "/any", "Bearer "+unknownRole)
		assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	})

	t.Run("admin role on admin route proceeds with identity attached", func(t *testing.T) {
		resp := doRequest(t, app, "/admin", "Bearer "+adminToken)
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var body map[string]string
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		assert.Equal(t, "admin-1", body["id"])
		assert.Equal(t, "admin@x.com", body["email"])
		assert.Equal(t, "admin", body["role"])
	})

	t.Run("any authenticated role passes an unrestricted gate", func(t *testing.T) {
		resp := doRequest(t, app, "/any", "Bearer "+userToken)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})

	t.Run("bearer scheme comparison is case-insensitive", func(t *testing.T) {
		resp := doRequest(t, app, "/any", "bearer "+userToken)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})
}

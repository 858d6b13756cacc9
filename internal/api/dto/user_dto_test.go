package dto_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/spec-kit/account-service/internal/api/dto"
)

func strPtr(s string) *string { return &s }

func TestRegisterRequest_Validate(t *testing.T) {
	valid := dto.RegisterRequest{Name: "A", Email: "a@x.com", Password: "secret1"}

	t.Run("accepts a valid payload", func(t *testing.T) {
		assert.NoError(t, valid.Validate())
	})

	t.Run("rejects a missing name", func(t *testing.T) {
		req := valid
		req.Name = ""
		assert.Error(t, req.Validate())
	})

	t.Run("rejects a malformed email", func(t *testing.T) {
		req := valid
		req.Email = "not-an-email"
		assert.Error(t, req.Validate())
	})

	t.Run("rejects a password shorter than six symbols", func(t *testing.T) {
		req := valid
		req.Password = "short"
		assert.Error(t, req.Validate())
	})

	t.Run("rejects a password longer than thirty-six symbols", func(t *testing.T) {
		req := valid
		req.Password = strings.Repeat("x", 37)
		assert.Error(t, req.Validate())
	})
}

func TestLoginRequest_Validate(t *testing.T) {
	t.Run("accepts a valid payload", func(t *testing.T) {
		assert.NoError(t, dto.LoginRequest{Email: "a@x.com", Password: "secret1"}.Validate())
	})

	t.Run("rejects a missing password", func(t *testing.T) {
		assert.Error(t, dto.LoginRequest{Email: "a@x.com"}.Validate())
	})

	t.Run("rejects a missing email", func(t *testing.T) {
		assert.Error(t, dto.LoginRequest{Password: "secret1"}.Validate())
	})
}

func TestCreateUserRequest_Validate(t *testing.T) {
	valid := dto.CreateUserRequest{Name: "A", Email: "a@x.com", Password: "secret1", Role: "admin"}

	t.Run("accepts both roles and an omitted role", func(t *testing.T) {
		for _, role := range []string{"user", "admin", ""} {
			req := valid
			req.Role = role
			assert.NoError(t, req.Validate(), "role %q", role)
		}
	})

	t.Run("rejects an unknown role", func(t *testing.T) {
		req := valid
		req.Role = "superuser"
		assert.Error(t, req.Validate())
	})
}

func TestUpdateUserRequest_Validate(t *testing.T) {
	t.Run("accepts an empty update", func(t *testing.T) {
		assert.NoError(t, dto.UpdateUserRequest{}.Validate())
	})

	t.Run("accepts partial updates", func(t *testing.T) {
		assert.NoError(t, dto.UpdateUserRequest{Name: strPtr("B")}.Validate())
		assert.NoError(t, dto.UpdateUserRequest{Role: strPtr("admin")}.Validate())
	})

	t.Run("rejects an empty provided name", func(t *testing.T) {
		assert.Error(t, dto.UpdateUserRequest{Name: strPtr("")}.Validate())
	})

	t.Run("rejects a malformed provided email", func(t *testing.T) {
		assert.Error(t, dto.UpdateUserRequest{Email: strPtr("nope")}.Validate())
	})

	t.Run("rejects a short provided password", func(t *testing.T) {
		assert.Error(t, dto.UpdateUserRequest{Password: strPtr("short")}.Validate())
	})

	t.Run("rejects an unknown provided role", func(t *testing.T) {
		assert.Error(t, dto.UpdateUserRequest{Role: strPtr("superuser")}.Validate())
	})
}

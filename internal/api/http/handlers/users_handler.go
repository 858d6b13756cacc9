package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/account-service/internal/api/dto"
	"github.com/spec-kit/account-service/internal/auth"
	"github.com/spec-kit/account-service/internal/domain"
	"github.com/spec-kit/account-service/internal/service"
	apperrors "github.com/spec-kit/account-service/pkg/util"
)

// UsersHandler exposes registration, login and user CRUD endpoints.
type UsersHandler struct {
	accounts *service.AccountService
}

// NewUsersHandler constructs the handler.
func NewUsersHandler(accounts *service.AccountService) *UsersHandler {
	return &UsersHandler{accounts: accounts}
}

// Register handles POST /api/login/register.
func (h *UsersHandler) Register(c *fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := req.Validate(); err != nil {
		return apperrors.NewValidationError(err.Error(), nil)
	}

	user, token, exp, err := h.accounts.Register(c.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		return err
	}

	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"status": "ok",
		"data": fiber.Map{
			"user": dto.NewUserResponse(user),
			"auth": dto.AuthResponse{Token: token, ExpiresAt: exp},
		},
	})
}

// Login handles POST /api/login.
func (h *UsersHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := req.Validate(); err != nil {
		return apperrors.NewValidationError(err.Error(), nil)
	}

	user, token, exp, err := h.accounts.Login(c.Context(), req.Email, req.Password)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"status": "ok",
		"data": fiber.Map{
			"user": dto.NewUserResponse(user),
			"auth": dto.AuthResponse{Token: token, ExpiresAt: exp},
		},
	})
}

// Me handles GET /api/users/me for any authenticated caller.
func (h *UsersHandler) Me(c *fiber.Ctx) error {
	identity, ok := auth.IdentityFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	user, err := h.accounts.Get(c.Context(), identity.ID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"status": "ok",
		"data":   fiber.Map{"user": dto.NewUserResponse(user)},
	})
}

// List handles GET /api/users (admin only).
func (h *UsersHandler) List(c *fiber.Ctx) error {
	users, err := h.accounts.List(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"status": "ok",
		"data":   fiber.Map{"users": dto.NewUserResponses(users)},
	})
}

// Get handles GET /api/users/:id (admin only).
func (h *UsersHandler) Get(c *fiber.Ctx) error {
	user, err := h.accounts.Get(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"status": "ok",
		"data":   fiber.Map{"user": dto.NewUserResponse(user)},
	})
}

// Create handles POST /api/users (admin only).
func (h *UsersHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := req.Validate(); err != nil {
		return apperrors.NewValidationError(err.Error(), nil)
	}

	role := domain.DefaultRole
	if req.Role != "" {
		role = domain.Role(req.Role)
	}

	user, err := h.accounts.Create(c.Context(), req.Name, req.Email, req.Password, role)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"status": "ok",
		"data":   fiber.Map{"user": dto.NewUserResponse(user)},
	})
}

// Update handles PUT /api/users/:id (admin only).
func (h *UsersHandler) Update(c *fiber.Ctx) error {
	var req dto.UpdateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := req.Validate(); err != nil {
		return apperrors.NewValidationError(err.Error(), nil)
	}

	upd := service.UserUpdate{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	}
	if req.Role != nil {
		role := domain.Role(*req.Role)
		upd.Role = &role
	}

	user, err := h.accounts.Update(c.Context(), c.Params("id"), upd)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"status": "ok",
		"data":   fiber.Map{"user": dto.NewUserResponse(user)},
	})
}

// Delete handles DELETE /api/users/:id (admin only).
func (h *UsersHandler) Delete(c *fiber.Ctx) error {
	if err := h.accounts.Delete(c.Context(), c.Params("id")); err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"status": "ok",
		"data":   fiber.Map{},
	})
}

package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/airquality-service/internal/api/dto"
	"github.com/spec-kit/airquality-service/internal/auth"
	"github.com/spec-kit/airquality-service/internal/service"
	apperrors "github.com/spec-kit/airquality-service/pkg/util"
)

// AuthHandler exposes the login and logout endpoints.
type AuthHandler struct {
	auth *service.AuthService
}

// NewAuthHandler constructs handler.
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{auth: authService}
}

// Login handles POST /login. On success the session cookie is set and the
// caller receives its own profile; on failure no cookie is set.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Email == "" || req.Password == "" {
		return apperrors.NewValidationError("email and password required", nil)
	}

	user, token, expiresAt, err := h.auth.Login(c.UserContext(), req.Email, req.Password)
	if err != nil {
		return err
	}

	auth.SetSessionCookie(c, token, expiresAt)
	return c.JSON(dto.LoginResponse{
		ID:      user.ID,
		Email:   user.Email,
		Perfil:  string(user.Role),
		Hubspot: user.TenantID,
		Name:    user.Nome,
	})
}

// Logout handles POST /logout. The cookie is cleared unconditionally;
// because tokens are stateless, a previously captured token string remains
// valid until its expiry.
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	auth.ClearSessionCookie(c)
	return c.JSON(dto.LogoutResponse{OK: true})
}

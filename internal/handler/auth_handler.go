package handler

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/choreosync/api/internal/auth"
)

// AuthHandler handles ForwardAuth verification for the API gateway
type AuthHandler struct {
	verifier  auth.TokenVerifier
	jwtSecret string
}

func NewAuthHandler(verifier auth.TokenVerifier, jwtSecret string) *AuthHandler {
	return &AuthHandler{
		verifier:  verifier,
		jwtSecret: jwtSecret,
	}
}

// Verify handles GET /auth/verify, called by Traefik ForwardAuth.
// Returns 200 with X-User-* headers on success, 401 on failure.
func (h *AuthHandler) Verify(c *fiber.Ctx) error {
	parts := strings.SplitN(c.Get("Authorization"), " ", 2)
	if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
		return c.SendStatus(fiber.StatusUnauthorized)
	}

	id, err := h.identify(parts[1])
	if err != nil {
		return c.SendStatus(fiber.StatusUnauthorized)
	}

	c.Set("X-User-Id", id.UserID)
	c.Set("X-User-Email", id.Email)
	if id.Name != "" {
		c.Set("X-User-Name", id.Name)
	}
	return c.SendStatus(fiber.StatusOK)
}

func (h *AuthHandler) identify(token string) (*auth.Identity, error) {
	if h.verifier != nil {
		if id, err := h.verifier.Validate(token); err == nil {
			return id, nil
		} else if h.jwtSecret == "" {
			return nil, err
		}
	}
	if h.jwtSecret != "" {
		return auth.ValidateLegacyToken(token, h.jwtSecret)
	}
	return nil, auth.ErrNotConfigured
}

package integrations

import (
	"errors"

	"github.com/documinds/documinds/api/internal/models"
	"github.com/documinds/documinds/api/internal/provider"
	syncsvc "github.com/documinds/documinds/api/internal/sync"
	"github.com/documinds/documinds/api/pkg/response"
	"github.com/gofiber/fiber/v2"
)

// OAuthCallbackRequest represents the oauth-callback request body posted by
// the front-end after the provider redirects back with code and state
type OAuthCallbackRequest struct {
	IntegrationID string `json:"integration_id"`
	Code          string `json:"code"`
	State         string `json:"state"`
	RedirectURI   string `json:"redirect_uri"`
}

// OAuthCallback completes an OAuth authorization: verifies the state nonce,
// exchanges the code, validates access and persists the user's grant.
// POST /api/integrations/oauth/callback
func OAuthCallback(c *fiber.Ctx) error {
	user, ok := c.Locals("user").(*models.User)
	if !ok {
		return response.Unauthorized(c, "Invalid authentication")
	}

	var req OAuthCallbackRequest
	if err := c.BodyParser(&req); err != nil {
		return callbackError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if req.IntegrationID == "" || req.Code == "" || req.State == "" {
		return callbackError(c, fiber.StatusBadRequest, "integration_id, code and state are required")
	}

	if _, ok := findIntegrationForUser(user, req.IntegrationID); !ok {
		return callbackError(c, fiber.StatusNotFound, "Integration not found or access denied")
	}

	result, err := syncService().HandleOAuthCallback(c.Context(), user, syncsvc.OAuthCallbackInput{
		IntegrationID: req.IntegrationID,
		Code:          req.Code,
		State:         req.State,
		RedirectURI:   req.RedirectURI,
	})
	if err != nil {
		var exchangeErr *provider.TokenExchangeError
		switch {
		case errors.Is(err, syncsvc.ErrStateMismatch):
			return callbackError(c, fiber.StatusBadRequest, err.Error())
		case errors.As(err, &exchangeErr):
			return callbackError(c, fiber.StatusBadRequest, exchangeErr.Body)
		default:
			return callbackError(c, fiber.StatusInternalServerError, err.Error())
		}
	}

	return c.JSON(fiber.Map{
		"success":        true,
		"status":         result.Status,
		"message":        result.Message,
		"missing_scopes": result.MissingScopes,
	})
}

func callbackError(c *fiber.Ctx, statusCode int, message string) error {
	return c.Status(statusCode).JSON(fiber.Map{
		"success": false,
		"error":   message,
	})
}

package integrations

import (
	"github.com/documinds/documinds/api/internal/models"
	syncsvc "github.com/documinds/documinds/api/internal/sync"
	"github.com/documinds/documinds/api/pkg/response"
	"github.com/gofiber/fiber/v2"
)

// ValidateTokenRequest represents the validate-api-token request body.
// integration_id may be null: the create-integration dialog validates a
// token before the row exists, and no writes happen in that mode.
type ValidateTokenRequest struct {
	IntegrationID   *string `json:"integration_id"`
	Email           string  `json:"email"`
	APIToken        string  `json:"api_token"`
	SiteURL         string  `json:"site_url"`
	IntegrationType string  `json:"integration_type"`
}

// ValidateToken authenticates a static API token against the provider and,
// for an existing integration, persists the grant and mirrors resources.
// POST /api/integrations/validate-token
func ValidateToken(c *fiber.Ctx) error {
	user, ok := c.Locals("user").(*models.User)
	if !ok {
		return response.Unauthorized(c, "Invalid authentication")
	}

	var req ValidateTokenRequest
	if err := c.BodyParser(&req); err != nil {
		return validateError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if req.APIToken == "" || req.IntegrationType == "" {
		return validateError(c, fiber.StatusBadRequest, "api_token and integration_type are required")
	}

	if req.IntegrationID != nil {
		if _, ok := findIntegrationForUser(user, *req.IntegrationID); !ok {
			return validateError(c, fiber.StatusNotFound, "Integration not found or access denied")
		}
	}

	result, err := syncService().ValidateAPIToken(c.Context(), user, syncsvc.ValidateTokenInput{
		IntegrationID:   req.IntegrationID,
		Email:           req.Email,
		APIToken:        req.APIToken,
		SiteURL:         req.SiteURL,
		IntegrationType: models.IntegrationType(req.IntegrationType),
	})
	if err != nil {
		return validateError(c, fiber.StatusInternalServerError, err.Error())
	}

	if result.Status != models.CredentialStatusValidated {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"status":  result.Status,
			"message": result.Message,
			"error":   result.Message,
		})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"status":  result.Status,
		"message": result.Message,
		"mirror":  result.Mirror,
	})
}

func validateError(c *fiber.Ctx, statusCode int, message string) error {
	return c.Status(statusCode).JSON(fiber.Map{
		"success": false,
		"error":   message,
	})
}

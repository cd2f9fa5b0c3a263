package integrations

import (
	"github.com/documinds/documinds/api/internal/models"
	"github.com/documinds/documinds/api/internal/provider"
	appredis "github.com/documinds/documinds/api/internal/redis"
	"github.com/documinds/documinds/api/pkg/response"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// AuthorizeRequest represents the start-authorization request body
type AuthorizeRequest struct {
	RedirectURI string `json:"redirectUri"`
}

// Authorize issues a server-side OAuth state nonce for the acting user and
// returns the provider consent URL. The nonce expires after ten minutes and
// is consumed by the callback, so a state value is redeemable at most once.
// POST /api/integrations/:integrationId/authorize
func Authorize(c *fiber.Ctx) error {
	user, ok := c.Locals("user").(*models.User)
	if !ok {
		return response.Unauthorized(c, "Invalid authentication")
	}

	integrationID := c.Params("integrationId")
	if integrationID == "" {
		return response.BadRequest(c, "Integration ID is required")
	}

	integration, ok := findIntegrationForUser(user, integrationID)
	if !ok {
		return response.NotFound(c, "Integration not found or access denied")
	}

	if integration.AuthType != models.AuthTypeOAuth {
		return response.BadRequest(c, "Integration does not use OAuth")
	}

	var req AuthorizeRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if req.RedirectURI == "" {
		return response.BadRequest(c, "Redirect URI is required")
	}

	state := uuid.NewString()
	if err := appredis.SaveAuthState(c.Context(), integration.ID, user.ID, state); err != nil {
		return response.InternalServerError(c, "Failed to issue authorization state")
	}

	authorizationURL, err := provider.AuthorizationURL(integration, state, req.RedirectURI)
	if err != nil {
		return response.BadRequest(c, err.Error())
	}

	return response.Success(c, fiber.Map{
		"authorizationUrl": authorizationURL,
		"state":            state,
	})
}

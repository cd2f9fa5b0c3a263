package integrations

import (
	"github.com/documinds/documinds/api/internal/models"
	"github.com/documinds/documinds/api/pkg/response"
	"github.com/gofiber/fiber/v2"
)

// Get returns a single integration
// GET /api/integrations/:integrationId
func Get(c *fiber.Ctx) error {
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

	return response.Success(c, integrationView(integration))
}

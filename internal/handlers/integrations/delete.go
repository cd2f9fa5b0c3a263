package integrations

import (
	"time"

	"github.com/documinds/documinds/api/internal/database"
	"github.com/documinds/documinds/api/internal/models"
	"github.com/documinds/documinds/api/pkg/response"
	"github.com/gofiber/fiber/v2"
)

// Delete removes an integration and every per-user grant under it. Mirrored
// resource rows are kept for history.
// DELETE /api/integrations/:integrationId
func Delete(c *fiber.Ctx) error {
	db := database.GetDatabase()

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

	now := time.Now()

	// Soft delete the integration
	if err := db.Model(integration).Update("deletedAt", &now).Error; err != nil {
		return response.InternalServerError(c, "Failed to delete integration")
	}

	// Credential rows cascade with the integration
	if err := db.Where("integrationId = ?", integration.ID).
		Delete(&models.IntegrationCredential{}).Error; err != nil {
		return response.InternalServerError(c, "Failed to delete integration credentials")
	}

	return response.Success(c, fiber.Map{
		"message": "Integration deleted successfully",
	})
}

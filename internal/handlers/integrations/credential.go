package integrations

import (
	"github.com/documinds/documinds/api/internal/database"
	"github.com/documinds/documinds/api/internal/models"
	"github.com/documinds/documinds/api/pkg/response"
	"github.com/gofiber/fiber/v2"
)

// GetCredential returns the acting user's grant status for an integration
// GET /api/integrations/:integrationId/credential
func GetCredential(c *fiber.Ctx) error {
	db := database.GetDatabase()

	user, ok := c.Locals("user").(*models.User)
	if !ok {
		return response.Unauthorized(c, "Invalid authentication")
	}

	integrationID := c.Params("integrationId")
	integration, ok := findIntegrationForUser(user, integrationID)
	if !ok {
		return response.NotFound(c, "Integration not found or access denied")
	}

	var cred models.IntegrationCredential
	if err := db.Where("integrationId = ? AND userId = ?", integration.ID, user.ID).
		First(&cred).Error; err != nil {
		return response.NotFound(c, "No credential found for this integration")
	}

	return response.Success(c, fiber.Map{
		"integrationId":   cred.IntegrationID,
		"status":          cred.Status,
		"scopes":          cred.Scopes,
		"tokenExpiresAt":  cred.TokenExpiresAt,
		"validationError": cred.ValidationError,
		"lastValidatedAt": cred.LastValidatedAt,
		"createdAt":       cred.CreatedAt,
		"updatedAt":       cred.UpdatedAt,
	})
}

// DeleteCredential disconnects the acting user's personal grant. The shared
// integration row survives.
// DELETE /api/integrations/:integrationId/credential
func DeleteCredential(c *fiber.Ctx) error {
	db := database.GetDatabase()

	user, ok := c.Locals("user").(*models.User)
	if !ok {
		return response.Unauthorized(c, "Invalid authentication")
	}

	integrationID := c.Params("integrationId")
	integration, ok := findIntegrationForUser(user, integrationID)
	if !ok {
		return response.NotFound(c, "Integration not found or access denied")
	}

	result := db.Where("integrationId = ? AND userId = ?", integration.ID, user.ID).
		Delete(&models.IntegrationCredential{})
	if result.Error != nil {
		return response.InternalServerError(c, "Failed to disconnect credential")
	}
	if result.RowsAffected == 0 {
		return response.NotFound(c, "No credential found for this integration")
	}

	return response.Success(c, fiber.Map{
		"message": "Credential disconnected successfully",
	})
}

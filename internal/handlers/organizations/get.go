package organizations

import (
	"github.com/documinds/documinds/api/internal/database"
	"github.com/documinds/documinds/api/internal/models"
	"github.com/documinds/documinds/api/pkg/response"
	"github.com/gofiber/fiber/v2"
)

// GET /api/organizations/:organizationId
func Get(c *fiber.Ctx) error {
	db := database.GetDatabase()
	organizationID := c.Params("organizationId")

	user, ok := c.Locals("user").(*models.User)
	if !ok {
		return response.Unauthorized(c, "Invalid authentication")
	}

	if organizationID == "" {
		return response.BadRequest(c, "Organization ID is required")
	}

	// Check access
	if !checkOrganizationAccess(user, organizationID) {
		return response.Forbidden(c, "Organization not found or access denied")
	}

	var organization models.Organization
	if err := db.Where("id = ? AND deletedAt IS NULL", organizationID).
		First(&organization).Error; err != nil {
		return response.NotFound(c, "Organization not found")
	}

	var integrationCount int64
	db.Model(&models.Integration{}).
		Where("organizationId = ? AND deletedAt IS NULL", organizationID).
		Count(&integrationCount)

	var resourceCount int64
	db.Model(&models.Resource{}).
		Where("organizationId = ? AND status = ?", organizationID, models.ResourceStatusActive).
		Count(&resourceCount)

	return response.Success(c, fiber.Map{
		"organization":     organization,
		"integrationCount": integrationCount,
		"resourceCount":    resourceCount,
	})
}

package resources

import (
	"github.com/documinds/documinds/api/internal/database"
	"github.com/documinds/documinds/api/internal/models"
	"github.com/documinds/documinds/api/pkg/response"
	"github.com/gofiber/fiber/v2"
)

// List returns the mirrored resources for an organization, optionally
// filtered by integration or status
// GET /api/resources?organizationId=&integrationId=&status=
func List(c *fiber.Ctx) error {
	db := database.GetDatabase()

	user, ok := c.Locals("user").(*models.User)
	if !ok {
		return response.Unauthorized(c, "Invalid authentication")
	}

	organizationID := c.Query("organizationId")
	if organizationID == "" {
		return response.BadRequest(c, "Organization ID is required")
	}

	var org models.Organization
	if err := db.Where("id = ? AND userId = ? AND deletedAt IS NULL", organizationID, user.ID).
		First(&org).Error; err != nil {
		return response.Forbidden(c, "Organization not found or access denied")
	}

	query := db.Where("organizationId = ?", organizationID)
	if integrationID := c.Query("integrationId"); integrationID != "" {
		query = query.Where("integrationId = ?", integrationID)
	}
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	var rows []models.Resource
	if err := query.Order("name ASC").Find(&rows).Error; err != nil {
		return response.InternalServerError(c, "Failed to fetch resources")
	}

	return response.Success(c, rows)
}

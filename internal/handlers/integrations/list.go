package integrations

import (
	"github.com/documinds/documinds/api/internal/database"
	"github.com/documinds/documinds/api/internal/models"
	"github.com/documinds/documinds/api/pkg/response"
	"github.com/gofiber/fiber/v2"
)

// List returns all integrations for an organization
// GET /api/integrations?organizationId=
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

	if !checkOrganizationAccess(user, organizationID) {
		return response.Forbidden(c, "Organization not found or access denied")
	}

	var integrations []models.Integration
	if err := db.Where("organizationId = ? AND deletedAt IS NULL", organizationID).
		Order("createdAt DESC").
		Find(&integrations).Error; err != nil {
		return response.InternalServerError(c, "Failed to fetch integrations")
	}

	result := make([]fiber.Map, 0, len(integrations))
	for i := range integrations {
		result = append(result, integrationView(&integrations[i]))
	}

	return response.Success(c, result)
}

// integrationView formats an integration for API responses, omitting secrets
func integrationView(integration *models.Integration) fiber.Map {
	return fiber.Map{
		"id":             integration.ID,
		"organizationId": integration.OrganizationID,
		"name":           integration.Name,
		"type":           integration.Type,
		"authType":       integration.AuthType,
		"authorizeUrl":   integration.AuthorizeURL,
		"tokenUrl":       integration.TokenURL,
		"scopes":         integration.Scopes,
		"clientId":       integration.ClientID,
		"accountEmail":   integration.AccountEmail,
		"siteUrl":        integration.SiteURL,
		"status":         integration.Status,
		"lastSyncAt":     integration.LastSyncAt,
		"errorMessage":   integration.ErrorMessage,
		"createdAt":      integration.CreatedAt,
		"updatedAt":      integration.UpdatedAt,
	}
}

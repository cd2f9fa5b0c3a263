package integrations

import (
	"github.com/documinds/documinds/api/internal/crypto"
	"github.com/documinds/documinds/api/internal/database"
	"github.com/documinds/documinds/api/internal/models"
	"github.com/documinds/documinds/api/internal/provider"
	"github.com/documinds/documinds/api/pkg/response"
	"github.com/gofiber/fiber/v2"
)

// Sync re-validates the acting user's grant and runs a mirror pass on demand
// POST /api/integrations/:integrationId/sync
func Sync(c *fiber.Ctx) error {
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

	cred := provider.Credential{
		Static: integration.AuthType == models.AuthTypeAPIToken,
	}
	if integration.AccountEmail != nil {
		cred.Email = *integration.AccountEmail
	}

	var row models.IntegrationCredential
	err := db.Where("integrationId = ? AND userId = ?", integration.ID, user.ID).
		First(&row).Error
	switch {
	case err == nil:
		token, decryptErr := crypto.Decrypt(row.AccessToken)
		if decryptErr != nil {
			return response.InternalServerError(c, "Failed to read stored credential")
		}
		cred.AccessToken = token
	case integration.AuthType == models.AuthTypeAPIToken && integration.APIToken != nil:
		// No personal grant yet: fall back to the shared configuration token
		token, decryptErr := crypto.Decrypt(*integration.APIToken)
		if decryptErr != nil {
			return response.InternalServerError(c, "Failed to read stored credential")
		}
		cred.AccessToken = token
	default:
		return response.BadRequest(c, "No credential found for this integration; authorize or validate a token first")
	}

	result, err := syncService().RunMirror(c.Context(), user, integration, cred)
	if err != nil {
		return response.InternalServerError(c, err.Error())
	}

	return response.Success(c, result)
}

package integrations

import (
	"github.com/documinds/documinds/api/internal/crypto"
	"github.com/documinds/documinds/api/internal/database"
	"github.com/documinds/documinds/api/internal/models"
	"github.com/documinds/documinds/api/internal/provider"
	"github.com/documinds/documinds/api/pkg/response"
	"github.com/documinds/documinds/api/pkg/utils"
	"github.com/gofiber/fiber/v2"
)

// CreateIntegrationRequest represents the create integration request body
type CreateIntegrationRequest struct {
	OrganizationID string `json:"organizationId"`
	Name           string `json:"name"`
	Type           string `json:"type"`
	AuthType       string `json:"authType"`
	AuthorizeURL   string `json:"authorizeUrl"`
	TokenURL       string `json:"tokenUrl"`
	Scopes         string `json:"scopes"`
	ClientID       string `json:"clientId"`
	ClientSecret   string `json:"clientSecret"`
	APIToken       string `json:"apiToken"`
	AccountEmail   string `json:"accountEmail"`
	SiteURL        string `json:"siteUrl"`
}

// Create creates an integration for an organization
// POST /api/integrations
func Create(c *fiber.Ctx) error {
	db := database.GetDatabase()

	user, ok := c.Locals("user").(*models.User)
	if !ok {
		return response.Unauthorized(c, "Invalid authentication")
	}

	var req CreateIntegrationRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if req.OrganizationID == "" || req.Name == "" {
		return response.BadRequest(c, "Organization ID and name are required")
	}
	if !models.ValidIntegrationType(models.IntegrationType(req.Type)) {
		return response.BadRequest(c, "Invalid integration type")
	}

	if !checkOrganizationAccess(user, req.OrganizationID) {
		return response.Forbidden(c, "Organization not found or access denied")
	}

	integration := models.Integration{
		ID:             utils.GenerateShortID(),
		OrganizationID: req.OrganizationID,
		Name:           req.Name,
		Type:           models.IntegrationType(req.Type),
		Status:         models.IntegrationStatusDisconnected,
	}

	// Exactly one auth-mode field set is populated per authType
	switch models.AuthType(req.AuthType) {
	case models.AuthTypeOAuth:
		if req.ClientID == "" || req.ClientSecret == "" {
			return response.BadRequest(c, "Client ID and client secret are required for OAuth integrations")
		}
		integration.AuthType = models.AuthTypeOAuth
		integration.ClientID = utils.Ptr(req.ClientID)
		secret, err := crypto.Encrypt(req.ClientSecret)
		if err != nil {
			return response.InternalServerError(c, "Failed to store client secret")
		}
		integration.ClientSecret = utils.Ptr(secret)
		if req.AuthorizeURL != "" {
			integration.AuthorizeURL = utils.Ptr(req.AuthorizeURL)
		}
		if req.TokenURL != "" {
			integration.TokenURL = utils.Ptr(req.TokenURL)
		}
		if req.Scopes != "" {
			integration.Scopes = utils.Ptr(req.Scopes)
		}
	case models.AuthTypeAPIToken:
		if req.APIToken == "" {
			return response.BadRequest(c, "API token is required for api_token integrations")
		}
		integration.AuthType = models.AuthTypeAPIToken
		token, err := crypto.Encrypt(req.APIToken)
		if err != nil {
			return response.InternalServerError(c, "Failed to store API token")
		}
		integration.APIToken = utils.Ptr(token)
		if req.AccountEmail != "" {
			integration.AccountEmail = utils.Ptr(req.AccountEmail)
		}
	default:
		return response.BadRequest(c, "Invalid auth type")
	}

	if req.SiteURL != "" {
		integration.SiteURL = utils.Ptr(provider.NormalizeSiteURL(req.SiteURL))
	}

	if err := db.Create(&integration).Error; err != nil {
		return response.InternalServerError(c, "Failed to create integration")
	}

	return response.Success(c, integrationView(&integration))
}

package routes

import (
	"github.com/documinds/documinds/api/internal/config"
	"github.com/documinds/documinds/api/internal/handlers/account"
	"github.com/documinds/documinds/api/internal/handlers/apikeys"
	"github.com/documinds/documinds/api/internal/handlers/auth"
	"github.com/documinds/documinds/api/internal/handlers/integrations"
	"github.com/documinds/documinds/api/internal/handlers/organizations"
	"github.com/documinds/documinds/api/internal/handlers/resources"
	"github.com/documinds/documinds/api/internal/middleware"
	wshandler "github.com/documinds/documinds/api/internal/websocket"
	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
)

func Setup(app *fiber.App, cfg *config.Config) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	api := app.Group("/api")

	// WebSocket
	api.Use("/socket", wshandler.UpgradeMiddleware)
	api.Get("/socket", websocket.New(wshandler.Handler))

	authPublic := api.Group("/auth")
	{
		// Auth - public
		authPublic.Post("/login", auth.Login)

		// Auth - protected (JWT)
		authPublic.Get("/user", middleware.AuthMiddleware(cfg), auth.GetUser)
	}

	// Account (JWT)
	accountRoutes := api.Group("/account", middleware.AuthMiddleware(cfg))
	{
		accountRoutes.Patch("/password", account.UpdatePassword)
		accountRoutes.Patch("/profile", account.UpdateProfile)
	}

	// Organizations (JWT)
	orgs := api.Group("/organizations", middleware.AuthMiddleware(cfg))
	{
		orgs.Get("/", organizations.List)
		orgs.Post("/", organizations.Create)
		orgs.Get("/:organizationId", organizations.Get)
	}

	// Integrations (JWT or API key)
	integrationsRoutes := api.Group("/integrations", middleware.AuthMiddlewareWithApiKey(cfg))
	{
		integrationsRoutes.Get("/", integrations.List)
		integrationsRoutes.Post("/", integrations.Create)
		integrationsRoutes.Post("/oauth/callback", integrations.OAuthCallback)
		integrationsRoutes.Post("/validate-token", integrations.ValidateToken)
		integrationsRoutes.Get("/:integrationId", integrations.Get)
		integrationsRoutes.Delete("/:integrationId", integrations.Delete)
		integrationsRoutes.Post("/:integrationId/authorize", integrations.Authorize)
		integrationsRoutes.Post("/:integrationId/sync", integrations.Sync)
		integrationsRoutes.Get("/:integrationId/credential", integrations.GetCredential)
		integrationsRoutes.Delete("/:integrationId/credential", integrations.DeleteCredential)
	}

	// Resources (JWT or API key)
	resourcesRoutes := api.Group("/resources", middleware.AuthMiddlewareWithApiKey(cfg))
	{
		resourcesRoutes.Get("/", resources.List)
	}

	// API Keys (JWT)
	apiKeysRoutes := api.Group("/api-keys", middleware.AuthMiddleware(cfg))
	{
		apiKeysRoutes.Get("/", apikeys.List)
		apiKeysRoutes.Post("/", apikeys.Create)
		apiKeysRoutes.Get("/:apiKeyId", apikeys.Get)
		apiKeysRoutes.Delete("/:apiKeyId", apikeys.Delete)
	}
}

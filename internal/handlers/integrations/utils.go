package integrations

import (
	"context"
	"log"
	"sync"

	"github.com/documinds/documinds/api/internal/database"
	"github.com/documinds/documinds/api/internal/mirror"
	"github.com/documinds/documinds/api/internal/models"
	"github.com/documinds/documinds/api/internal/provider"
	appredis "github.com/documinds/documinds/api/internal/redis"
	syncsvc "github.com/documinds/documinds/api/internal/sync"
)

var (
	serviceOnce sync.Once
	service     *syncsvc.Service
)

// syncService lazily wires the orchestrator against the live database,
// provider registry and redis state store
func syncService() *syncsvc.Service {
	serviceOnce.Do(func() {
		db := database.GetDatabase()
		service = syncsvc.NewService(
			syncsvc.NewGormIntegrationStore(db),
			syncsvc.NewGormCredentialStore(db),
			syncsvc.RedisStateStore{},
			provider.NewRegistry(nil),
			mirror.New(mirror.NewGormStore(db)),
		)
		service.PublishEvent = func(ctx context.Context, organizationID, event string, payload interface{}) {
			if err := appredis.PublishSyncEvent(ctx, organizationID, event, payload); err != nil {
				log.Printf("Failed to publish sync event: %v", err)
			}
		}
	})
	return service
}

// checkOrganizationAccess checks if user has access to the organization
func checkOrganizationAccess(user *models.User, organizationID string) bool {
	db := database.GetDatabase()

	var org models.Organization
	if err := db.Where("id = ? AND userId = ? AND deletedAt IS NULL", organizationID, user.ID).
		First(&org).Error; err != nil {
		return false
	}

	return true
}

// findIntegrationForUser loads an integration the user's organization owns
func findIntegrationForUser(user *models.User, integrationID string) (*models.Integration, bool) {
	db := database.GetDatabase()

	var integration models.Integration
	if err := db.Preload("Organization").
		Where("id = ? AND deletedAt IS NULL", integrationID).
		First(&integration).Error; err != nil {
		return nil, false
	}

	if integration.Organization.UserID != user.ID {
		return nil, false
	}
	return &integration, true
}

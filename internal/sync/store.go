package sync

import (
	"context"

	"github.com/documinds/documinds/api/internal/models"
	appredis "github.com/documinds/documinds/api/internal/redis"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormIntegrationStore is the database-backed IntegrationStore
type GormIntegrationStore struct {
	db *gorm.DB
}

func NewGormIntegrationStore(db *gorm.DB) *GormIntegrationStore {
	return &GormIntegrationStore{db: db}
}

func (s *GormIntegrationStore) Find(ctx context.Context, id string) (*models.Integration, error) {
	var integration models.Integration
	if err := s.db.WithContext(ctx).
		Where("id = ? AND deletedAt IS NULL", id).
		First(&integration).Error; err != nil {
		return nil, err
	}
	return &integration, nil
}

func (s *GormIntegrationStore) UpdateStatus(ctx context.Context, id string, status models.IntegrationStatus, errorMessage *string) error {
	return s.db.WithContext(ctx).Model(&models.Integration{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":       status,
			"errorMessage": errorMessage,
		}).Error
}

// GormCredentialStore is the database-backed CredentialStore. Upsert is a
// single atomic write on the (integrationId, userId) unique index, so
// concurrent validations for the same pair cannot race into duplicates.
type GormCredentialStore struct {
	db *gorm.DB
}

func NewGormCredentialStore(db *gorm.DB) *GormCredentialStore {
	return &GormCredentialStore{db: db}
}

func (s *GormCredentialStore) Upsert(ctx context.Context, cred *models.IntegrationCredential) error {
	return s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "integrationId"}, {Name: "userId"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"accessToken", "refreshToken", "tokenExpiresAt", "scopes",
			"status", "validationError", "lastValidatedAt",
		}),
	}).Create(cred).Error
}

// RedisStateStore adapts the redis-backed OAuth state nonce store
type RedisStateStore struct{}

func (RedisStateStore) Consume(ctx context.Context, integrationID, userID, state string) (bool, error) {
	return appredis.ConsumeAuthState(ctx, integrationID, userID, state)
}

package mirror

import (
	"context"
	"time"

	"github.com/documinds/documinds/api/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ResourceStore abstracts the table mutations the mirror needs, so the
// reconciliation logic can be exercised against an in-memory fake.
type ResourceStore interface {
	// UpsertResource inserts the row or, when a row with the same
	// (organization, integration, type, externalId) exists, refreshes its
	// name, url, status and sync timestamp. Must be a single atomic write.
	UpsertResource(ctx context.Context, res *models.Resource) error

	// MarkRemoved flips rows of the given type that were not observed in the
	// current listing to removed. Returns how many rows changed.
	MarkRemoved(ctx context.Context, organizationID, integrationID string, resourceType models.ResourceType, seenExternalIDs []string) (int64, error)

	// TouchIntegration records a completed mirror pass on the parent row
	TouchIntegration(ctx context.Context, integrationID string, syncedAt time.Time) error
}

// GormStore is the database-backed ResourceStore
type GormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func (s *GormStore) UpsertResource(ctx context.Context, res *models.Resource) error {
	return s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{
			{Name: "organizationId"}, {Name: "integrationId"}, {Name: "type"}, {Name: "externalId"},
		},
		DoUpdates: clause.AssignmentColumns([]string{"name", "url", "status", "lastSyncedAt"}),
	}).Create(res).Error
}

func (s *GormStore) MarkRemoved(ctx context.Context, organizationID, integrationID string, resourceType models.ResourceType, seenExternalIDs []string) (int64, error) {
	query := s.db.WithContext(ctx).Model(&models.Resource{}).
		Where("organizationId = ? AND integrationId = ? AND type = ? AND status <> ?",
			organizationID, integrationID, resourceType, models.ResourceStatusRemoved)
	if len(seenExternalIDs) > 0 {
		query = query.Where("externalId NOT IN ?", seenExternalIDs)
	}

	result := query.Update("status", models.ResourceStatusRemoved)
	return result.RowsAffected, result.Error
}

func (s *GormStore) TouchIntegration(ctx context.Context, integrationID string, syncedAt time.Time) error {
	return s.db.WithContext(ctx).Model(&models.Integration{}).
		Where("id = ?", integrationID).
		Update("lastSyncAt", syncedAt).Error
}

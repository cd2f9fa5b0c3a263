package mirror

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/documinds/documinds/api/internal/models"
	"github.com/documinds/documinds/api/internal/provider"
	"github.com/documinds/documinds/api/pkg/utils"
)

// Lister is the listing half of a provider
type Lister interface {
	ListResources(ctx context.Context, integration *models.Integration, cred provider.Credential) (*provider.Listing, error)
}

// Summary reports what one mirror pass did
type Summary struct {
	Synced  int      `json:"synced"`
	Removed int64    `json:"removed"`
	Errors  []string `json:"errors,omitempty"`
}

// Mirror converges local Resource rows for one (organization, integration)
// pair to match what the provider currently reports. Rows for objects no
// longer observed flip to removed but survive, so audit history outlives
// deprovisioning on the provider side.
type Mirror struct {
	store ResourceStore
	now   func() time.Time
}

func New(store ResourceStore) *Mirror {
	return &Mirror{store: store, now: time.Now}
}

// Sync runs one mirror pass. Per-source listing failures reported by the
// provider are logged and carried in the summary, but the pass still
// reconciles whatever sources succeeded: removal is scoped to the resource
// types the listing fully enumerated, so a failed sub-source cannot
// mass-remove its rows. Store write failures abort the pass.
func (m *Mirror) Sync(ctx context.Context, lister Lister, integration *models.Integration, cred provider.Credential) (*Summary, error) {
	listing, err := lister.ListResources(ctx, integration, cred)
	if err != nil {
		return nil, fmt.Errorf("failed to list resources: %w", err)
	}

	now := m.now()
	summary := &Summary{Errors: listing.Errors}
	for _, sourceErr := range listing.Errors {
		log.Printf("Partial listing failure for integration %s: %s", integration.ID, sourceErr)
	}

	seenByType := make(map[models.ResourceType][]string)
	for _, descriptor := range listing.Resources {
		syncedAt := now
		res := &models.Resource{
			ID:             utils.GenerateShortID(),
			OrganizationID: integration.OrganizationID,
			IntegrationID:  integration.ID,
			Type:           descriptor.Type,
			ExternalID:     descriptor.ExternalID,
			Name:           descriptor.Name,
			Status:         models.ResourceStatusActive,
			LastSyncedAt:   &syncedAt,
		}
		if descriptor.URL != "" {
			res.URL = utils.Ptr(descriptor.URL)
		}

		if err := m.store.UpsertResource(ctx, res); err != nil {
			return summary, fmt.Errorf("failed to upsert resource %q: %w", descriptor.Name, err)
		}
		summary.Synced++
		seenByType[descriptor.Type] = append(seenByType[descriptor.Type], descriptor.ExternalID)
	}

	for _, resourceType := range listing.Listed {
		removed, err := m.store.MarkRemoved(ctx, integration.OrganizationID, integration.ID, resourceType, seenByType[resourceType])
		if err != nil {
			return summary, fmt.Errorf("failed to reconcile removed %s rows: %w", resourceType, err)
		}
		summary.Removed += removed
	}

	if err := m.store.TouchIntegration(ctx, integration.ID, now); err != nil {
		return summary, fmt.Errorf("failed to update integration sync time: %w", err)
	}

	return summary, nil
}

package mirror

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/documinds/documinds/api/internal/models"
	"github.com/documinds/documinds/api/internal/provider"
	"github.com/stretchr/testify/require"
)

type fakeStore struct {
	rows       map[string]*models.Resource
	upsertErr  error
	touchedAt  *time.Time
	touchCount int
}

func newFakeStore() *fakeStore {
	return &fakeStore{rows: make(map[string]*models.Resource)}
}

func rowKey(organizationID, integrationID string, resourceType models.ResourceType, externalID string) string {
	return fmt.Sprintf("%s|%s|%s|%s", organizationID, integrationID, resourceType, externalID)
}

func (s *fakeStore) UpsertResource(ctx context.Context, res *models.Resource) error {
	if s.upsertErr != nil {
		return s.upsertErr
	}
	key := rowKey(res.OrganizationID, res.IntegrationID, res.Type, res.ExternalID)
	if existing, ok := s.rows[key]; ok {
		existing.Name = res.Name
		existing.URL = res.URL
		existing.Status = res.Status
		existing.LastSyncedAt = res.LastSyncedAt
		return nil
	}
	copied := *res
	s.rows[key] = &copied
	return nil
}

func (s *fakeStore) MarkRemoved(ctx context.Context, organizationID, integrationID string, resourceType models.ResourceType, seenExternalIDs []string) (int64, error) {
	seen := make(map[string]bool, len(seenExternalIDs))
	for _, id := range seenExternalIDs {
		seen[id] = true
	}
	var removed int64
	for _, row := range s.rows {
		if row.OrganizationID != organizationID || row.IntegrationID != integrationID || row.Type != resourceType {
			continue
		}
		if row.Status != models.ResourceStatusRemoved && !seen[row.ExternalID] {
			row.Status = models.ResourceStatusRemoved
			removed++
		}
	}
	return removed, nil
}

func (s *fakeStore) TouchIntegration(ctx context.Context, integrationID string, syncedAt time.Time) error {
	s.touchedAt = &syncedAt
	s.touchCount++
	return nil
}

func (s *fakeStore) get(organizationID, integrationID string, resourceType models.ResourceType, externalID string) *models.Resource {
	return s.rows[rowKey(organizationID, integrationID, resourceType, externalID)]
}

type fakeLister struct {
	listing *provider.Listing
	err     error
	calls   int
}

func (l *fakeLister) ListResources(ctx context.Context, integration *models.Integration, cred provider.Credential) (*provider.Listing, error) {
	l.calls++
	return l.listing, l.err
}

func testIntegration() *models.Integration {
	return &models.Integration{
		ID:             "int-1",
		OrganizationID: "org-1",
		Type:           models.IntegrationTypeAtlassian,
	}
}

func jiraDescriptor(id, key, name string) provider.ResourceDescriptor {
	return provider.ResourceDescriptor{
		ExternalID: id,
		Name:       fmt.Sprintf("%s - %s", key, name),
		Type:       models.ResourceTypeJiraProject,
		URL:        "https://mycorp.atlassian.net/browse/" + key,
	}
}

func TestMirrorSyncCreatesAndRemoves(t *testing.T) {
	store := newFakeStore()
	m := New(store)
	integration := testIntegration()
	cred := provider.Credential{AccessToken: "tok", Static: true}

	lister := &fakeLister{listing: &provider.Listing{
		Resources: []provider.ResourceDescriptor{
			jiraDescriptor("10001", "PROJ", "Project One"),
			jiraDescriptor("10002", "OPS", "Operations"),
		},
		Listed: []models.ResourceType{models.ResourceTypeJiraProject},
	}}

	summary, err := m.Sync(context.Background(), lister, integration, cred)
	require.NoError(t, err)
	require.Equal(t, 2, summary.Synced)
	require.EqualValues(t, 0, summary.Removed)
	require.Equal(t, 1, store.touchCount)

	proj := store.get("org-1", "int-1", models.ResourceTypeJiraProject, "10001")
	require.NotNil(t, proj)
	require.Equal(t, "PROJ - Project One", proj.Name)
	require.Equal(t, models.ResourceStatusActive, proj.Status)
	require.NotNil(t, proj.LastSyncedAt)

	// OPS disappears on the provider side: its row flips to removed but survives
	lister.listing = &provider.Listing{
		Resources: []provider.ResourceDescriptor{jiraDescriptor("10001", "PROJ", "Project One")},
		Listed:    []models.ResourceType{models.ResourceTypeJiraProject},
	}
	summary, err = m.Sync(context.Background(), lister, integration, cred)
	require.NoError(t, err)
	require.Equal(t, 1, summary.Synced)
	require.EqualValues(t, 1, summary.Removed)

	ops := store.get("org-1", "int-1", models.ResourceTypeJiraProject, "10002")
	require.NotNil(t, ops)
	require.Equal(t, models.ResourceStatusRemoved, ops.Status)
}

func TestMirrorSyncIsIdempotent(t *testing.T) {
	store := newFakeStore()
	m := New(store)
	integration := testIntegration()
	cred := provider.Credential{AccessToken: "tok", Static: true}

	lister := &fakeLister{listing: &provider.Listing{
		Resources: []provider.ResourceDescriptor{jiraDescriptor("10001", "PROJ", "Project One")},
		Listed:    []models.ResourceType{models.ResourceTypeJiraProject},
	}}

	_, err := m.Sync(context.Background(), lister, integration, cred)
	require.NoError(t, err)
	summary, err := m.Sync(context.Background(), lister, integration, cred)
	require.NoError(t, err)

	require.Equal(t, 1, summary.Synced)
	require.EqualValues(t, 0, summary.Removed)
	require.Len(t, store.rows, 1)
}

func TestMirrorSyncRenamesInPlace(t *testing.T) {
	store := newFakeStore()
	m := New(store)
	integration := testIntegration()
	cred := provider.Credential{AccessToken: "tok", Static: true}

	lister := &fakeLister{listing: &provider.Listing{
		Resources: []provider.ResourceDescriptor{jiraDescriptor("10001", "PROJ", "Project One")},
		Listed:    []models.ResourceType{models.ResourceTypeJiraProject},
	}}
	_, err := m.Sync(context.Background(), lister, integration, cred)
	require.NoError(t, err)

	lister.listing = &provider.Listing{
		Resources: []provider.ResourceDescriptor{jiraDescriptor("10001", "PROJ", "Project One Renamed")},
		Listed:    []models.ResourceType{models.ResourceTypeJiraProject},
	}
	_, err = m.Sync(context.Background(), lister, integration, cred)
	require.NoError(t, err)

	require.Len(t, store.rows, 1)
	row := store.get("org-1", "int-1", models.ResourceTypeJiraProject, "10001")
	require.Equal(t, "PROJ - Project One Renamed", row.Name)
	require.Equal(t, models.ResourceStatusActive, row.Status)
}

func TestMirrorSyncScopesRemovalToListedTypes(t *testing.T) {
	store := newFakeStore()
	m := New(store)
	integration := testIntegration()
	cred := provider.Credential{AccessToken: "tok", Static: true}

	lister := &fakeLister{listing: &provider.Listing{
		Resources: []provider.ResourceDescriptor{
			jiraDescriptor("10001", "PROJ", "Project One"),
			{ExternalID: "123", Name: "DOCS - Documentation", Type: models.ResourceTypeConfluenceSpace},
		},
		Listed: []models.ResourceType{models.ResourceTypeJiraProject, models.ResourceTypeConfluenceSpace},
	}}
	_, err := m.Sync(context.Background(), lister, integration, cred)
	require.NoError(t, err)

	// Confluence listing fails on the next pass: its type is absent from
	// Listed, so its rows must not be mass-removed.
	lister.listing = &provider.Listing{
		Resources: []provider.ResourceDescriptor{jiraDescriptor("10001", "PROJ", "Project One")},
		Listed:    []models.ResourceType{models.ResourceTypeJiraProject},
		Errors:    []string{"confluence spaces: unexpected status 500"},
	}
	summary, err := m.Sync(context.Background(), lister, integration, cred)
	require.NoError(t, err)
	require.EqualValues(t, 0, summary.Removed)
	require.Equal(t, []string{"confluence spaces: unexpected status 500"}, summary.Errors)

	space := store.get("org-1", "int-1", models.ResourceTypeConfluenceSpace, "123")
	require.NotNil(t, space)
	require.Equal(t, models.ResourceStatusActive, space.Status)
}

func TestMirrorSyncAbortsOnStoreError(t *testing.T) {
	store := newFakeStore()
	store.upsertErr = errors.New("deadlock")
	m := New(store)

	lister := &fakeLister{listing: &provider.Listing{
		Resources: []provider.ResourceDescriptor{jiraDescriptor("10001", "PROJ", "Project One")},
		Listed:    []models.ResourceType{models.ResourceTypeJiraProject},
	}}

	_, err := m.Sync(context.Background(), lister, testIntegration(), provider.Credential{AccessToken: "tok"})
	require.Error(t, err)
	require.Contains(t, err.Error(), "deadlock")
	require.Equal(t, 0, store.touchCount)
}

func TestMirrorSyncPropagatesListError(t *testing.T) {
	store := newFakeStore()
	m := New(store)
	lister := &fakeLister{err: errors.New("connection refused")}

	_, err := m.Sync(context.Background(), lister, testIntegration(), provider.Credential{AccessToken: "tok"})
	require.Error(t, err)
	require.Empty(t, store.rows)
	require.Equal(t, 0, store.touchCount)
}

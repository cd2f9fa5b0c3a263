package provider

import (
	_ "embed"
	"log"
	"sync"

	"github.com/documinds/documinds/api/internal/models"
	"gopkg.in/yaml.v3"
)

//go:embed catalog.yaml
var catalogYAML []byte

// CatalogEntry holds the default OAuth endpoints and scopes for one provider
// type. Integration rows override any of these per organization.
type CatalogEntry struct {
	AuthorizeURL string   `yaml:"authorizeUrl"`
	TokenURL     string   `yaml:"tokenUrl"`
	Scopes       []string `yaml:"scopes"`
}

type catalogFile struct {
	Providers map[string]CatalogEntry `yaml:"providers"`
}

var (
	catalog     map[models.IntegrationType]CatalogEntry
	catalogOnce sync.Once
)

func loadCatalog() {
	catalogOnce.Do(func() {
		var file catalogFile
		if err := yaml.Unmarshal(catalogYAML, &file); err != nil {
			log.Printf("Failed to parse provider catalog: %v", err)
			catalog = map[models.IntegrationType]CatalogEntry{}
			return
		}
		catalog = make(map[models.IntegrationType]CatalogEntry, len(file.Providers))
		for name, entry := range file.Providers {
			catalog[models.IntegrationType(name)] = entry
		}
	})
}

// CatalogDefaults returns the catalog entry for a provider type
func CatalogDefaults(t models.IntegrationType) (CatalogEntry, bool) {
	loadCatalog()
	entry, ok := catalog[t]
	return entry, ok
}

// Endpoints resolves the authorize and token URLs for an integration,
// preferring the row's own configuration over catalog defaults
func Endpoints(integration *models.Integration) (authorizeURL, tokenURL string) {
	entry, _ := CatalogDefaults(integration.Type)
	authorizeURL = entry.AuthorizeURL
	tokenURL = entry.TokenURL
	if integration.AuthorizeURL != nil && *integration.AuthorizeURL != "" {
		authorizeURL = *integration.AuthorizeURL
	}
	if integration.TokenURL != nil && *integration.TokenURL != "" {
		tokenURL = *integration.TokenURL
	}
	return authorizeURL, tokenURL
}

// RequestedScopes resolves the scopes an integration asks the provider for
func RequestedScopes(integration *models.Integration) []string {
	if integration.Scopes != nil && *integration.Scopes != "" {
		return SplitScopes(*integration.Scopes)
	}
	entry, _ := CatalogDefaults(integration.Type)
	return entry.Scopes
}

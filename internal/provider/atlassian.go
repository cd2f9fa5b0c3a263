package provider

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/documinds/documinds/api/internal/crypto"
	"github.com/documinds/documinds/api/internal/models"
)

const atlassianAccessibleResourcesURL = "https://api.atlassian.com/oauth/token/accessible-resources"

// Atlassian covers Jira and Confluence Cloud, in both OAuth 2.0 (3LO) and
// static API token + account email modes.
type Atlassian struct {
	httpClient *http.Client
}

func NewAtlassian(httpClient *http.Client) *Atlassian {
	return &Atlassian{httpClient: httpClient}
}

func (a *Atlassian) Type() models.IntegrationType {
	return models.IntegrationTypeAtlassian
}

// NormalizeSiteURL turns user-supplied Atlassian site addresses into a
// canonical base: scheme prepended when missing, trailing slashes stripped
func NormalizeSiteURL(raw string) string {
	site := strings.TrimSpace(raw)
	if site == "" {
		return ""
	}
	if !strings.Contains(site, "://") {
		site = "https://" + site
	}
	return strings.TrimRight(site, "/")
}

func basicAuth(email, token string) string {
	return "Basic " + base64.StdEncoding.EncodeToString([]byte(email+":"+token))
}

func (a *Atlassian) ExchangeCode(ctx context.Context, integration *models.Integration, code, redirectURI string) (*Tokens, error) {
	_, tokenURL := Endpoints(integration)
	if tokenURL == "" {
		return nil, fmt.Errorf("integration %s has no token URL configured", integration.ID)
	}
	secret := crypto.DecryptOptional(integration.ClientSecret)
	return exchangeForm(ctx, a.httpClient, tokenURL, integration, strValue(secret), code, redirectURI)
}

func (a *Atlassian) Validate(ctx context.Context, integration *models.Integration, cred Credential) Validation {
	if cred.Static {
		site := NormalizeSiteURL(strValue(integration.SiteURL))
		if site == "" {
			return Validation{Status: models.CredentialStatusError, Message: "Atlassian site URL is required"}
		}
		return whoami(ctx, a.httpClient, site+"/rest/api/3/myself", basicAuth(cred.Email, cred.AccessToken), nil)
	}
	return whoami(ctx, a.httpClient, atlassianAccessibleResourcesURL, "Bearer "+cred.AccessToken, nil)
}

type jiraProject struct {
	ID   string `json:"id"`
	Key  string `json:"key"`
	Name string `json:"name"`
}

type confluenceSpaceList struct {
	Results []struct {
		ID   json.Number `json:"id"`
		Key  string      `json:"key"`
		Name string      `json:"name"`
	} `json:"results"`
}

// ListResources enumerates Jira projects and Confluence spaces for the
// integration's site. The two sub-sources fail independently: one throwing
// never discards what the other returned.
func (a *Atlassian) ListResources(ctx context.Context, integration *models.Integration, cred Credential) (*Listing, error) {
	site := NormalizeSiteURL(strValue(integration.SiteURL))
	if site == "" {
		return nil, fmt.Errorf("Atlassian site URL is required")
	}

	authorization := "Bearer " + cred.AccessToken
	if cred.Static {
		authorization = basicAuth(cred.Email, cred.AccessToken)
	}

	listing := &Listing{}

	var projects []jiraProject
	if err := getJSON(ctx, a.httpClient, site+"/rest/api/3/project", authorization, &projects); err != nil {
		listing.Errors = append(listing.Errors, fmt.Sprintf("jira projects: %v", err))
	} else {
		listing.Listed = append(listing.Listed, models.ResourceTypeJiraProject)
		for _, p := range projects {
			listing.Resources = append(listing.Resources, ResourceDescriptor{
				ExternalID: p.ID,
				Name:       fmt.Sprintf("%s - %s", p.Key, p.Name),
				Type:       models.ResourceTypeJiraProject,
				URL:        site + "/browse/" + p.Key,
			})
		}
	}

	var spaces confluenceSpaceList
	if err := getJSON(ctx, a.httpClient, site+"/wiki/rest/api/space", authorization, &spaces); err != nil {
		listing.Errors = append(listing.Errors, fmt.Sprintf("confluence spaces: %v", err))
	} else {
		listing.Listed = append(listing.Listed, models.ResourceTypeConfluenceSpace)
		for _, s := range spaces.Results {
			listing.Resources = append(listing.Resources, ResourceDescriptor{
				ExternalID: s.ID.String(),
				Name:       fmt.Sprintf("%s - %s", s.Key, s.Name),
				Type:       models.ResourceTypeConfluenceSpace,
				URL:        site + "/wiki/spaces/" + s.Key,
			})
		}
	}

	return listing, nil
}

func strValue(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

package provider

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"github.com/documinds/documinds/api/internal/crypto"
	"github.com/documinds/documinds/api/internal/models"
	gh "github.com/google/go-github/v57/github"
	"golang.org/x/oauth2"
)

// GitHub authorizes via OAuth and mirrors the authenticated user's
// repositories.
type GitHub struct {
	httpClient *http.Client
}

func NewGitHub(httpClient *http.Client) *GitHub {
	return &GitHub{httpClient: httpClient}
}

func (g *GitHub) Type() models.IntegrationType {
	return models.IntegrationTypeGitHub
}

func (g *GitHub) ExchangeCode(ctx context.Context, integration *models.Integration, code, redirectURI string) (*Tokens, error) {
	_, tokenURL := Endpoints(integration)
	if tokenURL == "" {
		return nil, fmt.Errorf("integration %s has no token URL configured", integration.ID)
	}
	secret := crypto.DecryptOptional(integration.ClientSecret)
	tokens, err := exchangeForm(ctx, g.httpClient, tokenURL, integration, strValue(secret), code, redirectURI)
	if err != nil {
		return nil, err
	}
	// GitHub reports a rejected code as HTTP 200 with an error body
	if tokens.AccessToken == "" {
		return nil, &TokenExchangeError{StatusCode: http.StatusBadRequest, Body: "provider returned no access token"}
	}
	return tokens, nil
}

func (g *GitHub) apiClient(ctx context.Context, token string) *gh.Client {
	if g.httpClient != nil {
		ctx = context.WithValue(ctx, oauth2.HTTPClient, g.httpClient)
	}
	ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
	return gh.NewClient(oauth2.NewClient(ctx, ts))
}

func (g *GitHub) Validate(ctx context.Context, integration *models.Integration, cred Credential) Validation {
	if _, _, err := g.apiClient(ctx, cred.AccessToken).Users.Get(ctx, ""); err != nil {
		return Validation{Status: models.CredentialStatusError, Message: err.Error()}
	}
	return Validation{Status: models.CredentialStatusValidated}
}

func (g *GitHub) ListResources(ctx context.Context, integration *models.Integration, cred Credential) (*Listing, error) {
	client := g.apiClient(ctx, cred.AccessToken)
	listing := &Listing{}

	opts := &gh.RepositoryListOptions{
		ListOptions: gh.ListOptions{PerPage: 100},
	}
	for {
		repos, resp, err := client.Repositories.List(ctx, "", opts)
		if err != nil {
			listing.Errors = append(listing.Errors, fmt.Sprintf("github repositories: %v", err))
			return listing, nil
		}
		for _, repo := range repos {
			listing.Resources = append(listing.Resources, ResourceDescriptor{
				ExternalID: strconv.FormatInt(repo.GetID(), 10),
				Name:       repo.GetFullName(),
				Type:       models.ResourceTypeGitHubRepo,
				URL:        repo.GetHTMLURL(),
			})
		}
		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}

	listing.Listed = append(listing.Listed, models.ResourceTypeGitHubRepo)
	return listing, nil
}

package provider

import (
	"context"
	"fmt"
	"net/http"

	"github.com/documinds/documinds/api/internal/crypto"
	"github.com/documinds/documinds/api/internal/models"
)

// Generic handles OAuth providers without a dedicated implementation. It has
// no whoami endpoint, so a credential counts as validated as soon as a token
// exists. That is a known-weak default, kept deliberately visible.
type Generic struct {
	httpClient *http.Client
}

func NewGeneric(httpClient *http.Client) *Generic {
	return &Generic{httpClient: httpClient}
}

func (g *Generic) Type() models.IntegrationType {
	return models.IntegrationTypeOAuthGeneric
}

func (g *Generic) ExchangeCode(ctx context.Context, integration *models.Integration, code, redirectURI string) (*Tokens, error) {
	_, tokenURL := Endpoints(integration)
	if tokenURL == "" {
		return nil, fmt.Errorf("integration %s has no token URL configured", integration.ID)
	}
	secret := crypto.DecryptOptional(integration.ClientSecret)
	return exchangeForm(ctx, g.httpClient, tokenURL, integration, strValue(secret), code, redirectURI)
}

func (g *Generic) Validate(ctx context.Context, integration *models.Integration, cred Credential) Validation {
	if cred.AccessToken == "" {
		return Validation{Status: models.CredentialStatusError, Message: "no access token obtained"}
	}
	return Validation{Status: models.CredentialStatusValidated}
}

func (g *Generic) ListResources(ctx context.Context, integration *models.Integration, cred Credential) (*Listing, error) {
	return &Listing{}, nil
}

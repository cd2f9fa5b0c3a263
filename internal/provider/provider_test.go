package provider

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/documinds/documinds/api/internal/models"
	"github.com/documinds/documinds/api/pkg/utils"
	"github.com/stretchr/testify/require"
)

func TestSplitScopes(t *testing.T) {
	require.Equal(t, []string{"read:jira-work", "offline_access"}, SplitScopes("read:jira-work offline_access"))
	require.Equal(t, []string{"repo", "read:user"}, SplitScopes("repo,read:user"))
	require.Equal(t, []string{"repo", "read:user"}, SplitScopes("repo, read:user"))
	require.Empty(t, SplitScopes(""))
	require.Empty(t, SplitScopes("  ,  "))
}

func TestAuthorizationURL(t *testing.T) {
	integration := &models.Integration{
		ID:           "int-1",
		Type:         models.IntegrationTypeAtlassian,
		AuthType:     models.AuthTypeOAuth,
		AuthorizeURL: utils.Ptr("https://auth.atlassian.com/authorize"),
		ClientID:     utils.Ptr("client-123"),
		Scopes:       utils.Ptr("read:jira-work offline_access"),
	}

	raw, err := AuthorizationURL(integration, "state-abc", "https://app.example.com/callback")
	require.NoError(t, err)

	parsed, err := url.Parse(raw)
	require.NoError(t, err)
	q := parsed.Query()
	require.Equal(t, "client-123", q.Get("client_id"))
	require.Equal(t, "state-abc", q.Get("state"))
	require.Equal(t, "https://app.example.com/callback", q.Get("redirect_uri"))
	require.Equal(t, "read:jira-work offline_access", q.Get("scope"))
	require.Equal(t, "api.atlassian.com", q.Get("audience"))
	require.Equal(t, "consent", q.Get("prompt"))
}

func TestAuthorizationURLUsesCatalogDefaults(t *testing.T) {
	integration := &models.Integration{
		ID:       "int-2",
		Type:     models.IntegrationTypeNotion,
		AuthType: models.AuthTypeOAuth,
		ClientID: utils.Ptr("client-456"),
	}

	raw, err := AuthorizationURL(integration, "state-xyz", "https://app.example.com/callback")
	require.NoError(t, err)
	require.Contains(t, raw, "https://api.notion.com/v1/oauth/authorize")
}

func TestAuthorizationURLRequiresEndpoint(t *testing.T) {
	integration := &models.Integration{
		ID:       "int-3",
		Type:     models.IntegrationTypeOAuthGeneric,
		AuthType: models.AuthTypeOAuth,
	}

	_, err := AuthorizationURL(integration, "state", "https://app.example.com/callback")
	require.Error(t, err)
}

func TestRegistryLookup(t *testing.T) {
	registry := NewRegistry(nil)

	p, err := registry.Lookup(models.IntegrationTypeAtlassian)
	require.NoError(t, err)
	require.Equal(t, models.IntegrationTypeAtlassian, p.Type())

	_, err = registry.Lookup(models.IntegrationType("bogus"))
	require.Error(t, err)
}

func TestExchangeFormSendsCodeGrant(t *testing.T) {
	var form url.Values
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		form = r.PostForm
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"access_token":"tok-1","refresh_token":"ref-1","scope":"read:jira-work","expires_in":3600}`))
	}))
	defer srv.Close()

	integration := &models.Integration{ID: "int-1", ClientID: utils.Ptr("client-123")}
	tokens, err := exchangeForm(context.Background(), srv.Client(), srv.URL, integration, "secret-1", "code-1", "https://app.example.com/callback")
	require.NoError(t, err)
	require.Equal(t, "tok-1", tokens.AccessToken)
	require.Equal(t, "ref-1", tokens.RefreshToken)
	require.EqualValues(t, 3600, tokens.ExpiresIn)

	require.Equal(t, "authorization_code", form.Get("grant_type"))
	require.Equal(t, "code-1", form.Get("code"))
	require.Equal(t, "client-123", form.Get("client_id"))
	require.Equal(t, "secret-1", form.Get("client_secret"))
	require.Equal(t, "https://app.example.com/callback", form.Get("redirect_uri"))
}

func TestExchangeFormRejection(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"error":"invalid_grant"}`))
	}))
	defer srv.Close()

	integration := &models.Integration{ID: "int-1"}
	_, err := exchangeForm(context.Background(), srv.Client(), srv.URL, integration, "", "expired-code", "")
	require.Error(t, err)

	var exchangeErr *TokenExchangeError
	require.ErrorAs(t, err, &exchangeErr)
	require.Equal(t, http.StatusUnauthorized, exchangeErr.StatusCode)
	require.Contains(t, exchangeErr.Body, "invalid_grant")
}

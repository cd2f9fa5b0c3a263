package provider

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/documinds/documinds/api/internal/models"
	"github.com/documinds/documinds/api/pkg/utils"
	"github.com/stretchr/testify/require"
)

func TestNormalizeSiteURL(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"mycorp.atlassian.net", "https://mycorp.atlassian.net"},
		{"https://mycorp.atlassian.net", "https://mycorp.atlassian.net"},
		{"https://mycorp.atlassian.net/", "https://mycorp.atlassian.net"},
		{"  mycorp.atlassian.net//  ", "https://mycorp.atlassian.net"},
		{"http://jira.internal:8080/", "http://jira.internal:8080"},
		{"", ""},
	}
	for _, tc := range cases {
		require.Equal(t, tc.want, NormalizeSiteURL(tc.in), "input %q", tc.in)
	}
}

func TestAtlassianValidateStaticToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/rest/api/3/myself", r.URL.Path)
		if r.Header.Get("Authorization") != basicAuth("user@example.com", "token-1") {
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte(`{"message":"Basic auth failed"}`))
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"accountId":"abc","emailAddress":"user@example.com"}`))
	}))
	defer srv.Close()

	a := NewAtlassian(srv.Client())
	integration := &models.Integration{
		ID:       "int-1",
		Type:     models.IntegrationTypeAtlassian,
		AuthType: models.AuthTypeAPIToken,
		SiteURL:  utils.Ptr(srv.URL),
	}

	v := a.Validate(context.Background(), integration, Credential{
		AccessToken: "token-1",
		Email:       "user@example.com",
		Static:      true,
	})
	require.Equal(t, models.CredentialStatusValidated, v.Status)
	require.Empty(t, v.Message)

	v = a.Validate(context.Background(), integration, Credential{
		AccessToken: "wrong-token",
		Email:       "user@example.com",
		Static:      true,
	})
	require.Equal(t, models.CredentialStatusError, v.Status)
	require.Contains(t, v.Message, "401")
}

func TestAtlassianValidateRequiresSiteURL(t *testing.T) {
	a := NewAtlassian(http.DefaultClient)
	integration := &models.Integration{ID: "int-1", Type: models.IntegrationTypeAtlassian}

	v := a.Validate(context.Background(), integration, Credential{AccessToken: "tok", Static: true})
	require.Equal(t, models.CredentialStatusError, v.Status)
	require.Contains(t, v.Message, "site URL")
}

func TestAtlassianListResources(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/rest/api/3/project":
			w.Write([]byte(`[
				{"id":"10001","key":"PROJ","name":"Project One"},
				{"id":"10002","key":"OPS","name":"Operations"}
			]`))
		case "/wiki/rest/api/space":
			w.Write([]byte(`{"results":[{"id":123,"key":"DOCS","name":"Documentation"}]}`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer srv.Close()

	a := NewAtlassian(srv.Client())
	integration := &models.Integration{
		ID:             "int-1",
		OrganizationID: "org-1",
		Type:           models.IntegrationTypeAtlassian,
		SiteURL:        utils.Ptr(srv.URL),
	}

	listing, err := a.ListResources(context.Background(), integration, Credential{
		AccessToken: "token-1",
		Email:       "user@example.com",
		Static:      true,
	})
	require.NoError(t, err)
	require.Empty(t, listing.Errors)
	require.ElementsMatch(t,
		[]models.ResourceType{models.ResourceTypeJiraProject, models.ResourceTypeConfluenceSpace},
		listing.Listed)
	require.Len(t, listing.Resources, 3)

	require.Equal(t, "10001", listing.Resources[0].ExternalID)
	require.Equal(t, "PROJ - Project One", listing.Resources[0].Name)
	require.Equal(t, models.ResourceTypeJiraProject, listing.Resources[0].Type)
	require.Equal(t, srv.URL+"/browse/PROJ", listing.Resources[0].URL)

	space := listing.Resources[2]
	require.Equal(t, "123", space.ExternalID)
	require.Equal(t, "DOCS - Documentation", space.Name)
	require.Equal(t, models.ResourceTypeConfluenceSpace, space.Type)
	require.Equal(t, srv.URL+"/wiki/spaces/DOCS", space.URL)
}

func TestAtlassianListResourcesPartialFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/rest/api/3/project":
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`[{"id":"10001","key":"PROJ","name":"Project One"}]`))
		default:
			w.WriteHeader(http.StatusInternalServerError)
			w.Write([]byte(`{"message":"Confluence is down"}`))
		}
	}))
	defer srv.Close()

	a := NewAtlassian(srv.Client())
	integration := &models.Integration{
		ID:      "int-1",
		Type:    models.IntegrationTypeAtlassian,
		SiteURL: utils.Ptr(srv.URL),
	}

	listing, err := a.ListResources(context.Background(), integration, Credential{AccessToken: "tok", Static: true, Email: "u@example.com"})
	require.NoError(t, err)

	// A failed sub-source still leaves the other one's results intact, and the
	// failed type is excluded from Listed so the mirror will not reconcile it.
	require.Len(t, listing.Resources, 1)
	require.Equal(t, []models.ResourceType{models.ResourceTypeJiraProject}, listing.Listed)
	require.Len(t, listing.Errors, 1)
	require.Contains(t, listing.Errors[0], "confluence spaces")
}

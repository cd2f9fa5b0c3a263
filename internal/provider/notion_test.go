package provider

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/documinds/documinds/api/internal/models"
	notion "github.com/dstotijn/go-notion"
	"github.com/stretchr/testify/require"
)

func TestNotionValidate(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/v1/users/me", r.URL.Path)
		require.Equal(t, notionVersion, r.Header.Get("Notion-Version"))
		if r.Header.Get("Authorization") != "Bearer secret_token" {
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte(`{"code":"unauthorized","message":"API token is invalid."}`))
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"object":"user","id":"bot-1","type":"bot"}`))
	}))
	defer srv.Close()

	n := &Notion{httpClient: srv.Client(), usersMeURL: srv.URL + "/v1/users/me"}
	integration := &models.Integration{ID: "int-1", Type: models.IntegrationTypeNotion}

	v := n.Validate(context.Background(), integration, Credential{AccessToken: "secret_token", Static: true})
	require.Equal(t, models.CredentialStatusValidated, v.Status)

	v = n.Validate(context.Background(), integration, Credential{AccessToken: "bad_token", Static: true})
	require.Equal(t, models.CredentialStatusError, v.Status)
	require.Contains(t, v.Message, "API token is invalid")
}

func TestNotionPageDescriptorFiltersNonWorkspacePages(t *testing.T) {
	workspacePage := notion.Page{
		ID:     "page-1",
		URL:    "https://www.notion.so/page-1",
		Parent: notion.Parent{Type: notion.ParentTypeWorkspace, Workspace: true},
		Properties: notion.PageProperties{
			Title: notion.PageTitle{
				Title: []notion.RichText{{PlainText: "Engineering Wiki"}},
			},
		},
	}

	descriptor, ok := notionPageDescriptor(workspacePage)
	require.True(t, ok)
	require.Equal(t, "page-1", descriptor.ExternalID)
	require.Equal(t, "Engineering Wiki", descriptor.Name)
	require.Equal(t, models.ResourceTypeNotionPage, descriptor.Type)
	require.Equal(t, "https://www.notion.so/page-1", descriptor.URL)

	childPage := notion.Page{
		ID:     "page-2",
		Parent: notion.Parent{Type: notion.ParentTypePage, PageID: "page-1"},
	}
	_, ok = notionPageDescriptor(childPage)
	require.False(t, ok)
}

func TestNotionPageTitle(t *testing.T) {
	plain := notion.Page{
		Properties: notion.PageProperties{
			Title: notion.PageTitle{Title: []notion.RichText{{PlainText: "Road"}, {PlainText: "map"}}},
		},
	}
	require.Equal(t, "Roadmap", notionPageTitle(plain))

	database := notion.Page{
		Properties: notion.DatabasePageProperties{
			"Name": notion.DatabasePageProperty{
				Type:  "title",
				Title: []notion.RichText{{PlainText: "Quarterly Goals"}},
			},
		},
	}
	require.Equal(t, "Quarterly Goals", notionPageTitle(database))

	untitled := notion.Page{
		ID:         "page-3",
		Parent:     notion.Parent{Type: notion.ParentTypeWorkspace, Workspace: true},
		Properties: notion.PageProperties{},
	}
	descriptor, ok := notionPageDescriptor(untitled)
	require.True(t, ok)
	require.Equal(t, "Untitled", descriptor.Name)
}

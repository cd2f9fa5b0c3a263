package provider

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/documinds/documinds/api/internal/crypto"
	"github.com/documinds/documinds/api/internal/models"
	notion "github.com/dstotijn/go-notion"
)

const notionVersion = "2022-06-28"

// Notion supports both public OAuth integrations and internal-integration
// secrets (static api_token mode). Listing mirrors top-level workspace pages.
type Notion struct {
	httpClient *http.Client
	usersMeURL string
}

func NewNotion(httpClient *http.Client) *Notion {
	return &Notion{
		httpClient: httpClient,
		usersMeURL: "https://api.notion.com/v1/users/me",
	}
}

func (n *Notion) Type() models.IntegrationType {
	return models.IntegrationTypeNotion
}

// ExchangeCode swaps the authorization code for a token. Unlike every other
// provider, Notion wants HTTP Basic auth with the client id/secret and a
// JSON body instead of a form-encoded request.
func (n *Notion) ExchangeCode(ctx context.Context, integration *models.Integration, code, redirectURI string) (*Tokens, error) {
	_, tokenURL := Endpoints(integration)
	if tokenURL == "" {
		return nil, fmt.Errorf("integration %s has no token URL configured", integration.ID)
	}

	payload, err := json.Marshal(map[string]string{
		"grant_type":   "authorization_code",
		"code":         code,
		"redirect_uri": redirectURI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to encode token request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, tokenURL, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to build token request: %w", err)
	}

	clientID := strValue(integration.ClientID)
	clientSecret := strValue(crypto.DecryptOptional(integration.ClientSecret))
	req.Header.Set("Authorization", "Basic "+base64.StdEncoding.EncodeToString([]byte(clientID+":"+clientSecret)))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := n.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("token request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("failed to read token response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &TokenExchangeError{StatusCode: resp.StatusCode, Body: string(body)}
	}

	var tokens Tokens
	if err := json.Unmarshal(body, &tokens); err != nil {
		return nil, fmt.Errorf("failed to decode token response: %w", err)
	}
	return &tokens, nil
}

func (n *Notion) Validate(ctx context.Context, integration *models.Integration, cred Credential) Validation {
	return whoami(ctx, n.httpClient, n.usersMeURL, "Bearer "+cred.AccessToken, map[string]string{
		"Notion-Version": notionVersion,
	})
}

// ListResources searches the workspace for pages and keeps only those whose
// parent is the workspace root, i.e. top-level pages.
func (n *Notion) ListResources(ctx context.Context, integration *models.Integration, cred Credential) (*Listing, error) {
	client := notion.NewClient(cred.AccessToken, notion.WithHTTPClient(n.httpClient))

	listing := &Listing{}
	opts := &notion.SearchOpts{
		Filter:   &notion.SearchFilter{Property: "object", Value: "page"},
		PageSize: 100,
	}

	for {
		res, err := client.Search(ctx, opts)
		if err != nil {
			listing.Errors = append(listing.Errors, fmt.Sprintf("notion search: %v", err))
			return listing, nil
		}

		for _, result := range res.Results {
			page, ok := result.(notion.Page)
			if !ok {
				continue
			}
			if descriptor, ok := notionPageDescriptor(page); ok {
				listing.Resources = append(listing.Resources, descriptor)
			}
		}

		if !res.HasMore || res.NextCursor == nil {
			break
		}
		opts.StartCursor = *res.NextCursor
	}

	listing.Listed = append(listing.Listed, models.ResourceTypeNotionPage)
	return listing, nil
}

// notionPageDescriptor maps a search result to a resource descriptor,
// rejecting pages that are not workspace-rooted
func notionPageDescriptor(page notion.Page) (ResourceDescriptor, bool) {
	if page.Parent.Type != notion.ParentTypeWorkspace {
		return ResourceDescriptor{}, false
	}

	name := notionPageTitle(page)
	if name == "" {
		name = "Untitled"
	}

	return ResourceDescriptor{
		ExternalID: page.ID,
		Name:       name,
		Type:       models.ResourceTypeNotionPage,
		URL:        page.URL,
	}, true
}

// notionPageTitle pulls a display title from either a plain page's title
// property or a database page's "title"/"Name" property
func notionPageTitle(page notion.Page) string {
	switch props := page.Properties.(type) {
	case notion.PageProperties:
		return richTextPlain(props.Title.Title)
	case notion.DatabasePageProperties:
		if p, ok := props["title"]; ok && len(p.Title) > 0 {
			return richTextPlain(p.Title)
		}
		if p, ok := props["Name"]; ok && len(p.Title) > 0 {
			return richTextPlain(p.Title)
		}
		for _, p := range props {
			if p.Type == "title" && len(p.Title) > 0 {
				return richTextPlain(p.Title)
			}
		}
	}
	return ""
}

func richTextPlain(parts []notion.RichText) string {
	var out string
	for _, part := range parts {
		out += part.PlainText
	}
	return out
}

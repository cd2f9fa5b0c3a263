package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/documinds/documinds/api/internal/models"
	"golang.org/x/oauth2"
)

// Tokens is the result of an OAuth authorization-code exchange
type Tokens struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token,omitempty"`
	TokenType    string `json:"token_type,omitempty"`
	Scope        string `json:"scope,omitempty"`
	ExpiresIn    int64  `json:"expires_in,omitempty"`
}

// Validation is the outcome of a cheap authenticated whoami call. It is data,
// not an error: a token that validates with a problem is still persisted.
type Validation struct {
	Status  models.CredentialStatus
	Message string
}

// Credential carries what an outbound provider call needs to authenticate.
// Static is set for permanent API tokens; Email pairs with static Atlassian
// tokens for Basic auth.
type Credential struct {
	AccessToken string
	Email       string
	Static      bool
}

// ResourceDescriptor describes one provider-owned object reported by a listing
type ResourceDescriptor struct {
	ExternalID string
	Name       string
	Type       models.ResourceType
	URL        string
}

// Listing is the result of enumerating a provider's resources. Listed holds
// the resource types that were fully enumerated; the mirror only reconciles
// removals for those types, so one failed sub-source (e.g. Confluence) cannot
// mass-remove its rows. Per-source failures land in Errors.
type Listing struct {
	Resources []ResourceDescriptor
	Listed    []models.ResourceType
	Errors    []string
}

// Provider normalizes the authentication and listing semantics of one
// third-party provider type behind a common contract.
type Provider interface {
	Type() models.IntegrationType
	ExchangeCode(ctx context.Context, integration *models.Integration, code, redirectURI string) (*Tokens, error)
	Validate(ctx context.Context, integration *models.Integration, cred Credential) Validation
	ListResources(ctx context.Context, integration *models.Integration, cred Credential) (*Listing, error)
}

// TokenExchangeError is returned when the provider rejects an authorization
// code. It carries the provider's raw response body for the caller.
type TokenExchangeError struct {
	StatusCode int
	Body       string
}

func (e *TokenExchangeError) Error() string {
	return fmt.Sprintf("token exchange failed with status %d: %s", e.StatusCode, e.Body)
}

// Registry selects a Provider implementation by integration type
type Registry struct {
	providers map[models.IntegrationType]Provider
}

// NewRegistry builds a registry with all supported providers. A nil
// httpClient falls back to a client with a sane timeout.
func NewRegistry(httpClient *http.Client) *Registry {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 15 * time.Second}
	}
	r := &Registry{providers: make(map[models.IntegrationType]Provider)}
	r.Register(NewAtlassian(httpClient))
	r.Register(NewNotion(httpClient))
	r.Register(NewGitHub(httpClient))
	r.Register(NewGoogleDrive(httpClient))
	r.Register(NewGeneric(httpClient))
	return r
}

// Register adds or replaces the provider for its type
func (r *Registry) Register(p Provider) {
	r.providers[p.Type()] = p
}

// Lookup returns the provider for the given integration type
func (r *Registry) Lookup(t models.IntegrationType) (Provider, error) {
	p, ok := r.providers[t]
	if !ok {
		return nil, fmt.Errorf("unsupported integration type: %s", t)
	}
	return p, nil
}

// AuthorizationURL builds the provider consent URL for an OAuth integration,
// carrying the server-issued state nonce. Endpoints and scopes come from the
// integration row, with catalog defaults filling the gaps.
func AuthorizationURL(integration *models.Integration, state, redirectURI string) (string, error) {
	authorizeURL, _ := Endpoints(integration)
	if authorizeURL == "" {
		return "", fmt.Errorf("integration %s has no authorize URL configured", integration.ID)
	}

	clientID := ""
	if integration.ClientID != nil {
		clientID = *integration.ClientID
	}

	conf := &oauth2.Config{
		ClientID:    clientID,
		RedirectURL: redirectURI,
		Scopes:      RequestedScopes(integration),
		Endpoint:    oauth2.Endpoint{AuthURL: authorizeURL},
	}

	var opts []oauth2.AuthCodeOption
	if integration.Type == models.IntegrationTypeAtlassian {
		opts = append(opts,
			oauth2.SetAuthURLParam("audience", "api.atlassian.com"),
			oauth2.SetAuthURLParam("prompt", "consent"),
		)
	}
	if integration.Type == models.IntegrationTypeGoogleDrive {
		opts = append(opts, oauth2.AccessTypeOffline)
	}

	return conf.AuthCodeURL(state, opts...), nil
}

// SplitScopes splits a provider scope string on spaces and commas (GitHub
// reports granted scopes comma-separated, everyone else space-separated)
func SplitScopes(s string) []string {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ' ' || r == ','
	})
	out := make([]string, 0, len(fields))
	for _, f := range fields {
		if f = strings.TrimSpace(f); f != "" {
			out = append(out, f)
		}
	}
	return out
}

// exchangeForm runs the standard form-encoded authorization-code exchange
// used by every OAuth provider except Notion
func exchangeForm(ctx context.Context, httpClient *http.Client, tokenURL string, integration *models.Integration, clientSecret, code, redirectURI string) (*Tokens, error) {
	data := url.Values{}
	data.Set("grant_type", "authorization_code")
	data.Set("code", code)
	if integration.ClientID != nil {
		data.Set("client_id", *integration.ClientID)
	}
	if clientSecret != "" {
		data.Set("client_secret", clientSecret)
	}
	if redirectURI != "" {
		data.Set("redirect_uri", redirectURI)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, tokenURL, strings.NewReader(data.Encode()))
	if err != nil {
		return nil, fmt.Errorf("failed to build token request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := httpClient.Do(req)
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

// whoami issues a GET with the supplied Authorization header value and maps
// the response to a Validation outcome
func whoami(ctx context.Context, httpClient *http.Client, endpoint, authorization string, headers map[string]string) Validation {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return Validation{Status: models.CredentialStatusError, Message: err.Error()}
	}
	req.Header.Set("Authorization", authorization)
	req.Header.Set("Accept", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := httpClient.Do(req)
	if err != nil {
		return Validation{Status: models.CredentialStatusError, Message: err.Error()}
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusOK {
		return Validation{Status: models.CredentialStatusValidated}
	}

	body, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	return Validation{
		Status:  models.CredentialStatusError,
		Message: fmt.Sprintf("validation failed with status %d: %s", resp.StatusCode, string(body)),
	}
}

// getJSON fetches an authenticated JSON document into out
func getJSON(ctx context.Context, httpClient *http.Client, endpoint, authorization string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Authorization", authorization)
	req.Header.Set("Accept", "application/json")

	resp, err := httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %d: %s", resp.StatusCode, string(body))
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

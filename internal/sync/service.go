// Package sync drives the integration-credential workflow: OAuth callback
// handling, static token validation, credential persistence and resource
// mirroring.
package sync

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/documinds/documinds/api/internal/crypto"
	"github.com/documinds/documinds/api/internal/mirror"
	"github.com/documinds/documinds/api/internal/models"
	"github.com/documinds/documinds/api/internal/provider"
	"github.com/documinds/documinds/api/pkg/utils"
)

// ErrStateMismatch rejects an OAuth callback whose state does not match the
// server-issued nonce. Raised before any provider call is made.
var ErrStateMismatch = errors.New("oauth state mismatch or expired")

// IntegrationStore loads and mutates Integration rows
type IntegrationStore interface {
	Find(ctx context.Context, id string) (*models.Integration, error)
	UpdateStatus(ctx context.Context, id string, status models.IntegrationStatus, errorMessage *string) error
}

// CredentialStore persists per-user grants. Upsert must be a single atomic
// write keyed on the (integrationId, userId) unique index.
type CredentialStore interface {
	Upsert(ctx context.Context, cred *models.IntegrationCredential) error
}

// StateStore verifies and consumes server-issued OAuth state nonces
type StateStore interface {
	Consume(ctx context.Context, integrationID, userID, state string) (bool, error)
}

// Service orchestrates validation attempts against the provider adapter,
// the credential store and the resource mirror.
type Service struct {
	integrations IntegrationStore
	credentials  CredentialStore
	states       StateStore
	registry     *provider.Registry
	mirror       *mirror.Mirror

	// PublishEvent, when set, broadcasts sync outcomes to the organization's
	// dashboard room. Failures there never affect the request.
	PublishEvent func(ctx context.Context, organizationID, event string, payload interface{})

	now func() time.Time
}

func NewService(integrations IntegrationStore, credentials CredentialStore, states StateStore, registry *provider.Registry, m *mirror.Mirror) *Service {
	return &Service{
		integrations: integrations,
		credentials:  credentials,
		states:       states,
		registry:     registry,
		mirror:       m,
		now:          time.Now,
	}
}

// OAuthCallbackInput is the parsed oauth-callback request body
type OAuthCallbackInput struct {
	IntegrationID string
	Code          string
	State         string
	RedirectURI   string
}

// OAuthCallbackResult maps onto the oauth-callback response body
type OAuthCallbackResult struct {
	Status        models.CredentialStatus `json:"status"`
	Message       string                  `json:"message"`
	MissingScopes []string                `json:"missing_scopes,omitempty"`
}

// HandleOAuthCallback runs the callback state machine: consume the state
// nonce, exchange the code, validate access, persist the grant. A failed
// exchange aborts with no writes; a failed validation is data and the grant
// is still persisted with the error attached.
func (s *Service) HandleOAuthCallback(ctx context.Context, user *models.User, in OAuthCallbackInput) (*OAuthCallbackResult, error) {
	integration, err := s.integrations.Find(ctx, in.IntegrationID)
	if err != nil {
		return nil, fmt.Errorf("integration not found: %w", err)
	}
	if integration.AuthType != models.AuthTypeOAuth {
		return nil, fmt.Errorf("integration %s does not use OAuth", integration.ID)
	}

	ok, err := s.states.Consume(ctx, integration.ID, user.ID, in.State)
	if err != nil {
		return nil, fmt.Errorf("failed to verify oauth state: %w", err)
	}
	if !ok {
		return nil, ErrStateMismatch
	}

	p, err := s.registry.Lookup(integration.Type)
	if err != nil {
		return nil, err
	}

	tokens, err := p.ExchangeCode(ctx, integration, in.Code, in.RedirectURI)
	if err != nil {
		return nil, err
	}

	validation := p.Validate(ctx, integration, provider.Credential{AccessToken: tokens.AccessToken})

	now := s.now()
	var expiresAt *time.Time
	if tokens.ExpiresIn > 0 {
		t := now.Add(time.Duration(tokens.ExpiresIn) * time.Second)
		expiresAt = &t
	}

	if err := s.persistCredential(ctx, integration, user, credentialUpdate{
		accessToken:  tokens.AccessToken,
		refreshToken: tokens.RefreshToken,
		expiresAt:    expiresAt,
		scopes:       tokens.Scope,
		validation:   validation,
		validatedAt:  now,
	}); err != nil {
		return nil, err
	}

	s.publish(ctx, integration, "integration.validated", validation)

	result := &OAuthCallbackResult{
		Status:        validation.Status,
		Message:       validation.Message,
		MissingScopes: missingScopes(provider.RequestedScopes(integration), tokens.Scope),
	}
	if result.Message == "" {
		result.Message = "Connection validated successfully"
	}
	return result, nil
}

// ValidateTokenInput is the parsed validate-api-token request body. A nil
// IntegrationID means pre-creation validation: no database writes happen
// regardless of the outcome.
type ValidateTokenInput struct {
	IntegrationID   *string
	Email           string
	APIToken        string
	SiteURL         string
	IntegrationType models.IntegrationType
}

// ValidateTokenResult maps onto the validate-api-token response body
type ValidateTokenResult struct {
	Status  models.CredentialStatus `json:"status"`
	Message string                  `json:"message"`
	Mirror  *mirror.Summary         `json:"mirror,omitempty"`
}

// ValidateAPIToken authenticates a static token against the provider and,
// when the integration row exists and validation succeeded, persists the
// grant and mirrors the provider's resources.
func (s *Service) ValidateAPIToken(ctx context.Context, user *models.User, in ValidateTokenInput) (*ValidateTokenResult, error) {
	if !models.ValidIntegrationType(in.IntegrationType) {
		return nil, fmt.Errorf("unsupported integration type: %s", in.IntegrationType)
	}

	p, err := s.registry.Lookup(in.IntegrationType)
	if err != nil {
		return nil, err
	}

	var integration *models.Integration
	if in.IntegrationID != nil {
		integration, err = s.integrations.Find(ctx, *in.IntegrationID)
		if err != nil {
			return nil, fmt.Errorf("integration not found: %w", err)
		}
	} else {
		// Pre-creation validation: operate on a transient row so the UI can
		// refuse to create an integration whose credentials don't work
		integration = &models.Integration{
			Type:     in.IntegrationType,
			AuthType: models.AuthTypeAPIToken,
		}
	}
	if in.SiteURL != "" {
		integration.SiteURL = utils.Ptr(provider.NormalizeSiteURL(in.SiteURL))
	}
	if in.Email != "" {
		integration.AccountEmail = utils.Ptr(in.Email)
	}

	cred := provider.Credential{AccessToken: in.APIToken, Email: in.Email, Static: true}
	validation := p.Validate(ctx, integration, cred)

	result := &ValidateTokenResult{Status: validation.Status, Message: validation.Message}
	if result.Message == "" {
		result.Message = "Token validated successfully"
	}

	if in.IntegrationID == nil {
		return result, nil
	}

	now := s.now()
	if err := s.persistCredential(ctx, integration, user, credentialUpdate{
		accessToken: in.APIToken,
		validation:  validation,
		validatedAt: now,
	}); err != nil {
		return nil, err
	}

	if validation.Status == models.CredentialStatusValidated {
		summary, err := s.mirror.Sync(ctx, p, integration, cred)
		if err != nil {
			return nil, err
		}
		result.Mirror = summary
	}

	s.publish(ctx, integration, "integration.validated", validation)
	return result, nil
}

// RunMirror re-validates an existing grant and reconciles resources. Used by
// the manual sync endpoint.
func (s *Service) RunMirror(ctx context.Context, user *models.User, integration *models.Integration, cred provider.Credential) (*ValidateTokenResult, error) {
	p, err := s.registry.Lookup(integration.Type)
	if err != nil {
		return nil, err
	}

	validation := p.Validate(ctx, integration, cred)
	now := s.now()
	if err := s.persistCredential(ctx, integration, user, credentialUpdate{
		accessToken: cred.AccessToken,
		validation:  validation,
		validatedAt: now,
	}); err != nil {
		return nil, err
	}

	result := &ValidateTokenResult{Status: validation.Status, Message: validation.Message}
	if validation.Status == models.CredentialStatusValidated {
		summary, err := s.mirror.Sync(ctx, p, integration, cred)
		if err != nil {
			return nil, err
		}
		result.Mirror = summary
	}

	s.publish(ctx, integration, "integration.synced", result)
	return result, nil
}

type credentialUpdate struct {
	accessToken  string
	refreshToken string
	expiresAt    *time.Time
	scopes       string
	validation   provider.Validation
	validatedAt  time.Time
}

func (s *Service) persistCredential(ctx context.Context, integration *models.Integration, user *models.User, update credentialUpdate) error {
	accessToken, err := crypto.Encrypt(update.accessToken)
	if err != nil {
		return fmt.Errorf("failed to encrypt access token: %w", err)
	}

	cred := &models.IntegrationCredential{
		ID:              utils.GenerateShortID(),
		IntegrationID:   integration.ID,
		UserID:          user.ID,
		AccessToken:     accessToken,
		TokenExpiresAt:  update.expiresAt,
		Status:          update.validation.Status,
		LastValidatedAt: &update.validatedAt,
	}
	if update.refreshToken != "" {
		refreshToken, err := crypto.Encrypt(update.refreshToken)
		if err != nil {
			return fmt.Errorf("failed to encrypt refresh token: %w", err)
		}
		cred.RefreshToken = &refreshToken
	}
	if update.scopes != "" {
		cred.Scopes = utils.Ptr(strings.Join(provider.SplitScopes(update.scopes), " "))
	}
	if update.validation.Message != "" {
		cred.ValidationError = utils.Ptr(update.validation.Message)
	}

	if err := s.credentials.Upsert(ctx, cred); err != nil {
		return fmt.Errorf("failed to persist credential: %w", err)
	}

	status := models.IntegrationStatusConnected
	var errorMessage *string
	if update.validation.Status != models.CredentialStatusValidated {
		status = models.IntegrationStatusError
		if update.validation.Message != "" {
			errorMessage = utils.Ptr(update.validation.Message)
		}
	}
	if err := s.integrations.UpdateStatus(ctx, integration.ID, status, errorMessage); err != nil {
		return fmt.Errorf("failed to update integration status: %w", err)
	}
	return nil
}

func (s *Service) publish(ctx context.Context, integration *models.Integration, event string, payload interface{}) {
	if s.PublishEvent == nil || integration.OrganizationID == "" {
		return
	}
	s.PublishEvent(ctx, integration.OrganizationID, event, payload)
}

// missingScopes returns requested scopes the provider did not grant,
// preserving request order. Purely informational.
func missingScopes(requested []string, grantedRaw string) []string {
	if len(requested) == 0 {
		return nil
	}
	granted := make(map[string]bool)
	for _, scope := range provider.SplitScopes(grantedRaw) {
		granted[scope] = true
	}

	var missing []string
	for _, scope := range requested {
		if !granted[scope] {
			missing = append(missing, scope)
		}
	}
	return missing
}

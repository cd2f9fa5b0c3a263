package models

// IntegrationType identifies the third-party provider behind an integration
type IntegrationType string

const (
	IntegrationTypeOAuthGeneric IntegrationType = "oauth_generic"
	IntegrationTypeAtlassian    IntegrationType = "atlassian"
	IntegrationTypeNotion       IntegrationType = "notion"
	IntegrationTypeGoogleDrive  IntegrationType = "google_drive"
	IntegrationTypeGitHub       IntegrationType = "github"
)

// AuthType is how users authorize against an integration
type AuthType string

const (
	AuthTypeOAuth    AuthType = "oauth"
	AuthTypeAPIToken AuthType = "api_token"
)

// IntegrationStatus is the connection state of the shared integration row
type IntegrationStatus string

const (
	IntegrationStatusConnected    IntegrationStatus = "connected"
	IntegrationStatusError        IntegrationStatus = "error"
	IntegrationStatusDisconnected IntegrationStatus = "disconnected"
)

// CredentialStatus is the validation state of a user's personal grant
type CredentialStatus string

const (
	CredentialStatusValidated CredentialStatus = "validated"
	CredentialStatusError     CredentialStatus = "error"
	CredentialStatusPending   CredentialStatus = "pending"
)

// ResourceType classifies a mirrored provider object
type ResourceType string

const (
	ResourceTypeJiraProject     ResourceType = "jira_project"
	ResourceTypeConfluenceSpace ResourceType = "confluence_space"
	ResourceTypeNotionPage      ResourceType = "notion_page"
	ResourceTypeGitHubRepo      ResourceType = "github_repo"
)

// ResourceStatus is the lifecycle state of a mirrored resource row
type ResourceStatus string

const (
	ResourceStatusActive  ResourceStatus = "active"
	ResourceStatusRemoved ResourceStatus = "removed"
)

// ValidIntegrationType reports whether t is a known provider type
func ValidIntegrationType(t IntegrationType) bool {
	switch t {
	case IntegrationTypeOAuthGeneric, IntegrationTypeAtlassian, IntegrationTypeNotion,
		IntegrationTypeGoogleDrive, IntegrationTypeGitHub:
		return true
	}
	return false
}

package models

import "time"

// Integration is an organization-level configured connection to a third-party
// provider. Exactly one of the auth-mode field sets is populated: OAuth rows
// carry client id/secret plus endpoints and scopes, api_token rows carry the
// static token (and account email / site URL for Atlassian).
type Integration struct {
	ID             string            `gorm:"primaryKey;size:191;column:id" json:"id"`
	OrganizationID string            `gorm:"index;size:191;column:organizationId" json:"organizationId"`
	Name           string            `gorm:"size:191;column:name" json:"name"`
	Type           IntegrationType   `gorm:"size:191;column:type" json:"type"`
	AuthType       AuthType          `gorm:"size:191;column:authType" json:"authType"`
	AuthorizeURL   *string           `gorm:"size:191;column:authorizeUrl" json:"authorizeUrl,omitempty"`
	TokenURL       *string           `gorm:"size:191;column:tokenUrl" json:"tokenUrl,omitempty"`
	Scopes         *string           `gorm:"size:191;column:scopes" json:"scopes,omitempty"`
	ClientID       *string           `gorm:"size:191;column:clientId" json:"clientId,omitempty"`
	ClientSecret   *string           `gorm:"type:text;column:clientSecret" json:"-"`
	APIToken       *string           `gorm:"type:text;column:apiToken" json:"-"`
	AccountEmail   *string           `gorm:"size:191;column:accountEmail" json:"accountEmail,omitempty"`
	SiteURL        *string           `gorm:"size:191;column:siteUrl" json:"siteUrl,omitempty"`
	Status         IntegrationStatus `gorm:"size:191;default:disconnected;column:status" json:"status"`
	LastSyncAt     *time.Time        `gorm:"column:lastSyncAt" json:"lastSyncAt,omitempty"`
	ErrorMessage   *string           `gorm:"type:text;column:errorMessage" json:"errorMessage,omitempty"`
	CreatedAt      time.Time         `gorm:"autoCreateTime;column:createdAt" json:"createdAt"`
	UpdatedAt      time.Time         `gorm:"autoUpdateTime;column:updatedAt" json:"updatedAt"`
	DeletedAt      *time.Time        `gorm:"index;column:deletedAt" json:"deletedAt,omitempty"`

	Organization Organization            `gorm:"foreignKey:OrganizationID" json:"organization,omitempty"`
	Credentials  []IntegrationCredential `gorm:"foreignKey:IntegrationID" json:"credentials,omitempty"`
	Resources    []Resource              `gorm:"foreignKey:IntegrationID" json:"resources,omitempty"`
}

func (Integration) TableName() string {
	return "Integration"
}

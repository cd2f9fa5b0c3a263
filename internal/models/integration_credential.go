package models

import "time"

// IntegrationCredential is one user's personal grant against a shared
// Integration. At most one row exists per (integration, user) pair, enforced
// by a unique index; all writes go through an atomic upsert on that index.
// For api_token integrations AccessToken holds the raw static token and
// TokenExpiresAt stays nil.
type IntegrationCredential struct {
	ID              string           `gorm:"primaryKey;size:191;column:id" json:"id"`
	IntegrationID   string           `gorm:"uniqueIndex:idx_credential_integration_user;size:191;column:integrationId" json:"integrationId"`
	UserID          string           `gorm:"uniqueIndex:idx_credential_integration_user;size:191;column:userId" json:"userId"`
	AccessToken     string           `gorm:"type:text;column:accessToken" json:"-"`
	RefreshToken    *string          `gorm:"type:text;column:refreshToken" json:"-"`
	TokenExpiresAt  *time.Time       `gorm:"column:tokenExpiresAt" json:"tokenExpiresAt,omitempty"`
	Scopes          *string          `gorm:"size:191;column:scopes" json:"scopes,omitempty"`
	Status          CredentialStatus `gorm:"size:191;default:pending;column:status" json:"status"`
	ValidationError *string          `gorm:"type:text;column:validationError" json:"validationError,omitempty"`
	LastValidatedAt *time.Time       `gorm:"column:lastValidatedAt" json:"lastValidatedAt,omitempty"`
	CreatedAt       time.Time        `gorm:"autoCreateTime;column:createdAt" json:"createdAt"`
	UpdatedAt       time.Time        `gorm:"autoUpdateTime;column:updatedAt" json:"updatedAt"`

	Integration Integration `gorm:"foreignKey:IntegrationID;constraint:OnDelete:CASCADE" json:"integration,omitempty"`
	User        User        `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

func (IntegrationCredential) TableName() string {
	return "IntegrationCredential"
}

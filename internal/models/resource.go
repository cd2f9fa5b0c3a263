package models

import "time"

// Resource mirrors one externally-owned object (Jira project, Confluence
// space, Notion page, GitHub repository). Rows are keyed by the provider's
// native id within (organization, integration, type); Name is display-only.
// The mirror flips rows to removed instead of deleting them, so history
// survives deprovisioning on the provider side.
type Resource struct {
	ID             string         `gorm:"primaryKey;size:191;column:id" json:"id"`
	OrganizationID string         `gorm:"uniqueIndex:idx_resource_external;size:191;column:organizationId" json:"organizationId"`
	IntegrationID  string         `gorm:"uniqueIndex:idx_resource_external;size:191;column:integrationId" json:"integrationId"`
	Type           ResourceType   `gorm:"uniqueIndex:idx_resource_external;size:64;column:type" json:"type"`
	ExternalID     string         `gorm:"uniqueIndex:idx_resource_external;size:191;column:externalId" json:"externalId"`
	Name           string         `gorm:"size:191;column:name" json:"name"`
	URL            *string        `gorm:"size:191;column:url" json:"url,omitempty"`
	Status         ResourceStatus `gorm:"size:64;default:active;column:status" json:"status"`
	LastSyncedAt   *time.Time     `gorm:"column:lastSyncedAt" json:"lastSyncedAt,omitempty"`
	CreatedAt      time.Time      `gorm:"autoCreateTime;column:createdAt" json:"createdAt"`
	UpdatedAt      time.Time      `gorm:"autoUpdateTime;column:updatedAt" json:"updatedAt"`

	Organization Organization `gorm:"foreignKey:OrganizationID" json:"organization,omitempty"`
	Integration  Integration  `gorm:"foreignKey:IntegrationID;constraint:OnDelete:CASCADE" json:"integration,omitempty"`
}

func (Resource) TableName() string {
	return "Resource"
}

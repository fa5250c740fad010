package content

import (
	"time"

	"gorm.io/datatypes"
)

type SocialMediaPlatform struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Name string `gorm:"not null;uniqueIndex:idx_social_media_platforms_name" json:"name"`
}

// SourceContentCreator represents an external platform's channel/account,
// deduplicated by (platform, external id).
type SourceContentCreator struct {
	ID                    uint   `gorm:"primaryKey" json:"id"`
	SocialMediaPlatformID uint   `gorm:"not null;uniqueIndex:idx_content_creators_platform_social,priority:1" json:"social_media_platform_id"`
	SocialMediaID         string `gorm:"not null;uniqueIndex:idx_content_creators_platform_social,priority:2" json:"social_media_id"`

	CreatedAt time.Time `json:"created_at"`
}

// SourceContent is a deduplicated external media reference, keyed by the
// platform's content id (e.g. a YouTube video id). Shared across events;
// the last referencing event takes it (and its comment) down with it.
type SourceContent struct {
	ID        uint   `gorm:"primaryKey" json:"id"`
	ContentID string `gorm:"not null;uniqueIndex:idx_source_contents_content_id" json:"content_id"`
	URL       string `gorm:"not null" json:"url"`
	Title     string `json:"title"`
	ChannelID string `json:"channel_id"`

	SocialMediaPlatformID  uint                  `gorm:"not null" json:"social_media_platform_id"`
	SourceContentCreatorID uint                  `gorm:"not null;index" json:"source_content_creator_id"`
	SourceContentCreator   *SourceContentCreator `gorm:"foreignKey:SourceContentCreatorID" json:"source_content_creator,omitempty"`

	Thumbnails datatypes.JSON `json:"thumbnails"`

	Comment *Comment `gorm:"foreignKey:SourceContentID" json:"comment,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type SourceContentEvent struct {
	SourceContentID uint `gorm:"primaryKey;autoIncrement:false" json:"source_content_id"`
	EventID         uint `gorm:"primaryKey;autoIncrement:false" json:"event_id"`

	SourceContent *SourceContent `gorm:"foreignKey:SourceContentID" json:"source_content,omitempty"`
}

// Comment is one-to-one with SourceContent.
type Comment struct {
	ID              uint   `gorm:"primaryKey" json:"id"`
	SourceContentID uint   `gorm:"not null;uniqueIndex:idx_comments_source_content" json:"source_content_id"`
	Contents        string `json:"contents"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

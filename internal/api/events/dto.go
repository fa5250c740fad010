package events

import (
	"gorm.io/datatypes"

	"timeline-app/internal/domain/series"
)

// EventReqParams mirrors the payload the add-event card submits after the
// user picks a video from the platform search.
type EventReqParams struct {
	Title                 string         `json:"title" binding:"required"`
	Description           string         `json:"description"`
	EventSeriesID         uint           `json:"eventSeriesId"`
	VideoID               string         `json:"videoId" binding:"required"`
	SocialMediaID         string         `json:"socialMediaId" binding:"required"`
	SocialMediaPlatformID uint           `json:"socialMediaPlatformId" binding:"required"`
	Thumbnails            datatypes.JSON `json:"thumbnails"`
	ChannelID             string         `json:"channelId"`

	// Accepted for wire compatibility with older clients; the recorded
	// creator is always the authenticated user.
	CreatorID uint `json:"creator_id"`
}

type CreateEventRequest struct {
	Event EventReqParams `json:"event" binding:"required"`
}

type CreateEventResponse struct {
	Success         bool                    `json:"success"`
	Event           series.EventSeriesEvent `json:"event"`
	SourceContentID uint                    `json:"sourceContentId"`
}

type EventResult struct {
	ID            uint           `json:"id"`
	Title         string         `json:"title"`
	Description   string         `json:"description"`
	EventPosition int            `json:"event_position"`
	SourceContent *ContentResult `json:"source_content,omitempty"`
}

type ContentResult struct {
	ID         uint           `json:"id"`
	ContentID  string         `json:"content_id"`
	URL        string         `json:"url"`
	Title      string         `json:"title"`
	ChannelID  string         `json:"channel_id"`
	Thumbnails datatypes.JSON `json:"thumbnails,omitempty"`
	Comment    *string        `json:"comment,omitempty"`
}

package series

import (
	"time"

	"timeline-app/internal/domain/users"
)

type EventSeries struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	Title       string `gorm:"not null" json:"title"`
	Description string `json:"description"`
	Details     string `json:"details"`
	IsPrivate   bool   `gorm:"not null;default:false" json:"is_private"`

	CreatorID uint        `gorm:"not null;index" json:"creator_id"`
	Creator   *users.User `gorm:"foreignKey:CreatorID" json:"creator,omitempty"`

	CategoryID    *uint             `gorm:"index" json:"category_id"`
	Category      *EventCategory    `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
	SubCategoryID *uint             `gorm:"index" json:"sub_category_id"`
	SubCategory   *EventSubCategory `gorm:"foreignKey:SubCategoryID" json:"sub_category,omitempty"`

	ViewCount int `gorm:"not null;default:0" json:"view_count"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type Event struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	Title       string `gorm:"not null" json:"title"`
	Description string `json:"description"`

	CreatorID uint `gorm:"not null;index" json:"creator_id"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// EventSeriesEvent is the ordering join: EventPosition values within one
// series are contiguous starting at 1, assigned on append.
type EventSeriesEvent struct {
	EventSeriesID uint `gorm:"primaryKey;autoIncrement:false" json:"event_series_id"`
	EventID       uint `gorm:"primaryKey;autoIncrement:false" json:"event_id"`
	EventPosition int  `gorm:"not null" json:"event_position"`

	Event *Event `gorm:"foreignKey:EventID" json:"event,omitempty"`
}

// EventTag rows are globally deduplicated by text and garbage-collected
// once no series references them.
type EventTag struct {
	Text string `gorm:"primaryKey" json:"text"`
}

type EventTagEventSeries struct {
	EventSeriesID uint   `gorm:"primaryKey;autoIncrement:false" json:"event_series_id"`
	EventTagText  string `gorm:"primaryKey" json:"event_tag_text"`
}

type UserSeriesLike struct {
	UserID        uint `gorm:"primaryKey;autoIncrement:false" json:"user_id"`
	EventSeriesID uint `gorm:"primaryKey;autoIncrement:false" json:"event_series_id"`

	CreatedAt time.Time `json:"created_at"`
}

type UserSeriesFavorite struct {
	UserID        uint `gorm:"primaryKey;autoIncrement:false" json:"user_id"`
	EventSeriesID uint `gorm:"primaryKey;autoIncrement:false" json:"event_series_id"`

	CreatedAt time.Time `json:"created_at"`
}

type EventCategory struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Name string `gorm:"not null;uniqueIndex:idx_event_categories_name" json:"name"`
}

type EventSubCategory struct {
	ID              uint           `gorm:"primaryKey" json:"id"`
	Name            string         `gorm:"not null" json:"name"`
	EventCategoryID uint           `gorm:"not null;index" json:"event_category_id"`
	EventCategory   *EventCategory `gorm:"foreignKey:EventCategoryID" json:"event_category,omitempty"`
}

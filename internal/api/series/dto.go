package series

import (
	"time"

	"gorm.io/datatypes"
)

// ---------- requests

type TagInput struct {
	Text string `json:"text" binding:"required"`
}

type CreateSeriesRequest struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
	Details     string `json:"details"`
	IsPrivate   bool   `json:"is_private"`
}

type UpdateSeriesRequest struct {
	Title       string     `json:"title" binding:"required"`
	Description string     `json:"description"`
	Details     string     `json:"details"`
	IsPrivate   bool       `json:"is_private"`
	Category    *uint      `json:"category"`
	Subcategory *uint      `json:"subcategory"`
	Tags        []TagInput `json:"tags"`
}

// ---------- responses

type SeriesListItem struct {
	ID          uint           `json:"id"`
	Title       string         `json:"title"`
	Description string         `json:"description"`
	IsPrivate   bool           `json:"is_private"`
	ViewCount   int            `json:"view_count"`
	CreatorID   uint           `json:"creator_id"`
	Thumbnail   datatypes.JSON `json:"thumbnail,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
}

type ListSeriesResponse struct {
	Results    []SeriesListItem `json:"results"`
	TotalPages int              `json:"total_pages"`
}

type TimelineEntry struct {
	EventID         uint           `json:"event_id"`
	EventPosition   int            `json:"event_position"`
	Title           string         `json:"title"`
	Description     string         `json:"description"`
	SourceContentID uint           `json:"source_content_id"`
	ContentID       string         `json:"content_id"`
	URL             string         `json:"url"`
	Thumbnails      datatypes.JSON `json:"thumbnails,omitempty"`
	Comment         string         `json:"comment"`
}

type SeriesDetailResponse struct {
	ID            uint            `json:"id"`
	Title         string          `json:"title"`
	Description   string          `json:"description"`
	Details       string          `json:"details"`
	IsPrivate     bool            `json:"is_private"`
	ViewCount     int             `json:"view_count"`
	CategoryID    *uint           `json:"category_id"`
	SubCategoryID *uint           `json:"sub_category_id"`
	Tags          []string        `json:"tags"`
	Creator       CreatorDTO      `json:"creator"`
	Events        []TimelineEntry `json:"events"`
	LikeCount     int64           `json:"like_count"`
	FavoriteCount int64           `json:"favorite_count"`
	Liked         bool            `json:"liked"`
	Favorited     bool            `json:"favorited"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

type CreatorDTO struct {
	ID       uint   `json:"id"`
	Name     string `json:"name"`
	Username string `json:"username"`
	Image    string `json:"image"`
}

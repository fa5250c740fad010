package events

import (
	"errors"
	"fmt"
	"net/http"

	"timeline-app/database"
	"timeline-app/internal/domain/content"
	"timeline-app/internal/domain/series"
	"timeline-app/internal/viewcache"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

var (
	errEventExists = fmt.Errorf("event exists")
	errForbidden   = fmt.Errorf("forbidden")
)

func mustUserID(c *gin.Context) (uint, bool) {
	userID := c.GetUint("user_id")
	if userID == 0 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return 0, false
	}
	return userID, true
}

// ------------------------------
// GET /event_series/:seriesId/event
// ------------------------------
func ListSeriesEvents(c *gin.Context) {
	seriesID := c.Param("seriesId")
	viewerID := c.GetUint("user_id")

	var s series.EventSeries
	if err := database.DB.First(&s, "id = ?", seriesID).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{})
		return
	}
	if !series.CanView(s, viewerID) {
		c.JSON(http.StatusForbidden, gin.H{"error": "This event series is private"})
		return
	}

	var links []series.EventSeriesEvent
	if err := database.DB.Preload("Event").
		Where("event_series_id = ?", s.ID).
		Order("event_position ASC").
		Find(&links).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{})
		return
	}

	results := make([]EventResult, 0, len(links))
	for _, link := range links {
		res := EventResult{
			ID:            link.EventID,
			EventPosition: link.EventPosition,
		}
		if link.Event != nil {
			res.Title = link.Event.Title
			res.Description = link.Event.Description
		}

		var join content.SourceContentEvent
		err := database.DB.Preload("SourceContent.Comment").
			Where("event_id = ?", link.EventID).
			First(&join).Error
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusBadRequest, gin.H{})
			return
		}
		if err == nil && join.SourceContent != nil {
			sc := join.SourceContent
			cr := &ContentResult{
				ID:         sc.ID,
				ContentID:  sc.ContentID,
				URL:        sc.URL,
				Title:      sc.Title,
				ChannelID:  sc.ChannelID,
				Thumbnails: sc.Thumbnails,
			}
			if sc.Comment != nil {
				cr.Comment = &sc.Comment.Contents
			}
			res.SourceContent = cr
		}
		results = append(results, res)
	}

	c.JSON(http.StatusOK, gin.H{"results": results})
}

// ------------------------------
// POST /event_series/:seriesId/event
// ------------------------------
func CreateSeriesEvent(c *gin.Context) {
	seriesID := c.Param("seriesId")

	var req CreateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	ev := req.Event

	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	var resp CreateEventResponse
	err := database.DB.Transaction(func(tx *gorm.DB) error {
		var s series.EventSeries
		if err := tx.First(&s, "id = ?", seriesID).Error; err != nil {
			return err
		}
		if !series.CanEdit(s, userID) {
			return errForbidden
		}

		sc, err := findOrCreateSourceContent(tx, ev)
		if err != nil {
			return err
		}

		// Reject before mutating: one source content at most once per series.
		var count int64
		if err := tx.Model(&series.EventSeriesEvent{}).
			Joins("JOIN source_content_events ON source_content_events.event_id = event_series_events.event_id").
			Where("event_series_events.event_series_id = ? AND source_content_events.source_content_id = ?", s.ID, sc.ID).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return errEventExists
		}

		created := series.Event{
			Title:       ev.Title,
			Description: ev.Description,
			CreatorID:   userID,
		}
		if err := tx.Create(&created).Error; err != nil {
			return err
		}

		if err := tx.Create(&content.SourceContentEvent{
			SourceContentID: sc.ID,
			EventID:         created.ID,
		}).Error; err != nil {
			return err
		}

		position, err := nextPosition(tx, s.ID)
		if err != nil {
			return err
		}

		link := series.EventSeriesEvent{
			EventSeriesID: s.ID,
			EventID:       created.ID,
			EventPosition: position,
		}
		if err := tx.Create(&link).Error; err != nil {
			return err
		}

		resp = CreateEventResponse{Success: true, Event: link, SourceContentID: sc.ID}
		return nil
	})

	if err != nil {
		if errors.Is(err, errEventExists) {
			c.JSON(http.StatusForbidden, gin.H{"message": "This event already exists"})
			return
		}
		if errors.Is(err, errForbidden) {
			c.JSON(http.StatusForbidden, gin.H{"error": "Access denied"})
			return
		}
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Series not found"})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to create event"})
		return
	}

	viewcache.Invalidate(c.Request.Context(), "/event_series/"+seriesID)
	c.JSON(http.StatusOK, resp)
}

// nextPosition returns max(position)+1 within a series, 1 for an empty
// series rather than failing on the missing row.
func nextPosition(tx *gorm.DB, seriesID uint) (int, error) {
	var last series.EventSeriesEvent
	err := tx.Where("event_series_id = ?", seriesID).
		Order("event_position DESC").
		First(&last).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 1, nil
	}
	if err != nil {
		return 0, err
	}
	return last.EventPosition + 1, nil
}

func findOrCreateSourceContent(tx *gorm.DB, ev EventReqParams) (*content.SourceContent, error) {
	var sc content.SourceContent
	err := tx.Where("content_id = ?", ev.VideoID).First(&sc).Error
	if err == nil {
		return &sc, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	var creator content.SourceContentCreator
	err = tx.Where("social_media_platform_id = ? AND social_media_id = ?",
		ev.SocialMediaPlatformID, ev.SocialMediaID).First(&creator).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		creator = content.SourceContentCreator{
			SocialMediaPlatformID: ev.SocialMediaPlatformID,
			SocialMediaID:         ev.SocialMediaID,
		}
		if err := tx.Create(&creator).Error; err != nil {
			return nil, err
		}
	} else if err != nil {
		return nil, err
	}

	sc = content.SourceContent{
		ContentID:              ev.VideoID,
		URL:                    fmt.Sprintf("https://www.youtube.com/watch?v=%s", ev.VideoID),
		Title:                  ev.Title,
		ChannelID:              ev.ChannelID,
		SocialMediaPlatformID:  ev.SocialMediaPlatformID,
		SourceContentCreatorID: creator.ID,
		Thumbnails:             ev.Thumbnails,
	}
	if err := tx.Create(&sc).Error; err != nil {
		return nil, err
	}
	return &sc, nil
}

// ------------------------------
// DELETE /events/:id
// ------------------------------
func DeleteEvent(c *gin.Context) {
	id := c.Param("id")

	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		var event series.Event
		if err := tx.First(&event, "id = ?", id).Error; err != nil {
			return err
		}
		if event.CreatorID != userID {
			return errForbidden
		}
		return series.DeleteEventTx(tx, event.ID)
	})

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Event not found"})
			return
		}
		if errors.Is(err, errForbidden) {
			c.JSON(http.StatusForbidden, gin.H{"error": "Access denied"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete event"})
		return
	}

	viewcache.Invalidate(c.Request.Context(), "/")
	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}

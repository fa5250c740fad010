package series

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"timeline-app/database"
	"timeline-app/internal/domain/content"
	"timeline-app/internal/domain/series"
	"timeline-app/internal/viewcache"

	"github.com/gin-gonic/gin"
	"gorm.io/datatypes"
	"gorm.io/gorm"
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
// POST /series
// ------------------------------
func CreateSeries(c *gin.Context) {
	var req CreateSeriesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	s := series.EventSeries{
		Title:       req.Title,
		Description: req.Description,
		Details:     req.Details,
		IsPrivate:   req.IsPrivate,
		CreatorID:   userID,
	}
	if err := database.DB.Create(&s).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create event series"})
		return
	}

	viewcache.Invalidate(c.Request.Context(), "/")
	c.JSON(http.StatusCreated, gin.H{"id": s.ID})
}

// ------------------------------
// PUT /series/:id
// ------------------------------
func UpdateSeries(c *gin.Context) {
	id := c.Param("id")

	var req UpdateSeriesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		var s series.EventSeries
		if err := tx.First(&s, "id = ?", id).Error; err != nil {
			return err
		}
		if !series.CanEdit(s, userID) {
			return errForbidden
		}

		// CreatorID stays untouched: editing never reassigns ownership.
		if err := tx.Model(&series.EventSeries{}).Where("id = ?", s.ID).
			Updates(map[string]interface{}{
				"title":           req.Title,
				"description":     req.Description,
				"details":         req.Details,
				"is_private":      req.IsPrivate,
				"category_id":     req.Category,
				"sub_category_id": req.Subcategory,
			}).Error; err != nil {
			return err
		}

		labels := make([]string, 0, len(req.Tags))
		for _, t := range req.Tags {
			labels = append(labels, t.Text)
		}
		return series.SyncTagsTx(tx, s.ID, labels)
	})

	if err != nil {
		respondSeriesError(c, err, "Failed to update event series")
		return
	}

	viewcache.Invalidate(c.Request.Context(), "/event_series/"+id)
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// ------------------------------
// DELETE /series/:id
// ------------------------------
func DeleteSeries(c *gin.Context) {
	id := c.Param("id")

	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		var s series.EventSeries
		if err := tx.First(&s, "id = ?", id).Error; err != nil {
			return err
		}
		if !series.CanEdit(s, userID) {
			return errForbidden
		}

		if err := tx.Where("event_series_id = ?", s.ID).Delete(&series.UserSeriesLike{}).Error; err != nil {
			return err
		}
		if err := tx.Where("event_series_id = ?", s.ID).Delete(&series.UserSeriesFavorite{}).Error; err != nil {
			return err
		}
		if err := series.DeleteTagsTx(tx, s.ID); err != nil {
			return err
		}

		var links []series.EventSeriesEvent
		if err := tx.Where("event_series_id = ?", s.ID).Find(&links).Error; err != nil {
			return err
		}
		for _, link := range links {
			if err := series.DeleteEventTx(tx, link.EventID); err != nil {
				return err
			}
		}

		return tx.Delete(&series.EventSeries{}, s.ID).Error
	})

	if err != nil {
		respondSeriesError(c, err, "Failed to delete event series")
		return
	}

	viewcache.Invalidate(c.Request.Context(), "/workshop")
	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}

// ------------------------------
// GET /series/:id
// ------------------------------
func GetSeriesByID(c *gin.Context) {
	id := c.Param("id")
	viewerID := c.GetUint("user_id")

	var s series.EventSeries
	if err := database.DB.Preload("Creator").First(&s, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Series not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load series"})
		return
	}

	if !series.CanView(s, viewerID) {
		c.JSON(http.StatusForbidden, gin.H{"error": "This event series is private"})
		return
	}

	// Every detail view counts, not deduplicated per viewer.
	if err := database.DB.Model(&series.EventSeries{}).Where("id = ?", s.ID).
		UpdateColumn("view_count", gorm.Expr("view_count + ?", 1)).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load series"})
		return
	}
	s.ViewCount++

	entries, err := loadTimeline(database.DB, s.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load series events"})
		return
	}

	var tagLinks []series.EventTagEventSeries
	if err := database.DB.Where("event_series_id = ?", s.ID).Find(&tagLinks).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load series tags"})
		return
	}
	tags := make([]string, 0, len(tagLinks))
	for _, link := range tagLinks {
		tags = append(tags, link.EventTagText)
	}

	var likeCount, favCount int64
	database.DB.Model(&series.UserSeriesLike{}).Where("event_series_id = ?", s.ID).Count(&likeCount)
	database.DB.Model(&series.UserSeriesFavorite{}).Where("event_series_id = ?", s.ID).Count(&favCount)

	liked, favorited := false, false
	if viewerID != 0 {
		var n int64
		database.DB.Model(&series.UserSeriesLike{}).
			Where("event_series_id = ? AND user_id = ?", s.ID, viewerID).Count(&n)
		liked = n > 0
		database.DB.Model(&series.UserSeriesFavorite{}).
			Where("event_series_id = ? AND user_id = ?", s.ID, viewerID).Count(&n)
		favorited = n > 0
	}

	resp := SeriesDetailResponse{
		ID:            s.ID,
		Title:         s.Title,
		Description:   s.Description,
		Details:       s.Details,
		IsPrivate:     s.IsPrivate,
		ViewCount:     s.ViewCount,
		CategoryID:    s.CategoryID,
		SubCategoryID: s.SubCategoryID,
		Tags:          tags,
		Events:        entries,
		LikeCount:     likeCount,
		FavoriteCount: favCount,
		Liked:         liked,
		Favorited:     favorited,
		CreatedAt:     s.CreatedAt,
		UpdatedAt:     s.UpdatedAt,
	}
	if s.Creator != nil {
		resp.Creator = CreatorDTO{
			ID:       s.Creator.ID,
			Name:     s.Creator.Name,
			Username: s.Creator.Username,
			Image:    s.Creator.Image,
		}
	}

	c.JSON(http.StatusOK, resp)
}

// loadTimeline assembles the ordered entries of one series: event, its
// source content, and the content's comment if present.
func loadTimeline(db *gorm.DB, seriesID uint) ([]TimelineEntry, error) {
	var links []series.EventSeriesEvent
	if err := db.Preload("Event").
		Where("event_series_id = ?", seriesID).
		Order("event_position ASC").
		Find(&links).Error; err != nil {
		return nil, err
	}

	entries := make([]TimelineEntry, 0, len(links))
	for _, link := range links {
		entry := TimelineEntry{
			EventID:       link.EventID,
			EventPosition: link.EventPosition,
		}
		if link.Event != nil {
			entry.Title = link.Event.Title
			entry.Description = link.Event.Description
		}

		var join content.SourceContentEvent
		err := db.Preload("SourceContent.Comment").
			Where("event_id = ?", link.EventID).
			First(&join).Error
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		if err == nil && join.SourceContent != nil {
			entry.SourceContentID = join.SourceContent.ID
			entry.ContentID = join.SourceContent.ContentID
			entry.URL = join.SourceContent.URL
			entry.Thumbnails = join.SourceContent.Thumbnails
			if join.SourceContent.Comment != nil {
				entry.Comment = join.SourceContent.Comment.Contents
			}
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

// ------------------------------
// GET /series and GET /workshop/series
// ------------------------------
func ListSeries(c *gin.Context) {
	viewerID := c.GetUint("user_id")
	listSeries(c, visibleSeriesQuery(database.DB, viewerID))
}

func ListWorkshopSeries(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}
	listSeries(c, creatorSeriesQuery(database.DB, userID))
}

func listSeries(c *gin.Context, scope *gorm.DB) {
	search := c.Query("query")
	categoryID, _ := strconv.ParseUint(c.Query("category"), 10, 32)
	subcategoryID, _ := strconv.ParseUint(c.Query("subcategory"), 10, 32)
	order := c.Query("order")
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	if page < 1 {
		page = 1
	}

	// Session so the count and the page query don't share builder state.
	q := applyFilters(scope, search, uint(categoryID), uint(subcategoryID)).
		Session(&gorm.Session{})

	var total int64
	if err := q.Count(&total).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load series"})
		return
	}

	var rows []series.EventSeries
	if err := applyOrder(q, order).
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&rows).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load series"})
		return
	}

	ids := make([]uint, 0, len(rows))
	for _, s := range rows {
		ids = append(ids, s.ID)
	}
	thumbnails, err := listThumbnails(database.DB, ids)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load series"})
		return
	}

	results := make([]SeriesListItem, 0, len(rows))
	for _, s := range rows {
		results = append(results, SeriesListItem{
			ID:          s.ID,
			Title:       s.Title,
			Description: s.Description,
			IsPrivate:   s.IsPrivate,
			ViewCount:   s.ViewCount,
			CreatorID:   s.CreatorID,
			Thumbnail:   thumbnails[s.ID],
			CreatedAt:   s.CreatedAt,
		})
	}

	totalPages := int((total + pageSize - 1) / pageSize)
	c.JSON(http.StatusOK, ListSeriesResponse{Results: results, TotalPages: totalPages})
}

// listThumbnails resolves each series' card thumbnail (its first event's
// source content) for a whole listing page in two queries.
func listThumbnails(db *gorm.DB, seriesIDs []uint) (map[uint]datatypes.JSON, error) {
	out := make(map[uint]datatypes.JSON, len(seriesIDs))
	if len(seriesIDs) == 0 {
		return out, nil
	}

	var links []series.EventSeriesEvent
	if err := db.Where("event_series_id IN ?", seriesIDs).
		Order("event_position ASC").
		Find(&links).Error; err != nil {
		return nil, err
	}

	// first link per series wins, rows arrive position-ordered
	leading := make(map[uint]uint, len(seriesIDs))
	eventIDs := make([]uint, 0, len(seriesIDs))
	for _, link := range links {
		if _, ok := leading[link.EventSeriesID]; ok {
			continue
		}
		leading[link.EventSeriesID] = link.EventID
		eventIDs = append(eventIDs, link.EventID)
	}
	if len(eventIDs) == 0 {
		return out, nil
	}

	var joins []content.SourceContentEvent
	if err := db.Preload("SourceContent").
		Where("event_id IN ?", eventIDs).
		Find(&joins).Error; err != nil {
		return nil, err
	}
	byEvent := make(map[uint]datatypes.JSON, len(joins))
	for _, join := range joins {
		if join.SourceContent != nil {
			byEvent[join.EventID] = join.SourceContent.Thumbnails
		}
	}

	for seriesID, eventID := range leading {
		out[seriesID] = byEvent[eventID]
	}
	return out, nil
}

// ------------------------------
// shared error mapping
// ------------------------------

var errForbidden = fmt.Errorf("forbidden")

func respondSeriesError(c *gin.Context, err error, generic string) {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Series not found"})
		return
	}
	if errors.Is(err, errForbidden) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Access denied"})
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{"error": generic})
}

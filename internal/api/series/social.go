package series

import (
	"errors"
	"net/http"

	"timeline-app/database"
	"timeline-app/internal/domain/series"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

func seriesForSocial(c *gin.Context) (series.EventSeries, uint, bool) {
	userID, ok := mustUserID(c)
	if !ok {
		return series.EventSeries{}, 0, false
	}

	var s series.EventSeries
	if err := database.DB.First(&s, "id = ?", c.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Series not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load series"})
		}
		return series.EventSeries{}, 0, false
	}

	if !series.CanView(s, userID) {
		c.JSON(http.StatusForbidden, gin.H{"error": "This event series is private"})
		return series.EventSeries{}, 0, false
	}
	return s, userID, true
}

// POST /series/:id/like
// Idempotent, relies on the composite primary key.
func LikeSeries(c *gin.Context) {
	s, userID, ok := seriesForSocial(c)
	if !ok {
		return
	}

	like := series.UserSeriesLike{UserID: userID, EventSeriesID: s.ID}
	if err := database.DB.Clauses(clause.OnConflict{DoNothing: true}).Create(&like).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to like series"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "liked"})
}

// DELETE /series/:id/like
func UnlikeSeries(c *gin.Context) {
	s, userID, ok := seriesForSocial(c)
	if !ok {
		return
	}

	if err := database.DB.
		Where("user_id = ? AND event_series_id = ?", userID, s.ID).
		Delete(&series.UserSeriesLike{}).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to unlike series"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "unliked"})
}

// POST /series/:id/favorite
func FavoriteSeries(c *gin.Context) {
	s, userID, ok := seriesForSocial(c)
	if !ok {
		return
	}

	fav := series.UserSeriesFavorite{UserID: userID, EventSeriesID: s.ID}
	if err := database.DB.Clauses(clause.OnConflict{DoNothing: true}).Create(&fav).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to favorite series"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "favorited"})
}

// DELETE /series/:id/favorite
func UnfavoriteSeries(c *gin.Context) {
	s, userID, ok := seriesForSocial(c)
	if !ok {
		return
	}

	if err := database.DB.
		Where("user_id = ? AND event_series_id = ?", userID, s.ID).
		Delete(&series.UserSeriesFavorite{}).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to unfavorite series"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "unfavorited"})
}

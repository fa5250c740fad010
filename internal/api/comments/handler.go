package comments

import (
	"errors"
	"net/http"

	"timeline-app/database"
	"timeline-app/internal/domain/content"
	"timeline-app/internal/viewcache"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type UpsertCommentRequest struct {
	Contents string `json:"contents" binding:"required"`
}

// PUT /source_content/:id/comment
// Upserts the one-to-one comment on a source content. Only a user who owns
// an event referencing the content may write to it.
func UpsertComment(c *gin.Context) {
	id := c.Param("id")

	var req UpsertCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	userID := c.GetUint("user_id")
	if userID == 0 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var sc content.SourceContent
	if err := database.DB.First(&sc, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Source content not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load source content"})
		return
	}

	var n int64
	if err := database.DB.Model(&content.SourceContentEvent{}).
		Joins("JOIN events ON events.id = source_content_events.event_id").
		Where("source_content_events.source_content_id = ? AND events.creator_id = ?", sc.ID, userID).
		Count(&n).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to check ownership"})
		return
	}
	if n == 0 {
		c.JSON(http.StatusForbidden, gin.H{"error": "Access denied"})
		return
	}

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		var existing content.Comment
		err := tx.Where("source_content_id = ?", sc.ID).First(&existing).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return tx.Create(&content.Comment{
				SourceContentID: sc.ID,
				Contents:        req.Contents,
			}).Error
		}
		if err != nil {
			return err
		}
		return tx.Model(&content.Comment{}).Where("id = ?", existing.ID).
			Update("contents", req.Contents).Error
	})

	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save comment"})
		return
	}

	viewcache.Invalidate(c.Request.Context(), "/")
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

package users

import (
	"errors"
	"net/http"
	"strconv"

	"timeline-app/database"
	"timeline-app/internal/domain/series"
	"timeline-app/internal/domain/users"
	"timeline-app/internal/viewcache"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

func toUserDTO(u users.User) UserDTO {
	return UserDTO{ID: u.ID, Name: u.Name, Username: u.Username, Image: u.Image}
}

func toSummaries(rows []series.EventSeries) []SeriesSummary {
	out := make([]SeriesSummary, 0, len(rows))
	for _, s := range rows {
		out = append(out, SeriesSummary{
			ID:          s.ID,
			Title:       s.Title,
			Description: s.Description,
			ViewCount:   s.ViewCount,
		})
	}
	return out
}

// GET /me
func GetCurrentUser(c *gin.Context) {
	userID := c.GetUint("user_id")
	if userID == 0 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var user users.User
	if err := database.DB.First(&user, userID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	c.JSON(http.StatusOK, toUserDTO(user))
}

// GET /users/:id
func GetUserProfile(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID"})
		return
	}
	viewerID := c.GetUint("user_id")

	var user users.User
	if err := database.DB.First(&user, uint(id)).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "User does not exist"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load user"})
		return
	}

	// own profile shows private series too
	ownSeries := database.DB.Where("creator_id = ?", user.ID)
	if viewerID != user.ID {
		ownSeries = ownSeries.Where("is_private = ?", false)
	}
	var seriesRows []series.EventSeries
	if err := ownSeries.Order("created_at DESC").Find(&seriesRows).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load series"})
		return
	}

	var likedRows []series.EventSeries
	if err := database.DB.Model(&series.EventSeries{}).
		Joins("JOIN user_series_likes ON user_series_likes.event_series_id = event_series.id").
		Where("user_series_likes.user_id = ? AND event_series.is_private = ?", user.ID, false).
		Find(&likedRows).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load likes"})
		return
	}

	var subs []users.Subscription
	if err := database.DB.Preload("SubscribedTo").
		Where("subscribed_by_id = ?", user.ID).
		Find(&subs).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load subscriptions"})
		return
	}
	subscriptions := make([]UserDTO, 0, len(subs))
	for _, sub := range subs {
		if sub.SubscribedTo != nil {
			subscriptions = append(subscriptions, toUserDTO(*sub.SubscribedTo))
		}
	}

	isSubscribed := false
	if viewerID != 0 && viewerID != user.ID {
		var n int64
		database.DB.Model(&users.Subscription{}).
			Where("subscribed_by_id = ? AND subscribed_to_id = ?", viewerID, user.ID).
			Count(&n)
		isSubscribed = n > 0
	}

	c.JSON(http.StatusOK, ProfileResponse{
		User:          toUserDTO(user),
		Series:        toSummaries(seriesRows),
		Likes:         toSummaries(likedRows),
		Subscriptions: subscriptions,
		IsSubscribed:  isSubscribed,
	})
}

// PUT /users/:id
// Self only.
func UpdateUser(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID"})
		return
	}

	userID := c.GetUint("user_id")
	if userID == 0 || userID != uint(id) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Access denied"})
		return
	}

	var req UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := database.DB.Model(&users.User{}).Where("id = ?", userID).
		Updates(map[string]interface{}{
			"name":     req.Name,
			"username": req.Username,
		}).Error; err != nil {
		c.JSON(http.StatusConflict, gin.H{"error": "Username may already be taken"})
		return
	}

	viewcache.Invalidate(c.Request.Context(), "/user/"+c.Param("id"))
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// POST /users/:id/subscribe
func Subscribe(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID"})
		return
	}

	userID := c.GetUint("user_id")
	if userID == 0 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}
	if userID == uint(id) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Cannot subscribe to yourself"})
		return
	}

	var target users.User
	if err := database.DB.First(&target, uint(id)).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	sub := users.Subscription{SubscribedByID: userID, SubscribedToID: target.ID}
	if err := database.DB.Clauses(clause.OnConflict{DoNothing: true}).Create(&sub).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to subscribe"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "subscribed"})
}

// DELETE /users/:id/subscribe
func Unsubscribe(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID"})
		return
	}

	userID := c.GetUint("user_id")
	if userID == 0 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	if err := database.DB.
		Where("subscribed_by_id = ? AND subscribed_to_id = ?", userID, uint(id)).
		Delete(&users.Subscription{}).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to unsubscribe"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "unsubscribed"})
}

package admin

import (
	"net/http"

	"timeline-app/database"
	"timeline-app/internal/domain/content"
	"timeline-app/internal/domain/series"
	"timeline-app/internal/domain/users"

	"github.com/gin-gonic/gin"
)

type AdminUser struct {
	ID           uint   `json:"id"`
	Name         string `json:"name"`
	Username     string `json:"username"`
	Email        string `json:"email"`
	Role         string `json:"role"`
	AuthProvider string `json:"auth_provider"`
	SeriesCount  int64  `json:"series_count"`
}

type AdminStats struct {
	TotalUsers         int64 `json:"total_users"`
	TotalSeries        int64 `json:"total_series"`
	TotalEvents        int64 `json:"total_events"`
	TotalSourceContent int64 `json:"total_source_content"`
}

func AdminDashboard(c *gin.Context) {
	var stats AdminStats
	database.DB.Model(&users.User{}).Count(&stats.TotalUsers)
	database.DB.Model(&series.EventSeries{}).Count(&stats.TotalSeries)
	database.DB.Model(&series.Event{}).Count(&stats.TotalEvents)
	database.DB.Model(&content.SourceContent{}).Count(&stats.TotalSourceContent)

	c.JSON(http.StatusOK, stats)
}

func ListAllUsers(c *gin.Context) {
	var all []users.User
	err := database.DB.Order("id ASC").Find(&all).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load users"})
		return
	}

	var adminUsers []AdminUser
	for _, u := range all {
		var seriesCount int64
		database.DB.Model(&series.EventSeries{}).Where("creator_id = ?", u.ID).Count(&seriesCount)

		adminUsers = append(adminUsers, AdminUser{
			ID:           u.ID,
			Name:         u.Name,
			Username:     u.Username,
			Email:        u.Email,
			Role:         u.Role,
			AuthProvider: u.AuthProvider,
			SeriesCount:  seriesCount,
		})
	}

	c.JSON(http.StatusOK, adminUsers)
}

// POST /admin/categories
func CreateCategory(c *gin.Context) {
	var input struct {
		Name string `json:"name" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	cat := series.EventCategory{Name: input.Name}
	if err := database.DB.Create(&cat).Error; err != nil {
		c.JSON(http.StatusConflict, gin.H{"error": "Category may already exist"})
		return
	}
	c.JSON(http.StatusCreated, cat)
}

// POST /admin/subcategories
func CreateSubCategory(c *gin.Context) {
	var input struct {
		Name       string `json:"name" binding:"required"`
		CategoryID uint   `json:"category_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var cat series.EventCategory
	if err := database.DB.First(&cat, input.CategoryID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Category not found"})
		return
	}

	sub := series.EventSubCategory{Name: input.Name, EventCategoryID: cat.ID}
	if err := database.DB.Create(&sub).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create subcategory"})
		return
	}
	c.JSON(http.StatusCreated, sub)
}

// POST /admin/platforms
func CreatePlatform(c *gin.Context) {
	var input struct {
		Name string `json:"name" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	platform := content.SocialMediaPlatform{Name: input.Name}
	if err := database.DB.Create(&platform).Error; err != nil {
		c.JSON(http.StatusConflict, gin.H{"error": "Platform may already exist"})
		return
	}
	c.JSON(http.StatusCreated, platform)
}

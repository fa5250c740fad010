package categories

import (
	"net/http"

	"timeline-app/database"
	"timeline-app/internal/domain/series"

	"github.com/gin-gonic/gin"
)

// GET /categories
func ListCategories(c *gin.Context) {
	var cats []series.EventCategory
	if err := database.DB.Order("id ASC").Find(&cats).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load categories"})
		return
	}

	var subs []series.EventSubCategory
	if err := database.DB.Preload("EventCategory").Order("id ASC").Find(&subs).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load subcategories"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"categories": cats, "subcategories": subs})
}

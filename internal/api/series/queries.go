package series

import (
	"strings"

	"timeline-app/internal/domain/series"

	"gorm.io/gorm"
)

const pageSize = 6

// visibleSeriesQuery scopes a listing to what viewerID may see: everything
// public plus the viewer's own private series. viewerID 0 means anonymous.
func visibleSeriesQuery(db *gorm.DB, viewerID uint) *gorm.DB {
	q := db.Model(&series.EventSeries{})
	if viewerID == 0 {
		return q.Where("is_private = ?", false)
	}
	return q.Where("is_private = ? OR creator_id = ?", false, viewerID)
}

// creatorSeriesQuery scopes the workshop listing to one creator, private
// series included.
func creatorSeriesQuery(db *gorm.DB, creatorID uint) *gorm.DB {
	return db.Model(&series.EventSeries{}).Where("creator_id = ?", creatorID)
}

func applyFilters(q *gorm.DB, search string, categoryID, subcategoryID uint) *gorm.DB {
	if search != "" {
		// LOWER on both sides: postgres LIKE is case-sensitive.
		pattern := "%" + strings.ToLower(search) + "%"
		q = q.Where("LOWER(title) LIKE ? OR LOWER(description) LIKE ?", pattern, pattern)
	}
	if categoryID != 0 {
		q = q.Where("category_id = ?", categoryID)
	}
	if subcategoryID != 0 {
		q = q.Where("sub_category_id = ?", subcategoryID)
	}
	return q
}

func applyOrder(q *gorm.DB, order string) *gorm.DB {
	switch order {
	case "views":
		return q.Order("view_count DESC")
	case "oldest":
		return q.Order("created_at ASC")
	default: // newest
		return q.Order("created_at DESC")
	}
}

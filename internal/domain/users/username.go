package users

import (
	"fmt"
	"regexp"
	"strings"

	"gorm.io/gorm"
)

/*
	Username helpers
	----------------
	- Responsible ONLY for:
	  • deriving a handle from a display name
	  • picking a free one against the users table
	- No auth logic here
*/

var (
	nonHandle = regexp.MustCompile(`[^a-z0-9\-]+`)
	multiDash = regexp.MustCompile(`-+`)
)

// MakeUsername generates a URL-safe base handle from a display name.
// Example: "John Doe" -> "john-doe"
func MakeUsername(name string) string {
	base := strings.ToLower(strings.TrimSpace(name))
	base = strings.ReplaceAll(base, " ", "-")
	base = nonHandle.ReplaceAllString(base, "")
	base = multiDash.ReplaceAllString(base, "-")
	base = strings.Trim(base, "-")

	if base == "" {
		base = "user"
	}
	return base
}

// EnsureUniqueUsername returns base if free, otherwise base-2, base-3, ...
// Pass db in, do NOT import timeline-app/database here (avoids import cycle).
func EnsureUniqueUsername(db *gorm.DB, base string) (string, error) {
	if db == nil {
		return "", fmt.Errorf("db is nil")
	}

	candidate := base
	for i := 2; ; i++ {
		var count int64
		if err := db.Model(&User{}).Where("username = ?", candidate).Count(&count).Error; err != nil {
			return "", err
		}
		if count == 0 {
			return candidate, nil
		}
		candidate = fmt.Sprintf("%s-%d", base, i)
	}
}

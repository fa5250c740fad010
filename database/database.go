package database

import (
	"os"

	"timeline-app/internal/domain/content"
	"timeline-app/internal/domain/series"
	"timeline-app/internal/domain/users"

	"github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

func InitDB() {
	dsn := os.Getenv("DB_URL")
	if dsn == "" {
		logrus.Fatal("DB_URL not set")
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		logrus.Fatal("Failed to connect to database: ", err)
	}

	DB = db

	if err := Migrate(DB); err != nil {
		logrus.Fatal("AutoMigrate error: ", err)
	}

	logrus.Info("Connected and migrated successfully")
}

// Migrate runs AutoMigrate for every domain model. Shared with the test
// harness, which runs it against an in-memory database.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		// core
		&users.User{},
		&users.Subscription{},

		// series
		&series.EventCategory{},
		&series.EventSubCategory{},
		&series.EventSeries{},
		&series.Event{},
		&series.EventSeriesEvent{},
		&series.EventTag{},
		&series.EventTagEventSeries{},
		&series.UserSeriesLike{},
		&series.UserSeriesFavorite{},

		// source content
		&content.SocialMediaPlatform{},
		&content.SourceContentCreator{},
		&content.SourceContent{},
		&content.SourceContentEvent{},
		&content.Comment{},
	)
}

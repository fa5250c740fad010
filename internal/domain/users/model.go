package users

import (
	"time"
)

type User struct {
	ID           uint    `gorm:"primaryKey" json:"id"`
	Name         string  `json:"name"`
	Username     string  `gorm:"not null;uniqueIndex:idx_users_username" json:"username"`
	Email        string  `gorm:"not null;uniqueIndex:idx_users_email" json:"-"`
	Password     *string `gorm:"" json:"-"`
	AuthProvider string  `gorm:"type:varchar(20);not null;default:'local'" json:"-"`
	GoogleSub    *string `gorm:"uniqueIndex:idx_users_google_sub" json:"-"`
	Role         string  `gorm:"not null;default:'user'" json:"-"`
	Image        string  `json:"image"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Subscription links a follower to the account being followed.
// One row per (subscriber, target) pair.
type Subscription struct {
	SubscribedByID uint `gorm:"primaryKey;autoIncrement:false" json:"subscribed_by_id"`
	SubscribedToID uint `gorm:"primaryKey;autoIncrement:false" json:"subscribed_to_id"`

	SubscribedBy *User `gorm:"foreignKey:SubscribedByID" json:"subscribed_by,omitempty"`
	SubscribedTo *User `gorm:"foreignKey:SubscribedToID" json:"subscribed_to,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}

package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User is a directory entry. Usernames are not unique and are stored as given.
type User struct {
	ID        string    `json:"id" gorm:"type:char(36);primaryKey" bson:"_id"`
	Username  string    `json:"username" gorm:"size:255;not null" bson:"username"`
	CreatedAt time.Time `json:"-" bson:"created_at"`
}

// BeforeCreate sets the identifier before inserting the record.
func (u *User) BeforeCreate(tx *gorm.DB) error {
	u.EnsureID()
	return nil
}

// EnsureID assigns a fresh identifier when none is set. Stores without
// GORM hooks call it directly.
func (u *User) EnsureID() {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
}

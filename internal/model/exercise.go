package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Exercise is a single entry in a user's exercise log.
// UserID references a user but is not a foreign key.
type Exercise struct {
	ID          string    `json:"-" gorm:"type:char(36);primaryKey" bson:"_id"`
	UserID      string    `json:"-" gorm:"type:char(36);not null;index:idx_exercises_user_date,priority:1" bson:"user_id"`
	Description string    `json:"description" gorm:"type:text" bson:"description"`
	Duration    int       `json:"duration" gorm:"not null;default:0" bson:"duration"`
	Date        time.Time `json:"date" gorm:"type:date;not null;index:idx_exercises_user_date,priority:2" bson:"date"`
	CreatedAt   time.Time `json:"-" bson:"created_at"`
}

// BeforeCreate sets the identifier before inserting the record.
func (e *Exercise) BeforeCreate(tx *gorm.DB) error {
	e.EnsureID()
	return nil
}

// EnsureID assigns a fresh identifier when none is set.
func (e *Exercise) EnsureID() {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
}

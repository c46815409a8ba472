package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User represents an end-user account row.
type User struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey"` // Primary key.

	Name  string  `gorm:"type:varchar(100);not null"`                         // Display name.
	Email string  `gorm:"type:varchar(255);not null;uniqueIndex:users_email_key"` // Unique email address.
	Phone *string `gorm:"type:varchar(20)"`                                       // Phone number.
	Age   *int64  // Age in years.

	IsActive bool `gorm:"default:true"` // Whether the account is active.

	CreatedAt time.Time `gorm:"autoCreateTime"` // Creation timestamp.
	UpdatedAt time.Time `gorm:"autoUpdateTime"` // Last update timestamp.
}

// TableName maps the model to the users table.
func (User) TableName() string { return "users" }

// BeforeCreate assigns a fresh UUID primary key.
func (u *User) BeforeCreate(*gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Admin represents an administrative account row.
type Admin struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey"` // Primary key.

	Username     string         `gorm:"type:varchar(50);not null;uniqueIndex:admins_username_key"` // Unique login name.
	Email        string         `gorm:"type:varchar(255);not null;uniqueIndex:admins_email_key"`   // Unique email address.
	PasswordHash string         `gorm:"type:varchar(255);not null"`                                // Opaque password hash.
	FullName     *string        `gorm:"type:varchar(100)"`                                         // Full display name.
	Role         string         `gorm:"type:varchar(50);default:admin"`                            // Assigned role.
	Permissions  datatypes.JSON `gorm:"type:jsonb"`                                                // Permission list payload.

	IsSuperAdmin bool `gorm:"default:false"` // Whether the admin has every permission.
	IsActive     bool `gorm:"default:true"`  // Whether the account is active.

	LastLogin *time.Time // Last successful sign-in.

	CreatedAt time.Time `gorm:"autoCreateTime"` // Creation timestamp.
	UpdatedAt time.Time `gorm:"autoUpdateTime"` // Last update timestamp.
}

// TableName maps the model to the admins table.
func (Admin) TableName() string { return "admins" }

// BeforeCreate assigns a fresh UUID primary key.
func (a *Admin) BeforeCreate(*gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}

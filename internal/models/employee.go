package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Employee represents a staff directory row.
type Employee struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey"` // Primary key.

	EmployeeID string  `gorm:"type:varchar(20);not null;uniqueIndex:employees_employee_id_key"` // Unique badge number.
	FirstName  string  `gorm:"type:varchar(50);not null"`                                       // Given name.
	LastName   string  `gorm:"type:varchar(50);not null"`                                       // Family name.
	Email      string  `gorm:"type:varchar(255);not null;uniqueIndex:employees_email_key"`      // Unique email address.
	Phone      *string `gorm:"type:varchar(20)"`                                                // Phone number.
	Department *string `gorm:"type:varchar(100)"`                                               // Department name.
	Position   *string `gorm:"type:varchar(100)"`                                               // Job title.

	Salary    *float64   // Annual salary.
	HireDate  *time.Time // Hire date.
	ManagerID *uuid.UUID `gorm:"type:uuid"`       // Manager reference.
	Address   *string    `gorm:"type:text"`       // Postal address.
	IsActive  bool       `gorm:"default:true"`    // Whether the employee is active.

	CreatedAt time.Time `gorm:"autoCreateTime"` // Creation timestamp.
	UpdatedAt time.Time `gorm:"autoUpdateTime"` // Last update timestamp.
}

// TableName maps the model to the employees table.
func (Employee) TableName() string { return "employees" }

// BeforeCreate assigns a fresh UUID primary key.
func (e *Employee) BeforeCreate(*gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return nil
}

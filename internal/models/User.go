package models

import "time"

// User is a KAM, manager, or admin operating the system.
type User struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Name     string   `gorm:"not null" json:"name"`
	Email    string   `gorm:"unique;not null" json:"email"`
	Phone    string   `json:"phone"`
	Password string   `gorm:"not null" json:"-"`
	Role     UserRole `gorm:"type:varchar(20);not null;default:'KAM'" json:"role"`

	// Restaurants this user services as assigned KAM
	Restaurants []Restaurant `gorm:"foreignKey:AssignedKamID" json:"restaurants,omitempty"`
}

package models

import "time"

// Contact is a person reachable at a restaurant account.
type Contact struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Name  string `gorm:"not null" json:"name"`
	Role  string `gorm:"not null" json:"role"` // free-text job title
	Email string `json:"email"`
	Phone string `json:"phone"`

	PreferredContactMethod *PreferredContactMethod `gorm:"type:varchar(20)" json:"preferred_contact_method"`
	TimeZone               *string                 `gorm:"type:varchar(50)" json:"time_zone"`

	RestaurantID uint        `gorm:"not null;index" json:"restaurant_id"`
	Restaurant   *Restaurant `gorm:"foreignKey:RestaurantID" json:"restaurant,omitempty"`

	Interactions []Interaction `gorm:"foreignKey:ContactID" json:"interactions,omitempty"`
}

package models

import "time"

// Interaction records one touchpoint between a KAM and a contact.
type Interaction struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	InteractionDate time.Time           `gorm:"not null" json:"interaction_date"`
	Type            InteractionType     `gorm:"type:varchar(20);not null" json:"type"`
	Outcome         *InteractionOutcome `gorm:"type:varchar(20)" json:"outcome"`
	Details         string              `gorm:"type:text" json:"details"`
	DurationMinutes *int                `json:"duration_minutes"`

	ContactID    uint        `gorm:"not null;index" json:"contact_id"`
	Contact      *Contact    `gorm:"foreignKey:ContactID" json:"contact,omitempty"`
	RestaurantID uint        `gorm:"not null;index" json:"restaurant_id"`
	Restaurant   *Restaurant `gorm:"foreignKey:RestaurantID" json:"restaurant,omitempty"`
}

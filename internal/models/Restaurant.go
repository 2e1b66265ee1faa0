package models

import (
	"time"
)

// Business-policy constants behind the underperformance flag and the
// performance score. Changing any of these changes which accounts the
// KAM dashboards surface, so they are fixed here rather than derived.
const (
	StaleInteractionDays   = 30
	MinHealthyRevenue      = 1000.0
	ScoreInteractionWeight = 0.4
	ScoreRevenueWeight     = 0.4
	ScoreRecencyWeight     = 0.2
)

// Restaurant is a lead account serviced by a KAM.
type Restaurant struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Name          string           `gorm:"not null" json:"name"`
	Address       string           `json:"address"`
	Status        RestaurantStatus `gorm:"type:varchar(20);not null;default:'NEW'" json:"status"`
	CallFrequency CallFrequency    `gorm:"type:varchar(20);not null;default:'WEEKLY'" json:"call_frequency"`
	LastCallDate  *time.Time       `json:"last_call_date"`
	Revenue       *float64         `gorm:"type:decimal(12,2)" json:"revenue"`
	Notes         string           `gorm:"type:text" json:"notes"`

	AssignedKamID *uint `gorm:"index" json:"assigned_kam_id"`
	AssignedKam   *User `gorm:"foreignKey:AssignedKamID" json:"assigned_kam,omitempty"`

	Contacts     []Contact     `gorm:"foreignKey:RestaurantID" json:"contacts,omitempty"`
	Interactions []Interaction `gorm:"foreignKey:RestaurantID" json:"interactions,omitempty"`
}

// TotalInteractions counts the interactions loaded for this restaurant.
func (r *Restaurant) TotalInteractions() int {
	return len(r.Interactions)
}

// LastInteractionDate returns the most recent interaction date, or nil
// when the restaurant has no interactions.
func (r *Restaurant) LastInteractionDate() *time.Time {
	var last *time.Time
	for i := range r.Interactions {
		d := r.Interactions[i].InteractionDate
		if last == nil || d.After(*last) {
			last = &d
		}
	}
	return last
}

// AverageInteractionDuration is the mean of the recorded durations in
// minutes. Interactions without a duration are skipped, matching the
// SQL AVG() treatment of NULLs. A restaurant with no measurable
// durations averages 0, never nil.
func (r *Restaurant) AverageInteractionDuration() float64 {
	var sum, n int
	for i := range r.Interactions {
		if d := r.Interactions[i].DurationMinutes; d != nil {
			sum += *d
			n++
		}
	}
	if n == 0 {
		return 0
	}
	return float64(sum) / float64(n)
}

// TotalRevenue reports the recorded revenue, with unset treated as 0.
func (r *Restaurant) TotalRevenue() float64 {
	if r.Revenue == nil {
		return 0
	}
	return *r.Revenue
}

// IsUnderperforming flags accounts needing attention: never contacted,
// not contacted within the staleness window, or below the revenue floor.
func (r *Restaurant) IsUnderperforming(now time.Time) bool {
	last := r.LastInteractionDate()
	if last == nil {
		return true
	}
	if now.Sub(*last).Hours() > StaleInteractionDays*24 {
		return true
	}
	return r.TotalRevenue() < MinHealthyRevenue
}

// PerformanceScore is a weighted composite of interaction volume,
// revenue (per $1000), and recency presence.
func (r *Restaurant) PerformanceScore() float64 {
	recency := 0.0
	if r.LastInteractionDate() != nil {
		recency = 1.0
	}
	return ScoreInteractionWeight*float64(r.TotalInteractions()) +
		ScoreRevenueWeight*(r.TotalRevenue()/1000.0) +
		ScoreRecencyWeight*recency
}

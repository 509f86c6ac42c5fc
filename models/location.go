package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Location is a city a restaurant operates in. State is NULL when the
// location has none; it is never stored as an empty string.
type Location struct {
	ID        string    `json:"id" gorm:"primaryKey;size:36"`
	City      string    `json:"city" gorm:"not null;index"`
	State     *string   `json:"state,omitempty"`
	Country   string    `json:"country" gorm:"size:100;not null"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (l *Location) BeforeCreate(tx *gorm.DB) error {
	if l.ID == "" {
		l.ID = uuid.NewString()
	}
	return nil
}

func (l Location) URL() string {
	return "/location/" + l.ID
}

// StateName returns the state or "" when unset.
func (l Location) StateName() string {
	if l.State == nil {
		return ""
	}
	return *l.State
}

// Label renders "City, State, Country", skipping a missing state.
func (l Location) Label() string {
	parts := []string{l.City}
	if s := l.StateName(); s != "" {
		parts = append(parts, s)
	}
	parts = append(parts, l.Country)
	return strings.Join(parts, ", ")
}

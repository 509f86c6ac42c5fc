package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Restaurant is a brand that may have outlets in several locations.
//
// The location and cuisine references live in the ordered link tables
// RestaurantLocation and RestaurantCuisine. LocationIDs and CuisineIDs hold
// them in position order; Locations and Cuisines are filled by the services
// resolver and are empty until then.
type Restaurant struct {
	ID        string    `json:"id" gorm:"primaryKey;size:36"`
	Name      string    `json:"name" gorm:"not null;index"`
	Summary   string    `json:"summary"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	LocationIDs []string   `json:"location_ids" gorm:"-"`
	CuisineIDs  []string   `json:"cuisine_ids" gorm:"-"`
	Locations   []Location `json:"locations,omitempty" gorm:"-"`
	Cuisines    []Cuisine  `json:"cuisines,omitempty" gorm:"-"`
}

func (r *Restaurant) BeforeCreate(tx *gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	return nil
}

func (r Restaurant) URL() string {
	return "/restaurant/" + r.ID
}

// RestaurantLocation links a restaurant to one of its locations.
type RestaurantLocation struct {
	RestaurantID string `gorm:"primaryKey;size:36"`
	LocationID   string `gorm:"primaryKey;size:36;index"`
	Position     int    `gorm:"not null"`
}

// RestaurantCuisine links a restaurant to one of its cuisines.
type RestaurantCuisine struct {
	RestaurantID string `gorm:"primaryKey;size:36"`
	CuisineID    string `gorm:"primaryKey;size:36;index"`
	Position     int    `gorm:"not null"`
}

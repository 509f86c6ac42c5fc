package models

import (
	"strconv"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PriceTier is the relative cost of eating at an outlet.
type PriceTier string

const (
	PriceBudget    PriceTier = "$"
	PriceModerate  PriceTier = "$$"
	PriceExpensive PriceTier = "$$$"
	PriceLuxury    PriceTier = "$$$$"
)

// PriceTiers lists every tier, cheapest first.
var PriceTiers = []PriceTier{PriceBudget, PriceModerate, PriceExpensive, PriceLuxury}

func (p PriceTier) Valid() bool {
	for _, t := range PriceTiers {
		if p == t {
			return true
		}
	}
	return false
}

// Rating bounds, inclusive.
const (
	MinRating = 1.0
	MaxRating = 5.0
)

// RestaurantInstance is one physical outlet of a restaurant.
type RestaurantInstance struct {
	ID           string    `json:"id" gorm:"primaryKey;size:36"`
	RestaurantID string    `json:"restaurant_id" gorm:"size:36;not null;index"`
	LocationID   string    `json:"location_id" gorm:"size:36;not null;index"`
	Address      string    `json:"address" gorm:"not null"`
	Rating       *float64  `json:"rating,omitempty"`
	Price        PriceTier `json:"price" gorm:"size:4;not null"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`

	// Resolved references. Nil when unresolved or when the referenced
	// record no longer exists.
	Restaurant *Restaurant `json:"restaurant,omitempty" gorm:"-"`
	Location   *Location   `json:"location,omitempty" gorm:"-"`
}

func (i *RestaurantInstance) BeforeCreate(tx *gorm.DB) error {
	if i.ID == "" {
		i.ID = uuid.NewString()
	}
	return nil
}

func (i RestaurantInstance) URL() string {
	return "/restaurantinstance/" + i.ID
}

// RatingText formats the rating with one decimal, or "" when unrated.
func (i RestaurantInstance) RatingText() string {
	if i.Rating == nil {
		return ""
	}
	return strconv.FormatFloat(*i.Rating, 'f', 1, 64)
}

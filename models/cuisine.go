package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Cuisine is a style of food, e.g. "Pakistani" or "Arab".
type Cuisine struct {
	ID        string    `json:"id" gorm:"primaryKey;size:36"`
	Name      string    `json:"name" gorm:"size:100;not null;index"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (c *Cuisine) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	return nil
}

// URL is the detail page for the cuisine.
func (c Cuisine) URL() string {
	return "/cuisine/" + c.ID
}

package models

import "time"

// Category is a product grouping with an optional stored image.
// Image holds the path of the owned file relative to the public storage
// root; the record is responsible for the file's lifecycle.
type Category struct {
	ID               uint      `gorm:"primaryKey" json:"id"`
	Title            string    `gorm:"size:255;not null" json:"title"`
	ShortDescription string    `gorm:"type:text;not null" json:"short_description"`
	LongDescription  string    `gorm:"type:text;not null" json:"long_description"`
	Image            *string   `gorm:"size:512" json:"image"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

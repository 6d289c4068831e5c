package models

import "time"

// Product belongs to a Category and carries the same image ownership
// semantics as Category.
type Product struct {
	ID               uint      `gorm:"primaryKey" json:"id"`
	CategoryID       uint      `gorm:"index;not null" json:"category_id"`
	Category         *Category `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
	Title            string    `gorm:"size:255;not null" json:"title"`
	ShortDescription string    `gorm:"type:text;not null" json:"short_description"`
	LongDescription  string    `gorm:"type:text;not null" json:"long_description"`
	Image            *string   `gorm:"size:512" json:"image"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

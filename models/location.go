package models

import "time"

// Location is a named place a post can optionally be tied to. Its publish
// flag exists for editorial use and does not take part in post visibility.
type Location struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"size:255;not null" json:"name"`
	IsPublished bool      `json:"is_published"`
	CreatedAt   time.Time `json:"created_at"`
}

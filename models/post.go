package models

import "time"

// Post is a user-authored content item with publish gating. A post is
// publicly visible only when it is published, its category is published and
// its publication date is not in the future; the author always sees their
// own posts.
type Post struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	AuthorID    uint      `gorm:"index;not null" json:"author_id"`
	CategoryID  uint      `gorm:"index;not null" json:"category_id"`
	LocationID  *uint     `gorm:"index" json:"location_id"`
	Title       string    `gorm:"size:255;not null" json:"title"`
	Text        string    `gorm:"type:text;not null" json:"text"`
	PubDate     time.Time `gorm:"index;not null" json:"pub_date"`
	IsPublished bool      `json:"is_published"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
	Author      User      `gorm:"foreignKey:AuthorID" json:"author"`
	Category    Category  `gorm:"foreignKey:CategoryID" json:"category"`
	Location    *Location `gorm:"foreignKey:LocationID" json:"location,omitempty"`
	Comments    []Comment `gorm:"foreignKey:PostID;constraint:OnDelete:CASCADE" json:"comments"`
}

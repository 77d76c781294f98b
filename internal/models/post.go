package models

import (
	"time"
)

// Post represents a blog entry. The author reference and creation time are
// immutable; title and text may be edited by the author only.
type Post struct {
	ID     PostID `gorm:"primaryKey" json:"id"`
	UserID UserID `gorm:"not null;index" json:"user_id"`
	User   User   `gorm:"foreignKey:UserID" json:"user"`
	Title  string `gorm:"not null" json:"title"`
	Text   string `gorm:"type:text;not null" json:"text"`
	// LikesCount is not persisted; computed at query time
	LikesCount int `gorm:"->" json:"likes_count"`
	// CommentsCount is not persisted; computed at query time
	CommentsCount int `gorm:"->" json:"comments_count"`
	// Liked indicates whether the current requesting user liked this post (computed)
	Liked     bool      `gorm:"->" json:"liked"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// OwnerID returns the author of the post.
func (p *Post) OwnerID() UserID { return p.UserID }

package models

import (
	"time"
)

// Comment represents a comment on a post. Post and author references are
// immutable; the text may be edited by the author. Comments never outlive
// their post: deleting a post cascades to its comments.
type Comment struct {
	ID        CommentID `gorm:"primaryKey" json:"id"`
	PostID    PostID    `gorm:"not null;index" json:"post_id"`
	UserID    UserID    `gorm:"not null" json:"user_id"`
	User      User      `gorm:"foreignKey:UserID" json:"user"`
	Text      string    `gorm:"type:text;not null" json:"text"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// OwnerID returns the author of the comment.
func (c *Comment) OwnerID() UserID { return c.UserID }

package models

import (
	"time"
)

// Like records that a user liked a post. The composite unique index makes
// duplicate likes impossible at the store level; the rule that an author
// cannot like their own post is enforced in the service layer.
type Like struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    UserID    `gorm:"not null;uniqueIndex:idx_user_post" json:"user_id"`
	PostID    PostID    `gorm:"not null;uniqueIndex:idx_user_post" json:"post_id"`
	CreatedAt time.Time `json:"created_at"`
}

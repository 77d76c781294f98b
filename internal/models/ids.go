package models

// Typed identifiers keep references between entity kinds from being mixed up
// at compile time: a CommentID cannot be handed to a post lookup.
type (
	// UserID identifies a registered user.
	UserID uint
	// PostID identifies a post.
	PostID uint
	// CommentID identifies a comment.
	CommentID uint
)

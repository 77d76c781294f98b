package server

import (
	"time"

	"inkwell/internal/models"
	"inkwell/internal/textutil"
)

// Every rendered view is a typed struct; handlers never serialize models or
// ad-hoc maps directly.

// AuthorView is the public slice of a user embedded in posts and comments.
type AuthorView struct {
	ID       models.UserID `json:"id"`
	Username string        `json:"username"`
}

// PostSummary is the listing entry: teaser text and a relative timestamp.
type PostSummary struct {
	ID            models.PostID `json:"id"`
	Author        AuthorView    `json:"author"`
	Title         string        `json:"title"`
	Teaser        string        `json:"teaser"`
	Posted        string        `json:"posted"`
	LikesCount    int           `json:"likes_count"`
	CommentsCount int           `json:"comments_count"`
	Liked         bool          `json:"liked"`
}

// PostDetail is the full post view including its comments.
type PostDetail struct {
	ID            models.PostID `json:"id"`
	Author        AuthorView    `json:"author"`
	Title         string        `json:"title"`
	Text          string        `json:"text"`
	Posted        string        `json:"posted"`
	LikesCount    int           `json:"likes_count"`
	CommentsCount int           `json:"comments_count"`
	Liked         bool          `json:"liked"`
	Comments      []CommentView `json:"comments"`
}

// CommentView renders a single comment.
type CommentView struct {
	ID     models.CommentID `json:"id"`
	PostID models.PostID    `json:"post_id"`
	Author AuthorView       `json:"author"`
	Text   string           `json:"text"`
	Posted string           `json:"posted"`
}

func newAuthorView(u models.User) AuthorView {
	return AuthorView{ID: u.ID, Username: u.Username}
}

// relativeTime renders created against now, falling back to the empty string
// for the zero time rather than failing the whole view.
func relativeTime(created, now time.Time) string {
	s, err := textutil.RelativeTime(created, now)
	if err != nil {
		return ""
	}
	return s
}

func newPostSummary(p models.Post, now time.Time) PostSummary {
	return PostSummary{
		ID:            p.ID,
		Author:        newAuthorView(p.User),
		Title:         p.Title,
		Teaser:        textutil.Teaser(p.Text),
		Posted:        relativeTime(p.CreatedAt, now),
		LikesCount:    p.LikesCount,
		CommentsCount: p.CommentsCount,
		Liked:         p.Liked,
	}
}

func newPostSummaries(posts []models.Post, now time.Time) []PostSummary {
	views := make([]PostSummary, len(posts))
	for i, p := range posts {
		views[i] = newPostSummary(p, now)
	}
	return views
}

func newPostDetail(p models.Post, comments []models.Comment, now time.Time) PostDetail {
	return PostDetail{
		ID:            p.ID,
		Author:        newAuthorView(p.User),
		Title:         p.Title,
		Text:          p.Text,
		Posted:        relativeTime(p.CreatedAt, now),
		LikesCount:    p.LikesCount,
		CommentsCount: p.CommentsCount,
		Liked:         p.Liked,
		Comments:      newCommentViews(comments, now),
	}
}

func newCommentView(cm models.Comment, now time.Time) CommentView {
	return CommentView{
		ID:     cm.ID,
		PostID: cm.PostID,
		Author: newAuthorView(cm.User),
		Text:   cm.Text,
		Posted: relativeTime(cm.CreatedAt, now),
	}
}

func newCommentViews(comments []models.Comment, now time.Time) []CommentView {
	views := make([]CommentView, len(comments))
	for i, cm := range comments {
		views[i] = newCommentView(cm, now)
	}
	return views
}

// Package service holds the application services sitting between the HTTP
// handlers and the repositories: input scrubbing, authorization, and the
// listing/tombstone plumbing.
package service

import (
	"context"

	"inkwell/internal/cache"
	"inkwell/internal/guard"
	"inkwell/internal/models"
	"inkwell/internal/repository"
	"inkwell/internal/textutil"
)

// whitespaceCharset is the squeeze charset for post and comment bodies: runs
// of the same whitespace character collapse to one.
const whitespaceCharset = " \t\n\r\v\f"

type PostService struct {
	postRepo repository.PostRepository
	tombs    *cache.Tombstones
}

type CreatePostInput struct {
	Title string
	Text  string
}

type UpdatePostInput struct {
	PostID models.PostID
	Title  string
	Text   string
}

// LikeResult reports which way a like toggle went.
type LikeResult struct {
	Added   bool
	Removed bool
}

func NewPostService(postRepo repository.PostRepository, tombs *cache.Tombstones) *PostService {
	if tombs == nil {
		tombs = cache.NewTombstones(0)
	}
	return &PostService{postRepo: postRepo, tombs: tombs}
}

// outcomeError translates a failed guard outcome into the matching AppError.
func outcomeError(o guard.Outcome, resource string, id interface{}) error {
	switch o {
	case guard.Unauthenticated:
		return models.NewUnauthenticatedError("Sign in required")
	case guard.NotFound:
		return models.NewNotFoundError(resource, id)
	case guard.Forbidden:
		return models.NewForbiddenError("You can only modify your own " + resource)
	}
	return nil
}

func currentID(user *models.User) models.UserID {
	if user == nil {
		return 0
	}
	return user.ID
}

func (s *PostService) CreatePost(ctx context.Context, user *models.User, in CreatePostInput) (*models.Post, error) {
	if out := guard.RequireSession(user); out != guard.Authorized {
		return nil, outcomeError(out, "Post", nil)
	}

	title := textutil.Squeeze(in.Title, whitespaceCharset)
	text := textutil.Squeeze(in.Text, whitespaceCharset)
	if title == "" {
		return nil, models.NewValidationError("Title is required")
	}
	if text == "" {
		return nil, models.NewValidationError("Text is required")
	}

	post := &models.Post{
		UserID: user.ID,
		Title:  title,
		Text:   text,
	}
	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, err
	}
	return s.postRepo.GetByID(ctx, post.ID, user.ID)
}

func (s *PostService) GetPost(ctx context.Context, user *models.User, id models.PostID) (*models.Post, error) {
	return s.postRepo.GetByID(ctx, id, currentID(user))
}

// ListPosts returns all posts newest first, minus any posts this process
// deleted recently enough that a lagging read may still serve them.
func (s *PostService) ListPosts(ctx context.Context, user *models.User) ([]models.Post, error) {
	posts, err := s.postRepo.List(ctx, currentID(user))
	if err != nil {
		return nil, err
	}

	deleted := s.tombs.Drain()
	if len(deleted) == 0 {
		return posts, nil
	}
	hidden := make(map[models.PostID]struct{}, len(deleted))
	for _, id := range deleted {
		hidden[id] = struct{}{}
	}
	filtered := posts[:0]
	for _, p := range posts {
		if _, ok := hidden[p.ID]; !ok {
			filtered = append(filtered, p)
		}
	}
	return filtered, nil
}

func (s *PostService) UpdatePost(ctx context.Context, user *models.User, in UpdatePostInput) (*models.Post, error) {
	if out := guard.RequireSession(user); out != guard.Authorized {
		return nil, outcomeError(out, "Post", in.PostID)
	}

	post, err := s.postRepo.GetByID(ctx, in.PostID, user.ID)
	if err != nil {
		return nil, err
	}
	if out := guard.RequireOwner(user, post); out != guard.Authorized {
		return nil, outcomeError(out, "Post", in.PostID)
	}

	title := textutil.Squeeze(in.Title, whitespaceCharset)
	text := textutil.Squeeze(in.Text, whitespaceCharset)
	if title == "" {
		return nil, models.NewValidationError("Title is required")
	}
	if text == "" {
		return nil, models.NewValidationError("Text is required")
	}

	post.Title = title
	post.Text = text
	if err := s.postRepo.Update(ctx, post); err != nil {
		return nil, err
	}
	return s.postRepo.GetByID(ctx, in.PostID, user.ID)
}

// DeletePost removes the caller's post along with its comments and likes, and
// tombstones the ID so the next listing read hides it.
func (s *PostService) DeletePost(ctx context.Context, user *models.User, id models.PostID) error {
	if out := guard.RequireSession(user); out != guard.Authorized {
		return outcomeError(out, "Post", id)
	}

	post, err := s.postRepo.GetByID(ctx, id, user.ID)
	if err != nil {
		return err
	}
	if out := guard.RequireOwner(user, post); out != guard.Authorized {
		return outcomeError(out, "Post", id)
	}

	if err := s.postRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.tombs.Add(id)
	return nil
}

// ToggleLike flips the caller's like on a post. Authors cannot like their own
// posts. The check-then-write is not atomic; concurrent toggles can lose an
// update, matching the store's last-write-wins behavior.
func (s *PostService) ToggleLike(ctx context.Context, user *models.User, id models.PostID) (LikeResult, error) {
	if out := guard.RequireSession(user); out != guard.Authorized {
		return LikeResult{}, outcomeError(out, "Post", id)
	}

	post, err := s.postRepo.GetByID(ctx, id, user.ID)
	if err != nil {
		return LikeResult{}, err
	}
	if post.UserID == user.ID {
		return LikeResult{}, models.NewForbiddenError("You cannot like your own post")
	}

	liked, err := s.postRepo.IsLiked(ctx, id, user.ID)
	if err != nil {
		return LikeResult{}, err
	}
	if liked {
		if err := s.postRepo.Unlike(ctx, id, user.ID); err != nil {
			return LikeResult{}, err
		}
		return LikeResult{Removed: true}, nil
	}
	if err := s.postRepo.Like(ctx, id, user.ID); err != nil {
		return LikeResult{}, err
	}
	return LikeResult{Added: true}, nil
}

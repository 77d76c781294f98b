package service

import (
	"context"

	"inkwell/internal/guard"
	"inkwell/internal/models"
	"inkwell/internal/repository"
	"inkwell/internal/textutil"
)

type CommentService struct {
	commentRepo repository.CommentRepository
	postRepo    repository.PostRepository
}

type CreateCommentInput struct {
	PostID models.PostID
	Text   string
}

type UpdateCommentInput struct {
	CommentID models.CommentID
	Text      string
}

func NewCommentService(commentRepo repository.CommentRepository, postRepo repository.PostRepository) *CommentService {
	return &CommentService{commentRepo: commentRepo, postRepo: postRepo}
}

// CreateComment adds a comment to an existing post. Anyone signed in may
// comment on any post, including their own.
func (s *CommentService) CreateComment(ctx context.Context, user *models.User, in CreateCommentInput) (*models.Comment, error) {
	if out := guard.RequireSession(user); out != guard.Authorized {
		return nil, outcomeError(out, "Comment", nil)
	}

	if _, err := s.postRepo.GetByID(ctx, in.PostID, user.ID); err != nil {
		return nil, err
	}

	text := textutil.Squeeze(in.Text, whitespaceCharset)
	if text == "" {
		return nil, models.NewValidationError("Text is required")
	}

	comment := &models.Comment{
		PostID: in.PostID,
		UserID: user.ID,
		Text:   text,
	}
	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, err
	}
	return s.commentRepo.GetByID(ctx, comment.ID)
}

// ListComments returns a post's comments oldest first.
func (s *CommentService) ListComments(ctx context.Context, postID models.PostID) ([]models.Comment, error) {
	return s.commentRepo.ListByPost(ctx, postID)
}

func (s *CommentService) UpdateComment(ctx context.Context, user *models.User, in UpdateCommentInput) (*models.Comment, error) {
	if out := guard.RequireSession(user); out != guard.Authorized {
		return nil, outcomeError(out, "Comment", in.CommentID)
	}

	comment, err := s.commentRepo.GetByID(ctx, in.CommentID)
	if err != nil {
		return nil, err
	}
	if out := guard.RequireOwner(user, comment); out != guard.Authorized {
		return nil, outcomeError(out, "Comment", in.CommentID)
	}

	text := textutil.Squeeze(in.Text, whitespaceCharset)
	if text == "" {
		return nil, models.NewValidationError("Text is required")
	}

	comment.Text = text
	if err := s.commentRepo.Update(ctx, comment); err != nil {
		return nil, err
	}
	return s.commentRepo.GetByID(ctx, in.CommentID)
}

func (s *CommentService) DeleteComment(ctx context.Context, user *models.User, id models.CommentID) error {
	if out := guard.RequireSession(user); out != guard.Authorized {
		return outcomeError(out, "Comment", id)
	}

	comment, err := s.commentRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if out := guard.RequireOwner(user, comment); out != guard.Authorized {
		return outcomeError(out, "Comment", id)
	}

	return s.commentRepo.Delete(ctx, comment)
}

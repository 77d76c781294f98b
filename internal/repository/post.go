package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"inkwell/internal/cache"
	"inkwell/internal/models"
)

// PostRepository defines the interface for post data operations.
type PostRepository interface {
	Create(ctx context.Context, post *models.Post) error
	GetByID(ctx context.Context, id models.PostID, currentUserID models.UserID) (*models.Post, error)
	List(ctx context.Context, currentUserID models.UserID) ([]models.Post, error)
	Update(ctx context.Context, post *models.Post) error
	Delete(ctx context.Context, id models.PostID) error
	IsLiked(ctx context.Context, id models.PostID, userID models.UserID) (bool, error)
	Like(ctx context.Context, id models.PostID, userID models.UserID) error
	Unlike(ctx context.Context, id models.PostID, userID models.UserID) error
}

// postRepository implements PostRepository
type postRepository struct {
	db *gorm.DB
}

// NewPostRepository creates a new post repository.
func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{db: db}
}

// applyPostDetails attaches the computed like/comment counters and, when a
// viewer is known, whether that viewer liked each post.
func (r *postRepository) applyPostDetails(query *gorm.DB, currentUserID models.UserID) *gorm.DB {
	const counters = "posts.*, " +
		"(SELECT COUNT(*) FROM likes WHERE likes.post_id = posts.id) AS likes_count, " +
		"(SELECT COUNT(*) FROM comments WHERE comments.post_id = posts.id) AS comments_count"

	if currentUserID != 0 {
		query = query.Select(counters+
			", EXISTS(SELECT 1 FROM likes WHERE likes.post_id = posts.id AND likes.user_id = ?) AS liked",
			currentUserID)
	} else {
		query = query.Select(counters)
	}

	return query.Preload("User")
}

func (r *postRepository) Create(ctx context.Context, post *models.Post) error {
	if err := r.db.WithContext(ctx).Create(post).Error; err != nil {
		return writeError(err)
	}
	return nil
}

// GetByID loads a post with its computed counters. Anonymous reads go through
// the cache; viewer-specific reads bypass it because Liked depends on who is
// asking.
func (r *postRepository) GetByID(ctx context.Context, id models.PostID, currentUserID models.UserID) (*models.Post, error) {
	var post models.Post

	fetch := func() error {
		return r.applyPostDetails(r.db.WithContext(ctx), currentUserID).
			First(&post, id).Error
	}

	var err error
	if currentUserID == 0 {
		err = cache.Aside(ctx, cache.PostKey(id), &post, cache.PostTTL, fetch)
	} else {
		err = fetch()
	}
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Post", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &post, nil
}

func (r *postRepository) List(ctx context.Context, currentUserID models.UserID) ([]models.Post, error) {
	var posts []models.Post
	err := r.applyPostDetails(r.db.WithContext(ctx), currentUserID).
		Order("posts.created_at DESC").
		Find(&posts).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return posts, nil
}

func (r *postRepository) Update(ctx context.Context, post *models.Post) error {
	err := r.db.WithContext(ctx).Model(post).
		Select("Title", "Text").
		Updates(post).Error
	if err != nil {
		return writeError(err)
	}
	cache.InvalidatePost(ctx, post.ID)
	return nil
}

// Delete removes a post together with its comments and likes in one
// transaction, so a half-deleted post can never be observed.
func (r *postRepository) Delete(ctx context.Context, id models.PostID) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("post_id = ?", id).Delete(&models.Comment{}).Error; err != nil {
			return err
		}
		if err := tx.Where("post_id = ?", id).Delete(&models.Like{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Post{}, id).Error
	})
	if err != nil {
		return writeError(err)
	}
	cache.InvalidatePost(ctx, id)
	return nil
}

func (r *postRepository) IsLiked(ctx context.Context, id models.PostID, userID models.UserID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Like{}).
		Where("post_id = ? AND user_id = ?", id, userID).
		Count(&count).Error
	if err != nil {
		return false, models.NewInternalError(err)
	}
	return count > 0, nil
}

func (r *postRepository) Like(ctx context.Context, id models.PostID, userID models.UserID) error {
	like := models.Like{PostID: id, UserID: userID}
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&like).Error
	if err != nil {
		return writeError(err)
	}
	cache.InvalidatePost(ctx, id)
	return nil
}

func (r *postRepository) Unlike(ctx context.Context, id models.PostID, userID models.UserID) error {
	err := r.db.WithContext(ctx).
		Where("post_id = ? AND user_id = ?", id, userID).
		Delete(&models.Like{}).Error
	if err != nil {
		return writeError(err)
	}
	cache.InvalidatePost(ctx, id)
	return nil
}

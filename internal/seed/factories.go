// Package seed provides helpers to create demo data for the application
// database. These helpers are intended for development and testing only.
package seed

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"inkwell/internal/models"
	"inkwell/internal/textutil"
)

// DemoPassword is the password every seeded account gets.
const DemoPassword = "password123"

// Factory builds domain entities and persists them to the database.
type Factory struct {
	db   *gorm.DB
	rand *rand.Rand
}

// NewFactory creates a new Factory bound to the provided Gorm DB.
func NewFactory(db *gorm.DB) *Factory {
	gofakeit.Seed(time.Now().UnixNano())
	return &Factory{
		db:   db,
		rand: rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// CreateUser persists a user with a generated username and the demo password.
func (f *Factory) CreateUser() (*models.User, error) {
	// Usernames must start with a letter and stay within 36 characters; a
	// short uuid fragment keeps collisions out of big seed runs.
	username := fmt.Sprintf("%s_%s",
		strings.ToLower(gofakeit.Word()),
		strings.ReplaceAll(uuid.NewString()[:8], "-", ""))

	salt, err := textutil.GenerateSalt(16)
	if err != nil {
		return nil, err
	}
	hash, err := textutil.HashCredential(salt, DemoPassword)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Username:     username,
		Salt:         salt,
		PasswordHash: hash,
	}
	if err := f.db.Create(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

// BuildPost constructs a post with a realistic created_at spread but does not
// persist it.
func (f *Factory) BuildPost(user *models.User) *models.Post {
	post := &models.Post{
		UserID: user.ID,
		Title:  gofakeit.Sentence(5),
		Text:   gofakeit.Paragraph(2, 4, 8, " "),
	}

	daysBack := f.rand.Intn(400)
	hoursBack := f.rand.Intn(24)
	post.CreatedAt = time.Now().
		Add(-time.Duration(daysBack)*24*time.Hour - time.Duration(hoursBack)*time.Hour)
	post.UpdatedAt = post.CreatedAt
	return post
}

// CreatePostsBatch persists multiple posts in a single DB call.
func (f *Factory) CreatePostsBatch(posts []*models.Post) error {
	if len(posts) == 0 {
		return nil
	}
	return f.db.Create(&posts).Error
}

// CreateComment persists a comment by the given user on the given post.
func (f *Factory) CreateComment(user *models.User, post *models.Post) (*models.Comment, error) {
	comment := &models.Comment{
		PostID:    post.ID,
		UserID:    user.ID,
		Text:      gofakeit.Sentence(f.rand.Intn(12) + 3),
		CreatedAt: post.CreatedAt.Add(time.Duration(f.rand.Intn(72)) * time.Hour),
	}
	if err := f.db.Create(comment).Error; err != nil {
		return nil, err
	}
	return comment, nil
}

// CreateLike persists a like, skipping the post author and duplicates.
func (f *Factory) CreateLike(user *models.User, post *models.Post) error {
	if user.ID == post.UserID {
		return nil
	}
	like := &models.Like{UserID: user.ID, PostID: post.ID}
	err := f.db.Where("user_id = ? AND post_id = ?", user.ID, post.ID).
		FirstOrCreate(like).Error
	return err
}

package seed

import (
	"fmt"

	"gorm.io/gorm"

	"inkwell/internal/middleware"
	"inkwell/internal/models"
)

// Seeder populates the database with demo users, posts, comments, and likes.
type Seeder struct {
	db      *gorm.DB
	factory *Factory
}

// NewSeeder creates a Seeder bound to the provided Gorm DB.
func NewSeeder(db *gorm.DB) *Seeder {
	return &Seeder{db: db, factory: NewFactory(db)}
}

// ClearAll removes all seeded data, children first.
func (s *Seeder) ClearAll() error {
	for _, model := range []any{
		&models.Like{},
		&models.Comment{},
		&models.Post{},
		&models.User{},
	} {
		if err := s.db.Where("1 = 1").Delete(model).Error; err != nil {
			return fmt.Errorf("clearing %T: %w", model, err)
		}
	}
	middleware.Logger.Info("Cleared all seed data")
	return nil
}

// SeedUsers creates count demo accounts.
func (s *Seeder) SeedUsers(count int) ([]*models.User, error) {
	users := make([]*models.User, 0, count)
	for i := 0; i < count; i++ {
		user, err := s.factory.CreateUser()
		if err != nil {
			return nil, fmt.Errorf("seeding user %d: %w", i, err)
		}
		users = append(users, user)
	}
	middleware.Logger.Info("Seeded users", "count", len(users))
	return users, nil
}

// SeedPosts creates count posts spread across the given users.
func (s *Seeder) SeedPosts(users []*models.User, count int) ([]*models.Post, error) {
	if len(users) == 0 {
		return nil, fmt.Errorf("no users to author posts")
	}

	posts := make([]*models.Post, 0, count)
	for i := 0; i < count; i++ {
		author := users[s.factory.rand.Intn(len(users))]
		posts = append(posts, s.factory.BuildPost(author))
	}
	if err := s.factory.CreatePostsBatch(posts); err != nil {
		return nil, fmt.Errorf("seeding posts: %w", err)
	}
	middleware.Logger.Info("Seeded posts", "count", len(posts))
	return posts, nil
}

// SeedEngagement scatters comments and likes over the given posts.
func (s *Seeder) SeedEngagement(users []*models.User, posts []*models.Post) error {
	if len(users) == 0 || len(posts) == 0 {
		return nil
	}

	comments, likes := 0, 0
	for _, post := range posts {
		for i := s.factory.rand.Intn(5); i > 0; i-- {
			commenter := users[s.factory.rand.Intn(len(users))]
			if _, err := s.factory.CreateComment(commenter, post); err != nil {
				return fmt.Errorf("seeding comment: %w", err)
			}
			comments++
		}
		for i := s.factory.rand.Intn(len(users)); i > 0; i-- {
			liker := users[s.factory.rand.Intn(len(users))]
			if err := s.factory.CreateLike(liker, post); err != nil {
				return fmt.Errorf("seeding like: %w", err)
			}
			likes++
		}
	}
	middleware.Logger.Info("Seeded engagement", "comments", comments, "likes", likes)
	return nil
}

// Run executes the full seeding pass.
func (s *Seeder) Run(numUsers, numPosts int) error {
	users, err := s.SeedUsers(numUsers)
	if err != nil {
		return err
	}
	posts, err := s.SeedPosts(users, numPosts)
	if err != nil {
		return err
	}
	return s.SeedEngagement(users, posts)
}

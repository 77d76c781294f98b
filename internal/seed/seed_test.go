package seed

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"inkwell/internal/database"
	"inkwell/internal/models"
	"inkwell/internal/textutil"
	"inkwell/internal/validation"
)

func setupSeedDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, database.Migrate(db))
	return db
}

func TestFactory_CreateUser(t *testing.T) {
	db := setupSeedDB(t)
	factory := NewFactory(db)

	user, err := factory.CreateUser()
	require.NoError(t, err)

	// Seeded accounts pass the same rules as real registrations.
	_, err = validation.NormalizeUsername(user.Username)
	assert.NoError(t, err)

	hash, err := textutil.HashCredential(user.Salt, DemoPassword)
	require.NoError(t, err)
	assert.Equal(t, hash, user.PasswordHash)
}

func TestSeeder_Run(t *testing.T) {
	db := setupSeedDB(t)
	seeder := NewSeeder(db)

	require.NoError(t, seeder.Run(5, 20))

	var users, posts int64
	db.Model(&models.User{}).Count(&users)
	db.Model(&models.Post{}).Count(&posts)
	assert.EqualValues(t, 5, users)
	assert.EqualValues(t, 20, posts)

	// Likes never point at a post's own author.
	var selfLikes int64
	db.Table("likes").
		Joins("JOIN posts ON posts.id = likes.post_id").
		Where("posts.user_id = likes.user_id").
		Count(&selfLikes)
	assert.Zero(t, selfLikes)
}

func TestSeeder_ClearAll(t *testing.T) {
	db := setupSeedDB(t)
	seeder := NewSeeder(db)
	require.NoError(t, seeder.Run(3, 5))

	require.NoError(t, seeder.ClearAll())

	for _, table := range []string{"users", "posts", "comments", "likes"} {
		var count int64
		db.Table(table).Count(&count)
		assert.Zero(t, count, table)
	}
}

package cache

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"

	"inkwell/internal/models"
)

func TestTombstones_AddDrain(t *testing.T) {
	tombs := NewTombstones(8)
	tombs.Add(models.PostID(1))
	tombs.Add(models.PostID(2))

	assert.Equal(t, 2, tombs.Len())
	assert.Equal(t, []models.PostID{1, 2}, tombs.Drain())
	assert.Equal(t, 0, tombs.Len())
	assert.Empty(t, tombs.Drain())
}

func TestTombstones_CapacityDropsOldest(t *testing.T) {
	tombs := NewTombstones(2)
	tombs.Add(models.PostID(1))
	tombs.Add(models.PostID(2))
	tombs.Add(models.PostID(3))

	assert.Equal(t, []models.PostID{2, 3}, tombs.Drain())
}

func TestTombstones_ConcurrentAdd(t *testing.T) {
	tombs := NewTombstones(1000)
	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			tombs.Add(models.PostID(id))
		}(i)
	}
	wg.Wait()
	assert.Equal(t, 100, tombs.Len())
}

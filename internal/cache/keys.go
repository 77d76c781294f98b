package cache

import (
	"context"
	"fmt"
	"time"

	"inkwell/internal/models"
)

const (
	userKeyPrefix = "user:%d"
	postKeyPrefix = "post:%d"
)

const (
	UserTTL = 5 * time.Minute
	PostTTL = 30 * time.Minute
)

func UserKey(id models.UserID) string {
	return fmt.Sprintf(userKeyPrefix, id)
}

func PostKey(id models.PostID) string {
	return fmt.Sprintf(postKeyPrefix, id)
}

func InvalidateUser(ctx context.Context, id models.UserID) {
	Invalidate(ctx, UserKey(id))
}

func InvalidatePost(ctx context.Context, id models.PostID) {
	Invalidate(ctx, PostKey(id))
}

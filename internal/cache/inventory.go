package cache

import (
	"context"
	"fmt"
	"time"
)

const (
	UserKeyPrefix    = "ecotrama:user:%s"
	ProductKeyPrefix = "ecotrama:product:%s"
	LeaderboardKey   = "ecotrama:leaderboard"
)

const (
	UserTTL = 5 * time.Minute
	// Products are static reference data, safe to hold longer.
	ProductTTL = time.Hour
	// Leaderboard changes on every scan, keep it short.
	LeaderboardTTL = 30 * time.Second
)

func UserKey(userID string) string {
	return fmt.Sprintf(UserKeyPrefix, userID)
}

func ProductKey(barcode string) string {
	return fmt.Sprintf(ProductKeyPrefix, barcode)
}

func Invalidate(ctx context.Context, key string) {
	if client != nil {
		client.Del(ctx, key)
	}
}

func InvalidateUser(ctx context.Context, userID string) {
	Invalidate(ctx, UserKey(userID))
}

func InvalidateLeaderboard(ctx context.Context) {
	Invalidate(ctx, LeaderboardKey)
}

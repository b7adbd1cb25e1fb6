package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	fieldPosts     = "posts_count"
	fieldFollowers = "followers_count"
	fieldFollowing = "following_count"
)

// Counters holds the cached per-user activity counters.
type Counters struct {
	PostsCount     int64
	FollowersCount int64
	FollowingCount int64
}

// CounterCache keeps per-user counters in a redis hash keyed user:{id}.
// It is advisory: a cache failure degrades reads to zero and never
// fails the calling request.
type CounterCache struct {
	client *redis.Client
}

// NewCounterCache ...
func NewCounterCache(addr, password string) *CounterCache {
	client := redis.NewClient(&redis.Options{
		Addr:         addr,
		Password:     password,
		DialTimeout:  2 * time.Second,
		ReadTimeout:  2 * time.Second,
		WriteTimeout: 2 * time.Second,
	})
	return &CounterCache{client: client}
}

func key(userID uuid.UUID) string {
	return fmt.Sprintf("user:%s", userID)
}

// SetFollowCounts overwrites the follower/following fields for a user.
func (c *CounterCache) SetFollowCounts(ctx context.Context, userID uuid.UUID, followers, following int64) error {
	return c.client.HSet(ctx, key(userID),
		fieldFollowers, followers,
		fieldFollowing, following,
	).Err()
}

// SetPostsCount ...
func (c *CounterCache) SetPostsCount(ctx context.Context, userID uuid.UUID, posts int64) error {
	return c.client.HSet(ctx, key(userID), fieldPosts, posts).Err()
}

// Get reads the counter hash. Missing keys and fields read as zero.
func (c *CounterCache) Get(ctx context.Context, userID uuid.UUID) (Counters, error) {
	var counters Counters
	values, err := c.client.HGetAll(ctx, key(userID)).Result()
	if err != nil {
		return counters, err
	}

	parse := func(field string) int64 {
		var n int64
		fmt.Sscanf(values[field], "%d", &n)
		return n
	}
	counters.PostsCount = parse(fieldPosts)
	counters.FollowersCount = parse(fieldFollowers)
	counters.FollowingCount = parse(fieldFollowing)
	return counters, nil
}

// Ping verifies connectivity at startup.
func (c *CounterCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

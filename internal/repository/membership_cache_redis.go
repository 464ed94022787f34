package repository

import (
	"context"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

const membershipKeyPrefix = "membership:"

type redisMembershipCache struct {
	client *redis.Client
}

func NewRedisMembershipCache(client *redis.Client) MembershipCache {
	return &redisMembershipCache{client: client}
}

func membershipKey(externalID int64) string {
	return membershipKeyPrefix + strconv.FormatInt(externalID, 10)
}

func (c *redisMembershipCache) MarkMember(ctx context.Context, externalID int64, ttl time.Duration) error {
	return c.client.Set(ctx, membershipKey(externalID), "1", ttl).Err()
}

func (c *redisMembershipCache) IsMember(ctx context.Context, externalID int64) (bool, error) {
	n, err := c.client.Exists(ctx, membershipKey(externalID)).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

package repository

import (
	"context"
	"sync"
	"time"
)

type memberEntry struct {
	expiresAt time.Time
	hasTTL    bool
}

func (e memberEntry) isExpired() bool {
	return e.hasTTL && time.Now().After(e.expiresAt)
}

type memoryMembershipCache struct {
	mu      sync.RWMutex
	members map[int64]memberEntry
}

func NewMemoryMembershipCache() MembershipCache {
	return &memoryMembershipCache{
		members: make(map[int64]memberEntry),
	}
}

func (c *memoryMembershipCache) MarkMember(_ context.Context, externalID int64, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry := memberEntry{}
	if ttl > 0 {
		entry.hasTTL = true
		entry.expiresAt = time.Now().Add(ttl)
	}
	c.members[externalID] = entry
	return nil
}

func (c *memoryMembershipCache) IsMember(_ context.Context, externalID int64) (bool, error) {
	c.mu.RLock()
	entry, ok := c.members[externalID]
	c.mu.RUnlock()

	if !ok || entry.isExpired() {
		if ok && entry.isExpired() {
			c.mu.Lock()
			delete(c.members, externalID)
			c.mu.Unlock()
		}
		return false, nil
	}
	return true, nil
}

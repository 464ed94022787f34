package repository

import (
	"context"
	"testing"
	"time"
)

func TestMemoryMembershipCache(t *testing.T) {
	cache := NewMemoryMembershipCache()
	ctx := context.Background()

	ok, err := cache.IsMember(ctx, 42)
	if err != nil {
		t.Fatalf("lookup: %v", err)
	}
	if ok {
		t.Fatal("expected miss for unseen id")
	}

	if err := cache.MarkMember(ctx, 42, time.Minute); err != nil {
		t.Fatalf("mark: %v", err)
	}
	ok, err = cache.IsMember(ctx, 42)
	if err != nil {
		t.Fatalf("lookup: %v", err)
	}
	if !ok {
		t.Fatal("expected hit after mark")
	}
}

func TestMemoryMembershipCacheExpiry(t *testing.T) {
	cache := NewMemoryMembershipCache()
	ctx := context.Background()

	if err := cache.MarkMember(ctx, 42, 10*time.Millisecond); err != nil {
		t.Fatalf("mark: %v", err)
	}
	time.Sleep(20 * time.Millisecond)

	ok, err := cache.IsMember(ctx, 42)
	if err != nil {
		t.Fatalf("lookup: %v", err)
	}
	if ok {
		t.Fatal("expected expiry after TTL")
	}
}

func TestMemoryMembershipCacheZeroTTLNeverExpires(t *testing.T) {
	cache := NewMemoryMembershipCache()
	ctx := context.Background()

	if err := cache.MarkMember(ctx, 42, 0); err != nil {
		t.Fatalf("mark: %v", err)
	}
	time.Sleep(10 * time.Millisecond)

	ok, err := cache.IsMember(ctx, 42)
	if err != nil {
		t.Fatalf("lookup: %v", err)
	}
	if !ok {
		t.Fatal("expected entry without TTL to persist")
	}
}

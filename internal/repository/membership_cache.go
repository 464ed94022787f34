package repository

import (
	"context"
	"time"
)

// MembershipCache remembers recent positive channel-membership checks so the
// admission gate does not hit the membership collaborator on every code
// submission. Only positive verdicts are cached; a denial must always be
// re-checkable immediately after the participant subscribes.
// Implementations: Redis (production) or in-memory (local dev / tests).
type MembershipCache interface {
	MarkMember(ctx context.Context, externalID int64, ttl time.Duration) error
	IsMember(ctx context.Context, externalID int64) (bool, error)
}

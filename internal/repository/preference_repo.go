package repository

import (
	"context"

	"codehunt/giveaway/internal/model"
)

type PreferenceRepository interface {
	// EnsureDefault creates the default (all opted-in) row if none exists.
	EnsureDefault(ctx context.Context, participantID int64) error
	// Get returns nil, nil when no preference row exists.
	Get(ctx context.Context, participantID int64) (*model.Preference, error)
	// Toggle flips the given flag and returns the updated preferences.
	Toggle(ctx context.Context, participantID int64, flag model.PreferenceFlag) (*model.Preference, error)
	// ListSubscribers returns the external ids of participants with the flag enabled.
	ListSubscribers(ctx context.Context, flag model.PreferenceFlag) ([]int64, error)
}

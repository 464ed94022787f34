package service

import (
	"context"
	"fmt"

	"codehunt/giveaway/internal/model"
	"codehunt/giveaway/internal/repository"
)

type PreferenceService interface {
	// Get returns the participant's preferences, creating the default
	// (all opted-in) row on first read.
	Get(ctx context.Context, externalID int64) (*model.Preference, error)
	// Toggle flips one flag. Unknown flags are a caller error.
	Toggle(ctx context.Context, externalID int64, flag model.PreferenceFlag) (*model.Preference, error)
}

type preferenceService struct {
	preferenceRepo repository.PreferenceRepository
}

func NewPreferenceService(preferenceRepo repository.PreferenceRepository) PreferenceService {
	return &preferenceService{preferenceRepo: preferenceRepo}
}

func (s *preferenceService) Get(ctx context.Context, externalID int64) (*model.Preference, error) {
	pref, err := s.preferenceRepo.Get(ctx, externalID)
	if err != nil {
		return nil, fmt.Errorf("get preferences: %w", err)
	}
	if pref != nil {
		return pref, nil
	}

	if err := s.preferenceRepo.EnsureDefault(ctx, externalID); err != nil {
		return nil, fmt.Errorf("create default preferences: %w", err)
	}
	pref, err = s.preferenceRepo.Get(ctx, externalID)
	if err != nil {
		return nil, fmt.Errorf("get preferences: %w", err)
	}
	return pref, nil
}

func (s *preferenceService) Toggle(ctx context.Context, externalID int64, flag model.PreferenceFlag) (*model.Preference, error) {
	if !model.ValidPreferenceFlag(flag) {
		return nil, ErrUnknownPreference
	}
	pref, err := s.preferenceRepo.Toggle(ctx, externalID, flag)
	if err != nil {
		return nil, fmt.Errorf("toggle preference: %w", err)
	}
	return pref, nil
}

package repository

import (
	"context"

	"codehunt/giveaway/internal/model"
)

type ParticipantRepository interface {
	// GetByExternalID returns nil, nil when the participant does not exist.
	GetByExternalID(ctx context.Context, externalID int64) (*model.Participant, error)
	// Create inserts the participant. A row already present for the same
	// external id is left unchanged, so racing first contacts resolve to a
	// single winner instead of an error.
	Create(ctx context.Context, participant *model.Participant) error
	// UpdateContactInfo overwrites the mutable display fields only.
	UpdateContactInfo(ctx context.Context, externalID int64, displayName, handle string) error
	CodeExists(ctx context.Context, participantCode string) (bool, error)
}

package repository

import (
	"context"

	"codehunt/giveaway/internal/model"
)

// EntryCounts aggregates ledger totals for the stats endpoint.
type EntryCounts struct {
	Entries      int64 `json:"entries"`
	Participants int64 `json:"participants"`
	Codes        int64 `json:"codes"`
}

type EntryRepository interface {
	// GetByParticipantAndCode returns nil, nil when no entry exists for the pair.
	GetByParticipantAndCode(ctx context.Context, participantID int64, code string) (*model.Entry, error)
	// CreateNext assigns entry.EntryNumber = max(entry_number)+1 and inserts
	// the row. The read and the insert are serialized against concurrent
	// callers so numbers are never reused.
	CreateNext(ctx context.Context, entry *model.Entry) error
	// ListByParticipant returns a participant's entries in redemption order.
	ListByParticipant(ctx context.Context, participantID int64) ([]model.Entry, error)
	// ListAll returns every entry ordered by ledger id with Participant preloaded.
	ListAll(ctx context.Context) ([]model.Entry, error)
	Counts(ctx context.Context) (EntryCounts, error)
}

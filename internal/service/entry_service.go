package service

import (
	"context"
	"fmt"

	"codehunt/giveaway/internal/model"
	"codehunt/giveaway/internal/repository"
)

// RegisterResult is the outcome of a code redemption.
type RegisterResult struct {
	EntryNumber     int    `json:"entry_number"`
	IsNew           bool   `json:"is_new"`
	ParticipantCode string `json:"participant_code"`
}

// EntryItem is one redeemed code as shown back to its participant.
type EntryItem struct {
	Code        string `json:"code"`
	EntryNumber int    `json:"entry_number"`
}

// ParticipantEntries lists a participant's redemptions.
type ParticipantEntries struct {
	ParticipantCode string      `json:"participant_code"`
	Entries         []EntryItem `json:"entries"`
}

// ExportRow is one ledger row for the operator export. Rendering (CSV or
// otherwise) is up to the caller.
type ExportRow struct {
	ExternalID  int64  `json:"external_id"`
	Handle      string `json:"handle"`
	Code        string `json:"code"`
	EntryNumber int    `json:"entry_number"`
}

type EntryService interface {
	// RegisterEntry records one code redemption. It is idempotent: a repeat
	// submission of the same code by the same participant returns the
	// original entry number with IsNew false.
	RegisterEntry(ctx context.Context, externalID int64, displayName, handle, code string) (*RegisterResult, error)
	GetEntriesFor(ctx context.Context, externalID int64) (*ParticipantEntries, error)
	ExportAll(ctx context.Context) ([]ExportRow, error)
	Stats(ctx context.Context) (repository.EntryCounts, error)
}

type entryService struct {
	registry        RegistryService
	participantRepo repository.ParticipantRepository
	entryRepo       repository.EntryRepository
	codes           *CodeSet
}

func NewEntryService(
	registry RegistryService,
	participantRepo repository.ParticipantRepository,
	entryRepo repository.EntryRepository,
	codes *CodeSet,
) EntryService {
	return &entryService{
		registry:        registry,
		participantRepo: participantRepo,
		entryRepo:       entryRepo,
		codes:           codes,
	}
}

func (s *entryService) RegisterEntry(ctx context.Context, externalID int64, displayName, handle, code string) (*RegisterResult, error) {
	normalized := NormalizeCode(code)
	if normalized == "" {
		return nil, ErrEmptyCode
	}
	if !s.codes.Contains(normalized) {
		return nil, ErrUnknownCode
	}

	participantCode, err := s.registry.EnsureParticipant(ctx, externalID, displayName, handle)
	if err != nil {
		return nil, err
	}

	existing, err := s.entryRepo.GetByParticipantAndCode(ctx, externalID, normalized)
	if err != nil {
		return nil, fmt.Errorf("lookup entry: %w", err)
	}
	if existing != nil {
		return &RegisterResult{
			EntryNumber:     existing.EntryNumber,
			IsNew:           false,
			ParticipantCode: participantCode,
		}, nil
	}

	entry := &model.Entry{
		ParticipantID: externalID,
		Code:          normalized,
	}
	if err := s.entryRepo.CreateNext(ctx, entry); err != nil {
		// A concurrent retransmission of the same pair may have won the
		// insert; repeat submissions are a normal idempotent outcome.
		dup, lookupErr := s.entryRepo.GetByParticipantAndCode(ctx, externalID, normalized)
		if lookupErr == nil && dup != nil {
			return &RegisterResult{
				EntryNumber:     dup.EntryNumber,
				IsNew:           false,
				ParticipantCode: participantCode,
			}, nil
		}
		return nil, fmt.Errorf("create entry: %w", err)
	}

	return &RegisterResult{
		EntryNumber:     entry.EntryNumber,
		IsNew:           true,
		ParticipantCode: participantCode,
	}, nil
}

func (s *entryService) GetEntriesFor(ctx context.Context, externalID int64) (*ParticipantEntries, error) {
	participant, err := s.participantRepo.GetByExternalID(ctx, externalID)
	if err != nil {
		return nil, fmt.Errorf("lookup participant: %w", err)
	}
	if participant == nil {
		return nil, ErrParticipantNotFound
	}

	entries, err := s.entryRepo.ListByParticipant(ctx, externalID)
	if err != nil {
		return nil, fmt.Errorf("list entries: %w", err)
	}

	result := &ParticipantEntries{
		ParticipantCode: participant.ParticipantCode,
		Entries:         make([]EntryItem, 0, len(entries)),
	}
	for _, e := range entries {
		result.Entries = append(result.Entries, EntryItem{Code: e.Code, EntryNumber: e.EntryNumber})
	}
	return result, nil
}

func (s *entryService) ExportAll(ctx context.Context) ([]ExportRow, error) {
	entries, err := s.entryRepo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list entries: %w", err)
	}

	rows := make([]ExportRow, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, ExportRow{
			ExternalID:  e.ParticipantID,
			Handle:      e.Participant.Handle,
			Code:        e.Code,
			EntryNumber: e.EntryNumber,
		})
	}
	return rows, nil
}

func (s *entryService) Stats(ctx context.Context) (repository.EntryCounts, error) {
	return s.entryRepo.Counts(ctx)
}

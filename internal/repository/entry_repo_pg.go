package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"codehunt/giveaway/internal/model"
)

// entryNumberLockKey scopes the advisory lock that serializes entry-number
// assignment. Any constant works as long as every writer uses the same one.
const entryNumberLockKey = 815221

type pgEntryRepository struct {
	db *gorm.DB
}

func NewPGEntryRepository(db *gorm.DB) EntryRepository {
	return &pgEntryRepository{db: db}
}

func (r *pgEntryRepository) GetByParticipantAndCode(ctx context.Context, participantID int64, code string) (*model.Entry, error) {
	var entry model.Entry
	err := r.db.WithContext(ctx).
		Where("participant_id = ? AND code = ?", participantID, code).
		First(&entry).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

func (r *pgEntryRepository) CreateNext(ctx context.Context, entry *model.Entry) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Held until commit, so no concurrent transaction can read the same
		// maximum before this insert lands.
		if err := tx.Exec("SELECT pg_advisory_xact_lock(?)", entryNumberLockKey).Error; err != nil {
			return err
		}

		var max int64
		if err := tx.Model(&model.Entry{}).
			Select("COALESCE(MAX(entry_number), 0)").
			Scan(&max).Error; err != nil {
			return err
		}

		entry.EntryNumber = int(max) + 1
		return tx.Create(entry).Error
	})
}

func (r *pgEntryRepository) ListByParticipant(ctx context.Context, participantID int64) ([]model.Entry, error) {
	var entries []model.Entry
	err := r.db.WithContext(ctx).
		Where("participant_id = ?", participantID).
		Order("created_at").
		Find(&entries).Error
	if err != nil {
		return nil, err
	}
	return entries, nil
}

func (r *pgEntryRepository) ListAll(ctx context.Context) ([]model.Entry, error) {
	var entries []model.Entry
	err := r.db.WithContext(ctx).
		Preload("Participant").
		Order("id").
		Find(&entries).Error
	if err != nil {
		return nil, err
	}
	return entries, nil
}

func (r *pgEntryRepository) Counts(ctx context.Context) (EntryCounts, error) {
	var counts EntryCounts

	if err := r.db.WithContext(ctx).Model(&model.Entry{}).
		Count(&counts.Entries).Error; err != nil {
		return EntryCounts{}, err
	}
	if err := r.db.WithContext(ctx).Model(&model.Entry{}).
		Distinct("participant_id").Count(&counts.Participants).Error; err != nil {
		return EntryCounts{}, err
	}
	if err := r.db.WithContext(ctx).Model(&model.Entry{}).
		Distinct("code").Count(&counts.Codes).Error; err != nil {
		return EntryCounts{}, err
	}
	return counts, nil
}

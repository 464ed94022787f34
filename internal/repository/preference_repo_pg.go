package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"codehunt/giveaway/internal/model"
)

// flagColumns maps the closed flag enum to column names. Flags never reach
// SQL as raw caller input.
var flagColumns = map[model.PreferenceFlag]string{
	model.PreferenceFlagResults: "notify_results",
	model.PreferenceFlagVideos:  "notify_videos",
	model.PreferenceFlagStreams: "notify_streams",
}

type pgPreferenceRepository struct {
	db *gorm.DB
}

func NewPGPreferenceRepository(db *gorm.DB) PreferenceRepository {
	return &pgPreferenceRepository{db: db}
}

func (r *pgPreferenceRepository) EnsureDefault(ctx context.Context, participantID int64) error {
	pref := model.Preference{
		ParticipantID: participantID,
		NotifyResults: true,
		NotifyVideos:  true,
		NotifyStreams: true,
	}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&pref).Error
}

func (r *pgPreferenceRepository) Get(ctx context.Context, participantID int64) (*model.Preference, error) {
	var pref model.Preference
	err := r.db.WithContext(ctx).First(&pref, "participant_id = ?", participantID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &pref, nil
}

func (r *pgPreferenceRepository) Toggle(ctx context.Context, participantID int64, flag model.PreferenceFlag) (*model.Preference, error) {
	column, ok := flagColumns[flag]
	if !ok {
		return nil, fmt.Errorf("unknown preference flag %q", flag)
	}

	if err := r.EnsureDefault(ctx, participantID); err != nil {
		return nil, err
	}

	err := r.db.WithContext(ctx).
		Model(&model.Preference{}).
		Where("participant_id = ?", participantID).
		Update(column, gorm.Expr("NOT "+column)).
		Error
	if err != nil {
		return nil, err
	}
	return r.Get(ctx, participantID)
}

func (r *pgPreferenceRepository) ListSubscribers(ctx context.Context, flag model.PreferenceFlag) ([]int64, error) {
	column, ok := flagColumns[flag]
	if !ok {
		return nil, fmt.Errorf("unknown preference flag %q", flag)
	}

	var ids []int64
	err := r.db.WithContext(ctx).
		Model(&model.Preference{}).
		Where(column+" = true").
		Pluck("participant_id", &ids).Error
	if err != nil {
		return nil, err
	}
	return ids, nil
}

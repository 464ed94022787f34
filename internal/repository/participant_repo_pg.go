package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"codehunt/giveaway/internal/model"
)

type pgParticipantRepository struct {
	db *gorm.DB
}

func NewPGParticipantRepository(db *gorm.DB) ParticipantRepository {
	return &pgParticipantRepository{db: db}
}

func (r *pgParticipantRepository) GetByExternalID(ctx context.Context, externalID int64) (*model.Participant, error) {
	var participant model.Participant
	err := r.db.WithContext(ctx).First(&participant, "external_id = ?", externalID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &participant, nil
}

func (r *pgParticipantRepository) Create(ctx context.Context, participant *model.Participant) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "external_id"}},
			DoNothing: true,
		}).
		Create(participant).Error
}

func (r *pgParticipantRepository) UpdateContactInfo(ctx context.Context, externalID int64, displayName, handle string) error {
	return r.db.WithContext(ctx).
		Model(&model.Participant{}).
		Where("external_id = ?", externalID).
		Updates(map[string]interface{}{
			"display_name": displayName,
			"handle":       handle,
		}).Error
}

func (r *pgParticipantRepository) CodeExists(ctx context.Context, participantCode string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.Participant{}).
		Where("participant_code = ?", participantCode).
		Count(&count).Error
	return count > 0, err
}

package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"codehunt/giveaway/internal/repository"
)

type AdmissionService interface {
	// IsAdmitted reports whether the participant may have redemptions
	// accepted. The gate fails closed: any collaborator error or unknown
	// verdict denies admission. Callers may simply re-invoke after the
	// participant subscribes.
	IsAdmitted(ctx context.Context, externalID int64) bool
}

type admissionService struct {
	client       MembershipClient
	cache        repository.MembershipCache
	cacheTTL     time.Duration
	checkTimeout time.Duration
	logger       *zap.Logger
}

func NewAdmissionService(
	client MembershipClient,
	cache repository.MembershipCache,
	cacheTTL time.Duration,
	checkTimeout time.Duration,
	logger *zap.Logger,
) AdmissionService {
	return &admissionService{
		client:       client,
		cache:        cache,
		cacheTTL:     cacheTTL,
		checkTimeout: checkTimeout,
		logger:       logger,
	}
}

func (s *admissionService) IsAdmitted(ctx context.Context, externalID int64) bool {
	cached, err := s.cache.IsMember(ctx, externalID)
	if err != nil {
		// Cache trouble is not a denial; fall through to the live check.
		s.logger.Warn("membership cache lookup failed",
			zap.Int64("external_id", externalID), zap.Error(err))
	} else if cached {
		return true
	}

	checkCtx, cancel := context.WithTimeout(ctx, s.checkTimeout)
	defer cancel()

	status, err := s.client.CheckMembership(checkCtx, externalID)
	if err != nil {
		s.logger.Warn("membership check failed, denying admission",
			zap.Int64("external_id", externalID), zap.Error(err))
		return false
	}
	if status != MembershipMember {
		return false
	}

	if err := s.cache.MarkMember(ctx, externalID, s.cacheTTL); err != nil {
		s.logger.Warn("membership cache write failed",
			zap.Int64("external_id", externalID), zap.Error(err))
	}
	return true
}

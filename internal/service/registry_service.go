package service

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"

	"codehunt/giveaway/internal/model"
	"codehunt/giveaway/internal/repository"
)

type RegistryService interface {
	// EnsureParticipant creates the participant on first contact and assigns
	// an immutable participant code; on later contacts it refreshes the
	// display fields and returns the existing code.
	EnsureParticipant(ctx context.Context, externalID int64, displayName, handle string) (string, error)
}

type registryService struct {
	participantRepo repository.ParticipantRepository
	preferenceRepo  repository.PreferenceRepository
	codeLength      int
	codeAlphabet    string

	// generate is swappable in tests to force collisions.
	generate func(length int, alphabet string) (string, error)
}

func NewRegistryService(
	participantRepo repository.ParticipantRepository,
	preferenceRepo repository.PreferenceRepository,
	codeLength int,
	codeAlphabet string,
) RegistryService {
	return &registryService{
		participantRepo: participantRepo,
		preferenceRepo:  preferenceRepo,
		codeLength:      codeLength,
		codeAlphabet:    codeAlphabet,
		generate:        generateParticipantCode,
	}
}

func (s *registryService) EnsureParticipant(ctx context.Context, externalID int64, displayName, handle string) (string, error) {
	existing, err := s.participantRepo.GetByExternalID(ctx, externalID)
	if err != nil {
		return "", fmt.Errorf("lookup participant: %w", err)
	}
	if existing != nil {
		if err := s.participantRepo.UpdateContactInfo(ctx, externalID, displayName, handle); err != nil {
			return "", fmt.Errorf("update participant: %w", err)
		}
		return existing.ParticipantCode, nil
	}

	code, err := s.uniqueParticipantCode(ctx)
	if err != nil {
		return "", err
	}

	participant := &model.Participant{
		ExternalID:      externalID,
		DisplayName:     displayName,
		Handle:          handle,
		ParticipantCode: code,
	}
	if err := s.participantRepo.Create(ctx, participant); err != nil {
		return "", fmt.Errorf("create participant: %w", err)
	}

	// Concurrent first contacts race here; Create keeps whichever row landed
	// first, so read back the code that actually won.
	stored, err := s.participantRepo.GetByExternalID(ctx, externalID)
	if err != nil {
		return "", fmt.Errorf("lookup participant: %w", err)
	}
	if stored != nil {
		code = stored.ParticipantCode
	}

	// Safe to repeat; the row is created with ON CONFLICT DO NOTHING.
	if err := s.preferenceRepo.EnsureDefault(ctx, externalID); err != nil {
		return "", fmt.Errorf("create default preferences: %w", err)
	}
	return code, nil
}

// uniqueParticipantCode samples candidates until one is unassigned. A
// collision is astronomically unlikely at reasonable alphabet sizes but the
// check stays, matching the uniqueness guarantee on the column.
func (s *registryService) uniqueParticipantCode(ctx context.Context) (string, error) {
	for {
		candidate, err := s.generate(s.codeLength, s.codeAlphabet)
		if err != nil {
			return "", fmt.Errorf("generate participant code: %w", err)
		}
		exists, err := s.participantRepo.CodeExists(ctx, candidate)
		if err != nil {
			return "", fmt.Errorf("check participant code: %w", err)
		}
		if !exists {
			return candidate, nil
		}
	}
}

// generateParticipantCode samples length characters uniformly from alphabet.
func generateParticipantCode(length int, alphabet string) (string, error) {
	if length <= 0 || alphabet == "" {
		return "", fmt.Errorf("invalid participant code settings: length=%d alphabet=%q", length, alphabet)
	}
	max := big.NewInt(int64(len(alphabet)))
	b := make([]byte, length)
	for i := range b {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		b[i] = alphabet[n.Int64()]
	}
	return string(b), nil
}

package service

import (
	"context"
	"fmt"
	"math/rand"
	"sort"
	"sync"
	"time"

	"go.uber.org/zap"

	"codehunt/giveaway/internal/repository"
)

// Winner carries everything needed to render a draw announcement.
type Winner struct {
	ExternalID      int64    `json:"external_id"`
	DisplayName     string   `json:"display_name"`
	Handle          string   `json:"handle"`
	ParticipantCode string   `json:"participant_code"`
	Weight          int      `json:"weight"`
	Codes           []string `json:"codes"`
}

type LotteryService interface {
	// DrawWinner performs a weighted random draw where a participant's odds
	// scale with the number of distinct codes they redeemed. Returns nil
	// when no participant has positive weight; that is not an error.
	DrawWinner(ctx context.Context) (*Winner, error)
}

type lotteryService struct {
	entryRepo repository.EntryRepository
	logger    *zap.Logger

	mu  sync.Mutex
	rng *rand.Rand
}

func NewLotteryService(entryRepo repository.EntryRepository, logger *zap.Logger) LotteryService {
	return NewLotteryServiceWithSource(entryRepo, logger, rand.NewSource(time.Now().UnixNano()))
}

// NewLotteryServiceWithSource allows a seeded source so draws are
// reproducible in tests.
func NewLotteryServiceWithSource(entryRepo repository.EntryRepository, logger *zap.Logger, src rand.Source) LotteryService {
	return &lotteryService{
		entryRepo: entryRepo,
		logger:    logger,
		rng:       rand.New(src),
	}
}

type poolEntry struct {
	winner Winner
	weight int
}

func (s *lotteryService) DrawWinner(ctx context.Context) (*Winner, error) {
	pool, total, err := s.buildPool(ctx)
	if err != nil {
		return nil, err
	}
	if len(pool) == 0 {
		return nil, nil
	}

	s.mu.Lock()
	r := s.rng.Float64() * float64(total)
	fallback := s.rng.Intn(len(pool))
	s.mu.Unlock()

	upto := 0.0
	for i := range pool {
		w := float64(pool[i].weight)
		if upto+w >= r {
			return &pool[i].winner, nil
		}
		upto += w
	}

	// Only reachable if floating-point accumulation drifted below r.
	s.logger.Warn("weighted walk exhausted the pool, using uniform fallback",
		zap.Int("pool_size", len(pool)), zap.Float64("r", r), zap.Int("total", total))
	return &pool[fallback].winner, nil
}

// buildPool reads the ledger in one snapshot and groups entries per
// participant in ascending external-id order, so a fixed snapshot and a
// fixed random value always produce the same winner.
func (s *lotteryService) buildPool(ctx context.Context) ([]poolEntry, int, error) {
	entries, err := s.entryRepo.ListAll(ctx)
	if err != nil {
		return nil, 0, fmt.Errorf("snapshot entries: %w", err)
	}

	byParticipant := make(map[int64]*poolEntry)
	seen := make(map[int64]map[string]struct{})
	for _, e := range entries {
		pe, ok := byParticipant[e.ParticipantID]
		if !ok {
			pe = &poolEntry{winner: Winner{
				ExternalID:      e.ParticipantID,
				DisplayName:     e.Participant.DisplayName,
				Handle:          e.Participant.Handle,
				ParticipantCode: e.Participant.ParticipantCode,
			}}
			byParticipant[e.ParticipantID] = pe
			seen[e.ParticipantID] = make(map[string]struct{})
		}
		if _, dup := seen[e.ParticipantID][e.Code]; dup {
			continue
		}
		seen[e.ParticipantID][e.Code] = struct{}{}
		pe.winner.Codes = append(pe.winner.Codes, e.Code)
		pe.weight++
	}

	pool := make([]poolEntry, 0, len(byParticipant))
	total := 0
	for _, pe := range byParticipant {
		if pe.weight <= 0 {
			continue
		}
		pe.winner.Weight = pe.weight
		pool = append(pool, *pe)
		total += pe.weight
	}
	sort.Slice(pool, func(i, j int) bool {
		return pool[i].winner.ExternalID < pool[j].winner.ExternalID
	})
	return pool, total, nil
}

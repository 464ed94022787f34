package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"codehunt/giveaway/internal/model"
	"codehunt/giveaway/internal/repository"
)

type BroadcastStatus string

const (
	BroadcastStatusRunning  BroadcastStatus = "running"
	BroadcastStatusFinished BroadcastStatus = "finished"
)

// BroadcastSnapshot is a point-in-time view of a fan-out job.
type BroadcastSnapshot struct {
	ID         uuid.UUID            `json:"id"`
	Category   model.PreferenceFlag `json:"category"`
	Status     BroadcastStatus      `json:"status"`
	Total      int                  `json:"total"`
	Delivered  int                  `json:"delivered"`
	Failed     int                  `json:"failed"`
	StartedAt  time.Time            `json:"started_at"`
	FinishedAt *time.Time           `json:"finished_at,omitempty"`
}

// BroadcastJob is the handle of one detached fan-out. Once started it runs
// to completion; there is no cancellation. Done is closed when the final
// tally is available.
type BroadcastJob struct {
	id       uuid.UUID
	category model.PreferenceFlag

	mu         sync.Mutex
	status     BroadcastStatus
	total      int
	delivered  int
	failed     int
	startedAt  time.Time
	finishedAt *time.Time

	done chan struct{}
}

func (j *BroadcastJob) ID() uuid.UUID { return j.id }

// Done is closed once the job has finished and the tally is final.
func (j *BroadcastJob) Done() <-chan struct{} { return j.done }

func (j *BroadcastJob) Snapshot() BroadcastSnapshot {
	j.mu.Lock()
	defer j.mu.Unlock()
	return BroadcastSnapshot{
		ID:         j.id,
		Category:   j.category,
		Status:     j.status,
		Total:      j.total,
		Delivered:  j.delivered,
		Failed:     j.failed,
		StartedAt:  j.startedAt,
		FinishedAt: j.finishedAt,
	}
}

func (j *BroadcastJob) recordDelivered() {
	j.mu.Lock()
	j.delivered++
	j.mu.Unlock()
}

func (j *BroadcastJob) recordFailed() {
	j.mu.Lock()
	j.failed++
	j.mu.Unlock()
}

func (j *BroadcastJob) finish() {
	j.mu.Lock()
	now := time.Now()
	j.status = BroadcastStatusFinished
	j.finishedAt = &now
	j.mu.Unlock()
	close(j.done)
}

type BroadcastService interface {
	// Start resolves the subscriber list for the category and launches a
	// detached fan-out. The returned job reports progress and completion;
	// the call itself does not block on delivery. An empty subscriber list
	// yields an already-finished job with a zero tally and the transport is
	// never contacted.
	Start(ctx context.Context, category model.PreferenceFlag, message string) (*BroadcastJob, error)
	Status(id uuid.UUID) (*BroadcastJob, error)
}

type broadcastService struct {
	preferenceRepo  repository.PreferenceRepository
	transport       Transport
	batchSize       int
	batchInterval   time.Duration
	deliveryTimeout time.Duration
	logger          *zap.Logger

	mu   sync.Mutex
	jobs map[uuid.UUID]*BroadcastJob
}

func NewBroadcastService(
	preferenceRepo repository.PreferenceRepository,
	transport Transport,
	batchSize int,
	batchInterval time.Duration,
	deliveryTimeout time.Duration,
	logger *zap.Logger,
) BroadcastService {
	if batchSize <= 0 {
		batchSize = 25
	}
	return &broadcastService{
		preferenceRepo:  preferenceRepo,
		transport:       transport,
		batchSize:       batchSize,
		batchInterval:   batchInterval,
		deliveryTimeout: deliveryTimeout,
		logger:          logger,
		jobs:            make(map[uuid.UUID]*BroadcastJob),
	}
}

func (s *broadcastService) Start(ctx context.Context, category model.PreferenceFlag, message string) (*BroadcastJob, error) {
	if !model.ValidPreferenceFlag(category) {
		return nil, ErrUnknownPreference
	}

	subscribers, err := s.preferenceRepo.ListSubscribers(ctx, category)
	if err != nil {
		return nil, fmt.Errorf("list subscribers: %w", err)
	}

	job := &BroadcastJob{
		id:        uuid.New(),
		category:  category,
		status:    BroadcastStatusRunning,
		total:     len(subscribers),
		startedAt: time.Now(),
		done:      make(chan struct{}),
	}

	s.mu.Lock()
	s.jobs[job.id] = job
	s.mu.Unlock()

	if len(subscribers) == 0 {
		job.finish()
		return job, nil
	}

	// Detached from the triggering request: the fan-out keeps running after
	// the caller's context is gone and cannot be cancelled.
	go s.run(context.Background(), job, subscribers, message)
	return job, nil
}

func (s *broadcastService) Status(id uuid.UUID) (*BroadcastJob, error) {
	s.mu.Lock()
	job, ok := s.jobs[id]
	s.mu.Unlock()
	if !ok {
		return nil, ErrBroadcastNotFound
	}
	return job, nil
}

func (s *broadcastService) run(ctx context.Context, job *BroadcastJob, subscribers []int64, message string) {
	defer job.finish()

	// One batch per interval; the first batch goes out immediately.
	limiter := rate.NewLimiter(rate.Every(s.batchInterval), 1)
	if s.batchInterval <= 0 {
		limiter = rate.NewLimiter(rate.Inf, 1)
	}

	for start := 0; start < len(subscribers); start += s.batchSize {
		if err := limiter.Wait(ctx); err != nil {
			// Only possible if ctx is cancelled, which Background never is.
			s.logger.Error("broadcast pacing interrupted", zap.Error(err))
			return
		}

		end := start + s.batchSize
		if end > len(subscribers) {
			end = len(subscribers)
		}
		s.deliverBatch(ctx, job, subscribers[start:end], message)
	}

	snapshot := job.Snapshot()
	s.logger.Info("broadcast finished",
		zap.String("job_id", job.id.String()),
		zap.String("category", string(job.category)),
		zap.Int("delivered", snapshot.Delivered),
		zap.Int("failed", snapshot.Failed))
}

// deliverBatch sends to every recipient in the batch concurrently. A failed
// recipient is tallied and skipped; it never aborts the batch.
func (s *broadcastService) deliverBatch(ctx context.Context, job *BroadcastJob, recipients []int64, message string) {
	g, gctx := errgroup.WithContext(ctx)
	for _, recipient := range recipients {
		g.Go(func() error {
			deliverCtx := gctx
			if s.deliveryTimeout > 0 {
				var cancel context.CancelFunc
				deliverCtx, cancel = context.WithTimeout(gctx, s.deliveryTimeout)
				defer cancel()
			}
			if err := s.transport.Deliver(deliverCtx, recipient, message); err != nil {
				job.recordFailed()
				s.logger.Warn("broadcast delivery failed",
					zap.Int64("recipient", recipient), zap.Error(err))
				return nil
			}
			job.recordDelivered()
			return nil
		})
	}
	_ = g.Wait()
}

package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"codehunt/giveaway/internal/model"
	"codehunt/giveaway/internal/repository"
)

// fakeStore implements the participant, entry, and preference repositories
// in memory. CreateNext serializes number assignment under the store mutex,
// mirroring the contract of the postgres implementation.
type fakeStore struct {
	mu           sync.Mutex
	participants map[int64]*model.Participant
	entries      []*model.Entry
	preferences  map[int64]*model.Preference
	nextEntryID  int64

	failWith error
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		participants: make(map[int64]*model.Participant),
		preferences:  make(map[int64]*model.Preference),
	}
}

func (s *fakeStore) GetByExternalID(_ context.Context, externalID int64) (*model.Participant, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failWith != nil {
		return nil, s.failWith
	}
	p, ok := s.participants[externalID]
	if !ok {
		return nil, nil
	}
	copied := *p
	return &copied, nil
}

func (s *fakeStore) Create(_ context.Context, participant *model.Participant) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failWith != nil {
		return s.failWith
	}
	// Mirrors the conflict-tolerant insert: an existing row is left unchanged.
	if _, exists := s.participants[participant.ExternalID]; exists {
		return nil
	}
	copied := *participant
	s.participants[participant.ExternalID] = &copied
	return nil
}

func (s *fakeStore) UpdateContactInfo(_ context.Context, externalID int64, displayName, handle string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if p, ok := s.participants[externalID]; ok {
		p.DisplayName = displayName
		p.Handle = handle
	}
	return nil
}

func (s *fakeStore) CodeExists(_ context.Context, participantCode string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, p := range s.participants {
		if p.ParticipantCode == participantCode {
			return true, nil
		}
	}
	return false, nil
}

func (s *fakeStore) GetByParticipantAndCode(_ context.Context, participantID int64, code string) (*model.Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failWith != nil {
		return nil, s.failWith
	}
	for _, e := range s.entries {
		if e.ParticipantID == participantID && e.Code == code {
			copied := *e
			return &copied, nil
		}
	}
	return nil, nil
}

func (s *fakeStore) CreateNext(_ context.Context, entry *model.Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failWith != nil {
		return s.failWith
	}
	for _, e := range s.entries {
		if e.ParticipantID == entry.ParticipantID && e.Code == entry.Code {
			return fmt.Errorf("duplicate entry for participant %d code %q", entry.ParticipantID, entry.Code)
		}
	}

	max := 0
	for _, e := range s.entries {
		if e.EntryNumber > max {
			max = e.EntryNumber
		}
	}
	s.nextEntryID++
	entry.ID = s.nextEntryID
	entry.EntryNumber = max + 1
	entry.CreatedAt = time.Now()

	copied := *entry
	s.entries = append(s.entries, &copied)
	return nil
}

func (s *fakeStore) ListByParticipant(_ context.Context, participantID int64) ([]model.Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []model.Entry
	for _, e := range s.entries {
		if e.ParticipantID == participantID {
			out = append(out, *e)
		}
	}
	return out, nil
}

func (s *fakeStore) ListAll(_ context.Context) ([]model.Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failWith != nil {
		return nil, s.failWith
	}
	out := make([]model.Entry, 0, len(s.entries))
	for _, e := range s.entries {
		copied := *e
		if p, ok := s.participants[e.ParticipantID]; ok {
			copied.Participant = *p
		}
		out = append(out, copied)
	}
	return out, nil
}

func (s *fakeStore) Counts(_ context.Context) (repository.EntryCounts, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	participants := make(map[int64]struct{})
	codes := make(map[string]struct{})
	for _, e := range s.entries {
		participants[e.ParticipantID] = struct{}{}
		codes[e.Code] = struct{}{}
	}
	return repository.EntryCounts{
		Entries:      int64(len(s.entries)),
		Participants: int64(len(participants)),
		Codes:        int64(len(codes)),
	}, nil
}

func (s *fakeStore) EnsureDefault(_ context.Context, participantID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failWith != nil {
		return s.failWith
	}
	if _, exists := s.preferences[participantID]; exists {
		return nil
	}
	s.preferences[participantID] = &model.Preference{
		ParticipantID: participantID,
		NotifyResults: true,
		NotifyVideos:  true,
		NotifyStreams: true,
	}
	return nil
}

func (s *fakeStore) Get(_ context.Context, participantID int64) (*model.Preference, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.preferences[participantID]
	if !ok {
		return nil, nil
	}
	copied := *p
	return &copied, nil
}

func (s *fakeStore) Toggle(_ context.Context, participantID int64, flag model.PreferenceFlag) (*model.Preference, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.preferences[participantID]
	if !ok {
		p = &model.Preference{
			ParticipantID: participantID,
			NotifyResults: true,
			NotifyVideos:  true,
			NotifyStreams: true,
		}
		s.preferences[participantID] = p
	}
	switch flag {
	case model.PreferenceFlagResults:
		p.NotifyResults = !p.NotifyResults
	case model.PreferenceFlagVideos:
		p.NotifyVideos = !p.NotifyVideos
	case model.PreferenceFlagStreams:
		p.NotifyStreams = !p.NotifyStreams
	default:
		return nil, fmt.Errorf("unknown preference flag %q", flag)
	}
	p.UpdatedAt = time.Now()
	copied := *p
	return &copied, nil
}

func (s *fakeStore) ListSubscribers(_ context.Context, flag model.PreferenceFlag) ([]int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failWith != nil {
		return nil, s.failWith
	}
	var ids []int64
	for id, p := range s.preferences {
		if p.Enabled(flag) {
			ids = append(ids, id)
		}
	}
	return ids, nil
}

var (
	_ repository.ParticipantRepository = (*fakeStore)(nil)
	_ repository.EntryRepository       = (*fakeStore)(nil)
	_ repository.PreferenceRepository  = (*fakeStore)(nil)
)

// fakeMembershipClient scripts the collaborator's verdicts per identity.
type fakeMembershipClient struct {
	mu       sync.Mutex
	statuses map[int64]MembershipStatus
	err      error
	// block makes CheckMembership wait for ctx cancellation, simulating a
	// collaborator that never answers.
	block bool
	calls int
}

func (c *fakeMembershipClient) CheckMembership(ctx context.Context, externalID int64) (MembershipStatus, error) {
	c.mu.Lock()
	c.calls++
	block, err := c.block, c.err
	status := c.statuses[externalID]
	c.mu.Unlock()

	if block {
		<-ctx.Done()
		return MembershipUnknown, ctx.Err()
	}
	if err != nil {
		return MembershipUnknown, err
	}
	return status, nil
}

func (c *fakeMembershipClient) callCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.calls
}

// fakeTransport records deliveries and fails the recipients listed in fail.
type fakeTransport struct {
	mu        sync.Mutex
	delivered []int64
	fail      map[int64]bool
	calls     int
}

func newFakeTransport() *fakeTransport {
	return &fakeTransport{fail: make(map[int64]bool)}
}

func (t *fakeTransport) Deliver(_ context.Context, recipientID int64, _ string) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.calls++
	if t.fail[recipientID] {
		return fmt.Errorf("delivery to %d failed", recipientID)
	}
	t.delivered = append(t.delivered, recipientID)
	return nil
}

func (t *fakeTransport) callCount() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.calls
}

package service

import (
	"context"
	"strings"
	"sync"
	"testing"
)

const (
	testCodeLength   = 6
	testCodeAlphabet = "ABCDEFGHJKMNPQRSTUVWXYZ23456789"
)

func newTestRegistry(store *fakeStore) RegistryService {
	return NewRegistryService(store, store, testCodeLength, testCodeAlphabet)
}

func TestEnsureParticipantAssignsStableCode(t *testing.T) {
	store := newFakeStore()
	registry := newTestRegistry(store)
	ctx := context.Background()

	first, err := registry.EnsureParticipant(ctx, 42, "Alice", "alice")
	if err != nil {
		t.Fatalf("ensure participant: %v", err)
	}
	if len(first) != testCodeLength {
		t.Fatalf("expected code of length %d, got %q", testCodeLength, first)
	}
	for _, r := range first {
		if !strings.ContainsRune(testCodeAlphabet, r) {
			t.Fatalf("code %q contains %q outside the alphabet", first, r)
		}
	}

	for i := 0; i < 5; i++ {
		again, err := registry.EnsureParticipant(ctx, 42, "Alice", "alice")
		if err != nil {
			t.Fatalf("ensure participant: %v", err)
		}
		if again != first {
			t.Fatalf("participant code changed: %q != %q", again, first)
		}
	}
}

func TestEnsureParticipantConcurrentFirstContact(t *testing.T) {
	store := newFakeStore()
	registry := newTestRegistry(store)
	ctx := context.Background()

	const contenders = 8
	start := make(chan struct{})
	codes := make(chan string, contenders)

	var wg sync.WaitGroup
	for i := 0; i < contenders; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-start
			code, err := registry.EnsureParticipant(ctx, 42, "Alice", "alice")
			if err != nil {
				t.Errorf("concurrent first contact: %v", err)
				return
			}
			codes <- code
		}()
	}
	close(start)
	wg.Wait()
	close(codes)

	first := ""
	got := 0
	for code := range codes {
		got++
		if first == "" {
			first = code
		}
		if code != first {
			t.Fatalf("contenders saw different codes: %q vs %q", code, first)
		}
	}
	if got != contenders {
		t.Fatalf("expected %d successful contacts, got %d", contenders, got)
	}
}

func TestEnsureParticipantRefreshesDisplayFields(t *testing.T) {
	store := newFakeStore()
	registry := newTestRegistry(store)
	ctx := context.Background()

	if _, err := registry.EnsureParticipant(ctx, 42, "Alice", "alice"); err != nil {
		t.Fatalf("ensure participant: %v", err)
	}
	if _, err := registry.EnsureParticipant(ctx, 42, "Alice Renamed", "alice2"); err != nil {
		t.Fatalf("ensure participant: %v", err)
	}

	p, err := store.GetByExternalID(ctx, 42)
	if err != nil {
		t.Fatalf("get participant: %v", err)
	}
	if p.DisplayName != "Alice Renamed" || p.Handle != "alice2" {
		t.Fatalf("display fields not refreshed: %+v", p)
	}
}

func TestEnsureParticipantCreatesDefaultPreferences(t *testing.T) {
	store := newFakeStore()
	registry := newTestRegistry(store)
	ctx := context.Background()

	if _, err := registry.EnsureParticipant(ctx, 42, "Alice", "alice"); err != nil {
		t.Fatalf("ensure participant: %v", err)
	}

	pref, err := store.Get(ctx, 42)
	if err != nil {
		t.Fatalf("get preferences: %v", err)
	}
	if pref == nil {
		t.Fatal("expected default preferences to exist")
	}
	if !pref.NotifyResults || !pref.NotifyVideos || !pref.NotifyStreams {
		t.Fatalf("expected all flags opted in, got %+v", pref)
	}
}

func TestEnsureParticipantRetriesOnCodeCollision(t *testing.T) {
	store := newFakeStore()
	registry := newTestRegistry(store).(*registryService)
	ctx := context.Background()

	// Seed an existing participant holding the colliding code.
	if _, err := registry.EnsureParticipant(ctx, 1, "Taken", "taken"); err != nil {
		t.Fatalf("ensure participant: %v", err)
	}
	taken, err := store.GetByExternalID(ctx, 1)
	if err != nil {
		t.Fatalf("get participant: %v", err)
	}

	candidates := []string{taken.ParticipantCode, "FRESH2"}
	registry.generate = func(int, string) (string, error) {
		next := candidates[0]
		candidates = candidates[1:]
		return next, nil
	}

	code, err := registry.EnsureParticipant(ctx, 2, "Bob", "bob")
	if err != nil {
		t.Fatalf("ensure participant: %v", err)
	}
	if code != "FRESH2" {
		t.Fatalf("expected retry to yield FRESH2, got %q", code)
	}
	if len(candidates) != 0 {
		t.Fatalf("expected both candidates consumed, %d left", len(candidates))
	}
}

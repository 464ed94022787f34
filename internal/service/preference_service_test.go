package service

import (
	"context"
	"errors"
	"testing"

	"codehunt/giveaway/internal/model"
)

func TestGetPreferencesCreatesDefaults(t *testing.T) {
	store := newFakeStore()
	svc := NewPreferenceService(store)

	prefs, err := svc.Get(context.Background(), 42)
	if err != nil {
		t.Fatalf("get preferences: %v", err)
	}
	if prefs == nil {
		t.Fatal("expected default preferences")
	}
	if !prefs.NotifyResults || !prefs.NotifyVideos || !prefs.NotifyStreams {
		t.Fatalf("expected all flags true by default, got %+v", prefs)
	}
}

func TestTogglePreference(t *testing.T) {
	store := newFakeStore()
	svc := NewPreferenceService(store)
	ctx := context.Background()

	prefs, err := svc.Toggle(ctx, 42, model.PreferenceFlagVideos)
	if err != nil {
		t.Fatalf("toggle: %v", err)
	}
	if prefs.NotifyVideos {
		t.Fatal("expected videos flag off after first toggle")
	}
	if !prefs.NotifyResults || !prefs.NotifyStreams {
		t.Fatalf("other flags must be untouched: %+v", prefs)
	}

	prefs, err = svc.Toggle(ctx, 42, model.PreferenceFlagVideos)
	if err != nil {
		t.Fatalf("toggle: %v", err)
	}
	if !prefs.NotifyVideos {
		t.Fatal("expected videos flag back on after second toggle")
	}
}

func TestToggleUnknownFlag(t *testing.T) {
	store := newFakeStore()
	svc := NewPreferenceService(store)

	if _, err := svc.Toggle(context.Background(), 42, "notify_results; drop table"); !errors.Is(err, ErrUnknownPreference) {
		t.Fatalf("expected ErrUnknownPreference, got %v", err)
	}
}

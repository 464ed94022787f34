package service

import "testing"

func TestCodeSetCaseInsensitive(t *testing.T) {
	codes := NewCodeSet([]string{"HEADSHOTKING", "MOOVICTORY", "CLUTCHGOD"})

	for _, text := range []string{"HeadShotKing", "headshotking", "HEADSHOTKING", "  headshotking  "} {
		if !codes.Contains(text) {
			t.Errorf("expected %q to be a valid code", text)
		}
	}
}

func TestCodeSetRejectsUnknown(t *testing.T) {
	codes := NewCodeSet([]string{"HEADSHOTKING"})

	for _, text := range []string{"", "   ", "headshot", "moovictory"} {
		if codes.Contains(text) {
			t.Errorf("expected %q to be rejected", text)
		}
	}
}

func TestCodeSetSkipsEmptyConfigEntries(t *testing.T) {
	codes := NewCodeSet([]string{"A", "", "  "})
	if codes.Len() != 1 {
		t.Fatalf("expected 1 code, got %d", codes.Len())
	}
}

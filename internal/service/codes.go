package service

import "strings"

// NormalizeCode lowercases and trims a submitted code word. Codes are stored
// and compared in this normalized form.
func NormalizeCode(text string) string {
	return strings.ToLower(strings.TrimSpace(text))
}

// CodeSet is the configured set of valid code words. Membership checks are
// case-insensitive and stateless.
type CodeSet struct {
	codes map[string]struct{}
}

func NewCodeSet(codes []string) *CodeSet {
	set := make(map[string]struct{}, len(codes))
	for _, c := range codes {
		normalized := NormalizeCode(c)
		if normalized == "" {
			continue
		}
		set[normalized] = struct{}{}
	}
	return &CodeSet{codes: set}
}

// Contains reports whether text normalizes to a valid code word.
func (s *CodeSet) Contains(text string) bool {
	_, ok := s.codes[NormalizeCode(text)]
	return ok
}

// Len returns the number of configured code words.
func (s *CodeSet) Len() int { return len(s.codes) }

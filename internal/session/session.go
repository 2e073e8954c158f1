// Package session holds the state a front end keeps between interactions: the
// full result list of the last run and the boolean filters applied to it.
// Filtering is pure; the full list is always retained for re-filtering.
package session

import (
	"github.com/hyperifyio/goprospect/internal/pattern"
	"github.com/hyperifyio/goprospect/internal/scan"
)

// Filter selects contacts by which signals they carry. Zero value selects
// everything.
type Filter struct {
	HasInstagram bool
	HasTikTok    bool
	HasYouTube   bool
	HasEmail     bool
}

// Session is the explicit, session-scoped context passed to front-end
// boundary functions. The core pipeline stays stateless between runs; this is
// the only place results live after a run completes.
type Session struct {
	results []scan.Contact
	filter  Filter
}

// SetResults replaces the session's result list with the output of a run.
func (s *Session) SetResults(contacts []scan.Contact) {
	s.results = contacts
}

// Results returns the unfiltered result list.
func (s *Session) Results() []scan.Contact {
	return s.results
}

// SetFilter stores the active filter predicates.
func (s *Session) SetFilter(f Filter) {
	s.filter = f
}

// Filtered returns the subview matching the active filter. The underlying
// result list is never modified, so relaxing the filter restores hidden rows.
func (s *Session) Filtered() []scan.Contact {
	out := make([]scan.Contact, 0, len(s.results))
	for _, c := range s.results {
		if s.filter.matches(c) {
			out = append(out, c)
		}
	}
	return out
}

func (f Filter) matches(c scan.Contact) bool {
	if f.HasInstagram && !c.HasProfile(pattern.Instagram) {
		return false
	}
	if f.HasTikTok && !c.HasProfile(pattern.TikTok) {
		return false
	}
	if f.HasYouTube && !c.HasProfile(pattern.YouTube) {
		return false
	}
	if f.HasEmail && c.Email == "" {
		return false
	}
	return true
}

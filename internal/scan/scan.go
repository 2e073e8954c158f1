package scan

import (
	"context"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/hyperifyio/goprospect/internal/extract"
	"github.com/hyperifyio/goprospect/internal/fetch"
	"github.com/hyperifyio/goprospect/internal/pattern"
	"github.com/hyperifyio/goprospect/internal/search"
)

// Contact is a candidate promoted with whatever contact signals its website
// yielded. Title, URL, Snippet, Source, and DisplayName are fixed at creation;
// only the signal fields come from extraction.
type Contact struct {
	Title       string
	URL         string
	Snippet     string
	Source      string
	DisplayName string

	Email    string
	Profiles map[pattern.Platform]string
}

// HasProfile reports whether a profile URL was found for the platform.
func (c Contact) HasProfile(p pattern.Platform) bool {
	return c.Profiles[p] != ""
}

// Fetcher is the minimal page-retrieval surface the runner needs. *fetch.Client
// satisfies it; tests substitute their own.
type Fetcher interface {
	Get(ctx context.Context, url string) (fetch.Page, error)
}

// Progress receives the completed fraction (processed over the scan budget)
// and a human-readable status line after each candidate, and a final "done"
// signal when the batch ends.
type Progress func(fraction float64, status string)

// Interval is the inclusive range the inter-candidate delay is drawn from.
type Interval struct {
	Min time.Duration
	Max time.Duration
}

// candidate processing states, in order. There are no retries and no backward
// transitions.
type state string

const (
	statePending     state = "pending"
	stateFetching    state = "fetching"
	stateExtracted   state = "extracted"
	stateFetchFailed state = "fetch_failed"
	stateDone        state = "done"
)

// Runner drives the candidate-to-contact conversion over one bounded batch.
// Processing is strictly sequential: one candidate is fully fetched and
// extracted before the next begins, so at most one outbound request is in
// flight at a time.
type Runner struct {
	Fetcher Fetcher
	// Delay paces requests between processed candidates. Both fields zero
	// means the default 500ms to 1500ms range.
	Delay Interval
	// Progress is optional.
	Progress Progress
}

// Run converts candidates into contacts, fetching and extracting at most
// limit of them. Candidates past the budget, and candidates whose fetch
// failed, pass through with empty signal fields. The output always has the
// same length and order as the input; one bad page never aborts the batch.
func (r *Runner) Run(ctx context.Context, candidates []search.Result, limit int) []Contact {
	if limit < 0 {
		limit = 0
	}
	budget := limit
	if len(candidates) < budget {
		budget = len(candidates)
	}

	out := make([]Contact, 0, len(candidates))
	processed := 0
	for i, cand := range candidates {
		if i >= limit || ctx.Err() != nil {
			out = append(out, newContact(cand))
			continue
		}

		st := statePending
		c := newContact(cand)
		if cand.URL != "" {
			st = stateFetching
			page, err := r.Fetcher.Get(ctx, cand.URL)
			if err != nil {
				st = stateFetchFailed
				log.Warn().Err(err).Str("url", cand.URL).Msg("fetch failed; keeping candidate without signals")
			} else {
				st = stateExtracted
				sig := extract.FromHTML(page.HTML)
				c.Email = sig.Email
				c.Profiles = sig.Profiles
			}
		}
		out = append(out, c)
		processed++
		log.Debug().Str("url", cand.URL).Str("outcome", string(st)).Msg("candidate finished")

		r.report(float64(processed)/float64(budget),
			fmt.Sprintf("processing candidate %d of %d: %s", processed, budget, cand.Title))

		// The pause applies after failures too; pacing is about the target
		// sites, not about our success rate.
		r.pause(ctx)
	}
	r.report(1, "done")
	return out
}

func newContact(r search.Result) Contact {
	return Contact{
		Title:       r.Title,
		URL:         r.URL,
		Snippet:     r.Snippet,
		Source:      r.Source,
		DisplayName: extract.DeriveDisplayName(r.Title),
		Profiles:    map[pattern.Platform]string{},
	}
}

func (r *Runner) report(fraction float64, status string) {
	if r.Progress == nil {
		return
	}
	if fraction > 1 {
		fraction = 1
	}
	r.Progress(fraction, status)
}

// pause sleeps for a uniformly random duration from the configured interval,
// returning early only when the context is cancelled.
func (r *Runner) pause(ctx context.Context) {
	min, max := r.Delay.Min, r.Delay.Max
	if min == 0 && max == 0 {
		min, max = 500*time.Millisecond, 1500*time.Millisecond
	}
	if max < min {
		max = min
	}
	d := min
	if span := max - min; span > 0 {
		d += time.Duration(rand.Int64N(int64(span) + 1))
	}
	if d <= 0 {
		return
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
	case <-t.C:
	}
}

package orchestrators

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"sync/atomic"

	"planner/internal/domain/attraction"
)

// SearchOutcome is what a finished search wants displayed: either a list
// of attractions or an explicit empty state with a reason.
type SearchOutcome struct {
	Query   string
	Results []attraction.Attraction
	Empty   bool
	Reason  string
}

// SearchSession tracks which search is the most recent one. Responses are
// tagged with a generation token at start; a response whose token is no
// longer current lost the race and must not clobber the newer display
// state. In-flight requests are not cancelled, only ignored.
type SearchSession struct {
	generation atomic.Uint64

	mu      sync.Mutex
	current SearchOutcome
	has     bool
}

// Begin registers a new search and returns its generation token.
// PRE: none
// POST: Returns a token strictly greater than all earlier tokens, or
// attraction.ErrBlankQuery for a blank query (nothing registered)
func (s *SearchSession) Begin(query string) (uint64, error) {
	if strings.TrimSpace(query) == "" {
		return 0, attraction.ErrBlankQuery
	}
	return s.generation.Add(1), nil
}

// Commit installs an outcome if its generation is still current. Returns
// false when the outcome is stale and was discarded.
func (s *SearchSession) Commit(gen uint64, outcome SearchOutcome) bool {
	if gen != s.generation.Load() {
		return false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = outcome
	s.has = true
	return true
}

// Current returns the displayed outcome, if any search has completed.
func (s *SearchSession) Current() (SearchOutcome, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current, s.has
}

// SearchGateway defines the gateway interface needed by SearchAttractions.
type SearchGateway interface {
	Search(ctx context.Context, location string) ([]attraction.Attraction, string, error)
}

// SearchAttractionsCommand holds the search input.
type SearchAttractionsCommand struct {
	Query string
}

// SearchAttractionsDeps holds dependencies for SearchAttractions.
type SearchAttractionsDeps struct {
	Gateway SearchGateway
	Session *SearchSession
}

// SearchAttractionsResult carries the outcome and whether it was
// installed as the session's display state or discarded as stale.
type SearchAttractionsResult struct {
	Generation uint64
	Outcome    SearchOutcome
	Superseded bool
}

// ExecuteSearchAttractions runs one destination search. The flow is
// read-only: accepted results are fed to the draft by the caller.
// PRE: cmd.Query is non-blank
// POST: The session displays this outcome unless a newer search started
// while this one was in flight
func ExecuteSearchAttractions(ctx context.Context, cmd SearchAttractionsCommand, deps SearchAttractionsDeps) (SearchAttractionsResult, error) {
	gen, err := deps.Session.Begin(cmd.Query)
	if err != nil {
		return SearchAttractionsResult{}, err
	}

	results, message, err := deps.Gateway.Search(ctx, cmd.Query)
	if err != nil {
		slog.Info("search_failed", "query", cmd.Query, "error", err.Error())
		return SearchAttractionsResult{}, fmt.Errorf("search attractions: %w", err)
	}

	outcome := SearchOutcome{Query: cmd.Query, Results: results}
	if len(results) == 0 {
		outcome.Empty = true
		outcome.Reason = message
		if outcome.Reason == "" {
			outcome.Reason = "no attractions found"
		}
	}

	applied := deps.Session.Commit(gen, outcome)
	if !applied {
		slog.Debug("search_superseded", "query", cmd.Query, "generation", gen)
	}
	return SearchAttractionsResult{Generation: gen, Outcome: outcome, Superseded: !applied}, nil
}

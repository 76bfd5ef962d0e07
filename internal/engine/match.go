package engine

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/gcbaptista/go-survey-catalog/config"
	"github.com/gcbaptista/go-survey-catalog/internal/errors"
	"github.com/gcbaptista/go-survey-catalog/internal/matcher"
	"github.com/gcbaptista/go-survey-catalog/internal/metrics"
	"github.com/gcbaptista/go-survey-catalog/internal/typoutil"
	"github.com/gcbaptista/go-survey-catalog/model"
)

// suggestionDistance is the largest edit distance at which an unknown query field
// is reported with a "did you mean" hint.
const suggestionDistance = 2

var matchers = map[matcher.WildcardPolicy]*matcher.Matcher{
	matcher.NullWildcard:  matcher.New(matcher.WithWildcardPolicy(matcher.NullWildcard)),
	matcher.FalsyWildcard: matcher.New(matcher.WithWildcardPolicy(matcher.FalsyWildcard)),
}

// Match finds the entries of a catalog that best fit query.
//
// The query is checked against the catalog settings first: it may name at most
// MaxQueryFields fields and, for strict catalogs, only the catalog's lookup fields.
// The search then runs under the engine's match timeout and ctx; whichever ends first
// aborts the request.
func (e *Engine) Match(ctx context.Context, catalogName string, query model.Query) (model.MatchResult, error) {
	start := time.Now()

	entries, settings, err := e.store.Entries(catalogName)
	if err != nil {
		return model.MatchResult{}, err
	}

	if err := checkQuery(settings, query); err != nil {
		e.metrics.ObserveMatch(catalogName, metrics.ResultRejected, 0, 0)
		return model.MatchResult{}, err
	}

	m := matchers[matcher.ParseWildcardPolicy(settings.WildcardPolicy)]
	matched, err := e.runWithBudget(ctx, catalogName, func() []model.Entry {
		return m.Match(entries, query)
	})
	if err != nil {
		e.metrics.ObserveMatch(catalogName, metrics.ResultTimeout, 0, 0)
		return model.MatchResult{}, err
	}

	took := time.Since(start)
	outcome := metrics.ResultHit
	if len(matched) == 0 {
		outcome = metrics.ResultEmpty
	}
	e.metrics.ObserveMatch(catalogName, outcome, took, len(matched))

	fields := query.Fields()
	if e.tracker != nil {
		e.tracker.TrackMatchEvent(model.MatchEvent{
			CatalogName:   catalogName,
			QueryFields:   fields,
			WildcardCount: countWildcards(m.Policy(), query),
			ResultCount:   len(matched),
			ResponseTime:  took,
		})
	}

	return model.MatchResult{
		Entries:     matched,
		Total:       len(matched),
		CatalogSize: len(entries),
		QueryFields: fields,
		Took:        took.Milliseconds(),
		QueryID:     uuid.New().String(),
	}, nil
}

// runWithBudget runs search in its own goroutine and gives up waiting when the budget or ctx
// runs out. An abandoned search finishes in the background and its result is dropped.
func (e *Engine) runWithBudget(ctx context.Context, catalogName string, search func() []model.Entry) ([]model.Entry, error) {
	done := make(chan []model.Entry, 1)
	go func() {
		done <- search()
	}()

	var timeout <-chan time.Time
	if e.matchTimeout > 0 {
		timer := time.NewTimer(e.matchTimeout)
		defer timer.Stop()
		timeout = timer.C
	}

	select {
	case result := <-done:
		return result, nil
	case <-timeout:
		return nil, errors.NewMatchTimeoutError(catalogName, e.matchTimeout)
	case <-ctx.Done():
		return nil, fmt.Errorf("match on catalog '%s' abandoned: %w", catalogName, ctx.Err())
	}
}

// checkQuery enforces the width bound and, for strict catalogs, the field whitelist
func checkQuery(settings config.CatalogSettings, query model.Query) error {
	limit := settings.MaxQueryFields
	if limit <= 0 {
		limit = config.DefaultMaxQueryFields
	}
	if query.Len() > limit {
		return errors.NewQueryTooWideError(settings.Name, query.Len(), limit)
	}

	if settings.StrictQueryFields {
		for _, field := range query.Fields() {
			if settings.HasField(field) {
				continue
			}
			message := fmt.Sprintf("field '%s' is not a lookup field of catalog '%s'", field, settings.Name)
			if suggestion, ok := typoutil.ClosestField(field, settings.Fields, suggestionDistance); ok {
				message += fmt.Sprintf(" (did you mean '%s'?)", suggestion)
			}
			return errors.NewValidationError("query."+field, message)
		}
	}
	return nil
}

func countWildcards(policy matcher.WildcardPolicy, query model.Query) int {
	n := 0
	for _, c := range query.Criteria() {
		if policy.IsAbsent(c.Value) {
			n++
		}
	}
	return n
}

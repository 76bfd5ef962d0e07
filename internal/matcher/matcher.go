// Package matcher picks the most applicable rows of a lookup catalog for a partial query.
//
// Catalog rows may leave any field as a wildcard and a query may name only some fields.
// The search applies or relaxes each query constraint in turn and keeps the largest set of
// rows it can reach, then orders those rows by how many of their own fields are present.
package matcher

import (
	"fmt"
	"sort"

	"github.com/gcbaptista/go-survey-catalog/model"
)

// MaxFields is the widest query the matcher accepts. Sub-problems are keyed by bit masks
// over the query's fields.
const MaxFields = 64

// Matcher runs constraint-relaxation searches. A Matcher holds no mutable state and is safe
// for concurrent use.
type Matcher struct {
	policy  WildcardPolicy
	memoize bool
}

// Option configures a Matcher.
type Option func(*Matcher)

// WithWildcardPolicy selects which values count as wildcards.
func WithWildcardPolicy(policy WildcardPolicy) Option {
	return func(m *Matcher) {
		m.policy = policy
	}
}

// WithoutMemoization explores every branch of the search tree. Results are identical;
// only the amount of work differs.
func WithoutMemoization() Option {
	return func(m *Matcher) {
		m.memoize = false
	}
}

// New creates a matcher. By default only nil is a wildcard and sub-problems are memoized.
func New(opts ...Option) *Matcher {
	m := &Matcher{policy: NullWildcard, memoize: true}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Policy returns the wildcard policy of the matcher.
func (m *Matcher) Policy() WildcardPolicy {
	return m.policy
}

// Stats describes the work done by one Match call.
type Stats struct {
	Subproblems int `json:"subproblems"` // search calls that did real work
	MemoHits    int `json:"memo_hits"`
}

var defaultMatcher = New()

// Match runs the default matcher. See (*Matcher).Match.
func Match(catalog []model.Entry, query model.Query) []model.Entry {
	return defaultMatcher.Match(catalog, query)
}

// Match returns the largest subset of catalog reachable by applying or relaxing the query's
// constraints, sorted by the number of present fields of each entry, most first. Entries with
// equal counts keep the order the search produced them in, which is catalog order.
//
// Neither catalog nor query is modified. The returned entries are the catalog's own maps.
// Match panics if the query names more than MaxFields fields.
func (m *Matcher) Match(catalog []model.Entry, query model.Query) []model.Entry {
	entries, _ := m.MatchWithStats(catalog, query)
	return entries
}

// MatchWithStats is Match plus a report of the search effort.
func (m *Matcher) MatchWithStats(catalog []model.Entry, query model.Query) ([]model.Entry, Stats) {
	if m == nil {
		panic("matcher: Match called on nil *Matcher")
	}
	criteria := query.Criteria()
	if len(criteria) > MaxFields {
		panic(fmt.Sprintf("matcher: query has %d fields, at most %d are supported", len(criteria), MaxFields))
	}

	s := &search{
		policy:   m.policy,
		catalog:  catalog,
		criteria: criteria,
	}
	if m.memoize {
		s.memo = make(map[memoKey][]int)
	}

	all := make([]int, len(catalog))
	for i := range all {
		all[i] = i
	}

	winner := s.run(all, fieldMask(len(criteria)), 0)
	return m.rank(catalog, winner), s.stats
}

// rank orders the winning rows by specificity. The sort is stable.
func (m *Matcher) rank(catalog []model.Entry, winner []int) []model.Entry {
	type ranked struct {
		entry   model.Entry
		present int
	}
	rows := make([]ranked, len(winner))
	for i, idx := range winner {
		rows[i] = ranked{
			entry:   catalog[idx],
			present: m.policy.CountPresent(catalog[idx], model.EntryIDField),
		}
	}
	sort.SliceStable(rows, func(a, b int) bool {
		return rows[a].present > rows[b].present
	})

	result := make([]model.Entry, len(rows))
	for i, r := range rows {
		result[i] = r.entry
	}
	return result
}

// memoKey identifies a sub-problem. The current entry set is always the catalog filtered
// by the applied fields, so the pair fully determines the answer.
type memoKey struct {
	remaining uint64
	applied   uint64
}

type search struct {
	policy   WildcardPolicy
	catalog  []model.Entry
	criteria []model.Criterion
	memo     map[memoKey][]int
	stats    Stats
}

// run returns catalog indices. Slices may be shared between calls and are never modified.
func (s *search) run(entries []int, remaining, applied uint64) []int {
	if remaining == 0 {
		return entries
	}

	key := memoKey{remaining: remaining, applied: applied}
	if s.memo != nil {
		if cached, ok := s.memo[key]; ok {
			s.stats.MemoHits++
			return cached
		}
	}
	s.stats.Subproblems++

	var best []int
	found := false
	// Bits are visited in query order, so candidates come out apply-before-relax in
	// ascending field order. Only a strictly longer candidate replaces the current best.
	for i := range s.criteria {
		bit := uint64(1) << uint(i)
		if remaining&bit == 0 {
			continue
		}
		rest := remaining &^ bit
		criterion := s.criteria[i]

		candidate := s.run(s.filter(entries, criterion), rest, applied|bit)
		if !found || len(candidate) > len(best) {
			best, found = candidate, true
		}
		// Candidates are subsets of entries; nothing later can be strictly longer.
		if len(best) == len(entries) {
			break
		}

		if !s.policy.IsAbsent(criterion.Value) {
			candidate = s.run(entries, rest, applied)
			if len(candidate) > len(best) {
				best = candidate
			}
			if len(best) == len(entries) {
				break
			}
		}
	}

	if s.memo != nil {
		s.memo[key] = best
	}
	return best
}

func (s *search) filter(entries []int, criterion model.Criterion) []int {
	kept := make([]int, 0, len(entries))
	for _, idx := range entries {
		if s.policy.Equal(s.catalog[idx][criterion.Field], criterion.Value) {
			kept = append(kept, idx)
		}
	}
	return kept
}

func fieldMask(n int) uint64 {
	if n >= 64 {
		return ^uint64(0)
	}
	return uint64(1)<<uint(n) - 1
}

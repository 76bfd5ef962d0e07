package matcher

import (
	"fmt"
	"math/rand"
	"reflect"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gcbaptista/go-survey-catalog/model"
)

// --- Test Helpers ---

// surveyRules is a catalog of six count-validation rules keyed by outcome, species, method
// and season. nil means the rule applies to any value of that field.
func surveyRules() []model.Entry {
	return []model.Entry{
		{"outcome": 1, "species": 2, "method": 3, "season": 4},
		{"outcome": nil, "species": nil, "method": nil, "season": nil},
		{"outcome": 1, "species": nil, "method": 3, "season": nil},
		{"outcome": nil, "species": 2, "method": nil, "season": 4},
		{"outcome": 2, "species": 2, "method": nil, "season": nil},
		{"outcome": 3, "species": nil, "method": nil, "season": 4},
	}
}

func surveyQuery() model.Query {
	return model.NewQuery(
		model.Criterion{Field: "outcome", Value: nil},
		model.Criterion{Field: "species", Value: 2},
		model.Criterion{Field: "method", Value: 3},
		model.Criterion{Field: "season", Value: 4},
	)
}

// indexOf returns the catalog position of an entry by map identity.
func indexOf(t *testing.T, catalog []model.Entry, entry model.Entry) int {
	t.Helper()
	ptr := reflect.ValueOf(entry).Pointer()
	for i, e := range catalog {
		if reflect.ValueOf(e).Pointer() == ptr {
			return i
		}
	}
	t.Fatalf("entry %v is not part of the catalog", entry)
	return -1
}

// referenceMatch is a direct transcription of the relaxation search with no memoization
// and slice-based field lists. It is only used to cross-check the real implementation.
func referenceMatch(policy WildcardPolicy, catalog []model.Entry, query model.Query) []model.Entry {
	var search func(entries []model.Entry, fields []string) []model.Entry
	search = func(entries []model.Entry, fields []string) []model.Entry {
		if len(fields) == 0 {
			return entries
		}
		var best []model.Entry
		found := false
		for i, f := range fields {
			rest := append(append([]string{}, fields[:i]...), fields[i+1:]...)
			want, _ := query.Value(f)

			var filtered []model.Entry
			for _, e := range entries {
				if policy.Equal(e[f], want) {
					filtered = append(filtered, e)
				}
			}
			if c := search(filtered, rest); !found || len(c) > len(best) {
				best, found = c, true
			}
			if !policy.IsAbsent(want) {
				if c := search(entries, rest); len(c) > len(best) {
					best = c
				}
			}
		}
		return best
	}

	winner := search(catalog, query.Fields())
	out := append([]model.Entry{}, winner...)
	// insertion sort keeps it obviously stable
	for i := 1; i < len(out); i++ {
		for j := i; j > 0 && policy.CountPresent(out[j], model.EntryIDField) > policy.CountPresent(out[j-1], model.EntryIDField); j-- {
			out[j], out[j-1] = out[j-1], out[j]
		}
	}
	return out
}

func randomCatalog(rng *rand.Rand, rows int, fields []string) []model.Entry {
	catalog := make([]model.Entry, rows)
	for i := range catalog {
		e := model.Entry{}
		for _, f := range fields {
			switch rng.Intn(4) {
			case 0:
				e[f] = nil
			case 1:
				// leave the key out entirely
			default:
				e[f] = rng.Intn(3) + 1
			}
		}
		catalog[i] = e
	}
	return catalog
}

func randomQuery(rng *rand.Rand, fields []string) model.Query {
	var q model.Query
	for _, i := range rng.Perm(len(fields)) {
		switch rng.Intn(3) {
		case 0:
			continue
		case 1:
			q.Set(fields[i], nil)
		default:
			q.Set(fields[i], rng.Intn(3)+1)
		}
	}
	return q
}

// --- Test Cases ---

func TestMatch_SurveyScenario(t *testing.T) {
	catalog := surveyRules()

	result := Match(catalog, surveyQuery())

	require.Len(t, result, 2)
	assert.Equal(t, 3, indexOf(t, catalog, result[0]), "the rule with two present fields comes first")
	assert.Equal(t, 1, indexOf(t, catalog, result[1]), "the all-wildcard rule comes last")
	assert.Equal(t, model.Entry{"outcome": nil, "species": 2, "method": nil, "season": 4}, result[0])
	assert.Equal(t, model.Entry{"outcome": nil, "species": nil, "method": nil, "season": nil}, result[1])
}

func TestMatch_Deterministic(t *testing.T) {
	catalog := surveyRules()
	query := surveyQuery()

	first := Match(catalog, query)
	second := Match(catalog, query)

	assert.Equal(t, first, second)
}

func TestMatch_EmptyCatalog(t *testing.T) {
	assert.Empty(t, Match(nil, surveyQuery()))
	assert.Empty(t, Match([]model.Entry{}, model.Query{}))
}

func TestMatch_EmptyQueryRanksWholeCatalog(t *testing.T) {
	catalog := []model.Entry{
		{"species": nil, "season": nil},
		{"species": 1, "season": nil},
		{"species": 2, "season": 4},
		{"species": nil, "season": 3},
	}

	result := Match(catalog, model.Query{})

	require.Len(t, result, 4)
	got := make([]int, len(result))
	for i, e := range result {
		got[i] = indexOf(t, catalog, e)
	}
	// counts are 0,1,2,1 so the stable order is 2, then 1 before 3, then 0
	assert.Equal(t, []int{2, 1, 3, 0}, got)
}

func TestMatch_ExactMatchIsReturned(t *testing.T) {
	catalog := surveyRules()
	query := model.NewQuery(
		model.Criterion{Field: "outcome", Value: 1},
		model.Criterion{Field: "species", Value: 2},
		model.Criterion{Field: "method", Value: 3},
		model.Criterion{Field: "season", Value: 4},
	)

	result := Match(catalog, query)

	found := false
	for _, e := range result {
		if indexOf(t, catalog, e) == 0 {
			found = true
		}
	}
	assert.True(t, found, "the exact row must be in the result")
	assert.Equal(t, 0, indexOf(t, catalog, result[0]), "the exact row is also the most specific")
}

func TestMatch_RemovingConstraintNeverShrinksResult(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	fields := []string{"outcome", "species", "method", "season"}

	for i := 0; i < 200; i++ {
		catalog := randomCatalog(rng, 12, fields)
		query := randomQuery(rng, fields)

		base := Match(catalog, query)
		for _, f := range query.Fields() {
			if v, _ := query.Value(f); v == nil {
				continue
			}
			relaxed := Match(catalog, query.Without(f))
			assert.GreaterOrEqual(t, len(relaxed), len(base), "dropping %s from %v", f, query.Fields())
		}
	}
}

func TestMatch_SurvivorsAreDistinctCatalogEntries(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	fields := []string{"outcome", "species", "method", "season"}

	for i := 0; i < 100; i++ {
		catalog := randomCatalog(rng, 10, fields)
		result := Match(catalog, randomQuery(rng, fields))

		seen := make(map[int]bool)
		for _, e := range result {
			idx := indexOf(t, catalog, e)
			assert.False(t, seen[idx], "entry %d returned twice", idx)
			seen[idx] = true
		}
	}
}

func TestMatch_RankingIsMonotonic(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	fields := []string{"a", "b", "c", "d", "e"}

	for i := 0; i < 100; i++ {
		catalog := randomCatalog(rng, 15, fields)
		result := Match(catalog, randomQuery(rng, fields))
		for j := 1; j < len(result); j++ {
			prev := NullWildcard.CountPresent(result[j-1], model.EntryIDField)
			cur := NullWildcard.CountPresent(result[j], model.EntryIDField)
			assert.GreaterOrEqual(t, prev, cur)
		}
	}
}

func TestMatch_AgreesWithReference(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	fields := []string{"outcome", "species", "method", "season", "observer"}

	for _, policy := range []WildcardPolicy{NullWildcard, FalsyWildcard} {
		memo := New(WithWildcardPolicy(policy))
		plain := New(WithWildcardPolicy(policy), WithoutMemoization())

		for i := 0; i < 150; i++ {
			catalog := randomCatalog(rng, 10, fields)
			query := randomQuery(rng, fields)

			want := referenceMatch(policy, catalog, query)
			gotMemo := memo.Match(catalog, query)
			gotPlain := plain.Match(catalog, query)

			require.Equal(t, len(want), len(gotMemo), "policy %s query %v", policy, query.Fields())
			for j := range want {
				assert.Equal(t, indexOf(t, catalog, want[j]), indexOf(t, catalog, gotMemo[j]))
				assert.Equal(t, indexOf(t, catalog, want[j]), indexOf(t, catalog, gotPlain[j]))
			}
		}
	}
}

func TestMatch_DoesNotMutateInputs(t *testing.T) {
	catalog := surveyRules()
	query := surveyQuery()

	before := model.CloneEntries(catalog)
	beforeQuery, err := query.MarshalJSON()
	require.NoError(t, err)

	_ = Match(catalog, query)

	assert.Equal(t, before, catalog)
	afterQuery, err := query.MarshalJSON()
	require.NoError(t, err)
	assert.JSONEq(t, string(beforeQuery), string(afterQuery))
}

func TestMatch_MissingKeyBehavesAsNull(t *testing.T) {
	catalog := []model.Entry{
		{"species": 2},
		{"species": 2, "season": 4},
	}
	query := model.NewQuery(model.Criterion{Field: "season", Value: nil})

	result := Match(catalog, query)

	require.Len(t, result, 1)
	assert.Equal(t, 0, indexOf(t, catalog, result[0]))
}

func TestMatch_UnknownFieldNeverMatchesConcreteValue(t *testing.T) {
	catalog := surveyRules()
	query := model.NewQuery(model.Criterion{Field: "observer", Value: "kim"})

	// the only branch that keeps anything is the relaxed one
	result := Match(catalog, query)
	assert.Len(t, result, len(catalog))
}

func TestMatch_EntryIDIsNotRanked(t *testing.T) {
	catalog := []model.Entry{
		{model.EntryIDField: "a", "species": nil},
		{model.EntryIDField: "b", "species": 2},
	}

	result := Match(catalog, model.Query{})

	require.Len(t, result, 2)
	assert.Equal(t, "b", result[0][model.EntryIDField])
}

func TestMatch_FalsyPolicy(t *testing.T) {
	catalog := []model.Entry{
		{"count": 0, "note": ""},
		{"count": 5, "note": "flock"},
		{"count": nil, "note": "solo"},
	}
	zero := model.NewQuery(model.Criterion{Field: "count", Value: 0})

	t.Run("null policy treats zero as a value", func(t *testing.T) {
		result := New().Match(catalog, zero)
		// zero is present, so it may be relaxed and the whole catalog survives
		assert.Len(t, result, 3)
	})

	t.Run("falsy policy treats zero as a wildcard", func(t *testing.T) {
		result := New(WithWildcardPolicy(FalsyWildcard)).Match(catalog, zero)
		require.Len(t, result, 2)
		// "solo" has one present field, the zero row has none
		assert.Equal(t, 2, indexOf(t, catalog, result[0]))
		assert.Equal(t, 0, indexOf(t, catalog, result[1]))
	})
}

func TestMatch_PanicsOnTooWideQuery(t *testing.T) {
	var q model.Query
	for i := 0; i <= MaxFields; i++ {
		q.Set(fmt.Sprintf("f%d", i), nil)
	}

	assert.Panics(t, func() {
		Match(surveyRules(), q)
	})

	var nilMatcher *Matcher
	assert.Panics(t, func() {
		nilMatcher.Match(nil, model.Query{})
	})
}

func TestMatchWithStats_MemoizationSavesWork(t *testing.T) {
	// Row i is the only row with field fi set, so every wildcard constraint removes exactly
	// one row and no branch can be cut short.
	fields := []string{"f0", "f1", "f2", "f3", "f4", "f5"}
	catalog := []model.Entry{{}}
	var query model.Query
	for _, f := range fields {
		catalog = append(catalog, model.Entry{f: 1})
		query.Set(f, nil)
	}

	memoResult, memoStats := New().MatchWithStats(catalog, query)
	plainResult, plainStats := New(WithoutMemoization()).MatchWithStats(catalog, query)

	assert.Equal(t, plainResult, memoResult)
	require.Len(t, memoResult, 1)
	assert.Equal(t, 0, indexOf(t, catalog, memoResult[0]))

	assert.Zero(t, plainStats.MemoHits)
	assert.Positive(t, memoStats.MemoHits)
	// one sub-problem per non-empty set of remaining fields
	assert.Equal(t, 63, memoStats.Subproblems)
	assert.Less(t, memoStats.Subproblems, plainStats.Subproblems)
}

func TestMatch_FullRowShortCircuits(t *testing.T) {
	catalog := surveyRules()
	var query model.Query
	for _, f := range []string{"outcome", "species", "method", "season"} {
		query.Set(f, 9)
	}

	// relaxing every field keeps the whole catalog, the first time that happens the
	// search stops
	result, stats := New().MatchWithStats(catalog, query)
	assert.Len(t, result, len(catalog))
	assert.Zero(t, stats.MemoHits)
}

func TestMatch_ConcurrentCallers(t *testing.T) {
	catalog := surveyRules()
	query := surveyQuery()
	want := Match(catalog, query)

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				assert.Equal(t, want, Match(catalog, query))
			}
		}()
	}
	wg.Wait()
}

package matcher

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/gcbaptista/go-survey-catalog/model"
)

func benchmarkCatalog(rows, width int) ([]model.Entry, []string) {
	rng := rand.New(rand.NewSource(1))
	fields := make([]string, width)
	for i := range fields {
		fields[i] = fmt.Sprintf("dim%d", i)
	}
	return randomCatalog(rng, rows, fields), fields
}

func BenchmarkMatch_SurveyScenario(b *testing.B) {
	catalog := surveyRules()
	query := surveyQuery()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		Match(catalog, query)
	}
}

func BenchmarkMatch_WildcardQuery(b *testing.B) {
	for _, width := range []int{4, 6, 8, 10} {
		catalog, fields := benchmarkCatalog(200, width)
		var query model.Query
		for _, f := range fields {
			query.Set(f, nil)
		}

		b.Run(fmt.Sprintf("memoized_%d_fields", width), func(b *testing.B) {
			m := New()
			for i := 0; i < b.N; i++ {
				m.Match(catalog, query)
			}
		})
	}
}

func BenchmarkMatch_MixedQuery(b *testing.B) {
	catalog, fields := benchmarkCatalog(200, 8)
	var query model.Query
	for i, f := range fields {
		if i%2 == 0 {
			query.Set(f, nil)
		} else {
			query.Set(f, 1)
		}
	}

	b.Run("memoized", func(b *testing.B) {
		m := New()
		for i := 0; i < b.N; i++ {
			m.Match(catalog, query)
		}
	})
	b.Run("plain", func(b *testing.B) {
		m := New(WithoutMemoization())
		for i := 0; i < b.N; i++ {
			m.Match(catalog, query)
		}
	})
}

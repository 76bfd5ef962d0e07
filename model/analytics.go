package model

import "time"

// MatchEvent records one match request for analytics
type MatchEvent struct {
	CatalogName   string        `json:"catalog_name"`
	QueryFields   []string      `json:"query_fields"`
	WildcardCount int           `json:"wildcard_count"` // query fields sent as null
	ResultCount   int           `json:"result_count"`
	ResponseTime  time.Duration `json:"response_time"`
	Timestamp     time.Time     `json:"timestamp"`
}

// FieldCombination is a set of query fields and how often it was used
type FieldCombination struct {
	Fields     []string `json:"fields"`
	MatchCount int      `json:"match_count"`
}

// CatalogUsage represents match statistics for a specific catalog
type CatalogUsage struct {
	CatalogName      string  `json:"catalog_name"`
	EntryCount       int     `json:"entry_count"`
	MatchCount       int     `json:"match_count"`
	EmptyResultCount int     `json:"empty_result_count"`
	AvgResultSize    float64 `json:"avg_result_size"`
}

// ResponseTimeDistribution represents response time distribution buckets
type ResponseTimeDistribution struct {
	Bucket0To1ms      int     `json:"bucket_0_1ms"`
	Bucket1To10ms     int     `json:"bucket_1_10ms"`
	Bucket10To100ms   int     `json:"bucket_10_100ms"`
	Bucket100msPlus   int     `json:"bucket_100ms_plus"`
	Percentage0To1    float64 `json:"percentage_0_1"`
	Percentage1To10   float64 `json:"percentage_1_10"`
	Percentage10To100 float64 `json:"percentage_10_100"`
	Percentage100Plus float64 `json:"percentage_100_plus"`
}

// MatchPerformanceHourly represents hourly match performance data
type MatchPerformanceHourly struct {
	Hour            int     `json:"hour"`
	MatchCount      int     `json:"match_count"`
	AvgResponseTime float64 `json:"avg_response_time"` // in milliseconds
}

// AnalyticsDashboard represents the complete analytics dashboard data
type AnalyticsDashboard struct {
	// Summary metrics
	TotalMatches    int     `json:"total_matches"`
	MatchesChange   float64 `json:"matches_change_percent"`
	EmptyResults    int     `json:"empty_results"`
	EmptyResultRate float64 `json:"empty_result_rate"`
	AvgResponseTime float64 `json:"avg_response_time"` // in milliseconds
	AvgQueryWidth   float64 `json:"avg_query_width"`
	TotalEntries    int     `json:"total_entries"`
	ActiveCatalogs  int     `json:"active_catalogs"`

	// Detailed analytics
	MatchPerformance24h      []MatchPerformanceHourly `json:"match_performance_24h"`
	PopularFieldCombinations []FieldCombination       `json:"popular_field_combinations"`
	CatalogUsage             []CatalogUsage           `json:"catalog_usage"`
	ResponseTimeDistribution ResponseTimeDistribution `json:"response_time_distribution"`
}

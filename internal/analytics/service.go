// Package analytics records match events and aggregates them into a dashboard.
package analytics

import (
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/gcbaptista/go-survey-catalog/internal/persistence"
	"github.com/gcbaptista/go-survey-catalog/model"
	"github.com/gcbaptista/go-survey-catalog/services"
)

const (
	analyticsFileName = "analytics.json"
	maxEventsToKeep   = 10000 // keep the last 10k events
	popularLimit      = 5
)

// Service implements match tracking and reporting
type Service struct {
	mutex        sync.RWMutex
	events       []model.MatchEvent
	catalogs     services.CatalogLister
	dataFilePath string

	saveMutex sync.Mutex
	pending   sync.WaitGroup
	now       func() time.Time
}

// NewService creates a new analytics service. Events are persisted to <dataDir>/analytics.json;
// an empty dataDir keeps them in memory only.
func NewService(catalogs services.CatalogLister, dataDir string) *Service {
	service := &Service{
		events:   make([]model.MatchEvent, 0),
		catalogs: catalogs,
		now:      time.Now,
	}
	if dataDir != "" {
		service.dataFilePath = filepath.Join(dataDir, analyticsFileName)
	}

	if err := service.loadData(); err != nil {
		log.Printf("Warning: Failed to load analytics data: %v", err)
	}
	return service
}

// TrackMatchEvent records a match event. The event is stamped with the current time
// unless it already carries one.
func (s *Service) TrackMatchEvent(event model.MatchEvent) {
	s.mutex.Lock()
	if event.Timestamp.IsZero() {
		event.Timestamp = s.now()
	}
	s.events = append(s.events, event)
	if len(s.events) > maxEventsToKeep {
		s.events = s.events[len(s.events)-maxEventsToKeep:]
	}
	s.mutex.Unlock()

	if s.dataFilePath == "" {
		return
	}
	s.pending.Add(1)
	go func() {
		defer s.pending.Done()
		if err := s.saveData(); err != nil {
			log.Printf("Warning: Failed to save analytics data: %v", err)
		}
	}()
}

// EventCount returns the number of retained events
func (s *Service) EventCount() int {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	return len(s.events)
}

// Close waits for pending writes to finish
func (s *Service) Close() {
	s.pending.Wait()
}

// GetDashboardData returns complete analytics dashboard data
func (s *Service) GetDashboardData() model.AnalyticsDashboard {
	s.mutex.RLock()
	events := make([]model.MatchEvent, len(s.events))
	copy(events, s.events)
	s.mutex.RUnlock()

	now := s.now()
	yesterday := now.Add(-24 * time.Hour)
	lastWeek := now.Add(-7 * 24 * time.Hour)

	last24h := filterEventsByTimeRange(events, yesterday, now)
	previous24h := filterEventsByTimeRange(events, yesterday.Add(-24*time.Hour), yesterday)
	last7d := filterEventsByTimeRange(events, lastWeek, now)

	catalogs := s.catalogs.ListCatalogs()
	totalEntries := 0
	for _, c := range catalogs {
		totalEntries += c.EntryCount
	}

	empty := countEmpty(last24h)
	dashboard := model.AnalyticsDashboard{
		TotalMatches:             len(last24h),
		MatchesChange:            calculateChangePercent(len(last24h), len(previous24h)),
		EmptyResults:             empty,
		AvgResponseTime:          averageResponseMs(last24h),
		AvgQueryWidth:            averageQueryWidth(last24h),
		TotalEntries:             totalEntries,
		ActiveCatalogs:           len(catalogs),
		MatchPerformance24h:      hourlyPerformance(last24h),
		PopularFieldCombinations: popularFieldCombinations(last7d, popularLimit),
		CatalogUsage:             catalogUsage(catalogs, last7d),
		ResponseTimeDistribution: responseTimeDistribution(last24h),
	}
	if len(last24h) > 0 {
		dashboard.EmptyResultRate = float64(empty) / float64(len(last24h)) * 100
	}
	return dashboard
}

// filterEventsByTimeRange returns events in (start, end]
func filterEventsByTimeRange(events []model.MatchEvent, start, end time.Time) []model.MatchEvent {
	var filtered []model.MatchEvent
	for _, event := range events {
		if event.Timestamp.After(start) && !event.Timestamp.After(end) {
			filtered = append(filtered, event)
		}
	}
	return filtered
}

// calculateChangePercent calculates percentage change between current and previous values
func calculateChangePercent(current, previous int) float64 {
	if previous == 0 {
		if current > 0 {
			return 100.0
		}
		return 0.0
	}
	return float64(current-previous) / float64(previous) * 100.0
}

func countEmpty(events []model.MatchEvent) int {
	empty := 0
	for _, event := range events {
		if event.ResultCount == 0 {
			empty++
		}
	}
	return empty
}

// averageResponseMs returns the mean response time in milliseconds
func averageResponseMs(events []model.MatchEvent) float64 {
	if len(events) == 0 {
		return 0
	}
	var total time.Duration
	for _, event := range events {
		total += event.ResponseTime
	}
	return float64(total) / float64(len(events)) / float64(time.Millisecond)
}

func averageQueryWidth(events []model.MatchEvent) float64 {
	if len(events) == 0 {
		return 0
	}
	total := 0
	for _, event := range events {
		total += len(event.QueryFields)
	}
	return float64(total) / float64(len(events))
}

// hourlyPerformance buckets events by hour of day
func hourlyPerformance(events []model.MatchEvent) []model.MatchPerformanceHourly {
	hourly := make(map[int][]model.MatchEvent)
	for _, event := range events {
		hour := event.Timestamp.Hour()
		hourly[hour] = append(hourly[hour], event)
	}

	performance := make([]model.MatchPerformanceHourly, 0, 24)
	for hour := 0; hour < 24; hour++ {
		bucket := hourly[hour]
		performance = append(performance, model.MatchPerformanceHourly{
			Hour:            hour,
			MatchCount:      len(bucket),
			AvgResponseTime: averageResponseMs(bucket),
		})
	}
	return performance
}

// popularFieldCombinations ranks the sets of fields queries named, most used first.
// Field order within a query doesn't matter here.
func popularFieldCombinations(events []model.MatchEvent, limit int) []model.FieldCombination {
	counts := make(map[string]*model.FieldCombination)
	for _, event := range events {
		fields := append([]string{}, event.QueryFields...)
		sort.Strings(fields)
		key := strings.Join(fields, "\x00")
		if combo, ok := counts[key]; ok {
			combo.MatchCount++
			continue
		}
		counts[key] = &model.FieldCombination{Fields: fields, MatchCount: 1}
	}

	combos := make([]model.FieldCombination, 0, len(counts))
	for _, combo := range counts {
		combos = append(combos, *combo)
	}
	sort.Slice(combos, func(i, j int) bool {
		if combos[i].MatchCount != combos[j].MatchCount {
			return combos[i].MatchCount > combos[j].MatchCount
		}
		return strings.Join(combos[i].Fields, ",") < strings.Join(combos[j].Fields, ",")
	})

	if len(combos) > limit {
		combos = combos[:limit]
	}
	return combos
}

// catalogUsage reports match statistics for every existing catalog
func catalogUsage(catalogs []model.Catalog, events []model.MatchEvent) []model.CatalogUsage {
	type tally struct {
		matches, empty, results int
	}
	byCatalog := make(map[string]*tally)
	for _, event := range events {
		t, ok := byCatalog[event.CatalogName]
		if !ok {
			t = &tally{}
			byCatalog[event.CatalogName] = t
		}
		t.matches++
		t.results += event.ResultCount
		if event.ResultCount == 0 {
			t.empty++
		}
	}

	usage := make([]model.CatalogUsage, 0, len(catalogs))
	for _, c := range catalogs {
		u := model.CatalogUsage{
			CatalogName: c.Settings.Name,
			EntryCount:  c.EntryCount,
		}
		if t, ok := byCatalog[c.Settings.Name]; ok {
			u.MatchCount = t.matches
			u.EmptyResultCount = t.empty
			u.AvgResultSize = float64(t.results) / float64(t.matches)
		}
		usage = append(usage, u)
	}
	return usage
}

// responseTimeDistribution returns response time distribution
func responseTimeDistribution(events []model.MatchEvent) model.ResponseTimeDistribution {
	dist := model.ResponseTimeDistribution{}
	total := len(events)
	if total == 0 {
		return dist
	}

	for _, event := range events {
		switch {
		case event.ResponseTime < time.Millisecond:
			dist.Bucket0To1ms++
		case event.ResponseTime < 10*time.Millisecond:
			dist.Bucket1To10ms++
		case event.ResponseTime < 100*time.Millisecond:
			dist.Bucket10To100ms++
		default:
			dist.Bucket100msPlus++
		}
	}

	dist.Percentage0To1 = float64(dist.Bucket0To1ms) / float64(total) * 100
	dist.Percentage1To10 = float64(dist.Bucket1To10ms) / float64(total) * 100
	dist.Percentage10To100 = float64(dist.Bucket10To100ms) / float64(total) * 100
	dist.Percentage100Plus = float64(dist.Bucket100msPlus) / float64(total) * 100
	return dist
}

// loadData loads analytics data from file
func (s *Service) loadData() error {
	if s.dataFilePath == "" {
		return nil
	}

	var events []model.MatchEvent
	if err := persistence.LoadJSON(s.dataFilePath, &events); err != nil {
		if err == os.ErrNotExist {
			return nil
		}
		return err
	}
	if len(events) > maxEventsToKeep {
		events = events[len(events)-maxEventsToKeep:]
	}
	s.events = events
	return nil
}

// saveData writes the latest events. Saves are serialized so the newest snapshot lands last.
func (s *Service) saveData() error {
	s.saveMutex.Lock()
	defer s.saveMutex.Unlock()

	s.mutex.RLock()
	events := make([]model.MatchEvent, len(s.events))
	copy(events, s.events)
	s.mutex.RUnlock()

	return persistence.SaveJSON(s.dataFilePath, events)
}

package insights

import (
	"fmt"
	"sort"
	"time"

	"github.com/mehedi-hridoy/creator-pulse/pkg/contracts/domain"
)

// Metric names reported in posting windows and notes
const (
	MetricEngagementRate = "engagement_rate"
	MetricViews          = "views"
)

// NoteInsufficientTimestamps is the schedule note for platforms with fewer
// than MinTimestampedRecords dated posts
const NoteInsufficientTimestamps = "insufficient timestamps"

const (
	// MinTimestampedRecords is the minimum number of dated posts needed
	MinTimestampedRecords = 3
	topBuckets            = 6
	maxWindows            = 3
	windowHours           = 2
)

// ScheduleAnalyzer finds the best weekday/hour windows to post per platform
type ScheduleAnalyzer struct {
	backend NumericBackend
}

// NewScheduleAnalyzer creates a schedule analyzer
func NewScheduleAnalyzer(backend NumericBackend) *ScheduleAnalyzer {
	return &ScheduleAnalyzer{backend: backend}
}

// Analyze returns one schedule per platform, including empty ones
func (a *ScheduleAnalyzer) Analyze(ds *Dataset) map[string]domain.PlatformSchedule {
	out := make(map[string]domain.PlatformSchedule, len(ds.Platforms()))
	for _, platform := range ds.Platforms() {
		out[platform] = a.analyzePlatform(ds.Records(platform))
	}
	return out
}

type bucketKey struct {
	weekday int
	hour    int
}

type bucketMean struct {
	key  bucketKey
	mean float64
}

func (a *ScheduleAnalyzer) analyzePlatform(records []Record) domain.PlatformSchedule {
	dated := timestamped(records)
	if len(dated) < MinTimestampedRecords {
		return domain.PlatformSchedule{
			Recommendations: []domain.PostingWindow{},
			Note:            NoteInsufficientTimestamps,
		}
	}

	metric, pick := MetricEngagementRate, fieldER
	if a.backend.Sum(column(records, fieldER)) == 0 {
		metric, pick = MetricViews, fieldViews
	}

	values := make(map[bucketKey][]float64)
	for _, r := range dated {
		key := bucketKey{weekday: Weekday(*r.Timestamp), hour: r.Timestamp.Hour()}
		values[key] = append(values[key], pick(r))
	}

	// aggregation order is ascending (weekday, hour); the stable sort
	// below keeps it for equal means
	buckets := make([]bucketMean, 0, len(values))
	for key, vals := range values {
		buckets = append(buckets, bucketMean{key: key, mean: finite(a.backend.Mean(vals))})
	}
	sort.Slice(buckets, func(i, j int) bool {
		if buckets[i].key.weekday != buckets[j].key.weekday {
			return buckets[i].key.weekday < buckets[j].key.weekday
		}
		return buckets[i].key.hour < buckets[j].key.hour
	})
	sort.SliceStable(buckets, func(i, j int) bool {
		return buckets[i].mean > buckets[j].mean
	})
	if len(buckets) > topBuckets {
		buckets = buckets[:topBuckets]
	}

	windows := make([]domain.PostingWindow, 0, maxWindows)
	seen := make(map[bucketKey]bool, len(buckets))
	for _, b := range buckets {
		if seen[b.key] {
			continue
		}
		seen[b.key] = true
		windows = append(windows, domain.PostingWindow{
			Weekday:   b.key.weekday,
			HourStart: b.key.hour,
			HourEnd:   (b.key.hour + windowHours) % 24,
			Score:     b.mean,
			Metric:    metric,
		})
		if len(windows) == maxWindows {
			break
		}
	}

	return domain.PlatformSchedule{
		Recommendations: windows,
		Note:            fmt.Sprintf("based on mean %s by weekday/hour", metric),
	}
}

// Weekday returns the day of week with Monday as 0 and Sunday as 6
func Weekday(t time.Time) int {
	return (int(t.Weekday()) + 6) % 7
}

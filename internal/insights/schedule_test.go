package insights

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mehedi-hridoy/creator-pulse/pkg/contracts/domain"
)

// monday is 2024-01-01, a Monday
var monday = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

func post(at time.Time, views, likes, comments float64) domain.RawRecord {
	return domain.RawRecord{
		"views":    views,
		"likes":    likes,
		"comments": comments,
		"postedAt": at.Format(time.RFC3339),
	}
}

func scheduleFor(t *testing.T, records ...domain.RawRecord) domain.PlatformSchedule {
	t.Helper()
	in := domain.NewInput()
	in.Add("youtube", records...)
	out := NewScheduleAnalyzer(NewManualBackend()).Analyze(Normalize(in))
	require.Contains(t, out, "youtube")
	return out["youtube"]
}

func TestWeekday(t *testing.T) {
	assert.Equal(t, 0, Weekday(monday))
	assert.Equal(t, 1, Weekday(monday.AddDate(0, 0, 1)))
	assert.Equal(t, 6, Weekday(monday.AddDate(0, 0, 6)))
}

func TestScheduleInsufficientTimestamps(t *testing.T) {
	undated := domain.RawRecord{"views": 100.0, "likes": 5.0}

	for dated := 0; dated < MinTimestampedRecords; dated++ {
		records := []domain.RawRecord{undated, undated, undated}
		for i := 0; i < dated; i++ {
			records = append(records, post(monday.Add(time.Duration(i)*time.Hour), 100, 5, 0))
		}

		sched := scheduleFor(t, records...)
		assert.Equal(t, NoteInsufficientTimestamps, sched.Note, "dated=%d", dated)
		assert.NotNil(t, sched.Recommendations)
		assert.Empty(t, sched.Recommendations)
	}
}

func TestScheduleEmptyPlatform(t *testing.T) {
	in := domain.NewInput()
	in.Platforms["instagram"] = []domain.RawRecord{}

	out := NewScheduleAnalyzer(NewManualBackend()).Analyze(Normalize(in))
	require.Contains(t, out, "instagram")
	assert.Equal(t, NoteInsufficientTimestamps, out["instagram"].Note)
}

func TestScheduleRanksByEngagementRate(t *testing.T) {
	sched := scheduleFor(t,
		post(monday.Add(10*time.Hour), 100, 10, 0),
		post(monday.Add(10*time.Hour+30*time.Minute), 100, 30, 0),
		post(monday.AddDate(0, 0, 1).Add(22*time.Hour), 100, 50, 0),
		post(monday.AddDate(0, 0, 2).Add(9*time.Hour), 100, 5, 0),
	)

	assert.Equal(t, "based on mean engagement_rate by weekday/hour", sched.Note)
	require.Len(t, sched.Recommendations, 3)

	first := sched.Recommendations[0]
	assert.Equal(t, 1, first.Weekday)
	assert.Equal(t, 22, first.HourStart)
	assert.Equal(t, 0, first.HourEnd)
	assert.InDelta(t, 0.5, first.Score, 1e-12)
	assert.Equal(t, MetricEngagementRate, first.Metric)

	second := sched.Recommendations[1]
	assert.Equal(t, 0, second.Weekday)
	assert.Equal(t, 10, second.HourStart)
	assert.Equal(t, 12, second.HourEnd)
	assert.InDelta(t, 0.2, second.Score, 1e-12)

	third := sched.Recommendations[2]
	assert.Equal(t, 2, third.Weekday)
	assert.Equal(t, 9, third.HourStart)
	assert.InDelta(t, 0.05, third.Score, 1e-12)
}

func TestScheduleFallsBackToViews(t *testing.T) {
	sched := scheduleFor(t,
		post(monday.Add(8*time.Hour), 500, 0, 0),
		post(monday.Add(9*time.Hour), 1500, 0, 0),
		post(monday.Add(10*time.Hour), 900, 0, 0),
	)

	assert.Equal(t, "based on mean views by weekday/hour", sched.Note)
	require.Len(t, sched.Recommendations, 3)
	assert.Equal(t, 9, sched.Recommendations[0].HourStart)
	assert.Equal(t, 1500.0, sched.Recommendations[0].Score)
	assert.Equal(t, MetricViews, sched.Recommendations[0].Metric)
	assert.Equal(t, 10, sched.Recommendations[1].HourStart)
	assert.Equal(t, 8, sched.Recommendations[2].HourStart)
}

func TestScheduleTiesKeepWeekdayHourOrder(t *testing.T) {
	sched := scheduleFor(t,
		post(monday.AddDate(0, 0, 3).Add(7*time.Hour), 100, 10, 0),
		post(monday.Add(15*time.Hour), 100, 10, 0),
		post(monday.Add(6*time.Hour), 100, 10, 0),
		post(monday.AddDate(0, 0, 1).Add(1*time.Hour), 100, 10, 0),
	)

	require.Len(t, sched.Recommendations, 3)
	got := make([][2]int, 0, 3)
	for _, w := range sched.Recommendations {
		got = append(got, [2]int{w.Weekday, w.HourStart})
	}
	assert.Equal(t, [][2]int{{0, 6}, {0, 15}, {1, 1}}, got)
}

func TestScheduleWindowsAreUnique(t *testing.T) {
	var records []domain.RawRecord
	for i := 0; i < 10; i++ {
		records = append(records, post(monday.Add(time.Duration(i%2)*time.Hour), 100, float64(i), 0))
	}

	sched := scheduleFor(t, records...)
	require.Len(t, sched.Recommendations, 2)
	assert.NotEqual(t, sched.Recommendations[0].HourStart, sched.Recommendations[1].HourStart)
}

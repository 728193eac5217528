package insights

import (
	"math"
	"sort"
	"time"
)

// UnknownPlatform is used for records that arrive without a platform name
const UnknownPlatform = "unknown"

// Record is one normalized post
type Record struct {
	Platform        string
	Timestamp       *time.Time
	Views           float64
	Likes           float64
	Comments        float64
	Shares          float64
	DurationSeconds float64
	Title           string
	EngagementRate  float64
}

// HasTimestamp reports whether the record carries a parsed posting time
func (r Record) HasTimestamp() bool {
	return r.Timestamp != nil
}

// EngagementRate returns (likes + comments) / max(views, 1).
// Inputs are expected to be non-negative, so the result is too, and it is
// always finite.
func EngagementRate(views, likes, comments float64) float64 {
	denom := views
	if denom < 1 {
		denom = 1
	}
	return finite((likes + comments) / denom)
}

// finite caps overflowed values at ±math.MaxFloat64 and maps NaN to 0, so
// every number in a report can be encoded
func finite(x float64) float64 {
	switch {
	case math.IsNaN(x):
		return 0
	case math.IsInf(x, 1):
		return math.MaxFloat64
	case math.IsInf(x, -1):
		return -math.MaxFloat64
	}
	return x
}

// Dataset groups normalized records by platform. It is built once by
// Normalize and shared read-only by all analyzers; callers must not modify
// the slices it returns.
type Dataset struct {
	platforms []string
	groups    map[string][]Record
}

// NewDataset builds a dataset from already-normalized groups.
// Platforms are iterated in ascending name order.
func NewDataset(groups map[string][]Record) *Dataset {
	ds := &Dataset{groups: make(map[string][]Record, len(groups))}
	for name, recs := range groups {
		ds.groups[name] = recs
		ds.platforms = append(ds.platforms, name)
	}
	sort.Strings(ds.platforms)
	return ds
}

// Platforms returns the platform names in ascending order
func (d *Dataset) Platforms() []string {
	return d.platforms
}

// Records returns the ordered records of a platform
func (d *Dataset) Records(platform string) []Record {
	return d.groups[platform]
}

// Len returns the total number of records
func (d *Dataset) Len() int {
	n := 0
	for _, recs := range d.groups {
		n += len(recs)
	}
	return n
}

func timestamped(records []Record) []Record {
	out := make([]Record, 0, len(records))
	for _, r := range records {
		if r.HasTimestamp() {
			out = append(out, r)
		}
	}
	return out
}

func column(records []Record, pick func(Record) float64) []float64 {
	out := make([]float64, len(records))
	for i, r := range records {
		out[i] = pick(r)
	}
	return out
}

func fieldViews(r Record) float64    { return r.Views }
func fieldLikes(r Record) float64    { return r.Likes }
func fieldComments(r Record) float64 { return r.Comments }
func fieldDuration(r Record) float64 { return r.DurationSeconds }
func fieldER(r Record) float64       { return r.EngagementRate }

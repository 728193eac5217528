package insights

import (
	"encoding/json"
	"math"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/araddon/dateparse"

	"github.com/mehedi-hridoy/creator-pulse/pkg/contracts/domain"
)

// Raw record keys understood by the normalizer
const (
	KeyViews       = "views"
	KeyLikes       = "likes"
	KeyComments    = "comments"
	KeyShares      = "shares"
	KeyPostedAt    = "postedAt"
	KeyTitle       = "title"
	KeyMessage     = "message"
	KeyText        = "text"
	KeyDurationSec = "durationSec"
	KeyPlatform    = "platform"
)

// Normalize converts raw per-platform records into a Dataset.
// Every raw record yields exactly one Record; none are dropped or invented.
func Normalize(in domain.Input) *Dataset {
	names := make([]string, 0, len(in.Platforms))
	for name := range in.Platforms {
		names = append(names, name)
	}
	// names that collapse to the same platform merge in a stable order
	sort.Strings(names)

	groups := make(map[string][]Record, len(in.Platforms))
	for _, name := range names {
		raws := in.Platforms[name]
		platform := strings.TrimSpace(name)
		if platform == "" {
			platform = UnknownPlatform
		}
		recs := groups[platform]
		for _, raw := range raws {
			recs = append(recs, NormalizeRecord(platform, raw))
		}
		if recs == nil {
			recs = []Record{}
		}
		groups[platform] = recs
	}
	return NewDataset(groups)
}

// NormalizeRecord applies the coercion and defaulting rules to one raw record
func NormalizeRecord(platform string, raw domain.RawRecord) Record {
	if platform == "" {
		platform = UnknownPlatform
	}
	r := Record{
		Platform:        platform,
		Views:           coerceMetric(raw[KeyViews]),
		Likes:           coerceMetric(raw[KeyLikes]),
		Comments:        coerceMetric(raw[KeyComments]),
		Shares:          coerceMetric(raw[KeyShares]),
		DurationSeconds: coerceMetric(raw[KeyDurationSec]),
		Title:           firstText(raw, KeyTitle, KeyMessage, KeyText),
	}
	if ts, ok := ParseTimestamp(raw[KeyPostedAt]); ok {
		r.Timestamp = &ts
	}
	r.EngagementRate = EngagementRate(r.Views, r.Likes, r.Comments)
	return r
}

// ParseTimestamp parses a posting time. The permissive parser is tried
// first, then strict ISO-8601. Non-string and empty values are absent.
func ParseTimestamp(v interface{}) (time.Time, bool) {
	s, ok := v.(string)
	if !ok {
		return time.Time{}, false
	}
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	if t, err := dateparse.ParseIn(s, time.UTC); err == nil {
		return t, true
	}
	return parseISO(s)
}

// parseISO is the strict fallback for strings the permissive parser rejects.
// RFC3339 accepts both "Z" and "+00:00", so offsets need no rewriting.
func parseISO(s string) (time.Time, bool) {
	for _, layout := range []string{time.RFC3339Nano, "2006-01-02T15:04:05", "2006-01-02"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), true
		}
	}
	return time.Time{}, false
}

// ParseNumber is a best-effort numeric parse of a JSON value
func ParseNumber(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		return f, err == nil
	default:
		return 0, false
	}
}

// coerceMetric maps anything that is not a finite non-negative number to 0
func coerceMetric(v interface{}) float64 {
	f, ok := ParseNumber(v)
	if !ok || math.IsNaN(f) || math.IsInf(f, 0) || f < 0 {
		return 0
	}
	return f
}

func firstText(raw domain.RawRecord, keys ...string) string {
	for _, k := range keys {
		if s, ok := raw[k].(string); ok && s != "" {
			return s
		}
	}
	return ""
}

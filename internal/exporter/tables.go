package exporter

import (
	"sort"
	"strings"
	"time"

	"github.com/mehedi-hridoy/creator-pulse/pkg/contracts/domain"
)

// Table names, used as CSV file stems and XLSX sheet names
const (
	TablePostingSchedule = "posting_schedule"
	TablePlatformFocus   = "platform_focus"
	TableAlerts          = "alerts"
	TableContentThemes   = "content_themes"
	TableMeta            = "meta"
)

// examplesSeparator joins theme example titles into one cell
const examplesSeparator = " | "

var weekdayNames = [7]string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}

// Table is one report section flattened to rows. Cells hold nil, string,
// int or float64.
type Table struct {
	Name    string
	Headers []string
	Rows    [][]interface{}
}

// Tables flattens a report into one table per section, in a fixed order
func Tables(r *domain.Report) []Table {
	return []Table{
		scheduleTable(r.PostingSchedule),
		focusTable(r.PlatformFocus),
		alertsTable(r.Alerts),
		themesTable(r.ContentThemes),
		metaTable(r),
	}
}

// scheduleTable emits one row per window. A platform without windows still
// gets a row so its note survives.
func scheduleTable(schedule map[string]domain.PlatformSchedule) Table {
	t := Table{
		Name:    TablePostingSchedule,
		Headers: []string{"platform", "weekday", "weekday_name", "hour_start", "hour_end", "score", "metric", "note"},
	}

	platforms := make([]string, 0, len(schedule))
	for p := range schedule {
		platforms = append(platforms, p)
	}
	sort.Strings(platforms)

	for _, p := range platforms {
		s := schedule[p]
		if len(s.Recommendations) == 0 {
			t.Rows = append(t.Rows, []interface{}{p, nil, nil, nil, nil, nil, nil, s.Note})
			continue
		}
		for _, w := range s.Recommendations {
			t.Rows = append(t.Rows, []interface{}{
				p, w.Weekday, weekdayName(w.Weekday), w.HourStart, w.HourEnd, w.Score, w.Metric, s.Note,
			})
		}
	}
	return t
}

func focusTable(focus []domain.PlatformFocus) Table {
	t := Table{
		Name:    TablePlatformFocus,
		Headers: []string{"platform", "engagement_rate", "growth", "score", "decision"},
	}
	for _, f := range focus {
		t.Rows = append(t.Rows, []interface{}{f.Platform, f.EngagementRate, f.Growth, f.Score, string(f.Decision)})
	}
	return t
}

func alertsTable(alerts []domain.GrowthAlert) Table {
	t := Table{
		Name:    TableAlerts,
		Headers: []string{"platform", "type", "severity", "slope", "volatility", "mean"},
	}
	for _, a := range alerts {
		t.Rows = append(t.Rows, []interface{}{
			a.Platform, string(a.Type), string(a.Severity),
			optional(a.Details.Slope), optional(a.Details.Volatility), a.Details.Mean,
		})
	}
	return t
}

func themesTable(themes []domain.ContentTheme) Table {
	t := Table{
		Name:    TableContentThemes,
		Headers: []string{"platform", "cluster_id", "count", "avg_engagement_rate", "avg_views", "examples"},
	}
	for _, th := range themes {
		t.Rows = append(t.Rows, []interface{}{
			th.Platform, th.ClusterID, th.Count, th.AvgEngagementRate, th.AvgViews,
			strings.Join(th.Examples, examplesSeparator),
		})
	}
	return t
}

func metaTable(r *domain.Report) Table {
	t := Table{
		Name:    TableMeta,
		Headers: []string{"key", "value"},
		Rows: [][]interface{}{
			{"generated_at", r.GeneratedAt.UTC().Format(time.RFC3339Nano)},
			{"engine", r.Meta.Engine},
		},
	}
	for _, n := range r.Meta.Notes {
		t.Rows = append(t.Rows, []interface{}{"note", n})
	}
	return t
}

func weekdayName(d int) string {
	if d < 0 || d >= len(weekdayNames) {
		return ""
	}
	return weekdayNames[d]
}

func optional(v *float64) interface{} {
	if v == nil {
		return nil
	}
	return *v
}

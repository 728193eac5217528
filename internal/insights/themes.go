package insights

import (
	"context"
	"errors"
	"log/slog"
	"sort"

	"github.com/mehedi-hridoy/creator-pulse/pkg/contracts/domain"
)

const (
	// DefaultClusterK is the requested number of clusters per platform
	DefaultClusterK = 3
	// DefaultTopThemes caps the global theme ranking
	DefaultTopThemes = 9

	maxFeatureER      = 5.0
	recordsPerCluster = 5
	maxExamples       = 3
)

// ThemeClusterer groups posts into engagement/performance archetypes
type ThemeClusterer struct {
	backend NumericBackend
	k       int
	top     int
	opts    ClusterOptions
	logger  *slog.Logger
}

// NewThemeClusterer creates a clusterer. Non-positive k and top fall back
// to DefaultClusterK and DefaultTopThemes.
func NewThemeClusterer(backend NumericBackend, k, top int, opts ClusterOptions, logger *slog.Logger) *ThemeClusterer {
	if k <= 0 {
		k = DefaultClusterK
	}
	if top <= 0 {
		top = DefaultTopThemes
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &ThemeClusterer{backend: backend, k: k, top: top, opts: opts, logger: logger}
}

// ThemeResult is the ranked theme list plus the platforms that had to use
// the tertile split although the backend supports clustering
type ThemeResult struct {
	Themes   []domain.ContentTheme
	Fallback []string
}

// Cluster clusters every non-empty platform and returns the global top themes
func (c *ThemeClusterer) Cluster(ctx context.Context, ds *Dataset) ThemeResult {
	result := ThemeResult{Themes: make([]domain.ContentTheme, 0)}
	for _, platform := range ds.Platforms() {
		records := ds.Records(platform)
		if len(records) == 0 {
			continue
		}

		themes, err := c.clusterPlatform(platform, records)
		if err != nil {
			if c.backend.Capabilities().Clustering {
				c.logger.WarnContext(ctx, "clustering failed, using tertile split",
					slog.String("platform", platform),
					slog.String("error", err.Error()))
				result.Fallback = append(result.Fallback, platform)
			}
			themes = TertileThemes(platform, records)
		}
		result.Themes = append(result.Themes, themes...)
	}

	result.Themes = RankThemes(result.Themes, c.top)
	return result
}

func (c *ThemeClusterer) clusterPlatform(platform string, records []Record) ([]domain.ContentTheme, error) {
	if !c.backend.Capabilities().Clustering {
		return nil, ErrClusteringUnavailable
	}

	k := len(records) / recordsPerCluster
	if k < 1 {
		k = 1
	}
	if c.k < k {
		k = c.k
	}

	labels, err := c.backend.Cluster(c.features(records), k, c.opts)
	if err != nil {
		return nil, err
	}
	if len(labels) != len(records) {
		return nil, errors.New("cluster: label count does not match record count")
	}

	members := make(map[int][]Record)
	for i, label := range labels {
		members[label] = append(members[label], records[i])
	}
	ids := make([]int, 0, len(members))
	for id := range members {
		ids = append(ids, id)
	}
	sort.Ints(ids)

	themes := make([]domain.ContentTheme, 0, len(ids))
	for _, id := range ids {
		themes = append(themes, c.theme(platform, id, members[id]))
	}
	return themes, nil
}

// features builds one row per record: clamped engagement rate followed by
// z-scored views, likes, comments and duration
func (c *ThemeClusterer) features(records []Record) [][]float64 {
	cols := [][]float64{
		c.backend.ZScore(column(records, fieldViews)),
		c.backend.ZScore(column(records, fieldLikes)),
		c.backend.ZScore(column(records, fieldComments)),
		c.backend.ZScore(column(records, fieldDuration)),
	}
	points := make([][]float64, len(records))
	for i, r := range records {
		row := make([]float64, 0, len(cols)+1)
		row = append(row, clamp(r.EngagementRate, 0, maxFeatureER))
		for _, col := range cols {
			row = append(row, finite(col[i]))
		}
		points[i] = row
	}
	return points
}

func (c *ThemeClusterer) theme(platform string, id int, members []Record) domain.ContentTheme {
	return domain.ContentTheme{
		Platform:          platform,
		ClusterID:         id,
		Count:             len(members),
		AvgEngagementRate: finite(c.backend.Mean(column(members, fieldER))),
		AvgViews:          finite(c.backend.Mean(column(members, fieldViews))),
		Examples:          exampleTitles(members),
	}
}

// TertileThemes sorts records by engagement rate and cuts them at rank
// indices floor(0.33n) and floor(0.66n). Every record lands in exactly one
// bucket; empty buckets are omitted.
func TertileThemes(platform string, records []Record) []domain.ContentTheme {
	sorted := make([]Record, len(records))
	copy(sorted, records)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].EngagementRate < sorted[j].EngagementRate
	})

	n := len(sorted)
	cut1 := int(float64(n) * 0.33)
	cut2 := int(float64(n) * 0.66)
	buckets := [][]Record{sorted[:cut1], sorted[cut1:cut2], sorted[cut2:]}

	manual := ManualBackend{}
	themes := make([]domain.ContentTheme, 0, len(buckets))
	for id, bucket := range buckets {
		if len(bucket) == 0 {
			continue
		}
		themes = append(themes, domain.ContentTheme{
			Platform:          platform,
			ClusterID:         id,
			Count:             len(bucket),
			AvgEngagementRate: finite(manual.Mean(column(bucket, fieldER))),
			AvgViews:          finite(manual.Mean(column(bucket, fieldViews))),
			Examples:          exampleTitles(bucket),
		})
	}
	return themes
}

// RankThemes orders themes by engagement rate, then views, both descending,
// and keeps the first top entries
func RankThemes(themes []domain.ContentTheme, top int) []domain.ContentTheme {
	ranked := make([]domain.ContentTheme, len(themes))
	copy(ranked, themes)
	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].AvgEngagementRate != ranked[j].AvgEngagementRate {
			return ranked[i].AvgEngagementRate > ranked[j].AvgEngagementRate
		}
		return ranked[i].AvgViews > ranked[j].AvgViews
	})
	if top >= 0 && len(ranked) > top {
		ranked = ranked[:top]
	}
	return ranked
}

func exampleTitles(records []Record) []string {
	out := make([]string, 0, maxExamples)
	for _, r := range records {
		if r.Title == "" {
			continue
		}
		out = append(out, r.Title)
		if len(out) == maxExamples {
			break
		}
	}
	return out
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

package insights

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mehedi-hridoy/creator-pulse/pkg/contracts/domain"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func recordsWithER(n int) []Record {
	out := make([]Record, n)
	for i := 0; i < n; i++ {
		out[i] = NormalizeRecord("youtube", domain.RawRecord{
			"views": 100.0,
			"likes": float64((i * 7) % n),
			"title": fmt.Sprintf("post %d", i),
		})
	}
	return out
}

func TestTertileThemesPartition(t *testing.T) {
	for _, n := range []int{1, 2, 3, 4, 5, 10, 17, 100} {
		t.Run(fmt.Sprintf("n=%d", n), func(t *testing.T) {
			themes := TertileThemes("youtube", recordsWithER(n))

			total := 0
			for _, th := range themes {
				assert.Greater(t, th.Count, 0)
				assert.GreaterOrEqual(t, th.ClusterID, 0)
				assert.LessOrEqual(t, th.ClusterID, 2)
				assert.LessOrEqual(t, len(th.Examples), maxExamples)
				total += th.Count
			}
			assert.Equal(t, n, total)
		})
	}
}

func TestTertileThemesCuts(t *testing.T) {
	themes := TertileThemes("youtube", recordsWithER(10))
	require.Len(t, themes, 3)
	assert.Equal(t, 3, themes[0].Count)
	assert.Equal(t, 3, themes[1].Count)
	assert.Equal(t, 4, themes[2].Count)
	assert.Less(t, themes[0].AvgEngagementRate, themes[1].AvgEngagementRate)
	assert.Less(t, themes[1].AvgEngagementRate, themes[2].AvgEngagementRate)

	single := TertileThemes("youtube", recordsWithER(1))
	require.Len(t, single, 1)
	assert.Equal(t, 2, single[0].ClusterID)
}

func TestExampleTitles(t *testing.T) {
	records := []Record{
		{Title: ""},
		{Title: "a"},
		{Title: "b"},
		{Title: ""},
		{Title: "c"},
		{Title: "d"},
	}
	assert.Equal(t, []string{"a", "b", "c"}, exampleTitles(records))
	assert.NotNil(t, exampleTitles(nil))
	assert.Empty(t, exampleTitles([]Record{{}}))
}

func TestRankThemes(t *testing.T) {
	var themes []domain.ContentTheme
	for i := 0; i < 12; i++ {
		themes = append(themes, domain.ContentTheme{
			Platform:          "p",
			ClusterID:         i,
			AvgEngagementRate: float64(i % 4),
			AvgViews:          float64(i),
		})
	}

	ranked := RankThemes(themes, DefaultTopThemes)
	require.Len(t, ranked, DefaultTopThemes)
	for i := 1; i < len(ranked); i++ {
		prev, cur := ranked[i-1], ranked[i]
		if prev.AvgEngagementRate == cur.AvgEngagementRate {
			assert.GreaterOrEqual(t, prev.AvgViews, cur.AvgViews)
		} else {
			assert.Greater(t, prev.AvgEngagementRate, cur.AvgEngagementRate)
		}
	}
	assert.Equal(t, 11, ranked[0].ClusterID)
	assert.Len(t, themes, 12, "input must not be modified")
}

func TestThemeClustererManualUsesTertiles(t *testing.T) {
	ds := NewDataset(map[string][]Record{
		"youtube": recordsWithER(10),
		"tiktok":  {},
	})

	res := NewThemeClusterer(NewManualBackend(), 3, 9, DefaultClusterOptions(), discardLogger()).Cluster(context.Background(), ds)
	assert.Empty(t, res.Fallback)
	assert.Equal(t, RankThemes(TertileThemes("youtube", recordsWithER(10)), 9), res.Themes)
}

type failingClusterBackend struct {
	ManualBackend
}

func (failingClusterBackend) Capabilities() Capabilities {
	return Capabilities{Clustering: true}
}

func (failingClusterBackend) Cluster([][]float64, int, ClusterOptions) ([]int, error) {
	return nil, fmt.Errorf("did not converge")
}

func TestThemeClustererFallbackOnError(t *testing.T) {
	ds := NewDataset(map[string][]Record{"youtube": recordsWithER(6)})

	res := NewThemeClusterer(failingClusterBackend{}, 3, 9, DefaultClusterOptions(), discardLogger()).Cluster(context.Background(), ds)
	assert.Equal(t, []string{"youtube"}, res.Fallback)

	total := 0
	for _, th := range res.Themes {
		total += th.Count
	}
	assert.Equal(t, 6, total)
}

func TestThemeClustererGlobalTop(t *testing.T) {
	groups := map[string][]Record{}
	for _, p := range []string{"a", "b", "c", "d", "e"} {
		groups[p] = recordsWithER(12)
	}

	res := NewThemeClusterer(NewManualBackend(), 3, 9, DefaultClusterOptions(), discardLogger()).Cluster(context.Background(), NewDataset(groups))
	assert.Len(t, res.Themes, 9)
}

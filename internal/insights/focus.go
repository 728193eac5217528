package insights

import (
	"sort"
	"time"

	"github.com/mehedi-hridoy/creator-pulse/pkg/contracts/domain"
)

const (
	// InvestThreshold is the lowest score that earns invest_more
	InvestThreshold = 1.0
	// DeprioritizeThreshold is the score below which a platform is deprioritized
	DeprioritizeThreshold = 0.6

	growthWindow = 30 * 24 * time.Hour
)

// FocusScorer ranks platforms by engagement and recent growth
type FocusScorer struct {
	backend NumericBackend
	now     func() time.Time
}

// NewFocusScorer creates a scorer. now defines the end of the growth window.
func NewFocusScorer(backend NumericBackend, now func() time.Time) *FocusScorer {
	if now == nil {
		now = time.Now
	}
	return &FocusScorer{backend: backend, now: now}
}

// Score returns one entry per non-empty platform, best score first
func (s *FocusScorer) Score(ds *Dataset) []domain.PlatformFocus {
	now := s.now()
	out := make([]domain.PlatformFocus, 0, len(ds.Platforms()))
	for _, platform := range ds.Platforms() {
		records := ds.Records(platform)
		if len(records) == 0 {
			continue
		}

		totalViews := s.backend.Sum(column(records, fieldViews))
		engaged := s.backend.Sum(column(records, fieldLikes)) + s.backend.Sum(column(records, fieldComments))
		er := finite(engaged / maxFloat(totalViews, 1))

		recent, prev := s.growthWindows(records, now)
		growth := finite((recent - prev) / maxFloat(prev, 1))
		score := finite(0.5*er + 0.5*(growth+1))

		out = append(out, domain.PlatformFocus{
			Platform:       platform,
			EngagementRate: er,
			Growth:         growth,
			Score:          score,
			Decision:       Decide(score),
		})
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Score > out[j].Score
	})
	return out
}

// growthWindows sums views over the last 30 days and the 30 before that.
// Without any timestamps the first and last thirds of the records stand in.
func (s *FocusScorer) growthWindows(records []Record, now time.Time) (recent, prev float64) {
	dated := timestamped(records)
	if len(dated) > 0 {
		recentCut := now.Add(-growthWindow)
		prevCut := now.Add(-2 * growthWindow)
		var recentViews, prevViews []float64
		for _, r := range dated {
			ts := *r.Timestamp
			switch {
			case !ts.Before(recentCut):
				recentViews = append(recentViews, r.Views)
			case !ts.Before(prevCut):
				prevViews = append(prevViews, r.Views)
			}
		}
		return s.backend.Sum(recentViews), s.backend.Sum(prevViews)
	}

	third := len(records) / 3
	if third < 1 {
		third = 1
	}
	recent = s.backend.Sum(column(records[len(records)-third:], fieldViews))
	prev = s.backend.Sum(column(records[:third], fieldViews))
	return recent, prev
}

// Decide maps a focus score to a recommendation
func Decide(score float64) domain.FocusDecision {
	switch {
	case score >= InvestThreshold:
		return domain.DecisionInvestMore
	case score < DeprioritizeThreshold:
		return domain.DecisionDeprioritize
	default:
		return domain.DecisionMaintain
	}
}

func maxFloat(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}

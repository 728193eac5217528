package testutil

import (
	"fmt"
	"time"

	"github.com/mehedi-hridoy/creator-pulse/pkg/contracts/domain"
)

// InputBuilder assembles raw platform records with predictable metrics.
// Record i of a platform is posted i days after start at 10:00 UTC and has
// views = base + 10*i, likes = views/10 and comments = views/100.
type InputBuilder struct {
	start time.Time
	in    domain.Input
}

// NewInputBuilder starts an empty input whose first post is on start
func NewInputBuilder(start time.Time) *InputBuilder {
	return &InputBuilder{start: start.UTC(), in: domain.NewInput()}
}

// Platform appends n records for platform
func (b *InputBuilder) Platform(platform string, n int, baseViews float64) *InputBuilder {
	for i := 0; i < n; i++ {
		views := baseViews + float64(10*i)
		posted := time.Date(b.start.Year(), b.start.Month(), b.start.Day()+i, 10, 0, 0, 0, time.UTC)
		b.in.Add(platform, domain.RawRecord{
			"views":    views,
			"likes":    views / 10,
			"comments": views / 100,
			"postedAt": posted.Format(time.RFC3339),
			"title":    fmt.Sprintf("%s post %d", platform, i+1),
		})
	}
	if n == 0 && b.in.Platforms[platform] == nil {
		b.in.Platforms[platform] = []domain.RawRecord{}
	}
	return b
}

// Record appends one hand-written record
func (b *InputBuilder) Record(platform string, rec domain.RawRecord) *InputBuilder {
	b.in.Add(platform, rec)
	return b
}

// Build returns the assembled input
func (b *InputBuilder) Build() domain.Input {
	return b.in
}

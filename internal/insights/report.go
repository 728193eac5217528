package insights

import (
	"fmt"
	"strings"
	"time"

	"github.com/mehedi-hridoy/creator-pulse/pkg/contracts/domain"
)

// Static notes carried in every report
var staticNotes = []string{
	"v1 heuristics/statistics only; no heavy forecasting",
	"Posting schedule prefers engagement rate, falls back to views",
	"Manual backend with tertile theme split used when the vectorized backend is not available",
}

// Section names used in unavailable-section notes
const (
	SectionPostingSchedule = "postingSchedule"
	SectionPlatformFocus   = "platformFocus"
	SectionAlerts          = "alerts"
	SectionContentThemes   = "contentThemes"
)

// Sections holds the four analyzer outputs before assembly. A nil field
// means the analyzer produced nothing and is replaced by an empty value.
type Sections struct {
	PostingSchedule map[string]domain.PlatformSchedule
	PlatformFocus   []domain.PlatformFocus
	Alerts          []domain.GrowthAlert
	ContentThemes   []domain.ContentTheme
}

// Assembler merges analyzer outputs into a report
type Assembler struct {
	capabilities Capabilities
	now          func() time.Time
}

// NewAssembler creates an assembler stamping reports with now
func NewAssembler(capabilities Capabilities, now func() time.Time) *Assembler {
	if now == nil {
		now = time.Now
	}
	return &Assembler{capabilities: capabilities, now: now}
}

// Assemble builds the report. extraNotes are appended after the static notes.
func (a *Assembler) Assemble(s Sections, extraNotes ...string) *domain.Report {
	report := &domain.Report{
		GeneratedAt:     a.now().UTC(),
		PostingSchedule: s.PostingSchedule,
		PlatformFocus:   s.PlatformFocus,
		Alerts:          s.Alerts,
		ContentThemes:   s.ContentThemes,
		Meta: domain.ReportMeta{
			Engine: a.capabilities.Engine(),
			Notes:  make([]string, 0, len(staticNotes)+len(extraNotes)),
		},
	}
	if report.PostingSchedule == nil {
		report.PostingSchedule = map[string]domain.PlatformSchedule{}
	}
	if report.PlatformFocus == nil {
		report.PlatformFocus = []domain.PlatformFocus{}
	}
	if report.Alerts == nil {
		report.Alerts = []domain.GrowthAlert{}
	}
	if report.ContentThemes == nil {
		report.ContentThemes = []domain.ContentTheme{}
	}
	report.Meta.Notes = append(report.Meta.Notes, staticNotes...)
	report.Meta.Notes = append(report.Meta.Notes, extraNotes...)
	return report
}

const (
	unavailableSuffix = " unavailable: analyzer failed"
	fallbackPrefix    = "contentThemes for "
	fallbackSuffix    = " used tertile split after clustering failed"
)

// UnavailableNote is the meta note for a section whose analyzer failed
func UnavailableNote(section string) string {
	return section + unavailableSuffix
}

// FallbackNote is the meta note for a platform whose clustering failed
func FallbackNote(platform string) string {
	return fmt.Sprintf("%s%s%s", fallbackPrefix, platform, fallbackSuffix)
}

// Degraded counts the sections left empty and the platforms whose themes
// fell back to the tertile split, as recorded in the report notes
func Degraded(r *domain.Report) (unavailable, fallbacks int) {
	for _, n := range r.Meta.Notes {
		switch {
		case strings.HasSuffix(n, unavailableSuffix):
			unavailable++
		case strings.HasPrefix(n, fallbackPrefix) && strings.HasSuffix(n, fallbackSuffix):
			fallbacks++
		}
	}
	return unavailable, fallbacks
}

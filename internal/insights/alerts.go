package insights

import (
	"sort"
	"time"

	"github.com/mehedi-hridoy/creator-pulse/pkg/contracts/domain"
)

// Thresholds are fractions of the series mean
const (
	minSeriesPoints = 3

	decliningSlopeRatio     = -0.05
	decliningHighSlopeRatio = -0.15
	volatilityRatio         = 0.6
	stagnationPeakRatio     = 0.05
	stagnationSlopeRatio    = 0.01
)

// AlertDetector flags declining, volatile or stagnant view series
type AlertDetector struct {
	backend NumericBackend
}

// NewAlertDetector creates an alert detector
func NewAlertDetector(backend NumericBackend) *AlertDetector {
	return &AlertDetector{backend: backend}
}

// Detect returns at most one alert per platform
func (d *AlertDetector) Detect(ds *Dataset) []domain.GrowthAlert {
	alerts := make([]domain.GrowthAlert, 0)
	for _, platform := range ds.Platforms() {
		series := ViewSeries(ds.Records(platform))
		if alert, ok := d.Classify(platform, series); ok {
			alerts = append(alerts, alert)
		}
	}
	return alerts
}

// Classify evaluates declining, volatility and stagnation in that order and
// returns the first that matches. Series shorter than three points never alert.
func (d *AlertDetector) Classify(platform string, series []float64) (domain.GrowthAlert, bool) {
	if len(series) < minSeriesPoints {
		return domain.GrowthAlert{}, false
	}

	mean := finite(d.backend.Mean(series))
	slope := finite(d.backend.Slope(series))

	diffs := make([]float64, len(series)-1)
	for i := range diffs {
		diffs[i] = finite(series[i+1] - series[i])
	}
	volatility := finite(d.backend.PopStdDev(diffs))

	peak := series[0]
	for _, v := range series[1:] {
		if v > peak {
			peak = v
		}
	}
	last := series[len(series)-1]

	switch {
	case slope < decliningSlopeRatio*mean:
		severity := domain.SeverityMedium
		if slope < decliningHighSlopeRatio*mean {
			severity = domain.SeverityHigh
		}
		return domain.GrowthAlert{
			Platform: platform,
			Type:     domain.AlertDecliningTrend,
			Severity: severity,
			Details:  domain.AlertDetails{Slope: &slope, Mean: mean},
		}, true

	case volatility > volatilityRatio*mean:
		return domain.GrowthAlert{
			Platform: platform,
			Type:     domain.AlertHighVolatility,
			Severity: domain.SeverityMedium,
			Details:  domain.AlertDetails{Volatility: &volatility, Mean: mean},
		}, true

	case peak-last <= stagnationPeakRatio*peak && slope < stagnationSlopeRatio*mean:
		return domain.GrowthAlert{
			Platform: platform,
			Type:     domain.AlertStagnation,
			Severity: domain.SeverityLow,
			Details:  domain.AlertDetails{Slope: &slope, Mean: mean},
		}, true
	}

	return domain.GrowthAlert{}, false
}

// ViewSeries builds the chronological view series of a platform: monthly
// sums when any record is dated (undated records are left out, empty
// months are not filled), otherwise the raw per-record views.
func ViewSeries(records []Record) []float64 {
	dated := timestamped(records)
	if len(dated) == 0 {
		return column(records, fieldViews)
	}

	sums := make(map[time.Time]float64)
	for _, r := range dated {
		ts := *r.Timestamp
		month := time.Date(ts.Year(), ts.Month(), 1, 0, 0, 0, 0, time.UTC)
		sums[month] += r.Views
	}

	months := make([]time.Time, 0, len(sums))
	for m := range sums {
		months = append(months, m)
	}
	sort.Slice(months, func(i, j int) bool { return months[i].Before(months[j]) })

	series := make([]float64, len(months))
	for i, m := range months {
		series[i] = finite(sums[m])
	}
	return series
}

package insights

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mehedi-hridoy/creator-pulse/pkg/contracts/domain"
)

func TestClassify(t *testing.T) {
	d := NewAlertDetector(NewManualBackend())

	tests := []struct {
		name     string
		series   []float64
		alert    bool
		kind     domain.AlertType
		severity domain.AlertSeverity
	}{
		{"steep decline", []float64{100, 80, 60, 40}, true, domain.AlertDecliningTrend, domain.SeverityHigh},
		{"mild decline", []float64{100, 95, 90}, true, domain.AlertDecliningTrend, domain.SeverityMedium},
		{"zig zag", []float64{100, 300, 100, 300, 100}, true, domain.AlertHighVolatility, domain.SeverityMedium},
		{"flat at peak", []float64{100, 100, 100}, true, domain.AlertStagnation, domain.SeverityLow},
		{"flat, 4% under peak", []float64{100, 100, 100, 100, 96}, true, domain.AlertStagnation, domain.SeverityLow},
		{"flat, 6% under peak", []float64{100, 100, 100, 100, 94}, false, "", ""},
		{"steady growth", []float64{100, 200, 300}, false, "", ""},
		{"all zero", []float64{0, 0, 0}, false, "", ""},
		{"too short", []float64{100, 10}, false, "", ""},
		{"empty", nil, false, "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			alert, ok := d.Classify("youtube", tt.series)
			require.Equal(t, tt.alert, ok)
			if !ok {
				return
			}
			assert.Equal(t, "youtube", alert.Platform)
			assert.Equal(t, tt.kind, alert.Type)
			assert.Equal(t, tt.severity, alert.Severity)
		})
	}
}

func TestClassifyDetails(t *testing.T) {
	d := NewAlertDetector(NewManualBackend())

	decline, ok := d.Classify("x", []float64{100, 80, 60, 40})
	require.True(t, ok)
	require.NotNil(t, decline.Details.Slope)
	assert.Nil(t, decline.Details.Volatility)
	assert.InDelta(t, -20.0, *decline.Details.Slope, 1e-12)
	assert.InDelta(t, 70.0, decline.Details.Mean, 1e-12)

	volatile, ok := d.Classify("x", []float64{100, 300, 100, 300, 100})
	require.True(t, ok)
	require.NotNil(t, volatile.Details.Volatility)
	assert.Nil(t, volatile.Details.Slope)
	assert.InDelta(t, 200.0, *volatile.Details.Volatility, 1e-9)
}

func TestClassifyPriority(t *testing.T) {
	d := NewAlertDetector(NewManualBackend())

	// declining and volatile at once: declining wins
	alert, ok := d.Classify("x", []float64{1000, 100, 900, 50, 10})
	require.True(t, ok)
	assert.Equal(t, domain.AlertDecliningTrend, alert.Type)
}

func TestViewSeries(t *testing.T) {
	t.Run("monthly sums without zero fill", func(t *testing.T) {
		records := []Record{
			NormalizeRecord("x", post(time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC), 7, 0, 0)),
			NormalizeRecord("x", post(time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC), 10, 0, 0)),
			NormalizeRecord("x", post(time.Date(2024, 1, 20, 0, 0, 0, 0, time.UTC), 20, 0, 0)),
			NormalizeRecord("x", domain.RawRecord{"views": 1000.0}),
		}
		assert.Equal(t, []float64{30, 7}, ViewSeries(records))
	})

	t.Run("raw views when undated", func(t *testing.T) {
		records := []Record{
			NormalizeRecord("x", domain.RawRecord{"views": 3.0}),
			NormalizeRecord("x", domain.RawRecord{"views": 1.0}),
			NormalizeRecord("x", domain.RawRecord{"views": 2.0}),
		}
		assert.Equal(t, []float64{3, 1, 2}, ViewSeries(records))
	})

	t.Run("empty", func(t *testing.T) {
		assert.Empty(t, ViewSeries(nil))
	})
}

func TestDetect(t *testing.T) {
	in := domain.NewInput()
	in.Add("youtube",
		domain.RawRecord{"views": 1000.0},
		domain.RawRecord{"views": 500.0},
		domain.RawRecord{"views": 100.0},
	)
	in.Add("tiktok", domain.RawRecord{"views": 10.0}, domain.RawRecord{"views": 20.0})
	in.Platforms["facebook"] = nil

	alerts := NewAlertDetector(NewManualBackend()).Detect(Normalize(in))
	require.Len(t, alerts, 1)
	assert.Equal(t, "youtube", alerts[0].Platform)
	assert.Equal(t, domain.AlertDecliningTrend, alerts[0].Type)
	assert.Equal(t, domain.SeverityHigh, alerts[0].Severity)
}

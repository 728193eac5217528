package insights

import "math"

// ManualBackend computes everything with plain scalar loops and has no
// clustering support.
type ManualBackend struct{}

// NewManualBackend returns the scalar backend
func NewManualBackend() *ManualBackend {
	return &ManualBackend{}
}

func (ManualBackend) Name() string { return BackendManual }

func (ManualBackend) Capabilities() Capabilities { return Capabilities{} }

func (ManualBackend) Sum(xs []float64) float64 {
	total := 0.0
	for _, x := range xs {
		total += x
	}
	return total
}

func (b ManualBackend) Mean(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	return b.Sum(xs) / float64(len(xs))
}

func (b ManualBackend) PopStdDev(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	m := b.Mean(xs)
	ss := 0.0
	for _, x := range xs {
		ss += (x - m) * (x - m)
	}
	return math.Sqrt(ss / float64(len(xs)))
}

func (b ManualBackend) ZScore(xs []float64) []float64 {
	out := make([]float64, len(xs))
	if len(xs) == 0 {
		return out
	}
	m := b.Mean(xs)
	sd := 0.0
	if len(xs) > 1 {
		ss := 0.0
		for _, x := range xs {
			ss += (x - m) * (x - m)
		}
		sd = math.Sqrt(ss / float64(len(xs)-1))
	}
	if sd == 0 || math.IsNaN(sd) {
		sd = 1
	}
	for i, x := range xs {
		out[i] = (x - m) / sd
	}
	return out
}

func (b ManualBackend) Slope(ys []float64) float64 {
	n := len(ys)
	if n < 2 {
		return 0
	}
	xMean := float64(n-1) / 2
	yMean := b.Mean(ys)
	var num, denom float64
	for i, y := range ys {
		dx := float64(i) - xMean
		num += dx * (y - yMean)
		denom += dx * dx
	}
	if denom == 0 {
		return 0
	}
	return num / denom
}

func (ManualBackend) Cluster([][]float64, int, ClusterOptions) ([]int, error) {
	return nil, ErrClusteringUnavailable
}

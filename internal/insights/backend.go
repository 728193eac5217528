package insights

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
)

// Backend names accepted by SelectBackend
const (
	BackendAuto       = "auto"
	BackendVectorized = "vectorized"
	BackendManual     = "manual"
)

// ErrClusteringUnavailable is returned by backends that cannot cluster.
// Callers fall back to the tertile split.
var ErrClusteringUnavailable = errors.New("clustering unavailable")

// Capabilities describes what a numeric backend supports
type Capabilities struct {
	Vectorized  bool
	Statistical bool
	Clustering  bool
}

// Engine returns the meta.engine identifier for the capability set
func (c Capabilities) Engine() string {
	parts := []string{"go"}
	if c.Vectorized {
		parts = append(parts, "gonum-mat")
	}
	if c.Statistical {
		parts = append(parts, "gonum-stat")
	}
	if c.Clustering {
		parts = append(parts, "kmeans")
	}
	return strings.Join(parts, "+")
}

// ClusterOptions controls the iterative clustering procedure
type ClusterOptions struct {
	Seed      int64
	Restarts  int
	MaxIter   int
	Tolerance float64
}

// DefaultClusterOptions mirrors the reference k-means settings
func DefaultClusterOptions() ClusterOptions {
	return ClusterOptions{
		Seed:      42,
		Restarts:  5,
		MaxIter:   300,
		Tolerance: 1e-4,
	}
}

// NumericBackend is the strategy every analyzer computes through.
// Implementations must be safe for concurrent use.
type NumericBackend interface {
	Name() string
	Capabilities() Capabilities

	Sum(xs []float64) float64
	// Mean returns 0 for an empty slice
	Mean(xs []float64) float64
	// PopStdDev is the population standard deviation, 0 for an empty slice
	PopStdDev(xs []float64) float64
	// ZScore centers xs and divides by the sample standard deviation,
	// or by 1 when that deviation is zero or undefined
	ZScore(xs []float64) []float64
	// Slope is the least-squares slope of ys against 0..n-1, 0 when n < 2
	Slope(ys []float64) float64
	// Cluster assigns each point a label in [0, k)
	Cluster(points [][]float64, k int, opts ClusterOptions) ([]int, error)
}

var (
	backendsMu sync.RWMutex
	backends   = map[string]func() NumericBackend{
		BackendManual: func() NumericBackend { return NewManualBackend() },
	}
)

// RegisterBackend makes a backend constructor available to SelectBackend
func RegisterBackend(name string, ctor func() NumericBackend) {
	backendsMu.Lock()
	defer backendsMu.Unlock()
	backends[name] = ctor
}

// AvailableBackends lists registered backend names in ascending order
func AvailableBackends() []string {
	backendsMu.RLock()
	defer backendsMu.RUnlock()
	names := make([]string, 0, len(backends))
	for name := range backends {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// SelectBackend resolves a backend by name. "auto" (or empty) picks the
// vectorized backend when it was compiled in and the manual one otherwise.
func SelectBackend(name string) (NumericBackend, error) {
	if name == "" {
		name = BackendAuto
	}

	backendsMu.RLock()
	defer backendsMu.RUnlock()

	if name == BackendAuto {
		if ctor, ok := backends[BackendVectorized]; ok {
			return ctor(), nil
		}
		return backends[BackendManual](), nil
	}

	ctor, ok := backends[name]
	if !ok {
		return nil, fmt.Errorf("numeric backend %q is not available", name)
	}
	return ctor(), nil
}

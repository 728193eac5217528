//go:build !nogonum

package insights

import (
	"fmt"
	"math"
	"math/rand"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

func init() {
	RegisterBackend(BackendVectorized, func() NumericBackend { return NewVectorizedBackend() })
}

// VectorizedBackend delegates to gonum and clusters with seeded k-means
type VectorizedBackend struct{}

// NewVectorizedBackend returns the gonum-backed backend
func NewVectorizedBackend() *VectorizedBackend {
	return &VectorizedBackend{}
}

func (VectorizedBackend) Name() string { return BackendVectorized }

func (VectorizedBackend) Capabilities() Capabilities {
	return Capabilities{Vectorized: true, Statistical: true, Clustering: true}
}

func (VectorizedBackend) Sum(xs []float64) float64 {
	return floats.Sum(xs)
}

func (VectorizedBackend) Mean(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	return stat.Mean(xs, nil)
}

func (VectorizedBackend) PopStdDev(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	return stat.PopStdDev(xs, nil)
}

func (VectorizedBackend) ZScore(xs []float64) []float64 {
	out := make([]float64, len(xs))
	if len(xs) == 0 {
		return out
	}
	m := stat.Mean(xs, nil)
	sd := 0.0
	if len(xs) > 1 {
		sd = stat.StdDev(xs, nil)
	}
	if sd == 0 || math.IsNaN(sd) {
		sd = 1
	}
	copy(out, xs)
	floats.AddConst(-m, out)
	floats.Scale(1/sd, out)
	return out
}

func (VectorizedBackend) Slope(ys []float64) float64 {
	if len(ys) < 2 {
		return 0
	}
	xs := make([]float64, len(ys))
	floats.Span(xs, 0, float64(len(ys)-1))
	_, beta := stat.LinearRegression(xs, ys, nil, false)
	if math.IsNaN(beta) {
		return 0
	}
	return beta
}

func (VectorizedBackend) Cluster(points [][]float64, k int, opts ClusterOptions) ([]int, error) {
	if len(points) == 0 {
		return nil, fmt.Errorf("cluster: no points")
	}
	dim := len(points[0])
	if dim == 0 {
		return nil, fmt.Errorf("cluster: zero-dimensional points")
	}
	data := mat.NewDense(len(points), dim, nil)
	for i, p := range points {
		if len(p) != dim {
			return nil, fmt.Errorf("cluster: point %d has %d features, want %d", i, len(p), dim)
		}
		data.SetRow(i, p)
	}
	return kmeans(data, k, opts)
}

// kmeans runs Lloyd's algorithm from several k-means++ seedings and keeps
// the labelling with the lowest inertia. The same seed always produces the
// same labels.
func kmeans(data *mat.Dense, k int, opts ClusterOptions) ([]int, error) {
	n, dim := data.Dims()
	if k <= 0 {
		return nil, fmt.Errorf("cluster: k must be positive, got %d", k)
	}
	if k > n {
		k = n
	}
	restarts := opts.Restarts
	if restarts < 1 {
		restarts = 1
	}
	maxIter := opts.MaxIter
	if maxIter < 1 {
		maxIter = 300
	}

	rng := rand.New(rand.NewSource(opts.Seed))
	var best []int
	bestInertia := math.Inf(1)

	for run := 0; run < restarts; run++ {
		centroids := seedCentroids(data, k, rng)
		labels := make([]int, n)

		for iter := 0; iter < maxIter; iter++ {
			assign(data, centroids, labels)
			shift := updateCentroids(data, centroids, labels)
			if shift <= opts.Tolerance {
				break
			}
		}
		assign(data, centroids, labels)

		inertia := 0.0
		for i := 0; i < n; i++ {
			d := floats.Distance(data.RawRowView(i), centroids.RawRowView(labels[i]), 2)
			inertia += d * d
		}
		if inertia < bestInertia {
			bestInertia = inertia
			best = labels
		}
	}

	if best == nil || math.IsNaN(bestInertia) {
		return nil, fmt.Errorf("cluster: no finite solution for k=%d over %d points in %d dimensions", k, n, dim)
	}
	return best, nil
}

// seedCentroids implements k-means++ seeding
func seedCentroids(data *mat.Dense, k int, rng *rand.Rand) *mat.Dense {
	n, dim := data.Dims()
	centroids := mat.NewDense(k, dim, nil)
	centroids.SetRow(0, data.RawRowView(rng.Intn(n)))

	minDist := make([]float64, n)
	for i := range minDist {
		minDist[i] = math.Inf(1)
	}

	for c := 1; c < k; c++ {
		prev := centroids.RawRowView(c - 1)
		for i := 0; i < n; i++ {
			d := floats.Distance(data.RawRowView(i), prev, 2)
			if d*d < minDist[i] {
				minDist[i] = d * d
			}
		}

		total := floats.Sum(minDist)
		pick := rng.Intn(n)
		if total > 0 {
			target := rng.Float64() * total
			acc := 0.0
			for i, d := range minDist {
				acc += d
				if acc >= target {
					pick = i
					break
				}
			}
		}
		centroids.SetRow(c, data.RawRowView(pick))
	}
	return centroids
}

func assign(data, centroids *mat.Dense, labels []int) {
	n, _ := data.Dims()
	k, _ := centroids.Dims()
	for i := 0; i < n; i++ {
		row := data.RawRowView(i)
		bestC, bestD := 0, math.Inf(1)
		for c := 0; c < k; c++ {
			d := floats.Distance(row, centroids.RawRowView(c), 2)
			if d < bestD {
				bestC, bestD = c, d
			}
		}
		labels[i] = bestC
	}
}

// updateCentroids moves each centroid to the mean of its members and
// returns the summed squared movement. Empty clusters keep their centroid.
func updateCentroids(data, centroids *mat.Dense, labels []int) float64 {
	k, dim := centroids.Dims()
	sums := mat.NewDense(k, dim, nil)
	counts := make([]float64, k)
	for i, c := range labels {
		floats.Add(sums.RawRowView(c), data.RawRowView(i))
		counts[c]++
	}

	shift := 0.0
	for c := 0; c < k; c++ {
		if counts[c] == 0 {
			continue
		}
		next := sums.RawRowView(c)
		floats.Scale(1/counts[c], next)
		d := floats.Distance(next, centroids.RawRowView(c), 2)
		shift += d * d
		centroids.SetRow(c, next)
	}
	return shift
}

package scoring

import (
	"fmt"
	"math"
)

// CategoryWeights defines the relative importance of each metric
// category in the overall probability. All weights must sum to 1.0
// (0.001 tolerance).
type CategoryWeights struct {
	Academic float64 `json:"academic"`
	Wellness float64 `json:"wellness"`
	Support  float64 `json:"support"`
}

// DefaultWeights returns the standard category distribution.
func DefaultWeights() CategoryWeights {
	return CategoryWeights{
		Academic: 0.60,
		Wellness: 0.30,
		Support:  0.10,
	}
}

// Sum returns the total of all weights.
func (w CategoryWeights) Sum() float64 {
	return w.Academic + w.Wellness + w.Support
}

// For returns the weight assigned to a category.
func (w CategoryWeights) For(c Category) float64 {
	switch c {
	case CategoryAcademic:
		return w.Academic
	case CategoryWellness:
		return w.Wellness
	case CategorySupport:
		return w.Support
	default:
		return 0
	}
}

// Validate checks that weights sum to 1.0 and none are negative.
func (w CategoryWeights) Validate() error {
	if math.Abs(w.Sum()-1.0) > 0.001 {
		return fmt.Errorf("category weights sum to %.4f, must sum to 1.0", w.Sum())
	}
	for _, v := range []float64{w.Academic, w.Wellness, w.Support} {
		if v < 0 {
			return fmt.Errorf("negative category weight: %f", v)
		}
	}
	return nil
}

package scoring

import (
	"fmt"
	"math"
)

// WeightSet defines the relative importance of each scoring criterion.
// All weights must sum to 1.0 (±0.001 tolerance).
type WeightSet struct {
	TechnicalFit        float64
	MigrationComplexity float64
	AICapabilities      float64
	CostEfficiency      float64
	EcosystemMaturity   float64
}

// DefaultWeights returns the production weight distribution.
func DefaultWeights() WeightSet {
	return WeightSet{
		TechnicalFit:        0.30,
		MigrationComplexity: 0.25,
		AICapabilities:      0.25,
		CostEfficiency:      0.10,
		EcosystemMaturity:   0.10,
	}
}

// Sum returns the total of all weights.
func (w WeightSet) Sum() float64 {
	return w.TechnicalFit + w.MigrationComplexity + w.AICapabilities +
		w.CostEfficiency + w.EcosystemMaturity
}

// Validate checks that weights sum to 1.0 and none are negative.
func (w WeightSet) Validate() error {
	if math.Abs(w.Sum()-1.0) > 0.001 {
		return fmt.Errorf("weights sum to %.4f, must sum to 1.0", w.Sum())
	}
	for _, v := range w.asList() {
		if v < 0 {
			return fmt.Errorf("negative weight: %f", v)
		}
	}
	return nil
}

func (w WeightSet) asList() []float64 {
	return []float64{
		w.TechnicalFit, w.MigrationComplexity, w.AICapabilities,
		w.CostEfficiency, w.EcosystemMaturity,
	}
}

// total combines the subscores into the rounded weighted score.
func (w WeightSet) total(s Subscores) int {
	raw := w.TechnicalFit*float64(s.TechnicalFit) +
		w.MigrationComplexity*float64(s.MigrationComplexity) +
		w.AICapabilities*float64(s.AICapabilities) +
		w.CostEfficiency*float64(s.CostEfficiency) +
		w.EcosystemMaturity*float64(s.EcosystemMaturity)
	return clamp(int(math.Round(raw)))
}

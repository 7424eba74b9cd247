package scoring

import (
	"math"
	"testing"
)

func TestDefaultWeights(t *testing.T) {
	w := DefaultWeights()
	if err := w.Validate(); err != nil {
		t.Fatalf("default weights invalid: %v", err)
	}
	if math.Abs(w.Sum()-1.0) > 0.001 {
		t.Fatalf("default weights sum to %f", w.Sum())
	}
}

func TestWeightSetValidate(t *testing.T) {
	bad := WeightSet{TechnicalFit: 0.5, MigrationComplexity: 0.6}
	if err := bad.Validate(); err == nil {
		t.Fatal("expected error for weights not summing to 1.0")
	}

	negative := WeightSet{
		TechnicalFit:        1.2,
		MigrationComplexity: -0.2,
	}
	if err := negative.Validate(); err == nil {
		t.Fatal("expected error for negative weight")
	}
}

func TestWeightedTotal(t *testing.T) {
	w := DefaultWeights()

	perfect := Subscores{
		TechnicalFit:        100,
		MigrationComplexity: 100,
		AICapabilities:      100,
		CostEfficiency:      100,
		EcosystemMaturity:   100,
	}
	if got := w.total(perfect); got != 100 {
		t.Fatalf("total(perfect) = %d, want 100", got)
	}

	if got := w.total(Subscores{}); got != 0 {
		t.Fatalf("total(zero) = %d, want 0", got)
	}

	mixed := Subscores{
		TechnicalFit:        20,
		MigrationComplexity: 80,
		AICapabilities:      0,
		CostEfficiency:      90,
		EcosystemMaturity:   85,
	}
	// 6 + 20 + 0 + 9 + 8.5 rounds to 44.
	if got := w.total(mixed); got != 44 {
		t.Fatalf("total(mixed) = %d, want 44", got)
	}
}

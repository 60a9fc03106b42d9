// Package workload draws the per-slot pod demand of a benchmark execution.
//
// All randomness comes from an explicitly passed generator, so two callers
// that share a seed and a call order observe the same target sequence.
package workload

import (
	"fmt"
	"math"

	"golang.org/x/exp/rand"

	"github.com/camilla-m/facility-problem-sand/pkg/framework/plugins/sand/framework"
)

const (
	// DefaultPodSize is the demand of every generated pod
	DefaultPodSize = 5

	minVariation   = 0.7
	variationRange = 0.6
)

// Rounding converts the scaled baseline into a pod count
type Rounding string

const (
	// RoundNearest rounds half away from zero
	RoundNearest Rounding = "round"
	// RoundTruncate drops the fractional part, which matches the historical
	// benchmark output
	RoundTruncate Rounding = "truncate"
)

func (r Rounding) apply(v float64) int {
	if r == RoundTruncate {
		return int(v)
	}
	return int(math.Round(v))
}

// ParseRounding validates a rounding name
func ParseRounding(s string) (Rounding, error) {
	switch Rounding(s) {
	case RoundNearest, RoundTruncate:
		return Rounding(s), nil
	case "":
		return RoundNearest, nil
	}
	return "", fmt.Errorf("unknown rounding %q, want %q or %q", s, RoundNearest, RoundTruncate)
}

// NewRand returns a generator seeded with seed
func NewRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewSource(seed))
}

// Variation draws U uniformly from [0.7, 1.3)
func Variation(rng *rand.Rand) float64 {
	return minVariation + rng.Float64()*variationRange
}

// Generator produces each slot's demand
type Generator struct {
	Baseline int
	PodSize  int
	Rounding Rounding
}

// NewGenerator returns a generator with the default pod size and rounding
func NewGenerator(baseline int) *Generator {
	return &Generator{
		Baseline: baseline,
		PodSize:  DefaultPodSize,
		Rounding: RoundNearest,
	}
}

// NextTarget advances rng by exactly one draw and returns the pod count for the slot
func (g *Generator) NextTarget(rng *rand.Rand) int {
	return g.TargetFor(Variation(rng))
}

// TargetFor returns the pod count for a given variation factor
func (g *Generator) TargetFor(u float64) int {
	return g.Rounding.apply(float64(g.Baseline) * u)
}

// Pods builds target pods of the generator's size with ids 0..target-1
func (g *Generator) Pods(target int) []framework.Pod {
	size := g.PodSize
	if size <= 0 {
		size = DefaultPodSize
	}
	pods := make([]framework.Pod, target)
	for i := range pods {
		pods[i] = framework.Pod{ID: i, Size: size}
	}
	return pods
}

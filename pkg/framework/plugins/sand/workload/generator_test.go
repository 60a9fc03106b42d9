package workload

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestVariationRange(t *testing.T) {
	rng := NewRand(42)
	for i := 0; i < 10000; i++ {
		u := Variation(rng)
		if u < 0.7 || u >= 1.3 {
			t.Fatalf("draw %d: variation %v outside [0.7, 1.3)", i, u)
		}
	}
}

func TestNextTargetReproducible(t *testing.T) {
	draw := func(seed uint64) []int {
		g := NewGenerator(200)
		rng := NewRand(seed)
		out := make([]int, 50)
		for i := range out {
			out[i] = g.NextTarget(rng)
		}
		return out
	}

	first := draw(42)
	if diff := cmp.Diff(first, draw(42)); diff != "" {
		t.Errorf("Same seed produced different targets (-first +second):\n%s", diff)
	}
	if cmp.Equal(first, draw(43)) {
		t.Errorf("Different seeds produced identical target sequences")
	}
	for i, target := range first {
		if target < 140 || target > 260 {
			t.Errorf("slot %d: target %d outside [140, 260]", i, target)
		}
	}
}

func TestTargetFor(t *testing.T) {
	testCases := []struct {
		name     string
		baseline int
		u        float64
		rounding Rounding
		expected int
	}{
		{name: "Exact", baseline: 50, u: 0.9, rounding: RoundNearest, expected: 45},
		{name: "RoundsUp", baseline: 50, u: 0.99, rounding: RoundNearest, expected: 50},
		{name: "TruncateDrops", baseline: 50, u: 0.99, rounding: RoundTruncate, expected: 49},
		{name: "HalfAwayFromZero", baseline: 10, u: 0.75, rounding: RoundNearest, expected: 8},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			g := &Generator{Baseline: tc.baseline, PodSize: DefaultPodSize, Rounding: tc.rounding}
			if got := g.TargetFor(tc.u); got != tc.expected {
				t.Errorf("Expected target %d, got %d", tc.expected, got)
			}
		})
	}
}

func TestPods(t *testing.T) {
	g := NewGenerator(50)
	pods := g.Pods(45)
	if len(pods) != 45 {
		t.Fatalf("Expected 45 pods, got %d", len(pods))
	}
	total := 0
	for i, p := range pods {
		if p.ID != i {
			t.Errorf("pod %d has id %d", i, p.ID)
		}
		total += p.Size
	}
	if total != 225 {
		t.Errorf("Expected total demand 225, got %d", total)
	}
}

func TestParseRounding(t *testing.T) {
	for _, s := range []string{"", "round", "truncate"} {
		if _, err := ParseRounding(s); err != nil {
			t.Errorf("ParseRounding(%q) unexpected error: %v", s, err)
		}
	}
	if _, err := ParseRounding("ceil"); err == nil {
		t.Errorf("Expected error for unknown rounding")
	}
}

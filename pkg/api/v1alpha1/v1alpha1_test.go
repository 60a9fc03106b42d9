package v1alpha1

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"k8s.io/utils/ptr"
)

func TestLoadBenchmarkConfigDefaults(t *testing.T) {
	cfg, err := LoadBenchmarkConfig("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := &BenchmarkConfig{
		Ratios:     []float64{1, 10, 100},
		PodCounts:  []int{50, 100, 200, 500, 1000, 5000, 10000},
		NodeCounts: []int{10, 20, 50, 100, 200},
		Executions: 5,
		Slots:      20,
		Seed:       ptr.To(int64(42)),
		SeedMode:   SeedModeShared,
		PodSize:    5,
		Rounding:   "round",
		ColdStart:  "static",
	}
	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Errorf("Defaulted config mismatch (-want +got):\n%s", diff)
	}
	if err := ValidateBenchmarkConfig(cfg); err != nil {
		t.Errorf("Defaulted config should be valid, got %v", err)
	}
}

func TestLoadBenchmarkConfigFile(t *testing.T) {
	data := `apiVersion: benchmark.sand.io/v1alpha1
kind: BenchmarkConfig
ratios: [1.0]
podCounts: [50]
nodeCounts: [10]
executions: 1
seed: 0
oracle:
  nodeCounts: [2]
  podCounts: [3]
  slots: 3
`
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	cfg, err := LoadBenchmarkConfig(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if *cfg.Seed != 0 {
		t.Errorf("Explicit zero seed should survive defaulting, got %d", *cfg.Seed)
	}
	if cfg.Slots != DefaultSlots || cfg.Executions != 1 {
		t.Errorf("Unexpected slots=%d executions=%d", cfg.Slots, cfg.Executions)
	}
	if cfg.Oracle == nil || cfg.Oracle.Iterations != DefaultOracleIterations || *cfg.Oracle.ActivationPenalty != 50 {
		t.Errorf("Oracle defaults not applied: %+v", cfg.Oracle)
	}
	if cfg.Oracle.Slots != 3 {
		t.Errorf("Expected oracle slots 3, got %d", cfg.Oracle.Slots)
	}
}

func TestDecodeBenchmarkConfigErrors(t *testing.T) {
	testCases := []struct {
		name string
		data string
	}{
		{name: "UnknownField", data: "ratio: [1]\n"},
		{name: "WrongKind", data: "kind: DeschedulerPolicy\n"},
		{name: "WrongVersion", data: "apiVersion: benchmark.sand.io/v2\n"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := DecodeBenchmarkConfig([]byte(tc.data)); err == nil {
				t.Errorf("Expected decode error")
			}
		})
	}
}

func TestValidateBenchmarkConfig(t *testing.T) {
	testCases := []struct {
		name     string
		mutate   func(*BenchmarkConfig)
		contains []string
	}{
		{
			name:   "Valid",
			mutate: func(*BenchmarkConfig) {},
		},
		{
			name:     "ZeroExecutions",
			mutate:   func(c *BenchmarkConfig) { c.Executions = -1 },
			contains: []string{"executions"},
		},
		{
			name:     "NegativeNodeCount",
			mutate:   func(c *BenchmarkConfig) { c.NodeCounts = []int{10, 0} },
			contains: []string{"nodeCounts[1]"},
		},
		{
			name:     "EmptyPodCounts",
			mutate:   func(c *BenchmarkConfig) { c.PodCounts = nil },
			contains: []string{"podCounts"},
		},
		{
			name:     "UnknownRounding",
			mutate:   func(c *BenchmarkConfig) { c.Rounding = "ceil" },
			contains: []string{"rounding"},
		},
		{
			name: "MultipleErrors",
			mutate: func(c *BenchmarkConfig) {
				c.Slots = 0
				c.SeedMode = "global"
				c.Oracle = &OracleConfig{Tolerance: ptr.To(2.0)}
			},
			contains: []string{"slots", "seedMode", "oracle.tolerance", "oracle.iterations"},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			cfg, err := LoadBenchmarkConfig("")
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			tc.mutate(cfg)

			err = ValidateBenchmarkConfig(cfg)
			if len(tc.contains) == 0 {
				if err != nil {
					t.Errorf("Expected valid config, got %v", err)
				}
				return
			}
			if err == nil {
				t.Fatalf("Expected validation error")
			}
			for _, s := range tc.contains {
				if !strings.Contains(err.Error(), s) {
					t.Errorf("Expected error to mention %q, got %v", s, err)
				}
			}
		})
	}
}

func TestDeepCopy(t *testing.T) {
	cfg, err := LoadBenchmarkConfig("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	cfg.Oracle = &OracleConfig{NodeCounts: []int{2}}

	cp := cfg.DeepCopyObject().(*BenchmarkConfig)
	cp.Ratios[0] = 7
	*cp.Seed = 7
	cp.Oracle.NodeCounts[0] = 7

	if cfg.Ratios[0] == 7 || *cfg.Seed == 7 || cfg.Oracle.NodeCounts[0] == 7 {
		t.Errorf("DeepCopy shares memory with the original")
	}
}

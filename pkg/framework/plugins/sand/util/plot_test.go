package util

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/camilla-m/facility-problem-sand/pkg/framework/plugins/sand/simulation"
)

func record(ratio float64, slot int, static, temporal float64) simulation.SlotRecord {
	return simulation.SlotRecord{
		Ratio:    ratio,
		Slot:     slot,
		Static:   simulation.TrackResult{Cost: static},
		Temporal: simulation.TrackResult{Cost: temporal},
	}
}

func TestCostCurvesMean(t *testing.T) {
	c := NewCostCurves()
	for _, r := range []simulation.SlotRecord{
		record(10, 1, 100, 100),
		record(10, 2, 50, 30),
		record(10, 1, 200, 200),
		record(10, 2, 70, 50),
		record(1, 1, 8, 8),
	} {
		if err := c.Record(r); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	if diff := cmp.Diff([]float64{1, 10}, c.Ratios()); diff != "" {
		t.Errorf("Ratios mismatch (-want +got):\n%s", diff)
	}
	static, temporal := c.Mean(10)
	if diff := cmp.Diff([]float64{150, 60}, static); diff != "" {
		t.Errorf("Static mean mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]float64{150, 40}, temporal); diff != "" {
		t.Errorf("Temporal mean mismatch (-want +got):\n%s", diff)
	}
	if s, _ := c.Mean(3); s != nil {
		t.Errorf("Expected no data for an unknown ratio")
	}
}

func TestCostCurvesRender(t *testing.T) {
	c := NewCostCurves()
	if err := c.Render(&bytes.Buffer{}); err == nil {
		t.Errorf("Expected an error with no records")
	}
	if err := c.Record(record(1, 0, 0, 0)); err == nil {
		t.Errorf("Expected an error for slot 0")
	}

	for slot := 1; slot <= 3; slot++ {
		if err := c.Record(record(100, slot, float64(slot), float64(slot))); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	var buf bytes.Buffer
	if err := c.Render(&buf); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(buf.String(), "temporal R=100") {
		t.Errorf("Rendered chart is missing the temporal series")
	}

	path := filepath.Join(t.TempDir(), "curves.html")
	if err := PlotCostCurves(c, path); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

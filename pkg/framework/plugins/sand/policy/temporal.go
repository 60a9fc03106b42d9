package policy

import (
	"fmt"

	"github.com/camilla-m/facility-problem-sand/pkg/framework/plugins/sand/framework"
)

const TemporalName = "temporal"

// ColdStart selects how TemporalAware ranks before any snapshot exists
type ColdStart string

const (
	// ColdStartStatic ranks by alpha alone until the first snapshot, so the
	// first slot matches the static policy.
	ColdStartStatic ColdStart = "static"
	// ColdStartActivation charges delta to every node on the first slot, as
	// the historical benchmark did.
	ColdStartActivation ColdStart = "activation"
)

// ParseColdStart validates a cold start mode name
func ParseColdStart(s string) (ColdStart, error) {
	switch ColdStart(s) {
	case ColdStartStatic, ColdStartActivation:
		return ColdStart(s), nil
	case "":
		return ColdStartStatic, nil
	}
	return "", fmt.Errorf("unknown cold start mode %q, want %q or %q", s, ColdStartStatic, ColdStartActivation)
}

// TemporalAware adds the activation penalty to the key of nodes that were
// inactive in the previous slot, which keeps warm nodes at the front.
// The zero value uses ColdStartStatic, which departs from the historical key
// alpha+delta on the first slot; set ColdStartActivation to restore it.
type TemporalAware struct {
	ColdStart ColdStart
}

var _ Policy = TemporalAware{}

func (TemporalAware) Name() string {
	return TemporalName
}

func (t TemporalAware) Key(node framework.NodeParams, previous framework.ActivitySnapshot) float64 {
	if !previous.HasHistory() && t.ColdStart != ColdStartActivation {
		return node.Alpha
	}
	if previous.Has(node.ID) {
		return node.Alpha
	}
	return node.Alpha + node.Delta
}

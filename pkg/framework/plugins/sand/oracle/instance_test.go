package oracle

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestGenerateInstanceDeterministic(t *testing.T) {
	opts := InstanceOptions{Slots: 20, ActivationPenalty: 50, DeactivationPenalty: 20}
	a := GenerateInstance(3, 6, 2, opts)
	b := GenerateInstance(3, 6, 2, opts)
	if diff := cmp.Diff(a, b); diff != "" {
		t.Errorf("Same grid point produced different instances (-a +b):\n%s", diff)
	}

	// 3+6+2 and 2+6+3 share a seed
	c := GenerateInstance(2, 6, 3, opts)
	if c.Nodes != 2 || len(c.Capacity) != 2 {
		t.Errorf("Unexpected dimensions %d/%d", c.Nodes, len(c.Capacity))
	}
	if InstanceSeed(3, 6, 2) != InstanceSeed(2, 6, 3) {
		t.Errorf("Expected equal seeds")
	}
}

func TestGenerateInstanceRanges(t *testing.T) {
	const nodes, pods = 3, 8
	for it := 1; it <= 10; it++ {
		in := GenerateInstance(nodes, pods, it, InstanceOptions{Slots: 2})
		if err := in.Validate(); err != nil {
			t.Fatalf("invalid instance: %v", err)
		}
		for i := 0; i < nodes; i++ {
			if c := in.Capacity[i]; c < pods/nodes+1 || c > 2*pods {
				t.Errorf("capacity %v out of range", c)
			}
			for _, v := range []float64{in.Alpha[i], in.Beta[i]} {
				if v < 1 || v > 4*nodes {
					t.Errorf("cost %v out of range", v)
				}
			}
			if g := in.Gamma[i]; g < 1 || g > 10 {
				t.Errorf("gamma %v out of range", g)
			}
		}
		for j := 0; j < pods; j++ {
			if d := in.Demand[j]; d < 1 || d > 10 {
				t.Errorf("demand %v out of range", d)
			}
			if e := in.Errors[j]; e < 1 || e > 20 {
				t.Errorf("errors %v out of range", e)
			}
		}
	}
}

package simulation

import (
	"fmt"

	"github.com/camilla-m/facility-problem-sand/pkg/framework/plugins/sand/activity"
	"github.com/camilla-m/facility-problem-sand/pkg/framework/plugins/sand/constraints"
	"github.com/camilla-m/facility-problem-sand/pkg/framework/plugins/sand/framework"
	"github.com/camilla-m/facility-problem-sand/pkg/framework/plugins/sand/objectives/cost"
	"github.com/camilla-m/facility-problem-sand/pkg/framework/plugins/sand/policy"
	"github.com/camilla-m/facility-problem-sand/pkg/framework/plugins/sand/workload"
)

// Track is one policy with the cluster state it owns
type Track struct {
	Policy policy.Policy
	State  *framework.ClusterState
}

// NewTrack builds a track over a fresh state for params
func NewTrack(p policy.Policy, params []framework.NodeParams) *Track {
	return &Track{Policy: p, State: framework.NewClusterState(params)}
}

func (t *Track) run(pods []framework.Pod, slot int, check constraints.Constraint) (TrackResult, error) {
	out := policy.Place(t.State, pods, t.Policy)
	if check != nil {
		if err := check(t.State); err != nil {
			return TrackResult{}, fmt.Errorf("%s policy, slot %d: %w", t.Policy.Name(), slot, err)
		}
	}
	b := cost.SlotCostWithDetails(t.State, t.State.Previous)
	activity.Commit(t.State, slot)
	return TrackResult{
		Cost:        b.Total,
		Placed:      out.Placed,
		Dropped:     out.Dropped,
		Active:      b.Active,
		Activated:   b.Activated,
		Deactivated: b.Deactivated,
	}, nil
}

// ExecutionOptions selects the policies' behaviour for an execution
type ExecutionOptions struct {
	PodSize   int
	Rounding  workload.Rounding
	ColdStart policy.ColdStart
	// Check runs after every placement when set
	Check constraints.Constraint
}

// Execution is one independent run of a configuration. Both tracks start
// from the same roster with no history and see the same workload every slot.
type Execution struct {
	Ratio     float64
	PodCount  int
	NodeCount int
	Index     int

	Generator *workload.Generator
	Static    *Track
	Temporal  *Track
	Check     constraints.Constraint

	slot int
}

// NewExecution builds the roster for the configuration and the two tracks
func NewExecution(ratio float64, podCount, nodeCount, index int, opts ExecutionOptions) *Execution {
	params := framework.BuildRoster(ratio, podCount, nodeCount)
	gen := workload.NewGenerator(podCount)
	if opts.PodSize > 0 {
		gen.PodSize = opts.PodSize
	}
	if opts.Rounding != "" {
		gen.Rounding = opts.Rounding
	}
	return &Execution{
		Ratio:     ratio,
		PodCount:  podCount,
		NodeCount: nodeCount,
		Index:     index,
		Generator: gen,
		Static:    NewTrack(policy.Static{}, params),
		Temporal:  NewTrack(policy.TemporalAware{ColdStart: opts.ColdStart}, params),
		Check:     opts.Check,
	}
}

// Slot returns the number of slots run so far
func (e *Execution) Slot() int {
	return e.slot
}

// RunSlot places target pods on both tracks and returns the slot's record
func (e *Execution) RunSlot(target int) (SlotRecord, error) {
	e.slot++
	pods := e.Generator.Pods(target)

	rec := SlotRecord{
		Ratio:     e.Ratio,
		PodCount:  e.PodCount,
		NodeCount: e.NodeCount,
		Execution: e.Index,
		Slot:      e.slot,
		Target:    target,
	}
	var err error
	if rec.Static, err = e.Static.run(pods, e.slot, e.Check); err != nil {
		return SlotRecord{}, err
	}
	if rec.Temporal, err = e.Temporal.run(pods, e.slot, e.Check); err != nil {
		return SlotRecord{}, err
	}
	return rec, nil
}

package oracle

import (
	"context"
	"math"
	"math/bits"
	"sort"

	"k8s.io/utils/clock"
)

const (
	// DefaultMaxNodes bounds the node count the exhaustive solver accepts
	DefaultMaxNodes = 6
	// DefaultMaxPods bounds the pod count the exhaustive solver accepts
	DefaultMaxPods = 8
)

// Exhaustive solves tiny instances exactly with a dynamic program over the
// per-slot active node sets. Instances above the size limits are reported as
// StatusOther.
//
// Node i is active at slot t when bit i of the slot's set is on. Between t
// and t+1 a node's usable capacity at t is U*(x - z - w), where z and w flag
// an activation and a deactivation, so a node that changes state carries no
// load at t and activating an idle node cannot be satisfied at all.
type Exhaustive struct {
	Clock    clock.PassiveClock
	MaxNodes int
	MaxPods  int
	// Tolerance is the accepted relative gap (incumbent-bound)/incumbent of
	// each slot's assignment search. Zero makes the search exact.
	Tolerance float64
}

var _ Solver = &Exhaustive{}

// NewExhaustive returns a solver with the default limits and a real clock
func NewExhaustive(tolerance float64) *Exhaustive {
	return &Exhaustive{
		Clock:     clock.RealClock{},
		MaxNodes:  DefaultMaxNodes,
		MaxPods:   DefaultMaxPods,
		Tolerance: tolerance,
	}
}

func (e *Exhaustive) Name() string {
	return "exhaustive"
}

func (e *Exhaustive) Solve(ctx context.Context, in *Instance) (Result, error) {
	if err := in.Validate(); err != nil {
		return Result{Status: StatusError}, err
	}
	start := e.Clock.Now()
	if in.Nodes > e.MaxNodes || in.Pods > e.MaxPods {
		return Result{Status: StatusOther, SolveTime: e.Clock.Since(start)}, nil
	}

	sets := 1 << in.Nodes
	opening := make([]float64, sets)
	assign := make([]float64, sets)
	for s := 0; s < sets; s++ {
		for i := 0; i < in.Nodes; i++ {
			if s&(1<<i) != 0 {
				opening[s] += in.Alpha[i]
			}
		}
		assign[s] = in.bestAssignment(s, e.Tolerance)
	}

	// future[y] is the best cost of slots t+1..T-1 when y is active at t+1
	future := make([]float64, sets)
	future[0] = math.Inf(1)
	for y := 1; y < sets; y++ {
		future[y] = opening[y] + assign[y]
	}

	for t := in.Slots - 2; t >= 0; t-- {
		if err := ctx.Err(); err != nil {
			return Result{Status: StatusOther, SolveTime: e.Clock.Since(start)}, err
		}
		current := make([]float64, sets)
		current[0] = math.Inf(1)
		for x := 1; x < sets; x++ {
			best := math.Inf(1)
			for y := 1; y < sets; y++ {
				if math.IsInf(future[y], 1) {
					continue
				}
				c, ok := in.transitionCost(x, y, opening, assign)
				if !ok {
					continue
				}
				best = math.Min(best, c+future[y])
			}
			current[x] = best
		}
		future = current
	}

	optimum := math.Inf(1)
	for x := 1; x < sets; x++ {
		optimum = math.Min(optimum, future[x])
	}

	res := Result{SolveTime: e.Clock.Since(start)}
	if math.IsInf(optimum, 1) {
		res.Status = StatusInfeasible
		return res, nil
	}
	res.Status = StatusOptimalWithinTolerance
	res.Cost = optimum
	res.HasCost = true
	return res, nil
}

// transitionCost returns the cost of slot t with x active at t and y active
// at t+1. It reports false when some node's usable capacity goes negative.
func (in *Instance) transitionCost(x, y int, opening, assign []float64) (float64, bool) {
	usable := 0
	for i := 0; i < in.Nodes; i++ {
		bit := 1 << i
		active, next := x&bit != 0, y&bit != 0
		level := 0.0
		if active {
			level++
		}
		if next && !active {
			level--
		}
		if active && !next {
			level--
		}
		if level < 0 {
			return 0, false
		}
		if level > 0 {
			usable |= bit
		}
	}
	if math.IsInf(assign[usable], 1) {
		return 0, false
	}
	penalty := in.ActivationPenalty*float64(bits.OnesCount(uint(y&^x))) +
		in.DeactivationPenalty*float64(bits.OnesCount(uint(x&^y)))
	return opening[x] + penalty + assign[usable], true
}

// bestAssignment returns the cheapest way to host every pod on the nodes in
// usable, or +Inf when they do not fit. Branches whose bound is within
// tolerance of the incumbent are cut, so the optimum is never below
// (1-tolerance) times the returned cost.
func (in *Instance) bestAssignment(usable int, tolerance float64) float64 {
	if in.Pods == 0 {
		return 0
	}
	var nodes []int
	for i := 0; i < in.Nodes; i++ {
		if usable&(1<<i) != 0 {
			nodes = append(nodes, i)
		}
	}
	if len(nodes) == 0 {
		return math.Inf(1)
	}

	// Largest pods first so infeasible branches fail early
	order := make([]int, in.Pods)
	for j := range order {
		order[j] = j
	}
	sort.SliceStable(order, func(a, b int) bool {
		return in.Demand[order[a]] > in.Demand[order[b]]
	})

	// floor[k] is a lower bound on hosting order[k:]
	floor := make([]float64, in.Pods+1)
	for k := in.Pods - 1; k >= 0; k-- {
		cheapest := math.Inf(1)
		for _, i := range nodes {
			cheapest = math.Min(cheapest, in.AllocationCost(i, order[k]))
		}
		floor[k] = floor[k+1] + cheapest
	}

	left := make([]float64, in.Nodes)
	for _, i := range nodes {
		left[i] = in.Capacity[i]
	}

	// The greedy placement is an incumbent; the search only records strictly
	// cheaper assignments.
	best := in.bestFitDecreasing(nodes, order)
	keep := 1 - math.Max(0, math.Min(tolerance, 1))
	cutoff := func() float64 {
		if math.IsInf(best, 1) {
			return best
		}
		return best * keep
	}
	var place func(k int, acc float64)
	place = func(k int, acc float64) {
		if acc+floor[k] >= cutoff() {
			return
		}
		if k == in.Pods {
			best = acc
			return
		}
		j := order[k]
		for _, i := range nodes {
			if left[i] < in.Demand[j] {
				continue
			}
			left[i] -= in.Demand[j]
			place(k+1, acc+in.AllocationCost(i, j))
			left[i] += in.Demand[j]
		}
	}
	place(0, 0)
	return best
}

package oracle

import (
	"golang.org/x/exp/rand"
)

const (
	baseSeed = 42

	openingCostMin = 1
	allocCostMin   = 1
	penaltyMin     = 1
	penaltyMax     = 10
	demandMin      = 1
	demandMax      = 10
	errorsMin      = 1
	errorsMax      = 20
)

// InstanceOptions carries the parts of an instance that do not come from the
// random draws
type InstanceOptions struct {
	Slots               int
	ActivationPenalty   float64
	DeactivationPenalty float64
}

// InstanceSeed returns the seed of the instance for a grid point
func InstanceSeed(nodes, pods, iteration int) uint64 {
	return uint64(baseSeed + nodes + pods + iteration)
}

// GenerateInstance draws the instance for (nodes, pods, iteration). The draw
// order is capacity, alpha, beta, gamma for every node, then demand and
// errors for every pod.
func GenerateInstance(nodes, pods, iteration int, opts InstanceOptions) *Instance {
	rng := rand.New(rand.NewSource(InstanceSeed(nodes, pods, iteration)))

	between := func(lo, hi int) float64 {
		return float64(lo + rng.Intn(hi-lo+1))
	}

	capacityMin := pods/nodes + 1
	capacityMax := max(pods*2, capacityMin)
	costMax := 4 * nodes

	in := &Instance{
		Nodes:               nodes,
		Pods:                pods,
		Slots:               opts.Slots,
		Capacity:            make([]float64, nodes),
		Alpha:               make([]float64, nodes),
		Beta:                make([]float64, nodes),
		Gamma:               make([]float64, nodes),
		Demand:              make([]float64, pods),
		Errors:              make([]float64, pods),
		ActivationPenalty:   opts.ActivationPenalty,
		DeactivationPenalty: opts.DeactivationPenalty,
	}
	for i := 0; i < nodes; i++ {
		in.Capacity[i] = between(capacityMin, capacityMax)
		in.Alpha[i] = between(openingCostMin, costMax)
		in.Beta[i] = between(allocCostMin, costMax)
		in.Gamma[i] = between(penaltyMin, penaltyMax)
	}
	for j := 0; j < pods; j++ {
		in.Demand[j] = between(demandMin, demandMax)
		in.Errors[j] = between(errorsMin, errorsMax)
	}
	return in
}

package framework

// CostClass partitions the roster into two trade-off regimes
type CostClass int

const (
	// CheapSlow nodes are cheap to keep running but expensive to wake up
	CheapSlow CostClass = iota
	// ExpensiveFast nodes cost more per slot but activate cheaply
	ExpensiveFast
)

func (c CostClass) String() string {
	switch c {
	case CheapSlow:
		return "cheap-slow"
	case ExpensiveFast:
		return "expensive-fast"
	default:
		return "unknown"
	}
}

const (
	MinNodeCapacity = 100

	cheapAlpha       = 20.0
	expensiveAlpha   = 250.0
	cheapDeltaFactor = 5.0
	fastDelta        = 10.0
	thetaFraction    = 0.1
)

// ClassOf returns the cost class of the node at index in a roster of total nodes.
// The first total/2 indexes are CheapSlow.
func ClassOf(index, total int) CostClass {
	if index < total/2 {
		return CheapSlow
	}
	return ExpensiveFast
}

// NodeCapacity returns max(100, 10*podTarget/nodeCount) using integer division
func NodeCapacity(podTarget, nodeCount int) int {
	return max(MinNodeCapacity, (podTarget*10)/nodeCount)
}

// BuildRoster returns the immutable node parameters for one execution.
// ratio scales the activation penalty of the CheapSlow class.
func BuildRoster(ratio float64, podTarget, nodeCount int) []NodeParams {
	capacity := NodeCapacity(podTarget, nodeCount)

	params := make([]NodeParams, nodeCount)
	for i := range params {
		var alpha, delta float64
		switch ClassOf(i, nodeCount) {
		case CheapSlow:
			alpha = cheapAlpha
			delta = alpha * ratio * cheapDeltaFactor
		default:
			alpha = expensiveAlpha
			delta = fastDelta
		}
		params[i] = NodeParams{
			ID:       i,
			Capacity: capacity,
			Alpha:    alpha,
			Delta:    delta,
			Theta:    delta * thetaFraction,
		}
	}
	return params
}

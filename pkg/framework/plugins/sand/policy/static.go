package policy

import (
	"github.com/camilla-m/facility-problem-sand/pkg/framework/plugins/sand/framework"
)

const StaticName = "static"

// Static ranks nodes by recurring cost only and ignores history
type Static struct{}

var _ Policy = Static{}

func (Static) Name() string {
	return StaticName
}

func (Static) Key(node framework.NodeParams, _ framework.ActivitySnapshot) float64 {
	return node.Alpha
}

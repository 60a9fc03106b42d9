/*
Copyright 2024 The Kubernetes Authors.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package v1alpha1

import (
	"k8s.io/apimachinery/pkg/runtime"
	"k8s.io/klog/v2"
	"k8s.io/utils/ptr"
)

const (
	DefaultExecutions = 5
	DefaultSlots      = 20
	DefaultSeed       = int64(42)
	DefaultPodSize    = 5
	DefaultRounding   = "round"
	DefaultColdStart  = "static"

	DefaultOracleSlots         = 20
	DefaultOracleIterations    = 10
	DefaultActivationPenalty   = 50.0
	DefaultDeactivationPenalty = 20.0
	DefaultOptimalityTolerance = 0.01
)

var (
	DefaultRatios     = []float64{1.0, 10.0, 100.0}
	DefaultPodCounts  = []int{50, 100, 200, 500, 1000, 5000, 10000}
	DefaultNodeCounts = []int{10, 20, 50, 100, 200}
)

func addDefaultingFuncs(scheme *runtime.Scheme) error {
	return RegisterDefaults(scheme)
}

func RegisterDefaults(scheme *runtime.Scheme) error {
	klog.V(5).InfoS("Registering defaults", "kind", "BenchmarkConfig")
	scheme.AddTypeDefaultingFunc(&BenchmarkConfig{}, func(obj interface{}) {
		SetDefaults_BenchmarkConfig(obj.(*BenchmarkConfig))
	})
	return nil
}

func SetDefaults_BenchmarkConfig(obj runtime.Object) {
	cfg := obj.(*BenchmarkConfig)

	if len(cfg.Ratios) == 0 {
		cfg.Ratios = append([]float64(nil), DefaultRatios...)
	}
	if len(cfg.PodCounts) == 0 {
		cfg.PodCounts = append([]int(nil), DefaultPodCounts...)
	}
	if len(cfg.NodeCounts) == 0 {
		cfg.NodeCounts = append([]int(nil), DefaultNodeCounts...)
	}
	if cfg.Executions == 0 {
		cfg.Executions = DefaultExecutions
	}
	if cfg.Slots == 0 {
		cfg.Slots = DefaultSlots
	}
	if cfg.Seed == nil {
		cfg.Seed = ptr.To(DefaultSeed)
	}
	if cfg.SeedMode == "" {
		cfg.SeedMode = SeedModeShared
	}
	if cfg.PodSize == 0 {
		cfg.PodSize = DefaultPodSize
	}
	if cfg.Rounding == "" {
		cfg.Rounding = DefaultRounding
	}
	if cfg.ColdStart == "" {
		cfg.ColdStart = DefaultColdStart
	}
	if cfg.Oracle != nil {
		SetDefaults_OracleConfig(cfg.Oracle)
	}
}

func SetDefaults_OracleConfig(cfg *OracleConfig) {
	if len(cfg.NodeCounts) == 0 {
		cfg.NodeCounts = []int{2, 3}
	}
	if len(cfg.PodCounts) == 0 {
		cfg.PodCounts = []int{3, 4, 6}
	}
	if cfg.Slots == 0 {
		cfg.Slots = DefaultOracleSlots
	}
	if cfg.Iterations == 0 {
		cfg.Iterations = DefaultOracleIterations
	}
	if cfg.ActivationPenalty == nil {
		cfg.ActivationPenalty = ptr.To(DefaultActivationPenalty)
	}
	if cfg.DeactivationPenalty == nil {
		cfg.DeactivationPenalty = ptr.To(DefaultDeactivationPenalty)
	}
	if cfg.Tolerance == nil {
		cfg.Tolerance = ptr.To(DefaultOptimalityTolerance)
	}
}

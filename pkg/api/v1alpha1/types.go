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
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
)

// SeedMode selects how random generators are created for a sweep
type SeedMode string

const (
	// SeedModeShared advances a single generator across the whole sweep
	SeedModeShared SeedMode = "shared"
	// SeedModePerExecution derives one generator per execution from the seed
	// and the execution's coordinates
	SeedModePerExecution SeedMode = "perExecution"
)

// +k8s:deepcopy-gen:interfaces=k8s.io/apimachinery/pkg/runtime.Object

// BenchmarkConfig describes a parameter sweep comparing the static and
// temporal placement policies
type BenchmarkConfig struct {
	metav1.TypeMeta   `json:",inline"`
	metav1.ObjectMeta `json:"metadata,omitempty"`

	// Ratios scale the activation penalty of the cheap node class
	Ratios []float64 `json:"ratios,omitempty"`

	// PodCounts are the baseline pod counts per slot
	PodCounts []int `json:"podCounts,omitempty"`

	// NodeCounts are the roster sizes
	NodeCounts []int `json:"nodeCounts,omitempty"`

	// Executions is the number of independent runs per configuration
	Executions int `json:"executions,omitempty"`

	// Slots is the number of time slots per execution
	Slots int `json:"slots,omitempty"`

	// Seed initialises the pseudorandom stream
	Seed *int64 `json:"seed,omitempty"`

	// SeedMode is either shared or perExecution
	SeedMode SeedMode `json:"seedMode,omitempty"`

	// PodSize is the demand of every generated pod
	PodSize int `json:"podSize,omitempty"`

	// Rounding converts the scaled baseline into a pod count: round or truncate
	Rounding string `json:"rounding,omitempty"`

	// ColdStart is how the temporal policy ranks before any history exists:
	// static or activation
	ColdStart string `json:"coldStart,omitempty"`

	// ValidateInvariants checks the capacity invariant after every placement
	ValidateInvariants bool `json:"validateInvariants,omitempty"`

	// Oracle configures exact validation on small instances
	Oracle *OracleConfig `json:"oracle,omitempty"`
}

// OracleConfig describes the instance grid handed to the exact solver
type OracleConfig struct {
	// NodeCounts and PodCounts span the instance grid. Pairs with fewer pods
	// than nodes are skipped.
	NodeCounts []int `json:"nodeCounts,omitempty"`
	PodCounts  []int `json:"podCounts,omitempty"`

	// Slots is the horizon of each instance
	Slots int `json:"slots,omitempty"`

	// Iterations is the number of instances per grid point
	Iterations int `json:"iterations,omitempty"`

	// ActivationPenalty and DeactivationPenalty are the inertia costs
	ActivationPenalty   *float64 `json:"activationPenalty,omitempty"`
	DeactivationPenalty *float64 `json:"deactivationPenalty,omitempty"`

	// Tolerance is the accepted relative optimality gap
	Tolerance *float64 `json:"tolerance,omitempty"`
}

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
	"k8s.io/apimachinery/pkg/util/validation/field"
)

var (
	validRoundings  = []string{"round", "truncate"}
	validColdStarts = []string{"static", "activation"}
	validSeedModes  = []string{string(SeedModeShared), string(SeedModePerExecution)}
)

// ValidateBenchmarkConfig validates a defaulted BenchmarkConfig. The
// simulation core assumes every count it receives is positive.
func ValidateBenchmarkConfig(cfg *BenchmarkConfig) error {
	return validateBenchmarkConfig(cfg).ToAggregate()
}

func validateBenchmarkConfig(cfg *BenchmarkConfig) field.ErrorList {
	var allErrs field.ErrorList

	if len(cfg.Ratios) == 0 {
		allErrs = append(allErrs, field.Required(field.NewPath("ratios"), "at least one ratio is required"))
	}
	for i, r := range cfg.Ratios {
		if r < 0 {
			allErrs = append(allErrs, field.Invalid(field.NewPath("ratios").Index(i), r, "must be non-negative"))
		}
	}
	allErrs = append(allErrs, validatePositiveList(field.NewPath("podCounts"), cfg.PodCounts)...)
	allErrs = append(allErrs, validatePositiveList(field.NewPath("nodeCounts"), cfg.NodeCounts)...)

	if cfg.Executions <= 0 {
		allErrs = append(allErrs, field.Invalid(field.NewPath("executions"), cfg.Executions, "must be positive"))
	}
	if cfg.Slots <= 0 {
		allErrs = append(allErrs, field.Invalid(field.NewPath("slots"), cfg.Slots, "must be positive"))
	}
	if cfg.PodSize <= 0 {
		allErrs = append(allErrs, field.Invalid(field.NewPath("podSize"), cfg.PodSize, "must be positive"))
	}
	if cfg.Seed != nil && *cfg.Seed < 0 {
		allErrs = append(allErrs, field.Invalid(field.NewPath("seed"), *cfg.Seed, "must be non-negative"))
	}
	if !oneOf(string(cfg.SeedMode), validSeedModes) {
		allErrs = append(allErrs, field.NotSupported(field.NewPath("seedMode"), cfg.SeedMode, validSeedModes))
	}
	if !oneOf(cfg.Rounding, validRoundings) {
		allErrs = append(allErrs, field.NotSupported(field.NewPath("rounding"), cfg.Rounding, validRoundings))
	}
	if !oneOf(cfg.ColdStart, validColdStarts) {
		allErrs = append(allErrs, field.NotSupported(field.NewPath("coldStart"), cfg.ColdStart, validColdStarts))
	}

	if cfg.Oracle != nil {
		allErrs = append(allErrs, validateOracleConfig(field.NewPath("oracle"), cfg.Oracle)...)
	}

	return allErrs
}

func validateOracleConfig(path *field.Path, cfg *OracleConfig) field.ErrorList {
	var allErrs field.ErrorList

	allErrs = append(allErrs, validatePositiveList(path.Child("nodeCounts"), cfg.NodeCounts)...)
	allErrs = append(allErrs, validatePositiveList(path.Child("podCounts"), cfg.PodCounts)...)
	if cfg.Slots <= 0 {
		allErrs = append(allErrs, field.Invalid(path.Child("slots"), cfg.Slots, "must be positive"))
	}
	if cfg.Iterations <= 0 {
		allErrs = append(allErrs, field.Invalid(path.Child("iterations"), cfg.Iterations, "must be positive"))
	}
	if cfg.ActivationPenalty != nil && *cfg.ActivationPenalty < 0 {
		allErrs = append(allErrs, field.Invalid(path.Child("activationPenalty"), *cfg.ActivationPenalty, "must be non-negative"))
	}
	if cfg.DeactivationPenalty != nil && *cfg.DeactivationPenalty < 0 {
		allErrs = append(allErrs, field.Invalid(path.Child("deactivationPenalty"), *cfg.DeactivationPenalty, "must be non-negative"))
	}
	if cfg.Tolerance != nil && (*cfg.Tolerance < 0 || *cfg.Tolerance > 1) {
		allErrs = append(allErrs, field.Invalid(path.Child("tolerance"), *cfg.Tolerance, "must be between 0 and 1"))
	}

	return allErrs
}

func validatePositiveList(path *field.Path, values []int) field.ErrorList {
	var allErrs field.ErrorList
	if len(values) == 0 {
		return append(allErrs, field.Required(path, "at least one value is required"))
	}
	for i, v := range values {
		if v <= 0 {
			allErrs = append(allErrs, field.Invalid(path.Index(i), v, "must be positive"))
		}
	}
	return allErrs
}

func oneOf(value string, valid []string) bool {
	for _, v := range valid {
		if value == v {
			return true
		}
	}
	return false
}

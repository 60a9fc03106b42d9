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
	"fmt"
	"os"

	"sigs.k8s.io/yaml"
)

// LoadBenchmarkConfig reads a YAML or JSON BenchmarkConfig from path and
// applies defaults. An empty path returns a fully defaulted config.
func LoadBenchmarkConfig(path string) (*BenchmarkConfig, error) {
	cfg := &BenchmarkConfig{}
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read benchmark config %q: %w", path, err)
		}
		if cfg, err = DecodeBenchmarkConfig(data); err != nil {
			return nil, fmt.Errorf("failed to decode benchmark config %q: %w", path, err)
		}
	}
	if err := Default(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// DecodeBenchmarkConfig strictly decodes a YAML or JSON document without defaulting it
func DecodeBenchmarkConfig(data []byte) (*BenchmarkConfig, error) {
	cfg := &BenchmarkConfig{}
	if err := yaml.UnmarshalStrict(data, cfg); err != nil {
		return nil, err
	}
	if cfg.APIVersion != "" && cfg.APIVersion != SchemeGroupVersion.String() {
		return nil, fmt.Errorf("unsupported apiVersion %q, want %q", cfg.APIVersion, SchemeGroupVersion.String())
	}
	if cfg.Kind != "" && cfg.Kind != "BenchmarkConfig" {
		return nil, fmt.Errorf("unsupported kind %q, want BenchmarkConfig", cfg.Kind)
	}
	return cfg, nil
}

// Default applies the registered defaulting functions to cfg
func Default(cfg *BenchmarkConfig) error {
	scheme, err := NewScheme()
	if err != nil {
		return fmt.Errorf("failed to build scheme: %w", err)
	}
	scheme.Default(cfg)
	return nil
}

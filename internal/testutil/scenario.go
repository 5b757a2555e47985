// Package testutil provides shared test helpers for calc tests.
package testutil

import (
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// ScenariosDir is the relative path from the module root to the shared
// conformance scenarios.
const ScenariosDir = "testdata/scenarios"

// Scenario represents a conformance case loaded from a YAML file.
type Scenario struct {
	Name   string         `yaml:"name"`
	Cmd    string         `yaml:"cmd"` // "run" or "check"
	Source string         `yaml:"source"`
	Expect ExpectedResult `yaml:"expect"`
}

// ExpectedResult describes the expected outcome of a scenario.
type ExpectedResult struct {
	Value    *float64 `yaml:"value,omitempty"`
	NoValue  bool     `yaml:"noValue,omitempty"`
	ErrCode  string   `yaml:"errCode,omitempty"`
	DiagCode []string `yaml:"diagCodes,omitempty"`
}

// LoadScenario loads a single scenario file.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var s Scenario
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, err
	}
	if s.Name == "" {
		s.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return &s, nil
}

// ListScenarios returns the paths of all scenario files under root.
func ListScenarios(root string) ([]string, error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, err
	}
	var paths []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if strings.HasSuffix(e.Name(), ".yaml") || strings.HasSuffix(e.Name(), ".yml") {
			paths = append(paths, filepath.Join(root, e.Name()))
		}
	}
	return paths, nil
}

package curve

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// User presets are small yaml documents dropped into the config
// directory:
//
//	name: flat boost
//	points:
//	  - {input: 0.0, output: 0.0}
//	  - {input: 0.5, output: 1.0}
//	  - {input: 1.0, output: 1.6}

type presetFile struct {
	Name   string `yaml:"name"`
	Points []struct {
		Input  float64 `yaml:"input"`
		Output float64 `yaml:"output"`
	} `yaml:"points"`
}

// ParsePreset parses and validates one user preset document.
func ParsePreset(data []byte) (string, []Point, error) {
	var pf presetFile
	if err := yaml.Unmarshal(data, &pf); err != nil {
		return "", nil, fmt.Errorf("cannot parse preset: %w", err)
	}
	if pf.Name == "" {
		return "", nil, fmt.Errorf("preset has no name")
	}

	points := make([]Point, len(pf.Points))
	for i, p := range pf.Points {
		points[i] = Point{Input: p.Input, Output: p.Output}
	}
	if err := Validate(points); err != nil {
		return "", nil, fmt.Errorf("preset %q: %w", pf.Name, err)
	}
	return pf.Name, points, nil
}

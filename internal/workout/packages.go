package workout

import (
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// Package is one tracker reading: a modality tag with its positional payload.
type Package struct {
	Tag     string    `yaml:"tag" json:"tag"`
	Payload []float64 `yaml:"payload" json:"payload"`
}

// ReferencePackages returns the sample readings the tracker ships with.
func ReferencePackages() []Package {
	return []Package{
		{Tag: TagSwimming, Payload: []float64{720, 1, 80, 25, 40}},
		{Tag: TagRunning, Payload: []float64{15000, 1, 75}},
		{Tag: TagWalking, Payload: []float64{9000, 1, 75, 180}},
	}
}

// ReadPackages decodes a YAML sequence of packages, for example
//
//	[{tag: RUN, payload: [15000, 1, 75]}, {tag: WLK, payload: [9000, 1, 75, 180]}]
func ReadPackages(r io.Reader) ([]Package, error) {
	var packages []Package
	if err := yaml.NewDecoder(r).Decode(&packages); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, fmt.Errorf("decoding packages: %w", err)
	}
	return packages, nil
}

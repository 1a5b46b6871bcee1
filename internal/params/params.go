// Package params loads model parameter files. A parameter file is JSON with
// explicit slot indices, so the file is robust against reordering and a
// missing or duplicated slot is a load error rather than a silent shift.
package params

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/IsabelB18/HumanSAN-Fabbri2017/internal/dynamo"
	"github.com/IsabelB18/HumanSAN-Fabbri2017/internal/san"
)

//go:embed fabbri2017.json
var defaultFile []byte

// File is the on-disk parameter file layout.
type File struct {
	Model     string          `json:"model"`
	Constants []ConstantEntry `json:"constants"`
	States    []StateEntry    `json:"states"`
}

type ConstantEntry struct {
	Index       int     `json:"index"`
	Name        string  `json:"name"`
	Value       float64 `json:"value"`
	Description string  `json:"description"`
	Unit        string  `json:"unit"`
}

type StateEntry struct {
	Index            int     `json:"index"`
	Name             string  `json:"name"`
	InitialCondition float64 `json:"initial_condition"`
	Description      string  `json:"description"`
	Unit             string  `json:"unit"`
}

// Default returns the published Fabbri 2017 parameter set.
func Default() (*san.ParameterSet, error) {
	return Parse(bytes.NewReader(defaultFile))
}

// Load reads a parameter file from disk.
func Load(path string) (*san.ParameterSet, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", dynamo.ErrConfiguration, err)
	}
	defer f.Close()
	ps, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return ps, nil
}

// Parse decodes and validates a parameter file. Every constant slot
// 0..NumPrimary-1 and every state slot 0..NumStates-1 must appear exactly
// once; entries may come in any order.
func Parse(r io.Reader) (*san.ParameterSet, error) {
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()

	var f File
	if err := dec.Decode(&f); err != nil {
		return nil, fmt.Errorf("%w: %v", dynamo.ErrConfiguration, err)
	}

	if len(f.Constants) != san.NumPrimary {
		return nil, fmt.Errorf("%w: got %d constant entries, want %d",
			dynamo.ErrConfiguration, len(f.Constants), san.NumPrimary)
	}
	if len(f.States) != san.NumStates {
		return nil, fmt.Errorf("%w: got %d state entries, want %d",
			dynamo.ErrConfiguration, len(f.States), san.NumStates)
	}

	ps := &san.ParameterSet{
		Constants:      make([]float64, san.NumPrimary),
		States:         make([]float64, san.NumStates),
		ConstantLabels: make([]san.Label, san.NumPrimary),
		StateLabels:    make([]san.Label, san.NumStates),
	}

	seen := make([]bool, san.NumPrimary)
	for _, e := range f.Constants {
		if e.Index < 0 || e.Index >= san.NumPrimary {
			return nil, fmt.Errorf("%w: constant %q has index %d, valid range is 0..%d",
				dynamo.ErrConfiguration, e.Name, e.Index, san.NumPrimary-1)
		}
		if seen[e.Index] {
			return nil, fmt.Errorf("%w: duplicate constant index %d (%q)",
				dynamo.ErrConfiguration, e.Index, e.Name)
		}
		if e.Name == "" {
			return nil, fmt.Errorf("%w: constant index %d has no name", dynamo.ErrConfiguration, e.Index)
		}
		seen[e.Index] = true
		ps.Constants[e.Index] = e.Value
		ps.ConstantLabels[e.Index] = san.Label{Name: e.Name, Description: e.Description, Unit: e.Unit}
	}

	seen = make([]bool, san.NumStates)
	for _, e := range f.States {
		if e.Index < 0 || e.Index >= san.NumStates {
			return nil, fmt.Errorf("%w: state %q has index %d, valid range is 0..%d",
				dynamo.ErrConfiguration, e.Name, e.Index, san.NumStates-1)
		}
		if seen[e.Index] {
			return nil, fmt.Errorf("%w: duplicate state index %d (%q)",
				dynamo.ErrConfiguration, e.Index, e.Name)
		}
		if e.Name == "" {
			return nil, fmt.Errorf("%w: state index %d has no name", dynamo.ErrConfiguration, e.Index)
		}
		seen[e.Index] = true
		ps.States[e.Index] = e.InitialCondition
		ps.StateLabels[e.Index] = san.Label{Name: e.Name, Description: e.Description, Unit: e.Unit}
	}

	if err := ps.Validate(); err != nil {
		return nil, err
	}
	return ps, nil
}

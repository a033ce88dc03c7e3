package params

import (
	"fmt"

	"github.com/aretw0/ardufsm/pkg/domain"
)

// ResultID indexes the result table.
type ResultID int

const (
	Response ResultID = iota
	Outcome
)

// ResultSpec declares one result.
type ResultSpec struct {
	Name    string `yaml:"name" json:"name" mapstructure:"name"`
	Default int64  `yaml:"default" json:"default" mapstructure:"default"`
}

// StandardResultSpecs returns the result table of the go/no-go protocol.
func StandardResultSpecs() []ResultSpec {
	return []ResultSpec{
		Response: {Name: "RESP", Default: 0},
		Outcome:  {Name: "OUTC", Default: 0},
	}
}

// Results holds the live results of the current trial.
type Results struct {
	table[ResultID]
}

// NewResults creates a result table initialised with the defaults of specs.
func NewResults(specs []ResultSpec) *Results {
	names := make([]string, len(specs))
	defaults := make([]int64, len(specs))
	for i, s := range specs {
		names[i] = s.Name
		defaults[i] = s.Default
	}
	return &Results{table: newTable[ResultID](names, defaults)}
}

// StandardResults creates the standard result table.
func StandardResults() *Results {
	return NewResults(StandardResultSpecs())
}

// Len returns the number of results.
func (r *Results) Len() int { return len(r.names) }

// Get returns the current value of id.
func (r *Results) Get(id ResultID) int64 { return r.get(id) }

// Set writes the value of id.
func (r *Results) Set(id ResultID, v int64) { r.set(id, v) }

// Name returns the wire abbreviation of id.
func (r *Results) Name(id ResultID) string { return r.names[id] }

// Default returns the value id is reset to at trial start.
func (r *Results) Default(id ResultID) int64 { return r.defaults[id] }

// Lookup resolves a wire abbreviation.
func (r *Results) Lookup(name string) (ResultID, bool) { return r.lookup(name) }

// GetByName reads a result by its abbreviation.
func (r *Results) GetByName(name string) (int64, error) {
	id, ok := r.lookup(name)
	if !ok {
		return 0, fmt.Errorf("%w: %s", domain.ErrUnknownResult, name)
	}
	return r.get(id), nil
}

// Reset copies the defaults over the live values.
func (r *Results) Reset() { r.reset() }

// Each calls fn for every result in index order.
func (r *Results) Each(fn func(id ResultID, name string, value int64)) { r.each(fn) }

// Snapshot returns the current values keyed by abbreviation.
func (r *Results) Snapshot() map[string]int64 { return r.snapshot() }

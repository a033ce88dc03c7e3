package params

import (
	"fmt"

	"github.com/aretw0/ardufsm/pkg/domain"
)

// ParamID indexes the parameter table.
type ParamID int

// Standard parameter indices, in host-table order.
const (
	StepperIndex ParamID = iota
	SpeakerIndex
	StimDuration
	Rewarded
	RewardDuration
	InterRewardInterval
	ErrorTimeout
	InterTrialInterval
	ResponseWindowDuration
	MaxRewards
	TerminateOnError
)

// Category is the host-side policy for when a parameter must be set.
// It is metadata only; the controller never refuses a trial because of it.
type Category int

const (
	// Required parameters must be sent before every trial.
	Required Category = iota
	// Latched parameters keep their value across trials until changed.
	Latched
	// InitOnly parameters are normally sent once before the first trial.
	InitOnly
)

func (c Category) String() string {
	switch c {
	case Required:
		return "required"
	case Latched:
		return "latched"
	case InitOnly:
		return "init-only"
	}
	return fmt.Sprintf("category(%d)", int(c))
}

// Spec declares one parameter.
type Spec struct {
	Name     string   `yaml:"name" json:"name" mapstructure:"name"`
	Default  int64    `yaml:"default" json:"default" mapstructure:"default"`
	Report   bool     `yaml:"report" json:"report" mapstructure:"report"`
	Category Category `yaml:"category" json:"category" mapstructure:"category"`
}

// StandardSpecs returns the parameter table of the go/no-go protocol.
func StandardSpecs() []Spec {
	return []Spec{
		StepperIndex:           {Name: "STPRIDX", Default: 0, Report: true, Category: Required},
		SpeakerIndex:           {Name: "SPKRIDX", Default: 0, Report: true, Category: Latched},
		StimDuration:           {Name: "STIMDUR", Default: 2000, Report: true, Category: Required},
		Rewarded:               {Name: "REW", Default: 0, Report: true, Category: Required},
		RewardDuration:         {Name: "REW_DUR", Default: 50, Category: InitOnly},
		InterRewardInterval:    {Name: "IRI", Default: 500, Category: Latched},
		ErrorTimeout:           {Name: "TO", Default: 6000, Category: Latched},
		InterTrialInterval:     {Name: "ITI", Default: 3000, Category: Latched},
		ResponseWindowDuration: {Name: "RWIN", Default: 45000, Category: Latched},
		MaxRewards:             {Name: "MRT", Default: 1, Category: Latched},
		TerminateOnError:       {Name: "TOE", Default: 1, Category: Latched},
	}
}

// Store holds the current parameter values.
// Setting a value never fails and takes effect on the next read; states read
// durations once at entry, so a value written mid-state applies from the next entry.
type Store struct {
	specs []Spec
	table[ParamID]
}

// NewStore creates a store initialised with the defaults of specs.
func NewStore(specs []Spec) *Store {
	names := make([]string, len(specs))
	defaults := make([]int64, len(specs))
	for i, s := range specs {
		names[i] = s.Name
		defaults[i] = s.Default
	}
	return &Store{
		specs: specs,
		table: newTable[ParamID](names, defaults),
	}
}

// Standard creates a store with the standard parameter table.
func Standard() *Store {
	return NewStore(StandardSpecs())
}

// Len returns the number of parameters.
func (s *Store) Len() int { return len(s.specs) }

// Get returns the current value of id.
func (s *Store) Get(id ParamID) int64 { return s.get(id) }

// Set writes the value of id.
func (s *Store) Set(id ParamID, v int64) { s.set(id, v) }

// Name returns the wire abbreviation of id.
func (s *Store) Name(id ParamID) string { return s.specs[id].Name }

// Report reports whether id is announced in a TRLP line at every trial start.
func (s *Store) Report(id ParamID) bool { return s.specs[id].Report }

// Category returns the host-side policy of id.
func (s *Store) Category(id ParamID) Category { return s.specs[id].Category }

// Spec returns the declaration of id.
func (s *Store) Spec(id ParamID) Spec { return s.specs[id] }

// Lookup resolves a wire abbreviation.
func (s *Store) Lookup(name string) (ParamID, bool) { return s.lookup(name) }

// SetByName writes a parameter by its abbreviation.
func (s *Store) SetByName(name string, v int64) error {
	id, ok := s.lookup(name)
	if !ok {
		return fmt.Errorf("%w: %s", domain.ErrUnknownParam, name)
	}
	s.set(id, v)
	return nil
}

// Each calls fn for every parameter in index order.
func (s *Store) Each(fn func(id ParamID, name string, value int64)) { s.each(fn) }

// Snapshot returns the current values keyed by abbreviation.
func (s *Store) Snapshot() map[string]int64 { return s.snapshot() }

// MissingRequired lists the required parameters still holding the must-define sentinel.
func (s *Store) MissingRequired() []string {
	var missing []string
	for i, spec := range s.specs {
		if spec.Category == Required && s.values[i] == domain.MustDefine {
			missing = append(missing, spec.Name)
		}
	}
	return missing
}

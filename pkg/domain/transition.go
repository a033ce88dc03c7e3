package domain

// Rule describes one edge of the trial FSM.
// Rules are static: they document which transitions a state may request and under
// which condition, for graph export and introspection. They are not evaluated at runtime.
type Rule struct {
	From      StateID `json:"from" yaml:"from"`
	To        StateID `json:"to" yaml:"to"`
	Condition string  `json:"condition,omitempty" yaml:"condition,omitempty"`
}

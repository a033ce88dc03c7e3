package domain

import "errors"

// ErrUnknownParam is returned when a parameter abbreviation is not in the table.
var ErrUnknownParam = errors.New("unknown parameter")

// ErrUnknownResult is returned when a result abbreviation is not in the table.
var ErrUnknownResult = errors.New("unknown result")

// ErrUnknownState is returned when a state requests a transition to a state that is not registered.
var ErrUnknownState = errors.New("unknown state")

// ErrMalformedCommand is returned by the communication layer for lines it cannot parse.
var ErrMalformedCommand = errors.New("malformed command")

package ports

import (
	"context"
	"time"
)

// Reporter emits protocol lines to the host.
// A line is the timestamp in milliseconds, the tag and the fields separated by spaces.
type Reporter interface {
	Report(at time.Duration, tag string, fields ...any) error
}

// CommandSource delivers host commands. Poll must not block: it applies whatever
// commands have arrived and returns. A non-nil error is a communication error; the
// caller logs it and keeps going.
type CommandSource interface {
	Poll(ctx context.Context) error
}

// CommandTarget is what host commands act on.
type CommandTarget interface {
	SetParam(name string, value int64) error
	ReleaseTrial()
}

// Protocol tags. Host-side parsers depend on the exact spelling.
const (
	TagParam        = "TRLP"
	TagResult       = "TRLR"
	TagTrialStart   = "TRL_START"
	TagTrialRelease = "TRL_RELEASED"
	TagStateChange  = "ST_CHG"
	TagStateChange2 = "ST_CHG2"
	TagDebug        = "DBG"
)

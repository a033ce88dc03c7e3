package domain

// TrialSpeak boolean encoding. Zero is never sent by the host, so it doubles as the
// must-define sentinel for required parameters.
const (
	MustDefine int64 = 0
	No         int64 = 2
	Yes        int64 = 3
)

// Response is the subject's response for a trial, stored in the RESP result.
type Response int64

const (
	ResponseUnset Response = 0
	ResponseGo    Response = 1
	ResponseNoGo  Response = 2
)

func (r Response) String() string {
	switch r {
	case ResponseGo:
		return "GO"
	case ResponseNoGo:
		return "NOGO"
	default:
		return "UNSET"
	}
}

// Outcome classifies a trial by comparing the response with the trial type.
// It is stored in the OUTC result.
type Outcome int64

const (
	OutcomeUnset            Outcome = 0
	OutcomeHit              Outcome = 1
	OutcomeFalseAlarm       Outcome = 2
	OutcomeMiss             Outcome = 3
	OutcomeCorrectRejection Outcome = 4
)

func (o Outcome) String() string {
	switch o {
	case OutcomeHit:
		return "hit"
	case OutcomeFalseAlarm:
		return "false_alarm"
	case OutcomeMiss:
		return "miss"
	case OutcomeCorrectRejection:
		return "correct_rejection"
	default:
		return "unset"
	}
}

// BehaviorID selects what a device does during the stimulus period of a trial.
// It is drawn from the device's parameter (STPRIDX, SPKRIDX) at stimulus entry.
type BehaviorID int

// BehaviorNone leaves the device idle for the trial.
const BehaviorNone BehaviorID = 0

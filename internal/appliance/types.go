package appliance

import (
	"fmt"
	"strings"
)

// Mode is the functional mode of the appliance. Advancing is cyclic.
type Mode int

const (
	ModeHidden Mode = iota
	ModeDiet
	ModeBread

	modeCount
)

func (m Mode) String() string {
	switch m {
	case ModeHidden:
		return "HIDDEN"
	case ModeDiet:
		return "DIET"
	case ModeBread:
		return "BREAD"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

func (m Mode) next() Mode {
	return (m + 1) % modeCount
}

// Phase is the timer sub-state.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseRunning
	PhasePaused
	PhaseRinging
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "IDLE"
	case PhaseRunning:
		return "RUNNING"
	case PhasePaused:
		return "PAUSED"
	case PhaseRinging:
		return "RINGING"
	default:
		return fmt.Sprintf("Phase(%d)", int(p))
	}
}

// Direction tells whether the timer counts elapsed or remaining seconds.
type Direction int

const (
	DirectionUp Direction = iota
	DirectionDown
)

func (d Direction) String() string {
	if d == DirectionDown {
		return "DOWN"
	}
	return "UP"
}

// Variant selects the single- or dual-platform build of the appliance.
type Variant int

const (
	VariantSingle Variant = iota
	VariantDual
)

func (v Variant) String() string {
	if v == VariantDual {
		return "dual"
	}
	return "single"
}

// ParseVariant accepts "single" or "dual" (case-insensitive).
func ParseVariant(s string) (Variant, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "single":
		return VariantSingle, nil
	case "dual":
		return VariantDual, nil
	default:
		return VariantSingle, fmt.Errorf("unknown scale variant %q: must be single or dual", s)
	}
}

// Severity classifies a notice for the notification sink.
type Severity int

const (
	SeverityInfo Severity = iota
	SeveritySuccess
	SeverityError
)

func (s Severity) String() string {
	switch s {
	case SeveritySuccess:
		return "success"
	case SeverityError:
		return "error"
	default:
		return "info"
	}
}

// Outcome reports what an action did to the session.
type Outcome int

const (
	// OutcomeApplied means the action ran (it may still have left state unchanged).
	OutcomeApplied Outcome = iota
	// OutcomeInert means the action was ignored: power is off or the control
	// is not available in the current mode.
	OutcomeInert
	// OutcomePreconditionNotMet means no usable weight was on the relevant channel(s).
	OutcomePreconditionNotMet
)

func (o Outcome) String() string {
	switch o {
	case OutcomeInert:
		return "inert"
	case OutcomePreconditionNotMet:
		return "precondition_not_met"
	default:
		return "applied"
	}
}

// Notice is a user-facing message produced by an action.
type Notice struct {
	Message  string
	Severity Severity
	Metadata map[string]any
}

// Result is returned by every mutating action.
type Result struct {
	Outcome Outcome
	Notice  *Notice // nil when the action is silent
}

// Sink receives notices after the session lock has been released.
type Sink interface {
	Deliver(n Notice)
}

// SinkFunc adapts a function to Sink.
type SinkFunc func(n Notice)

func (f SinkFunc) Deliver(n Notice) { f(n) }

type discardSink struct{}

func (discardSink) Deliver(Notice) {}

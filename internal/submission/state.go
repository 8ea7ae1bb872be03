package submission

import "github.com/Aditya-Mahlawat/resume-screener/internal/screener"

// Phase identifies which lifecycle state a submission is in.
type Phase int

const (
	// PhaseIdle is the initial state, before any submission attempt.
	PhaseIdle Phase = iota
	// PhaseInFlight means a request was dispatched and no reply arrived yet.
	PhaseInFlight
	// PhaseFailed means the last attempt ended with an error message.
	PhaseFailed
	// PhaseSucceeded means the last attempt produced a rank result.
	PhaseSucceeded
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseInFlight:
		return "in_flight"
	case PhaseFailed:
		return "failed"
	case PhaseSucceeded:
		return "succeeded"
	default:
		return "unknown"
	}
}

// State is the submission lifecycle value. It is a tagged union: message is
// set only while failed, result only while succeeded. Every transition
// replaces the whole value, so stale payloads cannot survive a phase change.
type State struct {
	phase   Phase
	message string
	result  *screener.RankResult
}

// Idle is the state before any submission attempt.
func Idle() State { return State{phase: PhaseIdle} }

// InFlight is the state while a request is outstanding.
func InFlight() State { return State{phase: PhaseInFlight} }

// Failed carries the human-readable error text for the last attempt.
func Failed(message string) State {
	return State{phase: PhaseFailed, message: message}
}

// Succeeded carries the rank result of the last attempt.
func Succeeded(result *screener.RankResult) State {
	return State{phase: PhaseSucceeded, result: result}
}

func (s State) Phase() Phase { return s.phase }

// Message returns the error text, empty unless the state is failed.
func (s State) Message() string { return s.message }

// Result returns the rank result, nil unless the state is succeeded.
func (s State) Result() *screener.RankResult { return s.result }

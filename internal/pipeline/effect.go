package pipeline

import "leadboard/internal/model"

// TransitionKind classifies a cross-column move against the pipeline order.
type TransitionKind int

const (
	TransitionForward TransitionKind = iota
	TransitionSkip
	TransitionBackward
)

func (k TransitionKind) String() string {
	switch k {
	case TransitionForward:
		return "forward"
	case TransitionSkip:
		return "skip"
	case TransitionBackward:
		return "backward"
	}
	return "unknown"
}

func classify(from, to model.Stage) TransitionKind {
	switch {
	case to == from+1:
		return TransitionForward
	case to > from:
		return TransitionSkip
	default:
		return TransitionBackward
	}
}

// Effect is a stage change the caller must report to the remote store.
type Effect struct {
	LeadID int64
	From   model.Stage
	To     model.Stage
	Kind   TransitionKind
}

func newEffect(leadID int64, from, to model.Stage) Effect {
	return Effect{LeadID: leadID, From: from, To: to, Kind: classify(from, to)}
}

// Notifier receives stage changes. Implementations must not block the caller.
type Notifier interface {
	Notify(leadID int64, stage model.Stage)
}

// NotifierFunc adapts a plain function to Notifier.
type NotifierFunc func(leadID int64, stage model.Stage)

func (f NotifierFunc) Notify(leadID int64, stage model.Stage) { f(leadID, stage) }

// Execute hands every effect to n and returns how many were dispatched.
// Every cross-column move is reported, including backward and skip moves.
func Execute(effects []Effect, n Notifier) int {
	if n == nil {
		return 0
	}
	for _, e := range effects {
		n.Notify(e.LeadID, e.To)
	}
	return len(effects)
}

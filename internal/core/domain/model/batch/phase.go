package batch

import (
	"errors"
	"fmt"
)

// ErrInvalidPhase is the sentinel behind every refused phase transition.
var ErrInvalidPhase = errors.New("action not allowed in current phase")

// Phase is the step a Run is in.
//
// State transitions:
//
//	Select ──> Quoting ──> Review ──> Generating ──> Complete
//
// Cancelling is allowed from every phase and discards the run.
type Phase int

const (
	// Unknown represents an invalid or undefined phase.
	Unknown Phase = iota

	// Select is the initial phase; the selection can be edited.
	Select

	// Quoting runs the quote selector over the selected orders.
	Quoting

	// Review shows the quote outcomes and the projected cost.
	Review

	// Generating issues labels for the quoted orders.
	Generating

	// Complete is final.
	Complete
)

func getPhaseStrings() map[Phase]string {
	return map[Phase]string{
		Unknown:    "UNKNOWN",
		Select:     "SELECT",
		Quoting:    "QUOTING",
		Review:     "REVIEW",
		Generating: "GENERATING",
		Complete:   "COMPLETE",
	}
}

// String returns the upper case phase name used in reports.
func (p Phase) String() string {
	if str, ok := getPhaseStrings()[p]; ok {
		return str
	}
	return "UNKNOWN"
}

// IsBusy reports whether a loop is running over the run's orders.
func (p Phase) IsBusy() bool {
	return p == Quoting || p == Generating
}

// StartQuoting transitions Select -> Quoting.
func (p Phase) StartQuoting() (Phase, error) {
	return p.transition(Select, Quoting, "start quoting")
}

// FinishQuoting transitions Quoting -> Review.
func (p Phase) FinishQuoting() (Phase, error) {
	return p.transition(Quoting, Review, "finish quoting")
}

// StartGeneration transitions Review -> Generating.
func (p Phase) StartGeneration() (Phase, error) {
	return p.transition(Review, Generating, "start generation")
}

// Finish transitions Generating -> Complete.
func (p Phase) Finish() (Phase, error) {
	return p.transition(Generating, Complete, "finish generation")
}

func (p Phase) require(expected Phase, action string) error {
	if p != expected {
		return &PhaseError{Phase: p, Action: action}
	}
	return nil
}

func (p Phase) transition(from, to Phase, action string) (Phase, error) {
	if err := p.require(from, action); err != nil {
		return 0, err
	}
	return to, nil
}

// PhaseError reports an action attempted in the wrong phase.
type PhaseError struct {
	Phase  Phase
	Action string
}

func (e *PhaseError) Error() string {
	return fmt.Sprintf("cannot %s in phase %s", e.Action, e.Phase)
}

func (e *PhaseError) Unwrap() error {
	return ErrInvalidPhase
}

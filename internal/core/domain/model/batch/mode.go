package batch

// Mode selects how a Run picks rates.
type Mode int

const (
	// Batch quotes many orders and auto-selects the cheapest rate for each.
	Batch Mode = iota + 1
	// Single quotes one order and waits for a human to pick among the offers.
	Single
)

func (m Mode) String() string {
	switch m {
	case Batch:
		return "batch"
	case Single:
		return "single"
	default:
		return "unknown"
	}
}

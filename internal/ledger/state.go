package ledger

// State is the session state of a Ledger.
type State int

const (
	// StateSetup means the roster has not been created yet.
	StateSetup State = iota
	// StateActive allows item mutations and receipt queries.
	StateActive
)

func (s State) String() string {
	switch s {
	case StateSetup:
		return "SETUP"
	case StateActive:
		return "ACTIVE"
	default:
		return "UNKNOWN"
	}
}

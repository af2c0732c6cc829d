package models

import "fmt"

// Participant is one member of the group splitting the bill.
type Participant struct {
	// ID is stable for the participant's lifetime ("1".."n").
	ID string

	// Name is the display label. It may be edited any number of times
	// and has no uniqueness constraint.
	Name string
}

// DefaultParticipantName returns the name given to the participant at position n (1-based).
func DefaultParticipantName(n int) string {
	return fmt.Sprintf("Person %d", n)
}

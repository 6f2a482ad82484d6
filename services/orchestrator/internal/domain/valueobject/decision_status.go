package valueobject

import "fmt"

// DecisionStatus is an immutable value object representing the final
// decision on a scoring request. Statuses are ordered by strictness:
// approve < review < decline.
type DecisionStatus struct {
	value string
	rank  int
}

var (
	StatusApprove = DecisionStatus{value: "approve", rank: 0}
	StatusReview  = DecisionStatus{value: "review", rank: 1}
	StatusDecline = DecisionStatus{value: "decline", rank: 2}
)

// StatusFromString reconstructs a DecisionStatus from its string representation.
func StatusFromString(s string) (DecisionStatus, error) {
	switch s {
	case "approve":
		return StatusApprove, nil
	case "review":
		return StatusReview, nil
	case "decline":
		return StatusDecline, nil
	default:
		return DecisionStatus{}, fmt.Errorf("invalid decision status: %s", s)
	}
}

// Escalate returns the stricter of the two statuses. A decision can only
// move toward stricter outcomes, never relax.
func (s DecisionStatus) Escalate(to DecisionStatus) DecisionStatus {
	if to.rank > s.rank {
		return to
	}
	return s
}

// StricterThan reports whether s is strictly stricter than other.
func (s DecisionStatus) StricterThan(other DecisionStatus) bool {
	return s.rank > other.rank
}

// String returns the string representation.
func (s DecisionStatus) String() string {
	return s.value
}

// Equal checks equality with another DecisionStatus.
func (s DecisionStatus) Equal(other DecisionStatus) bool {
	return s.value == other.value
}

// IsZero returns true if the DecisionStatus has not been set.
func (s DecisionStatus) IsZero() bool {
	return s.value == ""
}

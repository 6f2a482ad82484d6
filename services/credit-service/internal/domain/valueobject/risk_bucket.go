package valueobject

import "fmt"

// RiskBucket is an immutable value object representing the discrete credit
// risk tier, A (best) through E (worst).
type RiskBucket struct {
	value string
}

var (
	BucketA = RiskBucket{value: "A"}
	BucketB = RiskBucket{value: "B"}
	BucketC = RiskBucket{value: "C"}
	BucketD = RiskBucket{value: "D"}
	BucketE = RiskBucket{value: "E"}
)

// BucketFromString reconstructs a RiskBucket from its string representation.
func BucketFromString(s string) (RiskBucket, error) {
	switch s {
	case "A":
		return BucketA, nil
	case "B":
		return BucketB, nil
	case "C":
		return BucketC, nil
	case "D":
		return BucketD, nil
	case "E":
		return BucketE, nil
	default:
		return RiskBucket{}, fmt.Errorf("invalid risk bucket: %s", s)
	}
}

// BucketFromPD derives the RiskBucket from a probability of default.
// Boundaries are half-open upward: a pd exactly on a boundary falls into
// the riskier bucket.
func BucketFromPD(pd float64) RiskBucket {
	switch {
	case pd < 0.10:
		return BucketA
	case pd < 0.20:
		return BucketB
	case pd < 0.35:
		return BucketC
	case pd < 0.60:
		return BucketD
	default:
		return BucketE
	}
}

// String returns the string representation.
func (b RiskBucket) String() string {
	return b.value
}

// IsZero returns true if the RiskBucket has not been set.
func (b RiskBucket) IsZero() bool {
	return b.value == ""
}

// Equal checks equality with another RiskBucket.
func (b RiskBucket) Equal(other RiskBucket) bool {
	return b.value == other.value
}

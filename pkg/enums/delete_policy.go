package enums

import "fmt"

// DeletePolicy controls what happens to a product's movement history when the
// product is deleted. The observed source behavior is an unconditional delete,
// so the policy is configurable rather than guessed.
type DeletePolicy string

const (
	// DeletePolicyCascade removes the product and its movement history together.
	DeletePolicyCascade DeletePolicy = "cascade"
	// DeletePolicyRestrict refuses to delete a product that still has history.
	DeletePolicyRestrict DeletePolicy = "restrict"
	// DeletePolicyOrphan deletes the product and leaves the history rows behind.
	DeletePolicyOrphan DeletePolicy = "orphan"
)

var validDeletePolicies = []DeletePolicy{
	DeletePolicyCascade,
	DeletePolicyRestrict,
	DeletePolicyOrphan,
}

// String implements fmt.Stringer.
func (p DeletePolicy) String() string {
	return string(p)
}

// IsValid reports whether the value is a known DeletePolicy.
func (p DeletePolicy) IsValid() bool {
	for _, candidate := range validDeletePolicies {
		if candidate == p {
			return true
		}
	}
	return false
}

// ParseDeletePolicy converts raw input into a DeletePolicy.
func ParseDeletePolicy(value string) (DeletePolicy, error) {
	for _, candidate := range validDeletePolicies {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid delete policy %q", value)
}

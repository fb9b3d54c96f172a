package enums

import "fmt"

// MovementAction represents the direction of a stock movement.
type MovementAction string

const (
	MovementActionIn  MovementAction = "IN"
	MovementActionOut MovementAction = "OUT"
)

var validMovementActions = []MovementAction{
	MovementActionIn,
	MovementActionOut,
}

// String implements fmt.Stringer.
func (a MovementAction) String() string {
	return string(a)
}

// IsValid reports whether the value is a known MovementAction.
func (a MovementAction) IsValid() bool {
	for _, candidate := range validMovementActions {
		if candidate == a {
			return true
		}
	}
	return false
}

// ParseMovementAction converts raw input into a MovementAction.
func ParseMovementAction(value string) (MovementAction, error) {
	for _, candidate := range validMovementActions {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid movement action %q", value)
}

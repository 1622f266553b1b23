package enums

import "fmt"

// VegetableStatus controls public catalog visibility.
type VegetableStatus string

const (
	VegetableStatusAvailable   VegetableStatus = "available"
	VegetableStatusUnavailable VegetableStatus = "unavailable"
)

var validVegetableStatuses = []VegetableStatus{
	VegetableStatusAvailable,
	VegetableStatusUnavailable,
}

// String implements fmt.Stringer.
func (v VegetableStatus) String() string {
	return string(v)
}

// IsValid reports whether the value is a known VegetableStatus.
func (v VegetableStatus) IsValid() bool {
	for _, candidate := range validVegetableStatuses {
		if candidate == v {
			return true
		}
	}
	return false
}

// ParseVegetableStatus converts raw input into a VegetableStatus.
func ParseVegetableStatus(value string) (VegetableStatus, error) {
	for _, candidate := range validVegetableStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid vegetable status %q", value)
}

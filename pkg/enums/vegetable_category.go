package enums

import "fmt"

// VegetableCategory groups catalog listings by plant part.
type VegetableCategory string

const (
	VegetableCategoryDaun  VegetableCategory = "daun"
	VegetableCategoryAkar  VegetableCategory = "akar"
	VegetableCategoryBunga VegetableCategory = "bunga"
	VegetableCategoryBuah  VegetableCategory = "buah"
)

var validVegetableCategories = []VegetableCategory{
	VegetableCategoryDaun,
	VegetableCategoryAkar,
	VegetableCategoryBunga,
	VegetableCategoryBuah,
}

// String implements fmt.Stringer.
func (v VegetableCategory) String() string {
	return string(v)
}

// IsValid reports whether the value is a known VegetableCategory.
func (v VegetableCategory) IsValid() bool {
	for _, candidate := range validVegetableCategories {
		if candidate == v {
			return true
		}
	}
	return false
}

// ParseVegetableCategory converts raw input into a VegetableCategory.
func ParseVegetableCategory(value string) (VegetableCategory, error) {
	for _, candidate := range validVegetableCategories {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid vegetable category %q", value)
}

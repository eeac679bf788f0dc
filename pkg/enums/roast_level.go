package enums

import "fmt"

// RoastLevel is the coffee roast filter facet.
type RoastLevel string

const (
	RoastLevelLight  RoastLevel = "light"
	RoastLevelMedium RoastLevel = "medium"
	RoastLevelDark   RoastLevel = "dark"
)

var validRoastLevels = []RoastLevel{
	RoastLevelLight,
	RoastLevelMedium,
	RoastLevelDark,
}

// String implements fmt.Stringer.
func (r RoastLevel) String() string {
	return string(r)
}

// IsValid reports whether the value is a known RoastLevel.
func (r RoastLevel) IsValid() bool {
	for _, candidate := range validRoastLevels {
		if candidate == r {
			return true
		}
	}
	return false
}

// ParseRoastLevel converts raw input into a RoastLevel.
func ParseRoastLevel(value string) (RoastLevel, error) {
	for _, candidate := range validRoastLevels {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid roast level %q", value)
}

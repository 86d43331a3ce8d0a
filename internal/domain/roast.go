package domain

import "fmt"

// RoastLevel describes how dark a coffee bean was roasted.
type RoastLevel string

const (
	RoastLight       RoastLevel = "LIGHT"
	RoastMediumLight RoastLevel = "MEDIUM_LIGHT"
	RoastMedium      RoastLevel = "MEDIUM"
	RoastMediumDark  RoastLevel = "MEDIUM_DARK"
	RoastDark        RoastLevel = "DARK"
)

var roastNames = map[RoastLevel]string{
	RoastLight:       "Light",
	RoastMediumLight: "Medium-Light",
	RoastMedium:      "Medium",
	RoastMediumDark:  "Medium-Dark",
	RoastDark:        "Dark",
}

// AllRoastLevels returns every roast level from lightest to darkest.
func AllRoastLevels() []RoastLevel {
	return []RoastLevel{RoastLight, RoastMediumLight, RoastMedium, RoastMediumDark, RoastDark}
}

// ParseRoastLevel converts a stored string back into a RoastLevel.
func ParseRoastLevel(s string) (RoastLevel, error) {
	r := RoastLevel(s)
	if !r.Valid() {
		return "", fmt.Errorf("unknown roast level %q", s)
	}
	return r, nil
}

// Valid reports whether the roast level is one of the known values.
func (r RoastLevel) Valid() bool {
	_, ok := roastNames[r]
	return ok
}

// DisplayName returns the human-readable roast name.
func (r RoastLevel) DisplayName() string {
	return roastNames[r]
}

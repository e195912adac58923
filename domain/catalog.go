package domain

import "regexp"

// Ingredient is immutable reference data describing something recipes measure out.
type Ingredient struct {
	ID              string `json:"id"`
	Name            string `json:"name"`
	MeasurementUnit string `json:"measurement_unit"`
}

// Tag is immutable reference data used to label recipes. Tags are shared
// between recipes and outlive them.
type Tag struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color,omitempty"`
	Slug  string `json:"slug"`
}

var hexColorPattern = regexp.MustCompile(`^#([A-Fa-f0-9]{6}|[A-Fa-f0-9]{3})$`)

// IsValidHexColor reports whether value is a #RGB or #RRGGBB color.
func IsValidHexColor(value string) bool {
	return hexColorPattern.MatchString(value)
}

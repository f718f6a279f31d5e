package authUtils

import (
	"strings"

	"github.com/rowlokie/Civic-Guard/models"
)

// DefaultCity is used when no city segment can be identified.
const DefaultCity = "Mumbai"

// knownCities is the small lookup used to pull a city out of short inputs.
var knownCities = map[string]bool{
	"Mumbai": true, "Delhi": true, "Bangalore": true,
	"Chennai": true, "Kolkata": true, "Hyderabad": true,
}

// ParseLocation splits a free-text address on commas and maps the segments
// to street, area, landmark, suburb and city in that fixed order. It is a
// best-effort heuristic, not a geocoder: segments are trimmed but never
// validated. Address always holds the verbatim input. When fewer than five
// segments are present the city is recovered from the known-city list, or
// falls back to DefaultCity.
func ParseLocation(locationStr string) models.Location {
	if locationStr == "" {
		return models.Location{Address: ""}
	}

	parts := strings.Split(locationStr, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}

	loc := models.Location{Address: locationStr}
	if len(parts) > 0 {
		loc.Street = parts[0]
	}
	if len(parts) > 1 {
		loc.Area = parts[1]
	}
	if len(parts) > 2 {
		loc.Landmark = parts[2]
	}
	if len(parts) > 3 {
		loc.Suburb = parts[3]
	}
	if len(parts) > 4 {
		loc.City = parts[4]
	}

	if loc.City == "" {
		for _, part := range parts {
			if knownCities[part] {
				loc.City = part
				break
			}
		}
	}
	if loc.City == "" {
		loc.City = DefaultCity
	}

	return loc
}

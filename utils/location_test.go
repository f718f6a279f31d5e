package authUtils_test

import (
	"testing"

	"github.com/rowlokie/Civic-Guard/models"
	authUtils "github.com/rowlokie/Civic-Guard/utils"

	"github.com/stretchr/testify/assert"
)

// TestParseLocation_FullAddress verifies the fixed segment order mapping.
func TestParseLocation_FullAddress(t *testing.T) {
	loc := authUtils.ParseLocation("Elm St, Downtown, Clock Tower, West Suburb, Metropolis")

	assert.Equal(t, "Elm St", loc.Street)
	assert.Equal(t, "Downtown", loc.Area)
	assert.Equal(t, "Clock Tower", loc.Landmark)
	assert.Equal(t, "West Suburb", loc.Suburb)
	assert.Equal(t, "Metropolis", loc.City)
	assert.Equal(t, "Elm St, Downtown, Clock Tower, West Suburb, Metropolis", loc.Address)
}

// TestParseLocation_Empty verifies that empty input yields only an empty address.
func TestParseLocation_Empty(t *testing.T) {
	loc := authUtils.ParseLocation("")

	assert.Equal(t, models.Location{Address: ""}, loc)
}

// TestParseLocation_DefaultCity verifies the fallback city on short inputs.
func TestParseLocation_DefaultCity(t *testing.T) {
	loc := authUtils.ParseLocation("MG Road, Fort Area")

	assert.Equal(t, "MG Road", loc.Street)
	assert.Equal(t, "Fort Area", loc.Area)
	assert.Equal(t, authUtils.DefaultCity, loc.City)
	assert.Empty(t, loc.Landmark)
	assert.Empty(t, loc.Suburb)
}

// TestParseLocation_KnownCityScan verifies that a known city appearing in an
// early segment is promoted when no fifth segment exists.
func TestParseLocation_KnownCityScan(t *testing.T) {
	loc := authUtils.ParseLocation("Brigade Road, Bangalore")

	assert.Equal(t, "Brigade Road", loc.Street)
	assert.Equal(t, "Bangalore", loc.Area)
	assert.Equal(t, "Bangalore", loc.City)
}

// TestParseLocation_TrimsSegments verifies whitespace handling around commas.
func TestParseLocation_TrimsSegments(t *testing.T) {
	loc := authUtils.ParseLocation("  Elm St ,  Downtown  ")

	assert.Equal(t, "Elm St", loc.Street)
	assert.Equal(t, "Downtown", loc.Area)
	assert.Equal(t, "  Elm St ,  Downtown  ", loc.Address)
}

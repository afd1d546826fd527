// services/carbon.go - Carbon accounting
package services

import (
	"ecotrack/models"
)

// carbonFactors maps an activity type to kg CO2-equivalent per unit.
// Recycling is negative: it counts as a net reduction.
var carbonFactors = map[models.ActivityType]float64{
	models.ActivityTransport:   0.21,
	models.ActivityElectricity: 0.475,
	models.ActivityFood:        2.5,
	models.ActivityFlight:      0.13,
	models.ActivityBiking:      0.01,
	models.ActivityRecycling:   -0.2,
}

// Factor returns the carbon coefficient for an activity type, or 0 for a
// type not in the table. The log endpoint rejects unknown types up front,
// but the engine must never fail on one that slips through.
func Factor(t models.ActivityType) float64 {
	return carbonFactors[t]
}

// IsValidType reports whether t is a known activity type.
func IsValidType(t models.ActivityType) bool {
	_, ok := carbonFactors[t]
	return ok
}

// ValidTypes returns the known activity types in catalog order.
func ValidTypes() []models.ActivityType {
	return []models.ActivityType{
		models.ActivityTransport,
		models.ActivityElectricity,
		models.ActivityFood,
		models.ActivityFlight,
		models.ActivityBiking,
		models.ActivityRecycling,
	}
}

// CarbonOf converts one activity into its carbon-equivalent mass.
func CarbonOf(a models.Activity) float64 {
	return a.Value * Factor(a.Type)
}

// TotalCarbon sums CarbonOf over a list of activities. Empty list yields 0.
func TotalCarbon(activities []models.Activity) float64 {
	total := 0.0
	for _, a := range activities {
		total += CarbonOf(a)
	}
	return total
}

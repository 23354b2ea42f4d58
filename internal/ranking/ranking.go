// Package ranking contains the pure point-to-tier mapping for EcoTrama
// gamification: rank and league labels, the per-unit point table for waste
// types, and the carbon-saved estimate. Every code path that mutates a
// user's points must recompute rank and league through this package so the
// stored labels never disagree with the points total.
package ranking

import "math"

// Rank thresholds, highest qualifying tier wins.
const (
	RankEcoGold   = "EcoGold"
	RankEcoAgente = "EcoAgente"
	RankEcoLider  = "EcoLider"
	RankEcoAmigo  = "EcoAmigo"
	RankEcoAliado = "EcoAliado"
)

// League thresholds.
const (
	LeagueInternacional = "Internacional"
	LeagueNacional      = "Nacional"
	LeagueRegional      = "Regional"
	LeagueLocal         = "Local"
)

// DefaultWasteTypePoints is awarded per unit when the waste type is not in
// the table. Unrecognized labels do not error; the app's scanner sends
// free-form strings and a scan should never be lost over a label.
const DefaultWasteTypePoints = 10

// EducationPoints is the fixed award for completing an education activity.
const EducationPoints = 50

var wasteTypePoints = map[string]int{
	"Plástico":    10,
	"Vidrio":      15,
	"Metal":       20,
	"Papel":       5,
	"Orgánico":    8,
	"Electrónico": 50,
}

// Rank returns the rank label for a cumulative points total.
func Rank(points int) string {
	switch {
	case points >= 5000:
		return RankEcoGold
	case points >= 3000:
		return RankEcoAgente
	case points >= 1500:
		return RankEcoLider
	case points >= 500:
		return RankEcoAmigo
	default:
		return RankEcoAliado
	}
}

// League returns the league label for a cumulative points total.
func League(points int) string {
	switch {
	case points >= 10000:
		return LeagueInternacional
	case points >= 5000:
		return LeagueNacional
	case points >= 2000:
		return LeagueRegional
	default:
		return LeagueLocal
	}
}

// PointsForWasteType returns the per-unit point value for a waste-type
// label, falling back to DefaultWasteTypePoints for unknown labels.
func PointsForWasteType(wasteType string) int {
	if pts, ok := wasteTypePoints[wasteType]; ok {
		return pts
	}
	return DefaultWasteTypePoints
}

// CarbonSaved estimates kilograms of CO2 saved for a points total.
// Rough model: 0.5kg per point.
func CarbonSaved(points int) int {
	return int(math.Round(float64(points) * 0.5))
}

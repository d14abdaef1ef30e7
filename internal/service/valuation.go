package service

import "log"

// DefaultBaseValue is the valuation base for trees without a minted token.
const DefaultBaseValue = 100.0

// ComputeValue maps a health score to a token value:
// value = base * (health / 100). Scores outside [0, 100] are clamped with a
// logged warning rather than rejected. Pure function, no side effects beyond
// the warning log.
func ComputeValue(baseValue, healthScore float64) float64 {
	if healthScore < 0 {
		log.Printf("[valuation] clamping health score %.2f to 0", healthScore)
		healthScore = 0
	}
	if healthScore > 100 {
		log.Printf("[valuation] clamping health score %.2f to 100", healthScore)
		healthScore = 100
	}
	return baseValue * healthScore / 100
}

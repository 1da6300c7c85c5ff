// services/progression.go
package services

import (
	"math"

	"cleanup-game-system/models"
)

// SeverityXP defines base XP per pin severity (tunable via config/env later)
var SeverityXP = map[models.PinSeverity]int64{
	models.PinSeverityYellow: 40,
	models.PinSeverityOrange: 70,
	models.PinSeverityRed:    120,
}

// DefaultCleanupXP is awarded when a pin carries an unknown severity
const DefaultCleanupXP = 30

// UnverifiedXPFactor: partial credit for cleanups that never verified.
// The vote orchestrator only awards verified cleanups today, but the
// reduced rate is the building block for partial-credit features.
const UnverifiedXPFactor = 0.4

// BaseXPPerLevel scales the triangular level curve: going from level L
// to L+1 costs BaseXPPerLevel * L.
const BaseXPPerLevel = 100

// XPForCleanup returns the XP a cleanup is worth for the given pin severity.
func XPForCleanup(severity models.PinSeverity, verified bool) int64 {
	base, ok := SeverityXP[severity]
	if !ok {
		base = DefaultCleanupXP
	}
	if verified {
		return base
	}
	return int64(math.Round(float64(base) * UnverifiedXPFactor))
}

// LevelFromXP recomputes a level from total XP.
// e.g. LevelFromXP(0) = 1, LevelFromXP(100) = 2, LevelFromXP(300) = 3
func LevelFromXP(xp int64) int {
	level := 1
	threshold := int64(0)
	for xp >= threshold+int64(BaseXPPerLevel)*int64(level) {
		threshold += int64(BaseXPPerLevel) * int64(level)
		level++
	}
	return level
}

// ApplyXP folds an XP delta into a user's total. XP never drops below
// zero, and the level is always recomputed from scratch so level and
// XP cannot drift apart.
func ApplyXP(currentXP, deltaXP int64) (nextXP int64, nextLevel int) {
	nextXP = currentXP + deltaXP
	if nextXP < 0 {
		nextXP = 0
	}
	return nextXP, LevelFromXP(nextXP)
}

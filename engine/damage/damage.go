// Package damage holds the armor and healing arithmetic shared by cards,
// status effects and enemy actions.
package damage

import "math"

// Split is how a hit divides between armor and hit points.
type Split struct {
	ArmorAbsorbed int
	HPDamage      int
}

// Scale applies a multiplier and floors the result at zero.
func Scale(raw int, multiplier float64) int {
	total := int(math.Floor(float64(raw) * multiplier))
	if total < 0 {
		return 0
	}
	return total
}

// Resolve splits floor(raw*multiplier) between the target's armor and hp.
func Resolve(raw, armor int, multiplier float64) Split {
	total := Scale(raw, multiplier)
	absorbed := min(max(armor, 0), total)
	return Split{ArmorAbsorbed: absorbed, HPDamage: total - absorbed}
}

// Apply returns hp and armor after taking a split. Hp never drops below zero.
func Apply(hp, armor int, s Split) (int, int) {
	return max(hp-s.HPDamage, 0), max(armor-s.ArmorAbsorbed, 0)
}

// Heal returns how much hp is restored: floor(raw*multiplier), capped by the
// missing hp and never negative.
func Heal(raw, hp, maxHP int, multiplier float64) int {
	return max(min(Scale(raw, multiplier), maxHP-hp), 0)
}

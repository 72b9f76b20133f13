// Package status advances timed status effects on a combatant.
package status

import (
	"fmt"

	"github.com/nathoo/runeblade/types"
)

// Applied records the hp change one effect made during a tick.
type Applied struct {
	Type   types.StatusType
	Amount int // positive heals, negative damages
}

// Outcome is the result of ticking one combatant.
type Outcome struct {
	HP      int
	Effects []types.StatusEffect
	Applied []Applied
}

// Tick applies every effect once in insertion order, then keeps effects with
// duration above one (decremented) and drops the rest. The input slice is not
// modified.
func Tick(effects []types.StatusEffect, hp, maxHP int) Outcome {
	out := Outcome{HP: hp}
	for _, e := range effects {
		switch e.Type {
		case types.StatusRegeneration:
			healed := max(min(e.Value, maxHP-out.HP), 0)
			out.HP += healed
			out.Applied = append(out.Applied, Applied{Type: e.Type, Amount: healed})
		case types.StatusPoison, types.StatusBleed, types.StatusBurn:
			dealt := min(max(e.Value, 0), out.HP)
			out.HP -= dealt
			out.Applied = append(out.Applied, Applied{Type: e.Type, Amount: -dealt})
		}
		if e.Duration > 1 {
			e.Duration--
			out.Effects = append(out.Effects, e)
		}
	}
	return out
}

// TickPlayer ticks the player's effects and returns the new state.
func TickPlayer(s types.BattleState) (types.BattleState, []Applied) {
	o := Tick(s.Player.StatusEffects, s.Player.HP, s.Player.MaxHP)
	s.Player.HP = o.HP
	s.Player.StatusEffects = o.Effects
	return s, o.Applied
}

// TickEnemy ticks the enemy's effects. Without an enemy it does nothing.
func TickEnemy(s types.BattleState) (types.BattleState, []Applied) {
	if s.Enemy == nil {
		return s, nil
	}
	enemy := *s.Enemy
	o := Tick(enemy.StatusEffects, enemy.HP, enemy.MaxHP)
	enemy.HP = o.HP
	enemy.StatusEffects = o.Effects
	s.Enemy = &enemy
	return s, o.Applied
}

// Total sums the values of every effect of one type.
func Total(effects []types.StatusEffect, t types.StatusType) int {
	sum := 0
	for _, e := range effects {
		if e.Type == t {
			sum += e.Value
		}
	}
	return sum
}

// Describe renders a default description for an effect.
func Describe(t types.StatusType, value, duration int) string {
	switch t {
	case types.StatusPoison:
		return fmt.Sprintf("Takes %d poison damage per turn (%d turns)", value, duration)
	case types.StatusBleed:
		return fmt.Sprintf("Bleeds for %d per turn (%d turns)", value, duration)
	case types.StatusBurn:
		return fmt.Sprintf("Burns for %d per turn (%d turns)", value, duration)
	case types.StatusRegeneration:
		return fmt.Sprintf("Regenerates %d hp per turn (%d turns)", value, duration)
	case types.StatusStrength:
		return fmt.Sprintf("+%d attack damage (%d turns)", value, duration)
	case types.StatusWeakness:
		return fmt.Sprintf("-%d attack damage (%d turns)", value, duration)
	case types.StatusVulnerable:
		return fmt.Sprintf("Vulnerable %d (%d turns)", value, duration)
	case types.StatusShield:
		return fmt.Sprintf("Shield %d (%d turns)", value, duration)
	}
	return fmt.Sprintf("%s %d (%d turns)", t, value, duration)
}

// Package ai picks and applies enemy actions.
package ai

import (
	"github.com/nathoo/runeblade/engine/damage"
	"github.com/nathoo/runeblade/engine/rng"
	"github.com/nathoo/runeblade/engine/status"
	"github.com/nathoo/runeblade/types"
)

// VulnerableDuration is how long an enemy debuff lasts on the player.
const VulnerableDuration = 2

// ChooseAction selects the enemy's next action according to its behavior.
// Enemies without actions get a zero-value attack.
func ChooseAction(enemy types.Enemy, s types.BattleState, r *rng.RNG) types.EnemyAction {
	if len(enemy.Actions) == 0 {
		return types.EnemyAction{Type: types.ActionAttack}
	}
	switch enemy.Behavior {
	case types.BehaviorAggressive:
		return aggressive(enemy, r)
	case types.BehaviorDefensive:
		return defensive(enemy, r)
	case types.BehaviorBalanced:
		return balanced(enemy, s, r)
	default:
		return rng.Pick(r, enemy.Actions)
	}
}

// DetermineIntent previews the next action for display.
func DetermineIntent(enemy types.Enemy, s types.BattleState, r *rng.RNG) types.EnemyAction {
	return ChooseAction(enemy, s, r)
}

// UpdateIntent stores a freshly chosen intent on the enemy.
func UpdateIntent(s types.BattleState, r *rng.RNG) types.BattleState {
	if s.Enemy == nil {
		return s
	}
	enemy := *s.Enemy
	intent := DetermineIntent(enemy, s, r)
	enemy.Intent = &intent
	s.Enemy = &enemy
	return s
}

// aggressive attacks, trading 20% of attacks for a buff when it has one.
func aggressive(enemy types.Enemy, r *rng.RNG) types.EnemyAction {
	attacks := filter(enemy.Actions, types.ActionAttack)
	buffs := filter(enemy.Actions, types.ActionBuff)

	if len(attacks) > 0 && (len(buffs) == 0 || r.Chance(0.8)) {
		return rng.Pick(r, attacks)
	}
	if len(buffs) > 0 {
		return rng.Pick(r, buffs)
	}
	return rng.Pick(r, enemy.Actions)
}

// defensive guards when below 40% hp, otherwise leans toward attacking.
func defensive(enemy types.Enemy, r *rng.RNG) types.EnemyAction {
	defends := filter(enemy.Actions, types.ActionDefend)
	attacks := filter(enemy.Actions, types.ActionAttack)

	if fraction(enemy.HP, enemy.MaxHP) < 0.4 && len(defends) > 0 && r.Chance(0.7) {
		return rng.Pick(r, defends)
	}
	if r.Chance(0.6) && len(attacks) > 0 {
		return rng.Pick(r, attacks)
	}
	return rng.Pick(r, enemy.Actions)
}

// balanced weighs every action by the situation on both sides.
func balanced(enemy types.Enemy, s types.BattleState, r *rng.RNG) types.EnemyAction {
	own := fraction(enemy.HP, enemy.MaxHP)
	player := fraction(s.Player.HP, s.Player.MaxHP)

	var actions []types.EnemyAction
	var weights []int
	add := func(t types.ActionType, weight func() int) {
		for _, a := range filter(enemy.Actions, t) {
			actions = append(actions, a)
			weights = append(weights, weight())
		}
	}
	add(types.ActionAttack, func() int {
		if player < 0.3 {
			return 20
		}
		return 10
	})
	add(types.ActionDefend, func() int {
		if own < 0.4 {
			return 20
		}
		return 5
	})
	add(types.ActionBuff, func() int { return 5 })
	add(types.ActionDebuff, func() int {
		if player > 0.7 {
			return 8
		}
		return 3
	})

	if len(actions) == 0 {
		return rng.Pick(r, enemy.Actions)
	}
	return actions[r.WeightedSelect(weights)]
}

// ApplyAction resolves an enemy action against the battle state.
func ApplyAction(s types.BattleState, action types.EnemyAction) types.BattleState {
	if s.Enemy == nil {
		return s
	}
	switch action.Type {
	case types.ActionAttack:
		return AttackPlayer(s, action.Value)

	case types.ActionDefend:
		enemy := *s.Enemy
		enemy.Armor += action.Value
		s.Enemy = &enemy

	case types.ActionBuff:
		enemy := *s.Enemy
		enemy.AttackPower += action.Value
		s.Enemy = &enemy

	case types.ActionDebuff:
		effects := make([]types.StatusEffect, 0, len(s.Player.StatusEffects)+1)
		effects = append(effects, s.Player.StatusEffects...)
		s.Player.StatusEffects = append(effects, types.StatusEffect{
			Type:        types.StatusVulnerable,
			Value:       action.Value,
			Duration:    VulnerableDuration,
			Description: "Takes more damage",
		})
	}
	return s
}

// AttackPlayer deals raw damage to the player. Weakness on the enemy reduces
// it, but every attack deals at least one point before armor.
func AttackPlayer(s types.BattleState, raw int) types.BattleState {
	if s.Enemy != nil {
		raw = max(1, raw-status.Total(s.Enemy.StatusEffects, types.StatusWeakness))
	}
	split := damage.Resolve(raw, s.Player.Armor, 1)
	s.Player.HP, s.Player.Armor = damage.Apply(s.Player.HP, s.Player.Armor, split)
	return s
}

func filter(actions []types.EnemyAction, t types.ActionType) []types.EnemyAction {
	var out []types.EnemyAction
	for _, a := range actions {
		if a.Type == t {
			out = append(out, a)
		}
	}
	return out
}

func fraction(hp, maxHP int) float64 {
	if maxHP <= 0 {
		return 0
	}
	return float64(hp) / float64(maxHP)
}

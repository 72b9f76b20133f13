// Package effects resolves played cards against a battle state. Card effects
// are data interpreted by one dispatcher; every function returns a new state
// and leaves its input untouched.
package effects

import (
	"github.com/nathoo/runeblade/engine/damage"
	"github.com/nathoo/runeblade/engine/status"
	"github.com/nathoo/runeblade/types"
)

// Report summarizes what a card did, for the battle log.
type Report struct {
	Damage      int // hp removed from the enemy
	Blocked     int // damage absorbed by enemy armor
	ArmorGained int
	Healed      int
	Applied     []types.StatusEffect // statuses added, with their target in Target
	Target      string               // "player" or "enemy" for Applied
}

// ApplyCard plays a card: mana is debited, then either the strength-boosted
// attack or the card's own effect is resolved. With too little mana the state
// is returned unchanged. Moving the card to discard and logging are left to
// the caller.
func ApplyCard(card types.CardInstance, s types.BattleState) (types.BattleState, Report) {
	if s.Player.Mana < card.Cost {
		return s, Report{}
	}
	s.Player.Mana -= card.Cost

	strength := status.Total(s.Player.StatusEffects, types.StatusStrength)
	if card.Type == types.CardAttack && strength > 0 {
		var r Report
		s = hitEnemy(s, card.Value+strength, &r)
		return s, r
	}
	return Apply(card.Effect, s)
}

// Apply interprets one card effect. Effects aimed at a missing enemy and
// unknown kinds do nothing.
func Apply(e types.CardEffect, s types.BattleState) (types.BattleState, Report) {
	var r Report
	switch e.Kind {
	case types.EffectDamage:
		hits := max(e.Hits, 1)
		for i := 0; i < hits; i++ {
			s = hitEnemy(s, e.Amount, &r)
		}

	case types.EffectPierce:
		if s.Enemy == nil {
			break
		}
		enemy := *s.Enemy
		dealt := min(damage.Scale(e.Amount, s.Config.DamageMultiplier), enemy.HP)
		enemy.HP -= dealt
		s.Enemy = &enemy
		r.Damage += dealt

	case types.EffectArmor:
		s.Player.Armor += e.Amount
		r.ArmorGained += e.Amount

	case types.EffectArmorDamage:
		s.Player.Armor += e.Armor
		r.ArmorGained += e.Armor
		s = hitEnemy(s, e.Amount, &r)

	case types.EffectHeal:
		healed := damage.Heal(e.Amount, s.Player.HP, s.Player.MaxHP, s.Config.HealingMultiplier)
		s.Player.HP += healed
		r.Healed += healed

	case types.EffectBuff:
		se := statusFor(e)
		s.Player.StatusEffects = appendStatus(s.Player.StatusEffects, se)
		r.Applied = append(r.Applied, se)
		r.Target = "player"

	case types.EffectDebuff:
		if s.Enemy == nil {
			break
		}
		enemy := *s.Enemy
		se := statusFor(e)
		enemy.StatusEffects = appendStatus(enemy.StatusEffects, se)
		s.Enemy = &enemy
		r.Applied = append(r.Applied, se)
		r.Target = "enemy"
	}
	return s, r
}

// hitEnemy resolves one armored hit of raw damage on the enemy.
func hitEnemy(s types.BattleState, raw int, r *Report) types.BattleState {
	if s.Enemy == nil {
		return s
	}
	enemy := *s.Enemy
	split := damage.Resolve(raw, enemy.Armor, s.Config.DamageMultiplier)
	before := enemy.HP
	enemy.HP, enemy.Armor = damage.Apply(enemy.HP, enemy.Armor, split)
	s.Enemy = &enemy
	r.Damage += before - enemy.HP
	r.Blocked += split.ArmorAbsorbed
	return s
}

func statusFor(e types.CardEffect) types.StatusEffect {
	return types.StatusEffect{
		Type:        e.Status,
		Value:       e.Amount,
		Duration:    e.Duration,
		Description: status.Describe(e.Status, e.Amount, e.Duration),
	}
}

// appendStatus appends into a fresh slice so the previous state keeps its own.
func appendStatus(list []types.StatusEffect, se types.StatusEffect) []types.StatusEffect {
	out := make([]types.StatusEffect, 0, len(list)+1)
	out = append(out, list...)
	return append(out, se)
}

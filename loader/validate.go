package loader

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/nathoo/runeblade/engine/state"
	"github.com/nathoo/runeblade/types"
)

// ValidationError collects all validation errors and warnings.
type ValidationError struct {
	Errors   []string
	Warnings []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed with %d error(s):\n  %s",
		len(e.Errors), strings.Join(e.Errors, "\n  "))
}

var validCardTypes = map[types.CardType]bool{
	types.CardAttack:  true,
	types.CardDefense: true,
	types.CardMagic:   true,
	types.CardBuff:    true,
	types.CardDebuff:  true,
}

var validRarities = map[types.Rarity]bool{
	types.RarityCommon:    true,
	types.RarityUncommon:  true,
	types.RarityRare:      true,
	types.RarityEpic:      true,
	types.RarityLegendary: true,
}

var validEffectKinds = map[types.EffectKind]bool{
	types.EffectDamage:      true,
	types.EffectPierce:      true,
	types.EffectArmor:       true,
	types.EffectArmorDamage: true,
	types.EffectHeal:        true,
	types.EffectBuff:        true,
	types.EffectDebuff:      true,
}

var validStatuses = map[types.StatusType]bool{
	types.StatusPoison:       true,
	types.StatusBleed:        true,
	types.StatusBurn:         true,
	types.StatusWeakness:     true,
	types.StatusStrength:     true,
	types.StatusRegeneration: true,
	types.StatusVulnerable:   true,
	types.StatusShield:       true,
}

var validBehaviors = map[types.Behavior]bool{
	types.BehaviorAggressive: true,
	types.BehaviorDefensive:  true,
	types.BehaviorBalanced:   true,
	types.BehaviorRandom:     true,
}

var validActionTypes = map[types.ActionType]bool{
	types.ActionAttack: true,
	types.ActionDefend: true,
	types.ActionBuff:   true,
	types.ActionDebuff: true,
}

// minActRows is the smallest map that still has a start, a middle and a boss row.
const minActRows = 3

// validate checks the compiled defs for referential integrity and consistency.
func validate(defs *state.Defs) error {
	ve := &ValidationError{}

	if defs.Title == "" {
		ve.Errors = append(ve.Errors, "Game.title is required")
	}
	if len(defs.Cards) == 0 {
		ve.Errors = append(ve.Errors, "at least one Card is required")
	}
	if len(defs.Acts) == 0 {
		ve.Errors = append(ve.Errors, "at least one Act is required")
	}
	if defs.Player.MaxHP <= 0 {
		ve.Errors = append(ve.Errors, "Player.hp must be positive")
	}
	if defs.Player.MaxMana <= 0 {
		ve.Errors = append(ve.Errors, "Player.mana must be positive")
	}

	for _, id := range defs.CardOrder {
		validateCard(defs.Cards[id], ve)
	}

	for _, id := range sortedKeys(defs.Enemies) {
		validateEnemy(defs.Enemies[id], ve)
	}

	for _, tier := range sortedKeys(defs.Tiers) {
		for _, id := range defs.Tiers[tier] {
			if _, ok := defs.Enemies[id]; !ok {
				ve.Errors = append(ve.Errors, fmt.Sprintf(
					"tier %q references undefined enemy %q", tier, id))
			}
		}
	}

	used := map[string]bool{}
	for _, act := range defs.Acts {
		validateAct(act, defs, ve)
		for _, id := range act.EnemyPool {
			used[id] = true
		}
		for _, id := range act.ElitePool {
			used[id] = true
		}
		used[act.BossID] = true
	}

	if len(defs.StarterDeck) == 0 {
		ve.Errors = append(ve.Errors, "StarterDeck must list at least one card")
	}
	for _, id := range defs.StarterDeck {
		if _, ok := defs.Cards[id]; !ok {
			ve.Errors = append(ve.Errors, fmt.Sprintf(
				"starter deck references undefined card %q", id))
		}
	}

	// Warnings: enemies no act can spawn.
	for _, id := range sortedKeys(defs.Enemies) {
		if !used[id] {
			ve.Warnings = append(ve.Warnings, fmt.Sprintf(
				"enemy %q is not used by any act", id))
		}
	}

	for _, w := range ve.Warnings {
		log.Warn("content", "warning", w)
	}

	if len(ve.Errors) > 0 {
		return ve
	}
	return nil
}

func validateCard(c types.Card, ve *ValidationError) {
	if !validCardTypes[c.Type] {
		ve.Errors = append(ve.Errors, fmt.Sprintf("card %q has unknown type %q", c.ID, c.Type))
	}
	if !validRarities[c.Rarity] {
		ve.Errors = append(ve.Errors, fmt.Sprintf("card %q has unknown rarity %q", c.ID, c.Rarity))
	}
	if c.Cost < 0 {
		ve.Errors = append(ve.Errors, fmt.Sprintf("card %q has negative cost", c.ID))
	}
	e := c.Effect
	if !validEffectKinds[e.Kind] {
		ve.Errors = append(ve.Errors, fmt.Sprintf("card %q has unknown effect kind %q", c.ID, e.Kind))
		return
	}
	if e.Amount < 0 || e.Armor < 0 || e.Hits < 0 {
		ve.Errors = append(ve.Errors, fmt.Sprintf("card %q has a negative effect value", c.ID))
	}
	if e.Kind == types.EffectBuff || e.Kind == types.EffectDebuff {
		if !validStatuses[e.Status] {
			ve.Errors = append(ve.Errors, fmt.Sprintf("card %q has unknown status %q", c.ID, e.Status))
		}
		if e.Duration <= 0 {
			ve.Errors = append(ve.Errors, fmt.Sprintf("card %q status must last at least one turn", c.ID))
		}
	}
}

func validateEnemy(e types.Enemy, ve *ValidationError) {
	if e.MaxHP <= 0 {
		ve.Errors = append(ve.Errors, fmt.Sprintf("enemy %q hp must be positive", e.ID))
	}
	if e.Armor < 0 {
		ve.Errors = append(ve.Errors, fmt.Sprintf("enemy %q has negative armor", e.ID))
	}
	if !validBehaviors[e.Behavior] {
		ve.Errors = append(ve.Errors, fmt.Sprintf("enemy %q has unknown behavior %q", e.ID, e.Behavior))
	}
	if len(e.Actions) == 0 {
		ve.Errors = append(ve.Errors, fmt.Sprintf("enemy %q has no actions", e.ID))
	}
	for i, a := range e.Actions {
		if !validActionTypes[a.Type] {
			ve.Errors = append(ve.Errors, fmt.Sprintf(
				"enemy %q action %d has unknown type %q", e.ID, i+1, a.Type))
		}
	}
}

func validateAct(act types.Act, defs *state.Defs, ve *ValidationError) {
	if act.ID <= 0 {
		ve.Errors = append(ve.Errors, fmt.Sprintf("act %q needs a positive id", act.Name))
	}
	if act.NodeCount < minActRows {
		ve.Errors = append(ve.Errors, fmt.Sprintf(
			"act %d has %d rows, need at least %d", act.ID, act.NodeCount, minActRows))
	}
	if act.NodesPerRow.Min < 1 || act.NodesPerRow.Max < act.NodesPerRow.Min {
		ve.Errors = append(ve.Errors, fmt.Sprintf(
			"act %d nodes_per_row %d-%d is not a valid range", act.ID, act.NodesPerRow.Min, act.NodesPerRow.Max))
	}
	if len(act.EnemyPool) == 0 {
		ve.Errors = append(ve.Errors, fmt.Sprintf("act %d has an empty enemy pool", act.ID))
	}
	refs := append(append([]string{}, act.EnemyPool...), act.ElitePool...)
	if act.BossID == "" {
		ve.Errors = append(ve.Errors, fmt.Sprintf("act %d has no boss", act.ID))
	} else {
		refs = append(refs, act.BossID)
	}
	for _, id := range refs {
		if _, ok := defs.Enemies[id]; !ok {
			ve.Errors = append(ve.Errors, fmt.Sprintf(
				"act %d references undefined enemy %q", act.ID, id))
		}
	}
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Package loader loads Lua game content into Go structs at startup.
// The Lua VM is discarded after loading, so no Lua runs during play.
package loader

import (
	"fmt"
	"sort"

	"github.com/nathoo/runeblade/engine/state"
	"github.com/nathoo/runeblade/engine/status"
	"github.com/nathoo/runeblade/types"
	lua "github.com/yuin/gopher-lua"
)

// getString returns a string field from a Lua table, or "" if missing.
func getString(tbl *lua.LTable, key string) string {
	v := tbl.RawGetString(key)
	if s, ok := v.(lua.LString); ok {
		return string(s)
	}
	return ""
}

// getNumber returns a numeric field from a Lua table, or 0 if missing.
func getNumber(tbl *lua.LTable, key string) float64 {
	v := tbl.RawGetString(key)
	if n, ok := v.(lua.LNumber); ok {
		return float64(n)
	}
	return 0
}

// getInt returns an int field from a Lua table, or 0 if missing.
func getInt(tbl *lua.LTable, key string) int {
	return int(getNumber(tbl, key))
}

// hasKey reports whether a field is present.
func hasKey(tbl *lua.LTable, key string) bool {
	return tbl.RawGetString(key) != lua.LNil
}

// getTable returns a table field from a Lua table, or nil if missing.
func getTable(tbl *lua.LTable, key string) *lua.LTable {
	v := tbl.RawGetString(key)
	if t, ok := v.(*lua.LTable); ok {
		return t
	}
	return nil
}

// getStrings returns the array part of a table as strings, skipping other values.
func getStrings(tbl *lua.LTable) []string {
	if tbl == nil {
		return nil
	}
	out := make([]string, 0, tbl.MaxN())
	for i := 1; i <= tbl.MaxN(); i++ {
		if s, ok := tbl.RawGetInt(i).(lua.LString); ok {
			out = append(out, string(s))
		}
	}
	return out
}

// compile converts all collected Lua data into a Defs struct.
func compile(coll *collector) (*state.Defs, error) {
	defs := &state.Defs{
		Cards:   map[string]types.Card{},
		Enemies: map[string]types.Enemy{},
		Tiers:   map[string][]string{},
	}

	if coll.game != nil {
		defs.Title = getString(coll.game, "title")
	}

	for _, raw := range coll.cards {
		if _, dup := defs.Cards[raw.id]; dup {
			return nil, fmt.Errorf("duplicate card %q", raw.id)
		}
		defs.Cards[raw.id] = compileCard(raw)
		defs.CardOrder = append(defs.CardOrder, raw.id)
	}

	for _, raw := range coll.enemies {
		if _, dup := defs.Enemies[raw.id]; dup {
			return nil, fmt.Errorf("duplicate enemy %q", raw.id)
		}
		enemy, err := compileEnemy(raw)
		if err != nil {
			return nil, fmt.Errorf("compiling enemy %s: %w", raw.id, err)
		}
		defs.Enemies[raw.id] = enemy
	}

	for _, raw := range coll.tiers {
		defs.Tiers[raw.id] = append(defs.Tiers[raw.id], getStrings(raw.table)...)
	}

	seen := map[int]bool{}
	for _, tbl := range coll.acts {
		act := compileAct(tbl)
		if seen[act.ID] {
			return nil, fmt.Errorf("duplicate act %d", act.ID)
		}
		seen[act.ID] = true
		defs.Acts = append(defs.Acts, act)
	}
	defs.SortActs()

	if coll.player != nil {
		defs.Player = state.PlayerDef{
			MaxHP:   getInt(coll.player, "hp"),
			MaxMana: getInt(coll.player, "mana"),
		}
	}
	defs.StarterDeck = getStrings(coll.starter)

	return defs, nil
}

func compileCard(raw rawDef) types.Card {
	tbl := raw.table
	card := types.Card{
		ID:          raw.id,
		Name:        getString(tbl, "name"),
		Type:        types.CardType(getString(tbl, "type")),
		Rarity:      types.Rarity(getString(tbl, "rarity")),
		Cost:        getInt(tbl, "cost"),
		Value:       getInt(tbl, "value"),
		Description: getString(tbl, "description"),
	}
	if card.Name == "" {
		card.Name = raw.id
	}
	if card.Rarity == "" {
		card.Rarity = types.RarityCommon
	}
	if eff := getTable(tbl, "effect"); eff != nil {
		card.Effect = compileEffect(eff)
	}
	if !hasKey(tbl, "value") {
		card.Value = card.Effect.Amount
	}
	if card.Description == "" {
		card.Description = describeEffect(card.Effect)
	}
	return card
}

func compileEffect(tbl *lua.LTable) types.CardEffect {
	e := types.CardEffect{
		Kind:     types.EffectKind(getString(tbl, "kind")),
		Amount:   getInt(tbl, "amount"),
		Hits:     getInt(tbl, "hits"),
		Armor:    getInt(tbl, "armor"),
		Status:   types.StatusType(getString(tbl, "status")),
		Duration: getInt(tbl, "duration"),
	}
	if e.Kind == types.EffectDamage && e.Hits == 0 {
		e.Hits = 1
	}
	return e
}

// describeEffect renders the card text used when content gives none.
func describeEffect(e types.CardEffect) string {
	switch e.Kind {
	case types.EffectDamage:
		if e.Hits > 1 {
			return fmt.Sprintf("Deal %d damage %d times.", e.Amount, e.Hits)
		}
		return fmt.Sprintf("Deal %d damage.", e.Amount)
	case types.EffectPierce:
		return fmt.Sprintf("Deal %d damage, ignoring armor.", e.Amount)
	case types.EffectArmor:
		return fmt.Sprintf("Gain %d armor.", e.Amount)
	case types.EffectArmorDamage:
		return fmt.Sprintf("Gain %d armor and deal %d damage.", e.Armor, e.Amount)
	case types.EffectHeal:
		return fmt.Sprintf("Restore %d HP.", e.Amount)
	case types.EffectBuff, types.EffectDebuff:
		return status.Describe(e.Status, e.Amount, e.Duration) + "."
	}
	return ""
}

func compileEnemy(raw rawDef) (types.Enemy, error) {
	tbl := raw.table
	hp := getInt(tbl, "hp")
	enemy := types.Enemy{
		ID:          raw.id,
		Name:        getString(tbl, "name"),
		HP:          hp,
		MaxHP:       hp,
		Armor:       getInt(tbl, "armor"),
		Behavior:    types.Behavior(getString(tbl, "behavior")),
		AttackPower: getInt(tbl, "attack_power"),
	}
	if enemy.Name == "" {
		enemy.Name = raw.id
	}
	if enemy.Behavior == "" {
		enemy.Behavior = types.BehaviorBalanced
	}

	actions := getTable(tbl, "actions")
	if actions == nil {
		return enemy, nil
	}
	for i := 1; i <= actions.MaxN(); i++ {
		at, ok := actions.RawGetInt(i).(*lua.LTable)
		if !ok {
			return enemy, fmt.Errorf("action %d is not a table", i)
		}
		enemy.Actions = append(enemy.Actions, types.EnemyAction{
			Type:        types.ActionType(getString(at, "type")),
			Value:       getInt(at, "value"),
			Description: getString(at, "description"),
		})
	}
	return enemy, nil
}

func compileAct(tbl *lua.LTable) types.Act {
	act := types.Act{
		ID:          getInt(tbl, "id"),
		Name:        getString(tbl, "name"),
		Description: getString(tbl, "description"),
		EnemyPool:   getStrings(getTable(tbl, "enemies")),
		ElitePool:   getStrings(getTable(tbl, "elites")),
		BossID:      getString(tbl, "boss"),
		NodeCount:   getInt(tbl, "rows"),
	}
	// nodes_per_row accepts { min = 2, max = 4 } or { 2, 4 }.
	if r := getTable(tbl, "nodes_per_row"); r != nil {
		if hasKey(r, "min") || hasKey(r, "max") {
			act.NodesPerRow = types.Range{Min: getInt(r, "min"), Max: getInt(r, "max")}
		} else {
			lo, _ := r.RawGetInt(1).(lua.LNumber)
			hi, _ := r.RawGetInt(2).(lua.LNumber)
			act.NodesPerRow = types.Range{Min: int(lo), Max: int(hi)}
		}
	}
	return act
}

// sortedLuaFiles returns .lua files with game.lua first and the rest
// sorted alphabetically.
func sortedLuaFiles(files []string) []string {
	var gameFile string
	var others []string
	for _, f := range files {
		if f == "game.lua" {
			gameFile = f
		} else {
			others = append(others, f)
		}
	}
	sort.Strings(others)
	if gameFile != "" {
		return append([]string{gameFile}, others...)
	}
	return others
}

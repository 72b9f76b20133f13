package loader

import (
	lua "github.com/yuin/gopher-lua"
)

// registerAPI registers all Lua constructors and helpers as globals.
func registerAPI(L *lua.LState, coll *collector) {
	registerConstructors(L, coll)
	registerEffectHelpers(L)
	registerActionHelpers(L)
}

func registerConstructors(L *lua.LState, coll *collector) {
	// Game { title = "..." }
	L.SetGlobal("Game", L.NewFunction(func(L *lua.LState) int {
		coll.game = L.CheckTable(1)
		return 0
	}))

	// Card "id" { ... }, curried: Card("id") returns a function that takes a table.
	L.SetGlobal("Card", curried(L, func(id string, tbl *lua.LTable) {
		coll.cards = append(coll.cards, rawDef{id: id, table: tbl})
	}))

	// Enemy "id" { ... }
	L.SetGlobal("Enemy", curried(L, func(id string, tbl *lua.LTable) {
		coll.enemies = append(coll.enemies, rawDef{id: id, table: tbl})
	}))

	// Tier "id" { "enemy", ... }
	L.SetGlobal("Tier", curried(L, func(id string, tbl *lua.LTable) {
		coll.tiers = append(coll.tiers, rawDef{id: id, table: tbl})
	}))

	// Act { id = 1, ... }
	L.SetGlobal("Act", L.NewFunction(func(L *lua.LState) int {
		coll.acts = append(coll.acts, L.CheckTable(1))
		return 0
	}))

	// Player { hp = 80, mana = 3 }
	L.SetGlobal("Player", L.NewFunction(func(L *lua.LState) int {
		coll.player = L.CheckTable(1)
		return 0
	}))

	// StarterDeck { "card", ... }
	L.SetGlobal("StarterDeck", L.NewFunction(func(L *lua.LState) int {
		coll.starter = L.CheckTable(1)
		return 0
	}))
}

func curried(L *lua.LState, store func(id string, tbl *lua.LTable)) *lua.LFunction {
	return L.NewFunction(func(L *lua.LState) int {
		id := L.CheckString(1)
		L.Push(L.NewFunction(func(L *lua.LState) int {
			store(id, L.CheckTable(1))
			return 0
		}))
		return 1
	})
}

func registerEffectHelpers(L *lua.LState) {
	// Damage(amount [, hits])
	L.SetGlobal("Damage", L.NewFunction(func(L *lua.LState) int {
		tbl := L.NewTable()
		tbl.RawSetString("kind", lua.LString("damage"))
		tbl.RawSetString("amount", L.CheckNumber(1))
		tbl.RawSetString("hits", lua.LNumber(L.OptInt(2, 1)))
		L.Push(tbl)
		return 1
	}))

	// Pierce(amount)
	L.SetGlobal("Pierce", amountEffect(L, "pierce"))

	// Armor(amount)
	L.SetGlobal("Armor", amountEffect(L, "armor"))

	// Heal(amount)
	L.SetGlobal("Heal", amountEffect(L, "heal"))

	// ArmorDamage(armor, damage)
	L.SetGlobal("ArmorDamage", L.NewFunction(func(L *lua.LState) int {
		tbl := L.NewTable()
		tbl.RawSetString("kind", lua.LString("armor_damage"))
		tbl.RawSetString("armor", L.CheckNumber(1))
		tbl.RawSetString("amount", L.CheckNumber(2))
		L.Push(tbl)
		return 1
	}))

	// Buff("status", value, turns)
	L.SetGlobal("Buff", statusEffect(L, "buff"))

	// Debuff("status", value, turns)
	L.SetGlobal("Debuff", statusEffect(L, "debuff"))
}

func amountEffect(L *lua.LState, kind string) *lua.LFunction {
	return L.NewFunction(func(L *lua.LState) int {
		tbl := L.NewTable()
		tbl.RawSetString("kind", lua.LString(kind))
		tbl.RawSetString("amount", L.CheckNumber(1))
		L.Push(tbl)
		return 1
	})
}

func statusEffect(L *lua.LState, kind string) *lua.LFunction {
	return L.NewFunction(func(L *lua.LState) int {
		tbl := L.NewTable()
		tbl.RawSetString("kind", lua.LString(kind))
		tbl.RawSetString("status", lua.LString(L.CheckString(1)))
		tbl.RawSetString("amount", L.CheckNumber(2))
		tbl.RawSetString("duration", L.CheckNumber(3))
		L.Push(tbl)
		return 1
	})
}

func registerActionHelpers(L *lua.LState) {
	// Attack(value, "description")
	L.SetGlobal("Attack", enemyAction(L, "attack"))
	// Defend(value, "description")
	L.SetGlobal("Defend", enemyAction(L, "defend"))
	// BuffAction(value, "description")
	L.SetGlobal("BuffAction", enemyAction(L, "buff"))
	// DebuffAction(value, "description")
	L.SetGlobal("DebuffAction", enemyAction(L, "debuff"))
}

func enemyAction(L *lua.LState, actionType string) *lua.LFunction {
	return L.NewFunction(func(L *lua.LState) int {
		tbl := L.NewTable()
		tbl.RawSetString("type", lua.LString(actionType))
		tbl.RawSetString("value", L.CheckNumber(1))
		tbl.RawSetString("description", lua.LString(L.OptString(2, "")))
		L.Push(tbl)
		return 1
	})
}

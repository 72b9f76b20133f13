package status

import (
	"testing"

	"github.com/nathoo/runeblade/types"
)

func eff(t types.StatusType, value, duration int) types.StatusEffect {
	return types.StatusEffect{Type: t, Value: value, Duration: duration}
}

func TestTick_DamageOverTime(t *testing.T) {
	o := Tick([]types.StatusEffect{
		eff(types.StatusPoison, 3, 3),
		eff(types.StatusBleed, 4, 2),
		eff(types.StatusBurn, 2, 1),
	}, 50, 80)

	if o.HP != 41 {
		t.Errorf("hp = %d, want 41", o.HP)
	}
	if len(o.Effects) != 2 {
		t.Fatalf("effects = %+v, want burn dropped", o.Effects)
	}
	if o.Effects[0].Duration != 2 || o.Effects[1].Duration != 1 {
		t.Errorf("durations not decremented: %+v", o.Effects)
	}
	if len(o.Applied) != 3 || o.Applied[0].Amount != -3 {
		t.Errorf("applied = %+v", o.Applied)
	}
}

func TestTick_RegenerationClamps(t *testing.T) {
	o := Tick([]types.StatusEffect{eff(types.StatusRegeneration, 5, 3)}, 78, 80)
	if o.HP != 80 {
		t.Errorf("hp = %d, want 80", o.HP)
	}
	if o.Applied[0].Amount != 2 {
		t.Errorf("healed %d, want 2", o.Applied[0].Amount)
	}
}

func TestTick_HPFloorsAtZero(t *testing.T) {
	o := Tick([]types.StatusEffect{eff(types.StatusPoison, 10, 2)}, 4, 80)
	if o.HP != 0 {
		t.Errorf("hp = %d, want 0", o.HP)
	}
}

func TestTick_InsertionOrder(t *testing.T) {
	// Poison first takes hp to 1, regeneration then heals back up.
	o := Tick([]types.StatusEffect{
		eff(types.StatusPoison, 9, 2),
		eff(types.StatusRegeneration, 3, 2),
	}, 10, 10)
	if o.HP != 4 {
		t.Errorf("hp = %d, want 4", o.HP)
	}

	// Regeneration first is wasted at full hp.
	o = Tick([]types.StatusEffect{
		eff(types.StatusRegeneration, 3, 2),
		eff(types.StatusPoison, 9, 2),
	}, 10, 10)
	if o.HP != 1 {
		t.Errorf("hp = %d, want 1", o.HP)
	}
}

func TestTick_DurationOneAppliedOnceThenRemoved(t *testing.T) {
	o := Tick([]types.StatusEffect{eff(types.StatusPoison, 3, 1)}, 20, 20)
	if o.HP != 17 {
		t.Errorf("hp = %d, want 17", o.HP)
	}
	if len(o.Effects) != 0 {
		t.Errorf("expected effect removed, got %+v", o.Effects)
	}
}

func TestTick_PassiveEffectsOnlyTick(t *testing.T) {
	o := Tick([]types.StatusEffect{
		eff(types.StatusStrength, 2, 3),
		eff(types.StatusWeakness, 2, 1),
		eff(types.StatusVulnerable, 2, 2),
		eff(types.StatusShield, 5, 2),
	}, 30, 40)
	if o.HP != 30 {
		t.Errorf("hp changed to %d", o.HP)
	}
	if len(o.Effects) != 3 {
		t.Errorf("expected weakness dropped, got %+v", o.Effects)
	}
}

func TestTick_DoesNotModifyInput(t *testing.T) {
	in := []types.StatusEffect{eff(types.StatusPoison, 3, 3)}
	Tick(in, 20, 20)
	if in[0].Duration != 3 {
		t.Errorf("input mutated: %+v", in[0])
	}
}

func TestTickEnemy(t *testing.T) {
	enemy := &types.Enemy{HP: 25, MaxHP: 25, StatusEffects: []types.StatusEffect{eff(types.StatusBleed, 4, 4)}}
	s := types.BattleState{Enemy: enemy}

	next, applied := TickEnemy(s)
	if next.Enemy.HP != 21 {
		t.Errorf("enemy hp = %d, want 21", next.Enemy.HP)
	}
	if enemy.HP != 25 {
		t.Error("original enemy mutated")
	}
	if len(applied) != 1 {
		t.Errorf("applied = %+v", applied)
	}

	empty, applied := TickEnemy(types.BattleState{})
	if empty.Enemy != nil || applied != nil {
		t.Error("tick without enemy should be a no-op")
	}
}

func TestTickPlayer(t *testing.T) {
	s := types.BattleState{Player: types.Player{HP: 60, MaxHP: 80, StatusEffects: []types.StatusEffect{eff(types.StatusRegeneration, 3, 3)}}}
	next, _ := TickPlayer(s)
	if next.Player.HP != 63 {
		t.Errorf("player hp = %d, want 63", next.Player.HP)
	}
	if s.Player.StatusEffects[0].Duration != 3 {
		t.Error("original effects mutated")
	}
}

func TestTotal(t *testing.T) {
	effects := []types.StatusEffect{
		eff(types.StatusStrength, 2, 3),
		eff(types.StatusPoison, 3, 3),
		eff(types.StatusStrength, 1, 1),
	}
	if got := Total(effects, types.StatusStrength); got != 3 {
		t.Errorf("strength total = %d, want 3", got)
	}
	if got := Total(effects, types.StatusWeakness); got != 0 {
		t.Errorf("weakness total = %d, want 0", got)
	}
}

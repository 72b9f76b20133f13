package engine

import (
	"time"

	"github.com/nathoo/runeblade/engine/ai"
	"github.com/nathoo/runeblade/engine/effects"
	"github.com/nathoo/runeblade/engine/rng"
	"github.com/nathoo/runeblade/engine/status"
	"github.com/nathoo/runeblade/types"
)

// Orchestrator drives one battle through its turns. It holds no battle state
// of its own: every method takes a state value and returns the next one.
type Orchestrator struct {
	RNG *rng.RNG
	Now func() time.Time
}

// NewOrchestrator creates an orchestrator. A nil clock uses time.Now.
func NewOrchestrator(r *rng.RNG, now func() time.Time) *Orchestrator {
	if now == nil {
		now = time.Now
	}
	return &Orchestrator{RNG: r, Now: now}
}

// Start opens a battle: the deck is shuffled, the opening hand drawn and the
// enemy's first intent chosen.
func (o *Orchestrator) Start(p types.Player, enemy *types.Enemy, cfg types.GameConfig) types.BattleState {
	s := types.BattleState{
		Player: shuffleDeck(p, o.RNG),
		Turn:   types.TurnPlayer,
		Round:  1,
		Log:    []types.LogEntry{},
		Config: cfg,
	}
	if enemy != nil {
		e := *enemy
		s.Enemy = &e
	}
	s.Player = drawCards(s.Player, cfg.StartingHandSize, o.RNG)
	s = ai.UpdateIntent(s, o.RNG)
	return o.logf(s, types.LogSystem, "Battle started!")
}

// PlayCard plays one card from the hand. Out of turn, after the battle ends
// or for a card not in hand the state is returned unchanged. Without enough
// mana only a log entry is added.
func (o *Orchestrator) PlayCard(s types.BattleState, instanceID string) types.BattleState {
	if _, ok := advance(s, evPlayCard); !ok {
		return s
	}
	idx := handIndex(s.Player, instanceID)
	if idx < 0 {
		return s
	}
	card := s.Player.Hand[idx]
	if s.Player.Mana < card.Cost {
		return o.logf(s, types.LogSystem, "Not enough mana!")
	}

	s, report := effects.ApplyCard(card, s)
	s.Player, _ = discardCard(s.Player, instanceID)
	s = o.logf(s, types.LogAction, "You played %s!", card.Name)
	s = o.logReport(s, report)
	return o.checkEnd(s)
}

// EndTurn finishes the player's turn and runs the enemy's turn to completion.
// It does nothing outside the player's turn or without an enemy.
func (o *Orchestrator) EndTurn(s types.BattleState) types.BattleState {
	if s.Enemy == nil {
		return s
	}
	s, ok := advance(s, evEndTurn)
	if !ok {
		return s
	}
	s.Player = discardHand(s.Player)
	s = o.logf(s, types.LogSystem, "Enemy turn!")

	s, applied := status.TickEnemy(s)
	s = o.logTicks(s, s.Enemy.Name, applied)
	if s = o.checkEnd(s); s.IsOver {
		return s
	}

	var action types.EnemyAction
	if s.Enemy.Intent != nil {
		action = *s.Enemy.Intent
	} else {
		action = ai.ChooseAction(*s.Enemy, s, o.RNG)
	}
	desc := action.Description
	if desc == "" {
		desc = string(action.Type)
	}
	s = o.logf(s, types.LogAction, "%s uses %s!", s.Enemy.Name, desc)
	before := s.Player.HP
	s = ai.ApplyAction(s, action)
	if lost := before - s.Player.HP; lost > 0 {
		s = o.logf(s, types.LogDamage, "You take %d damage.", lost)
	}
	if s = o.checkEnd(s); s.IsOver {
		return s
	}

	return o.startPlayerTurn(s)
}

func (o *Orchestrator) startPlayerTurn(s types.BattleState) types.BattleState {
	s, _ = advance(s, evEnemyDone)
	s.Round++
	s.Player.Armor = 0

	s, applied := status.TickPlayer(s)
	s = o.logTicks(s, "You", applied)
	if s = o.checkEnd(s); s.IsOver {
		return s
	}

	s.Player.Mana = s.Player.MaxMana
	s.Player = drawCards(s.Player, s.Config.StartingHandSize-len(s.Player.Hand), o.RNG)
	s = ai.UpdateIntent(s, o.RNG)
	return o.logf(s, types.LogSystem, "Turn %d - your move!", s.Round)
}

// checkEnd ends the battle when a side is down. Enemy death is checked first.
func (o *Orchestrator) checkEnd(s types.BattleState) types.BattleState {
	switch {
	case s.Enemy != nil && s.Enemy.HP <= 0:
		if next, ok := advance(s, evWin); ok {
			return o.logf(next, types.LogSystem, "%s was defeated! You win!", s.Enemy.Name)
		}
	case s.Player.HP <= 0:
		if next, ok := advance(s, evLose); ok {
			return o.logf(next, types.LogSystem, "You were defeated!")
		}
	}
	return s
}

func (o *Orchestrator) logReport(s types.BattleState, r effects.Report) types.BattleState {
	if r.Blocked > 0 && s.Enemy != nil {
		s = o.logf(s, types.LogDamage, "%s blocks %d.", s.Enemy.Name, r.Blocked)
	}
	if r.Damage > 0 && s.Enemy != nil {
		s = o.logf(s, types.LogDamage, "%s takes %d damage.", s.Enemy.Name, r.Damage)
	}
	if r.ArmorGained > 0 {
		s = o.logf(s, types.LogAction, "You gain %d armor.", r.ArmorGained)
	}
	if r.Healed > 0 {
		s = o.logf(s, types.LogHeal, "You recover %d hp.", r.Healed)
	}
	for _, se := range r.Applied {
		who := "You gain"
		if r.Target == "enemy" && s.Enemy != nil {
			who = s.Enemy.Name + " suffers"
		}
		s = o.logf(s, types.LogStatus, "%s %s %d (%d turns).", who, se.Type, se.Value, se.Duration)
	}
	return s
}

func (o *Orchestrator) logTicks(s types.BattleState, who string, applied []status.Applied) types.BattleState {
	for _, a := range applied {
		switch {
		case a.Amount > 0:
			s = o.logf(s, types.LogHeal, "%s: %s restores %d hp.", who, a.Type, a.Amount)
		case a.Amount < 0:
			s = o.logf(s, types.LogStatus, "%s: %s deals %d damage.", who, a.Type, -a.Amount)
		}
	}
	return s
}

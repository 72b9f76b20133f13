package engine

import (
	"github.com/enetx/fsm"

	"github.com/nathoo/runeblade/types"
)

// Battle phases.
const (
	PhasePlayerTurn fsm.State = "PlayerTurn"
	PhaseEnemyTurn  fsm.State = "EnemyTurn"
	PhaseVictory    fsm.State = "Victory"
	PhaseDefeat     fsm.State = "Defeat"
)

const (
	evPlayCard  fsm.Event = "PlayCard"
	evEndTurn   fsm.Event = "EndTurn"
	evEnemyDone fsm.Event = "EnemyDone"
	evWin       fsm.Event = "Win"
	evLose      fsm.Event = "Lose"
)

// Phase reports which phase a battle state is in.
func Phase(s types.BattleState) fsm.State {
	switch {
	case s.IsOver && s.IsVictory:
		return PhaseVictory
	case s.IsOver:
		return PhaseDefeat
	case s.Turn == types.TurnEnemy:
		return PhaseEnemyTurn
	default:
		return PhasePlayerTurn
	}
}

// advance fires ev on a machine positioned at the state's phase and writes
// the resulting phase back. It reports false, leaving s as is, when the
// event is not legal from the current phase. The machine is rebuilt each
// time so the battle state stays the only source of truth.
func advance(s types.BattleState, ev fsm.Event) (types.BattleState, bool) {
	m := fsm.New(Phase(s)).
		Transition(PhasePlayerTurn, evPlayCard, PhasePlayerTurn).
		Transition(PhasePlayerTurn, evEndTurn, PhaseEnemyTurn).
		Transition(PhaseEnemyTurn, evEnemyDone, PhasePlayerTurn).
		Transition(PhasePlayerTurn, evWin, PhaseVictory).
		Transition(PhasePlayerTurn, evLose, PhaseDefeat).
		Transition(PhaseEnemyTurn, evWin, PhaseVictory).
		Transition(PhaseEnemyTurn, evLose, PhaseDefeat)

	if err := m.Trigger(ev); err != nil {
		return s, false
	}

	switch m.Current() {
	case PhasePlayerTurn:
		s.Turn = types.TurnPlayer
	case PhaseEnemyTurn:
		s.Turn = types.TurnEnemy
	case PhaseVictory:
		s.IsOver, s.IsVictory = true, true
	case PhaseDefeat:
		s.IsOver, s.IsVictory = true, false
	}
	return s, true
}

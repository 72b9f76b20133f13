package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/nathoo/runeblade/engine"
)

// modeNames labels each run screen in the status bar.
var modeNames = map[engine.Mode]string{
	engine.ModeMap:        "Map",
	engine.ModeBattle:     "Battle",
	engine.ModeReward:     "Reward",
	engine.ModeShop:       "Shop",
	engine.ModeActCleared: "Act cleared",
	engine.ModeWon:        "Victory",
	engine.ModeLost:       "Defeat",
}

// renderStatusBar produces a full-width inverted status line showing the
// act, the screen, and the player's vitals. During a battle the enemy and
// mana are shown too, falling back to the short form when space runs out.
func (m Model) renderStatusBar() string {
	e := m.engine

	left := fmt.Sprintf(" Act %d: %s | %s", e.Act, e.Map.Name, modeNames[e.Mode])
	right := fmt.Sprintf("HP %d/%d | Gold %d ", e.HP, e.MaxHP, e.Gold)

	if b := e.Battle; e.Mode == engine.ModeBattle && b != nil {
		right = fmt.Sprintf("HP %d/%d | Mana %d/%d ", b.Player.HP, b.Player.MaxHP, b.Player.Mana, b.Player.MaxMana)
		if b.Enemy != nil {
			candidate := fmt.Sprintf("%s %d/%d | %s", b.Enemy.Name, b.Enemy.HP, b.Enemy.MaxHP, right)
			if lipgloss.Width(left)+lipgloss.Width(candidate)+2 < m.width {
				right = candidate
			}
		}
	}

	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 0 {
		gap = 0
	}

	bar := left + strings.Repeat(" ", gap) + right
	return styleStatusBar.Width(m.width).Render(bar)
}

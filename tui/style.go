package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Styles used throughout the TUI.
var (
	styleStatusBar = lipgloss.NewStyle().
			Background(lipgloss.Color("236")).
			Foreground(lipgloss.Color("252")).
			Bold(true)

	styleInputPrompt = lipgloss.NewStyle().
				Foreground(lipgloss.Color("34"))

	styleNarrative = lipgloss.NewStyle().
			Foreground(lipgloss.Color("255"))

	styleHeading = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("111"))

	styleIntent = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214"))

	styleDamage = lipgloss.NewStyle().
			Foreground(lipgloss.Color("203"))

	styleHeal = lipgloss.NewStyle().
			Foreground(lipgloss.Color("77"))

	styleVictory = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("220"))

	styleDefeat = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("160"))

	styleSystem = lipgloss.NewStyle().
			Foreground(lipgloss.Color("243"))

	styleError = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))

	stylePlayerInput = lipgloss.NewStyle().
				Foreground(lipgloss.Color("34"))

	styleTrace = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))
)

// lineKind identifies the type of an output line for styling.
type lineKind int

const (
	kindNarrative lineKind = iota
	kindHeading
	kindIntent
	kindDamage
	kindHeal
	kindVictory
	kindDefeat
	kindSystem
	kindError
	kindTrace
)

var headingPrefixes = []string{
	"Act ", "Paths ahead:", "Hand:", "Shop (", "Deck (", "Collection (", "Choose a card",
}

var errorPrefixes = []string{
	"You can't", "there is no", "which ", "Not enough mana", "Go where?", "Examine what?",
}

// classifyLine determines what kind of output line this is.
func classifyLine(line string) lineKind {
	switch {
	case strings.HasPrefix(line, "[trace]"):
		return kindTrace
	case strings.HasPrefix(line, "[") && strings.HasSuffix(line, "]"):
		return kindSystem
	case hasAnyPrefix(line, errorPrefixes):
		return kindError
	case strings.HasPrefix(line, "Intent:"):
		return kindIntent
	case strings.HasSuffix(line, "You win!"), strings.HasPrefix(line, "The last boss falls"),
		strings.HasSuffix(line, "is cleared! Type 'advance' to press on."):
		return kindVictory
	case line == "You were defeated!", line == "You have fallen.", line == "Your run ends here.":
		return kindDefeat
	case hasAnyPrefix(line, headingPrefixes):
		return kindHeading
	case strings.Contains(line, " damage"), strings.Contains(line, " blocks "):
		return kindDamage
	case strings.Contains(line, "recover"), strings.Contains(line, "restores"),
		strings.HasPrefix(line, "You rest"):
		return kindHeal
	default:
		return kindNarrative
	}
}

func hasAnyPrefix(line string, prefixes []string) bool {
	for _, p := range prefixes {
		if strings.HasPrefix(line, p) {
			return true
		}
	}
	return false
}

// renderLineKind applies the style for a given lineKind.
func renderLineKind(line string, kind lineKind) string {
	switch kind {
	case kindHeading:
		return styleHeading.Render(line)
	case kindIntent:
		return styleIntent.Render(line)
	case kindDamage:
		return styleDamage.Render(line)
	case kindHeal:
		return styleHeal.Render(line)
	case kindVictory:
		return styleVictory.Render(line)
	case kindDefeat:
		return styleDefeat.Render(line)
	case kindSystem:
		return styleSystem.Render(line)
	case kindError:
		return styleError.Render(line)
	case kindTrace:
		return styleTrace.Render(line)
	default:
		return styleNarrative.Render(line)
	}
}

// styledSystemMsg renders a system message in gray with brackets.
func styledSystemMsg(text string) string {
	return styleSystem.Render("[" + text + "]")
}

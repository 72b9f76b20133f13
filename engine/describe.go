package engine

import (
	"fmt"
	"strings"

	"github.com/nathoo/runeblade/engine/mapgen"
	"github.com/nathoo/runeblade/engine/resolve"
	"github.com/nathoo/runeblade/types"
)

var encounterNames = map[types.EncounterType]string{
	types.EncounterStart:    "Start",
	types.EncounterEnemy:    "Enemy",
	types.EncounterElite:    "Elite",
	types.EncounterBoss:     "Boss",
	types.EncounterRest:     "Rest Site",
	types.EncounterShop:     "Shop",
	types.EncounterEvent:    "Event",
	types.EncounterTreasure: "Treasure",
}

func nodeCandidates(nodes []types.MapNode) []resolve.Candidate {
	out := make([]resolve.Candidate, len(nodes))
	for i, n := range nodes {
		out[i] = resolve.Candidate{ID: n.ID, Name: encounterNames[n.Type]}
	}
	return out
}

func handCandidates(hand []types.CardInstance) []resolve.Candidate {
	out := make([]resolve.Candidate, len(hand))
	for i, c := range hand {
		out[i] = resolve.Candidate{ID: c.InstanceID, Name: c.Name}
	}
	return out
}

func cardCandidates(cards []types.Card) []resolve.Candidate {
	out := make([]resolve.Candidate, len(cards))
	for i, c := range cards {
		out[i] = resolve.Candidate{ID: c.ID, Name: c.Name}
	}
	return out
}

func itemCandidates(items []types.ShopItem) []resolve.Candidate {
	out := make([]resolve.Candidate, len(items))
	for i, it := range items {
		out[i] = resolve.Candidate{ID: it.ID, Name: it.Card.Name}
	}
	return out
}

func logMessages(entries []types.LogEntry) []string {
	out := make([]string, len(entries))
	for i, le := range entries {
		out[i] = le.Message
	}
	return out
}

// describe produces the view of the current screen.
func (e *Engine) describe() []string {
	switch e.Mode {
	case ModeBattle:
		return e.describeBattle()
	case ModeReward:
		return e.describeRewards()
	case ModeShop:
		return e.describeShop()
	case ModeActCleared:
		return []string{fmt.Sprintf("%s is cleared! Type 'advance' to press on.", e.Map.Name)}
	case ModeWon:
		return []string{"The last boss falls. You have won the run!"}
	case ModeLost:
		return []string{"You have fallen."}
	default:
		return e.describeMap()
	}
}

func (e *Engine) statusLine() string {
	return fmt.Sprintf("HP %d/%d | Gold %d | Act %d | Deck %d cards", e.HP, e.MaxHP, e.Gold, e.Act, len(e.Store.Collection().Deck))
}

func (e *Engine) describeMap() []string {
	out := []string{fmt.Sprintf("Act %d: %s", e.Act, e.Map.Name)}
	available := mapgen.AvailableNodes(e.Map)
	if len(available) == 0 {
		return append(out, "No paths lead onward.")
	}
	out = append(out, "Paths ahead:")
	for i, n := range available {
		out = append(out, fmt.Sprintf("  %d. %s (row %d)", i+1, encounterNames[n.Type], n.Row))
	}
	return out
}

func (e *Engine) describeBattle() []string {
	if e.Battle == nil {
		return []string{"There is no battle."}
	}
	s := e.Battle
	var out []string
	if s.Enemy != nil {
		line := fmt.Sprintf("%s: %d/%d hp, armor %d", s.Enemy.Name, s.Enemy.HP, s.Enemy.MaxHP, s.Enemy.Armor)
		if fx := describeEffects(s.Enemy.StatusEffects); fx != "" {
			line += " [" + fx + "]"
		}
		out = append(out, line)
		if s.Enemy.Intent != nil {
			out = append(out, fmt.Sprintf("Intent: %s %d (%s)", s.Enemy.Intent.Type, s.Enemy.Intent.Value, s.Enemy.Intent.Description))
		}
	}
	p := s.Player
	line := fmt.Sprintf("You: %d/%d hp, armor %d, mana %d/%d", p.HP, p.MaxHP, p.Armor, p.Mana, p.MaxMana)
	if fx := describeEffects(p.StatusEffects); fx != "" {
		line += " [" + fx + "]"
	}
	out = append(out, line)
	out = append(out, fmt.Sprintf("Deck %d | Discard %d", len(p.Deck), len(p.DiscardPile)))
	out = append(out, "Hand:")
	for i, c := range p.Hand {
		out = append(out, fmt.Sprintf("  %d. %s (%d) - %s", i+1, c.Name, c.Cost, c.Description))
	}
	return out
}

func describeEffects(effects []types.StatusEffect) string {
	parts := make([]string, 0, len(effects))
	for _, se := range effects {
		parts = append(parts, fmt.Sprintf("%s %d (%d turns)", se.Type, se.Value, se.Duration))
	}
	return strings.Join(parts, ", ")
}

func (e *Engine) describeRewards() []string {
	out := []string{"Choose a card to add to your deck (or 'skip'):"}
	for i, c := range e.Rewards {
		out = append(out, fmt.Sprintf("  %d. %s [%s] - %s", i+1, c.Name, c.Rarity, c.Description))
	}
	return out
}

func (e *Engine) describeShop() []string {
	listing, ok := e.Store.Shop()
	if !ok {
		return []string{"The shop is closed."}
	}
	out := []string{fmt.Sprintf("Shop (you have %d gold):", e.Gold)}
	for i, it := range listing.Items {
		line := fmt.Sprintf("  %d. %s [%s] %dg", i+1, it.Card.Name, it.Card.Rarity, it.Price)
		if it.Discount > 0 {
			line += fmt.Sprintf(" (-%d%%)", it.Discount)
		}
		if it.Sold {
			line += " SOLD"
		}
		out = append(out, line)
	}
	if listing.RefreshCount < listing.MaxRefreshes {
		out = append(out, fmt.Sprintf("Refresh: %dg (%d left)", e.Store.RefreshPrice(), listing.MaxRefreshes-listing.RefreshCount))
	}
	return out
}

func (e *Engine) describeDeck() []string {
	cards := e.Store.DeckCards()
	out := []string{fmt.Sprintf("Deck (%d cards):", len(cards))}
	for i, c := range cards {
		out = append(out, fmt.Sprintf("  %d. %s (%d) - %s", i+1, c.Name, c.Cost, c.Description))
	}
	return out
}

func (e *Engine) describeCollection() []string {
	coll := e.Store.Collection()
	out := []string{fmt.Sprintf("Collection (%d cards):", len(coll.Unlocked))}
	for _, u := range coll.Unlocked {
		c, ok := e.Defs.Cards[u.CardID]
		if !ok {
			continue
		}
		out = append(out, fmt.Sprintf("  %s [%s] played %d times", c.Name, c.Rarity, u.TimesUsed))
	}
	return out
}

func (e *Engine) examine(name string) string {
	if name == "" {
		return "Examine what?"
	}
	id, err := resolve.Resolve(name, cardCandidates(e.Defs.CardPool()))
	if err != nil {
		return err.Error()
	}
	c := e.Defs.Cards[id]
	return fmt.Sprintf("%s [%s %s, cost %d]: %s", c.Name, c.Rarity, c.Type, c.Cost, c.Description)
}

func (e *Engine) help() []string {
	out := []string{"Commands here: " + strings.Join(modeVerbs[e.Mode], ", ")}
	return append(out, "Anywhere: look, status, deck, collection, examine <card>, help")
}

// Package state holds the immutable content catalog and builds the per-run
// combatants from it.
package state

import (
	"sort"

	"github.com/nathoo/runeblade/engine/rng"
	"github.com/nathoo/runeblade/types"
)

// PlayerDef is the player's starting stats.
type PlayerDef struct {
	MaxHP   int
	MaxMana int
}

// Defs holds the immutable game definitions loaded from Lua.
type Defs struct {
	Title       string
	Cards       map[string]types.Card
	CardOrder   []string // definition order, for stable iteration
	Enemies     map[string]types.Enemy
	Tiers       map[string][]string
	Acts        []types.Act // sorted by ID
	Player      PlayerDef
	StarterDeck []string
}

// CardPool returns every card in definition order.
func (d *Defs) CardPool() []types.Card {
	out := make([]types.Card, 0, len(d.CardOrder))
	for _, id := range d.CardOrder {
		out = append(out, d.Cards[id])
	}
	return out
}

// Act returns the act with the given ID.
func (d *Defs) Act(id int) (types.Act, bool) {
	for _, a := range d.Acts {
		if a.ID == id {
			return a, true
		}
	}
	return types.Act{}, false
}

// LastAct returns the highest act ID, or 0 with no acts.
func (d *Defs) LastAct() int {
	if len(d.Acts) == 0 {
		return 0
	}
	return d.Acts[len(d.Acts)-1].ID
}

// SortActs orders Acts by ID.
func (d *Defs) SortActs() {
	sort.Slice(d.Acts, func(i, j int) bool { return d.Acts[i].ID < d.Acts[j].ID })
}

// NewCardInstance makes a uniquely identified copy of a card.
func NewCardInstance(c types.Card, r *rng.RNG) types.CardInstance {
	return types.CardInstance{Card: c, InstanceID: r.NewID()}
}

// NewDeck makes one instance per known card ID, in order. Unknown IDs are skipped.
func NewDeck(defs *Defs, ids []string, r *rng.RNG) []types.CardInstance {
	deck := make([]types.CardInstance, 0, len(ids))
	for _, id := range ids {
		c, ok := defs.Cards[id]
		if !ok {
			continue
		}
		deck = append(deck, NewCardInstance(c, r))
	}
	return deck
}

// NewPlayer builds a player for one battle with the given deck and hp.
// Mana starts full and the hand and discard pile are empty.
func NewPlayer(defs *Defs, deck []types.CardInstance, hp, maxHP int) types.Player {
	return types.Player{
		HP:            hp,
		MaxHP:         maxHP,
		Mana:          defs.Player.MaxMana,
		MaxMana:       defs.Player.MaxMana,
		Deck:          deck,
		Hand:          []types.CardInstance{},
		DiscardPile:   []types.CardInstance{},
		StatusEffects: []types.StatusEffect{},
	}
}

// NewEnemy returns a fresh copy of an enemy template at full hp.
func NewEnemy(defs *Defs, id string) (*types.Enemy, bool) {
	tmpl, ok := defs.Enemies[id]
	if !ok {
		return nil, false
	}
	e := tmpl
	e.HP = e.MaxHP
	e.Intent = nil
	e.StatusEffects = []types.StatusEffect{}
	e.Actions = append([]types.EnemyAction(nil), tmpl.Actions...)
	return &e, true
}

// TierOf returns the tier an enemy belongs to, or "".
func TierOf(defs *Defs, enemyID string) string {
	for tier, ids := range defs.Tiers {
		for _, id := range ids {
			if id == enemyID {
				return tier
			}
		}
	}
	return ""
}

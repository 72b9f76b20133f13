package engine

import (
	"github.com/nathoo/runeblade/engine/rng"
	"github.com/nathoo/runeblade/types"
)

// clonePiles gives the player fresh pile slices so edits never reach the
// previous state.
func clonePiles(p types.Player) types.Player {
	p.Deck = append([]types.CardInstance{}, p.Deck...)
	p.Hand = append([]types.CardInstance{}, p.Hand...)
	p.DiscardPile = append([]types.CardInstance{}, p.DiscardPile...)
	return p
}

// shuffleDeck returns the player with the deck shuffled.
func shuffleDeck(p types.Player, r *rng.RNG) types.Player {
	p = clonePiles(p)
	r.Shuffle(len(p.Deck), func(i, j int) { p.Deck[i], p.Deck[j] = p.Deck[j], p.Deck[i] })
	return p
}

// drawCards moves up to n cards from the top (end) of the deck to the hand,
// shuffling the discard pile back into the deck when the deck runs out.
func drawCards(p types.Player, n int, r *rng.RNG) types.Player {
	p = clonePiles(p)
	n = min(n, len(p.Deck)+len(p.DiscardPile))
	for i := 0; i < n; i++ {
		if len(p.Deck) == 0 {
			p.Deck, p.DiscardPile = p.DiscardPile, []types.CardInstance{}
			r.Shuffle(len(p.Deck), func(a, b int) { p.Deck[a], p.Deck[b] = p.Deck[b], p.Deck[a] })
		}
		top := len(p.Deck) - 1
		p.Hand = append(p.Hand, p.Deck[top])
		p.Deck = p.Deck[:top]
	}
	return p
}

// discardHand moves the whole hand to the discard pile.
func discardHand(p types.Player) types.Player {
	p = clonePiles(p)
	p.DiscardPile = append(p.DiscardPile, p.Hand...)
	p.Hand = []types.CardInstance{}
	return p
}

// discardCard moves one instance from hand to discard.
func discardCard(p types.Player, instanceID string) (types.Player, bool) {
	idx := handIndex(p, instanceID)
	if idx < 0 {
		return p, false
	}
	p = clonePiles(p)
	card := p.Hand[idx]
	p.Hand = append(p.Hand[:idx], p.Hand[idx+1:]...)
	p.DiscardPile = append(p.DiscardPile, card)
	return p, true
}

func handIndex(p types.Player, instanceID string) int {
	for i, c := range p.Hand {
		if c.InstanceID == instanceID {
			return i
		}
	}
	return -1
}

package shop

import (
	"time"

	"github.com/nathoo/runeblade/types"
)

// Store owns the player's collection and the currently open shop. Every
// change replaces the affected slices, so snapshots handed out earlier never
// change under the caller.
type Store struct {
	cfg     Config
	cards   map[string]types.Card
	starter []string
	now     func() time.Time

	collection types.Collection
	shop       *types.ShopState
}

// NewStore creates a collection holding the starter deck, with every starter
// card unlocked. A nil clock uses time.Now.
func NewStore(cards []types.Card, starter []string, cfg Config, now func() time.Time) *Store {
	if now == nil {
		now = time.Now
	}
	s := &Store{
		cfg:     cfg,
		cards:   make(map[string]types.Card, len(cards)),
		starter: append([]string(nil), starter...),
		now:     now,
		collection: types.Collection{
			Unlocked:    []types.UnlockedCard{},
			Deck:        append([]string{}, starter...),
			MaxDeckSize: cfg.MaxDeckSize,
			MinDeckSize: cfg.MinDeckSize,
		},
	}
	for _, c := range cards {
		s.cards[c.ID] = c
	}
	for _, id := range starter {
		s.Unlock(id)
	}
	return s
}

// Collection returns the current collection snapshot.
func (s *Store) Collection() types.Collection {
	return s.collection
}

// Shop returns the open shop, if any.
func (s *Store) Shop() (types.ShopState, bool) {
	if s.shop == nil {
		return types.ShopState{}, false
	}
	return *s.shop, true
}

// Open starts a shop visit with the given listing.
func (s *Store) Open(items []types.ShopItem) {
	s.shop = &types.ShopState{
		Items:        items,
		RefreshCost:  s.cfg.RefreshCost,
		MaxRefreshes: s.cfg.MaxRefreshes,
	}
}

// Close ends the shop visit.
func (s *Store) Close() {
	s.shop = nil
}

// Buy purchases an unsold item. The wallet is charged through spend; a false
// return from it leaves everything unchanged. The card is unlocked and added
// to the deck when there is room.
func (s *Store) Buy(itemID string, gold int, spend func(int) bool) bool {
	if s.shop == nil {
		return false
	}
	idx := -1
	for i, it := range s.shop.Items {
		if it.ID == itemID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return false
	}
	item := s.shop.Items[idx]
	if item.Sold || gold < item.Price {
		return false
	}
	if !spend(item.Price) {
		return false
	}

	items := append([]types.ShopItem{}, s.shop.Items...)
	items[idx].Sold = true
	next := *s.shop
	next.Items = items
	s.shop = &next

	s.Unlock(item.Card.ID)
	s.AddToDeck(item.Card.ID)
	return true
}

// Sell removes one copy of a card from the deck and pays for it through add.
// It fails for unknown cards and when the deck is at its minimum size.
func (s *Store) Sell(cardID string, add func(int)) bool {
	card, ok := s.cards[cardID]
	if !ok {
		return false
	}
	if !s.RemoveFromDeck(cardID) {
		return false
	}
	add(SellPrice(s.cfg, card))
	return true
}

// RefreshPrice is what the next refresh costs.
func (s *Store) RefreshPrice() int {
	if s.shop == nil {
		return 0
	}
	return s.shop.RefreshCost * (s.shop.RefreshCount + 1)
}

// Refresh replaces the listing with generate's output. Each refresh costs
// more than the last and the number of refreshes per visit is capped.
func (s *Store) Refresh(generate func() []types.ShopItem, gold int, spend func(int) bool) bool {
	if s.shop == nil || s.shop.RefreshCount >= s.shop.MaxRefreshes {
		return false
	}
	cost := s.RefreshPrice()
	if gold < cost || !spend(cost) {
		return false
	}
	next := *s.shop
	next.Items = generate()
	next.RefreshCount++
	s.shop = &next
	return true
}

// Unlock adds a card to the collection once.
func (s *Store) Unlock(cardID string) {
	if s.IsUnlocked(cardID) {
		return
	}
	unlocked := append([]types.UnlockedCard{}, s.collection.Unlocked...)
	s.collection.Unlocked = append(unlocked, types.UnlockedCard{CardID: cardID, UnlockedAt: s.now()})
}

// IsUnlocked reports whether the player owns a card.
func (s *Store) IsUnlocked(cardID string) bool {
	for _, u := range s.collection.Unlocked {
		if u.CardID == cardID {
			return true
		}
	}
	return false
}

// AddToDeck appends an unlocked card while the deck is below its maximum.
func (s *Store) AddToDeck(cardID string) bool {
	if !s.IsUnlocked(cardID) || len(s.collection.Deck) >= s.collection.MaxDeckSize {
		return false
	}
	deck := append([]string{}, s.collection.Deck...)
	s.collection.Deck = append(deck, cardID)
	return true
}

// RemoveFromDeck drops one copy of a card while the deck is above its minimum.
func (s *Store) RemoveFromDeck(cardID string) bool {
	if len(s.collection.Deck) <= s.collection.MinDeckSize {
		return false
	}
	for i, id := range s.collection.Deck {
		if id == cardID {
			deck := make([]string, 0, len(s.collection.Deck)-1)
			deck = append(deck, s.collection.Deck[:i]...)
			s.collection.Deck = append(deck, s.collection.Deck[i+1:]...)
			return true
		}
	}
	return false
}

// ResetDeck restores the starter deck.
func (s *Store) ResetDeck() {
	s.collection.Deck = append([]string{}, s.starter...)
}

// DeckCards returns the deck's card templates in order, skipping unknown IDs.
func (s *Store) DeckCards() []types.Card {
	return s.lookup(s.collection.Deck)
}

// UnlockedCards returns the owned card templates in unlock order.
func (s *Store) UnlockedCards() []types.Card {
	ids := make([]string, len(s.collection.Unlocked))
	for i, u := range s.collection.Unlocked {
		ids[i] = u.CardID
	}
	return s.lookup(ids)
}

// RecordUse counts one play of a card.
func (s *Store) RecordUse(cardID string) {
	unlocked := append([]types.UnlockedCard{}, s.collection.Unlocked...)
	for i := range unlocked {
		if unlocked[i].CardID == cardID {
			unlocked[i].TimesUsed++
		}
	}
	s.collection.Unlocked = unlocked
}

func (s *Store) lookup(ids []string) []types.Card {
	out := make([]types.Card, 0, len(ids))
	for _, id := range ids {
		if c, ok := s.cards[id]; ok {
			out = append(out, c)
		}
	}
	return out
}

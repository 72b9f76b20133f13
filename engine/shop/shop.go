// Package shop generates shop listings and keeps the player's card
// collection.
package shop

import (
	"math"

	"github.com/nathoo/runeblade/engine/rng"
	"github.com/nathoo/runeblade/types"
)

// Config holds the economy tables.
type Config struct {
	RarityWeights   map[int]map[types.Rarity]int `yaml:"rarity_weights"`
	Prices          map[types.Rarity]int         `yaml:"prices"`
	DiscountChances map[types.Rarity]float64     `yaml:"discount_chances"`
	Discount        types.Range                  `yaml:"discount"`
	SellPercentage  float64                      `yaml:"sell_percentage"`
	RefreshCost     int                          `yaml:"refresh_cost"`
	MaxRefreshes    int                          `yaml:"max_refreshes"`
	ItemsPerShop    int                          `yaml:"items_per_shop"`
	MaxDeckSize     int                          `yaml:"max_deck_size"`
	MinDeckSize     int                          `yaml:"min_deck_size"`
}

// DefaultConfig returns the standard economy.
func DefaultConfig() Config {
	return Config{
		RarityWeights: map[int]map[types.Rarity]int{
			1: {types.RarityCommon: 50, types.RarityUncommon: 35, types.RarityRare: 12, types.RarityEpic: 3, types.RarityLegendary: 0},
			2: {types.RarityCommon: 35, types.RarityUncommon: 40, types.RarityRare: 18, types.RarityEpic: 6, types.RarityLegendary: 1},
			3: {types.RarityCommon: 20, types.RarityUncommon: 35, types.RarityRare: 30, types.RarityEpic: 12, types.RarityLegendary: 3},
		},
		Prices: map[types.Rarity]int{
			types.RarityCommon:    50,
			types.RarityUncommon:  75,
			types.RarityRare:      150,
			types.RarityEpic:      250,
			types.RarityLegendary: 400,
		},
		DiscountChances: map[types.Rarity]float64{
			types.RarityCommon:    0.3,
			types.RarityUncommon:  0.2,
			types.RarityRare:      0.1,
			types.RarityEpic:      0.05,
			types.RarityLegendary: 0.02,
		},
		Discount:       types.Range{Min: 10, Max: 30},
		SellPercentage: 0.5,
		RefreshCost:    50,
		MaxRefreshes:   3,
		ItemsPerShop:   5,
		MaxDeckSize:    20,
		MinDeckSize:    8,
	}
}

// Generator rolls shop listings from a card pool.
type Generator struct {
	Cards  []types.Card
	Config Config
}

// NewGenerator creates a generator over the given pool.
func NewGenerator(cards []types.Card, cfg Config) *Generator {
	return &Generator{Cards: cards, Config: cfg}
}

// Generate picks up to count distinct cards not in exclude. Each pick rolls
// a rarity from the act's weights and falls back to any remaining card when
// that rarity is used up. Unknown acts use act 1's weights.
func (g *Generator) Generate(r *rng.RNG, act, count int, exclude []string) []types.ShopItem {
	weights, ok := g.Config.RarityWeights[act]
	if !ok {
		weights = g.Config.RarityWeights[1]
	}
	rarityWeights := make([]int, len(types.Rarities))
	for i, rar := range types.Rarities {
		rarityWeights[i] = weights[rar]
	}

	used := make(map[string]bool, len(exclude))
	for _, id := range exclude {
		used[id] = true
	}

	var items []types.ShopItem
	for len(items) < count {
		rarity := types.Rarities[r.WeightedSelect(rarityWeights)]

		var pool, rest []types.Card
		for _, c := range g.Cards {
			if used[c.ID] {
				continue
			}
			rest = append(rest, c)
			if c.Rarity == rarity {
				pool = append(pool, c)
			}
		}
		if len(pool) == 0 {
			pool = rest
		}
		if len(pool) == 0 {
			break
		}

		card := rng.Pick(r, pool)
		used[card.ID] = true
		items = append(items, g.NewItem(card, r))
	}
	return items
}

// NewItem prices a card, rolling for a rarity-dependent discount.
func (g *Generator) NewItem(card types.Card, r *rng.RNG) types.ShopItem {
	base := g.Config.Prices[card.Rarity]
	discount := 0
	if r.Chance(g.Config.DiscountChances[card.Rarity]) {
		discount = r.IntRange(g.Config.Discount.Min, g.Config.Discount.Max)
	}
	return types.ShopItem{
		ID:            r.NewID(),
		Card:          card,
		Price:         DiscountedPrice(base, discount),
		OriginalPrice: base,
		Discount:      discount,
	}
}

// SellPrice is what the shop pays for a card.
func (g *Generator) SellPrice(card types.Card) int {
	return SellPrice(g.Config, card)
}

// SellPrice is what the shop pays for a card under cfg.
func SellPrice(cfg Config, card types.Card) int {
	return int(math.Floor(float64(cfg.Prices[card.Rarity]) * cfg.SellPercentage))
}

// DiscountedPrice is floor(base * (1 - discount/100)).
func DiscountedPrice(base, discount int) int {
	return int(math.Floor(float64(base) * (1 - float64(discount)/100)))
}

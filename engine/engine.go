// Package engine runs a whole Runeblade run: the act map, battles, rewards
// and shops. Step() is the single text entry point the front ends use.
package engine

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/nathoo/runeblade/config"
	"github.com/nathoo/runeblade/engine/mapgen"
	"github.com/nathoo/runeblade/engine/parser"
	"github.com/nathoo/runeblade/engine/resolve"
	"github.com/nathoo/runeblade/engine/rng"
	"github.com/nathoo/runeblade/engine/shop"
	"github.com/nathoo/runeblade/engine/state"
	"github.com/nathoo/runeblade/types"
)

// Mode is what the run is waiting for.
type Mode string

const (
	ModeMap        Mode = "map"
	ModeBattle     Mode = "battle"
	ModeReward     Mode = "reward"
	ModeShop       Mode = "shop"
	ModeActCleared Mode = "act_cleared"
	ModeWon        Mode = "won"
	ModeLost       Mode = "lost"
)

// Over reports whether the run has ended.
func (m Mode) Over() bool {
	return m == ModeWon || m == ModeLost
}

// Engine holds the game definitions and the state of one run. It is not safe
// for concurrent use.
type Engine struct {
	Defs   *state.Defs
	Config config.Config
	RNG    *rng.RNG
	Logger *log.Logger
	Now    func() time.Time

	Seed       int64
	Mode       Mode
	Act        int
	Map        types.GameMap
	Battle     *types.BattleState
	Store      *shop.Store
	Gold       int
	HP         int
	MaxHP      int
	Rewards    []types.Card
	CommandLog []string

	orch   *Orchestrator
	shops  *shop.Generator
	resume Mode
}

// Option customizes an Engine.
type Option func(*Engine)

// WithLogger sets the diagnostic logger.
func WithLogger(l *log.Logger) Option {
	return func(e *Engine) { e.Logger = l }
}

// WithClock sets the clock used for log and collection timestamps.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.Now = now }
}

// New starts a run on the first act. Everything random derives from seed.
func New(defs *state.Defs, cfg config.Config, seed int64, opts ...Option) *Engine {
	e := &Engine{
		Defs:       defs,
		Config:     cfg,
		RNG:        rng.NewRNG(seed),
		Logger:     log.New(io.Discard),
		Now:        time.Now,
		Seed:       seed,
		HP:         defs.Player.MaxHP,
		MaxHP:      defs.Player.MaxHP,
		Gold:       cfg.Run.StartingGold,
		CommandLog: []string{},
	}
	for _, opt := range opts {
		opt(e)
	}
	e.orch = NewOrchestrator(e.RNG, e.Now)
	e.shops = shop.NewGenerator(defs.CardPool(), cfg.Shop)
	e.Store = shop.NewStore(defs.CardPool(), defs.StarterDeck, cfg.Shop, e.Now)

	first := 1
	if len(defs.Acts) > 0 {
		first = defs.Acts[0].ID
	}
	e.enterAct(first)
	return e
}

// Step processes one player command and returns the result.
func (e *Engine) Step(input string) types.Result {
	var result types.Result

	// 0. Run over: block all gameplay commands.
	if e.Mode.Over() {
		result.Output = append(result.Output, "The run is over. Use /replay to keep a record or /quit to exit.")
		return result
	}

	// 1. Parse input.
	intent := parser.Parse(input)

	// 2. Log the command.
	e.CommandLog = append(e.CommandLog, input)

	// 3. Empty input.
	if intent.Verb == "" {
		result.Output = append(result.Output, "What do you want to do?")
		return result
	}

	// 4. Commands that work on every screen.
	switch intent.Verb {
	case "help":
		result.Output = append(result.Output, e.help()...)
		return result
	case "look":
		result.Output = append(result.Output, e.describe()...)
		return result
	case "status":
		result.Output = append(result.Output, e.statusLine())
		return result
	case "deck":
		result.Output = append(result.Output, e.describeDeck()...)
		return result
	case "collection":
		result.Output = append(result.Output, e.describeCollection()...)
		return result
	case "examine":
		result.Output = append(result.Output, e.examine(intent.Object))
		return result
	}

	// 5. Restrict to the verbs the current screen accepts.
	if !isModeVerb(e.Mode, intent.Verb) {
		result.Output = append(result.Output, fmt.Sprintf("You can't do that now. (%s)", strings.Join(modeVerbs[e.Mode], ", ")))
		return result
	}

	// 6. Route by verb.
	switch intent.Verb {
	case "map":
		result.Output = append(result.Output, e.describeMap()...)
	case "go":
		e.stepGo(intent, &result)
	case "hand":
		result.Output = append(result.Output, e.describeBattle()...)
	case "play":
		e.stepPlay(intent, &result)
	case "end":
		e.stepEndTurn(&result)
	case "take":
		e.stepTakeReward(intent, &result)
	case "skip":
		e.SkipReward()
		result.Output = append(result.Output, "You leave the cards behind.")
		e.emit(&result, "reward_skipped", nil)
		result.Output = append(result.Output, e.describe()...)
	case "shop":
		result.Output = append(result.Output, e.describeShop()...)
	case "buy":
		e.stepBuy(intent, &result)
	case "sell":
		e.stepSell(intent, &result)
	case "refresh":
		e.stepRefresh(&result)
	case "leave":
		e.LeaveShop()
		result.Output = append(result.Output, "You leave the shop.")
		e.emit(&result, "shop_left", nil)
		result.Output = append(result.Output, e.describe()...)
	case "advance":
		act := e.Act
		if !e.AdvanceAct() {
			result.Output = append(result.Output, "There is nowhere further to go.")
			break
		}
		e.emit(&result, "act_started", map[string]any{"from": act, "act": e.Act})
		result.Output = append(result.Output, e.describeMap()...)
	}

	return result
}

var modeVerbs = map[Mode][]string{
	ModeMap:        {"go", "map"},
	ModeBattle:     {"play", "end", "hand"},
	ModeReward:     {"take", "skip"},
	ModeShop:       {"buy", "sell", "refresh", "leave", "shop"},
	ModeActCleared: {"advance"},
}

func isModeVerb(m Mode, verb string) bool {
	for _, v := range modeVerbs[m] {
		if v == verb {
			return true
		}
	}
	return false
}

func (e *Engine) emit(r *types.Result, typ string, data map[string]any) {
	r.Events = append(r.Events, types.Event{Type: typ, Data: data})
}

func (e *Engine) stepGo(intent types.Intent, result *types.Result) {
	if intent.Object == "" {
		result.Output = append(result.Output, "Go where?")
		result.Output = append(result.Output, e.describeMap()...)
		return
	}
	id, err := resolve.Resolve(intent.Object, nodeCandidates(mapgen.AvailableNodes(e.Map)))
	if err != nil {
		result.Output = append(result.Output, err.Error())
		return
	}
	node, _ := mapgen.Node(e.Map, id)
	if !e.SelectNode(id) {
		result.Output = append(result.Output, "You can't go there.")
		return
	}
	e.emit(result, "node_entered", map[string]any{"node": id, "type": string(node.Type), "row": node.Row})

	switch node.Type {
	case types.EncounterEnemy, types.EncounterElite, types.EncounterBoss:
		if e.Mode == ModeBattle {
			e.emit(result, "battle_started", map[string]any{"enemy": e.Battle.Enemy.ID})
			result.Output = append(result.Output, logMessages(e.Battle.Log)...)
		}
	case types.EncounterRest:
		result.Output = append(result.Output, "You rest by the fire.")
	case types.EncounterTreasure:
		result.Output = append(result.Output, "You open a treasure chest.")
	case types.EncounterEvent:
		result.Output = append(result.Output, "Nothing stirs here.")
	case types.EncounterShop:
		result.Output = append(result.Output, "You enter the shop.")
	}
	result.Output = append(result.Output, e.describe()...)
}

func (e *Engine) stepPlay(intent types.Intent, result *types.Result) {
	if intent.Object == "" {
		result.Output = append(result.Output, "Play which card?")
		return
	}
	id, err := resolve.Resolve(intent.Object, handCandidates(e.Battle.Player.Hand))
	if err != nil {
		result.Output = append(result.Output, err.Error())
		return
	}
	before := len(e.Battle.Log)
	played := e.PlayCard(id)
	result.Output = append(result.Output, logMessages(e.Battle.Log[before:])...)
	if played {
		e.emit(result, "card_played", map[string]any{"instance": id})
	}
	e.battleOutcome(result)
}

func (e *Engine) stepEndTurn(result *types.Result) {
	before := len(e.Battle.Log)
	e.EndTurn()
	result.Output = append(result.Output, logMessages(e.Battle.Log[before:])...)
	e.emit(result, "turn_ended", map[string]any{"round": e.Battle.Round})
	e.battleOutcome(result)
}

// battleOutcome reports the end of a battle, or the next turn's view.
func (e *Engine) battleOutcome(result *types.Result) {
	switch {
	case e.Mode == ModeBattle:
		if e.Battle.Turn == types.TurnPlayer {
			result.Output = append(result.Output, e.describeBattle()...)
		}
	case e.Mode == ModeLost:
		e.emit(result, "battle_lost", map[string]any{"enemy": e.Battle.Enemy.ID})
		result.Output = append(result.Output, "Your run ends here.")
	default:
		e.emit(result, "battle_won", map[string]any{"enemy": e.Battle.Enemy.ID, "hp": e.HP})
		result.Output = append(result.Output, e.describe()...)
	}
}

func (e *Engine) stepTakeReward(intent types.Intent, result *types.Result) {
	if intent.Object == "" {
		result.Output = append(result.Output, "Take which card?")
		return
	}
	id, err := resolve.Resolve(intent.Object, cardCandidates(e.Rewards))
	if err != nil {
		result.Output = append(result.Output, err.Error())
		return
	}
	card := e.Defs.Cards[id]
	e.TakeReward(id)
	result.Output = append(result.Output, fmt.Sprintf("%s joins your collection.", card.Name))
	e.emit(result, "reward_taken", map[string]any{"card": id})
	result.Output = append(result.Output, e.describe()...)
}

func (e *Engine) stepBuy(intent types.Intent, result *types.Result) {
	if intent.Object == "" {
		result.Output = append(result.Output, "Buy what?")
		return
	}
	listing, _ := e.Store.Shop()
	id, err := resolve.Resolve(intent.Object, itemCandidates(listing.Items))
	if err != nil {
		result.Output = append(result.Output, err.Error())
		return
	}
	var item types.ShopItem
	for _, it := range listing.Items {
		if it.ID == id {
			item = it
		}
	}
	if !e.Buy(id) {
		switch {
		case item.Sold:
			result.Output = append(result.Output, "That has already been sold.")
		default:
			result.Output = append(result.Output, fmt.Sprintf("You can't afford %s (%d gold).", item.Card.Name, item.Price))
		}
		return
	}
	result.Output = append(result.Output, fmt.Sprintf("You buy %s for %d gold.", item.Card.Name, item.Price))
	e.emit(result, "card_bought", map[string]any{"card": item.Card.ID, "price": item.Price})
}

func (e *Engine) stepSell(intent types.Intent, result *types.Result) {
	if intent.Object == "" {
		result.Output = append(result.Output, "Sell which card?")
		return
	}
	id, err := resolve.Resolve(intent.Object, cardCandidates(e.Store.DeckCards()))
	if err != nil {
		result.Output = append(result.Output, err.Error())
		return
	}
	gold := e.Gold
	if !e.Sell(id) {
		result.Output = append(result.Output, fmt.Sprintf("Your deck can't shrink below %d cards.", e.Config.Shop.MinDeckSize))
		return
	}
	result.Output = append(result.Output, fmt.Sprintf("You sell %s for %d gold.", e.Defs.Cards[id].Name, e.Gold-gold))
	e.emit(result, "card_sold", map[string]any{"card": id, "price": e.Gold - gold})
}

func (e *Engine) stepRefresh(result *types.Result) {
	cost := e.Store.RefreshPrice()
	if !e.Refresh() {
		listing, _ := e.Store.Shop()
		if listing.RefreshCount >= listing.MaxRefreshes {
			result.Output = append(result.Output, "The shopkeeper has nothing more to show.")
		} else {
			result.Output = append(result.Output, fmt.Sprintf("A refresh costs %d gold.", cost))
		}
		return
	}
	result.Output = append(result.Output, fmt.Sprintf("You pay %d gold for new stock.", cost))
	e.emit(result, "shop_refreshed", map[string]any{"cost": cost})
	result.Output = append(result.Output, e.describeShop()...)
}

// SelectNode moves to an available node and resolves it: battle nodes start
// a battle, the shop opens, rest heals, and every other node completes at
// once. It reports false outside the map screen or for a node that cannot be
// reached.
func (e *Engine) SelectNode(id string) bool {
	if e.Mode != ModeMap {
		return false
	}
	node, ok := mapgen.Node(e.Map, id)
	if !ok || node.Status != types.NodeAvailable {
		return false
	}
	e.Map = mapgen.MoveToNode(e.Map, id)
	e.Logger.Debug("node entered", "act", e.Act, "row", node.Row, "type", node.Type)

	switch node.Type {
	case types.EncounterEnemy, types.EncounterElite, types.EncounterBoss:
		if !e.startBattle(node.EnemyID) {
			e.Logger.Warn("unknown enemy, skipping node", "enemy", node.EnemyID)
			e.CompleteNode()
		}
	case types.EncounterShop:
		items := e.shops.Generate(e.RNG, e.Act, e.Config.Shop.ItemsPerShop, e.Store.Collection().Deck)
		e.Store.Open(items)
		e.Mode = ModeShop
	case types.EncounterRest:
		pct := e.Config.Run.RestHealPercent
		if node.Reward != nil && node.Reward.Healing > 0 {
			pct = node.Reward.Healing
		}
		healed := min(e.MaxHP*pct/100, e.MaxHP-e.HP)
		e.HP += healed
		e.Logger.Info("rested", "healed", healed, "hp", e.HP)
		e.CompleteNode()
	case types.EncounterTreasure:
		e.CompleteNode()
		if node.Reward != nil {
			e.offerRewards(node.Reward.CardChoices)
		}
	default:
		e.CompleteNode()
	}
	return true
}

func (e *Engine) startBattle(enemyID string) bool {
	enemy, ok := state.NewEnemy(e.Defs, enemyID)
	if !ok {
		return false
	}
	deck := state.NewDeck(e.Defs, e.Store.Collection().Deck, e.RNG)
	p := state.NewPlayer(e.Defs, deck, e.HP, e.MaxHP)
	s := e.orch.Start(p, enemy, e.Config.Battle)
	e.Battle = &s
	e.Mode = ModeBattle
	e.Logger.Info("battle started", "enemy", enemyID, "tier", state.TierOf(e.Defs, enemyID), "hp", e.HP)
	return true
}

// PlayCard plays a card from the hand of the running battle. It reports
// whether the card was played.
func (e *Engine) PlayCard(instanceID string) bool {
	if e.Mode != ModeBattle {
		return false
	}
	idx := handIndex(e.Battle.Player, instanceID)
	if idx < 0 {
		return false
	}
	cardID := e.Battle.Player.Hand[idx].ID
	next := e.orch.PlayCard(*e.Battle, instanceID)
	played := handIndex(next.Player, instanceID) < 0
	e.Battle = &next
	if played {
		e.Store.RecordUse(cardID)
	}
	e.afterBattleStep()
	return played
}

// EndTurn ends the player's turn in the running battle.
func (e *Engine) EndTurn() bool {
	if e.Mode != ModeBattle {
		return false
	}
	next := e.orch.EndTurn(*e.Battle)
	e.Battle = &next
	e.afterBattleStep()
	return true
}

func (e *Engine) afterBattleStep() {
	if !e.Battle.IsOver {
		return
	}
	if !e.Battle.IsVictory {
		e.HP = 0
		e.Mode = ModeLost
		e.Logger.Info("battle lost", "enemy", e.Battle.Enemy.ID, "round", e.Battle.Round, "act", e.Act)
		return
	}

	e.HP = max(e.Battle.Player.HP, 1)
	e.Logger.Info("battle won", "enemy", e.Battle.Enemy.ID, "round", e.Battle.Round, "hp", e.HP)
	node, _ := mapgen.CurrentNode(e.Map)
	e.CompleteNode()
	if node.Reward != nil {
		e.offerRewards(node.Reward.CardChoices)
	}
}

// CompleteNode pays out the current node and marks it completed. The run
// returns to the map, or after a boss moves to the act-cleared screen, or
// ends in victory after the last act's boss.
func (e *Engine) CompleteNode() {
	node, ok := mapgen.CurrentNode(e.Map)
	if !ok {
		return
	}
	if node.Reward != nil {
		e.AddGold(node.Reward.Gold)
		if node.Reward.MaxHPBonus > 0 {
			e.MaxHP += node.Reward.MaxHPBonus
			e.HP += node.Reward.MaxHPBonus
		}
	}
	e.Map = mapgen.CompleteCurrentNode(e.Map)
	e.Mode = ModeMap
	if mapgen.IsCompleted(e.Map) {
		if _, ok := e.nextAct(); ok {
			e.Mode = ModeActCleared
		} else {
			e.Mode = ModeWon
			e.Logger.Info("run won", "act", e.Act, "gold", e.Gold)
		}
	}
}

func (e *Engine) offerRewards(n int) {
	if n <= 0 {
		return
	}
	items := e.shops.Generate(e.RNG, e.Act, n, nil)
	if len(items) == 0 {
		return
	}
	e.Rewards = make([]types.Card, len(items))
	for i, it := range items {
		e.Rewards[i] = it.Card
	}
	e.resume = e.Mode
	e.Mode = ModeReward
}

// TakeReward adds one of the offered cards to the collection and the deck.
func (e *Engine) TakeReward(cardID string) bool {
	if e.Mode != ModeReward {
		return false
	}
	for _, c := range e.Rewards {
		if c.ID == cardID {
			e.Store.Unlock(cardID)
			e.Store.AddToDeck(cardID)
			e.Logger.Debug("reward taken", "card", cardID)
			e.closeRewards()
			return true
		}
	}
	return false
}

// SkipReward declines the offered cards.
func (e *Engine) SkipReward() bool {
	if e.Mode != ModeReward {
		return false
	}
	e.closeRewards()
	return true
}

func (e *Engine) closeRewards() {
	e.Rewards = nil
	e.Mode = e.resume
}

// AdvanceAct starts the next act once the current one is cleared.
func (e *Engine) AdvanceAct() bool {
	if e.Mode != ModeActCleared {
		return false
	}
	next, ok := e.nextAct()
	if !ok {
		return false
	}
	e.enterAct(next.ID)
	return true
}

func (e *Engine) nextAct() (types.Act, bool) {
	for _, a := range e.Defs.Acts {
		if a.ID > e.Act {
			return a, true
		}
	}
	return types.Act{}, false
}

func (e *Engine) enterAct(id int) {
	act, ok := e.Defs.Act(id)
	if !ok {
		e.Logger.Error("unknown act", "act", id)
		e.Mode = ModeWon
		return
	}
	e.Act = act.ID
	e.Map = mapgen.Generate(act, e.Config.Map, e.RNG)
	e.Battle = nil
	e.Mode = ModeMap
	e.Logger.Info("map generated", "act", act.ID, "name", act.Name, "nodes", len(e.Map.Nodes))
}

// Buy purchases a shop item with the run's gold.
func (e *Engine) Buy(itemID string) bool {
	if e.Mode != ModeShop {
		return false
	}
	ok := e.Store.Buy(itemID, e.Gold, e.Spend)
	if ok {
		e.Logger.Info("card bought", "item", itemID, "gold", e.Gold)
	}
	return ok
}

// Sell sells one copy of a deck card.
func (e *Engine) Sell(cardID string) bool {
	if e.Mode != ModeShop {
		return false
	}
	ok := e.Store.Sell(cardID, e.AddGold)
	if ok {
		e.Logger.Info("card sold", "card", cardID, "gold", e.Gold)
	}
	return ok
}

// Refresh pays to restock the shop.
func (e *Engine) Refresh() bool {
	if e.Mode != ModeShop {
		return false
	}
	generate := func() []types.ShopItem {
		return e.shops.Generate(e.RNG, e.Act, e.Config.Shop.ItemsPerShop, e.Store.Collection().Deck)
	}
	return e.Store.Refresh(generate, e.Gold, e.Spend)
}

// LeaveShop closes the shop and completes its node.
func (e *Engine) LeaveShop() bool {
	if e.Mode != ModeShop {
		return false
	}
	e.Store.Close()
	e.CompleteNode()
	return true
}

// Spend takes gold from the wallet if there is enough.
func (e *Engine) Spend(amount int) bool {
	if amount > e.Gold {
		return false
	}
	e.Gold -= amount
	return true
}

// AddGold puts gold in the wallet.
func (e *Engine) AddGold(amount int) {
	e.Gold += amount
}

package engine

import (
	"reflect"
	"strings"
	"testing"

	"github.com/nathoo/runeblade/config"
	"github.com/nathoo/runeblade/engine/mapgen"
	"github.com/nathoo/runeblade/engine/state"
	"github.com/nathoo/runeblade/types"
)

// testDefs builds a small game: a strong starter card so battles end fast,
// enough other cards to stock a shop, three weak enemies and two short acts.
func testDefs() *state.Defs {
	cards := []types.Card{
		{ID: "smite", Name: "Smite", Type: types.CardAttack, Rarity: types.RarityCommon, Cost: 1, Value: 20,
			Description: "Deal 20 damage.", Effect: types.CardEffect{Kind: types.EffectDamage, Amount: 20}},
		{ID: "guard", Name: "Guard", Type: types.CardDefense, Rarity: types.RarityCommon, Cost: 1, Value: 5,
			Description: "Gain 5 armor.", Effect: types.CardEffect{Kind: types.EffectArmor, Amount: 5}},
		{ID: "venom", Name: "Venom", Type: types.CardDebuff, Rarity: types.RarityUncommon, Cost: 1, Value: 3,
			Description: "Poison 3 for 3 turns.", Effect: types.CardEffect{Kind: types.EffectDebuff, Status: types.StatusPoison, Amount: 3, Duration: 3}},
		{ID: "mend", Name: "Mend", Type: types.CardMagic, Rarity: types.RarityCommon, Cost: 1, Value: 8,
			Description: "Heal 8.", Effect: types.CardEffect{Kind: types.EffectHeal, Amount: 8}},
		{ID: "fireball", Name: "Fireball", Type: types.CardMagic, Rarity: types.RarityUncommon, Cost: 2, Value: 15,
			Description: "Deal 15 damage.", Effect: types.CardEffect{Kind: types.EffectDamage, Amount: 15}},
		{ID: "bulwark", Name: "Bulwark", Type: types.CardDefense, Rarity: types.RarityRare, Cost: 2, Value: 12,
			Description: "Gain 12 armor.", Effect: types.CardEffect{Kind: types.EffectArmor, Amount: 12}},
		{ID: "rage", Name: "Rage", Type: types.CardBuff, Rarity: types.RarityRare, Cost: 1, Value: 3,
			Description: "Gain 3 strength for 3 turns.", Effect: types.CardEffect{Kind: types.EffectBuff, Status: types.StatusStrength, Amount: 3, Duration: 3}},
		{ID: "meteor", Name: "Meteor", Type: types.CardMagic, Rarity: types.RarityEpic, Cost: 3, Value: 30,
			Description: "Deal 30 damage.", Effect: types.CardEffect{Kind: types.EffectDamage, Amount: 30}},
	}
	defs := &state.Defs{
		Title:   "Test Run",
		Cards:   map[string]types.Card{},
		Enemies: map[string]types.Enemy{},
		Tiers:   map[string][]string{"tier1": {"imp"}, "elite": {"brute"}, "boss": {"tyrant"}},
		Player:  state.PlayerDef{MaxHP: 80, MaxMana: 3},
		StarterDeck: []string{
			"smite", "smite", "smite", "smite", "smite", "guard", "guard", "guard",
		},
	}
	for _, c := range cards {
		defs.Cards[c.ID] = c
		defs.CardOrder = append(defs.CardOrder, c.ID)
	}
	weak := []types.EnemyAction{
		{Type: types.ActionAttack, Value: 2, Description: "Scratch"},
		{Type: types.ActionDefend, Value: 2, Description: "Cower"},
	}
	defs.Enemies["imp"] = types.Enemy{ID: "imp", Name: "Imp", MaxHP: 20, Behavior: types.BehaviorAggressive, AttackPower: 2, Actions: weak}
	defs.Enemies["brute"] = types.Enemy{ID: "brute", Name: "Brute", MaxHP: 35, Behavior: types.BehaviorBalanced, AttackPower: 3, Actions: weak}
	defs.Enemies["tyrant"] = types.Enemy{ID: "tyrant", Name: "Tyrant", MaxHP: 50, Behavior: types.BehaviorDefensive, AttackPower: 3, Actions: weak}
	defs.Acts = []types.Act{
		{ID: 1, Name: "Test Woods", EnemyPool: []string{"imp"}, ElitePool: []string{"brute"}, BossID: "tyrant",
			NodeCount: 5, NodesPerRow: types.Range{Min: 2, Max: 3}},
		{ID: 2, Name: "Test Keep", EnemyPool: []string{"imp", "brute"}, ElitePool: []string{"brute"}, BossID: "tyrant",
			NodeCount: 5, NodesPerRow: types.Range{Min: 2, Max: 3}},
	}
	return defs
}

func newTestEngine(seed int64) *Engine {
	return New(testDefs(), config.Default(), seed, WithClock(fixedNow))
}

func outputContains(output []string, substr string) bool {
	for _, line := range output {
		if strings.Contains(line, substr) {
			return true
		}
	}
	return false
}

func hasEvent(r types.Result, typ string) bool {
	for _, ev := range r.Events {
		if ev.Type == typ {
			return true
		}
	}
	return false
}

// leaveStart completes the start node so row 1 becomes available.
func leaveStart(t *testing.T, e *Engine) {
	t.Helper()
	start := mapgen.AvailableNodes(e.Map)[0]
	if !e.SelectNode(start.ID) {
		t.Fatal("could not leave the start node")
	}
}

// forceNext turns the first available node into the given encounter and
// returns its ID.
func forceNext(t *testing.T, e *Engine, typ types.EncounterType, reward *types.Reward) string {
	t.Helper()
	for i, n := range e.Map.Nodes {
		if n.Status == types.NodeAvailable {
			e.Map.Nodes[i].Type = typ
			e.Map.Nodes[i].Reward = reward
			if typ == types.EncounterEnemy {
				e.Map.Nodes[i].EnemyID = "imp"
			}
			return n.ID
		}
	}
	t.Fatal("no available node")
	return ""
}

// autoPlay drives the run through the API until it ends or the step budget
// runs out: first path, first playable card, first reward.
func autoPlay(t *testing.T, e *Engine, budget int) {
	t.Helper()
	for i := 0; i < budget && !e.Mode.Over(); i++ {
		switch e.Mode {
		case ModeMap:
			e.SelectNode(mapgen.AvailableNodes(e.Map)[0].ID)
		case ModeBattle:
			played := false
			for _, c := range e.Battle.Player.Hand {
				if c.Cost <= e.Battle.Player.Mana {
					played = e.PlayCard(c.InstanceID)
					break
				}
			}
			if !played {
				e.EndTurn()
			}
		case ModeReward:
			e.TakeReward(e.Rewards[0].ID)
		case ModeShop:
			e.LeaveShop()
		case ModeActCleared:
			e.AdvanceAct()
		}
	}
}

func TestNew_StartsOnFirstActMap(t *testing.T) {
	e := newTestEngine(1)
	if e.Mode != ModeMap || e.Act != 1 {
		t.Fatalf("mode=%s act=%d, want map on act 1", e.Mode, e.Act)
	}
	if err := mapgen.Validate(e.Map); err != nil {
		t.Fatalf("invalid map: %v", err)
	}
	if e.HP != 80 || e.MaxHP != 80 || e.Gold != 0 {
		t.Errorf("hp=%d/%d gold=%d", e.HP, e.MaxHP, e.Gold)
	}
	avail := mapgen.AvailableNodes(e.Map)
	if len(avail) != 1 || avail[0].Type != types.EncounterStart {
		t.Errorf("available = %+v, want only the start node", avail)
	}
	if got := len(e.Store.Collection().Deck); got != 8 {
		t.Errorf("deck size = %d, want 8", got)
	}
}

func TestStep_EmptyInput(t *testing.T) {
	e := newTestEngine(1)
	r := e.Step("   ")
	if !outputContains(r.Output, "What do you want to do?") {
		t.Errorf("output = %v", r.Output)
	}
}

func TestStep_CommandLogged(t *testing.T) {
	e := newTestEngine(1)
	e.Step("map")
	e.Step("go 1")
	if !reflect.DeepEqual(e.CommandLog, []string{"map", "go 1"}) {
		t.Errorf("command log = %v", e.CommandLog)
	}
}

func TestStep_VerbNotAllowedOnScreen(t *testing.T) {
	e := newTestEngine(1)
	r := e.Step("play smite")
	if !outputContains(r.Output, "You can't do that now") {
		t.Errorf("output = %v", r.Output)
	}
	if !outputContains(r.Output, "go, map") {
		t.Errorf("expected allowed verbs in %v", r.Output)
	}
}

func TestStep_GoStartOpensRowOne(t *testing.T) {
	e := newTestEngine(1)
	r := e.Step("go start")
	if !hasEvent(r, "node_entered") {
		t.Errorf("events = %+v", r.Events)
	}
	if !outputContains(r.Output, "Paths ahead:") {
		t.Errorf("output = %v", r.Output)
	}
	for _, n := range mapgen.AvailableNodes(e.Map) {
		if n.Row != 1 {
			t.Errorf("available node on row %d", n.Row)
		}
	}
	if len(e.Map.CompletedNodeIDs) != 1 {
		t.Errorf("completed = %v", e.Map.CompletedNodeIDs)
	}
}

func TestStep_GoUnknownNode(t *testing.T) {
	e := newTestEngine(1)
	r := e.Step("go 9")
	if !outputContains(r.Output, "there is no") {
		t.Errorf("output = %v", r.Output)
	}
	if e.Map.CurrentNodeID != "" || len(e.Map.CompletedNodeIDs) != 0 {
		t.Error("map changed")
	}
}

func TestSelectNode_OnlyAvailable(t *testing.T) {
	e := newTestEngine(2)
	boss := e.Map.Nodes[len(e.Map.Nodes)-1]
	if e.SelectNode(boss.ID) {
		t.Error("selected a locked node")
	}
	if e.SelectNode("nope") {
		t.Error("selected an unknown node")
	}
}

func TestStep_BattleFlow(t *testing.T) {
	e := newTestEngine(3)
	leaveStart(t, e)
	forceNext(t, e, types.EncounterEnemy, &types.Reward{Gold: 15, CardChoices: 3})

	r := e.Step("go 1")
	if e.Mode != ModeBattle {
		t.Fatalf("mode = %s, want battle", e.Mode)
	}
	if !hasEvent(r, "battle_started") || !outputContains(r.Output, "Battle started!") {
		t.Errorf("start output = %v", r.Output)
	}
	if len(e.Battle.Player.Hand) != 5 {
		t.Errorf("hand = %d cards", len(e.Battle.Player.Hand))
	}

	// Imp has 20 hp and smite deals 20, but the opening hand may hold guards.
	for i := 0; i < 20 && e.Mode == ModeBattle; i++ {
		r = e.Step("play smite")
		if outputContains(r.Output, "there is no") || outputContains(r.Output, "Not enough mana!") {
			r = e.Step("end turn")
		}
	}
	if e.Mode != ModeReward {
		t.Fatalf("mode = %s, want reward", e.Mode)
	}
	if !hasEvent(r, "battle_won") {
		t.Errorf("events = %+v", r.Events)
	}
	if e.Gold != 15 {
		t.Errorf("gold = %d, want 15", e.Gold)
	}
	if len(e.Rewards) != 3 {
		t.Fatalf("rewards = %d, want 3", len(e.Rewards))
	}
	if e.Store.Collection().Unlocked[0].TimesUsed == 0 {
		t.Error("card use not recorded")
	}

	want := e.Rewards[1].ID
	r = e.Step("take 2")
	if !hasEvent(r, "reward_taken") {
		t.Errorf("events = %+v", r.Events)
	}
	if e.Mode != ModeMap {
		t.Errorf("mode = %s, want map", e.Mode)
	}
	deck := e.Store.Collection().Deck
	if deck[len(deck)-1] != want {
		t.Errorf("deck = %v, want %s appended", deck, want)
	}
}

func TestStep_SkipReward(t *testing.T) {
	e := newTestEngine(4)
	leaveStart(t, e)
	forceNext(t, e, types.EncounterTreasure, &types.Reward{Gold: 40, CardChoices: 1})

	e.Step("go 1")
	if e.Mode != ModeReward || e.Gold != 40 || len(e.Rewards) != 1 {
		t.Fatalf("mode=%s gold=%d rewards=%d", e.Mode, e.Gold, len(e.Rewards))
	}
	r := e.Step("skip")
	if !hasEvent(r, "reward_skipped") || e.Mode != ModeMap {
		t.Errorf("mode=%s events=%+v", e.Mode, r.Events)
	}
	if len(e.Store.Collection().Deck) != 8 {
		t.Error("skipping changed the deck")
	}
}

func TestStep_RestHeals(t *testing.T) {
	e := newTestEngine(5)
	leaveStart(t, e)
	forceNext(t, e, types.EncounterRest, &types.Reward{Healing: 30})
	e.HP = 50

	r := e.Step("go rest")
	if !outputContains(r.Output, "You rest") {
		t.Errorf("output = %v", r.Output)
	}
	if e.HP != 74 {
		t.Errorf("hp = %d, want 74", e.HP)
	}

	e = newTestEngine(5)
	leaveStart(t, e)
	forceNext(t, e, types.EncounterRest, nil)
	e.HP = 75
	e.Step("go 1")
	if e.HP != 80 {
		t.Errorf("hp = %d, want capped at 80", e.HP)
	}
}

func TestStep_Shop(t *testing.T) {
	e := newTestEngine(6)
	leaveStart(t, e)
	forceNext(t, e, types.EncounterShop, nil)
	e.Gold = 1000

	e.Step("go shop")
	if e.Mode != ModeShop {
		t.Fatalf("mode = %s, want shop", e.Mode)
	}
	listing, _ := e.Store.Shop()
	if len(listing.Items) != 5 {
		t.Fatalf("items = %d, want 5", len(listing.Items))
	}
	for _, it := range listing.Items {
		if it.Card.ID == "smite" || it.Card.ID == "guard" {
			t.Errorf("deck card %s offered", it.Card.ID)
		}
	}

	first := listing.Items[0]
	r := e.Step("buy 1")
	if !hasEvent(r, "card_bought") || e.Gold != 1000-first.Price {
		t.Errorf("gold=%d output=%v", e.Gold, r.Output)
	}
	if !e.Store.IsUnlocked(first.Card.ID) || len(e.Store.Collection().Deck) != 9 {
		t.Error("purchase not added to the collection")
	}
	r = e.Step("buy 1")
	if !outputContains(r.Output, "already been sold") {
		t.Errorf("output = %v", r.Output)
	}

	gold := e.Gold
	r = e.Step("refresh")
	if !hasEvent(r, "shop_refreshed") || e.Gold != gold-50 {
		t.Errorf("gold=%d output=%v", e.Gold, r.Output)
	}

	gold = e.Gold
	r = e.Step("sell smite")
	if !hasEvent(r, "card_sold") || e.Gold != gold+25 {
		t.Errorf("gold=%d output=%v", e.Gold, r.Output)
	}
	r = e.Step("sell smite")
	if !outputContains(r.Output, "can't shrink") {
		t.Errorf("output = %v", r.Output)
	}

	e.Step("leave")
	if e.Mode != ModeMap {
		t.Errorf("mode = %s, want map", e.Mode)
	}
	if _, open := e.Store.Shop(); open {
		t.Error("shop still open")
	}
}

func TestStep_ShopCannotAfford(t *testing.T) {
	e := newTestEngine(7)
	leaveStart(t, e)
	forceNext(t, e, types.EncounterShop, nil)
	e.Step("go 1")

	r := e.Step("buy 1")
	if !outputContains(r.Output, "can't afford") {
		t.Errorf("output = %v", r.Output)
	}
	r = e.Step("refresh")
	if !outputContains(r.Output, "costs 50 gold") {
		t.Errorf("output = %v", r.Output)
	}
}

func TestStep_Defeat(t *testing.T) {
	e := newTestEngine(8)
	leaveStart(t, e)
	forceNext(t, e, types.EncounterEnemy, &types.Reward{Gold: 10})
	e.HP = 1
	e.Step("go 1")

	var r types.Result
	for i := 0; i < 50 && e.Mode == ModeBattle; i++ {
		r = e.Step("end")
	}
	if e.Mode != ModeLost {
		t.Fatalf("mode = %s, want lost", e.Mode)
	}
	if !hasEvent(r, "battle_lost") || !outputContains(r.Output, "You were defeated!") {
		t.Errorf("output = %v", r.Output)
	}
	if e.Gold != 0 {
		t.Errorf("gold = %d, defeat paid out", e.Gold)
	}

	n := len(e.CommandLog)
	r = e.Step("map")
	if !outputContains(r.Output, "run is over") {
		t.Errorf("output = %v", r.Output)
	}
	if len(e.CommandLog) != n {
		t.Error("command logged after the run ended")
	}
}

func TestRun_CompletesBothActs(t *testing.T) {
	e := newTestEngine(9)
	autoPlay(t, e, 2000)
	if e.Mode != ModeWon {
		t.Fatalf("mode = %s on act %d, want won", e.Mode, e.Act)
	}
	if e.Act != 2 {
		t.Errorf("act = %d, want 2", e.Act)
	}
	if e.MaxHP != 90 {
		t.Errorf("max hp = %d, want 90 after two bosses", e.MaxHP)
	}
	if e.Gold <= 0 {
		t.Errorf("gold = %d", e.Gold)
	}
	if !e.Map.BossDefeated {
		t.Error("final boss not marked defeated")
	}
}

func TestAdvanceAct_OnlyWhenCleared(t *testing.T) {
	e := newTestEngine(10)
	if e.AdvanceAct() {
		t.Error("advanced from the map")
	}
	r := e.Step("advance")
	if !outputContains(r.Output, "You can't do that now") {
		t.Errorf("output = %v", r.Output)
	}
}

func TestStep_Deterministic(t *testing.T) {
	script := []string{"go 1", "go 1", "play 1", "play 1", "end", "take 1", "go 2", "leave", "go 1"}
	a, b := newTestEngine(11), newTestEngine(11)
	for _, cmd := range script {
		ra, rb := a.Step(cmd), b.Step(cmd)
		if !reflect.DeepEqual(ra, rb) {
			t.Fatalf("%q: results differ\n%v\n%v", cmd, ra.Output, rb.Output)
		}
	}
	if !reflect.DeepEqual(a.Map, b.Map) || a.Gold != b.Gold || a.HP != b.HP || a.Mode != b.Mode {
		t.Error("runs diverged")
	}
	if a.RNG.Position() != b.RNG.Position() {
		t.Errorf("rng positions %d vs %d", a.RNG.Position(), b.RNG.Position())
	}
}

func TestStep_InfoCommandsAnywhere(t *testing.T) {
	e := newTestEngine(12)
	if r := e.Step("status"); !outputContains(r.Output, "HP 80/80 | Gold 0 | Act 1 | Deck 8 cards") {
		t.Errorf("status = %v", r.Output)
	}
	if r := e.Step("deck"); !outputContains(r.Output, "Deck (8 cards):") || !outputContains(r.Output, "Smite") {
		t.Errorf("deck = %v", r.Output)
	}
	if r := e.Step("x meteor"); !outputContains(r.Output, "Meteor [epic magic, cost 3]: Deal 30 damage.") {
		t.Errorf("examine = %v", r.Output)
	}
	if r := e.Step("collection"); !outputContains(r.Output, "Collection (2 cards):") {
		t.Errorf("collection = %v", r.Output)
	}
	if r := e.Step("help"); !outputContains(r.Output, "Commands here: go, map") {
		t.Errorf("help = %v", r.Output)
	}
	if r := e.Step("look"); !outputContains(r.Output, "Act 1: Test Woods") {
		t.Errorf("look = %v", r.Output)
	}
}

func TestWallet(t *testing.T) {
	e := newTestEngine(13)
	e.AddGold(30)
	if e.Spend(40) {
		t.Error("spent more than the wallet holds")
	}
	if !e.Spend(30) || e.Gold != 0 {
		t.Errorf("gold = %d", e.Gold)
	}
}

func TestCompleteNode_BossBonusAndActCleared(t *testing.T) {
	e := newTestEngine(14)
	for i, n := range e.Map.Nodes {
		if n.Type == types.EncounterBoss {
			e.Map.Nodes[i].Status = types.NodeAvailable
		} else if n.Status == types.NodeAvailable {
			e.Map.Nodes[i].Status = types.NodeLocked
		}
	}
	var boss types.MapNode
	for _, n := range e.Map.Nodes {
		if n.Type == types.EncounterBoss {
			boss = n
		}
	}
	e.Map = mapgen.MoveToNode(e.Map, boss.ID)
	e.HP = 60
	e.CompleteNode()

	if e.Mode != ModeActCleared {
		t.Fatalf("mode = %s, want act_cleared", e.Mode)
	}
	if e.MaxHP != 85 || e.HP != 65 {
		t.Errorf("hp = %d/%d, want 65/85", e.HP, e.MaxHP)
	}
	if e.Gold != boss.Reward.Gold {
		t.Errorf("gold = %d, want %d", e.Gold, boss.Reward.Gold)
	}

	if !e.AdvanceAct() || e.Act != 2 || e.Mode != ModeMap {
		t.Errorf("act=%d mode=%s after advancing", e.Act, e.Mode)
	}
	if err := mapgen.Validate(e.Map); err != nil {
		t.Errorf("act 2 map: %v", err)
	}
}

// Package types defines the shared data structures for the Runeblade engine.
// This package contains only type definitions, no logic and no methods.
package types

import "time"

// Intent is the parsed representation of a player command.
type Intent struct {
	Verb   string
	Object string // optional
	Target string // optional
}

// Event is emitted after a command has been applied.
type Event struct {
	Type string
	Data map[string]any
}

// Result is the output of a single game step.
type Result struct {
	Events []Event
	Output []string
}

// Turn identifies whose phase a battle is in.
type Turn string

const (
	TurnPlayer Turn = "player"
	TurnEnemy  Turn = "enemy"
)

// CardType is the broad category of a card.
type CardType string

const (
	CardAttack  CardType = "attack"
	CardDefense CardType = "defense"
	CardMagic   CardType = "magic"
	CardBuff    CardType = "buff"
	CardDebuff  CardType = "debuff"
)

// Rarity of a card, from most to least common.
type Rarity string

const (
	RarityCommon    Rarity = "common"
	RarityUncommon  Rarity = "uncommon"
	RarityRare      Rarity = "rare"
	RarityEpic      Rarity = "epic"
	RarityLegendary Rarity = "legendary"
)

// Rarities lists every rarity in ascending order.
var Rarities = []Rarity{RarityCommon, RarityUncommon, RarityRare, RarityEpic, RarityLegendary}

// EffectKind tags a card effect.
type EffectKind string

const (
	EffectDamage      EffectKind = "damage"       // Amount per hit, Hits times, through armor
	EffectPierce      EffectKind = "pierce"       // Amount straight to hp
	EffectArmor       EffectKind = "armor"        // Amount armor to the player
	EffectArmorDamage EffectKind = "armor_damage" // Armor to the player, then one Amount hit
	EffectHeal        EffectKind = "heal"         // Amount healing to the player
	EffectBuff        EffectKind = "buff"         // Status on the player
	EffectDebuff      EffectKind = "debuff"       // Status on the enemy
)

// CardEffect is the data form of what a card does when played.
type CardEffect struct {
	Kind     EffectKind
	Amount   int
	Hits     int
	Armor    int
	Status   StatusType
	Duration int
}

// Card is an immutable card template.
type Card struct {
	ID          string
	Name        string
	Type        CardType
	Rarity      Rarity
	Cost        int
	Value       int
	Description string
	Effect      CardEffect
}

// CardInstance is one copy of a card in a pile.
type CardInstance struct {
	Card
	InstanceID string
}

// StatusType names a status effect.
type StatusType string

const (
	StatusPoison       StatusType = "poison"
	StatusBleed        StatusType = "bleed"
	StatusBurn         StatusType = "burn"
	StatusWeakness     StatusType = "weakness"
	StatusStrength     StatusType = "strength"
	StatusRegeneration StatusType = "regeneration"
	StatusVulnerable   StatusType = "vulnerable"
	StatusShield       StatusType = "shield"
)

// StatusEffect is a timed modifier on a combatant.
type StatusEffect struct {
	Type        StatusType
	Value       int
	Duration    int
	Description string
}

// Player is the player's combat state.
type Player struct {
	HP            int
	MaxHP         int
	Armor         int
	Mana          int
	MaxMana       int
	Deck          []CardInstance
	Hand          []CardInstance
	DiscardPile   []CardInstance
	StatusEffects []StatusEffect
}

// Behavior is an enemy's decision profile.
type Behavior string

const (
	BehaviorAggressive Behavior = "aggressive"
	BehaviorDefensive  Behavior = "defensive"
	BehaviorBalanced   Behavior = "balanced"
	BehaviorRandom     Behavior = "random"
)

// ActionType categorizes an enemy action.
type ActionType string

const (
	ActionAttack ActionType = "attack"
	ActionDefend ActionType = "defend"
	ActionBuff   ActionType = "buff"
	ActionDebuff ActionType = "debuff"
)

// EnemyAction is one move an enemy can make.
type EnemyAction struct {
	Type        ActionType
	Value       int
	Description string
}

// Enemy is an enemy's combat state. Templates in the catalog use the same shape.
type Enemy struct {
	ID            string
	Name          string
	HP            int
	MaxHP         int
	Armor         int
	Behavior      Behavior
	AttackPower   int
	StatusEffects []StatusEffect
	Intent        *EnemyAction
	Actions       []EnemyAction
}

// LogType tags a battle log entry.
type LogType string

const (
	LogAction LogType = "action"
	LogDamage LogType = "damage"
	LogHeal   LogType = "heal"
	LogStatus LogType = "status"
	LogSystem LogType = "system"
)

// LogEntry is one line of the battle transcript.
type LogEntry struct {
	ID        string
	Message   string
	Type      LogType
	Timestamp time.Time
}

// GameConfig is fixed for the lifetime of one battle.
type GameConfig struct {
	Difficulty        string  `yaml:"difficulty"`
	DamageMultiplier  float64 `yaml:"damage_multiplier"`
	HealingMultiplier float64 `yaml:"healing_multiplier"`
	StartingHandSize  int     `yaml:"starting_hand_size"`
	CardsPerTurn      int     `yaml:"cards_per_turn"`
}

// BattleState is the complete state of one battle.
type BattleState struct {
	Player    Player
	Enemy     *Enemy
	Turn      Turn
	IsOver    bool
	IsVictory bool
	Round     int
	Log       []LogEntry
	Config    GameConfig
}

// EncounterType is the kind of a map node.
type EncounterType string

const (
	EncounterStart    EncounterType = "start"
	EncounterEnemy    EncounterType = "enemy"
	EncounterElite    EncounterType = "elite"
	EncounterBoss     EncounterType = "boss"
	EncounterRest     EncounterType = "rest"
	EncounterShop     EncounterType = "shop"
	EncounterEvent    EncounterType = "event"
	EncounterTreasure EncounterType = "treasure"
)

// NodeStatus is the progress state of a map node.
type NodeStatus string

const (
	NodeLocked    NodeStatus = "locked"
	NodeAvailable NodeStatus = "available"
	NodeCurrent   NodeStatus = "current"
	NodeCompleted NodeStatus = "completed"
)

// Reward is what a node pays out when completed.
type Reward struct {
	Gold        int
	CardChoices int
	Healing     int // percent of max hp
	MaxHPBonus  int
}

// MapNode is one encounter on the act map.
type MapNode struct {
	ID          string
	Type        EncounterType
	Row         int
	Column      int
	X           float64
	Y           float64
	Connections []string
	Status      NodeStatus
	EnemyID     string
	Reward      *Reward
}

// Path is a directed edge between two map nodes.
type Path struct {
	From string
	To   string
}

// GameMap is the encounter graph of one act.
type GameMap struct {
	ID               string
	Name             string
	Act              int
	Nodes            []MapNode
	Paths            []Path
	CurrentNodeID    string
	CompletedNodeIDs []string
	BossDefeated     bool
}

// Range is an inclusive integer interval.
type Range struct {
	Min int `yaml:"min"`
	Max int `yaml:"max"`
}

// Act describes one chapter of a run.
type Act struct {
	ID          int
	Name        string
	Description string
	EnemyPool   []string
	ElitePool   []string
	BossID      string
	NodeCount   int
	NodesPerRow Range
}

// MapConfig tunes map generation.
type MapConfig struct {
	Rows             int                   `yaml:"rows"`
	NodesPerRow      Range                 `yaml:"nodes_per_row"`
	EncounterWeights map[EncounterType]int `yaml:"encounter_weights"`
	EliteMinRow      int                   `yaml:"elite_min_row"`
	RestMinRow       int                   `yaml:"rest_min_row"`
	GuaranteedShop   bool                  `yaml:"guaranteed_shop"`
}

// ShopItem is a card offered for sale.
type ShopItem struct {
	ID            string
	Card          Card
	Price         int
	OriginalPrice int
	Discount      int
	Sold          bool
}

// ShopState is one open shop listing.
type ShopState struct {
	Items        []ShopItem
	RefreshCost  int
	RefreshCount int
	MaxRefreshes int
}

// UnlockedCard records a card the player owns.
type UnlockedCard struct {
	CardID     string
	UnlockedAt time.Time
	TimesUsed  int
}

// Collection is the player's owned cards and active deck list.
type Collection struct {
	Unlocked    []UnlockedCard
	Deck        []string
	MaxDeckSize int
	MinDeckSize int
}

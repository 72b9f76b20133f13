// Package mapgen builds the per-act encounter graph and moves the player
// through it.
package mapgen

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/nathoo/runeblade/engine/rng"
	"github.com/nathoo/runeblade/types"
)

// MaxLinkDistance is how far apart, in percent of map width, two nodes in
// adjacent rows may be and still be linked directly.
const MaxLinkDistance = 40.0

// DefaultConfig returns the standard generation settings. Rows and
// NodesPerRow are left zero so the act decides them.
func DefaultConfig() types.MapConfig {
	return types.MapConfig{
		EncounterWeights: map[types.EncounterType]int{
			types.EncounterEnemy:    50,
			types.EncounterElite:    10,
			types.EncounterRest:     12,
			types.EncounterShop:     8,
			types.EncounterEvent:    15,
			types.EncounterTreasure: 5,
		},
		EliteMinRow:    2,
		RestMinRow:     2,
		GuaranteedShop: true,
	}
}

// Generate builds the map for one act. Row 0 holds the start node, the last
// row the boss. Every node but the start has an incoming edge and every node
// but the boss an outgoing one.
func Generate(act types.Act, cfg types.MapConfig, r *rng.RNG) types.GameMap {
	rows := cfg.Rows
	if rows == 0 {
		rows = act.NodeCount
	}
	rows = max(rows, 3)
	perRow := cfg.NodesPerRow
	if perRow.Max == 0 {
		perRow = act.NodesPerRow
	}
	perRow.Min = max(perRow.Min, 1)
	perRow.Max = max(perRow.Max, perRow.Min)

	var nodes []types.MapNode
	var paths []types.Path
	prev := []int{}

	for row := 0; row < rows; row++ {
		var count int
		switch row {
		case 0, rows - 1:
			count = 1
		case rows - 2:
			count = r.IntRange(2, 3)
		default:
			count = r.IntRange(perRow.Min, perRow.Max)
		}

		cur := make([]int, 0, count)
		for col := 0; col < count; col++ {
			typ := encounterType(row, rows, cfg, r)
			n := types.MapNode{
				ID:          r.NewID(),
				Type:        typ,
				Row:         row,
				Column:      col,
				X:           nodeX(col, count),
				Y:           nodeY(row, rows),
				Connections: []string{},
				Status:      types.NodeLocked,
				EnemyID:     enemyFor(typ, act, r),
				Reward:      rewardFor(typ, row, rows, r),
			}
			if row == 0 {
				n.Status = types.NodeAvailable
			}
			nodes = append(nodes, n)
			cur = append(cur, len(nodes)-1)
		}

		if row > 0 {
			paths = connectRows(nodes, prev, cur, paths, r)
		}
		prev = cur
	}

	if cfg.GuaranteedShop {
		ensureShop(nodes, rows, r)
	}

	return types.GameMap{
		ID:               r.NewID(),
		Name:             act.Name,
		Act:              act.ID,
		Nodes:            nodes,
		Paths:            paths,
		CompletedNodeIDs: []string{},
	}
}

func encounterType(row, rows int, cfg types.MapConfig, r *rng.RNG) types.EncounterType {
	switch row {
	case 0:
		return types.EncounterStart
	case rows - 1:
		return types.EncounterBoss
	}

	w := cfg.EncounterWeights
	kinds := []types.EncounterType{types.EncounterEnemy, types.EncounterEvent, types.EncounterTreasure}
	if row >= cfg.EliteMinRow {
		kinds = append(kinds, types.EncounterElite)
	}
	if row >= cfg.RestMinRow {
		kinds = append(kinds, types.EncounterRest)
	}
	kinds = append(kinds, types.EncounterShop)

	weights := make([]int, len(kinds))
	for i, k := range kinds {
		weights[i] = w[k]
	}
	return kinds[r.WeightedSelect(weights)]
}

func enemyFor(typ types.EncounterType, act types.Act, r *rng.RNG) string {
	switch typ {
	case types.EncounterEnemy:
		if len(act.EnemyPool) > 0 {
			return rng.Pick(r, act.EnemyPool)
		}
	case types.EncounterElite:
		if len(act.ElitePool) > 0 {
			return rng.Pick(r, act.ElitePool)
		}
	case types.EncounterBoss:
		return act.BossID
	}
	return ""
}

func rewardFor(typ types.EncounterType, row, rows int, r *rng.RNG) *types.Reward {
	progress := float64(row) / float64(rows)
	switch typ {
	case types.EncounterEnemy:
		return &types.Reward{Gold: r.IntRange(10, 20) + int(math.Floor(progress*10)), CardChoices: 3}
	case types.EncounterElite:
		return &types.Reward{Gold: r.IntRange(25, 40) + int(math.Floor(progress*15)), CardChoices: 3}
	case types.EncounterBoss:
		return &types.Reward{Gold: r.IntRange(50, 80), CardChoices: 3, MaxHPBonus: 5}
	case types.EncounterTreasure:
		gold := r.IntRange(30, 50)
		choices := 0
		if r.Chance(0.5) {
			choices = 1
		}
		return &types.Reward{Gold: gold, CardChoices: choices}
	case types.EncounterRest:
		return &types.Reward{Healing: 30}
	}
	return nil
}

func nodeX(col, count int) float64 {
	if count == 1 {
		return 50
	}
	return 10 + float64(col)*80/float64(count-1)
}

func nodeY(row, rows int) float64 {
	return 90 - float64(row)/float64(rows-1)*80
}

// connectRows links the previous row to the current one. Each previous node
// links to one or two of its nearest nodes within MaxLinkDistance, or to the
// single nearest node when none qualify. A second pass gives every current
// node without an incoming edge one from its nearest previous node.
func connectRows(nodes []types.MapNode, prev, cur []int, paths []types.Path, r *rng.RNG) []types.Path {
	link := func(from, to int) {
		for _, id := range nodes[from].Connections {
			if id == nodes[to].ID {
				return
			}
		}
		nodes[from].Connections = append(nodes[from].Connections, nodes[to].ID)
		paths = append(paths, types.Path{From: nodes[from].ID, To: nodes[to].ID})
	}

	for _, p := range prev {
		near := make([]int, 0, len(cur))
		for _, c := range cur {
			if math.Abs(nodes[c].X-nodes[p].X) <= MaxLinkDistance {
				near = append(near, c)
			}
		}
		if len(near) == 0 {
			link(p, nearest(nodes, cur, nodes[p].X))
			continue
		}
		sort.SliceStable(near, func(i, j int) bool {
			return math.Abs(nodes[near[i]].X-nodes[p].X) < math.Abs(nodes[near[j]].X-nodes[p].X)
		})
		n := min(len(near), r.IntRange(1, 2))
		for _, c := range near[:n] {
			link(p, c)
		}
	}

	for _, c := range cur {
		if !hasIncoming(nodes, prev, nodes[c].ID) {
			link(nearest(nodes, prev, nodes[c].X), c)
		}
	}
	return paths
}

// nearest returns the index in candidates closest to x; ties go to the first.
func nearest(nodes []types.MapNode, candidates []int, x float64) int {
	best := candidates[0]
	for _, c := range candidates[1:] {
		if math.Abs(nodes[c].X-x) < math.Abs(nodes[best].X-x) {
			best = c
		}
	}
	return best
}

func hasIncoming(nodes []types.MapNode, from []int, id string) bool {
	for _, p := range from {
		for _, c := range nodes[p].Connections {
			if c == id {
				return true
			}
		}
	}
	return false
}

// ensureShop converts a middle-row enemy node into a shop when the map has
// none. Without an enemy there, the closest interior battle, event or
// treasure node is used instead.
func ensureShop(nodes []types.MapNode, rows int, r *rng.RNG) {
	for _, n := range nodes {
		if n.Type == types.EncounterShop {
			return
		}
	}
	mid := rows / 2

	var candidates []int
	for i, n := range nodes {
		if n.Row == mid && n.Type == types.EncounterEnemy {
			candidates = append(candidates, i)
		}
	}
	if len(candidates) == 0 {
		bestDist := -1
		for i, n := range nodes {
			if n.Type == types.EncounterStart || n.Type == types.EncounterBoss {
				continue
			}
			d := n.Row - mid
			if d < 0 {
				d = -d
			}
			switch {
			case bestDist < 0 || d < bestDist:
				bestDist = d
				candidates = []int{i}
			case d == bestDist:
				candidates = append(candidates, i)
			}
		}
	}
	if len(candidates) == 0 {
		return
	}
	i := rng.Pick(r, candidates)
	nodes[i].Type = types.EncounterShop
	nodes[i].EnemyID = ""
	nodes[i].Reward = nil
}

// Node returns the node with the given ID.
func Node(m types.GameMap, id string) (types.MapNode, bool) {
	for _, n := range m.Nodes {
		if n.ID == id {
			return n, true
		}
	}
	return types.MapNode{}, false
}

// CurrentNode returns the node the player is on.
func CurrentNode(m types.GameMap) (types.MapNode, bool) {
	if m.CurrentNodeID == "" {
		return types.MapNode{}, false
	}
	return Node(m, m.CurrentNodeID)
}

// AvailableNodes returns the nodes the player may move to.
func AvailableNodes(m types.GameMap) []types.MapNode {
	var out []types.MapNode
	for _, n := range m.Nodes {
		if n.Status == types.NodeAvailable {
			out = append(out, n)
		}
	}
	return out
}

// IsCompleted reports whether the act's boss has been beaten.
func IsCompleted(m types.GameMap) bool {
	return m.BossDefeated
}

// MoveToNode makes an available node current and locks every other
// available or current node. Any other target leaves the map unchanged.
func MoveToNode(m types.GameMap, id string) types.GameMap {
	target, ok := Node(m, id)
	if !ok || target.Status != types.NodeAvailable {
		return m
	}
	nodes := make([]types.MapNode, len(m.Nodes))
	for i, n := range m.Nodes {
		switch {
		case n.ID == id:
			n.Status = types.NodeCurrent
		case n.Status == types.NodeAvailable || n.Status == types.NodeCurrent:
			n.Status = types.NodeLocked
		}
		nodes[i] = n
	}
	m.Nodes = nodes
	m.CurrentNodeID = id
	return m
}

// CompleteCurrentNode marks the current node completed and opens its
// successors. Without a current node the map is unchanged.
func CompleteCurrentNode(m types.GameMap) types.GameMap {
	cur, ok := CurrentNode(m)
	if !ok {
		return m
	}
	next := make(map[string]bool, len(cur.Connections))
	for _, id := range cur.Connections {
		next[id] = true
	}

	nodes := make([]types.MapNode, len(m.Nodes))
	for i, n := range m.Nodes {
		switch {
		case n.ID == cur.ID:
			n.Status = types.NodeCompleted
		case next[n.ID]:
			n.Status = types.NodeAvailable
		case n.Status == types.NodeAvailable || n.Status == types.NodeCurrent:
			n.Status = types.NodeLocked
		}
		nodes[i] = n
	}
	m.Nodes = nodes
	m.CurrentNodeID = ""
	m.CompletedNodeIDs = append(append([]string{}, m.CompletedNodeIDs...), cur.ID)
	if cur.Type == types.EncounterBoss {
		m.BossDefeated = true
	}
	return m
}

// Validate checks the structural invariants of a generated map.
func Validate(m types.GameMap) error {
	var errs []error
	incoming := map[string]int{}
	starts, bosses := 0, 0
	ids := map[string]bool{}
	for _, n := range m.Nodes {
		ids[n.ID] = true
	}
	for _, n := range m.Nodes {
		switch n.Type {
		case types.EncounterStart:
			starts++
			if n.Row != 0 {
				errs = append(errs, fmt.Errorf("start node %s on row %d", n.ID, n.Row))
			}
		case types.EncounterBoss:
			bosses++
		}
		for _, c := range n.Connections {
			if !ids[c] {
				errs = append(errs, fmt.Errorf("node %s links to unknown node %s", n.ID, c))
			}
			incoming[c]++
		}
	}
	if starts != 1 {
		errs = append(errs, fmt.Errorf("%d start nodes", starts))
	}
	if bosses != 1 {
		errs = append(errs, fmt.Errorf("%d boss nodes", bosses))
	}
	for _, n := range m.Nodes {
		if n.Type != types.EncounterStart && incoming[n.ID] == 0 {
			errs = append(errs, fmt.Errorf("node %s (row %d) has no incoming edge", n.ID, n.Row))
		}
		if n.Type != types.EncounterBoss && len(n.Connections) == 0 {
			errs = append(errs, fmt.Errorf("node %s (row %d) has no outgoing edge", n.ID, n.Row))
		}
	}
	edges := 0
	for _, n := range m.Nodes {
		edges += len(n.Connections)
	}
	if edges != len(m.Paths) {
		errs = append(errs, fmt.Errorf("%d paths for %d connections", len(m.Paths), edges))
	}
	return errors.Join(errs...)
}

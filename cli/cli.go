// Package cli provides line-mode terminal I/O and meta-command dispatch for
// the Runeblade engine. It also plays back scripted command files.
package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/nathoo/runeblade/engine"
	"github.com/nathoo/runeblade/engine/replay"
	"github.com/nathoo/runeblade/types"
)

// CLI handles terminal interaction with the player.
type CLI struct {
	Engine    *engine.Engine
	In        io.Reader
	Out       io.Writer
	ReplayDir string
	Trace     bool
	EchoInput bool   // echo each input line after the prompt (for script playback)
	lastCmd   string // for "again"
}

// New creates a CLI wired to the given engine.
func New(eng *engine.Engine) *CLI {
	home, _ := os.UserHomeDir()
	return &CLI{
		Engine:    eng,
		In:        os.Stdin,
		Out:       os.Stdout,
		ReplayDir: filepath.Join(home, ".runeblade", "replays"),
	}
}

// Run starts the game loop. It prints the title and the current screen,
// then loops: prompt, input, dispatch, output.
func (c *CLI) Run() {
	if title := c.Engine.Defs.Title; title != "" {
		c.printLine(title)
		c.printLine("")
	}
	c.printResult(c.Engine.Step("look"))

	scanner := bufio.NewScanner(c.In)
	for {
		c.print("> ")
		if !scanner.Scan() {
			break
		}
		input := strings.TrimSpace(scanner.Text())
		if input == "" {
			continue
		}
		// Skip comment lines (for script files).
		if strings.HasPrefix(input, "#") {
			continue
		}
		if c.EchoInput {
			c.printLine(input)
		}

		if strings.HasPrefix(input, "/") {
			if c.handleMeta(input) {
				return // /quit
			}
			continue
		}

		if strings.EqualFold(input, "again") {
			if c.lastCmd == "" {
				c.printLine("Nothing to repeat.")
				continue
			}
			input = c.lastCmd
		} else {
			c.lastCmd = input
		}

		result := c.Engine.Step(input)
		c.printResult(result)

		if c.Trace {
			c.printTrace(result)
		}
	}
}

// handleMeta dispatches meta-commands. Returns true if the game should exit.
func (c *CLI) handleMeta(input string) bool {
	parts := strings.Fields(input)
	cmd := parts[0]
	var arg string
	if len(parts) > 1 {
		arg = parts[1]
	}

	switch cmd {
	case "/quit", "/exit":
		c.printSystem("Goodbye.")
		return true

	case "/replay":
		c.cmdReplay(arg)

	case "/help":
		c.cmdHelp()

	case "/state":
		c.cmdState()

	case "/seed":
		c.printSystem(fmt.Sprintf("Seed: %d", c.Engine.Seed))

	case "/trace":
		c.Trace = !c.Trace
		if c.Trace {
			c.printSystem("Trace output enabled.")
		} else {
			c.printSystem("Trace output disabled.")
		}

	default:
		c.printSystem(fmt.Sprintf("Unknown command: %s. Type /help for available commands.", cmd))
	}

	return false
}

// cmdReplay writes the run's seed and commands so it can be re-run with
// --replay.
func (c *CLI) cmdReplay(name string) {
	if name == "" {
		name = fmt.Sprintf("run-%d", c.Engine.Seed)
	}

	data, err := replay.Marshal(replay.FromEngine(c.Engine))
	if err != nil {
		c.printSystem(fmt.Sprintf("Replay failed: %v", err))
		return
	}

	if err := os.MkdirAll(c.ReplayDir, 0o755); err != nil {
		c.printSystem(fmt.Sprintf("Replay failed: %v", err))
		return
	}

	path := filepath.Join(c.ReplayDir, name+".json")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		c.printSystem(fmt.Sprintf("Replay failed: %v", err))
		return
	}

	c.printSystem(fmt.Sprintf("Replay saved to %s.", path))
}

func (c *CLI) cmdHelp() {
	help := []string{
		"System:",
		"  /replay [name]  Save a replay of this run",
		"  /seed           Show the run seed",
		"  /quit           Exit game",
		"  /help           Show this help",
		"  /state          Debug: dump current state",
		"  /trace          Toggle debug trace output",
		"",
		"Game commands:",
		"  map (m)                Show the paths ahead",
		"  go <path> (g)          Travel to a node by number or name",
		"  play <card> (p)        Play a card from your hand",
		"  end turn (e)           End your turn",
		"  take <card> / skip     Choose or refuse a reward",
		"  buy / sell <card>      Trade at a shop",
		"  refresh / leave        Restock or leave a shop",
		"  advance                Move on to the next act",
		"  look (l), status (s), deck (d), collection, examine <card> (x)",
		"  again                  Repeat your last command",
	}
	for _, line := range help {
		c.printLine(line)
	}
}

func (c *CLI) cmdState() {
	e := c.Engine
	c.printSystem(fmt.Sprintf("Mode: %s", e.Mode))
	c.printSystem(fmt.Sprintf("Act: %d  Node: %s", e.Act, e.Map.CurrentNodeID))
	c.printSystem(fmt.Sprintf("HP: %d/%d  Gold: %d", e.HP, e.MaxHP, e.Gold))
	var deck []string
	for _, card := range e.Store.DeckCards() {
		deck = append(deck, card.ID)
	}
	c.printSystem(fmt.Sprintf("Deck: %s", strings.Join(deck, ", ")))
	c.printSystem(fmt.Sprintf("RNG draws: %d  Commands: %d", e.RNG.Position(), len(e.CommandLog)))
	if b := e.Battle; b != nil && b.Enemy != nil {
		c.printSystem(fmt.Sprintf("Battle: round %d, %s turn, %s %d/%d armor %d",
			b.Round, b.Turn, b.Enemy.Name, b.Enemy.HP, b.Enemy.MaxHP, b.Enemy.Armor))
	}
}

func (c *CLI) printTrace(result types.Result) {
	if len(result.Events) == 0 {
		return
	}
	c.printSystem(fmt.Sprintf("[trace] Events: %d", len(result.Events)))
	for _, e := range result.Events {
		c.printSystem(fmt.Sprintf("[trace]   %s %s", e.Type, formatData(e.Data)))
	}
}

// formatData renders event data with sorted keys so traces are stable.
func formatData(data map[string]any) string {
	keys := make([]string, 0, len(data))
	for k := range data {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s=%v", k, data[k]))
	}
	return strings.Join(parts, " ")
}

func (c *CLI) printResult(result types.Result) {
	for _, line := range result.Output {
		c.printLine(line)
	}
}

func (c *CLI) printLine(text string) {
	fmt.Fprintln(c.Out, text)
}

func (c *CLI) print(text string) {
	fmt.Fprint(c.Out, text)
}

func (c *CLI) printSystem(text string) {
	fmt.Fprintf(c.Out, "[%s]\n", text)
}

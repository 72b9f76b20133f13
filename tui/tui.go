package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/nathoo/runeblade/engine"
	"github.com/nathoo/runeblade/engine/replay"
	"github.com/nathoo/runeblade/types"
)

// rawLine stores an unstyled output line with its classification,
// so we can re-wrap and re-style when the terminal is resized.
type rawLine struct {
	text     string
	kind     lineKind
	isInput  bool // true for echoed player input
	isSystem bool // true for system messages
}

// Model is the Bubble Tea model for the Runeblade TUI.
type Model struct {
	engine *engine.Engine

	viewport viewport.Model
	input    textinput.Model
	history  *History

	rawLines []rawLine // accumulated output lines (unstyled, for re-wrapping)

	width     int
	height    int
	ready     bool
	trace     bool
	quitting  bool
	lastCmd   string
	replayDir string
}

// gameOutputMsg carries output from the engine into the Update loop.
type gameOutputMsg struct {
	input    string   // echoed player input (empty for the opening screen)
	lines    []string // output lines
	isSystem bool     // true for meta-command output
}

// New creates a TUI model wired to the given engine.
func New(eng *engine.Engine) Model {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.Focus()
	ti.CharLimit = 256
	ti.PromptStyle = styleInputPrompt

	home, _ := os.UserHomeDir()
	return Model{
		engine:    eng,
		input:     ti,
		history:   NewHistory(100),
		replayDir: filepath.Join(home, ".runeblade", "replays"),
	}
}

// Run starts the Bubble Tea program.
func Run(eng *engine.Engine) error {
	p := tea.NewProgram(New(eng), tea.WithAltScreen(), tea.WithMouseCellMotion())
	_, err := p.Run()
	return err
}

// Init returns the initial command that produces the title and first screen.
func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.initialOutput())
}

func (m Model) initialOutput() tea.Cmd {
	return func() tea.Msg {
		var lines []string
		if title := m.engine.Defs.Title; title != "" {
			lines = append(lines, title, "")
		}
		result := m.engine.Step("look")
		lines = append(lines, result.Output...)
		return gameOutputMsg{lines: lines}
	}
}

// Update handles messages (key presses, window resize, game output).
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

		vpHeight := max(m.height-2, 1) // 1 status bar + 1 input line

		if !m.ready {
			m.viewport = viewport.New(m.width, vpHeight)
			m.viewport.KeyMap = viewportKeyMap()
			m.ready = true
		} else {
			m.viewport.Width = m.width
			m.viewport.Height = vpHeight
		}

		m.refreshViewport()

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			m.quitting = true
			return m, tea.Quit

		case "enter":
			return m.handleEnter()

		case "up":
			if prev, ok := m.history.Prev(); ok {
				m.input.SetValue(prev)
				m.input.CursorEnd()
			}
			return m, nil

		case "down":
			if next, ok := m.history.Next(); ok {
				m.input.SetValue(next)
				m.input.CursorEnd()
			} else {
				m.input.SetValue("")
			}
			return m, nil

		case "pgup", "pgdown":
			var vpCmd tea.Cmd
			m.viewport, vpCmd = m.viewport.Update(msg)
			return m, vpCmd
		}

	case gameOutputMsg:
		m = m.appendOutput(msg)
	}

	var inputCmd tea.Cmd
	m.input, inputCmd = m.input.Update(msg)
	return m, inputCmd
}

// handleEnter processes the submitted input line.
func (m Model) handleEnter() (tea.Model, tea.Cmd) {
	input := strings.TrimSpace(m.input.Value())
	m.input.SetValue("")

	if input == "" {
		return m, nil
	}

	m.history.Push(input)

	if strings.EqualFold(input, "again") {
		if m.lastCmd == "" {
			m = m.appendOutput(gameOutputMsg{
				input: input, lines: []string{"Nothing to repeat."}, isSystem: true,
			})
			return m, nil
		}
		input = m.lastCmd
	} else {
		m.lastCmd = input
	}

	if strings.HasPrefix(input, "/") {
		output, quit := m.handleMeta(input)
		m = m.appendOutput(gameOutputMsg{input: input, lines: output, isSystem: true})
		if quit {
			m.quitting = true
			return m, tea.Quit
		}
		return m, nil
	}

	result := m.engine.Step(input)
	output := result.Output
	if m.trace {
		output = append(output, formatTrace(result)...)
	}
	m = m.appendOutput(gameOutputMsg{input: input, lines: output})
	return m, nil
}

// appendOutput adds lines to the transcript and refreshes the viewport.
func (m Model) appendOutput(msg gameOutputMsg) Model {
	if msg.input != "" {
		m.rawLines = append(m.rawLines, rawLine{
			text: "> " + msg.input, isInput: true,
		})
	}

	for _, line := range msg.lines {
		rl := rawLine{text: line, isSystem: msg.isSystem}
		if !msg.isSystem {
			rl.kind = classifyLine(line)
		}
		m.rawLines = append(m.rawLines, rl)
	}

	// Blank line separator between commands.
	m.rawLines = append(m.rawLines, rawLine{})

	m.refreshViewport()

	return m
}

// refreshViewport re-wraps and re-styles all raw lines at the current width
// and updates the viewport content.
func (m *Model) refreshViewport() {
	if !m.ready {
		return
	}

	width := max(m.width, 10)

	styled := make([]string, 0, len(m.rawLines))
	for _, rl := range m.rawLines {
		if rl.text == "" {
			styled = append(styled, "")
			continue
		}

		wrapped := wordWrap(rl.text, width)

		switch {
		case rl.isInput:
			styled = append(styled, stylePlayerInput.Render(wrapped))
		case rl.isSystem:
			styled = append(styled, styledSystemMsg(wrapped))
		default:
			styled = append(styled, renderLineKind(wrapped, rl.kind))
		}
	}

	m.viewport.SetContent(strings.Join(styled, "\n"))
	m.viewport.GotoBottom()
}

// wordWrap wraps text to fit within the given width, breaking at word
// boundaries. Leading indentation, used by numbered lists, is kept on the
// first line.
func wordWrap(text string, width int) string {
	if width <= 0 || len(text) <= width {
		return text
	}

	indent := text[:len(text)-len(strings.TrimLeft(text, " "))]

	var result strings.Builder
	result.WriteString(indent)
	lineLen := len(indent)

	for i, word := range strings.Fields(text) {
		wLen := len(word)
		switch {
		case i == 0:
			result.WriteString(word)
			lineLen += wLen
		case lineLen+1+wLen > width:
			result.WriteString("\n")
			result.WriteString(word)
			lineLen = wLen
		default:
			result.WriteString(" ")
			result.WriteString(word)
			lineLen += 1 + wLen
		}
	}

	return result.String()
}

// View renders the full TUI layout: viewport + status bar + input.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if !m.ready {
		return "Loading..."
	}

	return m.viewport.View() + "\n" + m.renderStatusBar() + "\n" + m.input.View()
}

// handleMeta dispatches meta-commands. Returns output lines and quit flag.
func (m *Model) handleMeta(input string) ([]string, bool) {
	parts := strings.Fields(input)
	cmd := parts[0]
	var arg string
	if len(parts) > 1 {
		arg = parts[1]
	}

	switch cmd {
	case "/quit", "/exit":
		return []string{"Goodbye."}, true

	case "/replay":
		return m.cmdReplay(arg), false

	case "/help":
		return m.cmdHelp(), false

	case "/state":
		return m.cmdState(), false

	case "/seed":
		return []string{fmt.Sprintf("Seed: %d", m.engine.Seed)}, false

	case "/trace":
		m.trace = !m.trace
		if m.trace {
			return []string{"Trace output enabled."}, false
		}
		return []string{"Trace output disabled."}, false

	default:
		return []string{fmt.Sprintf("Unknown command: %s. Type /help for available commands.", cmd)}, false
	}
}

func (m *Model) cmdReplay(name string) []string {
	if name == "" {
		name = fmt.Sprintf("run-%d", m.engine.Seed)
	}

	data, err := replay.Marshal(replay.FromEngine(m.engine))
	if err != nil {
		return []string{fmt.Sprintf("Replay failed: %v", err)}
	}

	if err := os.MkdirAll(m.replayDir, 0o755); err != nil {
		return []string{fmt.Sprintf("Replay failed: %v", err)}
	}

	path := filepath.Join(m.replayDir, name+".json")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return []string{fmt.Sprintf("Replay failed: %v", err)}
	}

	return []string{fmt.Sprintf("Replay saved to %s.", path)}
}

func (m *Model) cmdHelp() []string {
	return []string{
		"System:",
		"  /replay [name]  Save a replay of this run",
		"  /seed           Show the run seed",
		"  /quit           Exit game",
		"  /help           Show this help",
		"  /state          Debug: dump current state",
		"  /trace          Toggle debug trace output",
		"",
		"Game commands:",
		"  map, go <path>, play <card>, end turn, take <card>, skip",
		"  buy <card>, sell <card>, refresh, leave, advance",
		"  look, status, deck, collection, examine <card>, again",
		"",
		"Navigation: PgUp/PgDn to scroll, Up/Down for command history",
	}
}

func (m *Model) cmdState() []string {
	e := m.engine
	output := []string{
		fmt.Sprintf("Mode: %s", e.Mode),
		fmt.Sprintf("Act: %d  Node: %s", e.Act, e.Map.CurrentNodeID),
		fmt.Sprintf("HP: %d/%d  Gold: %d", e.HP, e.MaxHP, e.Gold),
		fmt.Sprintf("Deck: %d cards", len(e.Store.Collection().Deck)),
		fmt.Sprintf("RNG draws: %d  Commands: %d", e.RNG.Position(), len(e.CommandLog)),
	}
	if b := e.Battle; b != nil && b.Enemy != nil {
		output = append(output, fmt.Sprintf("Battle: round %d, %s turn", b.Round, b.Turn))
	}
	return output
}

func formatTrace(result types.Result) []string {
	if len(result.Events) == 0 {
		return nil
	}
	lines := []string{fmt.Sprintf("[trace] Events: %d", len(result.Events))}
	for _, e := range result.Events {
		keys := make([]string, 0, len(e.Data))
		for k := range e.Data {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		line := "[trace]   " + e.Type
		for _, k := range keys {
			line += fmt.Sprintf(" %s=%v", k, e.Data[k])
		}
		lines = append(lines, line)
	}
	return lines
}

// viewportKeyMap returns a viewport keymap with Up/Down disabled
// (we use those for input history).
func viewportKeyMap() viewport.KeyMap {
	return viewport.KeyMap{
		PageDown:     key.NewBinding(key.WithKeys("pgdown")),
		PageUp:       key.NewBinding(key.WithKeys("pgup")),
		HalfPageDown: key.NewBinding(key.WithKeys("ctrl+d")),
		HalfPageUp:   key.NewBinding(key.WithKeys("ctrl+u")),
		Up:           key.NewBinding(key.WithDisabled()),
		Down:         key.NewBinding(key.WithDisabled()),
	}
}

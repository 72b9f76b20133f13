// Package tui provides a Bubble Tea terminal UI for the Runeblade engine.
package tui

// History keeps recent commands for Up/Down recall. The oldest entry is
// dropped once the limit is reached.
type History struct {
	entries []string
	limit   int
	cursor  int // len(entries) when not navigating
}

// NewHistory creates a history that remembers up to limit commands.
func NewHistory(limit int) *History {
	return &History{limit: limit}
}

// Push records a command and ends any navigation. Repeating the newest
// entry is not recorded twice.
func (h *History) Push(cmd string) {
	if n := len(h.entries); n == 0 || h.entries[n-1] != cmd {
		h.entries = append(h.entries, cmd)
		if len(h.entries) > h.limit {
			h.entries = h.entries[len(h.entries)-h.limit:]
		}
	}
	h.ResetCursor()
}

// Prev steps to the next older entry, stopping at the oldest.
func (h *History) Prev() (string, bool) {
	if len(h.entries) == 0 {
		return "", false
	}
	if h.cursor > 0 {
		h.cursor--
	}
	return h.entries[h.cursor], true
}

// Next steps toward the newest entry. Past the newest it reports false so
// the caller can clear the input.
func (h *History) Next() (string, bool) {
	if h.cursor >= len(h.entries) {
		return "", false
	}
	h.cursor++
	if h.cursor == len(h.entries) {
		return "", false
	}
	return h.entries[h.cursor], true
}

// ResetCursor returns to fresh input.
func (h *History) ResetCursor() {
	h.cursor = len(h.entries)
}

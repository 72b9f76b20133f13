package engine

import (
	"fmt"

	"github.com/nathoo/runeblade/types"
)

// logf appends one entry to the battle log. The log slice is always
// reallocated so earlier states keep their own transcript.
func (o *Orchestrator) logf(s types.BattleState, typ types.LogType, format string, args ...any) types.BattleState {
	entry := types.LogEntry{
		ID:        o.RNG.NewID(),
		Message:   fmt.Sprintf(format, args...),
		Type:      typ,
		Timestamp: o.Now(),
	}
	s.Log = append(s.Log[:len(s.Log):len(s.Log)], entry)
	return s
}

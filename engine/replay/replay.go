// Package replay records the seed and commands of a run so it can be
// re-run exactly.
package replay

import (
	"encoding/json"
	"fmt"

	"github.com/nathoo/runeblade/config"
	"github.com/nathoo/runeblade/engine"
	"github.com/nathoo/runeblade/engine/state"
)

// Version is the record format written by Marshal.
const Version = "1"

// Record is the JSON-serializable replay format.
type Record struct {
	Version  string   `json:"version"`
	Game     string   `json:"game"`
	Seed     int64    `json:"seed"`
	Act      int      `json:"act"`
	Draws    int64    `json:"draws,omitempty"` // random draws made by the recorded run
	Commands []string `json:"commands"`
}

// FromEngine captures a run's seed and command log.
func FromEngine(e *engine.Engine) Record {
	return Record{
		Version:  Version,
		Game:     e.Defs.Title,
		Seed:     e.Seed,
		Act:      e.Act,
		Draws:    e.RNG.Position(),
		Commands: append([]string{}, e.CommandLog...),
	}
}

// Marshal serializes a record to indented JSON.
func Marshal(r Record) ([]byte, error) {
	return json.MarshalIndent(r, "", "  ")
}

// Unmarshal deserializes a record.
func Unmarshal(data []byte) (Record, error) {
	var r Record
	if err := json.Unmarshal(data, &r); err != nil {
		return Record{}, fmt.Errorf("decoding replay: %w", err)
	}
	if r.Version != Version {
		return Record{}, fmt.Errorf("replay version %q, want %q", r.Version, Version)
	}
	// Ensure the command list is never nil after load.
	if r.Commands == nil {
		r.Commands = []string{}
	}
	return r, nil
}

// Replay starts a fresh run with the record's seed and feeds it every
// command. The result matches the recorded run when defs and cfg match too;
// a different act or number of random draws at the end is reported as an
// error alongside the replayed engine. Records without draws skip that check.
func Replay(r Record, defs *state.Defs, cfg config.Config, opts ...engine.Option) (*engine.Engine, error) {
	if r.Game != "" && defs.Title != "" && r.Game != defs.Title {
		return nil, fmt.Errorf("replay is for %q, content is %q", r.Game, defs.Title)
	}
	e := engine.New(defs, cfg, r.Seed, opts...)
	for _, cmd := range r.Commands {
		e.Step(cmd)
	}
	if e.Act != r.Act {
		return e, fmt.Errorf("replay ended on act %d, recorded act %d", e.Act, r.Act)
	}
	if r.Draws != 0 && e.RNG.Position() != r.Draws {
		return e, fmt.Errorf("replay made %d random draws, recorded run made %d", e.RNG.Position(), r.Draws)
	}
	return e, nil
}

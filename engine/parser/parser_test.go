package parser

import (
	"testing"

	"github.com/nathoo/runeblade/types"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  types.Intent
	}{
		// Empty / whitespace
		{
			name:  "empty string",
			input: "",
			want:  types.Intent{},
		},
		{
			name:  "whitespace only",
			input: "   ",
			want:  types.Intent{},
		},

		// Basic verbs
		{
			name:  "map",
			input: "map",
			want:  types.Intent{Verb: "map"},
		},
		{
			name:  "play with object",
			input: "play strike",
			want:  types.Intent{Verb: "play", Object: "strike"},
		},
		{
			name:  "multi-word object",
			input: "play heavy strike",
			want:  types.Intent{Verb: "play", Object: "heavy strike"},
		},
		{
			name:  "numeric object",
			input: "go 2",
			want:  types.Intent{Verb: "go", Object: "2"},
		},

		// Verb aliases
		{
			name:  "p → play",
			input: "p 1",
			want:  types.Intent{Verb: "play", Object: "1"},
		},
		{
			name:  "cast → play",
			input: "cast fireball",
			want:  types.Intent{Verb: "play", Object: "fireball"},
		},
		{
			name:  "e → end",
			input: "e",
			want:  types.Intent{Verb: "end"},
		},
		{
			name:  "purchase → buy",
			input: "purchase 3",
			want:  types.Intent{Verb: "buy", Object: "3"},
		},
		{
			name:  "reroll → refresh",
			input: "reroll",
			want:  types.Intent{Verb: "refresh"},
		},
		{
			name:  "pick → take",
			input: "pick venom",
			want:  types.Intent{Verb: "take", Object: "venom"},
		},
		{
			name:  "next → advance",
			input: "next",
			want:  types.Intent{Verb: "advance"},
		},
		{
			name:  "x → examine",
			input: "x meteor",
			want:  types.Intent{Verb: "examine", Object: "meteor"},
		},

		// Multi-word verbs
		{
			name:  "end turn",
			input: "end turn",
			want:  types.Intent{Verb: "end"},
		},
		{
			name:  "look at",
			input: "look at fireball",
			want:  types.Intent{Verb: "examine", Object: "fireball"},
		},
		{
			name:  "leave shop",
			input: "leave shop",
			want:  types.Intent{Verb: "leave"},
		},
		{
			name:  "go to",
			input: "go to shop",
			want:  types.Intent{Verb: "go", Object: "shop"},
		},
		{
			name:  "next act",
			input: "next act",
			want:  types.Intent{Verb: "advance"},
		},
		{
			name:  "skip reward",
			input: "skip reward",
			want:  types.Intent{Verb: "skip"},
		},

		// Articles and prepositions
		{
			name:  "articles stripped",
			input: "buy the fireball",
			want:  types.Intent{Verb: "buy", Object: "fireball"},
		},
		{
			name:  "preposition splits target",
			input: "play venom on goblin",
			want:  types.Intent{Verb: "play", Object: "venom", Target: "goblin"},
		},

		// Case and spacing
		{
			name:  "uppercase",
			input: "PLAY Strike",
			want:  types.Intent{Verb: "play", Object: "strike"},
		},
		{
			name:  "extra spaces",
			input: "  buy    2  ",
			want:  types.Intent{Verb: "buy", Object: "2"},
		},

		// Unknown verbs pass through
		{
			name:  "unknown verb",
			input: "dance wildly",
			want:  types.Intent{Verb: "dance", Object: "wildly"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Parse(tt.input)
			if got != tt.want {
				t.Errorf("Parse(%q) = %+v, want %+v", tt.input, got, tt.want)
			}
		})
	}
}

func TestExpandMultiWordVerbs_SingleWord(t *testing.T) {
	got := expandMultiWordVerbs([]string{"end"})
	if len(got) != 1 || got[0] != "end" {
		t.Errorf("got %v, want [end]", got)
	}
}

func TestSplitOnPreposition(t *testing.T) {
	obj, tgt := splitOnPreposition([]string{"venom", "on", "big", "goblin"})
	if obj != "venom" || tgt != "big goblin" {
		t.Errorf("got (%q, %q)", obj, tgt)
	}
	obj, tgt = splitOnPreposition([]string{"heavy", "strike"})
	if obj != "heavy strike" || tgt != "" {
		t.Errorf("got (%q, %q)", obj, tgt)
	}
}

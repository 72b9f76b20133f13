// Package parser converts command strings into Intent structs.
// No grammar beyond aliases, a few two-word verbs and a preposition split.
package parser

import (
	"strings"

	"github.com/nathoo/runeblade/types"
)

var verbAliases = map[string]string{
	// Battle
	"p":    "play",
	"cast": "play",
	"use":  "play",
	"e":    "end",
	"done": "end",
	"pass": "end",
	"h":    "hand",
	"d":    "deck",

	// Map
	"g":      "go",
	"move":   "go",
	"travel": "go",
	"visit":  "go",
	"enter":  "go",
	"m":      "map",
	"next":   "advance",
	"onward": "advance",

	// Rewards
	"pick":   "take",
	"choose": "take",
	"get":    "take",

	// Shop
	"purchase": "buy",
	"b":        "buy",
	"reroll":   "refresh",
	"restock":  "refresh",
	"exit":     "leave",

	// Information
	"l":       "look",
	"x":       "examine",
	"inspect": "examine",
	"check":   "examine",
	"info":    "examine",
	"s":       "status",
	"stats":   "status",
	"hp":      "status",
	"gold":    "status",
	"coll":    "collection",
	"cards":   "collection",
	"?":       "help",
}

var prepositions = map[string]bool{
	"on": true, "at": true, "to": true,
	"with": true, "from": true,
}

var articles = map[string]bool{
	"the": true, "a": true, "an": true,
}

// Parse converts a raw command string into an Intent.
func Parse(input string) types.Intent {
	input = strings.TrimSpace(input)
	if input == "" {
		return types.Intent{}
	}

	words := strings.Fields(strings.ToLower(input))

	// Handle multi-word verb phrases before general parsing.
	words = expandMultiWordVerbs(words)
	if len(words) == 0 {
		return types.Intent{}
	}

	// Apply verb aliases.
	if alias, ok := verbAliases[words[0]]; ok {
		words[0] = alias
	}

	verb := words[0]
	rest := words[1:]

	// Strip articles ("the", "a", "an").
	rest = stripArticles(rest)

	// Use the first preposition as a delimiter between object and target.
	object, target := splitOnPreposition(rest)

	return types.Intent{
		Verb:   verb,
		Object: object,
		Target: target,
	}
}

// expandMultiWordVerbs handles "end turn", "look at", "leave shop" etc.
func expandMultiWordVerbs(words []string) []string {
	if len(words) < 2 {
		return words
	}

	switch words[0] {
	case "end", "finish":
		if words[1] == "turn" {
			return append([]string{"end"}, words[2:]...)
		}
	case "look":
		if words[1] == "at" {
			return append([]string{"examine"}, words[2:]...)
		}
	case "leave", "close", "exit":
		if words[1] == "shop" || words[1] == "store" {
			return append([]string{"leave"}, words[2:]...)
		}
	case "skip":
		if words[1] == "reward" || words[1] == "rewards" {
			return append([]string{"skip"}, words[2:]...)
		}
	case "go", "move", "travel":
		if words[1] == "to" {
			return append([]string{"go"}, words[2:]...)
		}
	case "next":
		if words[1] == "act" {
			return append([]string{"advance"}, words[2:]...)
		}
	}

	return words
}

// stripArticles removes articles ("the", "a", "an") from the word list.
func stripArticles(words []string) []string {
	result := make([]string, 0, len(words))
	for _, w := range words {
		if !articles[w] {
			result = append(result, w)
		}
	}
	return result
}

// splitOnPreposition splits words on the first preposition.
// Words before the preposition become the object, words after become the target.
// If no preposition is found, all words become the object.
func splitOnPreposition(words []string) (object, target string) {
	for i, w := range words {
		if prepositions[w] {
			object = strings.Join(words[:i], " ")
			target = strings.Join(words[i+1:], " ")
			return object, target
		}
	}
	return strings.Join(words, " "), ""
}

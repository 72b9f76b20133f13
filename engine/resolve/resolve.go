// Package resolve maps the names typed in commands to the IDs of hand
// cards, shop items, reward choices and map nodes.
package resolve

import (
	"fmt"
	"strconv"
	"strings"
)

// Candidate is one thing a name may refer to.
type Candidate struct {
	ID   string
	Name string
}

// AmbiguityError indicates differently named candidates matched a name.
type AmbiguityError struct {
	Name       string
	Candidates []string
}

func (e *AmbiguityError) Error() string {
	names := strings.Join(e.Candidates, ", ")
	return fmt.Sprintf("which %s? (%s)", e.Name, names)
}

// NotFoundError indicates no candidate matched a name.
type NotFoundError struct {
	Name string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("there is no %q here", e.Name)
}

// Resolve picks the candidate a name refers to. In order it tries a
// 1-based position, an exact ID, then the name. Several matches that share
// a display name (copies of one card) resolve to the first of them.
func Resolve(name string, candidates []Candidate) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", &NotFoundError{Name: name}
	}

	// 1. Position in the listing.
	if n, err := strconv.Atoi(name); err == nil {
		if n >= 1 && n <= len(candidates) {
			return candidates[n-1].ID, nil
		}
		return "", &NotFoundError{Name: name}
	}

	// 2. Exact ID match.
	for _, c := range candidates {
		if c.ID == name {
			return c.ID, nil
		}
	}

	// 3. Name match.
	nameLower := strings.ToLower(name)
	var matches []Candidate
	for _, c := range candidates {
		if matchesName(c, nameLower) {
			matches = append(matches, c)
		}
	}

	switch len(matches) {
	case 0:
		return "", &NotFoundError{Name: name}
	case 1:
		return matches[0].ID, nil
	}

	// Prefer an exact name over partial word matches.
	var exact []Candidate
	for _, c := range matches {
		if strings.ToLower(c.Name) == nameLower {
			exact = append(exact, c)
		}
	}
	if len(exact) > 0 {
		matches = exact
	}

	names := distinctNames(matches)
	if len(names) == 1 {
		return matches[0].ID, nil
	}
	return "", &AmbiguityError{Name: name, Candidates: names}
}

// matchesName checks a candidate's display name or ID against the query
// (case-insensitive). Supports exact match, word-based partial match and
// underscore normalization.
func matchesName(c Candidate, nameLower string) bool {
	candLower := strings.ToLower(c.Name)
	// Exact match.
	if candLower == nameLower {
		return true
	}
	// Word-based partial match: query matches any word in the name.
	// e.g. "strike" matches "Heavy Strike".
	for _, word := range strings.Fields(candLower) {
		if word == nameLower {
			return true
		}
	}
	// Underscore normalization: "heavy strike" matches ID "heavy_strike".
	idLower := strings.ToLower(c.ID)
	return strings.ReplaceAll(nameLower, " ", "_") == idLower
}

func distinctNames(cands []Candidate) []string {
	seen := map[string]bool{}
	var out []string
	for _, c := range cands {
		if seen[c.Name] {
			continue
		}
		seen[c.Name] = true
		out = append(out, c.Name)
	}
	return out
}

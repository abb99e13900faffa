// Package catalog implements the file-catalog importer boundary named in
// spec.md §6: resolving cross-file rule references by mangling each
// rule's name into an unambiguous identifier and keeping a reverse map
// back to its origin. Unlike abnf, this piece is concrete rather than
// interface-only — spec.md §6 gives the exact mangled shape and states
// "this mangling scheme is part of the boundary because downstream
// tools depend on the shape of the identifiers."
package catalog

import (
	"fmt"
	"strings"

	"github.com/dekarrin/finlang/collab"
)

// Origin names where a mangled identifier came from: the file it was
// declared in, and its original (un-lowercased) rule name.
type Origin struct {
	File string
	Rule string
}

// Mangle returns the unambiguous identifier for rule in file:
// "{File: <path> Rule: <name>}", with <name> lowercased.
func Mangle(file, rule string) string {
	return fmt.Sprintf("{File: %s Rule: %s}", file, strings.ToLower(rule))
}

// Catalog is the reverse map from a mangled identifier back to its
// origin (filename, original rule name).
type Catalog struct {
	reverse map[string]Origin
}

// NewCatalog returns an empty Catalog.
func NewCatalog() *Catalog {
	return &Catalog{reverse: map[string]Origin{}}
}

// Register mangles (file, rule) and adds it to the catalog, returning
// the mangled identifier. If that identifier is already registered to a
// different (file, rule) origin — which can happen since mangling
// lowercases the rule name, so "Digit" and "digit" in the same file
// collide — Register returns a collab.Error tagged
// collab.KindManglingCollision instead.
func (c *Catalog) Register(file, rule string) (string, error) {
	mangled := Mangle(file, rule)
	origin := Origin{File: file, Rule: rule}

	if existing, ok := c.reverse[mangled]; ok {
		if existing != origin {
			return "", collab.ManglingCollision(fmt.Sprintf(
				"mangled name %q already registered to {File: %s Rule: %s}, cannot also register {File: %s Rule: %s}",
				mangled, existing.File, existing.Rule, origin.File, origin.Rule,
			))
		}
		return mangled, nil
	}

	c.reverse[mangled] = origin
	return mangled, nil
}

// Lookup recovers the origin a mangled identifier was registered under.
func (c *Catalog) Lookup(mangled string) (Origin, bool) {
	o, ok := c.reverse[mangled]
	return o, ok
}

// Import parses the three-token remark shape named in spec.md §6 —
// the literal token "import" followed by a target filename and target
// rule name — and registers that (file, rule) pair into c, returning
// the mangled identifier. Any other token count, or a first token other
// than "import", is a collab.Error tagged collab.KindParse.
func (c *Catalog) Import(remark string) (string, error) {
	tokens := strings.Fields(remark)
	if len(tokens) != 3 || tokens[0] != "import" {
		return "", collab.Parse(fmt.Sprintf("import remark must be exactly \"import <file> <rule>\", got %q", remark))
	}
	return c.Register(tokens[1], tokens[2])
}

// Package abnf names the ABNF front-end collaborator's interface only —
// spec.md §1/§6 are explicit that ABNF parsing itself is out of scope,
// "named only by their interface," contributing no hard engineering of
// its own. No parser lives here. What this package does provide is a
// small helper, RuleSet, so a caller already holding parsed rules (from
// whatever Frontend implementation they supply) can lower them through
// the pattern algebra without the core ever needing to know ABNF syntax
// exists.
package abnf

import (
	"github.com/dekarrin/finlang/pattern"
)

// Rule is a single named ABNF production, already reduced to pattern
// form by whatever Frontend produced it.
type Rule struct {
	Name    string
	Pattern pattern.Tree[rune]
}

// Frontend is the external collaborator's contract: turn ABNF source
// text into a list of rules. This module implements no Frontend; it is
// supplied by whatever ABNF parser a caller wires in.
type Frontend interface {
	Parse(source string) ([]Rule, error)
}

// RuleSet is a parsed collection of rules, addressable by name.
type RuleSet struct {
	rules map[string]Rule
	order []string
}

// NewRuleSet builds a RuleSet from rules, in the given order (reported by
// Names, for callers that care about declaration order; Lower's map
// result carries no order).
func NewRuleSet(rules []Rule) RuleSet {
	rs := RuleSet{rules: make(map[string]Rule, len(rules)), order: make([]string, 0, len(rules))}
	for _, r := range rules {
		if _, exists := rs.rules[r.Name]; !exists {
			rs.order = append(rs.order, r.Name)
		}
		rs.rules[r.Name] = r
	}
	return rs
}

// Rule returns the named rule and whether it exists.
func (rs RuleSet) Rule(name string) (Rule, bool) {
	r, ok := rs.rules[name]
	return r, ok
}

// Names returns the rule names in declaration order.
func (rs RuleSet) Names() []string {
	out := make([]string, len(rs.order))
	copy(out, rs.order)
	return out
}

// Lower folds every rule's pattern through target, returning a map from
// rule name to its lowered value. This is the one piece of machinery
// this package contributes: compiling already-parsed rules requires
// nothing ABNF-specific, just pattern.Fold applied rule by rule.
func Lower[T any](rs RuleSet, target pattern.Target[rune, T]) map[string]T {
	out := make(map[string]T, len(rs.rules))
	for name, r := range rs.rules {
		out[name] = pattern.Fold(r.Pattern, target)
	}
	return out
}

// Package codepoint implements the Unicode codec lookups named in
// spec.md §6: bounded, indexed projections of a code point in
// [0, 0x10FFFF] to its raw integer, UTF-8, UTF-16, UTF-32, ASCII, and
// JSON-string encodings.
//
// Grounded on spec.md §9's "build them lazily on first use, then freeze;
// no synchronization is needed for reads" note: the package's small
// constant lookup tables (the hex-nibble encoding table, the single-
// character JSON escape table) are built exactly once behind sync.Once,
// mirroring the teacher's own package-level sync.Once-guarded state (see
// DESIGN.md for the specific teacher grounding). The per-code-point
// UTF-8/16/32/ASCII conversions are cheap pure stdlib calls and are not
// cached — there is no 1.1-million-entry table actually held in memory,
// only the small fixed tables the encodings are built from.
package codepoint

import (
	"fmt"
	"sync"
	"unicode/utf16"
	"unicode/utf8"

	"github.com/dekarrin/finlang/automaton"
)

// MaxCodePoint is the largest valid Unicode code point, 0x10FFFF.
const MaxCodePoint = 0x10FFFF

// InRange reports whether i is a valid lookup index, [0, MaxCodePoint].
func InRange(i rune) bool {
	return i >= 0 && i <= MaxCodePoint
}

// UTF8 returns i's UTF-8 byte encoding, and false if i is out of range.
func UTF8(i rune) ([]byte, bool) {
	if !InRange(i) {
		return nil, false
	}
	buf := make([]byte, utf8.UTFMax)
	n := utf8.EncodeRune(buf, i)
	return buf[:n], true
}

// UTF16 returns i's UTF-16 code-unit encoding: one unit for i < 0x10000,
// a surrogate pair for i >= 0x10000. False if i is out of range.
func UTF16(i rune) ([]uint16, bool) {
	if !InRange(i) {
		return nil, false
	}
	if i < 0x10000 {
		return []uint16{uint16(i)}, true
	}
	hi, lo := utf16.EncodeRune(i)
	return []uint16{uint16(hi), uint16(lo)}, true
}

// UTF32 returns i's UTF-32 encoding (i itself, widened), and false if i
// is out of range.
func UTF32(i rune) (uint32, bool) {
	if !InRange(i) {
		return 0, false
	}
	return uint32(i), true
}

// ASCII returns i's ASCII byte, restricted to i <= 0x7F.
func ASCII(i rune) (byte, bool) {
	if i < 0 || i > 0x7F {
		return 0, false
	}
	return byte(i), true
}

var (
	hexCharsOnce sync.Once
	hexChars     [16][]byte
)

// hexCharsFor returns the ASCII byte(s) that spell nibble (0-15) in a
// JSON \u escape, case-insensitively: a single digit byte for 0-9, both
// the upper- and lower-case letter for 10-15.
func hexCharsFor(nibble int) []byte {
	hexCharsOnce.Do(func() {
		for n := 0; n < 16; n++ {
			if n < 10 {
				hexChars[n] = []byte{byte('0' + n)}
			} else {
				hexChars[n] = []byte{byte('A' - 10 + n), byte('a' - 10 + n)}
			}
		}
	})
	return hexChars[nibble]
}

var (
	escapeTableOnce sync.Once
	escapeTable     map[rune]byte
)

// singleCharEscape returns the second byte of i's single-character JSON
// backslash escape (e.g. 0x0A -> 'n'), and false if i has none.
func singleCharEscape(i rune) (byte, bool) {
	escapeTableOnce.Do(func() {
		escapeTable = map[rune]byte{
			0x22: '"', 0x5C: '\\', 0x2F: '/',
			0x08: 'b', 0x0C: 'f', 0x0A: 'n', 0x0D: 'r', 0x09: 't',
		}
	})
	b, ok := escapeTable[i]
	return b, ok
}

// literalAllowed reports whether i may appear unescaped inside a JSON
// string: not a control character, not the quote or backslash, and not
// a lone surrogate (which has no UTF-8 encoding at all).
func literalAllowed(i rune) bool {
	return i >= 0x20 && i != 0x22 && i != 0x5C && utf8.ValidRune(i)
}

// uEscapeDFA returns the DFA accepting the six-byte sequence \uHHHH for
// the given 16-bit code unit, hex digits case-insensitive.
func uEscapeDFA(unit uint16) automaton.DFA[byte] {
	b := automaton.NewBuilder[byte]()
	cur := b.AddState(false)
	b.SetInitial(cur)

	chain := func(lits []byte) {
		next := b.AddState(false)
		for _, lit := range lits {
			b.AddTransition(cur, lit, next)
		}
		cur = next
	}

	chain([]byte{'\\'})
	chain([]byte{'u'})
	chain(hexCharsFor(int(unit>>12) & 0xF))
	chain(hexCharsFor(int(unit>>8) & 0xF))
	chain(hexCharsFor(int(unit>>4) & 0xF))
	chain(hexCharsFor(int(unit) & 0xF))

	b.MarkFinal(cur)
	return b.Build()
}

// JSONStrings returns the DFA accepting every valid JSON-string encoding
// of code point i: its literal UTF-8 bytes (when legal), its single-
// character backslash escape (when it has one), and its \u escape form
// (\uHHHH for i in the BMP, \uHHHH\uHHHH over its surrogate pair
// otherwise) — all case-insensitive in the hex digits. False if i is out
// of range.
func JSONStrings(i rune) (automaton.DFA[byte], bool) {
	if !InRange(i) {
		return automaton.DFA[byte]{}, false
	}

	var alternatives []automaton.DFA[byte]

	if literalAllowed(i) {
		if lit, ok := UTF8(i); ok {
			alternatives = append(alternatives, automaton.Verbatim(lit))
		}
	}
	if esc, ok := singleCharEscape(i); ok {
		alternatives = append(alternatives, automaton.Verbatim([]byte{'\\', esc}))
	}
	if i <= 0xFFFF {
		alternatives = append(alternatives, uEscapeDFA(uint16(i)))
	} else {
		hi, lo := utf16.EncodeRune(i)
		alternatives = append(alternatives, automaton.Concat(uEscapeDFA(uint16(hi)), uEscapeDFA(uint16(lo))))
	}

	return automaton.Union(alternatives...), true
}

// JSONStringCanonical returns the shortest string JSONStrings(i) accepts:
// literal UTF-8 bytes when legal, else the single-character escape when
// one exists, else the \u escape form (uppercase hex digits). False if i
// is out of range.
func JSONStringCanonical(i rune) ([]byte, bool) {
	if !InRange(i) {
		return nil, false
	}

	if literalAllowed(i) {
		if lit, ok := UTF8(i); ok {
			return lit, true
		}
	}
	if esc, ok := singleCharEscape(i); ok {
		return []byte{'\\', esc}, true
	}
	if i <= 0xFFFF {
		return []byte(fmt.Sprintf("\\u%04X", i)), true
	}
	hi, lo := utf16.EncodeRune(i)
	return []byte(fmt.Sprintf("\\u%04X\\u%04X", hi, lo)), true
}

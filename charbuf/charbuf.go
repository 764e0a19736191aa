// Package charbuf is the input-stream primitive the tokenizer (C3) consumes
// (C1 in the component table). It deliberately knows nothing about HTML
// lexical states, tags, or entities: its only job is handing back one rune
// at a time, normalized per the HTML input preprocessing rule, with a
// single-slot pushback and two distinct fixed-string lookahead primitives.
//
// Grounded on the teacher's inline buffer handling in tokenizer/tokenizer.go,
// pulled out into its own package so the normalization and pushback rules are
// independently testable and so the tokenizer rewrite has a narrow, explicit
// dependency instead of embedded index bookkeeping.
package charbuf

import "strings"

// Buffer is a rune-oriented view over an HTML source string.
//
// Input preprocessing (WHATWG §13.2.3.5) collapses every "\r\n" pair and
// every lone "\r" to "\n" before tokenization ever sees it. Buffer applies
// that normalization lazily, one rune at a time, rather than rewriting the
// whole input up front, so offsets reported elsewhere still refer to the
// original source text.
type Buffer struct {
	src []rune
	pos int

	reconsumed  bool
	pending     rune
	pendingSeen bool
}

// New creates a Buffer over s.
func New(s string) *Buffer {
	return &Buffer{src: []rune(s)}
}

// Next returns the next normalized rune, or ok=false at end of input.
func (b *Buffer) Next() (rune, bool) {
	if b.reconsumed {
		b.reconsumed = false
		return b.pending, true
	}
	if b.pos >= len(b.src) {
		return 0, false
	}
	r := b.src[b.pos]
	b.pos++
	if r == '\r' {
		if b.pos < len(b.src) && b.src[b.pos] == '\n' {
			b.pos++
		}
		r = '\n'
	}
	b.pending = r
	b.pendingSeen = true
	return r, true
}

// Reconsume pushes the most recently returned rune back onto the buffer so
// the next Next() call returns it again. It panics if called without a
// preceding Next(), or twice in a row without an intervening Next() — HTML's
// "reconsume" verb only ever rewinds by exactly one character.
func (b *Buffer) Reconsume() {
	if !b.pendingSeen {
		panic("charbuf: Reconsume with no prior Next")
	}
	if b.reconsumed {
		panic("charbuf: Reconsume called twice without an intervening Next")
	}
	b.reconsumed = true
}

// IsEmpty reports whether the buffer has no more input (and nothing pushed
// back to reconsume).
func (b *Buffer) IsEmpty() bool {
	return !b.reconsumed && b.pos >= len(b.src)
}

// PeekExact reports whether the next len(s) normalized runes equal s
// exactly, case-sensitively, without consuming them. Used for the single
// case-sensitive match the tokenizer needs: "[CDATA[" in
// MarkupDeclarationOpen.
func (b *Buffer) PeekExact(s string) bool {
	return b.peek(s, false)
}

// PeekExactCaseInsensitive reports whether the next len(s) normalized runes
// match s under ASCII case-insensitive comparison, without consuming them.
// Used for "DOCTYPE" and the few other ASCII-keyword lookaheads the
// tokenizer performs.
func (b *Buffer) PeekExactCaseInsensitive(s string) bool {
	return b.peek(s, true)
}

func (b *Buffer) peek(s string, foldCase bool) bool {
	want := []rune(s)

	savedPos, savedReconsumed, savedPending, savedPendingSeen := b.pos, b.reconsumed, b.pending, b.pendingSeen
	defer func() {
		b.pos, b.reconsumed, b.pending, b.pendingSeen = savedPos, savedReconsumed, savedPending, savedPendingSeen
	}()

	for _, w := range want {
		r, ok := b.Next()
		if !ok || !runeEq(r, w, foldCase) {
			return false
		}
	}
	return true
}

func runeEq(a, b rune, foldCase bool) bool {
	if a == b {
		return true
	}
	if !foldCase {
		return false
	}
	return strings.EqualFold(string(a), string(b))
}

// Consume advances past n runes (or to the end of input, if fewer remain).
// After a successful PeekExact/PeekExactCaseInsensitive(s), callers pass
// len([]rune(s)). It does not itself check the match; callers peek, decide,
// then consume.
func (b *Buffer) Consume(n int) {
	for i := 0; i < n; i++ {
		if _, ok := b.Next(); !ok {
			return
		}
	}
}

package charbuf

import "testing"

func TestNextBasic(t *testing.T) {
	b := New("ab")
	r, ok := b.Next()
	if !ok || r != 'a' {
		t.Fatalf("got %q, %v; want 'a', true", r, ok)
	}
	r, ok = b.Next()
	if !ok || r != 'b' {
		t.Fatalf("got %q, %v; want 'b', true", r, ok)
	}
	if _, ok := b.Next(); ok {
		t.Fatalf("expected end of input")
	}
}

func TestCRLFNormalization(t *testing.T) {
	cases := map[string]string{
		"a\r\nb": "a\nb",
		"a\rb":   "a\nb",
		"a\r":    "a\n",
		"a\n\rb": "a\n\nb",
	}
	for in, want := range cases {
		b := New(in)
		var got []rune
		for {
			r, ok := b.Next()
			if !ok {
				break
			}
			got = append(got, r)
		}
		if string(got) != want {
			t.Errorf("New(%q) normalized to %q, want %q", in, string(got), want)
		}
	}
}

func TestReconsume(t *testing.T) {
	b := New("xy")
	r, _ := b.Next()
	if r != 'x' {
		t.Fatalf("got %q", r)
	}
	b.Reconsume()
	r, ok := b.Next()
	if !ok || r != 'x' {
		t.Fatalf("after Reconsume, got %q, %v; want 'x', true", r, ok)
	}
	r, ok = b.Next()
	if !ok || r != 'y' {
		t.Fatalf("got %q, %v; want 'y', true", r, ok)
	}
}

func TestReconsumeWithoutNextPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic")
		}
	}()
	New("x").Reconsume()
}

func TestReconsumeTwicePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic")
		}
	}()
	b := New("x")
	b.Next()
	b.Reconsume()
	b.Reconsume()
}

func TestPeekExactCaseSensitive(t *testing.T) {
	b := New("[CDATA[rest")
	if !b.PeekExact("[CDATA[") {
		t.Fatal("expected exact match")
	}
	if b.PeekExact("[cdata[") {
		t.Fatal("PeekExact must not fold case")
	}
	// Peeking must not consume.
	r, _ := b.Next()
	if r != '[' {
		t.Fatalf("peek consumed input: got %q", r)
	}
}

func TestPeekExactCaseInsensitive(t *testing.T) {
	b := New("DoCtYpE html")
	if !b.PeekExactCaseInsensitive("doctype") {
		t.Fatal("expected case-insensitive match")
	}
	b.Consume(7)
	r, _ := b.Next()
	if r != ' ' {
		t.Fatalf("got %q after consuming DOCTYPE", r)
	}
}

func TestPeekPastEndOfInput(t *testing.T) {
	b := New("ab")
	if b.PeekExact("abc") {
		t.Fatal("peek past end of input must fail")
	}
	// state must be unchanged
	r, ok := b.Next()
	if !ok || r != 'a' {
		t.Fatalf("peek corrupted buffer state: got %q, %v", r, ok)
	}
}

func TestIsEmpty(t *testing.T) {
	b := New("")
	if !b.IsEmpty() {
		t.Fatal("empty source should report IsEmpty")
	}
	b = New("a")
	if b.IsEmpty() {
		t.Fatal("non-empty source should not report IsEmpty before consuming")
	}
	b.Next()
	if !b.IsEmpty() {
		t.Fatal("should report IsEmpty after consuming only rune")
	}
}

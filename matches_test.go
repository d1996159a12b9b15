package pack

import (
	"reflect"
	"testing"
)

func TestToMatches(t *testing.T) {
	src := []byte{1, 2, 1, 2, 1}
	tokens, _ := Encode(src, 20)

	got := ToMatches(nil, tokens, MatchOptions{})
	want := []Match{
		{Unmatched: 2, Length: 2, Distance: 2},
		{Unmatched: 1},
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %+v, want %+v", got, want)
	}

	// Too short for MinLength: everything is literal.
	got = ToMatches(nil, tokens, MatchOptions{MinLength: 4})
	if want := []Match{{Unmatched: 5}}; !reflect.DeepEqual(got, want) {
		t.Fatalf("MinLength: got %+v, want %+v", got, want)
	}
}

func TestToMatchesRelative(t *testing.T) {
	src := pixels(600)
	abs := WindowEncoder{WindowSize: 16}
	rel := WindowEncoder{WindowSize: 16, Addressing: Relative}

	a := ToMatches(nil, abs.Encode(nil, src), MatchOptions{Addressing: Absolute})
	r := ToMatches(nil, rel.Encode(nil, src), MatchOptions{Addressing: Relative})
	if !reflect.DeepEqual(a, r) {
		t.Fatal("absolute and relative parses give different matches")
	}
}

func TestTextEncoder(t *testing.T) {
	src := []byte{1, 2, 1, 2, 1}
	tokens, _ := Encode(src, 20)
	out, err := Export(nil, src, tokens, TextEncoder{}, MatchOptions{})
	if err != nil {
		t.Fatal(err)
	}
	if want := "1 2 <2,2> 1\n"; string(out) != want {
		t.Fatalf("got %q, want %q", out, want)
	}

	if _, err := Export(nil, src[:3], tokens, TextEncoder{}, MatchOptions{}); err == nil {
		t.Fatal("expected an error for tokens that don't match the source")
	}
}

func TestSplitMatches(t *testing.T) {
	matches := []Match{
		{Unmatched: 3, Length: 4, Distance: 2},
		{Unmatched: 2, Length: 5, Distance: 1},
		{Unmatched: 6},
	}
	head, tail := SplitMatches(nil, matches, 10)
	want := []Match{
		{Unmatched: 3, Length: 4, Distance: 2},
		{Unmatched: 2, Length: 1, Distance: 1},
	}
	if !reflect.DeepEqual(head, want) {
		t.Fatalf("head: got %+v, want %+v", head, want)
	}
	want = []Match{
		{Length: 4, Distance: 1},
		{Unmatched: 6},
	}
	if !reflect.DeepEqual(tail, want) {
		t.Fatalf("tail: got %+v, want %+v", tail, want)
	}

	head, tail = SplitMatches(nil, []Match{{Unmatched: 8, Length: 2, Distance: 1}}, 5)
	if !reflect.DeepEqual(head, []Match{{Unmatched: 5}}) || !reflect.DeepEqual(tail, []Match{{Unmatched: 3, Length: 2, Distance: 1}}) {
		t.Fatalf("literal split: head %+v, tail %+v", head, tail)
	}
}

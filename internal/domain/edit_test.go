package domain

import "testing"

func TestEditBufferSplicing(t *testing.T) {
	src := []byte("abcdef")

	buf := newEditBuffer(src)
	buf.edits = append(buf.edits, edit{start: 0, end: 2, text: "XY"})
	buf.edits = append(buf.edits, edit{start: 4, end: 6, text: "Z"})

	if got := string(buf.bytes()); got != "XYcdZ" {
		t.Errorf("got %q, want %q", got, "XYcdZ")
	}
}

func TestEditBufferNoEdits(t *testing.T) {
	src := []byte("unchanged")

	if got := string(newEditBuffer(src).bytes()); got != "unchanged" {
		t.Errorf("got %q, want %q", got, "unchanged")
	}
}

func TestEditBufferOverlapFirstWins(t *testing.T) {
	src := []byte("abcdef")

	buf := newEditBuffer(src)
	buf.edits = append(buf.edits, edit{start: 0, end: 4, text: "W"})
	buf.edits = append(buf.edits, edit{start: 2, end: 6, text: "LOSER"})

	if got := string(buf.bytes()); got != "Wef" {
		t.Errorf("got %q, want %q", got, "Wef")
	}
}

func TestEditBufferOutOfOrderEdits(t *testing.T) {
	src := []byte("one two three")

	buf := newEditBuffer(src)
	buf.edits = append(buf.edits, edit{start: 8, end: 13, text: "3"})
	buf.edits = append(buf.edits, edit{start: 0, end: 3, text: "1"})

	if got := string(buf.bytes()); got != "1 two 3" {
		t.Errorf("got %q, want %q", got, "1 two 3")
	}
}

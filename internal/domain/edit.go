package domain

import (
	"sort"

	sitter "github.com/smacker/go-tree-sitter"
)

// edit is a queued replacement of one source byte range.
type edit struct {
	start uint32
	end   uint32
	text  string
}

// editBuffer collects byte-range replacements against an immutable source and
// recomposes the rewritten text in one pass. Working on byte offsets keeps
// every untouched character, including comments and whitespace, exactly as it
// was in the input.
type editBuffer struct {
	src   []byte
	edits []edit
}

func newEditBuffer(src []byte) *editBuffer {
	return &editBuffer{src: src}
}

// replaceNode queues a replacement of the node's source text. Replacements
// that match the existing text are dropped.
func (b *editBuffer) replaceNode(n *sitter.Node, text string) {
	if n.Content(b.src) == text {
		return
	}

	b.edits = append(b.edits, edit{start: n.StartByte(), end: n.EndByte(), text: text})
}

// bytes applies the queued edits and returns the rewritten source. The
// original slice is never modified.
func (b *editBuffer) bytes() []byte {
	if len(b.edits) == 0 {
		out := make([]byte, len(b.src))
		copy(out, b.src)

		return out
	}

	edits := make([]edit, len(b.edits))
	copy(edits, b.edits)
	sort.SliceStable(edits, func(i, j int) bool { return edits[i].start < edits[j].start })

	out := make([]byte, 0, len(b.src)+len(b.src)/8)

	var cursor uint32

	for _, e := range edits {
		if e.start < cursor {
			// Overlapping edit: the first decision for a range wins.
			continue
		}

		out = append(out, b.src[cursor:e.start]...)
		out = append(out, e.text...)
		cursor = e.end
	}

	out = append(out, b.src[cursor:]...)

	return out
}

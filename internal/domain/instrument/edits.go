package instrument

import (
	"sort"
	"strings"
)

// insertion is text spliced into the original source at offset. Closing
// insertions terminate a construct opened by an earlier opening insertion.
type insertion struct {
	offset  int
	text    string
	closing bool
	seq     int
}

// editBuffer collects insertions against an immutable source. Only
// insertions are supported so every original byte survives and ranges
// always refer to the original text.
type editBuffer struct {
	items []insertion
}

// open registers text that starts a construct at offset, or stands alone.
func (b *editBuffer) open(offset int, text string) {
	b.items = append(b.items, insertion{offset: offset, text: text, seq: len(b.items)})
}

// close registers text that ends a construct at offset.
func (b *editBuffer) close(offset int, text string) {
	b.items = append(b.items, insertion{offset: offset, text: text, closing: true, seq: len(b.items)})
}

// Len returns the number of registered insertions.
func (b *editBuffer) Len() int {
	return len(b.items)
}

// apply renders src with every insertion in place. At one offset closing
// insertions come first, innermost (latest registered) first, followed by
// opening insertions, outermost (earliest registered) first.
func (b *editBuffer) apply(src []byte) []byte {
	items := make([]insertion, len(b.items))
	copy(items, b.items)

	sort.SliceStable(items, func(i, j int) bool {
		a, c := items[i], items[j]
		if a.offset != c.offset {
			return a.offset < c.offset
		}

		if a.closing != c.closing {
			return a.closing
		}

		if a.closing {
			return a.seq > c.seq
		}

		return a.seq < c.seq
	})

	var out strings.Builder

	out.Grow(len(src) + 32*len(items))

	last := 0

	for _, it := range items {
		if it.offset < last || it.offset > len(src) {
			continue
		}

		out.Write(src[last:it.offset])
		out.WriteString(it.text)

		last = it.offset
	}

	out.Write(src[last:])

	return []byte(out.String())
}

// set replaces the text of the i-th registered insertion.
func (b *editBuffer) set(i int, text string) {
	b.items[i].text = text
}

package core

// Document is the character buffer being edited (Using Runes).
// Offsets everywhere in the engine are rune offsets into this buffer.
type Document struct {
	runes   []rune
	version uint64 // Bumped on every mutation; keys the layout cache
}

// NewDocument creates a document holding text
func NewDocument(text string) *Document {
	return &Document{runes: []rune(text)}
}

// Text returns the entire buffer content as a string
func (d *Document) Text() string {
	return string(d.runes)
}

// Runes returns the underlying runes. Callers must not modify the slice.
func (d *Document) Runes() []rune {
	return d.runes
}

// Len returns the number of runes in the document
func (d *Document) Len() int {
	return len(d.runes)
}

// Version returns the mutation counter
func (d *Document) Version() uint64 {
	return d.version
}

// IsEmpty reports whether the document holds no characters
func (d *Document) IsEmpty() bool {
	return len(d.runes) == 0
}

// RuneAt returns the rune at offset, or 0 when offset is outside the buffer.
func (d *Document) RuneAt(offset int) rune {
	if offset < 0 || offset >= len(d.runes) {
		return 0
	}
	return d.runes[offset]
}

// Slice returns the text in [start, end), clamped to the buffer.
func (d *Document) Slice(start, end int) string {
	start = d.clamp(start)
	end = d.clamp(end)
	if start >= end {
		return ""
	}
	return string(d.runes[start:end])
}

// HasPrefixAt reports whether prefix occurs at offset.
func (d *Document) HasPrefixAt(offset int, prefix string) bool {
	p := []rune(prefix)
	if offset < 0 || offset+len(p) > len(d.runes) {
		return false
	}
	for i, r := range p {
		if d.runes[offset+i] != r {
			return false
		}
	}
	return true
}

// SetText replaces the whole content
func (d *Document) SetText(text string) {
	d.runes = []rune(text)
	d.version++
}

// Insert inserts runes at offset. The offset is clamped to [0, Len()].
func (d *Document) Insert(offset int, runes []rune) {
	if len(runes) == 0 {
		return
	}
	offset = d.clamp(offset)

	newRunes := make([]rune, 0, len(d.runes)+len(runes))
	newRunes = append(newRunes, d.runes[:offset]...)
	newRunes = append(newRunes, runes...)
	newRunes = append(newRunes, d.runes[offset:]...)
	d.runes = newRunes
	d.version++
}

// InsertString is Insert for string input
func (d *Document) InsertString(offset int, text string) {
	d.Insert(offset, []rune(text))
}

// Erase deletes count runes starting at offset, returning how many were removed.
func (d *Document) Erase(offset, count int) int {
	offset = d.clamp(offset)
	end := d.clamp(offset + max(count, 0))
	if end <= offset {
		return 0
	}

	d.runes = append(d.runes[:offset:offset], d.runes[end:]...)
	d.version++
	return end - offset
}

func (d *Document) clamp(offset int) int {
	return max(0, min(offset, len(d.runes)))
}

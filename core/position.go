package core

import "sort"

// LineIndexAt returns the index of the wrapped line containing offset.
//
// Lines are closed intervals [Start, End], so an offset on a boundary shared
// by two lines resolves to the earlier one. Offsets past every line resolve to
// the last line.
func LineIndexAt(offset int, lines []WrappedLine) int {
	if len(lines) == 0 {
		return 0
	}

	// Ends are non-decreasing, so the first line ending at or after offset is
	// the earliest candidate.
	i := sort.Search(len(lines), func(i int) bool {
		return lines[i].End() >= offset
	})
	if i < len(lines) && lines[i].Contains(offset) {
		return i
	}
	return len(lines) - 1
}

// LineStart returns the start offset of the wrapped line at index.
func LineStart(index int, lines []WrappedLine) int {
	if len(lines) == 0 {
		return 0
	}
	index = max(0, min(index, len(lines)-1))
	return lines[index].Start
}

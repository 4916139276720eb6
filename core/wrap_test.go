package core_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/ionut-t/codepad/core"
)

func TestWrap(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		width float64
		want  []core.WrappedLine
	}{
		{
			name:  "empty text",
			text:  "",
			width: 80,
			want:  []core.WrappedLine{{}},
		},
		{
			name:  "breaks at width",
			text:  "hello world",
			width: 5,
			want: []core.WrappedLine{
				{Text: "hello", Start: 0, Length: 5},
				{Text: " worl", Start: 5, Length: 5},
				{Text: "d", Start: 10, Length: 1},
			},
		},
		{
			name:  "blank logical line",
			text:  "ab\n\ncd",
			width: 80,
			want: []core.WrappedLine{
				{Text: "ab", Start: 0, Length: 2},
				{Start: 3, LogicalLine: 1, LogicalLineStart: 3},
				{Text: "cd", Start: 4, Length: 2, LogicalLine: 2, LogicalLineStart: 4},
			},
		},
		{
			name:  "trailing newline",
			text:  "ab\n",
			width: 80,
			want: []core.WrappedLine{
				{Text: "ab", Start: 0, Length: 2},
				{Start: 3, LogicalLine: 1, LogicalLineStart: 3},
			},
		},
		{
			name:  "wrapped segments share logical line",
			text:  "abcd\nef",
			width: 2,
			want: []core.WrappedLine{
				{Text: "ab", Start: 0, Length: 2},
				{Text: "cd", Start: 2, Length: 2},
				{Text: "ef", Start: 5, Length: 2, LogicalLine: 1, LogicalLineStart: 5},
			},
		},
		{
			name:  "glyph wider than viewport still progresses",
			text:  "世界",
			width: 1,
			want: []core.WrappedLine{
				{Text: "世", Start: 0, Length: 1},
				{Text: "界", Start: 1, Length: 1},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := core.Wrap([]rune(tt.text), tt.width, core.CellMeasurer{})
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestWrap_FirstSegment(t *testing.T) {
	lines := core.Wrap([]rune("abcd"), 2, core.CellMeasurer{})
	require.Len(t, lines, 2)

	assert.True(t, lines[0].IsFirstSegment())
	assert.False(t, lines[1].IsFirstSegment())
}

func TestWrap_FixedMeasurer(t *testing.T) {
	m := core.FixedMeasurer{Advance: 8, Height: 16}
	lines := core.Wrap([]rune("abcdef"), 20, m)

	require.Len(t, lines, 3)
	assert.Equal(t, "ab", lines[0].Text)
	assert.Equal(t, "cd", lines[1].Text)
	assert.Equal(t, "ef", lines[2].Text)
}

func TestProperty_WrapCoversEveryOffset(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		text := []rune(rapid.StringOfN(rapid.RuneFrom([]rune("ab \n世")), 0, 60, -1).Draw(rt, "text"))
		width := float64(rapid.IntRange(1, 20).Draw(rt, "width"))

		lines := core.Wrap(text, width, core.CellMeasurer{})
		require.NotEmpty(rt, lines)

		for i := 1; i < len(lines); i++ {
			require.Greater(rt, lines[i].Start, lines[i-1].Start, "starts must strictly increase")
		}

		for offset := 0; offset <= len(text); offset++ {
			idx := core.LineIndexAt(offset, lines)
			require.True(rt, lines[idx].Contains(offset), "offset %d not in line %d", offset, idx)

			for j := 0; j < idx; j++ {
				require.False(rt, lines[j].Contains(offset), "earlier line %d also contains %d", j, offset)
			}
		}

		for _, line := range lines {
			require.Equal(rt, string(text[line.Start:line.End()]), line.Text)
			if line.Length > 1 {
				require.LessOrEqual(rt, core.CellMeasurer{}.MeasureWidth(line.Text), width)
			}
		}
	})
}

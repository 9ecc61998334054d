package timeline

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// UnitsPerColumn converts layout units into terminal columns.
const UnitsPerColumn = 10.0

// Colors are the theme-dependent colours used when drawing a layout.
type Colors struct {
	Label string
	Tick  string
	Grid  string
	Text  string
}

type RenderOptions struct {
	// Width is the total number of columns available, labels included.
	Width int
	// XOffset is the number of track columns scrolled past on the left.
	XOffset int
	// Selected is an index into Layout.Blocks, or -1.
	Selected int
	Colors   Colors
}

// Columns returns the number of terminal columns the whole track occupies.
func (l Layout) Columns() int {
	return int(math.Ceil(l.TimeScale / UnitsPerColumn))
}

func (l Layout) labelWidth() int {
	w := 0
	for _, r := range l.Rows {
		w = max(w, lipgloss.Width(r.Label))
	}
	return w + 1
}

// TrackWidth is the number of track columns visible at a given total width.
func (l Layout) TrackWidth(width int) int {
	return max(10, width-l.labelWidth()-1)
}

// MaxXOffset is the furthest the track can be scrolled at a given width.
func (l Layout) MaxXOffset(width int) int {
	return max(0, l.Columns()-l.TrackWidth(width))
}

// ColumnSpan maps a block to the half-open column range it occupies. Every
// block gets at least one column.
func ColumnSpan(b Block) (int, int) {
	start := int(math.Round(b.Offset / UnitsPerColumn))
	end := int(math.Round((b.Offset + b.Width) / UnitsPerColumn))
	if end <= start {
		end = start + 1
	}
	return start, end
}

type cell struct {
	r    rune
	fg   string
	bg   string
	bold bool
}

// Render draws the layout as text: an axis line, a tick line and one line
// per machine.
func Render(l Layout, opts RenderOptions) string {
	muted := lipgloss.NewStyle().Foreground(lipgloss.Color(opts.Colors.Tick))
	if l.Empty {
		return muted.Render(l.Message)
	}

	total := l.Columns()
	labelW := l.labelWidth()
	visible := l.TrackWidth(opts.Width)
	from := min(max(0, opts.XOffset), max(0, total-visible))
	to := min(total, from+visible)

	var b strings.Builder
	pad := strings.Repeat(" ", labelW+1)

	axis := newCells(total+8, ' ', opts.Colors.Tick)
	ticks := newCells(total+1, '─', opts.Colors.Grid)
	for _, m := range l.Markers {
		col := int(math.Round(m.Offset / UnitsPerColumn))
		for i, r := range strconv.Itoa(m.Time) {
			if col+i < len(axis) {
				axis[col+i].r = r
			}
		}
		if col < len(ticks) {
			ticks[col] = cell{r: '┬', fg: opts.Colors.Tick}
		}
	}
	axisEnd, tickEnd := to, to
	if to == total {
		axisEnd, tickEnd = len(axis), len(ticks)
	}
	b.WriteString(pad + strings.TrimRight(renderCells(axis[from:axisEnd]), " ") + "\n")
	b.WriteString(pad + renderCells(ticks[from:tickEnd]) + "\n")

	labelStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(opts.Colors.Label)).Width(labelW).Bold(true)
	index := 0
	for _, row := range l.Rows {
		track := newCells(total, '·', opts.Colors.Grid)
		for _, blk := range row.Blocks {
			paintBlock(track, blk, index == opts.Selected, opts.Colors.Text)
			index++
		}
		b.WriteString(labelStyle.Render(row.Label) + "│" + renderCells(track[from:to]) + "\n")
	}

	if l.Degenerate {
		b.WriteString(muted.Render("makespan is 0: blocks drawn at minimum width"))
	} else if from > 0 || to < total {
		b.WriteString(muted.Render(fmt.Sprintf("columns %d-%d of %d", from+1, to, total)))
	}
	return strings.TrimRight(b.String(), "\n")
}

func newCells(n int, r rune, fg string) []cell {
	cells := make([]cell, n)
	for i := range cells {
		cells[i] = cell{r: r, fg: fg}
	}
	return cells
}

func paintBlock(track []cell, blk Block, selected bool, text string) {
	start, end := ColumnSpan(blk)
	start = min(start, len(track))
	end = min(end, len(track))
	if start >= end {
		return
	}
	fill := ' '
	if selected {
		fill = '▒'
	}
	for i := start; i < end; i++ {
		track[i] = cell{r: fill, fg: text, bg: blk.Color, bold: selected}
	}
	if end-start >= len(blk.Label) {
		for i, r := range blk.Label {
			track[start+i].r = r
		}
	}
}

func renderCells(cells []cell) string {
	var b strings.Builder
	var run []rune
	flush := func(c cell) {
		if len(run) == 0 {
			return
		}
		s := lipgloss.NewStyle().Foreground(lipgloss.Color(c.fg)).Bold(c.bold)
		if c.bg != "" {
			s = s.Background(lipgloss.Color(c.bg))
		}
		b.WriteString(s.Render(string(run)))
		run = run[:0]
	}
	for i, c := range cells {
		if i > 0 && !sameStyle(cells[i-1], c) {
			flush(cells[i-1])
		}
		run = append(run, c.r)
	}
	if len(cells) > 0 {
		flush(cells[len(cells)-1])
	}
	return b.String()
}

func sameStyle(a, b cell) bool {
	return a.fg == b.fg && a.bg == b.bg && a.bold == b.bold
}

package core

import "pkt.systems/codetribe/schema"

// consoleView is a snapshot of a console's visible state.
type consoleView struct {
	Lines        []string
	TotalLines   int
	ScrollOffset int
	AtBottom     bool
}

// console stores execution output scrollback and scroll state.
// ScrollOffset is the number of lines from the bottom; 0 means at bottom.
type console struct {
	lines        []string
	scrollOffset int
	maxLines     int
}

func newConsole(maxLines int) *console {
	if maxLines <= 0 {
		maxLines = schema.DefaultConsoleMaxLines
	}
	return &console{maxLines: maxLines}
}

// Append adds lines to the console. If the console is scrolled up,
// the scroll offset is increased to keep the view anchored.
func (c *console) Append(lines ...string) {
	if len(lines) == 0 {
		return
	}
	c.lines = append(c.lines, lines...)
	if c.scrollOffset > 0 {
		c.scrollOffset += len(lines)
	}
	if c.maxLines > 0 && len(c.lines) > c.maxLines {
		trim := len(c.lines) - c.maxLines
		c.lines = c.lines[trim:]
		if c.scrollOffset > len(c.lines) {
			c.scrollOffset = len(c.lines)
		}
		if c.scrollOffset < 0 {
			c.scrollOffset = 0
		}
	}
}

// ResetScroll returns the view to the bottom.
func (c *console) ResetScroll() {
	c.scrollOffset = 0
}

// Scroll adjusts the scroll offset by delta. Positive delta scrolls up
// (older lines), negative delta scrolls down. Limit is the viewport height.
func (c *console) Scroll(delta, limit int) {
	c.scrollOffset = clampScroll(c.scrollOffset+delta, len(c.lines), limit)
}

// Snapshot returns a view of the console for the given viewport limit.
func (c *console) Snapshot(limit int) consoleView {
	total := len(c.lines)
	if limit <= 0 || limit > total {
		limit = total
	}

	maxOffset := maxScroll(total, limit)
	if c.scrollOffset > maxOffset {
		c.scrollOffset = maxOffset
	}

	end := total - c.scrollOffset
	if end < 0 {
		end = 0
	}
	start := end - limit
	if start < 0 {
		start = 0
	}

	lines := make([]string, end-start)
	copy(lines, c.lines[start:end])

	return consoleView{
		Lines:        lines,
		TotalLines:   total,
		ScrollOffset: c.scrollOffset,
		AtBottom:     c.scrollOffset == 0,
	}
}

func maxScroll(total, limit int) int {
	if total <= 0 || limit <= 0 {
		return 0
	}
	if total <= limit {
		return 0
	}
	return total - limit
}

func clampScroll(offset, total, limit int) int {
	max := maxScroll(total, limit)
	if offset < 0 {
		return 0
	}
	if offset > max {
		return max
	}
	return offset
}

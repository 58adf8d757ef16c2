package reader

// Cursor is a mutable position over an immutable slice of lines.
// Lines pushed back with Unshift are served before the underlying slice.
type Cursor struct {
	lines    []Line
	pos      int
	pushback []Line
	lastRead Line
	mark     Line
}

// New creates a cursor over lines. The slice is not copied and must not be
// modified afterwards.
func New(lines []Line) *Cursor {
	return &Cursor{lines: lines}
}

// HasMore reports whether any lines remain.
func (c *Cursor) HasMore() bool {
	return len(c.pushback) > 0 || c.pos < len(c.lines)
}

// Peek returns the next line without consuming it.
func (c *Cursor) Peek() (Line, bool) {
	if n := len(c.pushback); n > 0 {
		return c.pushback[n-1], true
	}
	if c.pos < len(c.lines) {
		return c.lines[c.pos], true
	}
	return Line{}, false
}

// PeekText returns the text of the next line, or "" and false at the end.
func (c *Cursor) PeekText() (string, bool) {
	line, ok := c.Peek()
	return line.Text, ok
}

// Read consumes and returns the next line.
func (c *Cursor) Read() (Line, bool) {
	if n := len(c.pushback); n > 0 {
		line := c.pushback[n-1]
		c.pushback = c.pushback[:n-1]
		c.lastRead = line
		return line, true
	}
	if c.pos < len(c.lines) {
		line := c.lines[c.pos]
		c.pos++
		c.lastRead = line
		return line, true
	}
	return Line{}, false
}

// Advance discards the next line. It reports whether a line was discarded.
func (c *Cursor) Advance() bool {
	_, ok := c.Read()
	return ok
}

// Unshift pushes a line back so it is returned by the next Read.
func (c *Cursor) Unshift(line Line) {
	c.pushback = append(c.pushback, line)
}

// UnshiftAll pushes lines back so they are read again in their given order.
func (c *Cursor) UnshiftAll(lines []Line) {
	for i := len(lines) - 1; i >= 0; i-- {
		c.pushback = append(c.pushback, lines[i])
	}
}

// SkipBlank consumes blank lines and returns how many were skipped.
func (c *Cursor) SkipBlank() int {
	skipped := 0
	for {
		line, ok := c.Peek()
		if !ok || !line.IsBlank() {
			return skipped
		}
		c.Advance()
		skipped++
	}
}

// SkipComments consumes consecutive comment lines and returns them.
func (c *Cursor) SkipComments(isComment func(string) bool) []Line {
	var skipped []Line
	for {
		line, ok := c.Peek()
		if !ok || !isComment(line.Text) {
			return skipped
		}
		c.Advance()
		skipped = append(skipped, line)
	}
}

// Mark records the next line as the reference point for diagnostics.
func (c *Cursor) Mark() {
	if line, ok := c.Peek(); ok {
		c.mark = line
		return
	}
	c.mark = Line{Number: c.LineNumber()}
}

// MarkedLine returns the line number recorded by the last Mark.
func (c *Cursor) MarkedLine() int {
	return c.mark.Number
}

// LineNumber returns the number of the next line, or one past the last line
// read when the cursor is exhausted.
func (c *Cursor) LineNumber() int {
	if line, ok := c.Peek(); ok {
		return line.Number
	}
	if c.lastRead.Number > 0 {
		return c.lastRead.Number + 1
	}
	if n := len(c.lines); n > 0 {
		return c.lines[n-1].Number + 1
	}
	return 1
}

// LastRead returns the most recently read line.
func (c *Cursor) LastRead() Line {
	return c.lastRead
}

// Remaining consumes and returns all remaining lines.
func (c *Cursor) Remaining() []Line {
	var out []Line
	for {
		line, ok := c.Read()
		if !ok {
			return out
		}
		out = append(out, line)
	}
}

// UntilOptions controls ReadUntil.
type UntilOptions struct {
	// Terminator stops reading at a line equal to it. When set, blank lines
	// and continuations never stop the read.
	Terminator string

	// BreakOnBlank stops at a blank line.
	BreakOnBlank bool

	// BreakOnContinuation stops at a continuation line once at least one
	// line has been read. The continuation is pushed back.
	BreakOnContinuation bool

	// PreserveLast pushes the stopping line back.
	PreserveLast bool

	// ReadLast includes the stopping line in the result.
	ReadLast bool

	// SkipComments drops comment lines from the result.
	SkipComments func(string) bool
}

// ReadUntil reads lines until a stop condition holds or input runs out.
// stop may be nil. The second result reports whether reading stopped on a
// condition rather than at the end of input.
func (c *Cursor) ReadUntil(opts UntilOptions, stop func(string) bool) ([]Line, bool) {
	var result []Line
	lineRead := false
	breakOnBlank := opts.BreakOnBlank && opts.Terminator == ""
	breakOnContinuation := opts.BreakOnContinuation && opts.Terminator == ""

	for {
		line, ok := c.Read()
		if !ok {
			return result, false
		}

		complete := false
		preserve := opts.PreserveLast
		switch {
		case opts.Terminator != "" && line.Text == opts.Terminator:
			complete = true
		case breakOnBlank && line.IsBlank():
			complete = true
		case breakOnContinuation && lineRead && line.Text == Continuation:
			complete = true
			preserve = true
		case stop != nil && stop(line.Text):
			complete = true
		}

		if complete {
			if opts.ReadLast {
				result = append(result, line)
			}
			if preserve {
				c.Unshift(line)
			}
			return result, true
		}

		if opts.SkipComments != nil && opts.SkipComments(line.Text) {
			continue
		}
		result = append(result, line)
		lineRead = true
	}
}

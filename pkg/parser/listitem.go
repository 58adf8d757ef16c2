package parser

import (
	"github.com/yaklabco/adocblocks/pkg/adast"
	"github.com/yaklabco/adocblocks/pkg/reader"
)

// continuationState tracks the "+" marker while item lines are collected.
type continuationState int

const (
	continuationInactive continuationState = iota
	continuationActive
	// continuationFrozen follows two adjacent "+" lines; no further block
	// attaches until the state resets.
	continuationFrozen
)

// readLinesForListItem collects the lines that belong to the current item,
// after its marker line, up to the next sibling or the end of the list.
// Lines of nested lists are kept with their continuations so the nested
// item readers can apply them. The stopping line stays on cur.
//
// hasText is false for a description term without inline text; such an
// item keeps reading across blank lines until it finds its definition.
func (s *session) readLinesForListItem(cur *reader.Cursor, typ adast.ListType, trait string, hasText bool) []reader.Line {
	var buffer []reader.Line
	var pending *reader.Line

	state := continuationInactive
	withinNested := false
	detached := -1
	dlist := typ == adast.ListDescription

	enterNested := func(m listMatch) {
		withinNested = true
		if m.typ == adast.ListDescription && !m.hasText {
			hasText = false
		}
	}

collect:
	for cur.HasMore() {
		line, _ := cur.Read()

		if s.match.sibling(line.Text, typ, trait) {
			pending = &line
			break
		}

		prev, hasPrev := "", false
		if n := len(buffer); n > 0 {
			prev, hasPrev = buffer[n-1].Text, true
		}

		if hasPrev && prev == reader.Continuation {
			if state == continuationInactive {
				state = continuationActive
				hasText = true
				if !withinNested {
					buffer[len(buffer)-1].Text = ""
				}
			}
			if line.Text == reader.Continuation {
				if state != continuationFrozen {
					state = continuationFrozen
					buffer = append(buffer, line)
				}
				continue
			}
		}

		if d, ok := matchDelimiter(line.Text); ok {
			if state != continuationActive {
				pending = &line
				break
			}
			buffer = append(buffer, line)
			block, _ := cur.ReadUntil(reader.UntilOptions{Terminator: d.terminator, ReadLast: true}, nil)
			buffer = append(buffer, block...)
			state = continuationInactive
			continue
		}

		switch {
		case dlist && state != continuationActive && isBlockAttributeLine(line.Text):
			// An attribute line ends a description list unless the next
			// content line is a nested list item.
			attrLines := []reader.Line{line}
			interrupt := false
			for {
				next, ok := cur.Peek()
				if !ok {
					break
				}
				switch {
				case isDelimiterLine(next.Text):
					interrupt = true
				case next.Text == "" || isBlockAttributeLine(next.Text):
					cur.Advance()
					attrLines = append(attrLines, next)
					continue
				case isAnyListLine(next.Text) && !s.match.sibling(next.Text, typ, trait):
					buffer = append(buffer, attrLines...)
				default:
					interrupt = true
				}
				break
			}
			if interrupt {
				cur.UnshiftAll(attrLines)
				break collect
			}

		case state == continuationActive && line.Text != "":
			switch {
			case isLiteralLine(line.Text):
				cur.Unshift(line)
				buffer = append(buffer, s.readLiteralRun(cur, typ, trait)...)
				state = continuationInactive
			case isBlockTitle(line.Text), isBlockAttributeLine(line.Text), isAttributeEntry(line.Text):
				buffer = append(buffer, line)
			default:
				if m, ok := s.match.nestable(line.Text, withinNested); ok {
					enterNested(m)
				}
				buffer = append(buffer, line)
				state = continuationInactive
			}

		case hasPrev && prev == "":
			if line.Text == "" {
				cur.SkipBlank()
				next, ok := cur.Read()
				if !ok {
					break collect
				}
				line = next
				if s.match.sibling(line.Text, typ, trait) {
					pending = &line
					break collect
				}
			}

			if line.Text == reader.Continuation {
				detached = len(buffer)
				buffer = append(buffer, line)
				continue
			}

			if !hasText {
				// A description term still looking for its definition.
				if !withinNested {
					buffer = buffer[:len(buffer)-1]
				}
				buffer = append(buffer, line)
				hasText = true
				continue
			}

			switch decision, m := s.match.classify(line.Text, typ, trait, false); decision {
			case CloseList:
				pending = &line
				break collect
			case OpenList:
				buffer = append(buffer, line)
				enterNested(m)
			default:
				if !isLiteralLine(line.Text) {
					pending = &line
					break collect
				}
				cur.Unshift(line)
				buffer = append(buffer, s.readLiteralRun(cur, typ, trait)...)
			}

		default:
			if line.Text != "" {
				hasText = true
			}
			if decision, m := s.match.classify(line.Text, typ, trait, withinNested); decision == OpenList {
				enterNested(m)
			}
			buffer = append(buffer, line)
		}
	}

	if pending != nil {
		cur.Unshift(*pending)
	}

	if detached >= 0 {
		buffer[detached].Text = ""
	}

	for len(buffer) > 0 {
		last := buffer[len(buffer)-1].Text
		if last == "" {
			buffer = buffer[:len(buffer)-1]
			continue
		}
		if last == reader.Continuation {
			buffer = buffer[:len(buffer)-1]
		}
		break
	}

	return buffer
}

// readLiteralRun reads an indented run up to a blank line or a
// continuation. In description lists the run also ends at a sibling item,
// which may be indented.
func (s *session) readLiteralRun(cur *reader.Cursor, typ adast.ListType, trait string) []reader.Line {
	var stop func(string) bool
	if typ == adast.ListDescription {
		stop = func(line string) bool { return s.match.sibling(line, typ, trait) }
	}
	lines, _ := cur.ReadUntil(reader.UntilOptions{
		PreserveLast:        true,
		BreakOnBlank:        true,
		BreakOnContinuation: true,
	}, stop)
	return lines
}

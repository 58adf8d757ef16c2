package parser

import (
	"github.com/emirpasic/gods/stacks/arraystack"

	"github.com/yaklabco/adocblocks/pkg/adast"
)

// Stack holds the containers that are open while a document is parsed.
// Depth 0 is the document root. Blocks are attached to the innermost open
// container unless a caller addresses a depth explicitly.
type Stack struct {
	frames *arraystack.Stack
}

// NewStack creates a stack whose bottom frame is root.
func NewStack(root *adast.Block) *Stack {
	s := &Stack{frames: arraystack.New()}
	s.frames.Push(root)
	return s
}

// Push opens a container.
func (s *Stack) Push(blk *adast.Block) {
	s.frames.Push(blk)
}

// Pop closes the innermost container and returns it. The root frame is
// never popped.
func (s *Stack) Pop() *adast.Block {
	if s.frames.Size() <= 1 {
		return nil
	}
	value, ok := s.frames.Pop()
	if !ok {
		return nil
	}
	blk, _ := value.(*adast.Block)
	return blk
}

// Top returns the innermost open container.
func (s *Stack) Top() *adast.Block {
	value, ok := s.frames.Peek()
	if !ok {
		return nil
	}
	blk, _ := value.(*adast.Block)
	return blk
}

// Depth returns the depth of the innermost open container.
func (s *Stack) Depth() int {
	return s.frames.Size() - 1
}

// At returns the container open at an absolute depth, or nil when the depth
// is out of range.
func (s *Stack) At(depth int) *adast.Block {
	values := s.frames.Values()
	idx := len(values) - 1 - depth
	if depth < 0 || idx < 0 {
		return nil
	}
	blk, _ := values[idx].(*adast.Block)
	return blk
}

// Attach appends blk to the innermost open container.
func (s *Stack) Attach(blk *adast.Block) {
	adast.AppendChild(s.Top(), blk)
}

// AttachAt appends blk to the container open at depth. It reports false
// when no container is open there.
func (s *Stack) AttachAt(depth int, blk *adast.Block) bool {
	target := s.At(depth)
	if target == nil {
		return false
	}
	adast.AppendChild(target, blk)
	return true
}

// ListLevel returns the number of open lists.
func (s *Stack) ListLevel() int {
	level := 0
	it := s.frames.Iterator()
	for it.Next() {
		if blk, ok := it.Value().(*adast.Block); ok && blk.List != nil {
			level++
		}
	}
	return level
}

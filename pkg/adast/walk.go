package adast

// WalkFunc is the function signature for Walk callbacks.
// Return a non-nil error to stop the walk.
type WalkFunc func(blk *Block) error

// Walk performs a pre-order traversal starting at root. Table cells are
// visited row by row after the table itself.
func Walk(root *Block, walkFunc WalkFunc) error {
	return WalkWithContext(root, walkFunc, nil)
}

// WalkWithContext performs a traversal with enter and leave callbacks.
// Either callback may be nil.
func WalkWithContext(root *Block, enter, leave WalkFunc) error {
	if root == nil {
		return nil
	}

	if enter != nil {
		if err := enter(root); err != nil {
			return err
		}
	}

	for _, row := range root.Rows() {
		for _, cell := range row {
			if err := WalkWithContext(cell, enter, leave); err != nil {
				return err
			}
		}
	}

	for _, child := range root.Children {
		if err := WalkWithContext(child, enter, leave); err != nil {
			return err
		}
	}

	if leave != nil {
		if err := leave(root); err != nil {
			return err
		}
	}

	return nil
}

// FindAll returns all blocks matching the predicate in walk order.
func FindAll(root *Block, predicate func(blk *Block) bool) []*Block {
	var result []*Block

	//nolint:errcheck,revive // Walk only returns nil errors in this usage
	Walk(root, func(blk *Block) error {
		if predicate(blk) {
			result = append(result, blk)
		}
		return nil
	})

	return result
}

// FindFirst returns the first block matching the predicate, or nil.
func FindFirst(root *Block, predicate func(blk *Block) bool) *Block {
	var found *Block

	//nolint:errcheck,revive // errStopWalk is expected and intentionally ignored
	Walk(root, func(blk *Block) error {
		if predicate(blk) {
			found = blk
			return errStopWalk
		}
		return nil
	})

	return found
}

// FindByKind returns all blocks of the specified kind.
func FindByKind(root *Block, kind Kind) []*Block {
	return FindAll(root, func(blk *Block) bool {
		return blk.Kind == kind
	})
}

// FindByContext returns all blocks with the given context name.
func FindByContext(root *Block, context string) []*Block {
	return FindAll(root, func(blk *Block) bool {
		return blk.Context == context
	})
}

// errStopWalk is a sentinel error used to stop walking early.
var errStopWalk = &stopWalkError{}

type stopWalkError struct{}

func (e *stopWalkError) Error() string {
	return "stop walk"
}

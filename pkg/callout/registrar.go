// Package callout numbers callout markers found in verbatim blocks and
// correlates them with the items of the callout lists that follow.
//
// One Registrar is shared by a document and every nested document parsed
// from its table cells, so callout ids are unique across the whole tree.
package callout

import (
	"strconv"
	"strings"
)

// Callout is one registered occurrence of a callout marker.
type Callout struct {
	// Ordinal is the number written in the marker (or assigned for <.>).
	Ordinal int

	// ID is the generated id, CO{list}-{occurrence}.
	ID string
}

// Registrar assigns ids to callout occurrences. Occurrences are grouped into
// pending lists; a callout list consumes the current pending list and
// advances to the next with NextList.
type Registrar struct {
	lists     [][]Callout
	listIndex int
	coIndex   int
}

// NewRegistrar creates a registrar positioned on its first list.
func NewRegistrar() *Registrar {
	r := &Registrar{}
	r.NextList()
	return r
}

// Register records an occurrence of ordinal in the current list and returns
// its id.
func (r *Registrar) Register(ordinal int) string {
	id := GenerateID(r.listIndex, r.coIndex)
	r.lists[r.listIndex-1] = append(r.lists[r.listIndex-1], Callout{Ordinal: ordinal, ID: id})
	r.coIndex++
	return id
}

// IDs returns the ids of every occurrence of ordinal in the current list, in
// registration order.
func (r *Registrar) IDs(ordinal int) []string {
	var ids []string
	for _, co := range r.CurrentList() {
		if co.Ordinal == ordinal {
			ids = append(ids, co.ID)
		}
	}
	return ids
}

// JoinedIDs returns IDs(ordinal) separated by spaces.
func (r *Registrar) JoinedIDs(ordinal int) string {
	return strings.Join(r.IDs(ordinal), " ")
}

// CurrentList returns the occurrences registered in the current list.
func (r *Registrar) CurrentList() []Callout {
	if r.listIndex < 1 || r.listIndex > len(r.lists) {
		return nil
	}
	return r.lists[r.listIndex-1]
}

// NextList closes the current list and starts a new one.
func (r *Registrar) NextList() {
	r.listIndex++
	if len(r.lists) < r.listIndex {
		r.lists = append(r.lists, nil)
	}
	r.coIndex = 1
}

// Rewind moves back to the first list so ids can be read again in order
// with ReadNextID.
func (r *Registrar) Rewind() {
	r.listIndex = 1
	r.coIndex = 1
}

// ReadNextID returns the id of the next occurrence in the current list, or
// "" once the list is exhausted. The position advances either way.
func (r *Registrar) ReadNextID() string {
	var id string
	list := r.CurrentList()
	if r.coIndex <= len(list) {
		id = list[r.coIndex-1].ID
	}
	r.coIndex++
	return id
}

// ListIndex returns the 1-based index of the current list.
func (r *Registrar) ListIndex() int {
	return r.listIndex
}

// GenerateID formats a callout id.
func GenerateID(listIndex, coIndex int) string {
	return "CO" + strconv.Itoa(listIndex) + "-" + strconv.Itoa(coIndex)
}

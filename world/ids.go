package world

// IDs hands out monotonically increasing identities.
type IDs struct {
	next uint32
}

// NewIDs returns an allocator whose first identity is start.
func NewIDs(start uint32) *IDs {
	return &IDs{next: start}
}

// Next returns the next identity.
func (a *IDs) Next() uint32 {
	id := a.next
	a.next++
	return id
}

// Peek returns the identity Next would return without consuming it.
func (a *IDs) Peek() uint32 {
	return a.next
}

package item

import "sync/atomic"

// Owner identifies the execution context that lays out and paints an item,
// such as a render goroutine. The zero Owner is not a valid owner.
type Owner struct {
	id uint64
}

var ownerIDs atomic.Uint64

// NewOwner returns an owner distinct from every other.
func NewOwner() Owner {
	return Owner{id: ownerIDs.Add(1)}
}

// DefaultOwner is used by EnsureLayout before any Paint.
var DefaultOwner = NewOwner()

// IsZero reports whether o is the zero Owner.
func (o Owner) IsZero() bool { return o.id == 0 }

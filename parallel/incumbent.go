// Package parallel implements §4.E's work-stealing driver: it turns any
// sequential clique.Engine search into a multi-threaded one by sharing a
// single atomic incumbent and distributing work over a small prefix of
// search depths via bounded per-depth queues and per-worker steal points.
package parallel

import "sync/atomic"

// Incumbent is the atomic packed best-seen value shared across workers.
// For plain clique search the packed value is the clique size; for
// labelled search it is size in the high 16 bits and the bitwise
// complement of cost in the low 16 bits, so that a single
// compare-and-swap enforces the lexicographic order (size first, then
// lower cost).
type Incumbent struct {
	v atomic.Uint32
}

// NewIncumbent seeds the incumbent with an already-packed value (use
// PackPlain or PackLabelled).
func NewIncumbent(seed uint32) *Incumbent {
	i := &Incumbent{}
	i.v.Store(seed)
	return i
}

// Load returns the current packed value.
func (i *Incumbent) Load() uint32 { return i.v.Load() }

// TryImprove attempts to raise the incumbent to candidate via CAS,
// retrying under concurrent updates, and reports whether it won the race
// to install a value at least as good as candidate. The comparison is
// plain numeric ordering: both packings are constructed so that "better"
// sorts as "numerically larger" (size dominates, then ~cost rewards lower
// cost).
func (i *Incumbent) TryImprove(candidate uint32) bool {
	for {
		cur := i.v.Load()
		if candidate <= cur {
			return false
		}
		if i.v.CompareAndSwap(cur, candidate) {
			return true
		}
	}
}

// PackPlain packs a plain clique size.
func PackPlain(size int) uint32 { return uint32(size) }

// UnpackPlain reads back a plain clique size.
func UnpackPlain(v uint32) int { return int(v) }

// PackLabelled packs a (size, cost) pair for labelled-clique search: size
// in the high 16 bits, ~cost in the low 16 bits.
func PackLabelled(size, cost int) uint32 {
	return uint32(uint16(size))<<16 | uint32(uint16(^uint16(cost)))
}

// UnpackLabelled reads back the (size, cost) pair packed by PackLabelled.
func UnpackLabelled(v uint32) (size, cost int) {
	size = int(uint16(v >> 16))
	cost = int(^uint16(v))
	return size, cost
}

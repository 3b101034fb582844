package bitset

import (
	"fmt"

	"github.com/booltime/parasols/internal/errs"
)

// Ladder lists the supported capacities in words. Each rung doubles the
// previous one, following spec's {1,2,4,8,16,...} ladder. The ladder is
// capped at 64 words (4096 bits): every standard DIMACS clique benchmark
// (brock, c-fat, keller, p_hat, sanr, gen, johnson, MANN) fits comfortably
// below 2000 vertices, and capping here keeps FixedBitSet small enough to
// pass by value on the search hot path without inviting excessive stack
// growth in deep recursions. Extending the ladder is a one-line change;
// see DESIGN.md.
var Ladder = []int{1, 2, 4, 8, 16, 32, 64}

// MaxCapacity is the largest n supported by the ladder.
var MaxCapacity = Ladder[len(Ladder)-1] * wordBits

// ErrGraphTooBig is returned by Capacity when n exceeds MaxCapacity.
type ErrGraphTooBig struct {
	N        int
	Capacity int
}

func (e *ErrGraphTooBig) Error() string {
	return fmt.Sprintf("graph too big: %d nodes exceeds maximum supported capacity of %d", e.N, e.Capacity)
}

// Is reports e as matching any errs.KindTooBig target, so callers anywhere
// in the module can test errors.Is(err, errs.New(errs.KindTooBig, "")) without
// caring whether the error originated here or from a higher-level boundary.
func (e *ErrGraphTooBig) Is(target error) bool {
	se, ok := target.(*errs.SolverError)
	return ok && se.Kind == errs.KindTooBig
}

// Capacity selects the smallest word count W in Ladder with W*64 >= n,
// implementing the size dispatcher (§4.B). It fails with *ErrGraphTooBig
// if no rung of the ladder is large enough.
func Capacity(n int) (words int, err error) {
	if n < 0 {
		n = 0
	}
	for _, w := range Ladder {
		if w*wordBits >= n {
			return w, nil
		}
	}
	return 0, &ErrGraphTooBig{N: n, Capacity: MaxCapacity}
}

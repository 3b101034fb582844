package parallel

// Subproblem is a forced branch-position prefix (§4.E): Offsets[d] is the
// position within the candidate set's colour order that depth d's search
// is forced to take, for d in [0, len(Offsets)). A worker handed a
// Subproblem runs the sequential engine with those choices pinned and
// proceeds unrestricted from depth len(Offsets) onward; it never explores
// sibling branches at the pinned depths, since responsibility for them
// belongs to whichever subproblem enumerated them.
// OpenTail, when true, means the last entry of Offsets is not a forced
// singleton choice but a starting point: the run skips that many
// higher-ranked candidates at that depth and then branches normally over
// every remaining one, instead of taking exactly one and stopping. This is
// how a stolen position is turned into a subproblem: the thief picks up
// every sibling branch the victim had not yet tried at that depth.
type Subproblem struct {
	Offsets  []int
	OpenTail bool
}

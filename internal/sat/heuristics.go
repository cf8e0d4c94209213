package sat

import "github.com/rhartert/yagh"

// ValueHeuristic selects how decide() picks a polarity for the variable it
// has chosen.
type ValueHeuristic int

const (
	// PhaseSaving reuses the variable's last assigned value, defaulting to
	// negative on first encounter (§4.5, §9 "initial false" convention).
	PhaseSaving ValueHeuristic = iota
	// LitScore picks the polarity with the higher static literal frequency,
	// ties going to the negative literal.
	LitScore
)

// rescaleThreshold is the activity value (for either variables or, via the
// same constant, clause activity in other CDCL designs) above which scores
// are rescaled to keep them in a well-behaved floating point range.
const rescaleThreshold = 1e100

// heuristics owns the variable-activity decision order (Score2Vars) and the
// value-selection heuristics (phase saving / literal score).
//
// Score2Vars is implemented as an indexed binary heap
// (github.com/rhartert/yagh) rather than the bucket-map-plus-resume-iterator
// design spec.md sketches: both are explicitly sanctioned as equivalent by
// spec.md's Design Notes ("An equivalent design is a max-priority structure
// (indexed heap with decrease_key/increase_key)..."), and yagh is already a
// teacher dependency. Tie-breaking among equal activities is whatever order
// the heap's internal structure yields for a fixed insertion sequence: this
// is deterministic (so search stays reproducible per §5) but is not the
// "iteration order of the secondary set" wording spec.md uses for the
// bucket-map design — see DESIGN.md.
type heuristics struct {
	order *yagh.IntMap[float64]

	activities []float64 // indexed by Var; activities[0] unused
	varInc     float64

	litScore []int // indexed by Literal, static, computed at load time

	valueHeuristic ValueHeuristic
}

func newHeuristics(vh ValueHeuristic) *heuristics {
	return &heuristics{
		order:          yagh.New[float64](1), // element 0 = NoVar, never inserted
		activities:     []float64{0}, // slot 0 = NoVar
		varInc:         1,
		litScore:       []int{0, 0}, // literals 0,1 (Var 0) unused
		valueHeuristic: vh,
	}
}

// growVars extends the heuristic's per-variable state to cover [1, n] and
// inserts the newly added variables into the decision order.
func (h *heuristics) growVars(n int) {
	for v := Var(len(h.activities)); v <= Var(n); v++ {
		h.activities = append(h.activities, 0)
		h.litScore = append(h.litScore, 0, 0)
		h.order.GrowBy(1)
		h.order.Put(int(v), 0)
	}
}

// bumpVar increases v's activity by the current increment, rescaling all
// activities (and the increment) if the threshold is exceeded.
func (h *heuristics) bumpVar(v Var) {
	h.activities[v] += h.varInc
	if h.order.Contains(int(v)) {
		h.order.Put(int(v), -h.activities[v])
	}
	if h.activities[v] > rescaleThreshold {
		h.rescale()
	}
}

// decayVar grows the increment applied by future bumps (VSIDS: var_inc *=
// 1/0.99 after every conflict analysis), so that recent conflicts matter
// more than old ones without having to touch every variable's score.
func (h *heuristics) decayVar() {
	h.varInc *= 1 / 0.99
	if h.varInc > rescaleThreshold {
		h.rescale()
	}
}

// rescale divides every activity (and the increment) by 1e100, preserving
// relative order, and rebuilds Score2Vars with the new keys.
func (h *heuristics) rescale() {
	h.varInc *= 1e-100
	for v := 1; v < len(h.activities); v++ {
		h.activities[v] *= 1e-100
		if h.order.Contains(v) {
			h.order.Put(v, -h.activities[v])
		}
	}
}

// reinsert puts v back into the decision order at its current activity;
// called when v is unassigned by a backtrack.
func (h *heuristics) reinsert(v Var) {
	h.order.Put(int(v), -h.activities[v])
}

// bumpLit increments the static frequency counter for literal l. Only
// original (non-learned) clauses contribute, and only at load time.
func (h *heuristics) bumpLit(l Literal) {
	h.litScore[l]++
}

// nextVar pops the highest-activity variable still in the decision order.
// Variables assigned by propagation (as opposed to a prior decision) are
// never proactively removed from the order — Pop skips over them lazily
// here instead, the same way the teacher's VarOrder.NextDecision does.
// Returns false once the heap is exhausted, meaning every variable has
// been assigned.
func (h *heuristics) nextVar(s *Solver) (Var, bool) {
	for {
		item, ok := h.order.Pop()
		if !ok {
			return NoVar, false
		}
		v := Var(item.Elem)
		if s.trail.state[v] != Unassigned {
			continue
		}
		return v, true
	}
}

// choosePolarity returns the literal decide() should assert for v.
func (h *heuristics) choosePolarity(v Var, prevState LBool) Literal {
	switch h.valueHeuristic {
	case LitScore:
		pos, neg := PositiveLiteral(v), NegativeLiteral(v)
		if h.litScore[pos] > h.litScore[neg] {
			return pos
		}
		return neg
	default: // PhaseSaving
		switch prevState {
		case True:
			return PositiveLiteral(v)
		default: // False or Unassigned: "initial false" convention
			return NegativeLiteral(v)
		}
	}
}

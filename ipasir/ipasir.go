// Package ipasir is the thin incremental-SAT façade described in §6: a
// staging buffer for clauses under construction, an assumption set scoped
// to exactly one Solve call, and the reset-between-solves protocol. It
// owns one *sat.Solver value; there is no process-wide singleton (§9
// "Global singleton solver").
package ipasir

import (
	"errors"

	"github.com/satgo/cdcl/internal/sat"
)

// ErrEmptyClause is returned by Add(0) when no literals were queued since
// the previous clause finished (§7 EmptyClause).
var ErrEmptyClause = errors.New("ipasir: empty clause")

// Solver is an incremental SAT solver instance.
type Solver struct {
	core *sat.Solver

	staging     []sat.Literal
	assumptions []sat.Literal

	// dirty is set by Solve and cleared by the next Add or Assume, per the
	// reset-between-solves protocol (§9 Open Question — implicit-reset
	// semantics): the reset happens lazily, on the first mutating call
	// after a solve, not eagerly at the end of Solve itself.
	dirty bool

	lastStatus sat.Status
}

// New returns a fresh solver using the default heuristic configuration.
func New() *Solver {
	return NewWithOptions(sat.DefaultOptions)
}

// NewWithOptions returns a fresh solver with the given core options (used
// by the CLI's -valdh flag to select the value heuristic).
func NewWithOptions(opts sat.Options) *Solver {
	return &Solver{core: sat.NewSolver(opts)}
}

// Release disposes of the solver. Any further calls are undefined, as per
// the IPASIR contract; Go's garbage collector reclaims the underlying
// state once the last reference is dropped.
func (s *Solver) Release() {
	s.core = nil
}

// Signature identifies this solver implementation.
func (s *Solver) Signature() string {
	return "cdcl-go-1.0"
}

// checkReset performs the reset-between-solves protocol if a solve has
// happened since the last reset: full backtrack to the root, drop of all
// temporary assumptions, and re-assertion of every unary clause.
func (s *Solver) checkReset() {
	if !s.dirty {
		return
	}
	s.core.BacktrackToRoot()
	s.assumptions = s.assumptions[:0]
	s.core.ReassertUnaries()
	s.dirty = false
}

// literal converts an external DIMACS literal to its internal form,
// growing the variable space if x names a variable not seen before.
func (s *Solver) literal(x int) sat.Literal {
	l := sat.FromDIMACS(x)
	s.core.EnsureVar(l.Var())
	return l
}

// Add appends an external literal to the clause currently under
// construction. x == 0 finalizes it: an empty clause is an error, a
// single-literal clause becomes a unary fact asserted at the root, and
// longer clauses go to the clause store.
func (s *Solver) Add(x int) error {
	s.checkReset()
	if x != 0 {
		s.staging = append(s.staging, s.literal(x))
		return nil
	}

	lits := s.staging
	s.staging = nil
	if len(lits) == 0 {
		return ErrEmptyClause
	}
	return s.core.AddClause(lits)
}

// Assume registers x as a temporary unit assumption for the next Solve
// call only.
func (s *Solver) Assume(x int) {
	s.checkReset()
	s.assumptions = append(s.assumptions, s.literal(x))
}

// contradictoryAssumption reports the first variable assumed with both
// polarities, if any.
func contradictoryAssumption(assumptions []sat.Literal) (sat.Var, bool) {
	seen := make(map[sat.Var]sat.Literal, len(assumptions))
	for _, l := range assumptions {
		v := l.Var()
		if prev, ok := seen[v]; ok && prev != l {
			return v, true
		}
		seen[v] = l
	}
	return sat.NoVar, false
}

// Solve runs the search, returning 10 (SAT), 20 (UNSAT), or 0 (TIMEOUT).
// Contradictory assumption sets are detected before the search ever runs,
// mirroring edusat's find_bad_var: the offending variable is asserted
// (positively, by convention) so it leaves a trail literal behind exactly
// as the ordinary assumption path would have, before Solve reports UNSAT.
func (s *Solver) Solve() int {
	s.dirty = true

	if bad, isBad := contradictoryAssumption(s.assumptions); isBad {
		s.core.AssertAssumption(sat.PositiveLiteral(bad))
		s.lastStatus = sat.StatusUnsatisfiable
		return 20
	}

	for _, l := range s.assumptions {
		if !s.core.AssertAssumption(l) {
			s.lastStatus = sat.StatusUnsatisfiable
			return 20
		}
	}

	s.lastStatus = s.core.Solve()
	switch s.lastStatus {
	case sat.StatusSatisfiable:
		return 10
	case sat.StatusUnsatisfiable:
		return 20
	default:
		return 0
	}
}

// Val returns the model value of x after a SAT result: +x if true, -x if
// false, 0 if the variable doesn't matter to the solution or no SAT result
// is available. Only the variable named by x is consulted; the sign of x
// itself is ignored, matching the IPASIR contract.
func (s *Solver) Val(x int) int {
	if s.lastStatus != sat.StatusSatisfiable {
		return 0
	}
	v := sat.Var(abs(x))
	s.core.EnsureVar(v)
	switch s.core.Value(v) {
	case sat.True:
		return abs(x)
	case sat.False:
		return -abs(x)
	default:
		return 0
	}
}

// Failed reports whether x's variable was assigned at all by the last
// Solve call. This mirrors edusat's ipasir_failed exactly: it is not the
// IPASIR-standard "is this literal part of the failed-assumption core"
// query, just a variable-assigned check, and is preserved as-is rather
// than "corrected" to the stricter contract (see SPEC_FULL.md's
// supplemented-features notes).
func (s *Solver) Failed(x int) bool {
	v := sat.Var(abs(x))
	s.core.EnsureVar(v)
	return s.core.Value(v) != sat.Unassigned
}

// SetTerminate installs a polled cancellation callback.
func (s *Solver) SetTerminate(ctx any, fn func(any) int) {
	s.core.SetTerminate(ctx, fn)
}

// SetLearn installs a callback invoked after every learned clause of
// length <= maxLen.
func (s *Solver) SetLearn(ctx any, maxLen int, fn func(any, []int)) {
	s.core.SetLearn(ctx, maxLen, fn)
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

package ipasir

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func addClause(s *Solver, lits ...int) {
	for _, l := range lits {
		s.Add(l)
	}
	s.Add(0)
}

// Scenario 1: a single two-literal clause is satisfiable, and the model
// must actually satisfy it.
func TestScenarioSingleClauseSatisfiable(t *testing.T) {
	s := New()
	addClause(s, 1, 2)

	if got := s.Solve(); got != 10 {
		t.Fatalf("Solve() = %d, want 10 (SAT)", got)
	}
	if s.Val(1) != 1 && s.Val(2) != 2 {
		t.Errorf("model doesn't satisfy (1 v 2): val(1)=%d val(2)=%d", s.Val(1), s.Val(2))
	}
}

// Scenario 2: a variable asserted both true and false is unsatisfiable.
func TestScenarioContradictoryUnitsUnsat(t *testing.T) {
	s := New()
	addClause(s, 1)
	addClause(s, -1)

	if got := s.Solve(); got != 20 {
		t.Fatalf("Solve() = %d, want 20 (UNSAT)", got)
	}
}

// TestContradictoryAssumptionsReportBadVariable mirrors edusat's
// find_bad_var: assuming a variable both ways in the same Solve call must
// be caught before search ever runs, and the offending variable must be
// left asserted on the trail (Failed reports it as assigned), exactly as
// an ordinary single-polarity assumption would have.
func TestContradictoryAssumptionsReportBadVariable(t *testing.T) {
	s := New()
	addClause(s, 1, 2)

	s.Assume(3)
	s.Assume(-3)
	if got := s.Solve(); got != 20 {
		t.Fatalf("Solve() with {3,-3} assumed = %d, want 20 (UNSAT)", got)
	}
	if !s.Failed(3) {
		t.Error("Failed(3) = false, want true: the bad assumption variable should be left asserted")
	}
}

// Scenario 3: solving the same instance twice in a row must not regress.
// No Add or Assume comes between the two calls, so no reset runs and the
// second Solve starts from the first one's complete assignment; it must
// not take more than half again as long as the first (plus 1ms of slack).
func TestScenarioRepeatedSolveNoRegression(t *testing.T) {
	s := New()
	addClause(s, 1, 2, 3, 4)
	addClause(s, -1, 2, 3, -4)
	addClause(s, -1, 2)
	addClause(s, -1, 3)
	addClause(s, -4, 3, 2)

	start := time.Now()
	if got := s.Solve(); got != 10 {
		t.Fatalf("first Solve() = %d, want 10 (SAT)", got)
	}
	firstDuration := time.Since(start)

	start = time.Now()
	if got := s.Solve(); got != 10 {
		t.Fatalf("second Solve() = %d, want 10 (SAT)", got)
	}
	secondDuration := time.Since(start)

	if secondDuration > firstDuration+firstDuration/2+time.Millisecond {
		t.Errorf("second solve (%s) regressed past the first (%s)", secondDuration, firstDuration)
	}
}

// Scenario 4: a model's negation, asserted as assumptions against a fresh
// instance of the same formula, must be unsatisfiable. The unit clauses
// (2) and (3) force 2 and 3 true in every model, so assuming the negation
// of the model's values for them contradicts the clause database.
func TestScenarioNegatedModelAsAssumptionsUnsat(t *testing.T) {
	build := func(s *Solver) {
		addClause(s, 1, 2)
		addClause(s, 2)
		addClause(s, 3)
		addClause(s, 1, 2, 3)
	}

	first := New()
	build(first)
	if got := first.Solve(); got != 10 {
		t.Fatalf("first Solve() = %d, want 10 (SAT)", got)
	}
	model := [3]int{first.Val(1), first.Val(2), first.Val(3)}

	second := New()
	build(second)
	for _, m := range model {
		second.Assume(-m)
	}
	if got := second.Solve(); got != 20 {
		t.Fatalf("Solve() with the model's negation assumed = %d, want 20 (UNSAT)", got)
	}
}

// Scenario 5: assumptions are scoped to exactly one Solve call. Assuming
// {-1, -2} forces 3 true; a later Solve that assumes only {-3} must still
// succeed (1 and 2 are free again); assuming all three together conflicts
// with the clause database.
func TestScenarioAssumptionsScopedToOneSolve(t *testing.T) {
	s := New()
	addClause(s, 1, 2, 3)
	addClause(s, -1, -2)

	s.Assume(-1)
	s.Assume(-2)
	if got := s.Solve(); got != 10 {
		t.Fatalf("Solve() with {-1,-2} assumed = %d, want 10 (SAT)", got)
	}
	if s.Val(3) != 3 {
		t.Errorf("Val(3) = %d, want 3 (forced true by {-1,-2} and the clause (1 v 2 v 3))", s.Val(3))
	}

	s.Assume(-3)
	if got := s.Solve(); got != 10 {
		t.Fatalf("Solve() with only {-3} assumed = %d, want 10 (SAT)", got)
	}

	s.Assume(-1)
	s.Assume(-2)
	s.Assume(-3)
	if got := s.Solve(); got != 20 {
		t.Fatalf("Solve() with {-1,-2,-3} assumed = %d, want 20 (UNSAT)", got)
	}
}

// varAt returns the DIMACS variable for row r, col c (1-indexed, 0-indexed
// inputs) of a 4x4 grid.
func varAt(r, c int) int {
	return r*4 + c + 1
}

// addOneHotGrid builds a 4x4 one-hot assignment problem: exactly one true
// cell per row and exactly one true cell per column, i.e. the clauses
// describing a 4x4 permutation matrix.
func addOneHotGrid(s *Solver) {
	for r := 0; r < 4; r++ {
		lits := make([]int, 4)
		for c := 0; c < 4; c++ {
			lits[c] = varAt(r, c)
		}
		addClause(s, lits...)
		for c1 := 0; c1 < 4; c1++ {
			for c2 := c1 + 1; c2 < 4; c2++ {
				addClause(s, -varAt(r, c1), -varAt(r, c2))
			}
		}
	}
	for c := 0; c < 4; c++ {
		lits := make([]int, 4)
		for r := 0; r < 4; r++ {
			lits[r] = varAt(r, c)
		}
		addClause(s, lits...)
		for r1 := 0; r1 < 4; r1++ {
			for r2 := r1 + 1; r2 < 4; r2++ {
				addClause(s, -varAt(r1, c), -varAt(r2, c))
			}
		}
	}
}

// checkPermutation fails the test unless the solver's model describes a
// valid permutation matrix: exactly one true cell per row and per column.
func checkPermutation(t *testing.T, s *Solver) {
	t.Helper()
	rowCounts := [4]int{}
	colCounts := [4]int{}
	for r := 0; r < 4; r++ {
		for c := 0; c < 4; c++ {
			if s.Val(varAt(r, c)) == varAt(r, c) {
				rowCounts[r]++
				colCounts[c]++
			}
		}
	}
	if diff := cmp.Diff([4]int{1, 1, 1, 1}, rowCounts); diff != "" {
		t.Errorf("row counts mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([4]int{1, 1, 1, 1}, colCounts); diff != "" {
		t.Errorf("column counts mismatch (-want +got):\n%s", diff)
	}
}

// Scenario 6: the 4x4 one-hot grid is satisfiable, stays satisfiable (with
// a still-valid permutation) after flipping one assumed cell, and every
// model produced along the way is a genuine permutation matrix.
func TestScenarioOneHotGridWithFlippedAssumption(t *testing.T) {
	s := New()
	addOneHotGrid(s)

	if got := s.Solve(); got != 10 {
		t.Fatalf("Solve() = %d, want 10 (SAT)", got)
	}
	checkPermutation(t, s)

	// Flip one cell's assumed value relative to the first model and check
	// the grid remains satisfiable with a valid permutation.
	flipped := varAt(0, 0)
	if s.Val(flipped) == flipped {
		s.Assume(-flipped)
	} else {
		s.Assume(flipped)
	}
	if got := s.Solve(); got != 10 {
		t.Fatalf("Solve() with one flipped assumption = %d, want 10 (SAT)", got)
	}
	checkPermutation(t, s)
}

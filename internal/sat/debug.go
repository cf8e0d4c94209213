//go:build sat_debug

package sat

// checkInvariants scans the solver's entire state for the consistency
// properties listed in spec §8 / §3. It is O(clauses + trail + literals)
// and is only ever compiled in with the sat_debug build tag, matching the
// teacher's build-tag split for performance-sensitive alternatives
// (clause_alloc.go / clause_allocpool.go, gated by "clausepool").
func (s *Solver) checkInvariants() {
	s.checkWatchSymmetry()
	s.checkTrailConsistency()
	s.checkClausesNonFalsifiedAtWatch()
}

// checkWatchSymmetry verifies: for every clause c and watched literal l of
// c, c is in W[l]; and the inverse.
func (s *Solver) checkWatchSymmetry() {
	seen := map[Literal]map[ClauseRef]bool{}
	for l := range s.watches.buckets {
		for _, ref := range s.watches.at(Literal(l)) {
			c := s.clauses.Get(ref)
			lw, rw := c.Watched()
			if Literal(l) != lw && Literal(l) != rw {
				invariantViolation("clause in watch bucket for a literal it doesn't watch")
			}
			if seen[Literal(l)] == nil {
				seen[Literal(l)] = map[ClauseRef]bool{}
			}
			seen[Literal(l)][ref] = true
		}
	}
	for ref := 0; ref < s.clauses.Len(); ref++ {
		c := s.clauses.Get(ClauseRef(ref))
		lw, rw := c.Watched()
		if !seen[lw][ClauseRef(ref)] {
			invariantViolation("watched literal missing from its bucket")
		}
		if !seen[rw][ClauseRef(ref)] {
			invariantViolation("watched literal missing from its bucket")
		}
	}
}

// checkTrailConsistency verifies: no duplicate variables on the trail, and
// each trail literal's polarity agrees with its variable's state.
func (s *Solver) checkTrailConsistency() {
	seen := map[Var]bool{}
	for _, l := range s.trail.lits {
		v := l.Var()
		if seen[v] {
			invariantViolation("variable appears twice on the trail")
		}
		seen[v] = true
		if s.trail.litState(l) != True {
			invariantViolation("trail literal disagrees with variable state")
		}
	}
}

// checkClausesNonFalsifiedAtWatch verifies: every clause has a satisfied
// watch, or at least one non-false watched literal.
func (s *Solver) checkClausesNonFalsifiedAtWatch() {
	for ref := 0; ref < s.clauses.Len(); ref++ {
		if ClauseRef(ref) == s.conflictRef {
			continue // the clause currently under analysis is exempt
		}
		c := s.clauses.Get(ClauseRef(ref))
		lw, rw := c.Watched()
		if s.trail.litState(lw) != False || s.trail.litState(rw) != False {
			continue
		}
		invariantViolation("clause has both watches falsified outside of analysis")
	}
}

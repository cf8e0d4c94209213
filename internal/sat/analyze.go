package sat

// analyze computes the first-UIP learned clause from the conflicting
// clause conflict, returning the clause's literals (the asserting literal,
// the negated UIP, at position 0; the rest in the order found) and the
// backtrack target level (the second-highest decision level among the
// learned literals, or 0 if only one decision level is present).
//
// This mirrors edusat's analyze()/the teacher's Solver.analyze, but without
// the teacher's double-negation "explain" indirection: antecedent and
// conflict-clause literals are already in their natural (currently false)
// form, so they're appended to the learned clause as-is; only the UIP
// literal itself is negated, since it is the one literal that is currently
// true and must become the new, falsified member of the asserting clause.
func (s *Solver) analyze(conflict ClauseRef) ([]Literal, int) {
	curLevel := s.trail.decisionLevel()

	learnt := s.tmpLearnt[:0]
	learnt = append(learnt, NoLiteral) // reserved for the UIP, filled below
	touched := s.tmpTouched[:0]

	pending := 0
	backtrackLevel := 0

	resolve := func(lits []Literal, skip Var) {
		for _, lit := range lits {
			v := lit.Var()
			if v == skip || s.trail.marked[v] {
				continue
			}
			s.trail.marked[v] = true
			touched = append(touched, v)
			s.bumpVarActivity(v)

			if s.trail.level[v] == curLevel {
				pending++
				continue
			}
			learnt = append(learnt, lit)
			if lvl := s.trail.level[v]; lvl > backtrackLevel {
				backtrackLevel = lvl
			}
		}
	}

	resolve(s.clauses.Get(conflict).Literals, NoVar)

	idx := len(s.trail.lits) - 1
	var uip Literal
	for {
		for !s.trail.marked[s.trail.lits[idx].Var()] {
			idx--
		}
		uip = s.trail.lits[idx]
		idx--

		pending--
		if pending == 0 {
			break
		}

		v := uip.Var()
		ref := s.trail.antecedent[v]
		resolve(s.clauses.Get(ref).Literals, v)
	}

	learnt[0] = uip.Negate()

	for _, v := range touched {
		s.trail.marked[v] = false
	}
	s.tmpLearnt = learnt
	s.tmpTouched = touched

	return learnt, backtrackLevel
}

package sat

// propagate runs BCP over the trail from qhead forward, returning the
// conflicting clause's ref (and true) if one is found, or (NoClauseRef,
// false) once the queue is drained with no conflict.
func (s *Solver) propagate() (ClauseRef, bool) {
	for s.qhead < len(s.trail.lits) {
		p := s.trail.lits[s.qhead]
		s.qhead++

		falseLit := p.Negate()
		bucket := s.watches.at(falseLit)

		s.tmpWatchers = append(s.tmpWatchers[:0], bucket...)
		s.watches.buckets[falseLit] = s.watches.buckets[falseLit][:0]

		for i, ref := range s.tmpWatchers {
			if conflict, ok := s.propagateOne(ref, falseLit); !ok {
				// Conflict: re-attach the watch (unchanged) and restore the
				// watchers this clause never got a chance to look at, then
				// stop propagating entirely (the caller is about to
				// backtrack, which will invalidate qhead anyway).
				s.watches.add(falseLit, ref)
				s.watches.buckets[falseLit] = append(s.watches.buckets[falseLit], s.tmpWatchers[i+1:]...)
				s.conflictRef = conflict
				return conflict, true
			}
		}
	}
	s.conflictRef = NoClauseRef
	return NoClauseRef, false
}

// propagateOne revisits a single clause known to be watching falseLit,
// which has just become false. It returns (_, true) if the clause remains
// satisfiable (possibly after moving its watch, possibly after enqueuing a
// newly-forced literal), or (conflictRef, false) if the clause is now
// falsified entirely.
func (s *Solver) propagateOne(ref ClauseRef, falseLit Literal) (ClauseRef, bool) {
	c := s.clauses.Get(ref)

	w := c.LW
	if c.Literals[c.RW] == falseLit {
		w = c.RW
	}
	other := c.other(w)
	otherLit := c.Literals[other]

	if s.trail.litState(otherLit) == True {
		s.watches.add(falseLit, ref) // already satisfied, watch unchanged
		return NoClauseRef, true
	}

	// Deterministic watch-move tie-break: scan ascending, skip the two
	// watched positions, stop at the lowest index holding a non-false
	// literal.
	n := len(c.Literals)
	for pos := 0; pos < n; pos++ {
		if pos == w || pos == other {
			continue
		}
		if s.trail.litState(c.Literals[pos]) != False {
			if w == c.LW {
				c.LW = pos
			} else {
				c.RW = pos
			}
			s.watches.add(c.Literals[pos], ref)
			return NoClauseRef, true
		}
	}

	if s.trail.litState(otherLit) == Unassigned {
		s.watches.add(falseLit, ref) // no replacement found, watch unchanged
		s.trail.push(otherLit, ref)
		return NoClauseRef, true
	}

	// otherLit is False too: every literal is now false. Conflict.
	return ref, false
}

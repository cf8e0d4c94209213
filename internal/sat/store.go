package sat

// ClauseStore is the append-only container of original and learned
// clauses. Insertion order assigns each clause a stable ClauseRef; clauses
// are never deleted (the Non-goals explicitly exclude clause-database
// reduction, so there is no companion "remove" operation).
type ClauseStore struct {
	clauses []Clause

	// Unit clauses bypass the store entirely: their literal is recorded
	// here and asserted at the root decision level instead.
	unaries []Literal
}

// Len returns the number of clauses held in the store (unaries excluded).
func (cs *ClauseStore) Len() int {
	return len(cs.clauses)
}

// Get returns a pointer to the clause at ref. The pointer must not be
// retained across a subsequent Add call, since Add may grow (and thus
// relocate) the backing slice; callers needing persistent identity should
// keep the ClauseRef instead.
func (cs *ClauseStore) Get(ref ClauseRef) *Clause {
	return &cs.clauses[ref]
}

// Add appends a new clause (with watches canonically at positions 0 and 1)
// and returns its stable reference.
func (cs *ClauseStore) Add(literals []Literal) ClauseRef {
	ref := ClauseRef(len(cs.clauses))
	cs.clauses = append(cs.clauses, Clause{
		Literals: literals,
		LW:       0,
		RW:       1,
	})
	return ref
}

// AddWithWatches appends a new clause with an explicit initial watch
// placement, as required for learned clauses (§4.3 step 4: the asserting
// literal at position 0, the literal with the highest decision level as the
// second watch).
func (cs *ClauseStore) AddWithWatches(literals []Literal, lw, rw int) ClauseRef {
	ref := ClauseRef(len(cs.clauses))
	cs.clauses = append(cs.clauses, Clause{
		Literals: literals,
		LW:       lw,
		RW:       rw,
	})
	return ref
}

// AddUnary records a unit clause's literal for root-level assertion.
func (cs *ClauseStore) AddUnary(l Literal) {
	cs.unaries = append(cs.unaries, l)
}

// Unaries returns the literals of all unit clauses seen so far.
func (cs *ClauseStore) Unaries() []Literal {
	return cs.unaries
}

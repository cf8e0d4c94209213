package sat

import "time"

// Status is the outcome of a Solve call.
type Status int

const (
	// StatusUnresolved means the search was stopped (deadline or terminate
	// callback) before reaching a conclusion. This is the same code IPASIR
	// uses for TIMEOUT (0); there is no separate "still searching" value.
	StatusUnresolved  Status = 0
	StatusSatisfiable Status = 10
	StatusUnsatisfiable Status = 20
)

func (st Status) String() string {
	switch st {
	case StatusSatisfiable:
		return "SATISFIABLE"
	case StatusUnsatisfiable:
		return "UNSATISFIABLE"
	default:
		return "UNRESOLVED"
	}
}

// Options configures a Solver.
type Options struct {
	ValueHeuristic ValueHeuristic
	// Timeout is the wall-clock budget for a single Solve call. Zero or
	// negative disables the deadline.
	Timeout time.Duration
}

// DefaultOptions matches edusat's defaults: phase saving, no timeout.
var DefaultOptions = Options{
	ValueHeuristic: PhaseSaving,
	Timeout:        0,
}

// Solver is the CDCL search engine. It is an owned value: constructing one
// with NewSolver allocates all of its state; there is no hidden global
// singleton (Design Note §9).
type Solver struct {
	clauses     ClauseStore
	watches     watchIndex
	trail       trail
	qhead       int
	conflictRef ClauseRef

	heur    *heuristics
	restart *restartSchedule

	unsat bool

	opts Options

	NumDecisions int64
	NumConflicts int64
	NumRestarts  int64
	NumLearned   int64

	startTime time.Time

	terminateCtx any
	terminateFn  func(any) int

	learnCtx    any
	learnMaxLen int
	learnFn     func(any, []int)

	tmpWatchers []ClauseRef
	tmpLearnt   []Literal
	tmpTouched  []Var
}

// NewSolver returns a freshly initialized Solver.
func NewSolver(opts Options) *Solver {
	s := &Solver{
		heur:        newHeuristics(opts.ValueHeuristic),
		restart:     newRestartSchedule(),
		opts:        opts,
		conflictRef: NoClauseRef,
	}
	s.trail.growVars(0) // seed the Var(0) / Literal{0,1} sentinel slots
	s.watches.grow(2)
	return s
}

// NumVariables returns the number of declared variables.
func (s *Solver) NumVariables() int {
	return s.trail.numVars()
}

// DecisionLevel returns the current decision level.
func (s *Solver) DecisionLevel() int {
	return s.trail.decisionLevel()
}

// IsUnsat reports whether the solver has reached a permanent, root-level
// conflict (the formula is unsatisfiable regardless of assumptions).
func (s *Solver) IsUnsat() bool {
	return s.unsat
}

// Value returns the current assignment of a variable.
func (s *Solver) Value(v Var) LBool {
	return s.trail.state[v]
}

// LitValue returns the current assignment of a literal.
func (s *Solver) LitValue(l Literal) LBool {
	return s.trail.litState(l)
}

// Assignments returns a snapshot of every variable's current assignment,
// indexed by Var (index 0 is the unused NoVar slot). Intended for
// diagnostics (e.g. the CLI's -v 2 dump), not for use on the hot path.
func (s *Solver) Assignments() []LBool {
	out := make([]LBool, len(s.trail.state))
	copy(out, s.trail.state)
	return out
}

// EnsureVar grows the solver's state, if needed, so that v is a valid
// variable. Used by the incremental layer, which creates variables
// on-demand as literals referencing them are added (edusat's `literal()`).
func (s *Solver) EnsureVar(v Var) {
	if int(v) <= s.NumVariables() {
		return
	}
	s.trail.growVars(int(v))
	s.heur.growVars(int(v))
	s.watches.grow(2*int(v) + 2)
}

// AddVariable allocates and returns a new variable. Used by parsers that
// know the variable count up front (DIMACS headers).
func (s *Solver) AddVariable() Var {
	v := Var(s.NumVariables() + 1)
	s.EnsureVar(v)
	return v
}

// Unaries returns the literals of every unit clause seen so far.
func (s *Solver) Unaries() []Literal {
	return s.clauses.Unaries()
}

// BacktrackToRoot unwinds the entire trail back to decision level 0,
// without touching learned clauses, activities, or phase history. Used
// both by restart() and by the incremental layer's reset-between-solves
// protocol.
func (s *Solver) BacktrackToRoot() {
	s.backtrack(0)
}

// ReassertUnaries re-asserts every unit clause's literal at the root
// level. Called by the incremental layer after a reset. BacktrackToRoot
// keeps level-0 assignments, so a unit literal that is already true is
// left as it is; one that is false marks the formula unsatisfiable.
func (s *Solver) ReassertUnaries() {
	for _, l := range s.clauses.Unaries() {
		s.assertRoot(l)
	}
}

// SetTerminate installs a polled cancellation callback. It is checked once
// per search-loop iteration; ctx is threaded through to every invocation
// rather than captured implicitly, so there's no ambiguity about which
// state a given call observed (see DESIGN.md's resolution of the
// "terminate callback state" Open Question).
func (s *Solver) SetTerminate(ctx any, fn func(any) int) {
	s.terminateCtx = ctx
	s.terminateFn = fn
}

// SetLearn installs a callback invoked after every learned clause of
// length <= maxLen, delivered in external (DIMACS) literal form with a
// trailing zero.
func (s *Solver) SetLearn(ctx any, maxLen int, fn func(any, []int)) {
	s.learnCtx = ctx
	s.learnMaxLen = maxLen
	s.learnFn = fn
}

// AddClause adds an original (non-learned) clause, simplifying it against
// the current root-level assignment: tautologies and already-satisfied
// clauses are discarded, duplicate and root-falsified literals are
// dropped. Must be called at decision level 0.
func (s *Solver) AddClause(lits []Literal) error {
	if s.trail.decisionLevel() != 0 {
		return ErrRootLevelOnly
	}
	for _, l := range lits {
		s.heur.bumpLit(l)
	}
	if s.unsat {
		return nil
	}

	size := len(lits)
	seen := make(map[Literal]bool, size)
	for i := size - 1; i >= 0; i-- {
		l := lits[i]
		if seen[l.Negate()] {
			return nil // tautology: clause is trivially true, discard it
		}
		if seen[l] {
			size--
			lits[i], lits[size] = lits[size], lits[i]
			continue
		}
		seen[l] = true

		switch s.LitValue(l) {
		case True:
			return nil // already satisfied at the root, discard
		case False:
			size--
			lits[i], lits[size] = lits[size], lits[i]
		}
	}
	lits = lits[:size]

	switch len(lits) {
	case 0:
		s.unsat = true
		return nil
	case 1:
		s.clauses.AddUnary(lits[0])
		s.assertRoot(lits[0])
		return nil
	default:
		ref := s.clauses.Add(lits)
		c := s.clauses.Get(ref)
		s.watches.add(c.Literals[c.LW], ref)
		s.watches.add(c.Literals[c.RW], ref)
		return nil
	}
}

// assertRoot asserts l at decision level 0, or marks the formula
// permanently unsatisfiable if l is already false.
func (s *Solver) assertRoot(l Literal) {
	switch s.LitValue(l) {
	case False:
		s.unsat = true
	case Unassigned:
		s.enqueue(l, NoClauseRef)
	}
}

// enqueue is assert_lit (§4.2): the single entry point that pushes l onto
// the trail. The decision order doesn't need a matching removal here: its
// Pop already skips already-assigned variables lazily (see
// heuristics.nextVar), the same way the teacher's VarOrder does.
func (s *Solver) enqueue(l Literal, antecedent ClauseRef) {
	s.trail.push(l, antecedent)
}

// bumpVarActivity bumps v's VSIDS activity. Called by analyze for every
// variable that enters the resolvent during first-UIP learning.
func (s *Solver) bumpVarActivity(v Var) {
	s.heur.bumpVar(v)
}

// AssertAssumption asserts l as its own decision level, ahead of the
// ordinary decide()/propagate() loop. Used by the incremental layer to
// seed temporary assumptions before a Solve call. Returns false, without
// modifying any state, if l directly contradicts an already-established
// fact (a root unary, an earlier assumption, or a prior learned clause);
// the caller should treat that as an immediate UNSAT without invoking
// Solve. If l is already implied true, no new decision level is created.
func (s *Solver) AssertAssumption(l Literal) bool {
	switch s.LitValue(l) {
	case True:
		return true
	case False:
		return false
	default:
		s.trail.newDecisionLevel()
		s.enqueue(l, NoClauseRef)
		return true
	}
}

// backtrack unwinds to decision level k, reinserting newly-unassigned
// variables into the decision order (§4.4).
func (s *Solver) backtrack(k int) {
	undone := s.trail.undoTo(k)
	for _, l := range undone {
		s.heur.reinsert(l.Var())
	}
	s.qhead = len(s.trail.lits)
	s.restart.truncateTo(k)
}

// decide picks the next decision literal by activity (and, among equal
// activities, heap tie-break order), asserts it at a new decision level,
// and returns it. The second return value is false when every variable is
// already assigned, meaning the formula is satisfied.
func (s *Solver) decide() (Literal, bool) {
	v, ok := s.heur.nextVar(s)
	if !ok {
		return NoLiteral, false
	}
	lit := s.heur.choosePolarity(v, s.trail.prevState[v])
	s.trail.newDecisionLevel()
	s.NumDecisions++
	s.enqueue(lit, NoClauseRef)
	return lit, true
}

// learn records an asserting clause produced by analyze: unit clauses
// become root-level facts, longer clauses get their second watch placed on
// the highest-level remaining literal (§4.3 step 4) and have their UIP
// literal asserted with the new clause as antecedent.
func (s *Solver) learn(lits []Literal) {
	defer func() {
		s.NumLearned++
		s.invokeLearnCallback(lits)
	}()

	if len(lits) == 1 {
		s.clauses.AddUnary(lits[0])
		s.assertRoot(lits[0])
		return
	}

	maxIdx, maxLevel := 1, -1
	for i := 1; i < len(lits); i++ {
		if lvl := s.trail.level[lits[i].Var()]; lvl > maxLevel {
			maxLevel = lvl
			maxIdx = i
		}
	}
	lits[1], lits[maxIdx] = lits[maxIdx], lits[1]

	ref := s.clauses.AddWithWatches(lits, 0, 1)
	c := s.clauses.Get(ref)
	s.watches.add(c.Literals[0], ref)
	s.watches.add(c.Literals[1], ref)
	s.enqueue(lits[0], ref)
}

func (s *Solver) invokeLearnCallback(lits []Literal) {
	if s.learnFn == nil || len(lits) > s.learnMaxLen {
		return
	}
	out := make([]int, 0, len(lits)+1)
	for _, l := range lits {
		out = append(out, l.ToDIMACS())
	}
	out = append(out, 0)
	s.learnFn(s.learnCtx, out)
}

func (s *Solver) shouldStop() bool {
	if s.terminateFn != nil && s.terminateFn(s.terminateCtx) != 0 {
		return true
	}
	if s.opts.Timeout > 0 && time.Since(s.startTime) > s.opts.Timeout {
		return true
	}
	return false
}

// Solve runs the decide/propagate/analyze/backtrack/restart loop (§4.6)
// until the formula is found satisfiable, unsatisfiable, or the search is
// cancelled. Decision levels already open when Solve is called (the
// assumptions seeded by AssertAssumption) are kept for the whole call: a
// conflict at or below the last of them reports UNSAT for this call only,
// and any of them undone by a backtrack or restart is opened again.
func (s *Solver) Solve() Status {
	s.startTime = time.Now()

	if s.unsat {
		return StatusUnsatisfiable
	}

	var assumed []Literal // assumed[i] is the literal opening level i+1
	for _, start := range s.trail.separators {
		assumed = append(assumed, s.trail.lits[start])
	}

	for {
		if s.shouldStop() {
			return StatusUnresolved
		}

		s.checkInvariants()

		conflict, isConflict := s.propagate()
		if isConflict {
			s.NumConflicts++
			dl := s.trail.decisionLevel()
			if dl == 0 {
				s.unsat = true
				return StatusUnsatisfiable
			}
			if dl <= len(assumed) { // implied by the assumptions alone
				return StatusUnsatisfiable
			}

			needsRestart := s.restart.recordConflict(dl)

			learnt, backtrackLevel := s.analyze(conflict)
			s.backtrack(backtrackLevel)
			s.learn(learnt)
			s.heur.decayVar()

			if needsRestart {
				s.BacktrackToRoot()
				s.NumRestarts++
				s.restart.advance()
			}
			for lvl := s.trail.decisionLevel(); lvl < len(assumed); lvl++ {
				if s.LitValue(assumed[lvl]) == False {
					return StatusUnsatisfiable
				}
				s.trail.newDecisionLevel() // left empty if the assumption already holds
				if s.LitValue(assumed[lvl]) == Unassigned {
					s.enqueue(assumed[lvl], NoClauseRef)
				}
			}
			continue
		}

		if _, hasDecision := s.decide(); !hasDecision {
			return StatusSatisfiable
		}
	}
}

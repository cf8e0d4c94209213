package main

import (
	"fmt"

	"github.com/kr/pretty"

	"github.com/satgo/cdcl/internal/sat"
)

// solverDump is the -v 2 verbose snapshot: every variable's final
// assignment plus the headline stats, rendered with kr/pretty the way
// cespare/saturday dumps its own solver state mid-run.
type solverDump struct {
	NumVariables  int
	DecisionLevel int
	NumDecisions  int64
	NumConflicts  int64
	NumRestarts   int64
	NumLearned    int64
	Assignments   []sat.LBool
}

func dumpSolver(s *sat.Solver) {
	d := solverDump{
		NumVariables:  s.NumVariables(),
		DecisionLevel: s.DecisionLevel(),
		NumDecisions:  s.NumDecisions,
		NumConflicts:  s.NumConflicts,
		NumRestarts:   s.NumRestarts,
		NumLearned:    s.NumLearned,
		Assignments:   s.Assignments(),
	}
	fmt.Println("c --- solver state ---")
	pretty.Println(d)
}

// Package sat implements the CDCL search engine: two-watched-literal unit
// propagation, first-UIP conflict analysis, non-chronological backtracking,
// activity-based decisions, phase saving, and local restarts.
package sat

import "fmt"

// Var is a variable index in [1, N]. Var 0 is reserved as the sentinel "no
// variable" (used for decisions and root-level facts, which have no
// antecedent).
type Var int

// NoVar is the sentinel value meaning "no variable".
const NoVar Var = 0

// Literal is a signed variable reference encoded as a non-negative integer:
// literal 2v denotes positive v, literal 2v+1 denotes negative v. Negation
// toggles the low bit, which keeps Negate branch-free and keeps literal 0/1
// (corresponding to the sentinel Var 0) unused.
type Literal int

// NoLiteral is the synthetic "unknown literal" conflict analysis starts
// from before its first resolution step.
const NoLiteral Literal = -1

// PositiveLiteral returns the literal asserting v is true.
func PositiveLiteral(v Var) Literal {
	return Literal(2 * v)
}

// NegativeLiteral returns the literal asserting v is false.
func NegativeLiteral(v Var) Literal {
	return Literal(2*v + 1)
}

// FromDIMACS converts a signed, nonzero DIMACS literal into a Literal.
func FromDIMACS(x int) Literal {
	if x < 0 {
		return NegativeLiteral(Var(-x))
	}
	return PositiveLiteral(Var(x))
}

// ToDIMACS converts a Literal back into a signed, nonzero DIMACS literal.
// FromDIMACS and ToDIMACS are inverse bijections.
func (l Literal) ToDIMACS() int {
	v := int(l.Var())
	if l.IsPositive() {
		return v
	}
	return -v
}

// Var returns the literal's underlying variable.
func (l Literal) Var() Var {
	return Var(int(l) / 2)
}

// IsPositive reports whether l asserts its variable is true (as opposed to
// its negation).
func (l Literal) IsPositive() bool {
	return int(l)&1 == 0
}

// Negate returns the opposite literal (¬l).
func (l Literal) Negate() Literal {
	return l ^ 1
}

func (l Literal) String() string {
	if l.IsPositive() {
		return fmt.Sprintf("%d", l.Var())
	}
	return fmt.Sprintf("-%d", l.Var())
}

func (v Var) String() string {
	return fmt.Sprintf("x%d", int(v))
}

// Package dimacscnf loads DIMACS CNF formulas into a sat.Solver. It is an
// external collaborator to the core search engine: parsing lives here, not
// in package sat.
package dimacscnf

import (
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rhartert/dimacs"

	"github.com/satgo/cdcl/internal/sat"
)

// satWriter is the subset of *sat.Solver the loader needs. Kept as an
// interface so tests can load formulas against a fake.
type satWriter interface {
	AddVariable() sat.Var
	AddClause(lits []sat.Literal) error
}

func open(filename string) (io.ReadCloser, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	if strings.HasSuffix(filename, ".gz") {
		gz, err := gzip.NewReader(f)
		if err != nil {
			f.Close()
			return nil, err
		}
		return gz, nil
	}
	return f, nil
}

// LoadFile parses the DIMACS CNF file at filename and instantiates its
// variables and clauses in solver.
func LoadFile(filename string, solver satWriter) error {
	r, err := open(filename)
	if err != nil {
		return fmt.Errorf("error reading file %q: %s", filename, err)
	}
	defer r.Close()
	return Load(r, solver)
}

// Load parses a DIMACS CNF stream and instantiates its variables and
// clauses in solver.
func Load(r io.Reader, solver satWriter) error {
	return dimacs.ReadBuilder(r, &builder{solver: solver})
}

// builder adapts satWriter to dimacs.Builder.
type builder struct {
	solver satWriter
}

func (b *builder) Problem(problem string, nVars int, nClauses int) error {
	if problem != "cnf" {
		return fmt.Errorf("instances of type %q are not supported", problem)
	}
	for i := 0; i < nVars; i++ {
		b.solver.AddVariable()
	}
	return nil
}

func (b *builder) Clause(tmp []int) error {
	lits := make([]sat.Literal, len(tmp))
	for i, l := range tmp {
		lits[i] = sat.FromDIMACS(l)
	}
	return b.solver.AddClause(lits)
}

func (b *builder) Comment(_ string) error {
	return nil // ignore comments
}

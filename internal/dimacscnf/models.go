package dimacscnf

import (
	"fmt"
	"os"

	"github.com/rhartert/dimacs"
)

// ReadModels parses a ".models" test fixture: one satisfying assignment per
// line, each a whitespace-separated list of signed DIMACS literals with no
// problem line of its own. Used by end-to-end tests to check a solver's
// model against a set of known-good ones.
func ReadModels(filename string) ([][]bool, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("error reading file %q: %s", filename, err)
	}
	defer f.Close()

	b := &modelBuilder{}
	if err := dimacs.ReadBuilder(f, b); err != nil {
		return nil, err
	}
	return b.models, nil
}

// modelBuilder implements dimacs.Builder to collect a model-file's lines:
// each "clause" line is really a full signed assignment, not a disjunction.
type modelBuilder struct {
	models [][]bool
}

func (b *modelBuilder) Problem(problem string, nVars int, nClauses int) error {
	return fmt.Errorf("model files should not have a problem line")
}

func (b *modelBuilder) Clause(tmp []int) error {
	model := make([]bool, len(tmp))
	for i, l := range tmp {
		model[i] = l > 0
	}
	b.models = append(b.models, model)
	return nil
}

func (b *modelBuilder) Comment(_ string) error {
	return nil // ignore comments
}

// Command satcli is the CLI surface described in §6: it parses a DIMACS
// CNF file, drives the solver, and reports the result. Parsing, option
// handling, and reporting are external collaborators to the core search
// engine, which is why they live here rather than in package sat.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"runtime/pprof"
	"time"

	"github.com/satgo/cdcl/internal/dimacscnf"
	"github.com/satgo/cdcl/internal/sat"
	"github.com/satgo/cdcl/ipasir"
)

const (
	modeNormal      = 0
	modeIncremental = 1

	valdhPhaseSaving = 0
	valdhLitScore    = 1
)

var (
	flagVerbose = flag.Int("v", 0, "verbosity level {0,1,2}")
	flagTimeout = flag.Float64("timeout", 0, "timeout in seconds (0 disables it)")
	flagValDH   = flag.Int("valdh", valdhPhaseSaving, "value decision heuristic {0: phase-saving, 1: literal-score}")
	flagMode    = flag.Int("mode", modeIncremental, "solving mode {0: normal, 1: incremental}")

	flagCPUProfile = flag.Bool("cpuprof", false, "save pprof CPU profile to cpuprof")
	flagMemProfile = flag.Bool("memprof", false, "save pprof memory profile to memprof")
)

type config struct {
	instanceFile string
	verbose      int
	timeout      time.Duration
	valueHeur    sat.ValueHeuristic
	mode         int
	cpuProfile   bool
	memProfile   bool
}

func parseConfig() (*config, error) {
	flag.Parse()

	if flag.NArg() == 0 || flag.Arg(0) == "" {
		return nil, fmt.Errorf("missing instance file")
	}
	if *flagVerbose < 0 || *flagVerbose > 2 {
		return nil, fmt.Errorf("-v must be in {0,1,2}, got %d", *flagVerbose)
	}
	if *flagTimeout < 0 {
		return nil, fmt.Errorf("-timeout must be >= 0, got %f", *flagTimeout)
	}
	if *flagValDH != valdhPhaseSaving && *flagValDH != valdhLitScore {
		return nil, fmt.Errorf("-valdh must be in {0,1}, got %d", *flagValDH)
	}
	if *flagMode != modeNormal && *flagMode != modeIncremental {
		return nil, fmt.Errorf("-mode must be in {0,1}, got %d", *flagMode)
	}

	valueHeur := sat.PhaseSaving
	if *flagValDH == valdhLitScore {
		valueHeur = sat.LitScore
	}

	return &config{
		instanceFile: flag.Arg(0),
		verbose:      *flagVerbose,
		timeout:      time.Duration(*flagTimeout * float64(time.Second)),
		valueHeur:    valueHeur,
		mode:         *flagMode,
		cpuProfile:   *flagCPUProfile,
		memProfile:   *flagMemProfile,
	}, nil
}

// runNormal drives the core solver directly: load, solve once, report.
func runNormal(cfg *config) error {
	opts := sat.DefaultOptions
	opts.ValueHeuristic = cfg.valueHeur
	opts.Timeout = cfg.timeout

	s := sat.NewSolver(opts)
	if err := dimacscnf.LoadFile(cfg.instanceFile, s); err != nil {
		return fmt.Errorf("could not load instance: %s", err)
	}

	if cfg.verbose >= 1 {
		fmt.Printf("c variables: %d\n", s.NumVariables())
	}

	t := time.Now()
	status := s.Solve()
	elapsed := time.Since(t)

	report(cfg, elapsed, status.String(), s.NumDecisions, s.NumConflicts, s.NumRestarts, s.NumLearned)

	if cfg.verbose >= 2 {
		dumpSolver(s)
	}
	return nil
}

// runIncremental drives the formula through the IPASIR façade. This CLI
// performs a single solve per invocation, so the reset-between-solves
// protocol never runs here, and the search counters, which the façade does
// not expose, are reported as zero.
func runIncremental(cfg *config) error {
	opts := sat.DefaultOptions
	opts.ValueHeuristic = cfg.valueHeur
	opts.Timeout = cfg.timeout

	s := ipasir.NewWithOptions(opts)

	loader := &ipasirLoader{s: s}
	if err := dimacscnf.LoadFile(cfg.instanceFile, loader); err != nil {
		return fmt.Errorf("could not load instance: %s", err)
	}

	if cfg.verbose >= 1 {
		fmt.Printf("c variables: %d\n", loader.nvars)
	}

	t := time.Now()
	code := s.Solve()
	elapsed := time.Since(t)

	statusString := map[int]string{10: "SATISFIABLE", 20: "UNSATISFIABLE", 0: "UNRESOLVED"}[code]
	report(cfg, elapsed, statusString, 0, 0, 0, 0)
	return nil
}

// ipasirLoader lets dimacscnf.LoadFile feed an ipasir.Solver, which
// exposes (Add int, not AddClause []Literal) at its boundary.
type ipasirLoader struct {
	s     *ipasir.Solver
	nvars int
}

func (l *ipasirLoader) AddVariable() sat.Var {
	l.nvars++
	return sat.Var(l.nvars)
}

func (l *ipasirLoader) AddClause(lits []sat.Literal) error {
	for _, lit := range lits {
		if err := l.s.Add(lit.ToDIMACS()); err != nil {
			return err
		}
	}
	return l.s.Add(0)
}

func report(cfg *config, elapsed time.Duration, status string, decisions, conflicts, restarts, learned int64) {
	fmt.Printf("c time (sec): %f\n", elapsed.Seconds())
	if cfg.verbose >= 1 {
		fmt.Printf("c decisions:  %d\n", decisions)
		fmt.Printf("c conflicts:  %d\n", conflicts)
		fmt.Printf("c restarts:   %d\n", restarts)
		fmt.Printf("c learned:    %d\n", learned)
	}
	fmt.Printf("s %s\n", status)
}

func run(cfg *config) error {
	if cfg.mode == modeNormal {
		return runNormal(cfg)
	}
	return runIncremental(cfg)
}

func main() {
	cfg, err := parseConfig()
	if err != nil {
		log.Fatal(err)
	}

	if cfg.cpuProfile {
		f, err := os.Create("cpuprof")
		if err != nil {
			log.Fatal(err)
		}
		pprof.StartCPUProfile(f)
		defer pprof.StopCPUProfile()
	}

	if err := run(cfg); err != nil {
		log.Fatal(err)
	}

	if cfg.memProfile {
		f, err := os.Create("memprof")
		if err != nil {
			log.Fatal(err)
		}
		pprof.WriteHeapProfile(f)
		f.Close()
	}
}

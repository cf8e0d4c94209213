package dimacscnf

import (
	"bytes"
	"compress/gzip"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/satgo/cdcl/internal/sat"
)

// fakeSolver records AddVariable/AddClause calls without running any
// search, so the loader can be tested independent of package sat.
type fakeSolver struct {
	variables int
	clauses   [][]sat.Literal
}

func (f *fakeSolver) AddVariable() sat.Var {
	f.variables++
	return sat.Var(f.variables)
}

func (f *fakeSolver) AddClause(tmp []sat.Literal) error {
	clause := make([]sat.Literal, len(tmp))
	copy(clause, tmp)
	f.clauses = append(f.clauses, clause)
	return nil
}

const testInstance = `c a trivial 3-variable instance
p cnf 3 2
1 2 0
-1 3 0
`

var wantInstance = fakeSolver{
	variables: 3,
	clauses: [][]sat.Literal{
		{sat.PositiveLiteral(1), sat.PositiveLiteral(2)},
		{sat.NegativeLiteral(1), sat.PositiveLiteral(3)},
	},
}

func TestLoad(t *testing.T) {
	got := fakeSolver{}
	if err := Load(strings.NewReader(testInstance), &got); err != nil {
		t.Fatalf("Load(): want no error, got %s", err)
	}
	if diff := cmp.Diff(wantInstance, got, cmp.AllowUnexported(fakeSolver{})); diff != "" {
		t.Errorf("Load(): mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.cnf")
	if err := os.WriteFile(path, []byte(testInstance), 0o644); err != nil {
		t.Fatalf("WriteFile: %s", err)
	}

	got := fakeSolver{}
	if err := LoadFile(path, &got); err != nil {
		t.Fatalf("LoadFile(): want no error, got %s", err)
	}
	if diff := cmp.Diff(wantInstance, got, cmp.AllowUnexported(fakeSolver{})); diff != "" {
		t.Errorf("LoadFile(): mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadFileGzip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.cnf.gz")

	var buf bytes.Buffer
	gz := gzip.NewWriter(&buf)
	if _, err := gz.Write([]byte(testInstance)); err != nil {
		t.Fatalf("gzip.Write: %s", err)
	}
	if err := gz.Close(); err != nil {
		t.Fatalf("gzip.Close: %s", err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		t.Fatalf("WriteFile: %s", err)
	}

	got := fakeSolver{}
	if err := LoadFile(path, &got); err != nil {
		t.Fatalf("LoadFile(): want no error, got %s", err)
	}
	if diff := cmp.Diff(wantInstance, got, cmp.AllowUnexported(fakeSolver{})); diff != "" {
		t.Errorf("LoadFile(): mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadFileMissing(t *testing.T) {
	got := fakeSolver{}
	if err := LoadFile(filepath.Join(t.TempDir(), "does-not-exist.cnf"), &got); err == nil {
		t.Error("LoadFile(): want error, got none")
	}
}

func TestLoadRejectsNonCNFProblemType(t *testing.T) {
	got := fakeSolver{}
	err := Load(strings.NewReader("p wcnf 1 1\n1 0\n"), &got)
	if err == nil {
		t.Error("Load(): want error for non-cnf problem line, got none")
	}
}

func TestReadModels(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.cnf.models")
	content := "1 -2 3 0\n-1 -2 -3 0\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile: %s", err)
	}

	got, err := ReadModels(path)
	if err != nil {
		t.Fatalf("ReadModels(): want no error, got %s", err)
	}
	want := [][]bool{
		{true, false, true},
		{false, false, false},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("ReadModels(): mismatch (-want +got):\n%s", diff)
	}
}

func TestReadModelsMissingFile(t *testing.T) {
	if _, err := ReadModels(filepath.Join(t.TempDir(), "missing.models")); err == nil {
		t.Error("ReadModels(): want error, got none")
	}
}

//go:build !sat_debug

package sat

// checkInvariants is a no-op in non-debug builds; see debug.go.
func (s *Solver) checkInvariants() {}

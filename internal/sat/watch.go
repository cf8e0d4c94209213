package sat

// watchIndex maps each literal to the list of clause references currently
// watching it (i.e. whose LW or RW position holds that literal). Order
// within a bucket is irrelevant; duplicates must never arise.
type watchIndex struct {
	buckets [][]ClauseRef
}

// grow extends the index to cover nLits literals (indices [0, nLits)).
func (w *watchIndex) grow(nLits int) {
	for len(w.buckets) < nLits {
		w.buckets = append(w.buckets, nil)
	}
}

func (w *watchIndex) add(l Literal, ref ClauseRef) {
	w.buckets[l] = append(w.buckets[l], ref)
}

// remove deletes ref from l's watch bucket. It panics if ref isn't present,
// which would indicate a broken watch/clause invariant.
func (w *watchIndex) remove(l Literal, ref ClauseRef) {
	bucket := w.buckets[l]
	for i, r := range bucket {
		if r == ref {
			bucket[i] = bucket[len(bucket)-1]
			w.buckets[l] = bucket[:len(bucket)-1]
			return
		}
	}
	invariantViolation("watch index missing clause being removed")
}

func (w *watchIndex) at(l Literal) []ClauseRef {
	return w.buckets[l]
}

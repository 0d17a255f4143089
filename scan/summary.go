package scan

import "sync"

// Counts is a consistent snapshot of the running totals.
type Counts struct {
	Total     int
	Processed int
	OK        int
	Damaged   int
	Skipped   int
}

// Passed is what the progress line reports as "OK": intact files plus files
// skipped for being outside the allowlist.
func (c Counts) Passed() int { return c.OK + c.Skipped }

// Percent is the completed share of the scan, 100 when nothing was found.
func (c Counts) Percent() float64 {
	if c.Total == 0 {
		return 100
	}
	return float64(c.Processed) / float64(c.Total) * 100
}

// Summary accumulates verdicts from concurrently running workers. A single
// mutex guards both the counters and the damaged list so snapshots are
// always consistent with each other.
type Summary struct {
	mu        sync.Mutex
	total     int
	processed int
	ok        int
	damaged   int
	skipped   int
	damagedBy []Verdict // arrival order, not enumeration order
}

// NewSummary creates a summary for a scan of total enumerated files.
func NewSummary(total int) *Summary {
	return &Summary{total: total}
}

// Record folds one verdict into the totals. Damaged verdicts are retained
// with their trails for the end-of-run listing.
func (s *Summary) Record(v Verdict) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.processed++
	switch v.Result {
	case ResultOK:
		s.ok++
	case ResultSkipped:
		s.skipped++
	case ResultDamaged:
		s.damaged++
		s.damagedBy = append(s.damagedBy, v)
	}
}

// Snapshot returns the current totals as one consistent view.
func (s *Summary) Snapshot() Counts {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Counts{
		Total:     s.total,
		Processed: s.processed,
		OK:        s.ok,
		Damaged:   s.damaged,
		Skipped:   s.skipped,
	}
}

// Damaged returns a copy of the damaged verdicts in arrival order.
func (s *Summary) Damaged() []Verdict {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Verdict, len(s.damagedBy))
	copy(out, s.damagedBy)
	return out
}

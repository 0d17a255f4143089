package ui

import (
	"fmt"
	"time"

	"github.com/schollz/progressbar/v3"

	"github.com/lepinkainen/mediacheck/scan"
)

// Progress renders the default single-line scan indicator: a bar with the
// processed count plus a live OK/damaged tally in the description.
type Progress struct {
	bar *progressbar.ProgressBar
}

// NewProgress creates the progress line for a scan of total files.
func NewProgress(total int) *Progress {
	bar := progressbar.NewOptions(total,
		progressbar.OptionSetDescription("OK: 0 | damaged: 0"),
		progressbar.OptionShowCount(),
		progressbar.OptionSetWidth(24),
		progressbar.OptionSetPredictTime(false),
	)
	return &Progress{bar: bar}
}

// Update redraws the line from one consistent counter snapshot.
func (p *Progress) Update(c scan.Counts) {
	p.bar.Describe(fmt.Sprintf("OK: %d | damaged: %d", c.Passed(), c.Damaged))
	_ = p.bar.Set(c.Processed)
}

// Watch redraws periodically until done closes, then renders the final state
// and terminates the line. Rendering happens only here, so concurrent
// counter updates can never tear the output.
func (p *Progress) Watch(snapshot func() scan.Counts, done <-chan struct{}) {
	ticker := time.NewTicker(100 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-done:
			p.Update(snapshot())
			_ = p.bar.Finish()
			fmt.Println()
			return
		case <-ticker.C:
			p.Update(snapshot())
		}
	}
}

package cli

import (
	"fmt"
	"sync/atomic"
	"time"

	"github.com/schollz/progressbar/v3"
)

// CLIProgressReporter implements progress reporting with a progress bar.
// FileExtracted is called from extraction worker goroutines, so the
// counters are atomics; the bar handles its own locking.
type CLIProgressReporter struct {
	quiet   bool
	bar     *progressbar.ProgressBar
	failed  atomic.Int64
	records atomic.Int64
}

// NewCLIProgressReporter creates a new CLI progress reporter.
func NewCLIProgressReporter(quiet bool) *CLIProgressReporter {
	return &CLIProgressReporter{quiet: quiet}
}

func (c *CLIProgressReporter) StartExtraction(totalFiles int) {
	c.failed.Store(0)
	c.records.Store(0)
	if c.quiet {
		return
	}
	c.bar = progressbar.NewOptions(totalFiles,
		progressbar.OptionSetDescription("Extracting"),
		progressbar.OptionSetWidth(40),
		progressbar.OptionShowCount(),
		progressbar.OptionShowIts(),
		progressbar.OptionSetItsString("files/s"),
		progressbar.OptionThrottle(65*time.Millisecond),
		progressbar.OptionShowElapsedTimeOnFinish(),
		progressbar.OptionOnCompletion(func() {
			fmt.Println()
		}),
	)
}

func (c *CLIProgressReporter) FileExtracted(path string, definitions int, err error) {
	if err != nil {
		c.failed.Add(1)
	} else {
		c.records.Add(int64(definitions))
	}
	if c.quiet {
		return
	}
	if c.bar != nil {
		c.bar.Add(1)
	}
}

func (c *CLIProgressReporter) FinishExtraction() {
	if c.quiet {
		return
	}
	if c.bar != nil {
		c.bar.Finish()
		c.bar = nil
	}
	if failed := c.failed.Load(); failed > 0 {
		fmt.Printf("✓ Extracted %d definitions (%d files failed)\n", c.records.Load(), failed)
	} else {
		fmt.Printf("✓ Extracted %d definitions\n", c.records.Load())
	}
}

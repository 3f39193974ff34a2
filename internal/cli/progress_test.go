package cli

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

// Test Plan for CLIProgressReporter:
// - Concurrent FileExtracted calls lose no counts (run with -race)
// - StartExtraction resets the counters between runs

func TestCLIProgressReporter_ConcurrentCounts(t *testing.T) {
	t.Parallel()

	reporter := NewCLIProgressReporter(true)
	reporter.StartExtraction(200)

	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			reporter.FileExtracted("ok.lean", 3, nil)
		}()
		go func() {
			defer wg.Done()
			reporter.FileExtracted("bad.lean", 0, errors.New("unreadable"))
		}()
	}
	wg.Wait()
	reporter.FinishExtraction()

	assert.Equal(t, int64(300), reporter.records.Load())
	assert.Equal(t, int64(100), reporter.failed.Load())
}

func TestCLIProgressReporter_ResetBetweenRuns(t *testing.T) {
	t.Parallel()

	reporter := NewCLIProgressReporter(true)
	reporter.StartExtraction(1)
	reporter.FileExtracted("a.lean", 5, nil)
	reporter.FinishExtraction()

	reporter.StartExtraction(1)
	assert.Equal(t, int64(0), reporter.records.Load())
	assert.Equal(t, int64(0), reporter.failed.Load())
}

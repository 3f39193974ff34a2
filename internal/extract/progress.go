package extract

// ProgressReporter receives progress callbacks during an extraction run.
type ProgressReporter interface {
	// StartExtraction is called once with the total number of files.
	StartExtraction(totalFiles int)

	// FileExtracted is called after each file completes, successfully or not.
	FileExtracted(path string, definitions int, err error)

	// FinishExtraction is called once when the run is complete.
	FinishExtraction()
}

// NoOpProgressReporter discards all progress callbacks.
type NoOpProgressReporter struct{}

func (NoOpProgressReporter) StartExtraction(int)              {}
func (NoOpProgressReporter) FileExtracted(string, int, error) {}
func (NoOpProgressReporter) FinishExtraction()                {}

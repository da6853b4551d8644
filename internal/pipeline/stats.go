package pipeline

// RunStats tracks aggregate counters across a batch run.
type RunStats struct {
	Batches     int
	Files       int
	Identified  int
	Remuxed     int
	Failed      int
	OutputBytes int64
}

package constants

// JobStatus is the canonical status for a statement processing run.
type JobStatus string

const (
	JobStatusQueued     JobStatus = "QUEUED"     // accepted, waiting for a worker
	JobStatusRunning    JobStatus = "RUNNING"    // in progress
	JobStatusDone       JobStatus = "DONE"       // artifact written
	JobStatusUnparsable JobStatus = "UNPARSABLE" // no strategy yielded table data
	JobStatusFailed     JobStatus = "FAILED"     // terminal failure
)

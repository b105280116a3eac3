package model

// StopReason says why an ingestion run ended.
type StopReason string

const (
	StopNothingRequested StopReason = "nothing_requested"
	StopCompleted        StopReason = "completed"
	StopNoProgress       StopReason = "no_progress"
	StopFetchFailed      StopReason = "fetch_failed"
	StopStorageFailed    StopReason = "storage_failed"
)

// IngestResult summarizes one ingestion run.
type IngestResult struct {
	Requested int        `json:"requested"`
	Saved     int        `json:"saved"`
	Rejected  int        `json:"rejected"`
	Batches   int        `json:"batches"`
	Stop      StopReason `json:"stop"`
	Err       error      `json:"-"`
	Error     string     `json:"error,omitempty"`
}

func (r *IngestResult) Remaining() int {
	if r.Saved >= r.Requested {
		return 0
	}
	return r.Requested - r.Saved
}

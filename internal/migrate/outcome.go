package migrate

// Status describes the terminal state of one migrated item.
type Status string

const (
	// StatusExists means the item was already on the remote side; nothing was
	// written.
	StatusExists Status = "exists"
	// StatusPublished means the item was created or updated and published.
	StatusPublished Status = "published"
	// StatusSkipped means the item had no matching remote record to update.
	StatusSkipped Status = "skipped"
	// StatusFailed means a remote write failed; the error is recorded on the
	// outcome and the run continues.
	StatusFailed Status = "failed"
)

// Outcome is the per-item result of a migration step. Recoverable failures
// are carried here instead of propagating, so the driver can aggregate and
// report them at the end of the run.
type Outcome struct {
	Subject string // source identifier: picture uid or document key
	Status  Status
	Detail  string
	Err     error
}

// Summary tallies outcomes by status.
func Summary(outcomes []Outcome) map[Status]int {
	counts := make(map[Status]int, 4)
	for _, o := range outcomes {
		counts[o.Status]++
	}
	return counts
}

// Failed filters the outcomes that carry an error.
func Failed(outcomes []Outcome) []Outcome {
	var failed []Outcome
	for _, o := range outcomes {
		if o.Status == StatusFailed {
			failed = append(failed, o)
		}
	}
	return failed
}

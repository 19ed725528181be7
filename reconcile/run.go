package reconcile

import (
	"time"

	"github.com/ruteri/mdm-cert-reconciler/interfaces"
)

// Run is the summary of one reconciliation pass.
type Run struct {
	ID           string                       `json:"id"`
	DryRun       bool                         `json:"dry_run"`
	StartedAt    time.Time                    `json:"started_at"`
	FinishedAt   time.Time                    `json:"finished_at"`
	DiscoveryErr error                        `json:"-"`
	Results      []interfaces.ReconcileResult `json:"results"`

	Matched   int `json:"matched"`
	Corrected int `json:"corrected"`
	Failed    int `json:"failed"`
}

func newRun(id string, dryRun bool) *Run {
	return &Run{ID: id, DryRun: dryRun, StartedAt: time.Now().UTC()}
}

func (r *Run) add(res interfaces.ReconcileResult) {
	r.Results = append(r.Results, res)
	switch res.Status {
	case interfaces.StatusMatched:
		r.Matched++
	case interfaces.StatusCorrected, interfaces.StatusWouldCorrect:
		r.Corrected++
	case interfaces.StatusFailed:
		r.Failed++
	}
}

func (r *Run) finish() {
	r.FinishedAt = time.Now().UTC()
}

func (r *Run) finishDiscoveryFailure(err error) {
	r.DiscoveryErr = err
	r.FinishedAt = time.Now().UTC()
}

// ExitCode maps the run outcome onto the process exit status: zero only
// when discovery succeeded and no kind failed. Resolution and write
// failures both count; they are reported once and never retried.
func (r *Run) ExitCode() int {
	if r.DiscoveryErr != nil || r.Failed > 0 {
		return 1
	}
	return 0
}

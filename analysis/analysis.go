// Package analysis orchestrates the long-running document comparison job:
// one blocking API call per document-management record, guarded by a keyed
// in-flight tracker so a record cannot be analyzed twice concurrently, with
// failures classified into typed kinds for recovery.
package analysis

import (
	"context"
	"net/http"
	"strings"

	"github.com/Josesitobb/adcu-client/api"
	"github.com/Josesitobb/adcu-client/model"
)

// Kind classifies an analysis failure for the caller's recovery path.
type Kind int

const (
	// KindNone: no failure.
	KindNone Kind = iota
	// KindIncompleteDocuments: the server rejected the run because required
	// documents are missing. Not retryable; the fix is uploading documents.
	KindIncompleteDocuments
	// KindValidation: some other client-side problem with the request.
	KindValidation
	// KindConnectivity: no response from the server. A manual retry is
	// offered for this kind only.
	KindConnectivity
	// KindServer: the server faulted while computing.
	KindServer
	// KindInFlight: an analysis for this record is already running.
	KindInFlight
)

func (k Kind) String() string {
	switch k {
	case KindIncompleteDocuments:
		return "incomplete documents"
	case KindValidation:
		return "validation failure"
	case KindConnectivity:
		return "connectivity failure"
	case KindServer:
		return "server failure"
	case KindInFlight:
		return "already running"
	default:
		return "none"
	}
}

// legacyMissingFile is matched in the message only when the server sent no
// structured code. Old deployments phrase the missing-document rejection
// this way.
const legacyMissingFile = "Falta el archivo"

// Classify maps a failed Result's status and code to a failure kind.
func Classify(status int, code, message string) Kind {
	if status == 0 {
		return KindConnectivity
	}
	if code == api.CodeMissingFile {
		return KindIncompleteDocuments
	}
	if status == http.StatusBadRequest && code == "" && strings.Contains(message, legacyMissingFile) {
		return KindIncompleteDocuments
	}
	if status >= 400 && status < 500 {
		return KindValidation
	}
	return KindServer
}

// Outcome is the result of one analysis run.
type Outcome struct {
	OK         bool
	Comparison *model.Comparison
	Kind       Kind
	Message    string
	// Retryable marks failures where offering a manual retry makes sense.
	Retryable bool
}

// Trigger is the API surface the runner needs; implemented by *api.Client.
type Trigger interface {
	RunAnalysis(ctx context.Context, managementID string) api.Result[model.Comparison]
}

// Runner runs analyses while keeping the per-record in-flight state.
type Runner struct {
	trigger Trigger
	tracker *Tracker
}

// NewRunner creates a runner around the given trigger.
func NewRunner(trigger Trigger) *Runner {
	return &Runner{trigger: trigger, tracker: NewTracker()}
}

// Tracker exposes the in-flight state for display.
func (r *Runner) Tracker() *Tracker {
	return r.tracker
}

// Run triggers the analysis for one document-management record and blocks
// until the server answers. Only the given record is locked while running;
// other records stay triggerable.
func (r *Runner) Run(ctx context.Context, managementID string) Outcome {
	if !r.tracker.Begin(managementID) {
		return Outcome{
			Kind:    KindInFlight,
			Message: "an analysis for this record is already running",
		}
	}

	res := r.trigger.RunAnalysis(ctx, managementID)
	if !res.Success {
		r.tracker.Fail(managementID)
		kind := Classify(res.Status, res.Code, res.Message)
		return Outcome{
			Kind:      kind,
			Message:   res.Message,
			Retryable: kind == KindConnectivity,
		}
	}

	r.tracker.Done(managementID)
	cmp := res.Data
	return Outcome{OK: true, Comparison: &cmp}
}

// Package docflow drives the per-contractor document upload workflow: eleven
// named slots, each moving Pending -> Selected -> Uploaded, with local PDF
// validation before any file is accepted and an all-or-nothing batch submit.
package docflow

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Josesitobb/adcu-client/model"
)

// State of one document slot.
type State int

const (
	// Pending: no file selected and nothing stored on the server.
	Pending State = iota
	// Selected: a file was chosen locally but not yet submitted.
	Selected
	// Uploaded: the server confirms a stored path for the slot.
	Uploaded
)

func (s State) String() string {
	switch s {
	case Selected:
		return "selected"
	case Uploaded:
		return "uploaded"
	default:
		return "pending"
	}
}

// MaxFileSize is the upload size cap per document.
const MaxFileSize = 10 << 20 // 10 MB

// File is a locally selected document.
type File struct {
	Name    string
	MIME    string
	Size    int64
	Content []byte
}

// Validation failures are typed so screens can show the right message.
var (
	ErrNotPDF   = errors.New("only PDF files are allowed")
	ErrTooLarge = fmt.Errorf("file exceeds the %d MB limit", MaxFileSize>>20)
)

// ValidateFile accepts a file that resolves to a PDF (by MIME type or .pdf
// name) and is within the size cap.
func ValidateFile(f File) error {
	isPDF := f.MIME == "application/pdf" || strings.HasSuffix(strings.ToLower(f.Name), ".pdf")
	if !isPDF {
		return ErrNotPDF
	}
	if f.Size > MaxFileSize {
		return ErrTooLarge
	}
	return nil
}

// Uploader sends selected documents to the server. Implemented by the API
// client; faked in tests.
type Uploader interface {
	// Upload submits every file in one multipart request with the shared
	// description and the recorded client IP.
	Upload(ctx context.Context, contractorID, description, clientIP string, files map[string]File) error
	// Replace swaps the stored file of a single slot. No description.
	Replace(ctx context.Context, contractorID, slot string, file File) error
}

// Tracker holds the workflow state for one contractor's document record.
type Tracker struct {
	contractorID string
	uploader     Uploader
	states       map[string]State
	selected     map[string]File
}

// NewTracker derives initial slot states from the server-side record: a slot
// with a non-empty stored path starts Uploaded, every other slot Pending.
// Pass an empty record when the server has none yet (first-time upload).
func NewTracker(contractorID string, doc *model.DocumentManagement, uploader Uploader) *Tracker {
	t := &Tracker{
		contractorID: contractorID,
		uploader:     uploader,
		states:       make(map[string]State, len(model.SlotKeys)),
		selected:     make(map[string]File),
	}
	for _, key := range model.SlotKeys {
		if doc != nil && doc.Uploaded(key) {
			t.states[key] = Uploaded
		} else {
			t.states[key] = Pending
		}
	}
	return t
}

// State returns the state of one slot. Unknown slots report Pending.
func (t *Tracker) State(slot string) State {
	return t.states[slot]
}

// SelectedSlots returns the slots currently holding a local selection, in
// canonical order.
func (t *Tracker) SelectedSlots() []string {
	var slots []string
	for _, key := range model.SlotKeys {
		if t.states[key] == Selected {
			slots = append(slots, key)
		}
	}
	return slots
}

// Select validates the file and stages it for the given slot. An invalid
// file leaves the slot untouched and the validation error is returned for
// display. Selecting over an Uploaded slot is rejected; use Replace.
func (t *Tracker) Select(slot string, f File) error {
	if !model.IsSlot(slot) {
		return fmt.Errorf("unknown document slot %q", slot)
	}
	if t.states[slot] == Uploaded {
		return fmt.Errorf("slot %q already uploaded; replace it instead", slot)
	}
	if err := ValidateFile(f); err != nil {
		return err
	}
	t.selected[slot] = f
	t.states[slot] = Selected
	return nil
}

// Deselect drops a staged file, returning the slot to Pending.
func (t *Tracker) Deselect(slot string) {
	if t.states[slot] == Selected {
		delete(t.selected, slot)
		t.states[slot] = Pending
	}
}

// Submit sends every Selected slot in one batch request. The submission is
// all-or-nothing: on success all included slots become Uploaded and the
// local selections are cleared; on any failure every slot stays Selected.
// The description is required and shared by the whole batch.
func (t *Tracker) Submit(ctx context.Context, description, clientIP string) error {
	if strings.TrimSpace(description) == "" {
		return errors.New("a description is required")
	}
	if len(t.selected) == 0 {
		return errors.New("no documents selected")
	}

	files := make(map[string]File, len(t.selected))
	for slot, f := range t.selected {
		files[slot] = f
	}

	if err := t.uploader.Upload(ctx, t.contractorID, description, clientIP, files); err != nil {
		return err
	}

	for slot := range files {
		t.states[slot] = Uploaded
		delete(t.selected, slot)
	}
	return nil
}

// Replace swaps the stored file of one Uploaded slot. The slot state does
// not change; only the stored path on the server does.
func (t *Tracker) Replace(ctx context.Context, slot string, f File) error {
	if !model.IsSlot(slot) {
		return fmt.Errorf("unknown document slot %q", slot)
	}
	if t.states[slot] != Uploaded {
		return fmt.Errorf("slot %q has no uploaded file to replace", slot)
	}
	if err := ValidateFile(f); err != nil {
		return err
	}
	return t.uploader.Replace(ctx, t.contractorID, slot, f)
}

// Summary reports slot states keyed by slot, for display.
func (t *Tracker) Summary() map[string]State {
	out := make(map[string]State, len(t.states))
	for k, v := range t.states {
		out[k] = v
	}
	return out
}

package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Josesitobb/adcu-client/model"
)

// MissingFileError rejects an analysis whose document record still has empty
// slots. The message keeps the wording the mobile clients match on.
type MissingFileError struct {
	Slot string
}

func (e *MissingFileError) Error() string {
	return fmt.Sprintf("Falta el archivo %s", model.SlotLabels[e.Slot])
}

// Analyzer runs the document comparison for the stub server. The real
// backend grinds over the files for 10-20 minutes; the stub checks the
// stored objects and can simulate the duration with a configurable delay.
type Analyzer struct {
	store   *Store
	objects ObjectStore
	delay   time.Duration
}

func NewAnalyzer(store *Store, objects ObjectStore, delay time.Duration) *Analyzer {
	return &Analyzer{store: store, objects: objects, delay: delay}
}

// Run analyzes one document-management record. Every slot must hold a file
// before the analysis starts; otherwise a MissingFileError names the first
// empty slot. The produced comparison carries one verdict per slot, and the
// contractor's verification summary is refreshed from it.
func (a *Analyzer) Run(ctx context.Context, managementID string) (*model.Comparison, error) {
	doc, err := a.store.GetDocumentsByManagementID(managementID)
	if err != nil {
		return nil, err
	}

	if missing := doc.MissingSlots(); len(missing) > 0 {
		return nil, &MissingFileError{Slot: missing[0]}
	}

	if a.delay > 0 {
		select {
		case <-time.After(a.delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	cmp := model.Comparison{DocumentManagementID: managementID}
	var failed []string
	for _, key := range model.SlotKeys {
		ok, err := a.objects.Exists(ctx, doc.Slot(key))
		if err != nil {
			return nil, fmt.Errorf("failed to check stored file for %s: %w", key, err)
		}
		verdict := &model.FieldVerdict{Status: ok}
		if !ok {
			verdict.Description = "stored file is missing"
			failed = append(failed, key)
		}
		cmp.SetVerdict(key, verdict)
	}

	saved := a.store.SaveComparison(cmp)

	verification := model.Verification{
		ContractorID:  doc.ContractorID,
		State:         len(failed) == 0,
		MissingFields: failed,
	}
	if len(failed) == 0 {
		verification.Description = "Todos los documentos aprobados"
	} else {
		verification.Description = "Faltan los siguientes documentos: " + strings.Join(failed, ", ")
	}
	a.store.SaveVerification(verification)

	return saved, nil
}

package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"testing"

	"github.com/Josesitobb/adcu-client/model"
)

// seedFullDocuments stores a complete eleven-slot record with every object
// present in the object store, returning the management id.
func seedFullDocuments(t *testing.T, env *testEnv, contractorID string) string {
	t.Helper()

	doc := model.DocumentManagement{
		ContractorID: contractorID,
		Description:  "complete filing",
		State:        true,
	}
	for _, slot := range model.SlotKeys {
		objectName := "uploads/" + contractorID + "/" + slot + "/" + slot + ".pdf"
		if _, err := env.objects.Put(context.Background(), objectName,
			bytes.NewReader([]byte("%PDF")), 4, "application/pdf"); err != nil {
			t.Fatalf("Failed to seed object %s: %v", objectName, err)
		}
		doc.SetSlot(slot, objectName)
	}

	saved := env.store.SaveDocuments(doc)
	return saved.ID
}

func TestDataRunComplete(t *testing.T) {
	env := setupTestEnv(t)
	token := env.signIn(t, "admin@adcu.gov.co", "admin123")
	managementID := seedFullDocuments(t, env, "c-1")

	w := env.do(t, "POST", "/api/Data", token, map[string]string{
		"documentManagementId": managementID,
	})
	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d: %s", w.Code, w.Body.String())
	}

	var resp struct {
		Success bool             `json:"success"`
		Data    model.Comparison `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Failed to parse response: %v", err)
	}
	if !resp.Success {
		t.Error("Expected success=true")
	}
	if resp.Data.DocumentManagementID != managementID {
		t.Errorf("Expected management id %s, got %s", managementID, resp.Data.DocumentManagementID)
	}
	if got := resp.Data.Percentage(); got != 100 {
		t.Errorf("Expected 100%% approval, got %d", got)
	}

	// The run leaves a passing verification behind.
	verifications := env.store.ListVerifications()
	if len(verifications) != 1 {
		t.Fatalf("Expected 1 verification, got %d", len(verifications))
	}
	if !verifications[0].State {
		t.Error("Expected a passing verification state")
	}
}

func TestDataRunMissingFile(t *testing.T) {
	env := setupTestEnv(t)
	token := env.signIn(t, "admin@adcu.gov.co", "admin123")

	// Only one slot uploaded; the analysis must refuse to run.
	doc := model.DocumentManagement{ContractorID: "c-2", Rut: "uploads/c-2/rut/rut.pdf"}
	saved := env.store.SaveDocuments(doc)

	w := env.do(t, "POST", "/api/Data", token, map[string]string{
		"documentManagementId": saved.ID,
	})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("Expected status 400, got %d: %s", w.Code, w.Body.String())
	}

	resp := parseEnvelope(t, w)
	if resp["code"] != "missing_file" {
		t.Errorf("Expected code missing_file, got %v", resp["code"])
	}
	message, _ := resp["message"].(string)
	if !strings.Contains(message, "Falta el archivo") {
		t.Errorf("Expected the legacy missing-file phrase, got %q", message)
	}
}

func TestDataRunUnknownRecord(t *testing.T) {
	env := setupTestEnv(t)
	token := env.signIn(t, "admin@adcu.gov.co", "admin123")

	w := env.do(t, "POST", "/api/Data", token, map[string]string{
		"documentManagementId": "no-such-record",
	})
	if w.Code != http.StatusNotFound {
		t.Errorf("Expected status 404, got %d", w.Code)
	}
}

func TestDataRunRequiresManagementID(t *testing.T) {
	env := setupTestEnv(t)
	token := env.signIn(t, "admin@adcu.gov.co", "admin123")

	w := env.do(t, "POST", "/api/Data", token, map[string]string{})
	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400, got %d", w.Code)
	}
}

func TestDataGetAndList(t *testing.T) {
	env := setupTestEnv(t)
	token := env.signIn(t, "admin@adcu.gov.co", "admin123")
	managementID := seedFullDocuments(t, env, "c-3")

	if w := env.do(t, "POST", "/api/Data", token, map[string]string{
		"documentManagementId": managementID,
	}); w.Code != http.StatusOK {
		t.Fatalf("Analysis failed with %d: %s", w.Code, w.Body.String())
	}

	w := env.do(t, "GET", "/api/Data/"+managementID, token, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", w.Code)
	}
	var got struct {
		Data model.Comparison `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
		t.Fatalf("Failed to parse response: %v", err)
	}
	if got.Data.DocumentManagementID != managementID {
		t.Errorf("Expected management id %s, got %s", managementID, got.Data.DocumentManagementID)
	}

	w = env.do(t, "GET", "/api/Data", token, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", w.Code)
	}
	list, _ := parseEnvelope(t, w)["data"].([]interface{})
	if len(list) != 1 {
		t.Errorf("Expected 1 comparison, got %d", len(list))
	}

	w = env.do(t, "GET", "/api/Data/absent", token, nil)
	if w.Code != http.StatusNotFound {
		t.Errorf("Expected status 404, got %d", w.Code)
	}
}

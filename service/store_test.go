package service

import (
	"errors"
	"testing"

	"github.com/Josesitobb/adcu-client/config"
	"github.com/Josesitobb/adcu-client/model"
)

func TestStoreCreateUserAndAuthenticate(t *testing.T) {
	store := NewStore()

	created, err := store.CreateUser(model.User{
		Name:  "Ana",
		Email: "ana@adcu.test",
		Role:  model.RoleAdmin,
		State: true,
	}, "secret")
	if err != nil {
		t.Fatalf("Failed to create user: %v", err)
	}
	if created.ID == "" {
		t.Error("Expected assigned id")
	}

	user, err := store.Authenticate("ana@adcu.test", "secret")
	if err != nil {
		t.Fatalf("Failed to authenticate: %v", err)
	}
	if user.ID != created.ID {
		t.Errorf("Expected user %s, got %s", created.ID, user.ID)
	}

	if _, err := store.Authenticate("ana@adcu.test", "wrong"); !errors.Is(err, ErrBadPassword) {
		t.Errorf("Expected ErrBadPassword, got %v", err)
	}
	if _, err := store.Authenticate("nobody@adcu.test", "secret"); !errors.Is(err, ErrBadPassword) {
		t.Errorf("Expected ErrBadPassword for unknown email, got %v", err)
	}
}

func TestStoreDuplicateEmail(t *testing.T) {
	store := NewStore()

	if _, err := store.CreateUser(model.User{Email: "ana@adcu.test"}, "x"); err != nil {
		t.Fatal(err)
	}
	if _, err := store.CreateUser(model.User{Email: "ana@adcu.test"}, "y"); !errors.Is(err, ErrEmailTaken) {
		t.Errorf("Expected ErrEmailTaken, got %v", err)
	}
}

func TestStoreSeed(t *testing.T) {
	store := NewStore()

	err := store.Seed([]config.StubUser{
		{Email: "admin@adcu.test", Password: "adminpass", Name: "Admin", Role: "admin"},
	})
	if err != nil {
		t.Fatalf("Failed to seed: %v", err)
	}

	user, err := store.Authenticate("admin@adcu.test", "adminpass")
	if err != nil {
		t.Fatalf("Expected seeded user to authenticate: %v", err)
	}
	if user.Role != model.RoleAdmin {
		t.Errorf("Expected admin role, got %s", user.Role)
	}
}

func TestStoreContractorsFilter(t *testing.T) {
	store := NewStore()

	mk := func(email string, state bool) {
		t.Helper()
		_, err := store.CreateContractor(model.User{Name: email, Email: email, State: state}, "pw", "")
		if err != nil {
			t.Fatal(err)
		}
	}
	mk("c1@adcu.test", true)
	mk("c2@adcu.test", false)
	mk("c3@adcu.test", true)

	if got := len(store.ListContractors(nil)); got != 3 {
		t.Errorf("Expected 3 contractors, got %d", got)
	}

	active := true
	if got := len(store.ListContractors(&active)); got != 2 {
		t.Errorf("Expected 2 active contractors, got %d", got)
	}

	inactive := false
	if got := len(store.ListContractors(&inactive)); got != 1 {
		t.Errorf("Expected 1 inactive contractor, got %d", got)
	}
}

func TestStoreContractorWithContract(t *testing.T) {
	store := NewStore()

	contract := store.CreateContract(model.Contract{Number: "CT-001", Type: "services"})
	contractor, err := store.CreateContractor(model.User{Email: "c1@adcu.test", State: true}, "pw", contract.ID)
	if err != nil {
		t.Fatalf("Failed to create contractor: %v", err)
	}

	if contractor.Contract == nil || contractor.Contract.Number != "CT-001" {
		t.Errorf("Expected bound contract, got %+v", contractor.Contract)
	}
	if contractor.User.Role != model.RoleContractor {
		t.Errorf("Expected contractor role, got %s", contractor.User.Role)
	}

	stored, _ := store.GetContract(contract.ID)
	if stored.ContractorID != contractor.ID {
		t.Error("Expected contract to record its contractor")
	}
}

func TestStoreContractsFilter(t *testing.T) {
	store := NewStore()

	c1 := store.CreateContract(model.Contract{Number: "CT-001"})
	store.CreateContract(model.Contract{Number: "CT-002"})

	if _, err := store.CreateContractor(model.User{Email: "c1@adcu.test"}, "pw", c1.ID); err != nil {
		t.Fatal(err)
	}

	assigned := true
	got := store.ListContracts(&assigned)
	if len(got) != 1 || got[0].Number != "CT-001" {
		t.Errorf("Expected only the assigned contract, got %v", got)
	}

	unassigned := false
	got = store.ListContracts(&unassigned)
	if len(got) != 1 || got[0].Number != "CT-002" {
		t.Errorf("Expected only the unassigned contract, got %v", got)
	}
}

func TestStoreUpdateContract(t *testing.T) {
	store := NewStore()

	contract := store.CreateContract(model.Contract{Number: "CT-001", State: true})
	updated, err := store.UpdateContract(contract.ID, model.Contract{Number: "CT-001", Suspension: true, State: true})
	if err != nil {
		t.Fatalf("Failed to update contract: %v", err)
	}

	if !updated.Suspension {
		t.Error("Expected suspension flag set")
	}
	if updated.ID != contract.ID {
		t.Error("Expected id preserved")
	}
	if !updated.UpdatedAt.After(updated.CreatedAt) && updated.UpdatedAt != updated.CreatedAt {
		t.Error("Expected updated timestamp")
	}

	if _, err := store.UpdateContract("missing", model.Contract{}); !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
}

func TestStoreSaveDocumentsVersioning(t *testing.T) {
	store := NewStore()

	first := store.SaveDocuments(model.DocumentManagement{
		ContractorID: "c1",
		Rut:          "uploads/c1/rut.pdf",
		Description:  "first batch",
	})
	if first.Version != 1 {
		t.Errorf("Expected version 1, got %d", first.Version)
	}
	if first.ID == "" || first.CreationDate.IsZero() {
		t.Error("Expected id and creation date assigned")
	}

	second := store.SaveDocuments(model.DocumentManagement{
		ContractorID: "c1",
		Rut:          "uploads/c1/rut.pdf",
		Rit:          "uploads/c1/rit.pdf",
		Description:  "second batch",
	})
	if second.Version != 2 {
		t.Errorf("Expected version 2, got %d", second.Version)
	}
	if second.ID != first.ID {
		t.Error("Expected stable record id across saves")
	}

	byID, err := store.GetDocumentsByManagementID(first.ID)
	if err != nil {
		t.Fatalf("Failed to resolve by management id: %v", err)
	}
	if byID.ContractorID != "c1" {
		t.Errorf("Unexpected record: %+v", byID)
	}
}

func TestStoreDocumentsNotFound(t *testing.T) {
	store := NewStore()
	if _, err := store.GetDocuments("missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
}

func TestStoreVerificationUpsert(t *testing.T) {
	store := NewStore()

	store.SaveVerification(model.Verification{ContractorID: "c1", State: false, MissingFields: []string{"rut"}})
	store.SaveVerification(model.Verification{ContractorID: "c1", State: true})

	list := store.ListVerifications()
	if len(list) != 1 {
		t.Fatalf("Expected one verification per contractor, got %d", len(list))
	}
	if !list[0].State {
		t.Error("Expected latest verification to win")
	}
}

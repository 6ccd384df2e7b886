package service

import (
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/Josesitobb/adcu-client/config"
	"github.com/Josesitobb/adcu-client/model"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrNotFound    = errors.New("not found")
	ErrEmailTaken  = errors.New("email already registered")
	ErrBadPassword = errors.New("invalid credentials")
)

type account struct {
	user model.User
	hash []byte
}

// Store is the stub server's in-memory state. All entities the API serves
// live here; nothing is persisted across restarts.
type Store struct {
	mu            sync.RWMutex
	accounts      map[string]*account            // by user id
	byEmail       map[string]string              // email -> user id
	contractors   map[string]*model.Contractor   // by contractor id
	contracts     map[string]*model.Contract     // by contract id
	documents     map[string]*model.DocumentManagement // by contractor id
	documentsByID map[string]string              // management id -> contractor id
	comparisons   map[string]*model.Comparison   // by management id
	verifications map[string]*model.Verification // by contractor id
}

func NewStore() *Store {
	return &Store{
		accounts:      make(map[string]*account),
		byEmail:       make(map[string]string),
		contractors:   make(map[string]*model.Contractor),
		contracts:     make(map[string]*model.Contract),
		documents:     make(map[string]*model.DocumentManagement),
		documentsByID: make(map[string]string),
		comparisons:   make(map[string]*model.Comparison),
		verifications: make(map[string]*model.Verification),
	}
}

// Seed registers the configured users, hashing their passwords.
func (s *Store) Seed(users []config.StubUser) error {
	for _, u := range users {
		role := u.Role
		if role == "" {
			role = model.RoleAdmin
		}
		_, err := s.CreateUser(model.User{
			Name:  u.Name,
			Email: u.Email,
			Role:  role,
			State: true,
		}, u.Password)
		if err != nil {
			return fmt.Errorf("failed to seed user %s: %w", u.Email, err)
		}
	}
	return nil
}

// CreateUser registers an account with a bcrypt-hashed password.
func (s *Store) CreateUser(user model.User, password string) (*model.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, taken := s.byEmail[user.Email]; taken {
		return nil, ErrEmailTaken
	}

	user.ID = uuid.New().String()
	user.CreatedAt = time.Now()
	s.accounts[user.ID] = &account{user: user, hash: hash}
	s.byEmail[user.Email] = user.ID

	u := user
	return &u, nil
}

// Authenticate checks credentials and returns the matching user.
func (s *Store) Authenticate(email, password string) (*model.User, error) {
	s.mu.RLock()
	id, ok := s.byEmail[email]
	var acc *account
	if ok {
		acc = s.accounts[id]
	}
	s.mu.RUnlock()

	if acc == nil {
		return nil, ErrBadPassword
	}
	if err := bcrypt.CompareHashAndPassword(acc.hash, []byte(password)); err != nil {
		return nil, ErrBadPassword
	}

	u := acc.user
	return &u, nil
}

// GetUser returns one account by id.
func (s *Store) GetUser(id string) (*model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	acc, ok := s.accounts[id]
	if !ok {
		return nil, ErrNotFound
	}
	u := acc.user
	return &u, nil
}

// GetUserByEmail returns one account by email.
func (s *Store) GetUserByEmail(email string) (*model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	id, ok := s.byEmail[email]
	if !ok {
		return nil, ErrNotFound
	}
	u := s.accounts[id].user
	return &u, nil
}

// ListUsers returns every account ordered by creation time.
func (s *Store) ListUsers() []model.User {
	s.mu.RLock()
	defer s.mu.RUnlock()

	users := make([]model.User, 0, len(s.accounts))
	for _, acc := range s.accounts {
		users = append(users, acc.user)
	}
	sort.Slice(users, func(i, j int) bool {
		return users[i].CreatedAt.Before(users[j].CreatedAt)
	})
	return users
}

// UpdateUser replaces the mutable fields of an account.
func (s *Store) UpdateUser(id string, update model.User) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	acc, ok := s.accounts[id]
	if !ok {
		return nil, ErrNotFound
	}

	if update.Email != "" && update.Email != acc.user.Email {
		if _, taken := s.byEmail[update.Email]; taken {
			return nil, ErrEmailTaken
		}
		delete(s.byEmail, acc.user.Email)
		s.byEmail[update.Email] = id
		acc.user.Email = update.Email
	}
	if update.Name != "" {
		acc.user.Name = update.Name
	}
	if update.IDCard != "" {
		acc.user.IDCard = update.IDCard
	}
	if update.Phone != "" {
		acc.user.Phone = update.Phone
	}
	if update.Post != "" {
		acc.user.Post = update.Post
	}
	acc.user.State = update.State

	u := acc.user
	return &u, nil
}

// CreateContractor wraps a user in a contractor record, optionally binding a
// contract.
func (s *Store) CreateContractor(user model.User, password, contractID string) (*model.Contractor, error) {
	user.Role = model.RoleContractor
	created, err := s.CreateUser(user, password)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	contractor := &model.Contractor{
		ID:   uuid.New().String(),
		User: *created,
	}
	if contractID != "" {
		contract, ok := s.contracts[contractID]
		if !ok {
			return nil, ErrNotFound
		}
		contract.ContractorID = contractor.ID
		cc := *contract
		contractor.Contract = &cc
	}

	s.contractors[contractor.ID] = contractor
	c := *contractor
	return &c, nil
}

// GetContractor returns one contractor by id.
func (s *Store) GetContractor(id string) (*model.Contractor, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	contractor, ok := s.contractors[id]
	if !ok {
		return nil, ErrNotFound
	}
	c := *contractor
	return &c, nil
}

// ListContractors returns contractors, filtered by the user's active state
// when state is non-nil.
func (s *Store) ListContractors(state *bool) []model.Contractor {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]model.Contractor, 0, len(s.contractors))
	for _, c := range s.contractors {
		if state != nil && c.User.State != *state {
			continue
		}
		result = append(result, *c)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].User.CreatedAt.Before(result[j].User.CreatedAt)
	})
	return result
}

// UpdateContractor edits the wrapped user and contract binding in place.
func (s *Store) UpdateContractor(id string, update model.User, contractID string) (*model.Contractor, error) {
	s.mu.RLock()
	contractor, ok := s.contractors[id]
	s.mu.RUnlock()
	if !ok {
		return nil, ErrNotFound
	}

	updated, err := s.UpdateUser(contractor.User.ID, update)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	contractor.User = *updated
	if contractID != "" {
		contract, ok := s.contracts[contractID]
		if !ok {
			return nil, ErrNotFound
		}
		contract.ContractorID = id
		cc := *contract
		contractor.Contract = &cc
	}

	c := *contractor
	return &c, nil
}

// CreateContract registers a contract.
func (s *Store) CreateContract(contract model.Contract) *model.Contract {
	s.mu.Lock()
	defer s.mu.Unlock()

	contract.ID = uuid.New().String()
	contract.CreatedAt = time.Now()
	contract.UpdatedAt = contract.CreatedAt
	s.contracts[contract.ID] = &contract

	c := contract
	return &c
}

// GetContract returns one contract by id.
func (s *Store) GetContract(id string) (*model.Contract, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	contract, ok := s.contracts[id]
	if !ok {
		return nil, ErrNotFound
	}
	c := *contract
	return &c, nil
}

// ListContracts returns contracts; withContractor filters assigned (true) or
// unassigned (false) ones when non-nil.
func (s *Store) ListContracts(withContractor *bool) []model.Contract {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]model.Contract, 0, len(s.contracts))
	for _, c := range s.contracts {
		if withContractor != nil && (c.ContractorID != "") != *withContractor {
			continue
		}
		result = append(result, *c)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.Before(result[j].CreatedAt)
	})
	return result
}

// UpdateContract replaces a contract's fields, keeping id and timestamps.
func (s *Store) UpdateContract(id string, update model.Contract) (*model.Contract, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	contract, ok := s.contracts[id]
	if !ok {
		return nil, ErrNotFound
	}

	update.ID = contract.ID
	update.CreatedAt = contract.CreatedAt
	update.UpdatedAt = time.Now()
	if update.ContractorID == "" {
		update.ContractorID = contract.ContractorID
	}
	*contract = update

	c := *contract
	return &c, nil
}

// GetDocuments returns the document record for a contractor.
func (s *Store) GetDocuments(contractorID string) (*model.DocumentManagement, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	doc, ok := s.documents[contractorID]
	if !ok {
		return nil, ErrNotFound
	}
	d := *doc
	return &d, nil
}

// GetDocumentsByManagementID resolves a document record by its own id.
func (s *Store) GetDocumentsByManagementID(managementID string) (*model.DocumentManagement, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	contractorID, ok := s.documentsByID[managementID]
	if !ok {
		return nil, ErrNotFound
	}
	d := *s.documents[contractorID]
	return &d, nil
}

// ListDocuments returns every document record.
func (s *Store) ListDocuments() []model.DocumentManagement {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]model.DocumentManagement, 0, len(s.documents))
	for _, d := range s.documents {
		result = append(result, *d)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].CreationDate.Before(result[j].CreationDate)
	})
	return result
}

// SaveDocuments upserts a contractor's document record, bumping the version
// on updates.
func (s *Store) SaveDocuments(doc model.DocumentManagement) *model.DocumentManagement {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.documents[doc.ContractorID]
	if ok {
		doc.ID = existing.ID
		doc.CreationDate = existing.CreationDate
		doc.Version = existing.Version + 1
	} else {
		doc.ID = uuid.New().String()
		doc.CreationDate = time.Now()
		doc.Version = 1
	}
	doc.State = true

	s.documents[doc.ContractorID] = &doc
	s.documentsByID[doc.ID] = doc.ContractorID

	d := doc
	return &d
}

// SaveComparison stores the analysis result for a management record.
func (s *Store) SaveComparison(cmp model.Comparison) *model.Comparison {
	s.mu.Lock()
	defer s.mu.Unlock()

	if cmp.ID == "" {
		cmp.ID = uuid.New().String()
	}
	cmp.CreatedAt = time.Now()
	s.comparisons[cmp.DocumentManagementID] = &cmp

	c := cmp
	return &c
}

// GetComparison returns the comparison for a management record.
func (s *Store) GetComparison(managementID string) (*model.Comparison, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	cmp, ok := s.comparisons[managementID]
	if !ok {
		return nil, ErrNotFound
	}
	c := *cmp
	return &c, nil
}

// ListComparisons returns every comparison.
func (s *Store) ListComparisons() []model.Comparison {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]model.Comparison, 0, len(s.comparisons))
	for _, c := range s.comparisons {
		result = append(result, *c)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.Before(result[j].CreatedAt)
	})
	return result
}

// SaveVerification upserts a contractor's verification summary.
func (s *Store) SaveVerification(v model.Verification) *model.Verification {
	s.mu.Lock()
	defer s.mu.Unlock()

	if v.ID == "" {
		v.ID = uuid.New().String()
	}
	v.CreatedAt = time.Now()
	s.verifications[v.ContractorID] = &v

	out := v
	return &out
}

// ListVerifications returns every verification summary.
func (s *Store) ListVerifications() []model.Verification {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]model.Verification, 0, len(s.verifications))
	for _, v := range s.verifications {
		result = append(result, *v)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.Before(result[j].CreatedAt)
	})
	return result
}

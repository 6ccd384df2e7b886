package model

import (
	"time"
)

// User represents a platform account. Contractors wrap a User; admin and
// funcionario accounts are plain Users with the matching Role.
type User struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	IDCard    string    `json:"idCard"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	Post      string    `json:"post"`
	Role      string    `json:"role"`
	State     bool      `json:"state"`
	CreatedAt time.Time `json:"createdAt,omitempty"`
}

// User roles
const (
	RoleAdmin       = "admin"
	RoleFuncionario = "funcionario"
	RoleContractor  = "contractor"
)

// Contractor binds a User to an optional Contract. A contractor may exist
// before any contract is assigned to them.
type Contractor struct {
	ID       string    `json:"id"`
	User     User      `json:"user"`
	Contract *Contract `json:"contract,omitempty"`
}

// FilterByState returns the contractors whose user state matches active.
func FilterByState(contractors []Contractor, active bool) []Contractor {
	var result []Contractor
	for _, c := range contractors {
		if c.User.State == active {
			result = append(result, c)
		}
	}
	return result
}

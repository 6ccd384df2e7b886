package model

import (
	"time"
)

// Contract represents a service contract. It can exist unassigned or be
// bound to a contractor.
type Contract struct {
	ID           string    `json:"id"`
	Number       string    `json:"number"`
	Type         string    `json:"type"`
	StartDate    time.Time `json:"startDate"`
	EndDate      time.Time `json:"endDate"`
	PeriodValue  float64   `json:"periodValue"`
	TotalValue   float64   `json:"totalValue"`
	Objective    string    `json:"objective"`
	Extension    bool      `json:"extension"`
	Addition     bool      `json:"addition"`
	Suspension   bool      `json:"suspension"`
	State        bool      `json:"state"`
	ContractorID string    `json:"contractorId,omitempty"`
	CreatedAt    time.Time `json:"createdAt,omitempty"`
	UpdatedAt    time.Time `json:"updatedAt,omitempty"`
}

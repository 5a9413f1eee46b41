package model

import "github.com/google/uuid"

// Employment links exactly one customer to exactly one freelancer. It is
// keyed by freelancer ID in the engine, which enforces at most one active
// employment per freelancer. The record ID exists for log correlation only.
type Employment struct {
	ID         string
	Customer   *Customer
	Freelancer *Freelancer
}

// NewEmployment creates an employment record with a fresh ID.
func NewEmployment(customer *Customer, freelancer *Freelancer) *Employment {
	return &Employment{
		ID:         uuid.NewString(),
		Customer:   customer,
		Freelancer: freelancer,
	}
}

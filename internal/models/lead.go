package models

import "time"

// LeadSourceMortgageCalculator marks leads captured from the calculator page
const LeadSourceMortgageCalculator = "mortgage_calculator"

// Lead represents a contact request captured by the website
type Lead struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	Source    string    `json:"source"`
	Notes     string    `json:"notes"`
	CreatedAt time.Time `json:"created_at"`
}

// LeadRequest is the body accepted by the lead-capture endpoint.
// Inputs is optional; when present and Notes is empty the notes are
// generated from the computed breakdown.
type LeadRequest struct {
	Name   string      `json:"name"`
	Email  string      `json:"email"`
	Phone  string      `json:"phone"`
	Source string      `json:"source"`
	Notes  string      `json:"notes"`
	Inputs *LoanInputs `json:"inputs,omitempty"`
}

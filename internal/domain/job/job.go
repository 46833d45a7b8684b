// Package job defines the canonical job posting shape promised to callers
// and the normalization of raw engine documents into it. Stored documents
// exist in two historical generations; everything downstream of this package
// sees exactly one shape.
package job

import (
	oapitypes "github.com/oapi-codegen/runtime/types"
)

// Place is one entry of a job's location list.
type Place struct {
	TownName  string   `json:"townName"`
	Region    *string  `json:"region"`
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
}

// Salary is the structured salary of a job posting. Minimum is null when the
// source document only carried free text (see Job.SalaryDescription).
type Salary struct {
	Minimum        *float64 `json:"minimum"`
	Maximum        *float64 `json:"maximum"`
	Currency       string   `json:"currency"`
	CurrencySymbol string   `json:"currencySymbol"`
}

// Job is the canonical external result item. Every field is always present
// in serialized output regardless of which document generation produced the
// hit: lists are empty rather than absent, unknown scalars are empty strings,
// unknown dates/bounds are null.
type Job struct {
	ID                string          `json:"id"`
	ExternalID        string          `json:"externalId"`
	Title             string          `json:"title"`
	Description       string          `json:"description"`
	Summary           string          `json:"summary"`
	Organisation      string          `json:"organisation"`
	Location          []Place         `json:"location"`
	WorkingPattern    []string        `json:"workingPattern"`
	WorkLocation      []string        `json:"workLocation"`
	Salary            Salary          `json:"salary"`
	SalaryDescription string          `json:"salaryDescription"`
	Benefits          string          `json:"benefits"`
	Contacts          *bool           `json:"contacts"`
	Grade             string          `json:"grade"`
	ClosingDate       *oapitypes.Date `json:"closingDate"`
	Profession        string          `json:"profession"`
	AssignmentType    string          `json:"assignmentType"`
	Approach          string          `json:"approach"`
}

// Defaults returns a canonical item with every contract field present and
// nothing populated. It is what a document that matches no known generation
// normalizes to.
func Defaults() Job {
	return Job{
		Location:       []Place{},
		WorkingPattern: []string{},
		WorkLocation:   []string{},
	}
}

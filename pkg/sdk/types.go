package jobdex

import (
	oapitypes "github.com/oapi-codegen/runtime/types"
)

// Page is one page of search results together with the request echo.
type Page struct {
	Results        []Job  `json:"results"`
	Total          int64  `json:"total"`
	Page           int    `json:"page"`
	PageSize       int    `json:"pageSize"`
	TotalPages     int64  `json:"totalPages"`
	Query          string `json:"query"`
	AppliedFilters string `json:"appliedFilters"`
}

// Job is a single job posting. Every field is present in every response:
// lists are empty rather than absent, unknown scalars are empty strings,
// unknown dates and bounds are null.
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

// Place is one entry of a job's location list.
type Place struct {
	TownName  string   `json:"townName"`
	Region    *string  `json:"region"`
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
}

// Salary is the structured salary of a posting. Minimum is null when the
// source only carried free text (see Job.SalaryDescription).
type Salary struct {
	Minimum        *float64 `json:"minimum"`
	Maximum        *float64 `json:"maximum"`
	Currency       string   `json:"currency"`
	CurrencySymbol string   `json:"currencySymbol"`
}

// Health is the service health report.
type Health struct {
	Service string            `json:"service"`
	Version string            `json:"version"`
	Status  string            `json:"status"` // "ok", "degraded", "error"
	Checks  map[string]string `json:"checks"` // component name, "ok" or "error"
}

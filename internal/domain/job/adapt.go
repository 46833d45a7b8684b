package job

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	oapitypes "github.com/oapi-codegen/runtime/types"
)

// closingDateLayouts are tried in order. The first generation stored dates as
// loosely formatted text, the second as ISO dates; both appear in live
// indices.
var closingDateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"2 January 2006",
}

// rawDocument is the union of both document generations. Fields whose type
// changed between generations are kept raw and dispatched on their JSON kind.
type rawDocument struct {
	ID                json.RawMessage `json:"id"`
	ExternalID        string          `json:"externalId"`
	Title             string          `json:"title"`
	Description       string          `json:"description"`
	Summary           string          `json:"summary"`
	Organisation      string          `json:"organisation"`
	Location          json.RawMessage `json:"location"`
	WorkingPattern    []string        `json:"workingPattern"`
	WorkLocation      []string        `json:"workLocation"`
	Salary            json.RawMessage `json:"salary"`
	SalaryDescription string          `json:"salaryDescription"`
	Benefits          string          `json:"benefits"`
	Contacts          *bool           `json:"contacts"`
	Grade             string          `json:"grade"`
	ClosingDate       string          `json:"closingDate"`
	Profession        string          `json:"profession"`
	AssignmentType    string          `json:"assignmentType"`
	Approach          string          `json:"approach"`
}

type rawPlace struct {
	TownName  string   `json:"townName"`
	Region    string   `json:"region"`
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
}

type rawSalary struct {
	Minimum        *float64 `json:"minimum"`
	Maximum        *float64 `json:"maximum"`
	Currency       string   `json:"currency"`
	CurrencySymbol string   `json:"currencySymbol"`
}

// FromSource normalizes one raw engine document into the canonical item. It
// is a pure function of the source bytes: the same input always yields the
// same Job, and the input is never mutated.
//
// Normalization is best effort. A document that decodes but whose location or
// salary matches neither generation still yields a Job with those fields at
// their defaults, alongside a non-nil error so callers can count degraded
// hits. A document that does not decode at all yields Defaults() and an
// error. An unparseable closing date is not an error; it normalizes to null.
func FromSource(source json.RawMessage) (Job, error) {
	var raw rawDocument
	if err := json.Unmarshal(source, &raw); err != nil {
		return Defaults(), fmt.Errorf("decode document: %w", err)
	}

	j := Job{
		ID:                decodeID(raw.ID),
		ExternalID:        raw.ExternalID,
		Title:             raw.Title,
		Description:       raw.Description,
		Summary:           raw.Summary,
		Organisation:      raw.Organisation,
		WorkingPattern:    emptyIfNil(raw.WorkingPattern),
		WorkLocation:      emptyIfNil(raw.WorkLocation),
		SalaryDescription: raw.SalaryDescription,
		Benefits:          raw.Benefits,
		Contacts:          raw.Contacts,
		Grade:             raw.Grade,
		ClosingDate:       parseClosingDate(raw.ClosingDate),
		Profession:        raw.Profession,
		AssignmentType:    raw.AssignmentType,
		Approach:          raw.Approach,
	}

	location, locErr := normalizeLocation(raw.Location)
	j.Location = location

	salary, salaryText, salErr := normalizeSalary(raw.Salary)
	j.Salary = salary
	if salaryText != "" {
		j.SalaryDescription = salaryText
	}

	return j, errors.Join(locErr, salErr)
}

// normalizeLocation maps either generation of the location field to the
// canonical place list. The first generation stored a single town or city
// name; the second stores a list of place records.
func normalizeLocation(raw json.RawMessage) ([]Place, error) {
	switch firstByte(raw) {
	case 0, 'n':
		return []Place{}, nil
	case '[':
		var places []rawPlace
		if err := json.Unmarshal(raw, &places); err != nil {
			return []Place{}, fmt.Errorf("decode location list: %w", err)
		}
		out := make([]Place, 0, len(places))
		for _, p := range places {
			out = append(out, p.normalize())
		}
		return out, nil
	case '"':
		var town string
		if err := json.Unmarshal(raw, &town); err != nil {
			return []Place{}, fmt.Errorf("decode location: %w", err)
		}
		town = strings.TrimSpace(town)
		if town == "" {
			return []Place{}, nil
		}
		return []Place{{TownName: town}}, nil
	default:
		return []Place{}, errors.New("location is neither a place list nor a name")
	}
}

func (p rawPlace) normalize() Place {
	out := Place{TownName: strings.TrimSpace(p.TownName)}
	if region := strings.TrimSpace(p.Region); region != "" {
		out.Region = &region
	}
	if p.Latitude != nil && p.Longitude != nil &&
		*p.Latitude >= -90 && *p.Latitude <= 90 &&
		*p.Longitude >= -180 && *p.Longitude <= 180 {
		out.Latitude = p.Latitude
		out.Longitude = p.Longitude
	}
	return out
}

// normalizeSalary maps either generation of the salary field. The second
// generation stores a structured object which passes through; the first
// stored display text, which is preserved as the salary description while the
// structured bounds stay null.
func normalizeSalary(raw json.RawMessage) (Salary, string, error) {
	switch firstByte(raw) {
	case 0, 'n':
		return Salary{}, "", nil
	case '{':
		var s rawSalary
		if err := json.Unmarshal(raw, &s); err != nil {
			return Salary{}, "", fmt.Errorf("decode salary: %w", err)
		}
		return Salary{
			Minimum:        s.Minimum,
			Maximum:        s.Maximum,
			Currency:       s.Currency,
			CurrencySymbol: s.CurrencySymbol,
		}, "", nil
	case '"':
		var text string
		if err := json.Unmarshal(raw, &text); err != nil {
			return Salary{}, "", fmt.Errorf("decode salary: %w", err)
		}
		return Salary{}, strings.TrimSpace(text), nil
	default:
		return Salary{}, "", errors.New("salary is neither an object nor text")
	}
}

func parseClosingDate(raw string) *oapitypes.Date {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	for _, layout := range closingDateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return &oapitypes.Date{Time: t}
		}
	}
	return nil
}

// decodeID tolerates numeric identifiers left over from early ingests.
func decodeID(raw json.RawMessage) string {
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return ""
	}
	switch id := v.(type) {
	case string:
		return id
	case float64:
		return strconv.FormatFloat(id, 'f', -1, 64)
	default:
		return ""
	}
}

// firstByte returns the first non-whitespace byte of raw, or 0 when raw is
// empty or all whitespace.
func firstByte(raw json.RawMessage) byte {
	for _, b := range raw {
		switch b {
		case ' ', '\t', '\n', '\r':
			continue
		}
		return b
	}
	return 0
}

func emptyIfNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

package service

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/locvowork/employee_directory/internal/domain"
)

// AddEmployeeInput carries the raw mutation arguments. String fields are
// trimmed before validation and persisted trimmed.
type AddEmployeeInput struct {
	Name       string
	Position   string
	Department string
	Salary     float64
}

// validate returns the record to persist, or a validation error naming
// every violated field at once so the caller can fix the whole form in
// one round-trip.
func (in AddEmployeeInput) validate() (*domain.Employee, error) {
	name := strings.TrimSpace(in.Name)
	position := strings.TrimSpace(in.Position)
	department := strings.TrimSpace(in.Department)

	fields := make(map[string]string)
	if utf8.RuneCountInString(name) < domain.MinNameLen {
		fields["name"] = fmt.Sprintf("must be at least %d characters", domain.MinNameLen)
	}
	if utf8.RuneCountInString(position) < domain.MinNameLen {
		fields["position"] = fmt.Sprintf("must be at least %d characters", domain.MinNameLen)
	}
	if department == "" {
		fields["department"] = "must not be empty"
	}
	if in.Salary < domain.MinSalary || in.Salary > domain.MaxSalary {
		fields["salary"] = fmt.Sprintf("must be between %d and %d", domain.MinSalary, domain.MaxSalary)
	}
	if len(fields) > 0 {
		return nil, domain.NewValidationError(fields)
	}

	return &domain.Employee{
		Name:       name,
		Position:   position,
		Department: department,
		Salary:     in.Salary,
		Views:      0,
	}, nil
}

// validateEmployeeID rejects malformed identifiers before any store
// read. A well-formed id is a positive decimal int64, the rendering of a
// Datastore numeric key.
func validateEmployeeID(id string) error {
	n, err := strconv.ParseInt(id, 10, 64)
	if err != nil || n <= 0 {
		return domain.NewInvalidInputError(fmt.Sprintf("malformed employee id %q", id))
	}
	return nil
}

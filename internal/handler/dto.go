package handler

import "encoding/json"

// Operation names are the wire contract of the single query endpoint.
const (
	OpGetAllEmployees          = "getAllEmployees"
	OpGetEmployeeDetails       = "getEmployeeDetails"
	OpGetEmployeesByDepartment = "getEmployeesByDepartment"
	OpGetDepartments           = "getDepartments"
	OpSearchEmployees          = "searchEmployees"
	OpAddEmployee              = "addEmployee"
	OpIncrementView            = "incrementView"
)

// queryRequest is the request envelope: one typed operation per call,
// with operation-specific variables decoded lazily.
type queryRequest struct {
	Operation string          `json:"operation"`
	Variables json.RawMessage `json:"variables"`
}

type idVariables struct {
	ID string `json:"id"`
}

type departmentVariables struct {
	Department string `json:"department"`
}

type searchVariables struct {
	Query string `json:"query"`
}

type addEmployeeVariables struct {
	Name       string  `json:"name"`
	Position   string  `json:"position"`
	Department string  `json:"department"`
	Salary     float64 `json:"salary"`
}

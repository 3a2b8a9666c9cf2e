package domain

// Employee represents an employee document in the directory.
//
// ID is assigned by the store on creation and is carried outside the
// document body (Datastore keeps it in the entity key).
type Employee struct {
	ID         string  `json:"id" datastore:"-"`
	Name       string  `json:"name" datastore:"Name"`
	Position   string  `json:"position" datastore:"Position"`
	Department string  `json:"department" datastore:"Department"`
	Salary     float64 `json:"salary" datastore:"Salary"`
	// Views counts detail-page reads. Legacy documents without the
	// property load as 0.
	Views int `json:"views" datastore:"Views,noindex"`
}

// Department represents a department document. Name is unique by
// convention only; nothing enforces it.
type Department struct {
	ID    string `json:"id" datastore:"-"`
	Name  string `json:"name" datastore:"Name"`
	Floor int    `json:"floor" datastore:"Floor"`
}

// Salary bounds enforced on creation. Pre-existing documents outside the
// range are passed through unvalidated on read.
const (
	MinSalary = 1000
	MaxSalary = 1000000
)

// MinNameLen applies to both name and position, counted in runes after
// trimming.
const MinNameLen = 2

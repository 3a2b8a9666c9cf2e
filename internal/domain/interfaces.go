package domain

import "context"

// Store defines data access for the employee and department collections.
// Implementations: Datastore (production) and an in-memory store used by
// tests and emulator-free local runs.
type Store interface {
	// ListEmployees returns all employees in no particular order.
	ListEmployees(ctx context.Context) ([]Employee, error)
	// GetEmployee returns ErrNoSuchEntity when the id has no document.
	GetEmployee(ctx context.Context, id string) (*Employee, error)
	// ListEmployeesByDepartment filters by exact department name.
	ListEmployeesByDepartment(ctx context.Context, department string) ([]Employee, error)
	// SearchEmployees performs a case-insensitive substring match on
	// name and position. Used as the fallback when no Searcher is wired.
	SearchEmployees(ctx context.Context, query string) ([]Employee, error)
	// CreateEmployee assigns a new identity and sets e.ID on success.
	CreateEmployee(ctx context.Context, e *Employee) error
	// IncrementEmployeeViews performs an atomic +1 on the views field
	// and returns the post-increment document. The increment must be a
	// relative update at the store, never a service-side
	// read-modify-write, so concurrent calls lose no updates.
	IncrementEmployeeViews(ctx context.Context, id string) (*Employee, error)

	ListDepartments(ctx context.Context) ([]Department, error)
	CreateDepartment(ctx context.Context, d *Department) error

	// Counts back the seed-once check.
	CountEmployees(ctx context.Context) (int, error)
	CountDepartments(ctx context.Context) (int, error)

	Close() error
}

// Searcher is the optional full-text search backend. When nil, the
// service falls back to Store.SearchEmployees.
type Searcher interface {
	SearchEmployees(ctx context.Context, query string) ([]Employee, error)
	// IndexEmployee is best-effort: the service logs and swallows
	// indexing failures the same way it treats cache failures.
	IndexEmployee(ctx context.Context, e Employee) error
}

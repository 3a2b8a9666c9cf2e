package database

import (
	"context"
	"strconv"
	"sync"

	"github.com/locvowork/employee_directory/internal/domain"
)

// MemStore is a mutex-guarded in-memory domain.Store. It backs tests and
// local runs without a Datastore project, with the same observable
// semantics as DatastoreStore: assigned numeric identities and an
// increment that serializes under the lock.
type MemStore struct {
	mu          sync.Mutex
	employees   map[int64]domain.Employee
	departments map[int64]domain.Department
	nextID      int64
}

var _ domain.Store = (*MemStore)(nil)

func NewMemStore() *MemStore {
	return &MemStore{
		employees:   make(map[int64]domain.Employee),
		departments: make(map[int64]domain.Department),
		nextID:      1,
	}
}

func (s *MemStore) ListEmployees(ctx context.Context) ([]domain.Employee, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.Employee, 0, len(s.employees))
	for _, e := range s.employees {
		out = append(out, e)
	}
	return out, nil
}

func (s *MemStore) GetEmployee(ctx context.Context, id string) (*domain.Employee, error) {
	n, err := strconv.ParseInt(id, 10, 64)
	if err != nil {
		return nil, domain.ErrNoSuchEntity
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.employees[n]
	if !ok {
		return nil, domain.ErrNoSuchEntity
	}
	return &e, nil
}

func (s *MemStore) ListEmployeesByDepartment(ctx context.Context, department string) ([]domain.Employee, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []domain.Employee
	for _, e := range s.employees {
		if e.Department == department {
			out = append(out, e)
		}
	}
	return out, nil
}

func (s *MemStore) SearchEmployees(ctx context.Context, query string) ([]domain.Employee, error) {
	all, err := s.ListEmployees(ctx)
	if err != nil {
		return nil, err
	}
	return filterEmployees(all, query), nil
}

func (s *MemStore) CreateEmployee(ctx context.Context, e *domain.Employee) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.nextID
	s.nextID++
	e.ID = strconv.FormatInt(id, 10)
	s.employees[id] = *e
	return nil
}

func (s *MemStore) IncrementEmployeeViews(ctx context.Context, id string) (*domain.Employee, error) {
	n, err := strconv.ParseInt(id, 10, 64)
	if err != nil {
		return nil, domain.ErrNoSuchEntity
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.employees[n]
	if !ok {
		return nil, domain.ErrNoSuchEntity
	}
	e.Views++
	s.employees[n] = e
	return &e, nil
}

func (s *MemStore) ListDepartments(ctx context.Context) ([]domain.Department, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.Department, 0, len(s.departments))
	for _, d := range s.departments {
		out = append(out, d)
	}
	return out, nil
}

func (s *MemStore) CreateDepartment(ctx context.Context, d *domain.Department) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.nextID
	s.nextID++
	d.ID = strconv.FormatInt(id, 10)
	s.departments[id] = *d
	return nil
}

func (s *MemStore) CountEmployees(ctx context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.employees), nil
}

func (s *MemStore) CountDepartments(ctx context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.departments), nil
}

func (s *MemStore) Close() error {
	return nil
}

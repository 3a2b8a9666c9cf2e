package database

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"cloud.google.com/go/datastore"

	"github.com/locvowork/employee_directory/internal/domain"
)

const (
	kindEmployee   = "Employee"
	kindDepartment = "Department"
)

// DatastoreStore implements domain.Store on Google Cloud Datastore.
// The client is created once at startup and shared for the process
// lifetime; Datastore manages its own connection pooling underneath.
type DatastoreStore struct {
	client *datastore.Client
}

var _ domain.Store = (*DatastoreStore)(nil)

func NewDatastoreStore(ctx context.Context, projectID string) (*DatastoreStore, error) {
	client, err := datastore.NewClient(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to create datastore client: %w", err)
	}
	return &DatastoreStore{client: client}, nil
}

func (s *DatastoreStore) ListEmployees(ctx context.Context) ([]domain.Employee, error) {
	var employees []domain.Employee
	keys, err := s.client.GetAll(ctx, datastore.NewQuery(kindEmployee), &employees)
	if err != nil {
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}
	attachEmployeeIDs(employees, keys)
	return employees, nil
}

func (s *DatastoreStore) GetEmployee(ctx context.Context, id string) (*domain.Employee, error) {
	key, err := employeeKey(id)
	if err != nil {
		return nil, domain.ErrNoSuchEntity
	}

	var e domain.Employee
	if err := s.client.Get(ctx, key, &e); err != nil {
		if errors.Is(err, datastore.ErrNoSuchEntity) {
			return nil, domain.ErrNoSuchEntity
		}
		return nil, fmt.Errorf("failed to get employee %s: %w", id, err)
	}
	e.ID = id
	return &e, nil
}

func (s *DatastoreStore) ListEmployeesByDepartment(ctx context.Context, department string) ([]domain.Employee, error) {
	var employees []domain.Employee
	q := datastore.NewQuery(kindEmployee).Filter("Department =", department)
	keys, err := s.client.GetAll(ctx, q, &employees)
	if err != nil {
		return nil, fmt.Errorf("failed to list employees of %s: %w", department, err)
	}
	attachEmployeeIDs(employees, keys)
	return employees, nil
}

// SearchEmployees is the fallback path when Elasticsearch is not wired:
// Datastore has no substring operator, so the kind is scanned and
// filtered in memory. Directory-sized data keeps this cheap.
func (s *DatastoreStore) SearchEmployees(ctx context.Context, query string) ([]domain.Employee, error) {
	all, err := s.ListEmployees(ctx)
	if err != nil {
		return nil, err
	}
	return filterEmployees(all, query), nil
}

func (s *DatastoreStore) CreateEmployee(ctx context.Context, e *domain.Employee) error {
	key, err := s.client.Put(ctx, datastore.IncompleteKey(kindEmployee, nil), e)
	if err != nil {
		return fmt.Errorf("failed to create employee: %w", err)
	}
	e.ID = strconv.FormatInt(key.ID, 10)
	return nil
}

// IncrementEmployeeViews runs the +1 inside a transaction so two
// concurrent increments serialize at the store and neither update is
// lost. The counter is never computed outside the transaction.
func (s *DatastoreStore) IncrementEmployeeViews(ctx context.Context, id string) (*domain.Employee, error) {
	key, err := employeeKey(id)
	if err != nil {
		return nil, domain.ErrNoSuchEntity
	}

	var e domain.Employee
	_, err = s.client.RunInTransaction(ctx, func(tx *datastore.Transaction) error {
		if err := tx.Get(key, &e); err != nil {
			return err
		}
		e.Views++
		_, err := tx.Put(key, &e)
		return err
	})
	if err != nil {
		if errors.Is(err, datastore.ErrNoSuchEntity) {
			return nil, domain.ErrNoSuchEntity
		}
		return nil, fmt.Errorf("failed to increment views for employee %s: %w", id, err)
	}
	e.ID = id
	return &e, nil
}

func (s *DatastoreStore) ListDepartments(ctx context.Context) ([]domain.Department, error) {
	var departments []domain.Department
	keys, err := s.client.GetAll(ctx, datastore.NewQuery(kindDepartment), &departments)
	if err != nil {
		return nil, fmt.Errorf("failed to list departments: %w", err)
	}
	for i := range departments {
		departments[i].ID = strconv.FormatInt(keys[i].ID, 10)
	}
	return departments, nil
}

func (s *DatastoreStore) CreateDepartment(ctx context.Context, d *domain.Department) error {
	key, err := s.client.Put(ctx, datastore.IncompleteKey(kindDepartment, nil), d)
	if err != nil {
		return fmt.Errorf("failed to create department: %w", err)
	}
	d.ID = strconv.FormatInt(key.ID, 10)
	return nil
}

func (s *DatastoreStore) CountEmployees(ctx context.Context) (int, error) {
	return s.client.Count(ctx, datastore.NewQuery(kindEmployee).KeysOnly())
}

func (s *DatastoreStore) CountDepartments(ctx context.Context) (int, error) {
	return s.client.Count(ctx, datastore.NewQuery(kindDepartment).KeysOnly())
}

func (s *DatastoreStore) Close() error {
	return s.client.Close()
}

func employeeKey(id string) (*datastore.Key, error) {
	n, err := strconv.ParseInt(id, 10, 64)
	if err != nil || n <= 0 {
		return nil, fmt.Errorf("malformed employee id %q", id)
	}
	return datastore.IDKey(kindEmployee, n, nil), nil
}

func attachEmployeeIDs(employees []domain.Employee, keys []*datastore.Key) {
	for i := range employees {
		employees[i].ID = strconv.FormatInt(keys[i].ID, 10)
	}
}

func filterEmployees(employees []domain.Employee, query string) []domain.Employee {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return employees
	}
	var matched []domain.Employee
	for _, e := range employees {
		if strings.Contains(strings.ToLower(e.Name), q) || strings.Contains(strings.ToLower(e.Position), q) {
			matched = append(matched, e)
		}
	}
	return matched
}

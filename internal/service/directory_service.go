package service

import (
	"context"
	"encoding/json"
	"errors"
	"sort"
	"time"

	"github.com/locvowork/employee_directory/internal/cache"
	"github.com/locvowork/employee_directory/internal/domain"
	"github.com/locvowork/employee_directory/internal/logger"
)

// Default TTLs. Department data changes far less often than employee
// data, so it stays cached longer.
const (
	DefaultEmployeesTTL   = 5 * time.Minute
	DefaultEmployeeTTL    = 10 * time.Minute
	DefaultDepartmentsTTL = 30 * time.Minute
)

type TTLConfig struct {
	Employees   time.Duration
	Employee    time.Duration
	Departments time.Duration
}

func (c TTLConfig) withDefaults() TTLConfig {
	if c.Employees <= 0 {
		c.Employees = DefaultEmployeesTTL
	}
	if c.Employee <= 0 {
		c.Employee = DefaultEmployeeTTL
	}
	if c.Departments <= 0 {
		c.Departments = DefaultDepartmentsTTL
	}
	return c
}

// DirectoryService is the single query/mutation entry point. Reads are
// cache-aside against the result cache; every mutation invalidates
// exactly the keys its write could have staled. Infrastructure errors
// never escape untranslated: callers only ever see *domain.Error.
type DirectoryService struct {
	store    domain.Store
	cache    cache.Cache
	searcher domain.Searcher
	ttl      TTLConfig
}

// NewDirectoryService wires the injected dependencies. searcher may be
// nil, in which case search falls back to store-side filtering.
func NewDirectoryService(store domain.Store, c cache.Cache, searcher domain.Searcher, ttl TTLConfig) *DirectoryService {
	return &DirectoryService{
		store:    store,
		cache:    c,
		searcher: searcher,
		ttl:      ttl.withDefaults(),
	}
}

// GetAllEmployees returns every employee ordered by name ascending.
func (s *DirectoryService) GetAllEmployees(ctx context.Context) ([]domain.Employee, error) {
	var employees []domain.Employee
	if s.cacheGet(ctx, cache.KeyEmployeesAll, &employees) {
		return employees, nil
	}

	employees, err := s.store.ListEmployees(ctx)
	if err != nil {
		return nil, s.internalError(ctx, "Failed to list employees", err)
	}
	sortEmployeesByName(employees)

	s.cacheSet(ctx, cache.KeyEmployeesAll, employees, s.ttl.Employees)
	return employees, nil
}

// GetEmployeeDetails returns one employee by id. A malformed id fails
// invalid_input before the store is consulted; a well-formed id with no
// document fails not_found.
func (s *DirectoryService) GetEmployeeDetails(ctx context.Context, id string) (*domain.Employee, error) {
	if err := validateEmployeeID(id); err != nil {
		return nil, err
	}

	key := cache.KeyEmployee(id)
	var cached domain.Employee
	if s.cacheGet(ctx, key, &cached) {
		return &cached, nil
	}

	e, err := s.store.GetEmployee(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNoSuchEntity) {
			return nil, domain.NewNotFoundError("employee")
		}
		return nil, s.internalError(ctx, "Failed to get employee", err)
	}

	s.cacheSet(ctx, key, e, s.ttl.Employee)
	return e, nil
}

// GetEmployeesByDepartment is an uncached pass-through read filtered by
// exact department-name match.
func (s *DirectoryService) GetEmployeesByDepartment(ctx context.Context, department string) ([]domain.Employee, error) {
	employees, err := s.store.ListEmployeesByDepartment(ctx, department)
	if err != nil {
		return nil, s.internalError(ctx, "Failed to list employees by department", err)
	}
	sortEmployeesByName(employees)
	return employees, nil
}

// GetDepartments returns all departments ordered by name ascending.
func (s *DirectoryService) GetDepartments(ctx context.Context) ([]domain.Department, error) {
	var departments []domain.Department
	if s.cacheGet(ctx, cache.KeyDepartmentsAll, &departments) {
		return departments, nil
	}

	departments, err := s.store.ListDepartments(ctx)
	if err != nil {
		return nil, s.internalError(ctx, "Failed to list departments", err)
	}
	sort.Slice(departments, func(i, j int) bool { return departments[i].Name < departments[j].Name })

	s.cacheSet(ctx, cache.KeyDepartmentsAll, departments, s.ttl.Departments)
	return departments, nil
}

// SearchEmployees matches the query against name and position. With a
// search backend wired it goes full-text; a backend failure degrades to
// the store-side filter instead of failing the read.
func (s *DirectoryService) SearchEmployees(ctx context.Context, query string) ([]domain.Employee, error) {
	if s.searcher != nil {
		employees, err := s.searcher.SearchEmployees(ctx, query)
		if err == nil {
			sortEmployeesByName(employees)
			return employees, nil
		}
		logger.WarnLog(ctx, "Search backend failed, falling back to store filter: %v", err)
	}

	employees, err := s.store.SearchEmployees(ctx, query)
	if err != nil {
		return nil, s.internalError(ctx, "Failed to search employees", err)
	}
	sortEmployeesByName(employees)
	return employees, nil
}

// AddEmployee validates, trims, and persists a new employee with
// views=0, then invalidates the listing keys its insert staled.
func (s *DirectoryService) AddEmployee(ctx context.Context, input AddEmployeeInput) (*domain.Employee, error) {
	e, err := input.validate()
	if err != nil {
		return nil, err
	}

	if err := s.store.CreateEmployee(ctx, e); err != nil {
		return nil, s.internalError(ctx, "Failed to create employee", err)
	}

	if s.searcher != nil {
		if err := s.searcher.IndexEmployee(ctx, *e); err != nil {
			logger.WarnLog(ctx, "Failed to index employee %s: %v", e.ID, err)
		}
	}

	s.cacheInvalidate(ctx, cache.KeyEmployeesAll, cache.KeyEmployeesByDepartment(e.Department))
	return e, nil
}

// IncrementView bumps the employee's views counter by one and returns
// the post-increment record. Existence is checked by a read first, so a
// missing record is reported as not_found rather than a silent no-op.
// The increment itself is atomic at the store.
func (s *DirectoryService) IncrementView(ctx context.Context, id string) (*domain.Employee, error) {
	if err := validateEmployeeID(id); err != nil {
		return nil, err
	}

	if _, err := s.store.GetEmployee(ctx, id); err != nil {
		if errors.Is(err, domain.ErrNoSuchEntity) {
			return nil, domain.NewNotFoundError("employee")
		}
		return nil, s.internalError(ctx, "Failed to check employee before increment", err)
	}

	e, err := s.store.IncrementEmployeeViews(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNoSuchEntity) {
			// Removed out-of-band between the existence read and the
			// increment.
			return nil, domain.NewNotFoundError("employee")
		}
		return nil, s.internalError(ctx, "Failed to increment views", err)
	}

	s.cacheInvalidate(ctx,
		cache.KeyEmployee(id),
		cache.KeyEmployeesAll,
		cache.KeyEmployeesByDepartment(e.Department),
	)
	return e, nil
}

// cacheGet treats every failure as a miss. A poisoned entry is dropped
// so the next write can repopulate it.
func (s *DirectoryService) cacheGet(ctx context.Context, key string, dst interface{}) bool {
	b, ok, err := s.cache.Get(ctx, key)
	if err != nil {
		logger.WarnLog(ctx, "Cache get failed for %s, treating as miss: %v", key, err)
		return false
	}
	if !ok {
		return false
	}
	if err := json.Unmarshal(b, dst); err != nil {
		logger.WarnLog(ctx, "Cache entry %s is corrupt, dropping: %v", key, err)
		if err := s.cache.Delete(ctx, key); err != nil {
			logger.WarnLog(ctx, "Cache delete failed for %s: %v", key, err)
		}
		return false
	}
	return true
}

func (s *DirectoryService) cacheSet(ctx context.Context, key string, v interface{}, ttl time.Duration) {
	b, err := json.Marshal(v)
	if err != nil {
		logger.WarnLog(ctx, "Failed to serialize cache entry %s: %v", key, err)
		return
	}
	if err := s.cache.Set(ctx, key, b, ttl); err != nil {
		logger.WarnLog(ctx, "Cache set failed for %s: %v", key, err)
	}
}

func (s *DirectoryService) cacheInvalidate(ctx context.Context, keys ...string) {
	if err := s.cache.DeleteMany(ctx, keys...); err != nil {
		logger.WarnLog(ctx, "Cache invalidation failed for %v: %v", keys, err)
	}
}

// internalError logs the real cause and returns the opaque taxonomy
// error in its place.
func (s *DirectoryService) internalError(ctx context.Context, msg string, err error) error {
	logger.ErrorLog(ctx, msg, err)
	return domain.NewInternalError()
}

func sortEmployeesByName(employees []domain.Employee) {
	sort.Slice(employees, func(i, j int) bool { return employees[i].Name < employees[j].Name })
}

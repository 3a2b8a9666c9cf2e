package database

import (
	"context"
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v2"

	"github.com/locvowork/employee_directory/internal/domain"
	"github.com/locvowork/employee_directory/internal/logger"
)

//go:embed seed_data.yaml
var seedDataYAML []byte

type seedFile struct {
	Departments []struct {
		Name  string `yaml:"name"`
		Floor int    `yaml:"floor"`
	} `yaml:"departments"`
	Employees []struct {
		Name       string  `yaml:"name"`
		Position   string  `yaml:"position"`
		Department string  `yaml:"department"`
		Salary     float64 `yaml:"salary"`
	} `yaml:"employees"`
}

type DataSeeder struct {
	store domain.Store
}

func NewDataSeeder(store domain.Store) *DataSeeder {
	return &DataSeeder{store: store}
}

// SeedIfEmpty inserts the fixture departments and employees exactly
// once: only when BOTH collections are empty. Any existing document in
// either collection means a previous run already seeded (or real data
// exists) and nothing is written. Returns whether seeding happened.
func (ds *DataSeeder) SeedIfEmpty(ctx context.Context) (bool, error) {
	numEmployees, err := ds.store.CountEmployees(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to count employees: %w", err)
	}
	numDepartments, err := ds.store.CountDepartments(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to count departments: %w", err)
	}
	if numEmployees > 0 || numDepartments > 0 {
		logger.InfoLog(ctx, "Store already has %d employees and %d departments, skipping seed", numEmployees, numDepartments)
		return false, nil
	}

	var seed seedFile
	if err := yaml.Unmarshal(seedDataYAML, &seed); err != nil {
		return false, fmt.Errorf("failed to parse seed data: %w", err)
	}

	for _, d := range seed.Departments {
		dept := domain.Department{Name: d.Name, Floor: d.Floor}
		if err := ds.store.CreateDepartment(ctx, &dept); err != nil {
			return false, fmt.Errorf("failed to seed department %s: %w", d.Name, err)
		}
	}
	for _, e := range seed.Employees {
		emp := domain.Employee{
			Name:       e.Name,
			Position:   e.Position,
			Department: e.Department,
			Salary:     e.Salary,
			Views:      0,
		}
		if err := ds.store.CreateEmployee(ctx, &emp); err != nil {
			return false, fmt.Errorf("failed to seed employee %s: %w", e.Name, err)
		}
	}

	logger.InfoLog(ctx, "Seeded %d departments and %d employees", len(seed.Departments), len(seed.Employees))
	return true, nil
}

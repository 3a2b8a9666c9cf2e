// Package search provides the optional Elasticsearch full-text backend
// for directory search. The service degrades to store-side filtering
// when it is unconfigured or failing.
package search

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/olivere/elastic/v7"

	"github.com/locvowork/employee_directory/internal/domain"
)

const employeeIndex = "employees"

// ElasticSearcher implements domain.Searcher on Elasticsearch 7.x.
type ElasticSearcher struct {
	client *elastic.Client
}

var _ domain.Searcher = (*ElasticSearcher)(nil)

func NewElasticSearcher(url string) (*ElasticSearcher, error) {
	client, err := elastic.NewClient(
		elastic.SetURL(url),
		elastic.SetSniff(false), // Essential when using Docker or cloud
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create Elasticsearch client: %w", err)
	}
	return &ElasticSearcher{client: client}, nil
}

// IndexEmployee indexes a document under the employee's store identity.
// Refresh is immediate so a search right after addEmployee sees it.
func (es *ElasticSearcher) IndexEmployee(ctx context.Context, e domain.Employee) error {
	_, err := es.client.Index().
		Index(employeeIndex).
		Id(e.ID).
		BodyJson(e).
		Refresh("true").
		Do(ctx)
	if err != nil {
		return fmt.Errorf("failed to index employee %s: %w", e.ID, err)
	}
	return nil
}

// SearchEmployees performs a full-text match on name or position.
func (es *ElasticSearcher) SearchEmployees(ctx context.Context, query string) ([]domain.Employee, error) {
	q := elastic.NewMultiMatchQuery(query, "name", "position")

	searchResult, err := es.client.Search().
		Index(employeeIndex).
		Query(q).
		Size(100).
		Do(ctx)
	if err != nil {
		return nil, fmt.Errorf("search failed: %w", err)
	}

	var employees []domain.Employee
	for _, hit := range searchResult.Hits.Hits {
		var e domain.Employee
		if err := json.Unmarshal(hit.Source, &e); err != nil {
			continue
		}
		if e.ID == "" {
			e.ID = hit.Id
		}
		employees = append(employees, e)
	}
	return employees, nil
}

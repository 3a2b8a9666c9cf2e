// Package client is the Go client for the employee directory endpoint.
// It keeps a normalized cache: entities stored once by identity, query
// results stored as lists of references, so an entity updated by one
// operation is seen by every cached query referencing it. Repeat reads
// are served from memory; a miss costs one round-trip.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"
)

type Employee struct {
	ID         string  `json:"id"`
	Name       string  `json:"name"`
	Position   string  `json:"position"`
	Department string  `json:"department"`
	Salary     float64 `json:"salary"`
	Views      int     `json:"views"`
}

type Department struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Floor int    `json:"floor"`
}

type AddEmployeeInput struct {
	Name       string  `json:"name"`
	Position   string  `json:"position"`
	Department string  `json:"department"`
	Salary     float64 `json:"salary"`
}

// Error is the server's structured failure: a machine code, a message,
// and field-level detail for validation failures.
type Error struct {
	Code    string            `json:"code"`
	Message string            `json:"message"`
	Fields  map[string]string `json:"fields,omitempty"`
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// IsNotFound reports whether err is the structured not_found code. The
// check never matches on message text.
func IsNotFound(err error) bool {
	e, ok := err.(*Error)
	return ok && e.Code == "not_found"
}

const (
	kindEmployee   = "employee"
	kindDepartment = "department"
)

type entityRef struct {
	kind string
	id   string
}

type Client struct {
	endpoint string
	httpc    *http.Client

	mu          sync.Mutex
	employees   map[string]Employee
	departments map[string]Department
	// queries maps a query identity (operation plus arguments) to the
	// entity references its last result contained.
	queries map[string][]entityRef
}

type Option func(*Client)

func WithHTTPClient(httpc *http.Client) Option {
	return func(c *Client) { c.httpc = httpc }
}

// New creates a client for the given endpoint URL (the full path of the
// query endpoint, e.g. http://localhost:8080/api/query).
func New(endpoint string, opts ...Option) *Client {
	c := &Client{
		endpoint:    endpoint,
		httpc:       &http.Client{Timeout: 30 * time.Second},
		employees:   make(map[string]Employee),
		departments: make(map[string]Department),
		queries:     make(map[string][]entityRef),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Query identities: operation name plus arguments.
func allEmployeesKey() string { return "getAllEmployees" }

func employeeDetailsKey(id string) string { return "getEmployeeDetails(id=" + id + ")" }

func byDepartmentKey(d string) string { return "getEmployeesByDepartment(department=" + d + ")" }

func departmentsKey() string { return "getDepartments" }

func searchKey(q string) string { return "searchEmployees(query=" + q + ")" }

// GetAllEmployees serves from the cached query when present, otherwise
// fetches and normalizes the listing.
func (c *Client) GetAllEmployees(ctx context.Context) ([]Employee, error) {
	if cached, ok := c.cachedEmployeeList(allEmployeesKey()); ok {
		return cached, nil
	}
	return c.fetchEmployeeList(ctx, allEmployeesKey(), "getAllEmployees", nil)
}

// GetEmployeeDetails serves the entity straight from the normalized
// cache when any earlier query brought it in. A structured not_found
// response is taken as an implicit deletion signal and evicts the
// entity everywhere.
func (c *Client) GetEmployeeDetails(ctx context.Context, id string) (*Employee, error) {
	c.mu.Lock()
	if e, ok := c.employees[id]; ok {
		c.mu.Unlock()
		return &e, nil
	}
	c.mu.Unlock()

	var e Employee
	if err := c.do(ctx, "getEmployeeDetails", map[string]string{"id": id}, &e); err != nil {
		if IsNotFound(err) {
			c.evictEmployee(id)
		}
		return nil, err
	}

	c.mu.Lock()
	c.employees[e.ID] = e
	c.queries[employeeDetailsKey(id)] = []entityRef{{kindEmployee, e.ID}}
	c.mu.Unlock()
	return &e, nil
}

func (c *Client) GetEmployeesByDepartment(ctx context.Context, department string) ([]Employee, error) {
	key := byDepartmentKey(department)
	if cached, ok := c.cachedEmployeeList(key); ok {
		return cached, nil
	}
	return c.fetchEmployeeList(ctx, key, "getEmployeesByDepartment", map[string]string{"department": department})
}

func (c *Client) SearchEmployees(ctx context.Context, query string) ([]Employee, error) {
	key := searchKey(query)
	if cached, ok := c.cachedEmployeeList(key); ok {
		return cached, nil
	}
	return c.fetchEmployeeList(ctx, key, "searchEmployees", map[string]string{"query": query})
}

func (c *Client) GetDepartments(ctx context.Context) ([]Department, error) {
	key := departmentsKey()

	c.mu.Lock()
	if refs, ok := c.queries[key]; ok {
		out := make([]Department, 0, len(refs))
		for _, ref := range refs {
			if d, ok := c.departments[ref.id]; ok {
				out = append(out, d)
			}
		}
		c.mu.Unlock()
		return out, nil
	}
	c.mu.Unlock()

	var departments []Department
	if err := c.do(ctx, "getDepartments", nil, &departments); err != nil {
		return nil, err
	}

	c.mu.Lock()
	refs := make([]entityRef, 0, len(departments))
	for _, d := range departments {
		c.departments[d.ID] = d
		refs = append(refs, entityRef{kindDepartment, d.ID})
	}
	c.queries[key] = refs
	c.mu.Unlock()
	return departments, nil
}

// AddEmployee creates the record, then re-fetches the cached listings
// the insert could have changed instead of patching them in place.
func (c *Client) AddEmployee(ctx context.Context, input AddEmployeeInput) (*Employee, error) {
	var e Employee
	if err := c.do(ctx, "addEmployee", input, &e); err != nil {
		return nil, err
	}

	c.mu.Lock()
	c.employees[e.ID] = e
	staleLists := c.dropQueriesLocked(allEmployeesKey(), byDepartmentKey(e.Department))
	c.mu.Unlock()

	c.refetchEmployeeLists(ctx, staleLists, e.Department)
	return &e, nil
}

// IncrementView bumps the views counter. The returned entity replaces
// the normalized copy, so every cached query referencing it observes
// the new count without a refetch.
func (c *Client) IncrementView(ctx context.Context, id string) (*Employee, error) {
	var e Employee
	if err := c.do(ctx, "incrementView", map[string]string{"id": id}, &e); err != nil {
		if IsNotFound(err) {
			c.evictEmployee(id)
		}
		return nil, err
	}

	c.mu.Lock()
	c.employees[e.ID] = e
	c.mu.Unlock()
	return &e, nil
}

// Invalidate drops the whole client cache; the next read of each query
// goes back to the network.
func (c *Client) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.employees = make(map[string]Employee)
	c.departments = make(map[string]Department)
	c.queries = make(map[string][]entityRef)
}

func (c *Client) cachedEmployeeList(key string) ([]Employee, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	refs, ok := c.queries[key]
	if !ok {
		return nil, false
	}
	out := make([]Employee, 0, len(refs))
	for _, ref := range refs {
		if e, ok := c.employees[ref.id]; ok {
			out = append(out, e)
		}
	}
	return out, true
}

func (c *Client) fetchEmployeeList(ctx context.Context, key, operation string, variables interface{}) ([]Employee, error) {
	var employees []Employee
	if err := c.do(ctx, operation, variables, &employees); err != nil {
		return nil, err
	}

	c.mu.Lock()
	refs := make([]entityRef, 0, len(employees))
	for _, e := range employees {
		c.employees[e.ID] = e
		refs = append(refs, entityRef{kindEmployee, e.ID})
	}
	c.queries[key] = refs
	c.mu.Unlock()
	return employees, nil
}

// dropQueriesLocked removes the given query entries and returns the keys
// that were actually cached. Callers hold c.mu.
func (c *Client) dropQueriesLocked(keys ...string) []string {
	var dropped []string
	for _, key := range keys {
		if _, ok := c.queries[key]; ok {
			delete(c.queries, key)
			dropped = append(dropped, key)
		}
	}
	return dropped
}

// refetchEmployeeLists re-runs the listings that were cached before the
// mutation dropped them. A refetch failure is not a mutation failure:
// the entry stays evicted and the next read fetches it.
func (c *Client) refetchEmployeeLists(ctx context.Context, staleKeys []string, department string) {
	for _, key := range staleKeys {
		var err error
		switch key {
		case allEmployeesKey():
			_, err = c.fetchEmployeeList(ctx, key, "getAllEmployees", nil)
		case byDepartmentKey(department):
			_, err = c.fetchEmployeeList(ctx, key, "getEmployeesByDepartment", map[string]string{"department": department})
		}
		_ = err
	}
}

func (c *Client) evictEmployee(id string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.employees, id)
	delete(c.queries, employeeDetailsKey(id))
	for key, refs := range c.queries {
		kept := refs[:0]
		for _, ref := range refs {
			if ref.kind == kindEmployee && ref.id == id {
				continue
			}
			kept = append(kept, ref)
		}
		c.queries[key] = kept
	}
}

type requestEnvelope struct {
	Operation string      `json:"operation"`
	Variables interface{} `json:"variables,omitempty"`
}

type responseEnvelope struct {
	Data  json.RawMessage `json:"data"`
	Error *Error          `json:"error"`
}

func (c *Client) do(ctx context.Context, operation string, variables, out interface{}) error {
	body, err := json.Marshal(requestEnvelope{Operation: operation, Variables: variables})
	if err != nil {
		return fmt.Errorf("failed to encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpc.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	var envelope responseEnvelope
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return fmt.Errorf("failed to decode response (status %d): %w", resp.StatusCode, err)
	}
	if envelope.Error != nil {
		return envelope.Error
	}
	if resp.StatusCode != http.StatusOK {
		return &Error{Code: "internal", Message: fmt.Sprintf("unexpected status %d", resp.StatusCode)}
	}
	if out != nil {
		if err := json.Unmarshal(envelope.Data, out); err != nil {
			return fmt.Errorf("failed to decode data: %w", err)
		}
	}
	return nil
}

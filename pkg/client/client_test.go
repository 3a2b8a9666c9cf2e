package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/locvowork/employee_directory/internal/cache"
	"github.com/locvowork/employee_directory/internal/database"
	"github.com/locvowork/employee_directory/internal/domain"
	"github.com/locvowork/employee_directory/internal/handler"
	"github.com/locvowork/employee_directory/internal/service"
)

// newDirectoryServer runs the real stack over the in-memory store and
// counts the requests that reach it.
func newDirectoryServer(t *testing.T) (*Client, *database.MemStore, *int32) {
	t.Helper()

	store := database.NewMemStore()
	svc := service.NewDirectoryService(store, cache.NewMemoryCache(64), nil, service.TTLConfig{})
	h := handler.NewDirectoryHandler(svc)

	e := echo.New()
	e.POST("/api/query", h.QueryHandler)

	var hits int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		e.ServeHTTP(w, r)
	}))
	t.Cleanup(srv.Close)

	return New(srv.URL + "/api/query"), store, &hits
}

func seedEmployee(t *testing.T, store *database.MemStore, name, position, department string, salary float64) domain.Employee {
	t.Helper()
	e := domain.Employee{Name: name, Position: position, Department: department, Salary: salary}
	require.NoError(t, store.CreateEmployee(context.Background(), &e))
	return e
}

func TestClientServesRepeatReadsFromMemory(t *testing.T) {
	c, store, hits := newDirectoryServer(t)
	seedEmployee(t, store, "Jane Cooper", "Engineer", "Engineering", 95000)

	first, err := c.GetAllEmployees(context.Background())
	require.NoError(t, err)
	require.Len(t, first, 1)
	assert.Equal(t, int32(1), atomic.LoadInt32(hits))

	second, err := c.GetAllEmployees(context.Background())
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Equal(t, int32(1), atomic.LoadInt32(hits), "repeat read must not hit the network")
}

func TestClientNormalizesAcrossQueries(t *testing.T) {
	c, store, hits := newDirectoryServer(t)
	e := seedEmployee(t, store, "Jane Cooper", "Engineer", "Engineering", 95000)

	_, err := c.GetAllEmployees(context.Background())
	require.NoError(t, err)

	// The detail read resolves against the normalized entity from the
	// listing; no second round-trip.
	got, err := c.GetEmployeeDetails(context.Background(), e.ID)
	require.NoError(t, err)
	assert.Equal(t, "Jane Cooper", got.Name)
	assert.Equal(t, int32(1), atomic.LoadInt32(hits))
}

func TestClientAddEmployeeRefetchesListing(t *testing.T) {
	c, store, _ := newDirectoryServer(t)
	seedEmployee(t, store, "Amy Brown", "Designer", "Marketing", 70000)
	ctx := context.Background()

	before, err := c.GetAllEmployees(ctx)
	require.NoError(t, err)
	require.Len(t, before, 1)

	created, err := c.AddEmployee(ctx, AddEmployeeInput{
		Name: "Jane Doe", Position: "Engineer", Department: "Engineering", Salary: 90000,
	})
	require.NoError(t, err)
	require.NotEmpty(t, created.ID)
	assert.Equal(t, 0, created.Views)

	// The cached listing was refetched, not patched: it now includes
	// the created record without another explicit network read.
	after, err := c.GetAllEmployees(ctx)
	require.NoError(t, err)
	require.Len(t, after, 2)

	var found bool
	for _, e := range after {
		if e.ID == created.ID {
			found = true
		}
	}
	assert.True(t, found)
}

func TestClientIncrementViewUpdatesEveryConsumer(t *testing.T) {
	c, store, hits := newDirectoryServer(t)
	e := seedEmployee(t, store, "Jane Cooper", "Engineer", "Engineering", 95000)
	ctx := context.Background()

	_, err := c.GetAllEmployees(ctx)
	require.NoError(t, err)

	updated, err := c.IncrementView(ctx, e.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, updated.Views)

	requestsSoFar := atomic.LoadInt32(hits)

	// The cached listing references the same normalized entity, so it
	// observes the new count without a refetch.
	listing, err := c.GetAllEmployees(ctx)
	require.NoError(t, err)
	require.Len(t, listing, 1)
	assert.Equal(t, 1, listing[0].Views)
	assert.Equal(t, requestsSoFar, atomic.LoadInt32(hits))
}

func TestClientValidationErrorSurfaced(t *testing.T) {
	c, _, _ := newDirectoryServer(t)

	_, err := c.AddEmployee(context.Background(), AddEmployeeInput{
		Name: "Jane Doe", Position: "Engineer", Department: "Engineering", Salary: 999,
	})
	require.Error(t, err)

	var apiErr *Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "validation", apiErr.Code)
	assert.Contains(t, apiErr.Fields, "salary")
	assert.False(t, IsNotFound(err))
}

func TestClientDistinguishesInvalidInputFromNotFound(t *testing.T) {
	c, _, _ := newDirectoryServer(t)
	ctx := context.Background()

	_, err := c.GetEmployeeDetails(ctx, "not-a-valid-id")
	require.Error(t, err)
	var apiErr *Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "invalid_input", apiErr.Code)
	assert.False(t, IsNotFound(err))

	_, err = c.GetEmployeeDetails(ctx, "424242")
	require.Error(t, err)
	assert.True(t, IsNotFound(err))
}

// scriptedServer serves canned responses per operation, for scenarios
// the real stack cannot produce on demand (out-of-band deletion).
func scriptedServer(t *testing.T, respond func(operation string) (int, interface{})) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Operation string `json:"operation"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("bad request body: %v", err)
		}
		status, body := respond(req.Operation)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		if err := json.NewEncoder(w).Encode(body); err != nil {
			t.Errorf("failed to encode response: %v", err)
		}
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestClientEvictsEntityOnNotFound(t *testing.T) {
	employees := []Employee{
		{ID: "1", Name: "Jane Cooper", Position: "Engineer", Department: "Engineering", Salary: 95000},
		{ID: "2", Name: "Amy Brown", Position: "Designer", Department: "Marketing", Salary: 70000},
	}
	srv := scriptedServer(t, func(operation string) (int, interface{}) {
		switch operation {
		case "getAllEmployees":
			return http.StatusOK, map[string]interface{}{"data": employees}
		case "incrementView":
			// Employee 1 was deleted elsewhere.
			return http.StatusNotFound, map[string]interface{}{
				"error": map[string]string{"code": "not_found", "message": "employee not found"},
			}
		default:
			t.Errorf("unexpected operation %s", operation)
			return http.StatusBadRequest, map[string]interface{}{
				"error": map[string]string{"code": "invalid_input", "message": "unexpected operation"},
			}
		}
	})

	c := New(srv.URL)
	ctx := context.Background()

	listing, err := c.GetAllEmployees(ctx)
	require.NoError(t, err)
	require.Len(t, listing, 2)

	_, err = c.IncrementView(ctx, "1")
	require.Error(t, err)
	assert.True(t, IsNotFound(err))

	// The structured not_found code is an implicit deletion signal:
	// the entity disappears from the cached listing too.
	listing, err = c.GetAllEmployees(ctx)
	require.NoError(t, err)
	require.Len(t, listing, 1)
	assert.Equal(t, "2", listing[0].ID)
}

func TestClientInvalidate(t *testing.T) {
	c, store, hits := newDirectoryServer(t)
	seedEmployee(t, store, "Jane Cooper", "Engineer", "Engineering", 95000)
	ctx := context.Background()

	_, err := c.GetAllEmployees(ctx)
	require.NoError(t, err)
	assert.Equal(t, int32(1), atomic.LoadInt32(hits))

	c.Invalidate()

	_, err = c.GetAllEmployees(ctx)
	require.NoError(t, err)
	assert.Equal(t, int32(2), atomic.LoadInt32(hits))
}

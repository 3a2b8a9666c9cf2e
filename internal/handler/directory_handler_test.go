package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/locvowork/employee_directory/internal/cache"
	"github.com/locvowork/employee_directory/internal/database"
	"github.com/locvowork/employee_directory/internal/domain"
	"github.com/locvowork/employee_directory/internal/service"
)

type wireError struct {
	Code    string            `json:"code"`
	Message string            `json:"message"`
	Fields  map[string]string `json:"fields"`
}

type wireResponse struct {
	Data  json.RawMessage `json:"data"`
	Error *wireError      `json:"error"`
}

func newTestHandler(t *testing.T) (*DirectoryHandler, *database.MemStore) {
	t.Helper()
	store := database.NewMemStore()
	svc := service.NewDirectoryService(store, cache.NewMemoryCache(64), nil, service.TTLConfig{})
	return NewDirectoryHandler(svc), store
}

func postQuery(t *testing.T, h *DirectoryHandler, body string) (*httptest.ResponseRecorder, wireResponse) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/api/query", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	require.NoError(t, h.QueryHandler(e.NewContext(req, rec)))

	var resp wireResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return rec, resp
}

func TestQueryHandlerGetAllEmployees(t *testing.T) {
	h, store := newTestHandler(t)

	e := domain.Employee{Name: "Jane Cooper", Position: "Engineer", Department: "Engineering", Salary: 95000}
	require.NoError(t, store.CreateEmployee(context.Background(), &e))

	rec, resp := postQuery(t, h, `{"operation":"getAllEmployees"}`)
	assert.Equal(t, http.StatusOK, rec.Code)
	require.Nil(t, resp.Error)

	var employees []domain.Employee
	require.NoError(t, json.Unmarshal(resp.Data, &employees))
	require.Len(t, employees, 1)
	assert.Equal(t, "Jane Cooper", employees[0].Name)
	assert.Equal(t, e.ID, employees[0].ID)
}

func TestQueryHandlerAddThenGetDetails(t *testing.T) {
	h, _ := newTestHandler(t)

	rec, resp := postQuery(t, h, `{
		"operation": "addEmployee",
		"variables": {"name":"Jane Doe","position":"Engineer","department":"Engineering","salary":90000}
	}`)
	assert.Equal(t, http.StatusOK, rec.Code)
	require.Nil(t, resp.Error)

	var created domain.Employee
	require.NoError(t, json.Unmarshal(resp.Data, &created))
	require.NotEmpty(t, created.ID)
	assert.Equal(t, 0, created.Views)

	rec, resp = postQuery(t, h, fmt.Sprintf(`{"operation":"getEmployeeDetails","variables":{"id":%q}}`, created.ID))
	assert.Equal(t, http.StatusOK, rec.Code)
	require.Nil(t, resp.Error)

	var got domain.Employee
	require.NoError(t, json.Unmarshal(resp.Data, &got))
	assert.Equal(t, "Jane Doe", got.Name)
	assert.Equal(t, float64(90000), got.Salary)
}

func TestQueryHandlerValidationError(t *testing.T) {
	h, _ := newTestHandler(t)

	rec, resp := postQuery(t, h, `{
		"operation": "addEmployee",
		"variables": {"name":"Jane Doe","position":"Engineer","department":"Engineering","salary":999}
	}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "validation", resp.Error.Code)
	assert.Contains(t, resp.Error.Fields, "salary")
}

func TestQueryHandlerInvalidInputVsNotFound(t *testing.T) {
	h, _ := newTestHandler(t)

	rec, resp := postQuery(t, h, `{"operation":"getEmployeeDetails","variables":{"id":"not-a-valid-id"}}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "invalid_input", resp.Error.Code)

	rec, resp = postQuery(t, h, `{"operation":"getEmployeeDetails","variables":{"id":"424242"}}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "not_found", resp.Error.Code)
}

func TestQueryHandlerIncrementView(t *testing.T) {
	h, store := newTestHandler(t)

	e := domain.Employee{Name: "Jane Cooper", Position: "Engineer", Department: "Engineering", Salary: 95000}
	require.NoError(t, store.CreateEmployee(context.Background(), &e))

	rec, resp := postQuery(t, h, fmt.Sprintf(`{"operation":"incrementView","variables":{"id":%q}}`, e.ID))
	assert.Equal(t, http.StatusOK, rec.Code)
	require.Nil(t, resp.Error)

	var got domain.Employee
	require.NoError(t, json.Unmarshal(resp.Data, &got))
	assert.Equal(t, 1, got.Views)
}

func TestQueryHandlerUnknownOperation(t *testing.T) {
	h, _ := newTestHandler(t)

	rec, resp := postQuery(t, h, `{"operation":"dropAllTables"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "invalid_input", resp.Error.Code)
}

func TestQueryHandlerMissingVariables(t *testing.T) {
	h, _ := newTestHandler(t)

	rec, resp := postQuery(t, h, `{"operation":"getEmployeeDetails"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "invalid_input", resp.Error.Code)
}

func TestQueryHandlerGetDepartments(t *testing.T) {
	h, store := newTestHandler(t)

	for _, d := range []domain.Department{
		{Name: "Marketing", Floor: 3},
		{Name: "Engineering", Floor: 2},
	} {
		dept := d
		require.NoError(t, store.CreateDepartment(context.Background(), &dept))
	}

	rec, resp := postQuery(t, h, `{"operation":"getDepartments"}`)
	assert.Equal(t, http.StatusOK, rec.Code)
	require.Nil(t, resp.Error)

	var departments []domain.Department
	require.NoError(t, json.Unmarshal(resp.Data, &departments))
	require.Len(t, departments, 2)
	assert.Equal(t, "Engineering", departments[0].Name)
}

func TestExportEmployeesHandler(t *testing.T) {
	h, store := newTestHandler(t)

	e := domain.Employee{Name: "Jane Cooper", Position: "Engineer", Department: "Engineering", Salary: 95000}
	require.NoError(t, store.CreateEmployee(context.Background(), &e))

	echoInst := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/export/employees", nil)
	rec := httptest.NewRecorder()
	require.NoError(t, h.ExportEmployeesHandler(echoInst.NewContext(req, rec)))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "spreadsheetml")
	assert.NotZero(t, rec.Body.Len())
}

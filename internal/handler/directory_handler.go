package handler

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/locvowork/employee_directory/internal/domain"
	"github.com/locvowork/employee_directory/internal/service"
)

// DirectoryHandler serves every directory operation through one POST
// endpoint dispatching on the envelope's operation name.
type DirectoryHandler struct {
	svc *service.DirectoryService
}

func NewDirectoryHandler(svc *service.DirectoryService) *DirectoryHandler {
	return &DirectoryHandler{svc: svc}
}

func (h *DirectoryHandler) QueryHandler(c echo.Context) error {
	var req queryRequest
	if err := c.Bind(&req); err != nil {
		return ResponseError(c, domain.NewInvalidInputError("invalid request body"))
	}

	ctx := c.Request().Context()

	switch req.Operation {
	case OpGetAllEmployees:
		employees, err := h.svc.GetAllEmployees(ctx)
		if err != nil {
			return ResponseError(c, err)
		}
		return ResponseSuccess(c, http.StatusOK, employees)

	case OpGetEmployeeDetails:
		var vars idVariables
		if err := decodeVariables(req, &vars); err != nil {
			return ResponseError(c, err)
		}
		employee, err := h.svc.GetEmployeeDetails(ctx, vars.ID)
		if err != nil {
			return ResponseError(c, err)
		}
		return ResponseSuccess(c, http.StatusOK, employee)

	case OpGetEmployeesByDepartment:
		var vars departmentVariables
		if err := decodeVariables(req, &vars); err != nil {
			return ResponseError(c, err)
		}
		employees, err := h.svc.GetEmployeesByDepartment(ctx, vars.Department)
		if err != nil {
			return ResponseError(c, err)
		}
		return ResponseSuccess(c, http.StatusOK, employees)

	case OpGetDepartments:
		departments, err := h.svc.GetDepartments(ctx)
		if err != nil {
			return ResponseError(c, err)
		}
		return ResponseSuccess(c, http.StatusOK, departments)

	case OpSearchEmployees:
		var vars searchVariables
		if err := decodeVariables(req, &vars); err != nil {
			return ResponseError(c, err)
		}
		employees, err := h.svc.SearchEmployees(ctx, vars.Query)
		if err != nil {
			return ResponseError(c, err)
		}
		return ResponseSuccess(c, http.StatusOK, employees)

	case OpAddEmployee:
		var vars addEmployeeVariables
		if err := decodeVariables(req, &vars); err != nil {
			return ResponseError(c, err)
		}
		employee, err := h.svc.AddEmployee(ctx, service.AddEmployeeInput{
			Name:       vars.Name,
			Position:   vars.Position,
			Department: vars.Department,
			Salary:     vars.Salary,
		})
		if err != nil {
			return ResponseError(c, err)
		}
		return ResponseSuccess(c, http.StatusOK, employee)

	case OpIncrementView:
		var vars idVariables
		if err := decodeVariables(req, &vars); err != nil {
			return ResponseError(c, err)
		}
		employee, err := h.svc.IncrementView(ctx, vars.ID)
		if err != nil {
			return ResponseError(c, err)
		}
		return ResponseSuccess(c, http.StatusOK, employee)

	default:
		return ResponseError(c, domain.NewInvalidInputError(fmt.Sprintf("unknown operation %q", req.Operation)))
	}
}

func decodeVariables(req queryRequest, dst interface{}) error {
	if len(req.Variables) == 0 {
		return domain.NewInvalidInputError(fmt.Sprintf("operation %s requires variables", req.Operation))
	}
	if err := json.Unmarshal(req.Variables, dst); err != nil {
		return domain.NewInvalidInputError("invalid variables")
	}
	return nil
}

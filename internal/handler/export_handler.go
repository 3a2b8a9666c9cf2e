package handler

import (
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/locvowork/employee_directory/pkg/xlsxreport"
)

// ExportEmployeesHandler streams the current directory listing as an
// xlsx attachment. It reads through the same cached service path as the
// list operation.
func (h *DirectoryHandler) ExportEmployeesHandler(c echo.Context) error {
	employees, err := h.svc.GetAllEmployees(c.Request().Context())
	if err != nil {
		return ResponseError(c, err)
	}

	exporter := xlsxreport.NewExporter()
	sheet := exporter.AddSheet("Employees")
	sheet.SetColumns(
		xlsxreport.Column{Header: "ID", Width: 12},
		xlsxreport.Column{Header: "Name", Width: 28},
		xlsxreport.Column{Header: "Position", Width: 28},
		xlsxreport.Column{Header: "Department", Width: 22},
		xlsxreport.Column{Header: "Salary", Width: 14},
		xlsxreport.Column{Header: "Views", Width: 10},
	)
	for _, e := range employees {
		sheet.AddRow(e.ID, e.Name, e.Position, e.Department, e.Salary, e.Views)
	}

	data, err := exporter.ToBytes()
	if err != nil {
		return ResponseError(c, err)
	}

	c.Response().Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Response().Header().Set("Content-Disposition", `attachment; filename="employees.xlsx"`)
	c.Response().Header().Set("Content-Length", strconv.Itoa(len(data)))

	_, err = c.Response().Write(data)
	return err
}

package xlsxreport

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestExporterRoundTrip(t *testing.T) {
	exporter := NewExporter()
	sheet := exporter.AddSheet("Employees")
	sheet.SetColumns(
		Column{Header: "Name", Width: 28},
		Column{Header: "Salary", Width: 14},
	)
	sheet.AddRow("Jane Cooper", 95000.0)
	sheet.AddRow("Amy Brown", 70000.0)

	data, err := exporter.ToBytes()
	require.NoError(t, err)
	require.NotEmpty(t, data)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{"Employees"}, f.GetSheetList())

	header, err := f.GetCellValue("Employees", "A1")
	require.NoError(t, err)
	assert.Equal(t, "Name", header)

	name, err := f.GetCellValue("Employees", "A2")
	require.NoError(t, err)
	assert.Equal(t, "Jane Cooper", name)

	salary, err := f.GetCellValue("Employees", "B3")
	require.NoError(t, err)
	assert.Equal(t, "70000", salary)
}

func TestExporterMultipleSheets(t *testing.T) {
	exporter := NewExporter()
	exporter.AddSheet("First").SetColumns(Column{Header: "A"}).AddRow("x")
	exporter.AddSheet("Second").SetColumns(Column{Header: "B"}).AddRow("y")

	data, err := exporter.ToBytes()
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	assert.ElementsMatch(t, []string{"First", "Second"}, f.GetSheetList())
}

func TestExporterNoSheets(t *testing.T) {
	_, err := NewExporter().ToBytes()
	assert.Error(t, err)
}

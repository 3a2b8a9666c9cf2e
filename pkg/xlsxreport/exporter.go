// Package xlsxreport is a small fluent wrapper over excelize for
// tabular report sheets: declare columns, append rows, get bytes.
package xlsxreport

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

type Column struct {
	Header string
	Width  float64
}

type Sheet struct {
	name    string
	columns []Column
	rows    [][]interface{}
}

type Exporter struct {
	sheets []*Sheet
}

func NewExporter() *Exporter {
	return &Exporter{}
}

func (e *Exporter) AddSheet(name string) *Sheet {
	s := &Sheet{name: name}
	e.sheets = append(e.sheets, s)
	return s
}

func (s *Sheet) SetColumns(cols ...Column) *Sheet {
	s.columns = cols
	return s
}

// AddRow appends one data row; values align positionally with the
// declared columns.
func (s *Sheet) AddRow(values ...interface{}) *Sheet {
	s.rows = append(s.rows, values)
	return s
}

func (e *Exporter) ToBytes() ([]byte, error) {
	if len(e.sheets) == 0 {
		return nil, fmt.Errorf("no sheets to export")
	}

	f := excelize.NewFile()
	defer f.Close()

	headerStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, fmt.Errorf("failed to create header style: %w", err)
	}

	for i, sheet := range e.sheets {
		if i == 0 {
			if err := f.SetSheetName("Sheet1", sheet.name); err != nil {
				return nil, err
			}
		} else {
			if _, err := f.NewSheet(sheet.name); err != nil {
				return nil, err
			}
		}
		if err := writeSheet(f, sheet, headerStyle); err != nil {
			return nil, err
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func writeSheet(f *excelize.File, sheet *Sheet, headerStyle int) error {
	for col, c := range sheet.columns {
		name, err := excelize.ColumnNumberToName(col + 1)
		if err != nil {
			return err
		}
		if c.Width > 0 {
			if err := f.SetColWidth(sheet.name, name, name, c.Width); err != nil {
				return err
			}
		}
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet.name, cell, c.Header); err != nil {
			return err
		}
		if err := f.SetCellStyle(sheet.name, cell, cell, headerStyle); err != nil {
			return err
		}
	}

	for r, row := range sheet.rows {
		for col, v := range row {
			cell, err := excelize.CoordinatesToCellName(col+1, r+2)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(sheet.name, cell, v); err != nil {
				return err
			}
		}
	}
	return nil
}

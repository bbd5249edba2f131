package export

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"
	"github.com/yigit/hostel/internal/app/models"
)

const maxSheetName = 31

// ContentType is the MIME type of the workbooks produced here.
const ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// SheetName turns a report title into a valid worksheet name.
func SheetName(title string) string {
	name := strings.Map(func(r rune) rune {
		switch r {
		case ':', '\\', '/', '?', '*', '[', ']':
			return '_'
		}
		return r
	}, strings.TrimSpace(title))
	if name == "" {
		name = "Report"
	}
	if runes := []rune(name); len(runes) > maxSheetName {
		name = string(runes[:maxSheetName])
	}
	return name
}

// WriteWorkbook renders table as a single-sheet .xlsx document: a bold
// header row with the column labels followed by the rows in order.
func WriteWorkbook(table *models.ReportTable) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	sheet := SheetName(table.Title)
	if err := f.SetSheetName(f.GetSheetName(0), sheet); err != nil {
		return nil, fmt.Errorf("rename sheet: %w", err)
	}

	header := make([]interface{}, len(table.Columns))
	for i, col := range table.Columns {
		header[i] = col
	}
	if err := writeRow(f, sheet, 1, header); err != nil {
		return nil, err
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, fmt.Errorf("create header style: %w", err)
	}
	if err := f.SetRowStyle(sheet, 1, 1, bold); err != nil {
		return nil, fmt.Errorf("style header: %w", err)
	}

	for i, row := range table.Rows {
		if err := writeRow(f, sheet, i+2, row); err != nil {
			return nil, err
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func writeRow(f *excelize.File, sheet string, rowNum int, values []interface{}) error {
	cell, err := excelize.CoordinatesToCellName(1, rowNum)
	if err != nil {
		return fmt.Errorf("row %d: %w", rowNum, err)
	}
	row := make([]interface{}, len(values))
	copy(row, values)
	if err := f.SetSheetRow(sheet, cell, &row); err != nil {
		return fmt.Errorf("write row %d: %w", rowNum, err)
	}
	return nil
}

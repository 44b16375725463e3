package data

import (
	"fmt"
	"strings"

	"growth-plot/internal/timeline"

	"github.com/extrame/xls"
)

// Column headers of the counts summary spreadsheet.
const (
	LabelColumn = "Folder Name"
	ValueColumn = "Concentration(ml)"
)

// LoadDeviceXLS reads the device series from a legacy .xls workbook.
// sheetName selects the worksheet; empty means the first sheet. Rows with a
// missing label or unparsable value are dropped, result sorted by label.
func LoadDeviceXLS(path, sheetName string) ([]timeline.RawPoint, error) {
	wb, err := xls.Open(path, "utf-8")
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}

	sheet, err := findSheet(wb, sheetName)
	if err != nil {
		return nil, err
	}

	header := sheet.Row(0)
	if header == nil {
		return nil, fmt.Errorf("%s: sheet %q has no header row", path, sheet.Name)
	}
	labelCol, valueCol := -1, -1
	for c := 0; c <= header.LastCol(); c++ {
		switch strings.TrimSpace(header.Col(c)) {
		case LabelColumn:
			labelCol = c
		case ValueColumn:
			valueCol = c
		}
	}
	if labelCol < 0 || valueCol < 0 {
		return nil, fmt.Errorf("%s: sheet %q missing %q or %q column", path, sheet.Name, LabelColumn, ValueColumn)
	}

	rows := make([]summaryRow, 0, int(sheet.MaxRow))
	for r := 1; r <= int(sheet.MaxRow); r++ {
		row := sheet.Row(r)
		if row == nil {
			continue
		}
		rows = append(rows, summaryRow{
			FolderName:    row.Col(labelCol),
			Concentration: row.Col(valueCol),
		})
	}
	return rowsToPoints(rows), nil
}

func findSheet(wb *xls.WorkBook, name string) (*xls.WorkSheet, error) {
	n := wb.NumSheets()
	if n == 0 {
		return nil, fmt.Errorf("workbook has no sheets")
	}
	if name == "" {
		if s := wb.GetSheet(0); s != nil {
			return s, nil
		}
		return nil, fmt.Errorf("sheet 0 is nil")
	}
	for i := 0; i < n; i++ {
		if s := wb.GetSheet(i); s != nil && s.Name == name {
			return s, nil
		}
	}
	return nil, fmt.Errorf("sheet %q not found", name)
}

package data

import (
	"fmt"
	"path/filepath"
	"strings"

	"growth-plot/internal/timeline"
)

// LoadDeviceSeries dispatches on the file extension: .xls goes through the
// workbook reader, everything else is treated as a CSV export of the same
// summary. sheetName only applies to workbooks.
func LoadDeviceSeries(path, sheetName string) ([]timeline.RawPoint, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xls":
		return LoadDeviceXLS(path, sheetName)
	case ".csv", "":
		return LoadDeviceCSV(path)
	default:
		return nil, fmt.Errorf("unsupported spreadsheet format %q (want .xls or .csv)", filepath.Ext(path))
	}
}

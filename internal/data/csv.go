package data

import (
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"

	"growth-plot/internal/timeline"

	"github.com/gocarina/gocsv"
)

// summaryRow matches the cell_counts_summary export: one row per capture
// folder with the measured concentration. Both columns are read as strings
// so rows with a missing or malformed value can be dropped instead of
// failing the whole file.
type summaryRow struct {
	FolderName    string `csv:"Folder Name"`
	Concentration string `csv:"Concentration(ml)"`
}

// LoadDeviceCSV reads the device series from a CSV export of the counts
// summary. Rows with a missing label or unparsable value are dropped, and
// the result is sorted by folder-name label (the label layout makes the
// lexicographic order chronological).
func LoadDeviceCSV(path string) ([]timeline.RawPoint, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var rows []summaryRow
	if err := gocsv.UnmarshalFile(f, &rows); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return rowsToPoints(rows), nil
}

func rowsToPoints(rows []summaryRow) []timeline.RawPoint {
	out := make([]timeline.RawPoint, 0, len(rows))
	for _, r := range rows {
		label := strings.TrimSpace(r.FolderName)
		if label == "" {
			continue
		}
		v, err := strconv.ParseFloat(strings.TrimSpace(r.Concentration), 64)
		if err != nil {
			continue
		}
		out = append(out, timeline.RawPoint{Label: label, Value: v})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Label < out[j].Label })
	return out
}

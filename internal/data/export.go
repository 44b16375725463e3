package data

import (
	"encoding/csv"
	"os"
	"strconv"

	"growth-plot/internal/model"
)

// WriteNormalizedCSV writes every normalized series to one long-format CSV.
// This is the primary artifact for "what the chart is drawn from".
func WriteNormalizedCSV(path string, series []model.NormalizedSeries) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	header := []string{"series", "kind", "hours", "value"}
	if err := w.Write(header); err != nil {
		return err
	}

	for _, s := range series {
		for _, p := range s.Points {
			row := []string{
				s.Name,
				string(s.Kind),
				fmtFloat(p.Hours),
				fmtFloat(p.Value),
			}
			if err := w.Write(row); err != nil {
				return err
			}
		}
	}

	return w.Error()
}

func fmtFloat(x float64) string {
	return strconv.FormatFloat(x, 'g', -1, 64)
}

package data

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"growth-plot/internal/model"
)

func writeTempCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "counts.csv")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	return path
}

func TestLoadDeviceCSV(t *testing.T) {
	// Deliberately unsorted, with a blank label and a malformed value.
	csvData := "Folder Name,Concentration(ml)\n" +
		"24_11_19_11_20_00,1.04E+08\n" +
		"24_11_18_18_22_00,1.74E+07\n" +
		",5.0E+07\n" +
		"24_11_19_13_56_00,not-a-number\n" +
		"24_11_20_12_43_00,8.99E+08\n"

	pts, err := LoadDeviceCSV(writeTempCSV(t, csvData))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(pts) != 3 {
		t.Fatalf("expected 3 clean rows, got %d: %+v", len(pts), pts)
	}
	if pts[0].Label != "24_11_18_18_22_00" {
		t.Fatalf("rows not sorted by label: first is %q", pts[0].Label)
	}
	if pts[0].Value != 1.74e7 || pts[2].Value != 8.99e8 {
		t.Fatalf("values misparsed: %+v", pts)
	}
}

func TestLoadDeviceSeriesDispatch(t *testing.T) {
	path := writeTempCSV(t, "Folder Name,Concentration(ml)\n24_11_18_18_22_00,1.74E+07\n")
	pts, err := LoadDeviceSeries(path, "")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(pts) != 1 {
		t.Fatalf("expected 1 row got %d", len(pts))
	}

	if _, err := LoadDeviceSeries("counts.pdf", ""); err == nil {
		t.Fatal("expected error for unsupported extension")
	}
}

func TestWriteNormalizedCSV(t *testing.T) {
	series := []model.NormalizedSeries{
		{
			Name: "device", Kind: model.KindDevice,
			Points: []model.NormalizedPoint{{Hours: 0, Value: 1.74e7}, {Hours: 16.5, Value: 1.04e8}},
		},
		{
			Name: "diluted control", Kind: model.KindControl,
			Points: []model.NormalizedPoint{{Hours: 0, Value: 3.09e6}},
		},
	}

	path := filepath.Join(t.TempDir(), "normalized.csv")
	if err := WriteNormalizedCSV(path, series); err != nil {
		t.Fatalf("write: %v", err)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(string(raw)), "\n")
	if len(lines) != 4 {
		t.Fatalf("expected header + 3 rows, got %d lines", len(lines))
	}
	if lines[0] != "series,kind,hours,value" {
		t.Fatalf("unexpected header: %q", lines[0])
	}
	if !strings.HasPrefix(lines[3], "diluted control,control,0,") {
		t.Fatalf("unexpected control row: %q", lines[3])
	}
}

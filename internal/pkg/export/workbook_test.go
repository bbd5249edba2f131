package export

import (
	"bytes"
	"testing"

	"github.com/xuri/excelize/v2"
	"github.com/yigit/hostel/internal/app/models"
)

func TestSheetName(t *testing.T) {
	tests := []struct {
		title string
		want  string
	}{
		{"Students", "Students"},
		{"Dues 2024/05", "Dues 2024_05"},
		{"  ", "Report"},
		{"An extremely long report title that overflows", "An extremely long report title "},
	}
	for _, tt := range tests {
		if got := SheetName(tt.title); got != tt.want {
			t.Errorf("SheetName(%q) = %q, want %q", tt.title, got, tt.want)
		}
	}
}

func TestWriteWorkbook(t *testing.T) {
	table := &models.ReportTable{
		Title:   "Rooms",
		Columns: []string{"Room No", "Type", "Occupied"},
		Rows: [][]interface{}{
			{"R1", "Double", 2},
			{"R2", "Single", 0},
		},
	}

	data, err := WriteWorkbook(table)
	if err != nil {
		t.Fatalf("WriteWorkbook() error = %v", err)
	}

	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("OpenReader() error = %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows("Rooms")
	if err != nil {
		t.Fatalf("GetRows() error = %v", err)
	}

	want := [][]string{
		{"Room No", "Type", "Occupied"},
		{"R1", "Double", "2"},
		{"R2", "Single", "0"},
	}
	if len(rows) != len(want) {
		t.Fatalf("got %d rows, want %d", len(rows), len(want))
	}
	for i := range want {
		for j := range want[i] {
			if rows[i][j] != want[i][j] {
				t.Errorf("cell (%d,%d) = %q, want %q", i, j, rows[i][j], want[i][j])
			}
		}
	}
}

func TestWriteWorkbookHeaderOnly(t *testing.T) {
	data, err := WriteWorkbook(&models.ReportTable{Title: "Dues", Columns: []string{"Student ID"}})
	if err != nil {
		t.Fatalf("WriteWorkbook() error = %v", err)
	}

	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("OpenReader() error = %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows("Dues")
	if err != nil {
		t.Fatalf("GetRows() error = %v", err)
	}
	if len(rows) != 1 || rows[0][0] != "Student ID" {
		t.Errorf("rows = %v, want only the header", rows)
	}
}

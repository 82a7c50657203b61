package roster_test

import (
	"bytes"
	"testing"

	"github.com/xuri/excelize/v2"

	"github.com/xtribr/gabaritai-v3-escola-e-enem-sub001/internal/roster"
)

func TestParseJSON(t *testing.T) {
	data := []byte(`[
		{"name": "Ana", "matricula": "001", "class": "3A"},
		{"name": "Bruno", "matricula": "002", "class": "3B"}
	]`)

	rows, err := roster.ParseJSON(data)
	if err != nil {
		t.Fatalf("ParseJSON() error = %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("len(rows) = %d, want 2", len(rows))
	}
	if rows[0].Name != "Ana" || rows[0].Matricula != "001" || rows[0].Class != "3A" {
		t.Errorf("rows[0] = %+v", rows[0])
	}
}

func TestParseJSON_Invalid(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"not-an-array", `{"name": "Ana"}`},
		{"missing-matricula", `[{"name": "Ana", "class": "3A"}]`},
		{"empty-name", `[{"name": "", "matricula": "001", "class": "3A"}]`},
		{"numeric-matricula", `[{"name": "Ana", "matricula": 1, "class": "3A"}]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := roster.ParseJSON([]byte(tt.data)); err == nil {
				t.Error("ParseJSON() should reject the payload")
			}
		})
	}
}

func buildWorkbook(t *testing.T, header []string, rows [][]string) []byte {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	for i, cell := range header {
		name, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(sheet, name, cell); err != nil {
			t.Fatalf("SetCellValue() error = %v", err)
		}
	}
	for r, row := range rows {
		for c, cell := range row {
			name, _ := excelize.CoordinatesToCellName(c+1, r+2)
			if err := f.SetCellValue(sheet, name, cell); err != nil {
				t.Fatalf("SetCellValue() error = %v", err)
			}
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	return buf.Bytes()
}

func TestParseXLSX(t *testing.T) {
	data := buildWorkbook(t,
		[]string{"Nome", "Matrícula", "Turma"},
		[][]string{
			{"Ana Lima", "001", "3A"},
			{"Bruno Souza", "002", "3B"},
		},
	)

	rows, err := roster.ParseXLSX(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("ParseXLSX() error = %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("len(rows) = %d, want 2", len(rows))
	}
	if rows[0].Name != "Ana Lima" || rows[0].Matricula != "001" || rows[0].Class != "3A" {
		t.Errorf("rows[0] = %+v", rows[0])
	}
}

func TestParseXLSX_HeaderAliases(t *testing.T) {
	// English headers from the exported template parse the same way.
	data := buildWorkbook(t,
		[]string{"name", "MATRICULA", "class"},
		[][]string{{"Carla", "003", "1A"}},
	)

	rows, err := roster.ParseXLSX(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("ParseXLSX() error = %v", err)
	}
	if len(rows) != 1 || rows[0].Matricula != "003" {
		t.Errorf("rows = %+v", rows)
	}
}

func TestParseXLSX_SkipsEmptyRows(t *testing.T) {
	data := buildWorkbook(t,
		[]string{"Nome", "Matrícula", "Turma"},
		[][]string{
			{"Ana", "001", "3A"},
			{"", "", ""},
			{"Bruno", "002", "3A"},
		},
	)

	rows, err := roster.ParseXLSX(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("ParseXLSX() error = %v", err)
	}
	if len(rows) != 2 {
		t.Errorf("len(rows) = %d, want 2", len(rows))
	}
}

func TestParseXLSX_MissingColumn(t *testing.T) {
	data := buildWorkbook(t,
		[]string{"Nome", "Turma"},
		[][]string{{"Ana", "3A"}},
	)

	if _, err := roster.ParseXLSX(bytes.NewReader(data)); err == nil {
		t.Error("ParseXLSX() should reject a sheet without a matricula column")
	}
}

func TestParseXLSX_NotAWorkbook(t *testing.T) {
	if _, err := roster.ParseXLSX(bytes.NewReader([]byte("not an xlsx"))); err == nil {
		t.Error("ParseXLSX() should reject a non-workbook payload")
	}
}

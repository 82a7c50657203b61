package roster

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/xeipuuv/gojsonschema"
	"github.com/xuri/excelize/v2"
)

// rowsSchema validates a JSON roster payload before reconciliation: an array
// of objects each carrying non-empty name, matricula and class strings.
const rowsSchema = `{
	"type": "array",
	"items": {
		"type": "object",
		"required": ["name", "matricula", "class"],
		"properties": {
			"name":      {"type": "string", "minLength": 1},
			"matricula": {"type": "string", "minLength": 1},
			"class":     {"type": "string", "minLength": 1}
		}
	}
}`

// ParseJSON validates and decodes a JSON roster payload.
func ParseJSON(data []byte) ([]Row, error) {
	result, err := gojsonschema.Validate(
		gojsonschema.NewStringLoader(rowsSchema),
		gojsonschema.NewBytesLoader(data),
	)
	if err != nil {
		return nil, fmt.Errorf("validating roster payload: %w", err)
	}
	if !result.Valid() {
		errs := result.Errors()
		return nil, fmt.Errorf("invalid roster payload: %s", errs[0])
	}

	var rows []Row
	if err := json.Unmarshal(data, &rows); err != nil {
		return nil, fmt.Errorf("decoding roster payload: %w", err)
	}
	return rows, nil
}

// Column headers accepted in roster spreadsheets, matched after foldKey. The
// schools upload sheets in Portuguese; English headers are accepted for
// exported templates.
var headerAliases = map[string]string{
	"nome":      "name",
	"name":      "name",
	"aluno":     "name",
	"matricula": "matricula",
	"turma":     "class",
	"class":     "class",
	"serie":     "class",
}

// ParseXLSX reads roster rows from the first sheet of an XLSX workbook. The
// first row must be a header naming at least the name, matricula and class
// columns; unrecognized columns are ignored and fully empty rows skipped.
func ParseXLSX(r io.Reader) ([]Row, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("opening workbook: %w", err)
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	if sheet == "" {
		return nil, fmt.Errorf("workbook has no sheets")
	}

	cells, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("reading sheet %q: %w", sheet, err)
	}
	if len(cells) == 0 {
		return nil, fmt.Errorf("sheet %q is empty", sheet)
	}

	columns := make(map[string]int)
	for i, header := range cells[0] {
		if field, ok := headerAliases[foldKey(header)]; ok {
			columns[field] = i
		}
	}
	for _, field := range []string{"name", "matricula", "class"} {
		if _, ok := columns[field]; !ok {
			return nil, fmt.Errorf("sheet %q: missing %s column", sheet, field)
		}
	}

	cell := func(row []string, field string) string {
		i := columns[field]
		if i >= len(row) {
			return ""
		}
		return row[i]
	}

	var rows []Row
	for _, raw := range cells[1:] {
		row := Row{
			Name:      cell(raw, "name"),
			Matricula: cell(raw, "matricula"),
			Class:     cell(raw, "class"),
		}
		if row.Name == "" && row.Matricula == "" && row.Class == "" {
			continue
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// Package importer reads product lists and saved service responses.
// Flat product sheets come from CSV or Excel with automatic delimiter
// detection, flexible column mapping, and case-insensitive header recognition.
package importer

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/piwi3910/LoadTwin/internal/model"
	"github.com/xuri/excelize/v2"
)

// MaxQuantity bounds the units a single row may expand into.
const MaxQuantity = 10000

// ImportResult holds the results of an import operation.
type ImportResult struct {
	Products []model.Product
	Errors   []string
	Warnings []string
}

// ColumnMapping maps semantic column roles to their indices in the data.
type ColumnMapping struct {
	ID       int
	Name     int
	Type     int
	Length   int
	Height   int
	Width    int
	Weight   int
	Quantity int
}

// headerAliases maps canonical column names to their accepted aliases (all lowercase).
var headerAliases = map[string][]string{
	"id":       {"id", "id_producto", "product id", "sku", "code"},
	"name":     {"name", "nombre", "product", "description", "desc", "item"},
	"type":     {"type", "tipo", "tipo_mercancia", "category", "categoria", "cargo"},
	"length":   {"length", "largo", "dim_l", "l", "len"},
	"height":   {"height", "alto", "dim_h", "h"},
	"width":    {"width", "ancho", "dim_w", "w"},
	"weight":   {"weight", "peso", "kg", "weight (kg)"},
	"quantity": {"quantity", "qty", "cantidad", "count", "pcs", "units"},
}

// readRecords parses CSV leniently: quotes may be unbalanced and rows may
// differ in width.
func readRecords(r io.Reader, delim rune) ([][]string, error) {
	cr := csv.NewReader(r)
	cr.Comma = delim
	cr.LazyQuotes = true
	cr.FieldsPerRecord = -1
	return cr.ReadAll()
}

var delimiterNames = map[rune]string{',': "comma", ';': "semicolon", '\t': "tab", '|': "pipe"}

// DetectCSVDelimiter picks the delimiter among comma, semicolon, tab and
// pipe whose rows agree most often with the first row's width. Wider first
// rows break ties; comma wins when nothing splits.
func DetectCSVDelimiter(data []byte) rune {
	best, bestScore := ',', 0
	for _, delim := range []rune{',', ';', '\t', '|'} {
		records, err := readRecords(bytes.NewReader(data), delim)
		if err != nil || len(records) == 0 || len(records[0]) < 2 {
			continue
		}
		width := len(records[0])
		consistent := 0
		for _, row := range records {
			if len(row) == width {
				consistent++
			}
		}
		if score := consistent*10 + width; score > bestScore {
			best, bestScore = delim, score
		}
	}
	return best
}

// positionalColumns is the layout assumed for sheets without a header.
var positionalColumns = ColumnMapping{ID: 0, Name: 1, Type: 2, Length: 3, Height: 4, Width: 5, Weight: 6, Quantity: 7}

func (m *ColumnMapping) slot(role string) *int {
	switch role {
	case "id":
		return &m.ID
	case "name":
		return &m.Name
	case "type":
		return &m.Type
	case "length":
		return &m.Length
	case "height":
		return &m.Height
	case "width":
		return &m.Width
	case "weight":
		return &m.Weight
	case "quantity":
		return &m.Quantity
	}
	return nil
}

// DetectColumns maps a header row onto column roles. When no cell matches a
// known alias the row is treated as data and positionalColumns is returned
// with false. Only the first column claiming a role is used.
func DetectColumns(row []string) (ColumnMapping, bool) {
	m := ColumnMapping{-1, -1, -1, -1, -1, -1, -1, -1}
	found := false
	for i, cell := range row {
		name := strings.ToLower(strings.TrimSpace(cell))
		for role, aliases := range headerAliases {
			if !containsString(aliases, name) {
				continue
			}
			found = true
			if p := m.slot(role); *p < 0 {
				*p = i
			}
		}
	}
	if !found {
		return positionalColumns, false
	}
	return m, true
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

// getCell safely retrieves a cell value from a row by column index.
// Returns empty string if the index is out of range or negative.
func getCell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

// parseDim reads an optional dimension. An empty cell is a missing value,
// which placement replaces with the default.
func parseDim(row []string, idx int, name, rowLabel string) (float64, bool, string) {
	s := getCell(row, idx)
	if s == "" {
		return 0, true, ""
	}
	v, err := strconv.ParseFloat(strings.ReplaceAll(s, ",", "."), 64)
	if err != nil {
		return 0, false, fmt.Sprintf("%s: Invalid %s '%s'", rowLabel, name, s)
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false, fmt.Sprintf("%s: Invalid %s '%s'", rowLabel, name, s)
	}
	if v < 0 {
		return 0, false, fmt.Sprintf("%s: %s must not be negative", rowLabel, name)
	}
	return v, true, ""
}

// parseRow extracts a product and its quantity from a row using the given
// column mapping. Returns the product, quantity, any error and any warnings.
func parseRow(row []string, mapping ColumnMapping, rowLabel string, productCount int) (model.Product, int, string, []string) {
	var warnings []string

	p := model.Product{
		ID:   getCell(row, mapping.ID),
		Name: getCell(row, mapping.Name),
		Type: strings.ToUpper(getCell(row, mapping.Type)),
	}
	if p.ID == "" {
		p.ID = fmt.Sprintf("P%03d", productCount+1)
	}
	if p.Name == "" {
		p.Name = p.ID
	}

	dims := []struct {
		name string
		idx  int
		dst  *float64
	}{
		{"length", mapping.Length, &p.Length},
		{"height", mapping.Height, &p.Height},
		{"width", mapping.Width, &p.Width},
		{"weight", mapping.Weight, &p.Weight},
	}
	for _, d := range dims {
		v, ok, msg := parseDim(row, d.idx, d.name, rowLabel)
		if !ok {
			return model.Product{}, 0, msg, nil
		}
		*d.dst = v
		if v == 0 && d.name != "weight" {
			warnings = append(warnings, fmt.Sprintf("%s: Missing %s, defaulting to %.1f m", rowLabel, d.name, model.DefaultDimension))
		}
	}
	p.Volume = p.Length * p.Height * p.Width

	qty := 1
	if qtyStr := getCell(row, mapping.Quantity); qtyStr != "" {
		n, err := strconv.Atoi(qtyStr)
		if err != nil {
			return model.Product{}, 0, fmt.Sprintf("%s: Invalid quantity '%s'", rowLabel, qtyStr), nil
		}
		if n <= 0 {
			return model.Product{}, 0, fmt.Sprintf("%s: Quantity must be positive", rowLabel), nil
		}
		if n > MaxQuantity {
			return model.Product{}, 0, fmt.Sprintf("%s: Quantity %d exceeds the limit of %d", rowLabel, n, MaxQuantity), nil
		}
		qty = n
	}

	if p.Type != "" && model.ParseCategory(p.Type) == model.CategoryDefault {
		warnings = append(warnings, fmt.Sprintf("%s: Unknown cargo type '%s', using default colour", rowLabel, p.Type))
	}

	return p, qty, "", warnings
}

func isEmptyRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

func failed(format string, args ...interface{}) ImportResult {
	return ImportResult{Errors: []string{fmt.Sprintf(format, args...)}}
}

// ImportCSV reads a product list from a CSV file, detecting the delimiter
// and the header layout.
func ImportCSV(path string) ImportResult {
	data, err := os.ReadFile(path)
	if err != nil {
		return failed("Cannot open file: %v", err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return failed("File is empty")
	}

	delim := DetectCSVDelimiter(data)
	var notes []string
	if delim != ',' {
		notes = append(notes, fmt.Sprintf("Detected %s delimiter", delimiterNames[delim]))
	}
	records, err := readRecords(bytes.NewReader(data), delim)
	if err != nil {
		return failed("Cannot read CSV: %v", err)
	}
	if len(records) == 0 {
		return failed("File is empty")
	}
	return importFromRows(records, "Line", notes)
}

// ImportCSVFromReader is ImportCSV for an already open stream with a known
// delimiter.
func ImportCSVFromReader(r io.Reader, delim rune) ImportResult {
	records, err := readRecords(r, delim)
	if err != nil {
		return failed("Cannot read CSV: %v", err)
	}
	if len(records) == 0 {
		return failed("File is empty")
	}
	return importFromRows(records, "Line", nil)
}

// ImportExcel reads a product list from the first sheet of an .xlsx file.
func ImportExcel(path string) ImportResult {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return failed("Cannot open Excel file: %v", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return failed("Excel file has no sheets")
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return failed("Cannot read Excel data: %v", err)
	}
	if len(rows) == 0 {
		return failed("Sheet is empty")
	}
	return importFromRows(rows, "Row", nil)
}

// looksLikeHeader catches header rows with unknown names by checking for
// text in the positional length column.
func looksLikeHeader(row []string) bool {
	if len(row) <= positionalColumns.Length {
		return false
	}
	_, err := strconv.ParseFloat(strings.TrimSpace(row[positionalColumns.Length]), 64)
	return err != nil
}

// importFromRows turns sheet rows into products, repeating each product by
// its quantity. Row errors are collected and the row is dropped.
func importFromRows(rows [][]string, rowPrefix string, notes []string) ImportResult {
	result := ImportResult{Warnings: notes}
	if len(rows) == 0 {
		result.Errors = append(result.Errors, "No data rows found")
		return result
	}

	mapping, hasHeader := DetectColumns(rows[0])
	skipFirst := hasHeader || looksLikeHeader(rows[0])
	if hasHeader {
		var missing []string
		for _, c := range []struct {
			name string
			idx  int
		}{{"Length", mapping.Length}, {"Height", mapping.Height}, {"Width", mapping.Width}} {
			if c.idx < 0 {
				missing = append(missing, c.name)
			}
		}
		if len(missing) > 0 {
			result.Errors = append(result.Errors, "Required columns not found in header: "+strings.Join(missing, ", "))
			return result
		}
	}
	if skipFirst {
		result.Warnings = append(result.Warnings, "Detected header row, skipping")
		rows = rows[1:]
	}

	first := 1
	if skipFirst {
		first = 2
	}
	for i, row := range rows {
		if isEmptyRow(row) {
			continue
		}
		label := fmt.Sprintf("%s %d", rowPrefix, first+i)
		product, qty, errMsg, warnings := parseRow(row, mapping, label, len(result.Products))
		if errMsg != "" {
			result.Errors = append(result.Errors, errMsg)
			continue
		}
		result.Warnings = append(result.Warnings, warnings...)
		for n := 0; n < qty; n++ {
			result.Products = append(result.Products, product)
		}
	}
	return result
}

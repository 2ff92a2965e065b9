// Package importer provides CSV and Excel import functionality for screen
// layouts. It supports automatic delimiter detection, flexible column
// mapping, and case-insensitive header recognition.
package importer

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
)

// ScreenSpec is one imported screen row: an aspect ratio and an optional
// position on the wallpaper.
type ScreenSpec struct {
	RatioW int
	RatioH int
	X      int
	Y      int
}

// ImportResult holds the results of an import operation.
type ImportResult struct {
	Screens  []ScreenSpec
	Errors   []string
	Warnings []string
}

// ColumnMapping maps semantic column roles to their indices in the data.
type ColumnMapping struct {
	RatioW int
	RatioH int
	X      int
	Y      int
}

// headerAliases maps canonical column names to their accepted aliases (all lowercase).
var headerAliases = map[string][]string{
	"ratio_w": {"ratio_w", "ratio w", "ratiow", "rw", "ratio width", "aspect_w", "aspect w", "width ratio"},
	"ratio_h": {"ratio_h", "ratio h", "ratioh", "rh", "ratio height", "aspect_h", "aspect h", "height ratio"},
	"x":       {"x", "pos_x", "pos x", "left", "offset_x", "offset x"},
	"y":       {"y", "pos_y", "pos y", "top", "offset_y", "offset y"},
}

// DetectCSVDelimiter reads the file content and determines the most likely CSV delimiter.
// It tries comma, semicolon, tab, and pipe. The delimiter that produces the most
// consistent (non-one) column count across lines wins.
func DetectCSVDelimiter(data []byte) rune {
	candidates := []rune{',', ';', '\t', '|'}
	bestDelimiter := ','
	bestScore := 0

	for _, delim := range candidates {
		reader := csv.NewReader(bytes.NewReader(data))
		reader.Comma = delim
		reader.LazyQuotes = true
		reader.FieldsPerRecord = -1 // Allow variable field counts

		records, err := reader.ReadAll()
		if err != nil || len(records) < 1 {
			continue
		}

		firstCols := len(records[0])
		if firstCols < 2 {
			continue
		}

		score := 0
		for _, row := range records {
			if len(row) == firstCols {
				score++
			}
		}

		// Prefer delimiters with higher consistency and more columns
		weighted := score*10 + firstCols
		if weighted > bestScore {
			bestScore = weighted
			bestDelimiter = delim
		}
	}

	return bestDelimiter
}

// DetectColumns examines a header row and returns a ColumnMapping.
// It performs case-insensitive matching against known aliases for each column role.
// Returns the mapping and true if a header was detected, or a default positional
// mapping and false if no header was found.
func DetectColumns(row []string) (ColumnMapping, bool) {
	mapping := ColumnMapping{
		RatioW: -1,
		RatioH: -1,
		X:      -1,
		Y:      -1,
	}

	isHeader := false
	for i, cell := range row {
		normalized := strings.ToLower(strings.TrimSpace(cell))
		for role, aliases := range headerAliases {
			for _, alias := range aliases {
				if normalized == alias {
					isHeader = true
					switch role {
					case "ratio_w":
						if mapping.RatioW == -1 {
							mapping.RatioW = i
						}
					case "ratio_h":
						if mapping.RatioH == -1 {
							mapping.RatioH = i
						}
					case "x":
						if mapping.X == -1 {
							mapping.X = i
						}
					case "y":
						if mapping.Y == -1 {
							mapping.Y = i
						}
					}
				}
			}
		}
	}

	if !isHeader {
		// Fall back to positional mapping: RatioW, RatioH, X, Y
		return ColumnMapping{
			RatioW: 0,
			RatioH: 1,
			X:      2,
			Y:      3,
		}, false
	}

	return mapping, true
}

// getCell safely retrieves a cell value from a row by column index.
// Returns empty string if the index is out of range or negative.
func getCell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

// parseRow extracts a ScreenSpec from a row using the given column mapping.
// Returns the spec, any error message, and any warning message.
func parseRow(row []string, mapping ColumnMapping, rowLabel string) (ScreenSpec, string, string) {
	ratioWStr := getCell(row, mapping.RatioW)
	if ratioWStr == "" {
		return ScreenSpec{}, fmt.Sprintf("%s: Missing ratio width value", rowLabel), ""
	}
	ratioW, err := strconv.Atoi(ratioWStr)
	if err != nil {
		return ScreenSpec{}, fmt.Sprintf("%s: Invalid ratio width '%s'", rowLabel, ratioWStr), ""
	}

	ratioHStr := getCell(row, mapping.RatioH)
	if ratioHStr == "" {
		return ScreenSpec{}, fmt.Sprintf("%s: Missing ratio height value", rowLabel), ""
	}
	ratioH, err := strconv.Atoi(ratioHStr)
	if err != nil {
		return ScreenSpec{}, fmt.Sprintf("%s: Invalid ratio height '%s'", rowLabel, ratioHStr), ""
	}

	if ratioW <= 0 || ratioH <= 0 {
		return ScreenSpec{}, fmt.Sprintf("%s: Ratio values must be positive", rowLabel), ""
	}

	spec := ScreenSpec{RatioW: ratioW, RatioH: ratioH}

	// Optional position columns, default to the origin
	var warning string
	if xStr := getCell(row, mapping.X); xStr != "" {
		x, err := strconv.Atoi(xStr)
		if err != nil {
			warning = fmt.Sprintf("%s: Invalid X position '%s', defaulting to 0", rowLabel, xStr)
		} else {
			spec.X = x
		}
	}
	if yStr := getCell(row, mapping.Y); yStr != "" {
		y, err := strconv.Atoi(yStr)
		if err != nil {
			warning = fmt.Sprintf("%s: Invalid Y position '%s', defaulting to 0", rowLabel, yStr)
		} else {
			spec.Y = y
		}
	}

	return spec, "", warning
}

// isEmptyRow returns true if the row has no meaningful content.
func isEmptyRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

// ImportCSV imports screen specs from a CSV file.
// It automatically detects the delimiter and maps columns by header names.
// Supports comma, semicolon, tab, and pipe delimiters.
func ImportCSV(path string) ImportResult {
	result := ImportResult{}

	data, err := os.ReadFile(path)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot open file: %v", err))
		return result
	}

	if len(bytes.TrimSpace(data)) == 0 {
		result.Errors = append(result.Errors, "File is empty")
		return result
	}

	delimiter := DetectCSVDelimiter(data)
	if delimiter != ',' {
		delimName := map[rune]string{';': "semicolon", '\t': "tab", '|': "pipe"}[delimiter]
		result.Warnings = append(result.Warnings, fmt.Sprintf("Detected %s delimiter", delimName))
	}

	reader := csv.NewReader(bytes.NewReader(data))
	reader.Comma = delimiter
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot read CSV: %v", err))
		return result
	}

	if len(records) == 0 {
		result.Errors = append(result.Errors, "File is empty")
		return result
	}

	result = importFromRows(records, "Line", result.Warnings)
	return result
}

// ImportCSVFromReader imports screen specs from a CSV reader with a specific
// delimiter. This is useful for testing or when the delimiter is already known.
func ImportCSVFromReader(reader io.Reader, delimiter rune) ImportResult {
	result := ImportResult{}

	csvReader := csv.NewReader(reader)
	csvReader.Comma = delimiter
	csvReader.LazyQuotes = true
	csvReader.FieldsPerRecord = -1

	records, err := csvReader.ReadAll()
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot read CSV: %v", err))
		return result
	}

	if len(records) == 0 {
		result.Errors = append(result.Errors, "File is empty")
		return result
	}

	return importFromRows(records, "Line", nil)
}

// ImportExcel imports screen specs from an Excel (.xlsx, .xls) file.
// Reads the first sheet and auto-detects column mapping from headers.
func ImportExcel(path string) ImportResult {
	result := ImportResult{}

	f, err := excelize.OpenFile(path)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot open Excel file: %v", err))
		return result
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		result.Errors = append(result.Errors, "Excel file has no sheets")
		return result
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot read Excel data: %v", err))
		return result
	}

	if len(rows) == 0 {
		result.Errors = append(result.Errors, "Sheet is empty")
		return result
	}

	return importFromRows(rows, "Row", nil)
}

// importFromRows is the shared import logic for both CSV and Excel data.
// It detects headers, maps columns, and parses each row into screen specs.
func importFromRows(rows [][]string, rowPrefix string, initialWarnings []string) ImportResult {
	result := ImportResult{
		Warnings: initialWarnings,
	}

	if len(rows) == 0 {
		result.Errors = append(result.Errors, "No data rows found")
		return result
	}

	mapping, hasHeader := DetectColumns(rows[0])
	startRow := 0
	if hasHeader {
		startRow = 1
		result.Warnings = append(result.Warnings, "Detected header row, skipping")

		missing := []string{}
		if mapping.RatioW == -1 {
			missing = append(missing, "Ratio W")
		}
		if mapping.RatioH == -1 {
			missing = append(missing, "Ratio H")
		}
		if len(missing) > 0 {
			result.Errors = append(result.Errors, fmt.Sprintf("Required columns not found in header: %s", strings.Join(missing, ", ")))
			return result
		}
	} else {
		// No header: if the first cell is not numeric the row might be an
		// unrecognized header. Skip it but keep positional mapping.
		if len(rows[0]) >= 2 {
			if _, err := strconv.Atoi(strings.TrimSpace(rows[0][0])); err != nil {
				startRow = 1
				result.Warnings = append(result.Warnings, "Detected header row, skipping")
			}
		}
	}

	for i := startRow; i < len(rows); i++ {
		row := rows[i]
		lineNum := i + 1

		if isEmptyRow(row) {
			continue
		}

		rowLabel := fmt.Sprintf("%s %d", rowPrefix, lineNum)
		spec, errMsg, warning := parseRow(row, mapping, rowLabel)

		if errMsg != "" {
			result.Errors = append(result.Errors, errMsg)
			continue
		}
		if warning != "" {
			result.Warnings = append(result.Warnings, warning)
		}

		result.Screens = append(result.Screens, spec)
	}

	return result
}

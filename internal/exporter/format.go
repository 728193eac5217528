package exporter

import (
	"fmt"
	"strconv"
	"strings"
)

// Format is an output encoding for a report
type Format string

const (
	FormatJSON Format = "json"
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
)

// Formats lists every supported format
var Formats = []Format{FormatJSON, FormatCSV, FormatXLSX}

// ParseFormat accepts a format name case-insensitively; "" means JSON
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case "":
		return FormatJSON, nil
	case FormatJSON, FormatCSV, FormatXLSX:
		return f, nil
	default:
		return "", fmt.Errorf("unsupported format %q (want json, csv or xlsx)", s)
	}
}

// ContentType returns the MIME type used when serving the format
func (f Format) ContentType() string {
	switch f {
	case FormatCSV:
		return "text/csv; charset=utf-8"
	case FormatXLSX:
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	default:
		return "application/json"
	}
}

// Extension returns the file extension, dot included
func (f Format) Extension() string {
	return "." + string(f)
}

// formatFloat renders a float for CSV with up to 4 decimal places and no
// trailing zeros
func formatFloat(f float64) string {
	s := strconv.FormatFloat(f, 'f', 4, 64)
	s = strings.TrimRight(s, "0")
	return strings.TrimSuffix(s, ".")
}

// formatCell renders a table cell for CSV output
func formatCell(v interface{}) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case int:
		return strconv.Itoa(val)
	case float64:
		return formatFloat(val)
	case *float64:
		if val == nil {
			return ""
		}
		return formatFloat(*val)
	default:
		return fmt.Sprint(val)
	}
}

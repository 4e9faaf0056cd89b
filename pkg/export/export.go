// Package export renders tabular timetable data into downloadable files.
package export

import "fmt"

// Format identifies a supported export encoding.
type Format string

const (
	FormatCSV Format = "csv"
	FormatPDF Format = "pdf"
)

// ContentType returns the MIME type served for the format.
func (f Format) ContentType() string {
	switch f {
	case FormatCSV:
		return "text/csv; charset=utf-8"
	case FormatPDF:
		return "application/pdf"
	default:
		return "application/octet-stream"
	}
}

// Filename builds a download name with the format's extension.
func (f Format) Filename(base string) string {
	return fmt.Sprintf("%s.%s", base, f)
}

// Dataset defines tabular export content. Rows are positional with one cell
// per header; missing cells render empty. Title and Subtitle are only used
// by document formats.
type Dataset struct {
	Title    string
	Subtitle string
	Headers  []string
	Rows     [][]string
}

func (d Dataset) cell(row []string, i int) string {
	if i < len(row) {
		return row[i]
	}
	return ""
}

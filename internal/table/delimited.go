package table

import (
	"bufio"
	"io"
	"strconv"
	"strings"
)

// DelimitedReader reads tables whose first non-blank line is a header and
// whose fields are separated by a single delimiter. Rows with a field count
// other than the header's are skipped. Values are returned untrimmed.
type DelimitedReader struct {
	scanner *bufio.Scanner
	sep     string
	header  []string
	row     Row
	done    bool
}

// NewDelimitedReader returns a reader over r splitting fields on sep.
func NewDelimitedReader(r io.Reader, sep rune) *DelimitedReader {
	return &DelimitedReader{scanner: newLineScanner(r), sep: string(sep)}
}

// Next advances to the next data row.
func (r *DelimitedReader) Next() bool {
	if r.done {
		return false
	}
	for r.scanner.Scan() {
		line := r.scanner.Text()
		if r.header == nil {
			if strings.TrimSpace(line) == "" {
				continue
			}
			r.header = headerNames(strings.Split(line, r.sep))
			continue
		}

		fields := strings.Split(line, r.sep)
		if len(fields) != len(r.header) {
			continue
		}
		row := make(Row, len(fields))
		for i, name := range r.header {
			row[name] = fields[i]
		}
		r.row = row
		return true
	}
	r.done = true
	r.row = nil
	return false
}

// Row returns the current row.
func (r *DelimitedReader) Row() Row { return r.row }

// Err returns the first read error.
func (r *DelimitedReader) Err() error { return scanErr(r.scanner) }

func headerNames(fields []string) []string {
	names := make([]string, len(fields))
	seen := make(map[string]bool, len(fields))
	for i, f := range fields {
		name := strings.ToLower(strings.TrimSpace(f))
		if name == "" || seen[name] {
			name = strconv.Itoa(i)
		}
		seen[name] = true
		names[i] = name
	}
	return names
}

package table

import (
	"bufio"
	"io"
	"regexp"
	"strconv"
	"strings"
)

// rulerPattern matches lines made only of runs of '=' or '-', each run
// optionally followed by one whitespace character.
var rulerPattern = regexp.MustCompile(`^((=+|-+)\s?)+$`)

type span struct {
	name  string
	start int
	end   int
}

// FixedWidthReader reads tables laid out like
//
//	ID    NAME
//	===== ==========
//	10384 BERLIN-TEMP
//
// The line above a ruler names the columns, the ruler fixes their spans and
// the row width. A row of any other width drops the structure until the next
// ruler, so several re-headered tables may follow each other in one stream.
type FixedWidthReader struct {
	scanner  *bufio.Scanner
	previous string
	columns  []span // nil while no structure is known
	width    int
	row      Row
	done     bool
}

// NewFixedWidthReader returns a reader over r.
func NewFixedWidthReader(r io.Reader) *FixedWidthReader {
	return &FixedWidthReader{scanner: newLineScanner(r)}
}

// Next advances to the next data row.
func (r *FixedWidthReader) Next() bool {
	if r.done {
		return false
	}
	for r.scanner.Scan() {
		line := []rune(r.scanner.Text())
		header := r.previous
		r.previous = string(line)

		if rulerPattern.MatchString(string(line)) {
			r.columns = columnsFromRuler(line, []rune(header))
			r.width = len(line)
			continue
		}
		if r.columns == nil {
			continue
		}
		if len(line) != r.width {
			r.columns = nil
			continue
		}

		row := make(Row, len(r.columns))
		for _, c := range r.columns {
			row[c.name] = sliceRunes(line, c.start, c.end)
		}
		r.row = row
		return true
	}
	r.done = true
	r.row = nil
	return false
}

// Row returns the current row.
func (r *FixedWidthReader) Row() Row { return r.row }

// Err returns the first read error.
func (r *FixedWidthReader) Err() error { return scanErr(r.scanner) }

func columnsFromRuler(ruler, header []rune) []span {
	var cols []span
	seen := make(map[string]bool)
	for i := 0; i < len(ruler); {
		ch := ruler[i]
		if ch != '=' && ch != '-' {
			i++
			continue
		}
		j := i
		for j < len(ruler) && ruler[j] == ch {
			j++
		}
		name := strings.ToLower(strings.TrimSpace(sliceRunes(header, i, j)))
		if name == "" || seen[name] {
			name = strconv.Itoa(i)
		}
		seen[name] = true
		cols = append(cols, span{name: name, start: i, end: j})
		i = j
	}
	return cols
}

// sliceRunes returns s[start:end] clipped to the bounds of s.
func sliceRunes(s []rune, start, end int) string {
	if start >= len(s) {
		return ""
	}
	if end > len(s) {
		end = len(s)
	}
	return string(s[start:end])
}

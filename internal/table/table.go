// Package table recovers rows from plain-text tables that carry no schema
// up front: fixed-width tables underlined by ruler lines, and delimited
// tables with a header line.
package table

import (
	"bufio"
	"fmt"
	"io"

	"github.com/couchcryptid/weather-forecast-service/internal/domain"
)

// Row maps lower-cased column names to raw cell values.
type Row map[string]string

// Reader yields rows one at a time. Readers are single-pass.
type Reader interface {
	Next() bool
	Row() Row
	Err() error
}

// ReadAll drains r.
func ReadAll(r Reader) ([]Row, error) {
	var rows []Row
	for r.Next() {
		rows = append(rows, r.Row())
	}
	if err := r.Err(); err != nil {
		return rows, err
	}
	return rows, nil
}

const maxLineSize = 1 << 20

func newLineScanner(r io.Reader) *bufio.Scanner {
	s := bufio.NewScanner(r)
	s.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	return s
}

func scanErr(s *bufio.Scanner) error {
	if err := s.Err(); err != nil {
		return fmt.Errorf("read table: %w: %w", domain.ErrParse, err)
	}
	return nil
}

package table

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func readDelimited(t *testing.T, text string) []Row {
	t.Helper()
	rows, err := ReadAll(NewDelimitedReader(strings.NewReader(text), ';'))
	require.NoError(t, err)
	return rows
}

func TestDelimitedReader_HeaderNormalized(t *testing.T) {
	text := "# WarnCellID; Name ;Kurzname\n" +
		"805111000;Stadt Dortmund;Dortmund\n"

	rows := readDelimited(t, text)
	require.Len(t, rows, 1)
	assert.Equal(t, Row{
		"# warncellid": "805111000",
		"name":         "Stadt Dortmund",
		"kurzname":     "Dortmund",
	}, rows[0])
}

func TestDelimitedReader_SkipsRowsWithWrongFieldCount(t *testing.T) {
	text := "a;b;c\n" +
		"1;2;3\n" +
		"1;2\n" +
		"1;2;3;4\n" +
		"\n" +
		"4;5;6\n"

	rows := readDelimited(t, text)
	require.Len(t, rows, 2)
	assert.Equal(t, Row{"a": "1", "b": "2", "c": "3"}, rows[0])
	assert.Equal(t, Row{"a": "4", "b": "5", "c": "6"}, rows[1])
}

func TestDelimitedReader_LeadingBlankLines(t *testing.T) {
	rows := readDelimited(t, "\n  \nid;name\n1;x\n")
	require.Len(t, rows, 1)
	assert.Equal(t, Row{"id": "1", "name": "x"}, rows[0])
}

func TestDelimitedReader_EmptyHeaderNames(t *testing.T) {
	rows := readDelimited(t, "id;;id\n1;2;3\n")
	require.Len(t, rows, 1)
	assert.Equal(t, Row{"id": "1", "1": "2", "2": "3"}, rows[0])
}

func TestDelimitedReader_ValuesKeepWhitespace(t *testing.T) {
	rows := readDelimited(t, "id;name\n 1 ; x \n")
	require.Len(t, rows, 1)
	assert.Equal(t, " x ", rows[0]["name"])
}

func TestDelimitedReader_OtherSeparator(t *testing.T) {
	rows, err := ReadAll(NewDelimitedReader(strings.NewReader("a,b\n1,2\n"), ','))
	require.NoError(t, err)
	assert.Equal(t, []Row{{"a": "1", "b": "2"}}, rows)
}

func TestDelimitedReader_Empty(t *testing.T) {
	assert.Empty(t, readDelimited(t, ""))
	assert.Empty(t, readDelimited(t, "only;header\n"))
}

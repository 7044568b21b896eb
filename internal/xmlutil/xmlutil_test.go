package xmlutil

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDecoder_Latin1(t *testing.T) {
	doc := append([]byte(`<?xml version="1.0" encoding="ISO-8859-1"?><name>M`), 0xdc, 'N', 'S', 'T', 'E', 'R')
	doc = append(doc, []byte(`</name>`)...)

	var v struct {
		Name string `xml:",chardata"`
	}
	require.NoError(t, NewDecoder(bytes.NewReader(doc)).Decode(&v))
	assert.Equal(t, "MÜNSTER", v.Name)
}

func TestNewDecoder_UnknownCharset(t *testing.T) {
	var v struct{}
	err := NewDecoder(bytes.NewReader([]byte(`<?xml version="1.0" encoding="x-klingon"?><a/>`))).Decode(&v)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "x-klingon")
}

package alert

import (
	"os"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/couchcryptid/weather-forecast-service/internal/domain"
)

func decodeFile(t *testing.T, name string) *Document {
	t.Helper()
	f, err := os.Open(name)
	require.NoError(t, err)
	defer f.Close()

	doc, err := Decode(f)
	require.NoError(t, err)
	return doc
}

func decodeString(t *testing.T, s string) *Document {
	t.Helper()
	doc, err := Decode(strings.NewReader(s))
	require.NoError(t, err)
	return doc
}

func TestDocument_Warning(t *testing.T) {
	doc := decodeFile(t, "testdata/frost_commune.xml")
	assert.Equal(t, "Actual", doc.Status)
	assert.Equal(t, "Alert", doc.MsgType)

	w, ok, err := doc.Warning()
	require.NoError(t, err)
	require.True(t, ok)

	assert.Equal(t, domain.WarningFrost, w.Type)
	assert.Equal(t, domain.SeverityMinor, w.Severity)
	assert.Equal(t, domain.CertaintyLikely, w.Certainty)
	assert.Equal(t, "FROST", w.ShortText)
	assert.Equal(t, "Amtliche WARNUNG vor FROST", w.Headline)
	assert.Contains(t, w.FullText, "leichter Frost")
	assert.Equal(t, time.Date(2024, 3, 14, 21, 0, 0, 0, time.UTC), w.StartTime)
	assert.Equal(t, time.Date(2024, 3, 15, 9, 0, 0, 0, time.UTC), w.EndTime)
}

func TestDocument_Warning_NoInfo(t *testing.T) {
	doc := decodeString(t, `<alert xmlns="urn:oasis:names:tc:emergency:cap:1.2"><identifier>x</identifier></alert>`)

	_, ok, err := doc.Warning()
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestDocument_Warning_Defaults(t *testing.T) {
	doc := decodeString(t, `<alert xmlns="urn:oasis:names:tc:emergency:cap:1.2"><info>
<event>TEST</event>
<eventCode><valueName>ii</valueName><value>247</value></eventCode>
<onset>soon</onset>
</info></alert>`)

	w, ok, err := doc.Warning()
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, domain.WarningHeat, w.Type, "code system matches case-insensitively")
	assert.Equal(t, domain.SeverityUnknown, w.Severity)
	assert.Equal(t, domain.CertaintyUnknown, w.Certainty)
	assert.Equal(t, domain.MinTime, w.StartTime)
	assert.Equal(t, domain.MaxTime, w.EndTime)
	assert.Empty(t, w.Headline)
}

func TestDocument_Warning_MissingEventCode(t *testing.T) {
	doc := decodeString(t, `<alert><info><event>X</event>
<eventCode><valueName>GROUP</valueName><value>22</value></eventCode></info></alert>`)

	w, ok, err := doc.Warning()
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, domain.WarningGeneral, w.Type)
}

func TestDocument_Warning_InvalidSeverity(t *testing.T) {
	doc := decodeString(t, `<alert><identifier>a1</identifier><info><severity>dreadful</severity></info></alert>`)

	_, _, err := doc.Warning()
	require.ErrorIs(t, err, domain.ErrInvalidClassificationInput)
	assert.Contains(t, err.Error(), "a1")
}

func TestDocument_Warning_InvalidCertainty(t *testing.T) {
	doc := decodeString(t, `<alert><info><certainty>maybe</certainty></info></alert>`)

	_, _, err := doc.Warning()
	require.ErrorIs(t, err, domain.ErrInvalidClassificationInput)
}

func TestDocument_AppliesToCell(t *testing.T) {
	doc := decodeFile(t, "testdata/frost_commune.xml")

	assert.True(t, doc.AppliesToCell(domain.WarningCell{ID: "805913000"}))
	assert.True(t, doc.AppliesToCell(domain.WarningCell{ID: "805978000"}), "any area matches")
	assert.False(t, doc.AppliesToCell(domain.WarningCell{ID: "105111000"}))
	assert.False(t, doc.AppliesToCell(domain.WarningCell{}))
}

func TestDocument_AppliesToCell_CaseInsensitive(t *testing.T) {
	doc := decodeString(t, `<alert><info><area><geocode><value>ABC123</value></geocode></area></info></alert>`)
	assert.True(t, doc.AppliesToCell(domain.WarningCell{ID: "abc123"}))
}

// Location matching is intentionally left unimplemented.
func TestDocument_AppliesToLocation_Unsupported(t *testing.T) {
	doc := decodeFile(t, "testdata/frost_commune.xml")

	ok, err := doc.AppliesToLocation(domain.Location{Latitude: 51.5, Longitude: 7.5})
	require.ErrorIs(t, err, domain.ErrUnsupported)
	assert.False(t, ok)
}

func TestDecode_Malformed(t *testing.T) {
	_, err := Decode(strings.NewReader("<alert><info>"))
	require.ErrorIs(t, err, domain.ErrParse)
}

package backup

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/dori/larder/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleItems() []model.Item {
	return []model.Item{
		{ID: "a", Name: "Milk", Date: "2026-09-07", Genre: "Dairy", Area: "Fridge"},
		{ID: "b", Name: "Rice", Date: "2027-01-01", Genre: "Grains", Area: "Pantry", Remarks: "opened"},
	}
}

func TestExportRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Export(&buf, sampleItems()))

	got, err := Parse(&buf)
	require.NoError(t, err)
	assert.Equal(t, sampleItems(), got)
}

func TestExportIsPrettyPrinted(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Export(&buf, sampleItems()))

	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "[\n"))
	assert.Contains(t, out, "  {")
	assert.True(t, strings.HasSuffix(out, "\n"))
}

func TestExportEmptyCollection(t *testing.T) {
	var buf bytes.Buffer
	assert.ErrorIs(t, Export(&buf, nil), ErrEmptyCollection)
	assert.Zero(t, buf.Len())
}

func TestWriteFileRejectsEmptyBeforeCreating(t *testing.T) {
	path := filepath.Join(t.TempDir(), "backup.json")

	assert.ErrorIs(t, WriteFile(path, nil), ErrEmptyCollection)
	_, err := os.Stat(path)
	assert.True(t, os.IsNotExist(err), "rejected export must not leave a file")
}

func TestWriteFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "backup.json")
	require.NoError(t, WriteFile(path, sampleItems()))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	got, err := Parse(f)
	require.NoError(t, err)
	assert.Len(t, got, 2)
}

func TestParseRejectsNonArray(t *testing.T) {
	cases := map[string]string{
		"object":  `{"name": "Milk", "date": "2026-09-07"}`,
		"scalar":  `42`,
		"string":  `"backup"`,
		"garbage": `not json at all`,
		"empty":   ``,
	}
	for name, payload := range cases {
		t.Run(name, func(t *testing.T) {
			got, err := Parse(strings.NewReader(payload))
			assert.Error(t, err)
			assert.Nil(t, got)
		})
	}

	// Only the structured non-array payloads carry the sentinel
	_, err := Parse(strings.NewReader(`{"a": 1}`))
	assert.ErrorIs(t, err, ErrNotArray)
}

func TestParseToleratesMissingFields(t *testing.T) {
	payload := `[{"name": "Old entry", "date": "2024-05-01"}]`

	got, err := Parse(strings.NewReader(payload))
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Old entry", got[0].Name)
	assert.Empty(t, got[0].Genre)
	assert.Empty(t, got[0].Area)
	assert.Empty(t, got[0].ID)
}

func TestParseEmptyArray(t *testing.T) {
	got, err := Parse(strings.NewReader(`[]`))
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestFilename(t *testing.T) {
	date := time.Date(2026, 8, 31, 15, 4, 5, 0, time.UTC)
	assert.Equal(t, "larder_backup_2026-08-31.json", Filename(date))
}

package pleiades_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgerrors "github.com/isawnyu/aligncheck/pkg/errors"
	"github.com/isawnyu/aligncheck/pkg/pleiades"
)

func writeIndex(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "wikidata.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadIndexFirstAlignmentWins(t *testing.T) {
	path := writeIndex(t, `{
		"https://pleiades.stoa.org/places/579885": {
			"alignments": [
				"https://www.geonames.org/264371",
				"https://www.wikidata.org/wiki/Q1524",
				"https://www.wikidata.org/wiki/Q9999"
			]
		}
	}`)

	index, err := pleiades.LoadIndex(path)
	require.NoError(t, err)
	assert.Equal(t, pleiades.Index{
		"https://pleiades.stoa.org/places/579885": "https://www.wikidata.org/wiki/Q1524",
	}, index)
}

func TestLoadIndexLastAlignmentPick(t *testing.T) {
	path := writeIndex(t, `{
		"https://pleiades.stoa.org/places/579885": {
			"alignments": [
				"https://www.wikidata.org/wiki/Q1524",
				"https://www.wikidata.org/wiki/Q9999"
			]
		}
	}`)

	index, err := pleiades.LoadIndex(path, pleiades.WithAlignmentPick(pleiades.PickLast))
	require.NoError(t, err)
	assert.Equal(t, "https://www.wikidata.org/wiki/Q9999",
		index["https://pleiades.stoa.org/places/579885"])
}

func TestLoadIndexIgnoresForeignKeys(t *testing.T) {
	path := writeIndex(t, `{
		"https://example.org/not-a-place": {
			"alignments": ["https://www.wikidata.org/wiki/Q1"]
		},
		"https://pleiades.stoa.org/places/1": {
			"alignments": ["https://www.wikidata.org/wiki/Q2"]
		}
	}`)

	index, err := pleiades.LoadIndex(path)
	require.NoError(t, err)
	assert.Len(t, index, 1)
	assert.Contains(t, index, "https://pleiades.stoa.org/places/1")
}

func TestLoadIndexOmitsUnalignedPlaces(t *testing.T) {
	path := writeIndex(t, `{
		"https://pleiades.stoa.org/places/1": {
			"alignments": ["https://www.geonames.org/264371"]
		},
		"https://pleiades.stoa.org/places/2": {
			"alignments": []
		}
	}`)

	index, err := pleiades.LoadIndex(path)
	require.NoError(t, err)
	assert.Empty(t, index)
}

func TestLoadIndexMalformedJSON(t *testing.T) {
	path := writeIndex(t, `{"https://pleiades.stoa.org/places/1": {`)

	_, err := pleiades.LoadIndex(path)
	require.Error(t, err)

	var parseErr *pkgerrors.ParseError
	assert.True(t, errors.As(err, &parseErr))
}

func TestLoadIndexTopLevelNotObject(t *testing.T) {
	path := writeIndex(t, `["https://pleiades.stoa.org/places/1"]`)

	_, err := pleiades.LoadIndex(path)
	require.Error(t, err)

	var parseErr *pkgerrors.ParseError
	assert.True(t, errors.As(err, &parseErr))
}

func TestLoadIndexMissingAlignments(t *testing.T) {
	path := writeIndex(t, `{
		"https://pleiades.stoa.org/places/1": {"title": "Roma"}
	}`)

	_, err := pleiades.LoadIndex(path)
	require.Error(t, err)
	assert.True(t, pkgerrors.IsValidationError(err))
	assert.Contains(t, err.Error(), "alignments")
}

func TestLoadIndexAlignmentsNotArray(t *testing.T) {
	path := writeIndex(t, `{
		"https://pleiades.stoa.org/places/1": {
			"alignments": "https://www.wikidata.org/wiki/Q1"
		}
	}`)

	_, err := pleiades.LoadIndex(path)
	require.Error(t, err)
	assert.True(t, pkgerrors.IsValidationError(err))
}

func TestLoadIndexMissingFile(t *testing.T) {
	_, err := pleiades.LoadIndex(filepath.Join(t.TempDir(), "absent.json"))
	require.Error(t, err)

	var ioErr *pkgerrors.IOError
	assert.True(t, errors.As(err, &ioErr))
}

func TestIndexPlaces(t *testing.T) {
	index := pleiades.Index{
		"https://pleiades.stoa.org/places/1": "https://www.wikidata.org/wiki/Q1",
		"https://pleiades.stoa.org/places/2": "https://www.wikidata.org/wiki/Q2",
	}
	assert.ElementsMatch(t, []string{
		"https://pleiades.stoa.org/places/1",
		"https://pleiades.stoa.org/places/2",
	}, index.Places())
}

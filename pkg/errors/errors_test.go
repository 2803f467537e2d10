package errors_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	pkgerrors "github.com/isawnyu/aligncheck/pkg/errors"
)

func TestNew(t *testing.T) {
	err := pkgerrors.New("test error")
	assert.NotNil(t, err)
	assert.Equal(t, "test error", err.Error())
}

func TestValidationError(t *testing.T) {
	t.Run("with field", func(t *testing.T) {
		err := &pkgerrors.ValidationError{
			Field:   "pleiades",
			Message: "cannot be empty",
		}
		assert.Equal(t, "validation failed for field pleiades: cannot be empty", err.Error())
		assert.True(t, errors.Is(err, pkgerrors.ErrInvalidInput))
	})

	t.Run("without field", func(t *testing.T) {
		err := &pkgerrors.ValidationError{
			Message: "malformed row",
		}
		assert.Equal(t, "validation failed: malformed row", err.Error())
		assert.True(t, pkgerrors.IsValidationError(err))
	})

	t.Run("constructor", func(t *testing.T) {
		err := pkgerrors.NewValidationError("item", "", "row 3 has no item URI")
		assert.Equal(t, "validation failed for field item: row 3 has no item URI", err.Error())
		assert.True(t, pkgerrors.IsValidationError(err))
	})
}

func TestParseError(t *testing.T) {
	t.Run("with file", func(t *testing.T) {
		err := pkgerrors.NewParseError("json", "wikidata.json", "unexpected end of input", nil)
		assert.Equal(t, "parse error in json file wikidata.json: unexpected end of input", err.Error())
	})

	t.Run("with line", func(t *testing.T) {
		err := &pkgerrors.ParseError{
			Format:  "csv",
			File:    "wd2all.csv",
			Line:    7,
			Message: "wrong number of fields",
		}
		assert.Equal(t, "parse error in csv at wd2all.csv:7: wrong number of fields", err.Error())
	})

	t.Run("unwrap", func(t *testing.T) {
		base := errors.New("bad syntax")
		err := pkgerrors.WrapParse("json", "index.json", base)
		assert.True(t, errors.Is(err, base))
	})

	t.Run("wrap nil", func(t *testing.T) {
		assert.Nil(t, pkgerrors.WrapParse("json", "index.json", nil))
	})
}

func TestIOError(t *testing.T) {
	t.Run("with path", func(t *testing.T) {
		base := errors.New("permission denied")
		err := pkgerrors.NewIOError("write", "/data/out.csv", base)
		assert.Equal(t, "IO error during write of /data/out.csv: permission denied", err.Error())
		assert.True(t, errors.Is(err, base))
	})

	t.Run("wrap nil", func(t *testing.T) {
		assert.Nil(t, pkgerrors.WrapIO("read", "/data/in.csv", nil))
	})
}

func TestConfigError(t *testing.T) {
	err := pkgerrors.NewConfigError("delimiter", `unsupported delimiter ";"`, nil)
	assert.Equal(t, `configuration error in delimiter: unsupported delimiter ";"`, err.Error())
}

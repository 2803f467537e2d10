// Package wikidata loads the Wikidata query-service export: the tabular
// file of items that cite Pleiades places, one citation per row.
package wikidata

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/isawnyu/aligncheck/pkg/errors"
	"github.com/isawnyu/aligncheck/pkg/gazetteer"
	"github.com/isawnyu/aligncheck/pkg/logging"
)

// Row is one record of the export, keyed by column name. All columns
// present in the source file are retained.
type Row map[string]string

// Export holds the loaded dataset and the reverse indexes derived from
// it in a single pass. All fields are read-only after LoadExport
// returns.
type Export struct {
	// Rows maps each item URI to its full row. When an item appears in
	// multiple rows, the last row read is kept.
	Rows map[string]Row

	// Citations maps each item URI to the set of place URIs it cites.
	// An item spread across multiple rows accumulates one membership
	// per row; a set larger than one is a single-value constraint
	// violation surfaced later by reconciliation.
	Citations map[string]map[string]struct{}

	// Representative maps each cited place URI to one citing item URI,
	// used to locate a row for that place when reporting. Which citing
	// item is kept is a loader policy (last row wins by default).
	Representative map[string]string

	// MultiplyCited is the set of place URIs that appeared in more
	// than one row of the export.
	MultiplyCited map[string]struct{}

	// TotalRows is the number of data rows read, header excluded.
	TotalRows int
}

// CitedPlaces returns the union of all place URIs cited by any item.
func (e *Export) CitedPlaces() []string {
	places := make([]string, 0, len(e.Representative))
	for puri := range e.Representative {
		places = append(places, puri)
	}
	return places
}

// RowForPlace returns the representative row for a cited place URI.
func (e *Export) RowForPlace(puri string) (Row, bool) {
	wuri, ok := e.Representative[puri]
	if !ok {
		return nil, false
	}
	row, ok := e.Rows[wuri]
	return row, ok
}

// RepresentativePick selects which citing item represents a place that
// is cited by more than one row.
type RepresentativePick int

const (
	// PickLastRow keeps the item from the last row citing the place.
	// This is the historical behavior and the default.
	PickLastRow RepresentativePick = iota

	// PickFirstRow keeps the item from the first row citing the place.
	PickFirstRow
)

// loader holds configurable loading policy.
type loader struct {
	delimiter rune
	pick      RepresentativePick
}

// Option configures the export loader.
type Option func(*loader)

// WithDelimiter sets the field delimiter. When unset, the delimiter is
// inferred from the file extension: tab for .tsv/.tab, comma otherwise.
func WithDelimiter(delimiter rune) Option {
	return func(l *loader) {
		l.delimiter = delimiter
	}
}

// WithRepresentativePick sets the tie-break used when a place is cited
// by more than one row.
func WithRepresentativePick(pick RepresentativePick) Option {
	return func(l *loader) {
		l.pick = pick
	}
}

// LoadExport reads the export at path and builds the item and place
// indexes. Rows lacking a value in the required `item` or `pleiades`
// columns abort the load: the derived sets are meaningless unless the
// dataset is complete.
func LoadExport(path string, opts ...Option) (*Export, error) {
	l := &loader{pick: PickLastRow}
	for _, opt := range opts {
		opt(l)
	}
	if l.delimiter == 0 {
		l.delimiter = delimiterForPath(path)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, errors.WrapIO("open", path, err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.Comma = l.delimiter

	header, err := reader.Read()
	if err == io.EOF {
		return nil, errors.NewParseError("csv", path, "file is empty", nil)
	}
	if err != nil {
		return nil, errors.WrapParse("csv", path, err)
	}

	columns := make(map[string]int, len(header))
	for i, name := range header {
		columns[strings.TrimSpace(name)] = i
	}
	for _, required := range []string{gazetteer.ColumnItem, gazetteer.ColumnPleiades} {
		if _, ok := columns[required]; !ok {
			return nil, errors.NewValidationError(required, path,
				fmt.Sprintf("required column %q is missing from the header", required))
		}
	}

	export := &Export{
		Rows:           make(map[string]Row),
		Citations:      make(map[string]map[string]struct{}),
		Representative: make(map[string]string),
		MultiplyCited:  make(map[string]struct{}),
	}

	line := 1
	count := 0
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			return nil, errors.WrapParse("csv", path, err)
		}

		row := make(Row, len(header))
		for name, i := range columns {
			row[name] = record[i]
		}

		wuri := row[gazetteer.ColumnItem]
		pid := row[gazetteer.ColumnPleiades]
		if wuri == "" {
			return nil, errors.NewValidationError(gazetteer.ColumnItem, line,
				fmt.Sprintf("row %d has no item URI", line))
		}
		if pid == "" {
			return nil, errors.NewValidationError(gazetteer.ColumnPleiades, line,
				fmt.Sprintf("row %d has no pleiades ID", line))
		}

		puri := gazetteer.PlaceURI(pid)
		export.Rows[wuri] = row

		citations, ok := export.Citations[wuri]
		if !ok {
			citations = make(map[string]struct{})
			export.Citations[wuri] = citations
		}
		citations[puri] = struct{}{}

		if _, seen := export.Representative[puri]; seen {
			export.MultiplyCited[puri] = struct{}{}
			if l.pick == PickLastRow {
				export.Representative[puri] = wuri
			}
		} else {
			export.Representative[puri] = wuri
		}
		count++
	}
	export.TotalRows = count

	logging.Info().
		Str("path", path).
		Int("rows", count).
		Int("items", len(export.Rows)).
		Msg("Loaded Wikidata export")
	logging.Debug().
		Strs("fieldnames", header).
		Msg("Export columns")

	return export, nil
}

// delimiterForPath infers the field delimiter from the file extension.
func delimiterForPath(path string) rune {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".tsv", ".tab":
		return '\t'
	default:
		return ','
	}
}

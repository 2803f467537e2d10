// Package report renders the collections produced by reconciliation
// into the review files published alongside the datasets, plus the
// human-facing summary message. It re-derives nothing: every row and
// count comes straight from the engine's output.
package report

import (
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/isawnyu/aligncheck/pkg/errors"
	"github.com/isawnyu/aligncheck/pkg/gazetteer"
	"github.com/isawnyu/aligncheck/pkg/logging"
	"github.com/isawnyu/aligncheck/pkg/pleiades"
	"github.com/isawnyu/aligncheck/pkg/reconcile"
	"github.com/isawnyu/aligncheck/pkg/wikidata"
)

// Review file names, stable across releases because downstream
// curation workflows link to them.
const (
	FilePleiadesNotInWikidata = "pleiades_not_in_wikidata.csv"
	FileWikidataNotInPleiades = "wikidata_not_in_pleiades.csv"
	FileMultiPlaceItems       = "wikidata_that_cite_multiple_pleiades.csv"
	FileMultiItemPlaces       = "pleiades_cited_by_multiple_wikidata.json"
)

// defaultBaseURL is where the published copies of the review files
// live; the summary message links there.
const defaultBaseURL = "https://github.com/isawnyu/pleiades_wikidata/blob/main/data/"

// Emitter writes review files into a single output directory.
type Emitter struct {
	outputDir string
	baseURL   string
	printer   *message.Printer
}

// Option configures an Emitter.
type Option func(*Emitter)

// WithBaseURL overrides the published-data URL used in the summary
// message.
func WithBaseURL(baseURL string) Option {
	return func(e *Emitter) {
		e.baseURL = baseURL
	}
}

// NewEmitter creates an Emitter that writes into outputDir.
func NewEmitter(outputDir string, opts ...Option) *Emitter {
	e := &Emitter{
		outputDir: outputDir,
		baseURL:   defaultBaseURL,
		printer:   message.NewPrinter(language.English),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// WriteAll emits the four review files. Rows are sorted
// lexicographically by URI so repeated runs over identical inputs
// produce byte-identical files.
func (e *Emitter) WriteAll(result *reconcile.Result, index pleiades.Index, export *wikidata.Export) error {
	if err := os.MkdirAll(e.outputDir, 0o755); err != nil {
		return errors.WrapIO("create", e.outputDir, err)
	}

	if err := e.writePleiadesOnly(result, index); err != nil {
		return err
	}
	if err := e.writeWikidataOnly(result, export); err != nil {
		return err
	}
	if err := e.writeMultiPlaceItems(result); err != nil {
		return err
	}
	return e.writeMultiItemPlaces(result)
}

// writePleiadesOnly emits the places that link out to Wikidata without
// a citation back.
func (e *Emitter) writePleiadesOnly(result *reconcile.Result, index pleiades.Index) error {
	rows := [][]string{{"pleiades_uri", "wikidata_uri"}}
	for _, puri := range result.SortedOnlyPleiades() {
		rows = append(rows, []string{puri, index[puri]})
	}
	return e.writeCSV(FilePleiadesNotInWikidata, rows)
}

// writeWikidataOnly emits the representative row of every place cited
// by Wikidata without an outbound alignment, with columns renamed per
// the review-file conventions.
func (e *Emitter) writeWikidataOnly(result *reconcile.Result, export *wikidata.Export) error {
	header := []string{
		"pleiades_uri",
		"wikidata_uri",
		"wikidata_label",
		"wikidata_description",
		"wikidata_coordinates",
	}
	for _, column := range gazetteer.IdentifierColumns() {
		header = append(header, gazetteer.RenameColumn(column))
	}

	rows := [][]string{header}
	for _, puri := range result.SortedOnlyWikidata() {
		row, ok := export.RowForPlace(puri)
		if !ok {
			// Representative and Rows are built from the same pass, so
			// a missing row means the loader's invariant is broken.
			return errors.NewValidationError("pleiades_uri", puri,
				"no export row recorded for cited place")
		}

		renamed := make(map[string]string, len(row))
		for column, value := range row {
			renamed[gazetteer.RenameColumn(column)] = value
		}
		renamed["pleiades_uri"] = puri
		// Well-formed WKT coordinates are normalized; text that does
		// not parse as a point is carried through verbatim.
		if pt, ok := row.Coordinates(); ok {
			renamed["wikidata_coordinates"] = wikidata.FormatPoint(pt)
		}

		out := make([]string, len(header))
		for i, column := range header {
			out[i] = renamed[column]
		}
		rows = append(rows, out)
	}
	return e.writeCSV(FileWikidataNotInPleiades, rows)
}

// writeMultiPlaceItems emits the items violating the single-value
// constraint.
func (e *Emitter) writeMultiPlaceItems(result *reconcile.Result) error {
	rows := [][]string{{"wikidata_uri"}}
	for _, wuri := range result.SortedMultiPlaceItems() {
		rows = append(rows, []string{wuri})
	}
	return e.writeCSV(FileMultiPlaceItems, rows)
}

// writeMultiItemPlaces emits the places violating the distinct-values
// constraint as a JSON object of place URI to citing item URIs.
func (e *Emitter) writeMultiItemPlaces(result *reconcile.Result) error {
	violations := make(map[string][]string, len(result.MultiItemPlaces))
	for _, puri := range result.SortedMultiItemPlaces() {
		violations[puri] = result.CitingItems(puri)
	}

	data, err := json.MarshalIndent(violations, "", "  ")
	if err != nil {
		return errors.WrapParse("json", FileMultiItemPlaces, err)
	}
	data = append(data, '\n')

	path := filepath.Join(e.outputDir, FileMultiItemPlaces)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return errors.WrapIO("write", path, err)
	}

	logging.Info().
		Str("path", path).
		Int("entries", len(violations)).
		Msg("Wrote multiply-cited places")
	return nil
}

// writeCSV writes rows (header included) to name in the output
// directory.
func (e *Emitter) writeCSV(name string, rows [][]string) error {
	path := filepath.Join(e.outputDir, name)
	f, err := os.Create(path)
	if err != nil {
		return errors.WrapIO("create", path, err)
	}

	writer := csv.NewWriter(f)
	if err := writer.WriteAll(rows); err != nil {
		f.Close()
		return errors.WrapIO("write", path, err)
	}
	if err := f.Close(); err != nil {
		return errors.WrapIO("close", path, err)
	}

	logging.Info().
		Str("path", path).
		Int("rows", len(rows)-1).
		Msg("Wrote review file")
	return nil
}

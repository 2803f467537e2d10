package report

import (
	"strings"

	"github.com/isawnyu/aligncheck/pkg/reconcile"
)

// Summary composes the announcement paragraph printed after a run,
// pairing each count with the review file that holds those rows. The
// date is a human-facing stamp chosen by the caller, not a timestamp
// of this run.
func (e *Emitter) Summary(result *reconcile.Result, date string) string {
	s := result.Summary

	var b strings.Builder
	e.printer.Fprintf(&b,
		"Pleiades <-> Wikidata and other gazetteer alignments updated %s:\n\n", date)
	e.printer.Fprintf(&b,
		"%d Wikidata entities include a Pleiades ID property and %d Pleiades entities include a Wikidata ID property. Of these, %d are mutual (bidirectional).\n\n",
		s.ExportRows, s.AlignedPlaces, s.Bidirectional)
	e.printer.Fprintf(&b,
		"%d Pleiades resources to which Wikidata links can be added after they are checked: %s%s\n\n",
		s.OnlyWikidata, e.baseURL, FileWikidataNotInPleiades)
	e.printer.Fprintf(&b,
		"%d Wikidata items to which Pleiades IDs can be added after they are checked: %s%s",
		s.OnlyPleiades, e.baseURL, FilePleiadesNotInWikidata)

	if result.HasViolations() {
		e.printer.Fprintf(&b,
			"\n\n%d Wikidata items cite more than one Pleiades place: %s%s\n\n",
			s.MultiPlaceItems, e.baseURL, FileMultiPlaceItems)
		e.printer.Fprintf(&b,
			"%d Pleiades places are cited by more than one Wikidata item: %s%s",
			s.MultiItemPlaces, e.baseURL, FileMultiItemPlaces)
	}

	return b.String()
}

// Package reconcile cross-references the Pleiades alignment index with
// the Wikidata export and classifies every link between the two
// authorities.
//
// A place is bidirectional when it carries an outbound Wikidata
// alignment and at least one Wikidata item cites it. The match is
// deliberately lenient: both directions need not name the same
// counterpart, mirroring the policy of the upstream datasets.
package reconcile

import (
	"github.com/isawnyu/aligncheck/pkg/pleiades"
	"github.com/isawnyu/aligncheck/pkg/wikidata"
)

// Reconcile computes the full classification of links between the two
// authorities. It is a pure function of the loaded inputs: every call
// builds fresh containers and neither argument is mutated.
func Reconcile(index pleiades.Index, export *wikidata.Export) *Result {
	result := &Result{
		Bidirectional:   make(map[string]struct{}),
		OnlyPleiades:    make(map[string]struct{}),
		OnlyWikidata:    make(map[string]struct{}),
		MultiPlaceItems: make(map[string]struct{}),
		MultiItemPlaces: make(map[string]map[string]struct{}),
	}

	// A place is bidirectional when it has an outbound alignment and
	// any inbound citation. The remaining index keys link out only.
	for puri := range index {
		if _, cited := export.Representative[puri]; cited {
			result.Bidirectional[puri] = struct{}{}
		} else {
			result.OnlyPleiades[puri] = struct{}{}
		}
	}

	// Cited places without an outbound alignment link in only.
	for puri := range export.Representative {
		if _, ok := result.Bidirectional[puri]; !ok {
			result.OnlyWikidata[puri] = struct{}{}
		}
	}

	// Citation sets larger than one violate the single-value
	// constraint. The same pass gathers the distinct citing items of
	// every multiply-cited place, so unrelated items are never
	// rescanned.
	for wuri, citations := range export.Citations {
		if len(citations) > 1 {
			result.MultiPlaceItems[wuri] = struct{}{}
		}
		for puri := range citations {
			if _, multi := export.MultiplyCited[puri]; !multi {
				continue
			}
			items, ok := result.MultiItemPlaces[puri]
			if !ok {
				items = make(map[string]struct{})
				result.MultiItemPlaces[puri] = items
			}
			items[wuri] = struct{}{}
		}
	}

	// A place cited twice by the same item is duplication, not a
	// distinct-values violation. It needs two distinct citing items.
	for puri, items := range result.MultiItemPlaces {
		if len(items) < 2 {
			delete(result.MultiItemPlaces, puri)
		}
	}

	result.Summary = Summary{
		AlignedPlaces:   len(index),
		CitedPlaces:     len(export.Representative),
		ExportRows:      export.TotalRows,
		Bidirectional:   len(result.Bidirectional),
		OnlyPleiades:    len(result.OnlyPleiades),
		OnlyWikidata:    len(result.OnlyWikidata),
		MultiPlaceItems: len(result.MultiPlaceItems),
		MultiItemPlaces: len(result.MultiItemPlaces),
	}

	return result
}

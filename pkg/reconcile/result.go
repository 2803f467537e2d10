package reconcile

import (
	"fmt"
	"sort"
	"strings"
)

// Result holds the five derived collections of one reconciliation run.
// All sets are keyed by exact URI string equality and are read-only
// once Reconcile returns.
type Result struct {
	// Bidirectional is the set of place URIs with both an outbound
	// alignment and at least one inbound citation.
	Bidirectional map[string]struct{}

	// OnlyPleiades is the set of place URIs that link out to Wikidata
	// but receive no citation back.
	OnlyPleiades map[string]struct{}

	// OnlyWikidata is the set of place URIs cited by Wikidata items
	// but lacking an outbound alignment.
	OnlyWikidata map[string]struct{}

	// MultiPlaceItems is the set of item URIs citing more than one
	// place (single-value constraint violation).
	MultiPlaceItems map[string]struct{}

	// MultiItemPlaces maps each place URI cited by two or more
	// distinct items to the set of those items (distinct-values
	// constraint violation).
	MultiItemPlaces map[string]map[string]struct{}

	// Summary carries the counts of every collection above.
	Summary Summary
}

// Summary provides the counts of one reconciliation run.
type Summary struct {
	AlignedPlaces   int // places with a Wikidata alignment
	CitedPlaces     int // distinct places cited by any item
	ExportRows      int // rows in the Wikidata export
	Bidirectional   int
	OnlyPleiades    int
	OnlyWikidata    int
	MultiPlaceItems int
	MultiItemPlaces int
}

// HasViolations reports whether any multiplicity violation was found.
func (r *Result) HasViolations() bool {
	return len(r.MultiPlaceItems) > 0 || len(r.MultiItemPlaces) > 0
}

// SortedBidirectional returns the bidirectional place URIs in
// lexicographic order.
func (r *Result) SortedBidirectional() []string {
	return sortedKeys(r.Bidirectional)
}

// SortedOnlyPleiades returns the Pleiades-only place URIs in
// lexicographic order.
func (r *Result) SortedOnlyPleiades() []string {
	return sortedKeys(r.OnlyPleiades)
}

// SortedOnlyWikidata returns the Wikidata-only place URIs in
// lexicographic order.
func (r *Result) SortedOnlyWikidata() []string {
	return sortedKeys(r.OnlyWikidata)
}

// SortedMultiPlaceItems returns the violating item URIs in
// lexicographic order.
func (r *Result) SortedMultiPlaceItems() []string {
	return sortedKeys(r.MultiPlaceItems)
}

// SortedMultiItemPlaces returns the violating place URIs in
// lexicographic order; CitingItems returns each place's citing items,
// likewise sorted.
func (r *Result) SortedMultiItemPlaces() []string {
	places := make([]string, 0, len(r.MultiItemPlaces))
	for puri := range r.MultiItemPlaces {
		places = append(places, puri)
	}
	sort.Strings(places)
	return places
}

// CitingItems returns the sorted citing item URIs recorded for a
// multiply-cited place.
func (r *Result) CitingItems(puri string) []string {
	return sortedKeys(r.MultiItemPlaces[puri])
}

// String returns a one-line human-readable summary.
func (r *Result) String() string {
	parts := []string{
		fmt.Sprintf("%d bidirectional", r.Summary.Bidirectional),
		fmt.Sprintf("%d Pleiades-only", r.Summary.OnlyPleiades),
		fmt.Sprintf("%d Wikidata-only", r.Summary.OnlyWikidata),
	}
	if r.HasViolations() {
		parts = append(parts,
			fmt.Sprintf("%d items citing multiple places", r.Summary.MultiPlaceItems),
			fmt.Sprintf("%d places cited by multiple items", r.Summary.MultiItemPlaces))
	}
	return fmt.Sprintf("Reconciliation: %s", strings.Join(parts, ", "))
}

func sortedKeys(set map[string]struct{}) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

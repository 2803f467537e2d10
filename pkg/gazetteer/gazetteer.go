// Package gazetteer defines the URI vocabulary shared by the two
// authorities being reconciled: Pleiades, the ancient-world gazetteer,
// and Wikidata, the linked-data catalog that cites it.
package gazetteer

import "strings"

const (
	// PleiadesBase is the URI prefix of canonical Pleiades place resources.
	PleiadesBase = "https://pleiades.stoa.org/places/"

	// WikidataBase is the URI prefix of canonical Wikidata item pages.
	WikidataBase = "https://www.wikidata.org/wiki/"
)

// PlaceURI builds a canonical Pleiades place URI from a bare place ID,
// as found in the `pleiades` column of the Wikidata export.
func PlaceURI(id string) string {
	return PleiadesBase + id
}

// IsPlaceURI reports whether uri is a canonical Pleiades place URI.
func IsPlaceURI(uri string) bool {
	return strings.HasPrefix(uri, PleiadesBase)
}

// IsItemURI reports whether uri is a canonical Wikidata item URI.
func IsItemURI(uri string) bool {
	return strings.HasPrefix(uri, WikidataBase)
}

// PlaceID extracts the bare place ID from a canonical place URI.
// Returns the empty string if uri is not a place URI.
func PlaceID(uri string) string {
	if !IsPlaceURI(uri) {
		return ""
	}
	return strings.TrimPrefix(uri, PleiadesBase)
}

// Package pleiades loads the Pleiades alignment index: the JSON object
// that maps canonical place URIs to their outbound alignment URIs.
package pleiades

import (
	"fmt"
	"os"

	"github.com/tidwall/gjson"

	"github.com/isawnyu/aligncheck/pkg/errors"
	"github.com/isawnyu/aligncheck/pkg/gazetteer"
	"github.com/isawnyu/aligncheck/pkg/logging"
)

// Index maps each Pleiades place URI to its Wikidata alignment URI.
// Only places with at least one qualifying alignment appear as keys.
type Index map[string]string

// Places returns the set of place URIs carrying a Wikidata alignment.
func (idx Index) Places() []string {
	places := make([]string, 0, len(idx))
	for puri := range idx {
		places = append(places, puri)
	}
	return places
}

// AlignmentPick selects which qualifying alignment wins when a place
// record lists more than one Wikidata URI.
type AlignmentPick int

const (
	// PickFirst keeps the first qualifying alignment in source order.
	// This is the historical behavior and the default.
	PickFirst AlignmentPick = iota

	// PickLast keeps the last qualifying alignment in source order.
	PickLast
)

// loader holds configurable loading policy.
type loader struct {
	pick AlignmentPick
}

// Option configures the index loader.
type Option func(*loader)

// WithAlignmentPick sets the tie-break used when a place record lists
// multiple Wikidata alignments.
func WithAlignmentPick(pick AlignmentPick) Option {
	return func(l *loader) {
		l.pick = pick
	}
}

// LoadIndex reads the alignment index JSON at path and returns the
// place → Wikidata URI mapping. Keys outside the Pleiades URI base are
// ignored; places whose record lists no Wikidata alignment are omitted.
// A record without an `alignments` field is a data error.
func LoadIndex(path string, opts ...Option) (Index, error) {
	l := &loader{pick: PickFirst}
	for _, opt := range opts {
		opt(l)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.WrapIO("read", path, err)
	}

	if !gjson.ValidBytes(data) {
		return nil, errors.NewParseError("json", path, "file is not valid JSON", nil)
	}

	root := gjson.ParseBytes(data)
	if !root.IsObject() {
		return nil, errors.NewParseError("json", path, "top-level value is not an object", nil)
	}

	index := make(Index)
	var loadErr error

	root.ForEach(func(key, value gjson.Result) bool {
		puri := key.String()
		if !gazetteer.IsPlaceURI(puri) {
			return true
		}

		alignments := value.Get("alignments")
		if !alignments.Exists() {
			loadErr = errors.NewValidationError("alignments", puri,
				fmt.Sprintf("record for %s lacks an alignments field", puri))
			return false
		}
		if !alignments.IsArray() {
			loadErr = errors.NewValidationError("alignments", puri,
				fmt.Sprintf("alignments for %s is not an array", puri))
			return false
		}

		picked := ""
		alignments.ForEach(func(_, alignment gjson.Result) bool {
			uri := alignment.String()
			if !gazetteer.IsItemURI(uri) {
				return true
			}
			picked = uri
			// First match wins unless the policy asks for the last.
			return l.pick == PickLast
		})

		if picked != "" {
			index[puri] = picked
		}
		return true
	})

	if loadErr != nil {
		return nil, loadErr
	}

	logging.Info().
		Str("path", path).
		Int("entries", len(index)).
		Msg("Loaded Pleiades alignment index")

	return index, nil
}

package wikidata

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/paulmach/orb"

	"github.com/isawnyu/aligncheck/pkg/gazetteer"
)

// ParsePoint parses a WKT point literal as emitted by the Wikidata
// query service, e.g. "Point(12.4924 41.8902)" with longitude first.
// The boolean is false when s is empty or not a well-formed point;
// coordinate text is advisory, so callers carry the raw value through
// instead of failing.
func ParsePoint(s string) (orb.Point, bool) {
	s = strings.TrimSpace(s)
	if len(s) < len("Point( )") {
		return orb.Point{}, false
	}
	if !strings.EqualFold(s[:6], "Point(") || !strings.HasSuffix(s, ")") {
		return orb.Point{}, false
	}

	fields := strings.Fields(s[6 : len(s)-1])
	if len(fields) != 2 {
		return orb.Point{}, false
	}

	lon, err := strconv.ParseFloat(fields[0], 64)
	if err != nil {
		return orb.Point{}, false
	}
	lat, err := strconv.ParseFloat(fields[1], 64)
	if err != nil {
		return orb.Point{}, false
	}

	return orb.Point{lon, lat}, true
}

// FormatPoint renders a point in the canonical WKT form used by the
// Wikidata query service, longitude first.
func FormatPoint(pt orb.Point) string {
	return fmt.Sprintf("Point(%s %s)",
		strconv.FormatFloat(pt.Lon(), 'f', -1, 64),
		strconv.FormatFloat(pt.Lat(), 'f', -1, 64))
}

// Coordinates parses the row's coordinates column into a point.
func (r Row) Coordinates() (orb.Point, bool) {
	return ParsePoint(r[gazetteer.ColumnCoordinates])
}

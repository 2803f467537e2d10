package gazetteer

import (
	_ "embed"
	"fmt"
	"strings"

	"github.com/goccy/go-yaml"
)

// Core columns of the Wikidata export. `item` and `pleiades` are
// required; the rest are optional descriptive fields.
const (
	ColumnItem            = "item"
	ColumnPleiades        = "pleiades"
	ColumnItemLabel       = "itemLabel"
	ColumnItemDescription = "itemDescription"
	ColumnCoordinates     = "coordinates"
)

//go:embed columns.yaml
var columnsYAML []byte

// columnSchema mirrors the embedded columns.yaml document.
type columnSchema struct {
	IdentifierColumns []string `yaml:"identifier_columns"`
}

var identifierColumns []string

func init() {
	var schema columnSchema
	if err := yaml.Unmarshal(columnsYAML, &schema); err != nil {
		panic(fmt.Sprintf("gazetteer: embedded columns.yaml is invalid: %v", err))
	}
	identifierColumns = schema.IdentifierColumns
}

// IdentifierColumns returns the external-identifier column names of the
// Wikidata export, in emission order.
func IdentifierColumns() []string {
	cols := make([]string, len(identifierColumns))
	copy(cols, identifierColumns)
	return cols
}

// RenameColumn maps a Wikidata export column name to the name used in
// review CSV output. Core columns get explicit `wikidata_`-prefixed
// names; identifier columns lose their trailing plural suffix.
func RenameColumn(column string) string {
	switch column {
	case ColumnItem:
		return "wikidata_uri"
	case ColumnPleiades:
		return "pleiades_uri"
	case ColumnItemLabel:
		return "wikidata_label"
	case ColumnItemDescription:
		return "wikidata_description"
	case ColumnCoordinates:
		return "wikidata_coordinates"
	}
	if strings.HasSuffix(column, "s") {
		return strings.TrimSuffix(column, "s")
	}
	return column
}

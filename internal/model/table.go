package model

import "strings"

// Kind is the declared or inferred type of a column.
type Kind string

const (
	KindNumber Kind = "number"
	KindString Kind = "string"
	KindDate   Kind = "date"
)

// Column names of the DVF export handled by the schema.
const (
	ColMutationID   = "id_mutation"
	ColDate         = "date_mutation"
	ColSaleValue    = "valeur_fonciere"
	ColBuiltArea    = "surface_reelle_bati"
	ColRooms        = "nombre_pieces_principales"
	ColPropertyType = "type_local"
	ColPostalCode   = "code_postal"
	ColCommune      = "nom_commune"
	ColDepartment   = "code_departement"
	ColLatitude     = "latitude"
	ColLongitude    = "longitude"

	// ColPricePerArea is the derived column added by cleaning.
	ColPricePerArea = "prix_m2"
)

// SchemaColumns lists every column the schema maps to a RawTransaction field,
// with its declared kind.
var SchemaColumns = map[string]Kind{
	ColMutationID:   KindString,
	ColDate:         KindDate,
	ColSaleValue:    KindNumber,
	ColBuiltArea:    KindNumber,
	ColRooms:        KindNumber,
	ColPropertyType: KindString,
	ColPostalCode:   KindString,
	ColCommune:      KindString,
	ColDepartment:   KindString,
	ColLatitude:     KindNumber,
	ColLongitude:    KindNumber,
}

// Table is a loaded transaction file.
type Table struct {
	Columns      []string        // header order, normalized to lower case
	ExtraColumns []string        // columns outside the schema, in header order
	Kinds        map[string]Kind // column -> kind
	Delimiter    rune
	Encoding     string
	Rows         []RawTransaction
}

// Has reports whether the header contained column.
func (t Table) Has(column string) bool {
	column = strings.ToLower(strings.TrimSpace(column))
	for _, c := range t.Columns {
		if c == column {
			return true
		}
	}
	return false
}

// Len returns the number of rows.
func (t Table) Len() int { return len(t.Rows) }

// Clone deep-copies the table.
func (t Table) Clone() Table {
	c := t
	c.Columns = append([]string(nil), t.Columns...)
	c.ExtraColumns = append([]string(nil), t.ExtraColumns...)
	c.Kinds = make(map[string]Kind, len(t.Kinds))
	for k, v := range t.Kinds {
		c.Kinds[k] = v
	}
	c.Rows = make([]RawTransaction, len(t.Rows))
	for i, r := range t.Rows {
		c.Rows[i] = r.Clone()
	}
	return c
}

// CleanedTable is the output of cleaning: the input's shape plus derived rows.
type CleanedTable struct {
	Columns      []string
	ExtraColumns []string
	Kinds        map[string]Kind
	Rows         []CleanedTransaction
}

// Len returns the number of rows.
func (t CleanedTable) Len() int { return len(t.Rows) }

// Table returns the cleaned rows as a raw table, dropping the derived column.
func (t CleanedTable) Table() Table {
	raw := Table{
		Columns:      append([]string(nil), t.Columns...),
		ExtraColumns: append([]string(nil), t.ExtraColumns...),
		Kinds:        make(map[string]Kind, len(t.Kinds)),
		Rows:         make([]RawTransaction, len(t.Rows)),
	}
	for k, v := range t.Kinds {
		raw.Kinds[k] = v
	}
	for i, r := range t.Rows {
		raw.Rows[i] = r.RawTransaction.Clone()
	}
	return raw
}

package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// PropertyType values as they appear in the type_local column.
const (
	PropertyApartment  = "Appartement"
	PropertyHouse      = "Maison"
	PropertyDependency = "Dépendance"
	PropertyCommercial = "Local industriel. commercial ou assimilé"
)

// RawTransaction is one row of a DVF export as loaded from disk.
// Missing numeric cells are invalid NullDecimals; missing text cells are empty.
type RawTransaction struct {
	MutationID   string
	Date         time.Time // zero if missing
	SaleValue    decimal.NullDecimal
	BuiltArea    decimal.NullDecimal
	Rooms        *int
	PropertyType string
	PostalCode   string
	Commune      string
	Department   string
	Latitude     decimal.NullDecimal
	Longitude    decimal.NullDecimal
	Extra        []string // aligned with Table.ExtraColumns
}

// Clone returns a copy that shares no mutable state with r.
func (r RawTransaction) Clone() RawTransaction {
	c := r
	if r.Rooms != nil {
		n := *r.Rooms
		c.Rooms = &n
	}
	if r.Extra != nil {
		c.Extra = append([]string(nil), r.Extra...)
	}
	return c
}

// CleanedTransaction is a RawTransaction that survived cleaning.
type CleanedTransaction struct {
	RawTransaction
	PricePerArea decimal.Decimal // SaleValue / BuiltArea
}

// Year returns the mutation year, or 0 when the date is missing.
func (r RawTransaction) Year() int {
	if r.Date.IsZero() {
		return 0
	}
	return r.Date.Year()
}

package model

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTableHas(t *testing.T) {
	tbl := Table{Columns: []string{ColSaleValue, ColBuiltArea}}
	assert.True(t, tbl.Has("valeur_fonciere"))
	assert.True(t, tbl.Has(" Surface_Reelle_Bati "))
	assert.False(t, tbl.Has(ColCommune))
}

func TestTableCloneIsDeep(t *testing.T) {
	rooms := 3
	tbl := Table{
		Columns:      []string{ColSaleValue, "nature_mutation"},
		ExtraColumns: []string{"nature_mutation"},
		Kinds:        map[string]Kind{ColSaleValue: KindNumber},
		Rows: []RawTransaction{{
			SaleValue: decimal.NewNullDecimal(decimal.NewFromInt(100000)),
			Rooms:     &rooms,
			Extra:     []string{"Vente"},
		}},
	}

	c := tbl.Clone()
	*c.Rows[0].Rooms = 9
	c.Rows[0].Extra[0] = "Echange"
	c.Kinds[ColSaleValue] = KindString
	c.Columns[0] = "x"

	assert.Equal(t, 3, *tbl.Rows[0].Rooms)
	assert.Equal(t, "Vente", tbl.Rows[0].Extra[0])
	assert.Equal(t, KindNumber, tbl.Kinds[ColSaleValue])
	assert.Equal(t, ColSaleValue, tbl.Columns[0])
}

func TestCleanedTableToTable(t *testing.T) {
	ct := CleanedTable{
		Columns: []string{ColSaleValue, ColBuiltArea},
		Kinds:   map[string]Kind{ColSaleValue: KindNumber, ColBuiltArea: KindNumber},
		Rows: []CleanedTransaction{{
			RawTransaction: RawTransaction{
				Date:      time.Date(2022, 3, 1, 0, 0, 0, 0, time.UTC),
				SaleValue: decimal.NewNullDecimal(decimal.NewFromInt(100000)),
				BuiltArea: decimal.NewNullDecimal(decimal.NewFromInt(50)),
			},
			PricePerArea: decimal.NewFromInt(2000),
		}},
	}

	raw := ct.Table()
	require.Equal(t, 1, raw.Len())
	assert.Equal(t, ct.Columns, raw.Columns)
	assert.True(t, raw.Rows[0].SaleValue.Decimal.Equal(decimal.NewFromInt(100000)))
	assert.Equal(t, 2022, raw.Rows[0].Year())
}

func TestYearMissingDate(t *testing.T) {
	assert.Equal(t, 0, RawTransaction{}.Year())
}

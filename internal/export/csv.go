// Package export writes cleaned transactions back to delimited files.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/frankigoes6/ProjetFoncier/internal/model"
)

const dateFormat = "2006-01-02"

// Header returns the exported column order: the loaded columns followed by
// prix_m2. A loaded prix_m2 column is replaced by the derived one.
func Header(tbl model.CleanedTable) []string {
	header := make([]string, 0, len(tbl.Columns)+1)
	for _, col := range tbl.Columns {
		if col != model.ColPricePerArea {
			header = append(header, col)
		}
	}
	return append(header, model.ColPricePerArea)
}

// WriteCSV writes tbl as comma-separated UTF-8 with a header row.
func WriteCSV(w io.Writer, tbl model.CleanedTable) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	header := Header(tbl)
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	extraIdx := make(map[string]int, len(tbl.ExtraColumns))
	for i, col := range tbl.ExtraColumns {
		extraIdx[col] = i
	}

	for i, r := range tbl.Rows {
		if err := cw.Write(MarshalRow(r, header, extraIdx)); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}
	return cw.Error()
}

// WriteFile writes tbl to path, replacing any existing file.
func WriteFile(path string, tbl model.CleanedTable) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("closing %s: %w", path, cerr)
		}
	}()
	return WriteCSV(f, tbl)
}

// MarshalRow converts r to CSV cells in header order. extraIdx maps non-schema
// columns to their position in r.Extra.
func MarshalRow(r model.CleanedTransaction, header []string, extraIdx map[string]int) []string {
	row := make([]string, len(header))
	for i, col := range header {
		switch col {
		case model.ColMutationID:
			row[i] = r.MutationID
		case model.ColDate:
			if !r.Date.IsZero() {
				row[i] = r.Date.Format(dateFormat)
			}
		case model.ColSaleValue:
			row[i] = nullable(r.SaleValue)
		case model.ColBuiltArea:
			row[i] = nullable(r.BuiltArea)
		case model.ColRooms:
			if r.Rooms != nil {
				row[i] = strconv.Itoa(*r.Rooms)
			}
		case model.ColPropertyType:
			row[i] = r.PropertyType
		case model.ColPostalCode:
			row[i] = r.PostalCode
		case model.ColCommune:
			row[i] = r.Commune
		case model.ColDepartment:
			row[i] = r.Department
		case model.ColLatitude:
			row[i] = nullable(r.Latitude)
		case model.ColLongitude:
			row[i] = nullable(r.Longitude)
		case model.ColPricePerArea:
			row[i] = r.PricePerArea.String()
		default:
			if j, ok := extraIdx[col]; ok && j < len(r.Extra) {
				row[i] = r.Extra[j]
			}
		}
	}
	return row
}

func nullable(d decimal.NullDecimal) string {
	if !d.Valid {
		return ""
	}
	return d.Decimal.String()
}

package cleaner

import (
	"fmt"

	"github.com/frankigoes6/ProjetFoncier/internal/model"
)

// InvariantError describes one cleaned row that breaks an output invariant.
type InvariantError struct {
	Row         int // zero-based position in the cleaned table
	MutationID  string
	Description string
}

func (e InvariantError) Error() string {
	return fmt.Sprintf("row %d [%s]: %s", e.Row, e.MutationID, e.Description)
}

// Verify checks that every row has a positive sale value and built area and that
// its price per area equals sale value / built area. The ratio is only checked
// when both operands are valid.
func Verify(tbl model.CleanedTable) []InvariantError {
	var errs []InvariantError
	for i, r := range tbl.Rows {
		fail := func(format string, args ...any) {
			errs = append(errs, InvariantError{Row: i, MutationID: r.MutationID, Description: fmt.Sprintf(format, args...)})
		}

		valueOK := r.SaleValue.Valid && r.SaleValue.Decimal.IsPositive()
		areaOK := r.BuiltArea.Valid && r.BuiltArea.Decimal.IsPositive()
		if !valueOK {
			fail("sale value must be present and positive")
		}
		if !areaOK {
			fail("built area must be present and positive")
		}
		if !valueOK || !areaOK {
			continue
		}
		if want := PricePerArea(r.SaleValue.Decimal, r.BuiltArea.Decimal); !r.PricePerArea.Equal(want) {
			fail("price per area %s, want %s", r.PricePerArea, want)
		}
	}
	return errs
}

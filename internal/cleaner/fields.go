package cleaner

import (
	"strconv"
	"strings"
	"time"

	"github.com/frankigoes6/ProjetFoncier/internal/model"
)

// presence reports, per schema column, whether a row holds a value for it.
var presence = map[string]func(model.RawTransaction) bool{
	model.ColMutationID:   func(r model.RawTransaction) bool { return r.MutationID != "" },
	model.ColDate:         func(r model.RawTransaction) bool { return !r.Date.IsZero() },
	model.ColSaleValue:    func(r model.RawTransaction) bool { return r.SaleValue.Valid },
	model.ColBuiltArea:    func(r model.RawTransaction) bool { return r.BuiltArea.Valid },
	model.ColRooms:        func(r model.RawTransaction) bool { return r.Rooms != nil },
	model.ColPropertyType: func(r model.RawTransaction) bool { return r.PropertyType != "" },
	model.ColPostalCode:   func(r model.RawTransaction) bool { return r.PostalCode != "" },
	model.ColCommune:      func(r model.RawTransaction) bool { return r.Commune != "" },
	model.ColDepartment:   func(r model.RawTransaction) bool { return r.Department != "" },
	model.ColLatitude:     func(r model.RawTransaction) bool { return r.Latitude.Valid },
	model.ColLongitude:    func(r model.RawTransaction) bool { return r.Longitude.Valid },
}

const (
	nullCell = "\x00"
	fieldSep = "\x1f"
)

// rowKey returns a string equal for two rows exactly when every loaded field is equal.
// Numbers compare by value, so "250000" and "250000.00" collide.
func rowKey(r model.RawTransaction) string {
	var b strings.Builder
	write := func(s string) {
		b.WriteString(s)
		b.WriteString(fieldSep)
	}

	write(r.MutationID)
	if r.Date.IsZero() {
		write(nullCell)
	} else {
		write(r.Date.UTC().Format(time.RFC3339Nano))
	}
	for _, d := range []struct {
		valid bool
		s     func() string
	}{
		{r.SaleValue.Valid, r.SaleValue.Decimal.String},
		{r.BuiltArea.Valid, r.BuiltArea.Decimal.String},
		{r.Latitude.Valid, r.Latitude.Decimal.String},
		{r.Longitude.Valid, r.Longitude.Decimal.String},
	} {
		if d.valid {
			write(d.s())
		} else {
			write(nullCell)
		}
	}
	if r.Rooms == nil {
		write(nullCell)
	} else {
		write(strconv.Itoa(*r.Rooms))
	}
	write(r.PropertyType)
	write(r.PostalCode)
	write(r.Commune)
	write(r.Department)
	for _, e := range r.Extra {
		write(e)
	}
	return b.String()
}

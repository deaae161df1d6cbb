package cleaner

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/frankigoes6/ProjetFoncier/internal/model"
)

// ErrInvalidConfig is returned by Clean when Config fails validation.
var ErrInvalidConfig = errors.New("invalid cleaning config")

// Config holds the thresholds and required fields used by Clean.
// Zero bounds disable the corresponding filter unless noted otherwise.
type Config struct {
	// MinArea drops rows whose built area is below it. Areas <= 0 are always dropped.
	MinArea float64 `yaml:"min_area" split_words:"true"`
	// MaxArea drops rows whose built area exceeds it.
	MaxArea float64 `yaml:"max_area" split_words:"true"`
	// MinPrice drops rows whose sale value is below it. Values <= 0 are always dropped.
	MinPrice float64 `yaml:"min_price" split_words:"true"`
	// RequiredFields are column names that must hold a value for a row to be kept.
	RequiredFields []string `yaml:"required_fields" split_words:"true"`

	MinPricePerArea float64 `yaml:"min_price_per_area" split_words:"true"`
	MaxPricePerArea float64 `yaml:"max_price_per_area" split_words:"true"`
	MinYear         int     `yaml:"min_year" split_words:"true"`
	MaxYear         int     `yaml:"max_year" split_words:"true"`
}

// DefaultRequiredFields are the fields without which a transaction is unusable:
// sale value, built area, property type and location.
var DefaultRequiredFields = []string{
	model.ColSaleValue,
	model.ColBuiltArea,
	model.ColPropertyType,
	model.ColCommune,
	model.ColDepartment,
}

// DefaultConfig returns the documented defaults: areas in (0, 1000], any positive
// sale value, and DefaultRequiredFields.
func DefaultConfig() Config {
	return Config{
		MinArea:        0,
		MaxArea:        1000,
		MinPrice:       0,
		RequiredFields: append([]string(nil), DefaultRequiredFields...),
	}
}

// Validate checks bounds and that every required field is known to the schema.
func (c Config) Validate() error {
	for _, b := range []struct {
		name string
		v    float64
	}{
		{"min_area", c.MinArea},
		{"max_area", c.MaxArea},
		{"min_price", c.MinPrice},
		{"min_price_per_area", c.MinPricePerArea},
		{"max_price_per_area", c.MaxPricePerArea},
	} {
		if b.v < 0 {
			return fmt.Errorf("%w: %s must not be negative, got %g", ErrInvalidConfig, b.name, b.v)
		}
	}
	if c.MaxArea > 0 && c.MinArea > c.MaxArea {
		return fmt.Errorf("%w: min_area %g exceeds max_area %g", ErrInvalidConfig, c.MinArea, c.MaxArea)
	}
	if c.MaxPricePerArea > 0 && c.MinPricePerArea > c.MaxPricePerArea {
		return fmt.Errorf("%w: min_price_per_area %g exceeds max_price_per_area %g",
			ErrInvalidConfig, c.MinPricePerArea, c.MaxPricePerArea)
	}
	if c.MinYear < 0 || c.MaxYear < 0 {
		return fmt.Errorf("%w: years must not be negative", ErrInvalidConfig)
	}
	if c.MaxYear > 0 && c.MinYear > c.MaxYear {
		return fmt.Errorf("%w: min_year %d exceeds max_year %d", ErrInvalidConfig, c.MinYear, c.MaxYear)
	}
	for _, f := range c.RequiredFields {
		if _, ok := presence[f]; !ok {
			return fmt.Errorf("%w: unknown required field %q", ErrInvalidConfig, f)
		}
	}
	return nil
}

// bounds is Config converted once to decimals for row comparisons.
type bounds struct {
	minArea, maxArea, minPrice decimal.Decimal
	minPPA, maxPPA             decimal.Decimal
	minYear, maxYear           int
}

func (c Config) bounds() bounds {
	return bounds{
		minArea:  decimal.NewFromFloat(c.MinArea),
		maxArea:  decimal.NewFromFloat(c.MaxArea),
		minPrice: decimal.NewFromFloat(c.MinPrice),
		minPPA:   decimal.NewFromFloat(c.MinPricePerArea),
		maxPPA:   decimal.NewFromFloat(c.MaxPricePerArea),
		minYear:  c.MinYear,
		maxYear:  c.MaxYear,
	}
}

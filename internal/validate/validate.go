// Package validate holds the pure input validation for vehicle and trip
// forms. Functions here never return a Go error for user-shaped input:
// the outcome is a discriminated result carrying either the parsed values or
// the full list of violations (all of them, not just the first).
//
// Violations are identified by stable message keys with named arguments so
// the handler layer can render them in the active language.
package validate

import (
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/mvbarbosa/fuellog/internal/domain"
)

// Limits are the configured bounds user input is checked against.
type Limits struct {
	NameMin int
	NameMax int

	EfficiencyMin float64 // km/l
	EfficiencyMax float64

	MaxOdometerKm float64
	MaxTripKm     float64 // max distance of a single trip

	PriceMin float64
	PriceMax float64

	MaxEarnings float64
}

// DefaultLimits returns the stock bounds. Config may override any of them.
func DefaultLimits() Limits {
	return Limits{
		NameMin:       2,
		NameMax:       40,
		EfficiencyMin: 1,
		EfficiencyMax: 100,
		MaxOdometerKm: 9_999_999,
		MaxTripKm:     5_000,
		PriceMin:      0.01,
		PriceMax:      100,
		MaxEarnings:   100_000,
	}
}

// FieldError is one violation. MessageKey is an i18n key; Args feeds its
// named placeholders (e.g. {min}, {max}).
type FieldError struct {
	Field      string            `json:"field"`
	MessageKey string            `json:"message_key"`
	Args       map[string]string `json:"args,omitempty"`
}

// ParseDecimal parses a user-entered number, accepting the comma decimal
// separator ("12,5") by normalizing it to a dot before parsing.
func ParseDecimal(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	s = strings.ReplaceAll(s, ",", ".")
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// VehicleInput is the raw vehicle form, numbers still as entered.
type VehicleInput struct {
	Name       string
	Efficiency string
	Category   string
}

// VehicleData is the parsed form of a valid VehicleInput.
type VehicleData struct {
	Name       string
	Efficiency float64
	Category   domain.Category
}

// VehicleResult is the discriminated validation outcome.
type VehicleResult struct {
	Valid  bool
	Errors []FieldError
	Data   VehicleData
}

// Vehicle checks a vehicle form against the limits and returns every
// violation found.
func Vehicle(in VehicleInput, lim Limits) VehicleResult {
	var errs []FieldError

	name := strings.TrimSpace(in.Name)
	if n := utf8.RuneCountInString(name); n < lim.NameMin || n > lim.NameMax {
		errs = append(errs, FieldError{
			Field:      "name",
			MessageKey: "error.vehicle_name_length",
			Args:       map[string]string{"min": itoa(lim.NameMin), "max": itoa(lim.NameMax)},
		})
	}

	eff, ok := ParseDecimal(in.Efficiency)
	if !ok || eff < lim.EfficiencyMin || eff > lim.EfficiencyMax {
		errs = append(errs, FieldError{
			Field:      "efficiency",
			MessageKey: "error.efficiency_range",
			Args:       map[string]string{"min": ftoa(lim.EfficiencyMin), "max": ftoa(lim.EfficiencyMax)},
		})
	}

	cat := domain.Category(strings.TrimSpace(in.Category))
	if !cat.Valid() {
		errs = append(errs, FieldError{Field: "category", MessageKey: "error.category_unknown"})
	}

	if len(errs) > 0 {
		return VehicleResult{Errors: errs}
	}
	return VehicleResult{
		Valid: true,
		Data:  VehicleData{Name: name, Efficiency: eff, Category: cat},
	}
}

// TripInput is the raw trip form. Earnings may be blank: a blank value is
// valid and means "not supplied", which is distinct from zero.
type TripInput struct {
	Initial    string
	Final      string
	Efficiency string
	Price      string
	Earnings   string
	Category   string
}

// TripData is the parsed form of a valid TripInput.
type TripData struct {
	InitialKm     float64
	FinalKm       float64
	Efficiency    float64
	PricePerLiter float64
	Earnings      *float64 // nil when the field was blank
	Category      domain.Category
}

// TripResult is the discriminated validation outcome.
type TripResult struct {
	Valid  bool
	Errors []FieldError
	Data   TripData
}

// Trip checks a trip form against the limits and returns every violation
// found. Range checks that depend on another field (final vs. initial, trip
// distance) are only reported when both operands parsed.
func Trip(in TripInput, lim Limits) TripResult {
	var errs []FieldError

	initial, okInitial := ParseDecimal(in.Initial)
	if !okInitial || initial < 0 || initial > lim.MaxOdometerKm {
		errs = append(errs, FieldError{
			Field:      "initial_km",
			MessageKey: "error.initial_range",
			Args:       map[string]string{"max": ftoa(lim.MaxOdometerKm)},
		})
	}

	final, okFinal := ParseDecimal(in.Final)
	if !okFinal || final > lim.MaxOdometerKm {
		errs = append(errs, FieldError{
			Field:      "final_km",
			MessageKey: "error.final_range",
			Args:       map[string]string{"max": ftoa(lim.MaxOdometerKm)},
		})
	} else if okInitial && final <= initial {
		errs = append(errs, FieldError{Field: "final_km", MessageKey: "error.final_not_after_initial"})
	}

	if okInitial && okFinal && final-initial > lim.MaxTripKm {
		errs = append(errs, FieldError{
			Field:      "final_km",
			MessageKey: "error.trip_too_long",
			Args:       map[string]string{"max": ftoa(lim.MaxTripKm)},
		})
	}

	eff, ok := ParseDecimal(in.Efficiency)
	if !ok || eff < lim.EfficiencyMin || eff > lim.EfficiencyMax {
		errs = append(errs, FieldError{
			Field:      "efficiency",
			MessageKey: "error.efficiency_range",
			Args:       map[string]string{"min": ftoa(lim.EfficiencyMin), "max": ftoa(lim.EfficiencyMax)},
		})
	}

	price, ok := ParseDecimal(in.Price)
	if !ok || price < lim.PriceMin || price > lim.PriceMax {
		errs = append(errs, FieldError{
			Field:      "price",
			MessageKey: "error.price_range",
			Args:       map[string]string{"min": ftoa(lim.PriceMin), "max": ftoa(lim.PriceMax)},
		})
	}

	var earnings *float64
	if strings.TrimSpace(in.Earnings) != "" {
		v, ok := ParseDecimal(in.Earnings)
		if !ok || v < 0 || v > lim.MaxEarnings {
			errs = append(errs, FieldError{
				Field:      "earnings",
				MessageKey: "error.earnings_range",
				Args:       map[string]string{"max": ftoa(lim.MaxEarnings)},
			})
		} else {
			earnings = &v
		}
	}

	cat := domain.Category(strings.TrimSpace(in.Category))
	if !cat.Valid() {
		errs = append(errs, FieldError{Field: "category", MessageKey: "error.category_unknown"})
	}

	if len(errs) > 0 {
		return TripResult{Errors: errs}
	}
	return TripResult{
		Valid: true,
		Data: TripData{
			InitialKm:     initial,
			FinalKm:       final,
			Efficiency:    eff,
			PricePerLiter: price,
			Earnings:      earnings,
			Category:      cat,
		},
	}
}

func itoa(n int) string { return strconv.Itoa(n) }

// ftoa renders a bound for message placeholders without trailing zeros.
func ftoa(f float64) string { return strconv.FormatFloat(f, 'f', -1, 64) }

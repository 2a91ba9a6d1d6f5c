package domain

import (
	"time"

	"github.com/google/uuid"
)

// Trip is one logged fuel calculation. The derived fields (DistanceKm,
// Liters, Cost, Profit) are computed once at save time and frozen: a trip is
// immutable history and is never recomputed, even if the referenced vehicle's
// stored efficiency changes later.
//
// Derived values are stored at full float64 precision; rounding to display
// decimals happens only at render time.
type Trip struct {
	ID        uuid.UUID  `json:"id"`
	CreatedAt time.Time  `json:"created_at"`
	Category  Category   `json:"category"`
	VehicleID *uuid.UUID `json:"vehicle_id,omitempty"` // nil when logged without a saved vehicle

	InitialKm     float64 `json:"initial_km"`
	FinalKm       float64 `json:"final_km"`
	Efficiency    float64 `json:"efficiency"` // km/l used for this calculation
	PricePerLiter float64 `json:"price_per_liter"`

	DistanceKm float64  `json:"distance_km"`
	Liters     float64  `json:"liters"`
	Cost       float64  `json:"cost"`
	Earnings   *float64 `json:"earnings,omitempty"`
	Profit     *float64 `json:"profit,omitempty"` // absent when Earnings is absent, never zero-for-absent
}

// Settings holds the per-installation preferences, persisted under their own
// store key.
type Settings struct {
	Language string `json:"language"`
}

// Package domain contains the core data types for the fuel logbook service.
// This package has zero heavy dependencies and is imported by every other
// internal package (kv, repo, service, handler).
package domain

import (
	"time"

	"github.com/google/uuid"
)

// Category partitions all data by vehicle class. Filters, history, and
// statistics are always scoped to one category.
type Category string

const (
	CategoryCar        Category = "car"
	CategoryMotorcycle Category = "motorcycle"
)

// Categories lists every valid category, in display order.
var Categories = []Category{CategoryCar, CategoryMotorcycle}

// Valid reports whether c is one of the fixed category set.
func (c Category) Valid() bool {
	for _, v := range Categories {
		if c == v {
			return true
		}
	}
	return false
}

// Vehicle is a saved vehicle profile. Vehicles are created once and deleted
// by id; they are never updated in place. Efficiency is km per liter.
type Vehicle struct {
	ID         uuid.UUID `json:"id"`
	Name       string    `json:"name"`
	Efficiency float64   `json:"efficiency"`
	Category   Category  `json:"category"`
	CreatedAt  time.Time `json:"created_at"`
}

package domain

import "time"

// Backup is the export/import document. Sections are independent: an import
// may accept some sections and reject others (partial success is policy, see
// ImportReport).
type Backup struct {
	App        string    `json:"app"`
	Version    string    `json:"version"`
	ExportDate time.Time `json:"exportDate"`
	Vehicles   []Vehicle `json:"vehicles"`
	History    []Trip    `json:"history"`
	Settings   Settings  `json:"settings"`
}

// ImportReport describes the per-section outcome of an import. Accepted is
// true when at least one section was taken; section warnings carry the reason
// a section was skipped.
type ImportReport struct {
	Accepted bool     `json:"accepted"`
	Vehicles int      `json:"vehicles"` // records imported, -1 when the section was skipped
	Trips    int      `json:"trips"`
	Language string   `json:"language"`
	Warnings []string `json:"warnings,omitempty"`
}

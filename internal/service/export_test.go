package service

import "time"

// Clock hooks for tests to pin "now" to a fixed instant.

func (s *TripService) SetNow(now func() time.Time)   { s.now = now }
func (s *StatsService) SetNow(now func() time.Time)  { s.now = now }
func (s *BackupService) SetNow(now func() time.Time) { s.now = now }

// Package model contains domain models passed between layers.
package model

import "fmt"

// Known festivals and the year range covered by the dataset.
const (
	FestivalPinkpop  = "Pinkpop"
	FestivalLowlands = "Lowlands"

	MinYear = 2008
	MaxYear = 2019
)

// Performance represents one artist's appearance at one festival in one year.
// There is no identifier beyond the tuple itself; the same artist may appear
// in multiple years.
type Performance struct {
	Name     string `json:"name"`
	Festival string `json:"festival"`
	Year     int    `json:"year"`
}

// Validate checks the structural constraints of a performance.
func (p Performance) Validate() error {
	if p.Name == "" {
		return fmt.Errorf("%w: empty artist name", ErrInvalidPerformance)
	}
	if !ValidFestival(p.Festival) {
		return fmt.Errorf("%w: unknown festival %q", ErrInvalidPerformance, p.Festival)
	}
	if p.Year < MinYear || p.Year > MaxYear {
		return fmt.Errorf("%w: year %d outside %d-%d", ErrInvalidPerformance, p.Year, MinYear, MaxYear)
	}
	return nil
}

// ValidFestival reports whether name is one of the known festivals.
func ValidFestival(name string) bool {
	switch name {
	case FestivalPinkpop, FestivalLowlands:
		return true
	}
	return false
}

package model

// Slot is one bookable time window on one date. ID is the 1-based row
// position of the slot in the store and is stable for the row's lifetime.
type Slot struct {
	ID        int    `json:"id"`
	Date      string `json:"date"`
	Label     string `json:"label"`
	Capacity  int    `json:"capacity"`
	Taken     int    `json:"taken"`
	Available int    `json:"available"`
}

// Availability recomputes the derived available count, clamped at zero.
func (s *Slot) Availability() int {
	if avail := s.Capacity - s.Taken; avail > 0 {
		return avail
	}
	return 0
}

// Listing is the grouped availability view returned by the read path.
// Keys are date strings; slots keep their store row order within a date.
type Listing struct {
	Dates map[string][]Slot `json:"dates"`
}

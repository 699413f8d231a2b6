package models

// TicketFilters narrows a listing. Nil fields do not filter.
type TicketFilters struct {
	Origin          string
	Destination     string
	Company         string
	PriceMin        *float64
	PriceMax        *float64
	DepartureAfter  *string
	DepartureBefore *string
	MaxDuration     *int
}

func (f *TicketFilters) Empty() bool {
	return f == nil || (f.Origin == "" && f.Destination == "" && f.Company == "" &&
		f.PriceMin == nil && f.PriceMax == nil &&
		f.DepartureAfter == nil && f.DepartureBefore == nil && f.MaxDuration == nil)
}

package catalog

// NewAll builds the flight, train and bus catalogs in display order.
func NewAll(opts Options) ([]Catalog, error) {
	flights, err := NewFlightCatalog(opts)
	if err != nil {
		return nil, err
	}
	trains, err := NewTrainCatalog(opts)
	if err != nil {
		return nil, err
	}
	buses, err := NewBusCatalog(opts)
	if err != nil {
		return nil, err
	}
	return []Catalog{flights, trains, buses}, nil
}

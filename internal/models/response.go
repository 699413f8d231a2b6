package models

type BookingResponse struct {
	Message        string         `json:"message"`
	BookingID      string         `json:"bookingId"`
	BookingDetails BookingRequest `json:"bookingDetails"`
}

type ErrorResponse struct {
	Message string       `json:"message"`
	Errors  []FieldError `json:"errors,omitempty"`
}

type SearchMetadata struct {
	TotalResults      int      `json:"totalResults"`
	CatalogsQueried   int      `json:"catalogsQueried"`
	CatalogsSucceeded int      `json:"catalogsSucceeded"`
	CatalogsFailed    int      `json:"catalogsFailed"`
	FailedCatalogs    []string `json:"failedCatalogs,omitempty"`
	SearchTimeMs      int64    `json:"searchTimeMs"`
	CacheHit          bool     `json:"cacheHit"`
}

type SearchResponse struct {
	Metadata SearchMetadata `json:"metadata"`
	Tickets  []Ticket       `json:"tickets"`
}

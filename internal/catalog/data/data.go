package data

import _ "embed"

//go:embed flights.json
var FlightsData []byte

//go:embed trains.json
var TrainsData []byte

//go:embed buses.json
var BusesData []byte

package dto

import "time"

// ReadingResponse is one telemetry row. Field names are stable aliases and
// part of the client contract, independent of the store's column names.
type ReadingResponse struct {
	ID       int64     `json:"id"`
	Cliente  int64     `json:"cliente"`
	Local    string    `json:"local"`
	TempIn   float64   `json:"temp_in"`
	TempEx   float64   `json:"temp_ex"`
	HumIn    float64   `json:"hum_in"`
	HumEx    float64   `json:"hum_ex"`
	CO2      float64   `json:"co2"`
	Form     float64   `json:"form"`
	PM25     float64   `json:"pm25"`
	PM10     float64   `json:"pm10"`
	DataHora time.Time `json:"data_hora"`
}

// ClientResponse is one roster entry.
type ClientResponse struct {
	ID        int64  `json:"id"`
	Nome      string `json:"nome"`
	Sobrenome string `json:"sobrenome"`
	Email     string `json:"email"`
	Hubspot   int64  `json:"hubspot"`
}

// LocationResponse is one distinct location label.
type LocationResponse struct {
	Local string `json:"local"`
}

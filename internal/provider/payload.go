package provider

import (
	"strings"
	"time"
)

// Envelope is the provider's response wrapper: a data array whose element
// shape depends on the requested resource, plus pagination info.
type Envelope[T any] struct {
	Data       []T        `json:"data"`
	Pagination Pagination `json:"pagination"`
}

type Pagination struct {
	Limit  int `json:"limit"`
	Offset int `json:"offset"`
	Count  int `json:"count"`
	Total  int `json:"total"`
}

type AirlinePayload struct {
	Name    string `json:"airline_name"`
	Iata    string `json:"iata_code"`
	Country string `json:"country_name"`
}

type AirportPayload struct {
	Name     string `json:"airport_name"`
	Timezone string `json:"timezone"`
	Icao     string `json:"icao_code"`
	Country  string `json:"country_name"`
}

type EndpointPayload struct {
	Airport   string    `json:"airport"`
	Timezone  string    `json:"timezone"`
	Iata      string    `json:"iata"`
	Terminal  string    `json:"terminal"`
	Gate      string    `json:"gate"`
	Scheduled time.Time `json:"scheduled"`
}

type FlightAirlinePayload struct {
	Name string `json:"name"`
	Iata string `json:"iata"`
}

type FlightCodePayload struct {
	Number string `json:"number"`
	Iata   string `json:"iata"`
	Icao   string `json:"icao"`
}

// Date accepts both the provider's plain "2006-01-02" flight dates and full
// RFC3339 timestamps.
type Date struct {
	time.Time
}

func (d *Date) UnmarshalJSON(data []byte) error {
	raw := strings.Trim(string(data), `"`)
	if raw == "" || raw == "null" {
		return nil
	}
	if t, err := time.Parse("2006-01-02", raw); err == nil {
		d.Time = t
		return nil
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return err
	}
	d.Time = t
	return nil
}

type FlightPayload struct {
	FlightDate   Date                 `json:"flight_date"`
	FlightStatus string               `json:"flight_status"`
	Departure    EndpointPayload      `json:"departure"`
	Arrival      EndpointPayload      `json:"arrival"`
	Airline      FlightAirlinePayload `json:"airline"`
	Flight       FlightCodePayload    `json:"flight"`
}

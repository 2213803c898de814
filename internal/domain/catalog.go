package domain

import (
	"encoding/json"
	"strings"
	"time"
)

type FlightStatus int

const (
	FlightStatusScheduled FlightStatus = iota
	FlightStatusActive
	FlightStatusLanded
	FlightStatusCancelled
	FlightStatusIncident
	FlightStatusDiverted
	FlightStatusUnknown
)

var flightStatusNames = map[FlightStatus]string{
	FlightStatusScheduled: "SCHEDULED",
	FlightStatusActive:    "ACTIVE",
	FlightStatusLanded:    "LANDED",
	FlightStatusCancelled: "CANCELLED",
	FlightStatusIncident:  "INCIDENT",
	FlightStatusDiverted:  "DIVERTED",
	FlightStatusUnknown:   "UNKNOWN",
}

func (s FlightStatus) String() string {
	if name, ok := flightStatusNames[s]; ok {
		return name
	}
	return "UNKNOWN"
}

// ParseFlightStatus maps the provider's lower-case status strings onto the
// enum; anything unrecognized becomes UNKNOWN.
func ParseFlightStatus(raw string) FlightStatus {
	for status, name := range flightStatusNames {
		if strings.EqualFold(raw, name) {
			return status
		}
	}
	return FlightStatusUnknown
}

// Stored as an integer, serialized as a string.
func (s FlightStatus) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

func (s *FlightStatus) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*s = ParseFlightStatus(raw)
	return nil
}

type Airline struct {
	ID      int64  `json:"id"`
	Name    string `json:"name"`
	Iata    string `json:"iata"`
	Country string `json:"country"`
}

type Airport struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	TimeZone string `json:"timeZone"`
	Icao     string `json:"icao"`
	Country  string `json:"country"`
}

// Departure and Arrival share the same shape but live in separate tables,
// mirroring the provider payload.
type Departure struct {
	ID        int64     `json:"-"`
	Airport   string    `json:"airport"`
	Timezone  string    `json:"timezone"`
	Iata      string    `json:"iata"`
	Terminal  string    `json:"terminal"`
	Gate      string    `json:"gate"`
	Scheduled time.Time `json:"scheduled"`
}

type Arrival struct {
	ID        int64     `json:"-"`
	Airport   string    `json:"airport"`
	Timezone  string    `json:"timezone"`
	Iata      string    `json:"iata"`
	Terminal  string    `json:"terminal"`
	Gate      string    `json:"gate"`
	Scheduled time.Time `json:"scheduled"`
}

type FlightAirline struct {
	ID   int64  `json:"-"`
	Name string `json:"name"`
	Iata string `json:"iata"`
}

type FlightCode struct {
	ID     int64  `json:"-"`
	Number string `json:"number"`
	Iata   string `json:"iata"`
	Icao   string `json:"icao"`
}

type ScheduledFlight struct {
	ID           int64         `json:"id"`
	FlightDate   time.Time     `json:"flightDate"`
	FlightStatus FlightStatus  `json:"flightStatus"`
	Departure    Departure     `json:"departure"`
	Arrival      Arrival       `json:"arrival"`
	Airline      FlightAirline `json:"airline"`
	Flight       FlightCode    `json:"flight"`
}

package entity

// Passenger is a traveler named on a flight confirmation.
type Passenger struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

// FlightDetails is one flight segment extracted from a confirmation
// email. Dates and times are kept as ISO 8601 strings; the model is
// instructed to emit that format and anything else is left to the
// consumer to reject.
type FlightDetails struct {
	FlightNumber  string      `json:"flight_number"`
	AirlineName   string      `json:"airline_name"`
	DepartureDate string      `json:"departure_date,omitempty"`
	DepartureTime string      `json:"departure_time,omitempty"`
	ArrivalDate   string      `json:"arrival_date,omitempty"`
	ArrivalTime   string      `json:"arrival_time,omitempty"`
	Origin        string      `json:"origin"`
	Destination   string      `json:"destination"`
	Passengers    []Passenger `json:"passengers"`
}

// FlightManifest is the full set of flights found in one confirmation.
type FlightManifest struct {
	Flights []FlightDetails `json:"flights"`
}

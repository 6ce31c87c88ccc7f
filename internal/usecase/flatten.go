package usecase

import (
	"aviation-ingest-service/internal/domain/entity"
	"aviation-ingest-service/pkg/jsonpath"
)

// movementPaths maps flights-table columns to the top-level keys of a
// movement record. record_date is appended by the caller.
var movementPaths = map[string]string{
	"icao24":                           "icao24",
	"firstseen":                        "firstSeen",
	"estdepartureairport":              "estDepartureAirport",
	"lastseen":                         "lastSeen",
	"estarrivalairport":                "estArrivalAirport",
	"callsign":                         "callsign",
	"estdepartureairporthorizdistance": "estDepartureAirportHorizDistance",
	"estdepartureairportvertdistance":  "estDepartureAirportVertDistance",
	"estarrivalairporthorizdistance":   "estArrivalAirportHorizDistance",
	"estarrivalairportvertdistance":    "estArrivalAirportVertDistance",
	"departureairportcandidatescount":  "departureAirportCandidatesCount",
	"arrivalairportcandidatescount":    "arrivalAirportCandidatesCount",
}

// FlattenMovement maps one raw movement record onto the flights schema.
// Missing fields become nil; the destination columns are nullable.
func FlattenMovement(raw entity.RawRecord, date string) entity.Record {
	rec := make(entity.Record, len(entity.MovementSchema.Columns))
	for column, path := range movementPaths {
		rec[column] = jsonpath.Get(raw, path)
	}
	rec["record_date"] = date
	return rec
}

// flattenScheduleIdentity builds the identity fields shared by departure and
// arrival rows: flight number, date, callsign, status flags, aircraft and
// airline descriptors, and the local airport code.
func flattenScheduleIdentity(raw entity.RawRecord, airportICAO, date string) entity.Record {
	return entity.Record{
		"flight_number":  jsonpath.Get(raw, "number"),
		"flight_date":    date,
		"callsign":       jsonpath.Get(raw, "callSign"),
		"status":         jsonpath.Get(raw, "status"),
		"iscargo":        jsonpath.Get(raw, "isCargo"),
		"aircraft_reg":   jsonpath.Get(raw, "aircraft.reg"),
		"aircraft_modes": jsonpath.Get(raw, "aircraft.modeS"),
		"aircraft_model": jsonpath.Get(raw, "aircraft.model"),
		"airline_name":   jsonpath.Get(raw, "airline.name"),
		"airline_iata":   jsonpath.Get(raw, "airline.iata"),
		"airline_icao":   jsonpath.Get(raw, "airline.icao"),
		"airport_icao":   airportICAO,
	}
}

// FlattenDeparture maps one raw schedule record onto the airport_departures
// schema. The departure leg belongs to the local airport; the arrival side
// carries the full destination descriptor.
func FlattenDeparture(raw entity.RawRecord, airportICAO, date string) entity.Record {
	rec := flattenScheduleIdentity(raw, airportICAO, date)

	rec["departure_scheduledtime_utc"] = jsonpath.Get(raw, "departure.scheduledTime.utc")
	rec["departure_scheduledtime_local"] = jsonpath.Get(raw, "departure.scheduledTime.local")
	rec["departure_revisedtime_utc"] = jsonpath.Get(raw, "departure.revisedTime.utc")
	rec["departure_revisedtime_local"] = jsonpath.Get(raw, "departure.revisedTime.local")
	rec["departure_runwaytime_utc"] = jsonpath.Get(raw, "departure.runwayTime.utc")
	rec["departure_runwaytime_local"] = jsonpath.Get(raw, "departure.runwayTime.local")
	rec["departure_terminal"] = jsonpath.Get(raw, "departure.terminal")
	rec["departure_runway"] = jsonpath.Get(raw, "departure.runway")

	rec["arrival_airport_icao"] = jsonpath.Get(raw, "arrival.airport.icao")
	rec["arrival_airport_iata"] = jsonpath.Get(raw, "arrival.airport.iata")
	rec["arrival_airport_name"] = jsonpath.Get(raw, "arrival.airport.name")
	rec["arrival_airport_timezone"] = jsonpath.Get(raw, "arrival.airport.timeZone")
	rec["arrival_scheduledtime_utc"] = jsonpath.Get(raw, "arrival.scheduledTime.utc")
	rec["arrival_scheduledtime_local"] = jsonpath.Get(raw, "arrival.scheduledTime.local")
	rec["arrival_revisedtime_utc"] = jsonpath.Get(raw, "arrival.revisedTime.utc")
	rec["arrival_revisedtime_local"] = jsonpath.Get(raw, "arrival.revisedTime.local")
	rec["arrival_runwaytime_utc"] = jsonpath.Get(raw, "arrival.runwayTime.utc")
	rec["arrival_runwaytime_local"] = jsonpath.Get(raw, "arrival.runwayTime.local")
	rec["arrival_terminal"] = jsonpath.Get(raw, "arrival.terminal")
	rec["arrival_gate"] = jsonpath.Get(raw, "arrival.gate")
	rec["arrival_baggagebelt"] = jsonpath.Get(raw, "arrival.baggageBelt")
	return rec
}

// FlattenArrival maps one raw schedule record onto the airport_arrivals
// schema. The origin gets the full airport descriptor; no destination
// descriptor exists because the current airport is the destination.
func FlattenArrival(raw entity.RawRecord, airportICAO, date string) entity.Record {
	rec := flattenScheduleIdentity(raw, airportICAO, date)

	rec["departure_airport_icao"] = jsonpath.Get(raw, "departure.airport.icao")
	rec["departure_airport_iata"] = jsonpath.Get(raw, "departure.airport.iata")
	rec["departure_airport_name"] = jsonpath.Get(raw, "departure.airport.name")
	rec["departure_airport_timezone"] = jsonpath.Get(raw, "departure.airport.timeZone")
	rec["departure_scheduledtime_utc"] = jsonpath.Get(raw, "departure.scheduledTime.utc")
	rec["departure_scheduledtime_local"] = jsonpath.Get(raw, "departure.scheduledTime.local")
	rec["departure_revisedtime_utc"] = jsonpath.Get(raw, "departure.revisedTime.utc")
	rec["departure_revisedtime_local"] = jsonpath.Get(raw, "departure.revisedTime.local")
	rec["departure_runwaytime_utc"] = jsonpath.Get(raw, "departure.runwayTime.utc")
	rec["departure_runwaytime_local"] = jsonpath.Get(raw, "departure.runwayTime.local")
	rec["departure_terminal"] = jsonpath.Get(raw, "departure.terminal")
	rec["departure_runway"] = jsonpath.Get(raw, "departure.runway")

	rec["arrival_scheduledtime_utc"] = jsonpath.Get(raw, "arrival.scheduledTime.utc")
	rec["arrival_scheduledtime_local"] = jsonpath.Get(raw, "arrival.scheduledTime.local")
	rec["arrival_revisedtime_utc"] = jsonpath.Get(raw, "arrival.revisedTime.utc")
	rec["arrival_revisedtime_local"] = jsonpath.Get(raw, "arrival.revisedTime.local")
	rec["arrival_runwaytime_utc"] = jsonpath.Get(raw, "arrival.runwayTime.utc")
	rec["arrival_runwaytime_local"] = jsonpath.Get(raw, "arrival.runwayTime.local")
	rec["arrival_terminal"] = jsonpath.Get(raw, "arrival.terminal")
	rec["arrival_runway"] = jsonpath.Get(raw, "arrival.runway")
	rec["arrival_gate"] = jsonpath.Get(raw, "arrival.gate")
	rec["arrival_baggagebelt"] = jsonpath.Get(raw, "arrival.baggageBelt")
	return rec
}

package entity

import "fmt"

// TableSchema is the named, fixed description of one warehouse table: its
// DDL and the exact column order every insert must follow. The column list is
// the single source of truth; records are validated against it before they
// are ever buffered for load.
type TableSchema struct {
	Table           string
	Columns         []string
	DDL             string
	ReplaceExisting bool // truncate before insert, for date re-runs
}

// Validate checks that the record's key set matches the schema exactly.
// Divergent records must fail loudly here, never be silently truncated by a
// positional insert downstream.
func (s TableSchema) Validate(rec Record) error {
	for _, col := range s.Columns {
		if _, ok := rec[col]; !ok {
			return &SchemaMismatchError{Table: s.Table, Detail: fmt.Sprintf("missing column %q", col)}
		}
	}
	if len(rec) != len(s.Columns) {
		for key := range rec {
			if !s.hasColumn(key) {
				return &SchemaMismatchError{Table: s.Table, Detail: fmt.Sprintf("unexpected column %q", key)}
			}
		}
	}
	return nil
}

// Row converts a validated record into a values slice ordered exactly like
// Columns, ready to pair with the insert statement's placeholder list.
func (s TableSchema) Row(rec Record) []interface{} {
	row := make([]interface{}, len(s.Columns))
	for i, col := range s.Columns {
		row[i] = rec[col]
	}
	return row
}

func (s TableSchema) hasColumn(name string) bool {
	for _, col := range s.Columns {
		if col == name {
			return true
		}
	}
	return false
}

// commonScheduleColumns are the flight identity fields shared by both
// schedule tables.
var commonScheduleColumns = []string{
	"flight_number", "flight_date", "callsign", "status", "iscargo",
	"aircraft_reg", "aircraft_modes", "aircraft_model",
	"airline_name", "airline_iata", "airline_icao", "airport_icao",
}

const commonScheduleDDL = `
	flight_number VARCHAR(20), flight_date DATE NOT NULL, callsign VARCHAR(20),
	status VARCHAR(50), iscargo BOOLEAN, aircraft_reg VARCHAR(20),
	aircraft_modes VARCHAR(20), aircraft_model VARCHAR(100), airline_name VARCHAR(100),
	airline_iata VARCHAR(10), airline_icao VARCHAR(10), airport_icao VARCHAR(10) NOT NULL,
	ingestion_timestamp TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
	data_source VARCHAR(50) DEFAULT 'AeroDataBox'`

// MovementSchema describes the flights table fed by the movement provider.
// The composite primary key makes date re-runs collide instead of duplicating
// rows; the table is reloaded in place for the run date.
var MovementSchema = TableSchema{
	Table:           "flights",
	ReplaceExisting: true,
	Columns: []string{
		"icao24", "firstseen", "estdepartureairport", "lastseen",
		"estarrivalairport", "callsign",
		"estdepartureairporthorizdistance", "estdepartureairportvertdistance",
		"estarrivalairporthorizdistance", "estarrivalairportvertdistance",
		"departureairportcandidatescount", "arrivalairportcandidatescount",
		"record_date",
	},
	DDL: `CREATE TABLE IF NOT EXISTS flights (
	icao24 VARCHAR(10),
	firstseen BIGINT,
	estdepartureairport VARCHAR(10),
	lastseen BIGINT,
	estarrivalairport VARCHAR(10),
	callsign VARCHAR(20),
	estdepartureairporthorizdistance INT,
	estdepartureairportvertdistance INT,
	estarrivalairporthorizdistance INT,
	estarrivalairportvertdistance INT,
	departureairportcandidatescount INT,
	arrivalairportcandidatescount INT,
	record_date DATE,
	ingestion_timestamp TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
	PRIMARY KEY (icao24, firstseen)
)`,
}

// DepartureSchema describes airport_departures: identity fields, the
// departure leg at the local airport, then the full destination descriptor
// and the far-end arrival leg.
var DepartureSchema = TableSchema{
	Table: "airport_departures",
	Columns: append(append([]string{}, commonScheduleColumns...),
		"departure_scheduledtime_utc", "departure_scheduledtime_local",
		"departure_revisedtime_utc", "departure_revisedtime_local",
		"departure_runwaytime_utc", "departure_runwaytime_local",
		"departure_terminal", "departure_runway",
		"arrival_airport_icao", "arrival_airport_iata",
		"arrival_airport_name", "arrival_airport_timezone",
		"arrival_scheduledtime_utc", "arrival_scheduledtime_local",
		"arrival_revisedtime_utc", "arrival_revisedtime_local",
		"arrival_runwaytime_utc", "arrival_runwaytime_local",
		"arrival_terminal", "arrival_gate", "arrival_baggagebelt",
	),
	DDL: `CREATE TABLE IF NOT EXISTS airport_departures (` + commonScheduleDDL + `,
	departure_scheduledtime_utc TIMESTAMP, departure_scheduledtime_local TIMESTAMP,
	departure_revisedtime_utc TIMESTAMP, departure_revisedtime_local TIMESTAMP,
	departure_runwaytime_utc TIMESTAMP, departure_runwaytime_local TIMESTAMP,
	departure_terminal VARCHAR(10), departure_runway VARCHAR(10),
	arrival_airport_icao VARCHAR(10), arrival_airport_iata VARCHAR(10),
	arrival_airport_name VARCHAR(100), arrival_airport_timezone VARCHAR(50),
	arrival_scheduledtime_utc TIMESTAMP, arrival_scheduledtime_local TIMESTAMP,
	arrival_revisedtime_utc TIMESTAMP, arrival_revisedtime_local TIMESTAMP,
	arrival_runwaytime_utc TIMESTAMP, arrival_runwaytime_local TIMESTAMP,
	arrival_terminal VARCHAR(10), arrival_gate VARCHAR(10), arrival_baggagebelt VARCHAR(20)
)`,
}

// ArrivalSchema describes airport_arrivals: identity fields, the full origin
// descriptor with its departure leg, then the arrival leg at the local
// airport. No destination descriptor, the current airport is the destination.
var ArrivalSchema = TableSchema{
	Table: "airport_arrivals",
	Columns: append(append([]string{}, commonScheduleColumns...),
		"departure_airport_icao", "departure_airport_iata",
		"departure_airport_name", "departure_airport_timezone",
		"departure_scheduledtime_utc", "departure_scheduledtime_local",
		"departure_revisedtime_utc", "departure_revisedtime_local",
		"departure_runwaytime_utc", "departure_runwaytime_local",
		"departure_terminal", "departure_runway",
		"arrival_scheduledtime_utc", "arrival_scheduledtime_local",
		"arrival_revisedtime_utc", "arrival_revisedtime_local",
		"arrival_runwaytime_utc", "arrival_runwaytime_local",
		"arrival_terminal", "arrival_runway", "arrival_gate", "arrival_baggagebelt",
	),
	DDL: `CREATE TABLE IF NOT EXISTS airport_arrivals (` + commonScheduleDDL + `,
	departure_airport_icao VARCHAR(10), departure_airport_iata VARCHAR(10),
	departure_airport_name VARCHAR(100), departure_airport_timezone VARCHAR(50),
	departure_scheduledtime_utc TIMESTAMP, departure_scheduledtime_local TIMESTAMP,
	departure_revisedtime_utc TIMESTAMP, departure_revisedtime_local TIMESTAMP,
	departure_runwaytime_utc TIMESTAMP, departure_runwaytime_local TIMESTAMP,
	departure_terminal VARCHAR(10), departure_runway VARCHAR(10),
	arrival_scheduledtime_utc TIMESTAMP, arrival_scheduledtime_local TIMESTAMP,
	arrival_revisedtime_utc TIMESTAMP, arrival_revisedtime_local TIMESTAMP,
	arrival_runwaytime_utc TIMESTAMP, arrival_runwaytime_local TIMESTAMP,
	arrival_terminal VARCHAR(10), arrival_runway VARCHAR(10),
	arrival_gate VARCHAR(10), arrival_baggagebelt VARCHAR(20)
)`,
}

// TableBatch pairs a schema with the records buffered for it during a run.
type TableBatch struct {
	Schema  TableSchema
	Records []Record
}

package entity

// RawRecord is one provider flight object as decoded from JSON. It is never
// mutated, only read through dotted-path lookups.
type RawRecord = map[string]interface{}

// Record is a flattened flight row, mapping warehouse column names to scalar
// values. The column order itself is owned by the TableSchema.
type Record map[string]interface{}

// CodeTypeAirport selects the airport query parameter on the movement API.
const CodeTypeAirport = "airport"

// CodeTypeIcao24 selects the icao24 (transponder) query parameter instead.
const CodeTypeIcao24 = "icao24"

// WindowRequest parameterizes one outbound provider call. It is immutable per
// call and constructed fresh for each airport and window.
type WindowRequest struct {
	AirportCode string // empty means no airport filter (movement endpoint only)
	CodeType    string // movement: airport vs icao24 parameter; schedule: code path segment
	TimeFrom    string // ISO minute boundary, schedule provider
	TimeTo      string // ISO minute boundary, schedule provider
	BeginEpoch  int64  // epoch seconds, movement provider
	EndEpoch    int64  // epoch seconds, movement provider
}

// FetchOutcome distinguishes the expected non-error results of a windowed
// fetch from each other. Only errors propagate; these do not.
type FetchOutcome int

const (
	// OutcomeSuccess means the provider returned records (possibly zero).
	OutcomeSuccess FetchOutcome = iota
	// OutcomeNotFound means the provider returned 404 for this airport and
	// window. The pair is skipped, the run continues.
	OutcomeNotFound
	// OutcomeEmpty means the provider returned 204 for this half-window.
	OutcomeEmpty
)

// FetchResult is the outcome of one windowed provider call.
type FetchResult struct {
	Outcome FetchOutcome
	Records []RawRecord
}

// SchedulePage is the outcome of one half-window schedule call; the provider
// returns both directions of one airport in a single payload.
type SchedulePage struct {
	Outcome    FetchOutcome
	Departures []RawRecord
	Arrivals   []RawRecord
}

package flight

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"
)

const DateLayout = "2006-01-02"

var ErrInvalidQuery = errors.New("invalid flight query")

type ErrorCode string

const (
	ErrorCodeValidation ErrorCode = "VALIDATION_ERROR"
)

// ErrorKind classifies a failed search. It travels with the result so
// callers and tests can tell failure modes apart without parsing messages.
type ErrorKind string

const (
	KindTransport      ErrorKind = "TRANSPORT_ERROR"
	KindHTTPStatus     ErrorKind = "HTTP_STATUS_ERROR"
	KindPayloadParse   ErrorKind = "PAYLOAD_PARSE_ERROR"
	KindProvider       ErrorKind = "PROVIDER_ERROR"
	KindNoResults      ErrorKind = "NO_RESULTS"
	KindIncompleteData ErrorKind = "INCOMPLETE_DATA"
)

const (
	StatusSuccess = "success"
	StatusFailed  = "failed"
)

// FlightQuery is a validated round-trip search. Build it with NewFlightQuery.
type FlightQuery struct {
	DepartureID  string
	ArrivalID    string
	OutboundDate time.Time
	ReturnDate   time.Time
}

// NewFlightQuery validates raw input: both airport codes present, both dates
// in YYYY-MM-DD form and the return not before the outbound date.
func NewFlightQuery(departureID, arrivalID, outboundDate, returnDate string) (FlightQuery, error) {
	var errs []error

	dep := strings.ToUpper(strings.TrimSpace(departureID))
	arr := strings.ToUpper(strings.TrimSpace(arrivalID))
	if dep == "" {
		errs = append(errs, errors.New("departure_id is required"))
	}
	if arr == "" {
		errs = append(errs, errors.New("arrival_id is required"))
	}

	outbound, err := parseDate("outbound_date", outboundDate)
	if err != nil {
		errs = append(errs, err)
	}
	ret, err := parseDate("return_date", returnDate)
	if err != nil {
		errs = append(errs, err)
	}

	if len(errs) == 0 && ret.Before(outbound) {
		errs = append(errs, errors.New("return_date must not be before outbound_date"))
	}

	if len(errs) > 0 {
		return FlightQuery{}, fmt.Errorf("%w: %w", ErrInvalidQuery, errors.Join(errs...))
	}

	return FlightQuery{
		DepartureID:  dep,
		ArrivalID:    arr,
		OutboundDate: outbound,
		ReturnDate:   ret,
	}, nil
}

func parseDate(name, value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, fmt.Errorf("%s is required", name)
	}
	t, err := time.Parse(DateLayout, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("%s must be a valid YYYY-MM-DD date, got %q", name, value)
	}
	return t, nil
}

// FlightSegment is one flown leg, kept exactly as the provider sent it.
type FlightSegment = json.RawMessage

type FlightOffer struct {
	FlightID     string          `json:"flightId"`
	Price        float64         `json:"price"`
	BookingToken string          `json:"booking_token"`
	Segments     []FlightSegment `json:"segments"`
}

// SearchResult is either a success carrying Data or a failure carrying
// Message and Kind, never both. Use Success and Failure to build one.
type SearchResult struct {
	Status   string       `json:"status"`
	SearchID string       `json:"search_id,omitempty"`
	Data     *FlightOffer `json:"data,omitempty"`
	Message  string       `json:"message,omitempty"`
	Kind     ErrorKind    `json:"kind,omitempty"`
}

func Success(offer FlightOffer) SearchResult {
	if offer.Segments == nil {
		offer.Segments = []FlightSegment{}
	}
	return SearchResult{Status: StatusSuccess, Data: &offer}
}

func Failure(kind ErrorKind, message string) SearchResult {
	return SearchResult{Status: StatusFailed, Message: message, Kind: kind}
}

func (r SearchResult) OK() bool {
	return r.Status == StatusSuccess
}

package flightclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"travel/internal/flight"
	"travel/pkg/logger"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// PlaceholderFlightNumber stands in when the best offer carries no usable
// first segment flight number.
const PlaceholderFlightNumber = "KLM-456"

const (
	locale   = "en"
	currency = "USD"

	providerStatusSuccess = "Success"

	msgInvalidPayload  = "invalid response payload"
	msgUnknownProvider = "unknown provider error"
	msgNoFlights       = "no flights found for this route"
	msgIncompleteData  = "flight found but data incomplete (missing price or token)"
)

type SerpApiClient struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	engine     string
	logger     logger.Client
	tracer     trace.Tracer
}

func NewSerpApiClient(httpClient *http.Client, baseURL, apiKey, engine string, logger logger.Client) *SerpApiClient {
	return &SerpApiClient{
		httpClient: httpClient,
		baseURL:    baseURL,
		apiKey:     apiKey,
		engine:     engine,
		logger:     logger,
		tracer:     otel.Tracer("travel/pkg/flightclient"),
	}
}

type serpApiResponse struct {
	SearchMetadata serpApiMetadata `json:"search_metadata"`
	Error          string          `json:"error"`
	BestFlights    []serpApiOffer  `json:"best_flights"`
}

type serpApiMetadata struct {
	Status string `json:"status"`
}

type serpApiOffer struct {
	Price          *float64          `json:"price"`
	DepartureToken *string           `json:"departure_token"`
	Flights        []json.RawMessage `json:"flights"`
}

type serpApiSegment struct {
	FlightNumber json.RawMessage `json:"flight_number"`
}

// BuildRequest assembles the GET request for q without sending it.
func (a *SerpApiClient) BuildRequest(ctx context.Context, q flight.FlightQuery) (*http.Request, error) {
	u, err := url.Parse(a.baseURL)
	if err != nil {
		return nil, fmt.Errorf("serpapi: invalid base url: %w", err)
	}

	params := u.Query()
	params.Set("engine", a.engine)
	params.Set("api_key", a.apiKey)
	params.Set("departure_id", q.DepartureID)
	params.Set("arrival_id", q.ArrivalID)
	params.Set("outbound_date", q.OutboundDate.Format(flight.DateLayout))
	params.Set("return_date", q.ReturnDate.Format(flight.DateLayout))
	params.Set("hl", locale)
	params.Set("currency", currency)
	u.RawQuery = params.Encode()

	r, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("serpapi: failed to build request: %w", err)
	}
	r.Header.Set("Accept", "application/json")
	return r, nil
}

// Search sends exactly one request and reduces the response to a result.
// Every failure is returned as a failed result, never as a panic or error.
func (a *SerpApiClient) Search(ctx context.Context, q flight.FlightQuery) flight.SearchResult {
	ctx, span := a.tracer.Start(ctx, "serpapi.search", trace.WithAttributes(
		attribute.String("flight.departure_id", q.DepartureID),
		attribute.String("flight.arrival_id", q.ArrivalID),
	))
	defer span.End()

	result := a.search(ctx, q)
	if !result.OK() {
		span.SetStatus(codes.Error, result.Message)
		span.SetAttributes(attribute.String("flight.error_kind", string(result.Kind)))
	}
	return result
}

func (a *SerpApiClient) search(ctx context.Context, q flight.FlightQuery) flight.SearchResult {
	a.logger.Debug("calling serpapi",
		logger.Field{Key: "departure_id", Value: q.DepartureID},
		logger.Field{Key: "arrival_id", Value: q.ArrivalID},
	)

	r, err := a.BuildRequest(ctx, q)
	if err != nil {
		a.logger.Error("failed to build serpapi request", logger.Field{Key: "err", Value: err})
		return flight.Failure(flight.KindTransport, err.Error())
	}

	resp, err := a.httpClient.Do(r)
	if err != nil {
		msg := a.redact(err.Error())
		a.logger.Error("serpapi call failed", logger.Field{Key: "err", Value: msg})
		return flight.Failure(flight.KindTransport, msg)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg := fmt.Sprintf("external api returned non-2xx status: %s", resp.Status)
		a.logger.Error("serpapi http error", logger.Field{Key: "status", Value: resp.StatusCode})
		return flight.Failure(flight.KindHTTPStatus, msg)
	}

	apiResp, err := decodeResponse(resp.Body)
	if err != nil {
		a.logger.Error("failed to decode serpapi response", logger.Field{Key: "err", Value: err})
		return flight.Failure(flight.KindPayloadParse, msgInvalidPayload)
	}

	return a.normalize(apiResp)
}

// decodeResponse accepts exactly one JSON object; trailing data, null and
// non-object bodies are rejected.
func decodeResponse(body io.Reader) (*serpApiResponse, error) {
	raw, err := io.ReadAll(body)
	if err != nil {
		return nil, fmt.Errorf("serpapi: failed to read response: %w", err)
	}

	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return nil, errors.New("serpapi: response body is not a json object")
	}

	var apiResp serpApiResponse
	if err := json.Unmarshal(trimmed, &apiResp); err != nil {
		return nil, fmt.Errorf("serpapi: failed to decode json response: %w", err)
	}
	return &apiResp, nil
}

func (a *SerpApiClient) normalize(apiResp *serpApiResponse) flight.SearchResult {
	if apiResp.SearchMetadata.Status != providerStatusSuccess {
		msg := apiResp.Error
		if msg == "" {
			msg = msgUnknownProvider
		}
		a.logger.Error("serpapi status was not success",
			logger.Field{Key: "provider_status", Value: apiResp.SearchMetadata.Status},
			logger.Field{Key: "provider_error", Value: msg},
		)
		return flight.Failure(flight.KindProvider, msg)
	}

	if len(apiResp.BestFlights) == 0 {
		a.logger.Warn("serpapi returned no best flights")
		return flight.Failure(flight.KindNoResults, msgNoFlights)
	}

	// the provider ranks best_flights itself
	best := apiResp.BestFlights[0]
	if best.Price == nil || *best.Price < 0 || best.DepartureToken == nil {
		a.logger.Error("best flight has no price or token")
		return flight.Failure(flight.KindIncompleteData, msgIncompleteData)
	}

	segments := best.Flights

	offer := flight.FlightOffer{
		FlightID:     "Flight-" + a.flightNumber(segments),
		Price:        *best.Price,
		BookingToken: *best.DepartureToken,
		Segments:     segments,
	}

	a.logger.Info("serpapi flight found",
		logger.Field{Key: "price", Value: offer.Price},
		logger.Field{Key: "currency", Value: currency},
		logger.Field{Key: "token_prefix", Value: tokenPrefix(offer.BookingToken)},
	)
	return flight.Success(offer)
}

func (a *SerpApiClient) flightNumber(segments []flight.FlightSegment) string {
	if len(segments) > 0 {
		var first serpApiSegment
		if err := json.Unmarshal(segments[0], &first); err == nil {
			if number := flightNumberText(first.FlightNumber); number != "" {
				return number
			}
		}
	}

	a.logger.Warn("first segment has no flight number, using placeholder",
		logger.Field{Key: "placeholder", Value: PlaceholderFlightNumber},
	)
	return PlaceholderFlightNumber
}

// flightNumberText reads flight_number as a string or a bare JSON number.
func flightNumberText(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}

	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return strings.TrimSpace(s)
	}

	var n json.Number
	if err := json.Unmarshal(raw, &n); err == nil {
		return n.String()
	}
	return ""
}

// redact keeps the credential out of error text; url.Error embeds the full URL.
func (a *SerpApiClient) redact(msg string) string {
	if a.apiKey == "" {
		return msg
	}
	msg = strings.ReplaceAll(msg, url.QueryEscape(a.apiKey), "REDACTED")
	return strings.ReplaceAll(msg, a.apiKey, "REDACTED")
}

func tokenPrefix(token string) string {
	if len(token) <= 15 {
		return token
	}
	return token[:15] + "..."
}
